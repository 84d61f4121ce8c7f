package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"silly-billy/internal/llm"
)

var codeFence = regexp.MustCompile("^```\\w*\\n?")

// Handler applies one action. Payload is the action object (e.g. {"action":"preset", "name":"heavy"}).
// Returns an error to report to the user; the agent will still process remaining actions.
type Handler func(payload map[string]interface{}) error

// Agent turns natural language into rag-doll actions via an LLM and a registry of action handlers.
type Agent struct {
	client   llm.Client
	handlers map[string]Handler
}

// New returns an Agent that uses the given LLM client.
// Register handlers with RegisterHandler before calling Run.
func New(client llm.Client) *Agent {
	return &Agent{
		client:   client,
		handlers: make(map[string]Handler),
	}
}

// RegisterHandler adds a handler for the given action type (e.g. "kick", "run_cmd").
func (a *Agent) RegisterHandler(actionType string, h Handler) {
	a.handlers[actionType] = h
}

// Run sends the user message (and the camera description, if any) to the LLM, parses the JSON
// reply and applies each action. An empty model uses the client's default.
// Returns a short summary for the console log, or an error.
func (a *Agent) Run(ctx context.Context, model, userMessage, viewContext string) (summary string, err error) {
	if model == "" {
		model = llm.DefaultModel(a.client)
	}
	if viewContext != "" {
		userMessage = userMessage + "\n\nView: " + viewContext
	}
	reply, err := a.client.Complete(ctx, model, buildSystemPrompt(), userMessage)
	if err != nil {
		return "", err
	}
	actions, parseErr := parseActions(reply)
	if parseErr != nil {
		return "", fmt.Errorf("LLM response invalid: %w", parseErr)
	}
	var applied int
	var messages []string
	for i, raw := range actions {
		payload, ok := raw.(map[string]interface{})
		if !ok {
			messages = append(messages, fmt.Sprintf("action %d: invalid object", i+1))
			continue
		}
		actionType, _ := payload["action"].(string)
		if actionType == "" {
			messages = append(messages, fmt.Sprintf("action %d: missing action", i+1))
			continue
		}
		h, ok := a.handlers[actionType]
		if !ok {
			messages = append(messages, fmt.Sprintf("action %d: unknown action %q", i+1, actionType))
			continue
		}
		if err := h(payload); err != nil {
			messages = append(messages, fmt.Sprintf("action %d (%s): %v", i+1, actionType, err))
			continue
		}
		applied++
	}
	if applied > 0 && len(messages) == 0 {
		return fmt.Sprintf("Done. Applied %d action(s).", applied), nil
	}
	if len(messages) > 0 {
		return strings.Join(messages, "; "), nil
	}
	return "No actions to apply.", nil
}

func buildSystemPrompt() string {
	return "You direct a rag doll in a physics toy. The user types natural language; you reply with exactly one JSON object and nothing else. No markdown, no code block, no explanation.\n\n" +
		"Reply shape: {\"actions\":[ ... ]} with one or more actions, applied in order.\n\n" +
		"Actions:\n" +
		"- {\"action\":\"reset\"}: stand the doll back up where it started.\n" +
		"- {\"action\":\"throw\"}: launch the doll upwards.\n" +
		"- {\"action\":\"punch\"}: punch the head sideways.\n" +
		"- {\"action\":\"kick\"}: hit both legs.\n" +
		"- {\"action\":\"squeeze\"}: jolt every part.\n" +
		"- {\"action\":\"preset\",\"name\":\"normal|bouncy|heavy\"}: change gravity and damping.\n" +
		"- {\"action\":\"balls\",\"count\":N}: respawn N free balls (0 to 50).\n" +
		"- {\"action\":\"run_cmd\",\"args\":[\"subcommand\",\"arg1\",...]}: run a console command.\n\n" +
		"Console commands for run_cmd:\n" +
		"- grid: [\"grid\",\"--show\"] or [\"grid\",\"--hide\"]\n" +
		"- fps: [\"fps\",\"--show\"] or [\"fps\",\"--hide\"]\n" +
		"- memalloc: [\"memalloc\",\"--show\"] or [\"memalloc\",\"--hide\"]\n" +
		"- model: [\"model\",\"gpt-4o-mini\"]\n" +
		"- save: [\"save\"]\n\n" +
		"Rules:\n" +
		"- \"knock him over\" is a punch; \"make him jump\" or \"toss him\" is a throw; \"sweep the legs\" is a kick.\n" +
		"- \"moon gravity\", \"floaty\", \"bouncy\" mean preset bouncy; \"heavy\", \"jupiter\" mean preset heavy.\n" +
		"- \"do it again\" or \"three times\" repeats the action in the list.\n" +
		"- Reply with only the JSON object."
}

// parseActions extracts the "actions" array from the LLM reply. Tolerates markdown, extra text, and single-action form.
func parseActions(reply string) ([]interface{}, error) {
	reply = strings.TrimSpace(reply)
	if strings.HasPrefix(reply, "```") {
		reply = codeFence.ReplaceAllString(reply, "")
		reply = strings.TrimSuffix(reply, "```")
		reply = strings.TrimSpace(reply)
	}
	// first complete JSON object, in case there's text before/after
	start := strings.Index(reply, "{")
	if start < 0 {
		return nil, fmt.Errorf("no JSON object in response")
	}
	reply = reply[start:]
	depth := 0
	end := -1
	for i, c := range reply {
		if c == '{' {
			depth++
		} else if c == '}' {
			depth--
			if depth == 0 {
				end = i + 1
				break
			}
		}
	}
	if end < 0 {
		return nil, fmt.Errorf("unbalanced JSON braces")
	}
	reply = reply[:end]

	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(reply), &raw); err != nil {
		return nil, err
	}
	if arr, ok := raw["actions"].([]interface{}); ok {
		return arr, nil
	}
	if obj, ok := raw["actions"].(map[string]interface{}); ok {
		return []interface{}{obj}, nil
	}
	if _, hasAction := raw["action"]; hasAction {
		return []interface{}{raw}, nil
	}
	return nil, fmt.Errorf("missing actions array (reply had no \"actions\" or \"action\" object)")
}

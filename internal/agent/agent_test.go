package agent

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"silly-billy/internal/commands"
	"silly-billy/internal/llm"
	"silly-billy/internal/logger"
	"silly-billy/internal/mesh"
	"silly-billy/internal/sim"
	"silly-billy/internal/tuning"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	reply   string
	err     error
	model   string
	message string
}

func (f *fakeClient) Complete(_ context.Context, model, _, userMessage string) (string, error) {
	f.model = model
	f.message = userMessage
	return f.reply, f.err
}

type nopRenderer struct{}

func (nopRenderer) UpdateControls() {}
func (nopRenderer) Render(*mesh.Graph) {}

func controllerPreset(s *sim.Simulation, name string) error {
	return s.Controller.ApplyPreset(name)
}

type fullQueue struct{}

func (fullQueue) Post(sim.Command) bool { return false }

func TestParseActions(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		count int
		err   string
	}{
		{"array", `{"actions":[{"action":"kick"},{"action":"throw"}]}`, 2, ""},
		{"single in actions", `{"actions":{"action":"kick"}}`, 1, ""},
		{"top level", `{"action":"punch"}`, 1, ""},
		{"fenced", "```json\n{\"action\":\"punch\"}\n```", 1, ""},
		{"surrounding text", `Sure! {"action":"reset"} enjoy`, 1, ""},
		{"no object", "I can't do that", 0, "no JSON object"},
		{"unbalanced", `{"action":"kick"`, 0, "unbalanced"},
		{"no actions", `{"foo":1}`, 0, "missing actions"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseActions(tt.reply)
			if tt.err != "" {
				assert.ErrorContains(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.count)
		})
	}
}

func loadedSim(t *testing.T, log *logger.Logger) *sim.Simulation {
	t.Helper()
	s := sim.New()
	require.NoError(t, s.Load(sim.Options{
		Random: rand.New(rand.NewSource(7)),
		Log:    log,
		Tuning: tuning.Default(),
	}))
	return s
}

func TestRunPostsActionsToFrameLoop(t *testing.T) {
	log := logger.NewAt("")
	s := loadedSim(t, log)
	reg := commands.NewRegistry()
	client := &fakeClient{reply: `{"actions":[{"action":"throw"},{"action":"preset","name":"heavy"},{"action":"balls","count":5}]}`}
	a := New(client)
	RegisterSimHandlers(a, s, controllerPreset, reg, log)

	summary, err := a.Run(context.Background(), "", "toss him on jupiter", "Camera at origin")
	require.NoError(t, err)
	assert.Equal(t, "Done. Applied 3 action(s).", summary)
	assert.Equal(t, "gpt-4o-mini", client.model)
	assert.Contains(t, client.message, "View: Camera at origin")

	// nothing changes until the frame loop drains the queue
	assert.Equal(t, "normal", s.Controller.ActivePreset())
	assert.Len(t, s.Balls, 3)

	s.Frame(nopRenderer{})
	assert.Equal(t, "heavy", s.Controller.ActivePreset())
	assert.Len(t, s.Balls, 5)
}

func TestRunReportsBadActions(t *testing.T) {
	log := logger.NewAt("")
	s := loadedSim(t, log)
	reg := commands.NewRegistry()
	client := &fakeClient{reply: `{"actions":[{"action":"fly"},{"action":"balls","count":99},{"action":"run_cmd","args":["nuke"]},{"action":"kick"}]}`}
	a := New(client)
	RegisterSimHandlers(a, s, controllerPreset, reg, log)

	summary, err := a.Run(context.Background(), "llama3.2", "chaos", "")
	require.NoError(t, err)
	assert.Contains(t, summary, `action 1: unknown action "fly"`)
	assert.Contains(t, summary, "action 2 (balls): count 99 outside [0,50]")
	assert.Contains(t, summary, "action 3 (run_cmd): unknown command: nuke")
	assert.NotContains(t, summary, "action 4")
	assert.Equal(t, "llama3.2", client.model)
	assert.Equal(t, "chaos", client.message)
}

func TestRunCmdExecutesOnFrame(t *testing.T) {
	log := logger.NewAt("")
	s := loadedSim(t, log)
	reg := commands.NewRegistry()
	shown := false
	reg.Register("grid", "", nil, func([]string) error {
		shown = true
		return nil
	})
	a := New(&fakeClient{reply: `{"action":"run_cmd","args":["grid","--show"]}`})
	RegisterSimHandlers(a, s, controllerPreset, reg, log)

	_, err := a.Run(context.Background(), "", "show the grid", "")
	require.NoError(t, err)
	assert.False(t, shown)
	s.Frame(nopRenderer{})
	assert.True(t, shown)
}

func TestRunErrors(t *testing.T) {
	a := New(&fakeClient{err: errors.New("offline")})
	_, err := a.Run(context.Background(), "", "kick", "")
	assert.EqualError(t, err, "offline")

	a = New(&fakeClient{reply: "no idea"})
	_, err = a.Run(context.Background(), "", "kick", "")
	assert.ErrorContains(t, err, "LLM response invalid")

	a = New(&fakeClient{reply: `{"actions":[]}`})
	summary, err := a.Run(context.Background(), "", "nothing", "")
	require.NoError(t, err)
	assert.Equal(t, "No actions to apply.", summary)
}

func TestHandlersReportFullQueue(t *testing.T) {
	a := New(&fakeClient{reply: `{"action":"kick"}`})
	RegisterSimHandlers(a, fullQueue{}, controllerPreset, commands.NewRegistry(), logger.NewAt(""))

	summary, err := a.Run(context.Background(), "", "kick", "")
	require.NoError(t, err)
	assert.Equal(t, "action 1 (kick): "+ErrQueueFull.Error(), summary)
}

func TestRunEmptyModelUsesProviderDefault(t *testing.T) {
	var got struct {
		Model string `json:"model"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"message":{"role":"assistant","content":"{\"actions\":[]}"}}`))
	}))
	defer srv.Close()

	client := llm.FromEnv(func(key string) string {
		if key == "OLLAMA_HOST" {
			return srv.URL
		}
		return ""
	})
	require.NotNil(t, client)

	_, err := New(client).Run(context.Background(), "", "wave", "")
	require.NoError(t, err)
	assert.Equal(t, llm.DefaultOllamaModel, got.Model)
}

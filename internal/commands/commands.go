package commands

import (
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
)

const prefix = "cmd "

// Command is a console command with its own flags and a Run function.
// Flags are defined on FlagSet; Run is called after Parse and gets the remaining positional args.
type Command struct {
	Name    string
	Usage   string
	FlagSet *flag.FlagSet
	Run     func(args []string) error
}

// Registry holds commands by name. Add commands with Register; run with Execute.
type Registry struct {
	cmds map[string]*Command
}

// NewRegistry returns a registry holding only the built-in "help" command.
func NewRegistry() *Registry {
	r := &Registry{cmds: make(map[string]*Command)}
	r.Register("help", "list commands", nil, func([]string) error {
		return &helpError{text: r.Help()}
	})
	return r
}

// NewFlagSet returns a FlagSet for a console command. Parse errors are returned, never printed or fatal.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// Register adds a command. name is the first token of the line (e.g. "grid").
// fs may be nil for commands without flags; run is called after fs.Parse(args[1:]) succeeds.
func (r *Registry) Register(name, usage string, fs *flag.FlagSet, run func(args []string) error) {
	if fs == nil {
		fs = NewFlagSet(name)
	}
	r.cmds[name] = &Command{Name: name, Usage: usage, FlagSet: fs, Run: run}
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.cmds[name]
	return ok
}

// Names returns the registered command names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.cmds))
	for name := range r.cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Help returns one "name: usage" line per command.
func (r *Registry) Help() string {
	var b strings.Builder
	for i, name := range r.Names() {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(name)
		if u := r.cmds[name].Usage; u != "" {
			b.WriteString(": ")
			b.WriteString(u)
		}
	}
	return b.String()
}

// Parse interprets line as a console line. A line starting with "cmd " (case-sensitive) or whose
// first word is a registered command is tokenized by spaces and returned with ok true.
// Anything else is natural language: nil, false.
func (r *Registry) Parse(line string) (args []string, ok bool) {
	if strings.HasPrefix(line, prefix) {
		rest := strings.TrimSpace(line[len(prefix):])
		if rest == "" {
			return nil, true
		}
		return strings.Fields(rest), true
	}
	fields := strings.Fields(line)
	if len(fields) > 0 && r.Has(fields[0]) {
		return fields, true
	}
	return nil, false
}

// Execute runs the command in args[0] with args[1:] as flag/positional arguments.
// Returns an error for unknown command, parse error, or from Run().
func (r *Registry) Execute(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing command")
	}
	name := args[0]
	cmd, ok := r.cmds[name]
	if !ok {
		return fmt.Errorf("unknown command: %s (try help)", name)
	}
	if err := cmd.FlagSet.Parse(args[1:]); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return cmd.Run(cmd.FlagSet.Args())
}

// helpError carries help text back through the error path so the console logs it.
type helpError struct {
	text string
}

func (e *helpError) Error() string {
	return e.text
}

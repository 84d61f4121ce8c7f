package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	r := NewRegistry()
	r.Register("grid", "show or hide the grid", nil, func([]string) error { return nil })

	tests := []struct {
		name  string
		line  string
		args  []string
		isCmd bool
	}{
		{"prefixed", "cmd grid --show", []string{"grid", "--show"}, true},
		{"bare registered", "grid --hide", []string{"grid", "--hide"}, true},
		{"prefix only", "cmd ", nil, true},
		{"natural language", "make him fly", nil, false},
		{"unregistered word", "gridlock", nil, false},
		{"prefix is case sensitive", "CMD grid", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args, ok := r.Parse(tt.line)
			assert.Equal(t, tt.isCmd, ok)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestExecuteParsesFlags(t *testing.T) {
	r := NewRegistry()
	fs := NewFlagSet("balls")
	count := fs.Int("count", 3, "number of balls")
	var rest []string
	r.Register("balls", "respawn balls", fs, func(args []string) error {
		rest = args
		return nil
	})

	require.NoError(t, r.Execute([]string{"balls", "--count", "7", "extra"}))
	assert.Equal(t, 7, *count)
	assert.Equal(t, []string{"extra"}, rest)
}

func TestExecuteErrors(t *testing.T) {
	r := NewRegistry()
	r.Register("grid", "", nil, func([]string) error { return nil })

	assert.EqualError(t, r.Execute(nil), "missing command")
	assert.ErrorContains(t, r.Execute([]string{"fly"}), "unknown command: fly")
	assert.ErrorContains(t, r.Execute([]string{"grid", "--bogus"}), "grid:")
}

func TestNamesAndHelp(t *testing.T) {
	r := NewRegistry()
	r.Register("reset", "stand the doll up", nil, func([]string) error { return nil })
	r.Register("kick", "", nil, func([]string) error { return nil })

	assert.Equal(t, []string{"help", "kick", "reset"}, r.Names())
	assert.True(t, r.Has("kick"))
	assert.False(t, r.Has("fly"))
	assert.Equal(t, "help: list commands; kick; reset: stand the doll up", r.Help())

	err := r.Execute([]string{"help"})
	require.Error(t, err)
	assert.Equal(t, r.Help(), err.Error())
}

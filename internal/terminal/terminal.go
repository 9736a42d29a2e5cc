// Package terminal is the command-line view of the portfolio.
//
// A Terminal keeps an output log and a command history. Lines are
// submitted one at a time and answered synchronously from the shared
// state. A Terminal is not safe for concurrent use; each session owns one.
package terminal

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"termfolio.dev/internal/models"
	"termfolio.dev/internal/observability"
	"termfolio.dev/internal/state"
)

// Welcome is the first line of every session
const Welcome = "Welcome to my portfolio! Type 'help' to see a list of commands."

// State is the shared state read and changed by commands
type State interface {
	SiteInfo() models.SiteInfo
	Experience() []models.Experience
	Projects() []models.Project
	Project(id string) (models.Project, bool)
	SetTheme(ctx context.Context, t state.Theme) error
	SetMode(m state.Mode)
}

// Option customizes a Terminal
type Option func(*Terminal)

// WithDashboard sets what the login command does
func WithDashboard(open func()) Option {
	return func(t *Terminal) { t.openDashboard = open }
}

// WithClock replaces time.Now, for the date command
func WithClock(now func() time.Time) Option {
	return func(t *Terminal) { t.now = now }
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(t *Terminal) { t.logger = l }
}

// Terminal is one interactive session
type Terminal struct {
	st            State
	openDashboard func()
	now           func() time.Time
	logger        *slog.Logger

	output  []string
	history []string // most recent first
	index   int      // position in history while navigating, -1 when not
	input   string
}

// New starts a session with the welcome line
func New(st State, opts ...Option) *Terminal {
	t := &Terminal{
		st:            st,
		openDashboard: func() {},
		now:           time.Now,
		logger:        slog.Default(),
		output:        []string{Welcome},
		index:         -1,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Prompt renders the prompt for the current site owner
func (t *Terminal) Prompt() string {
	return Prompt(t.st.SiteInfo().Name)
}

// Prompt renders the prompt for an owner name: lower case, with every
// whitespace character replaced by a dash
func Prompt(name string) string {
	user := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '-'
		}
		return r
	}, strings.ToLower(name))
	return "[" + user + "@portfolio ~]$"
}

// Output returns a copy of the output log
func (t *Terminal) Output() []string {
	return append([]string(nil), t.output...)
}

// History returns a copy of the history, most recent first
func (t *Terminal) History() []string {
	return append([]string(nil), t.history...)
}

// Input returns the current input buffer
func (t *Terminal) Input() string {
	return t.input
}

// Type replaces the input buffer
func (t *Terminal) Type(s string) {
	t.input = s
}

// Previous moves one step back in history and loads that entry into the
// input buffer. It stops at the oldest entry.
func (t *Terminal) Previous() string {
	next := min(len(t.history)-1, t.index+1)
	if next >= 0 {
		t.input = t.history[next]
		t.index = next
	}
	return t.input
}

// Next moves one step forward in history; past the newest entry the input
// is emptied.
func (t *Terminal) Next() string {
	next := max(-1, t.index-1)
	if next >= 0 {
		t.input = t.history[next]
	} else {
		t.input = ""
	}
	t.index = next
	return t.input
}

// Submit runs the input buffer and returns the lines it appended to the
// output. A blank input appends a bare prompt.
func (t *Terminal) Submit(ctx context.Context) []string {
	line := t.input
	t.input = ""
	t.index = -1

	if strings.TrimSpace(line) == "" {
		return t.appendLines(t.Prompt())
	}

	t.history = append([]string{line}, t.history...)
	return t.execute(ctx, line)
}

// Run types line and submits it
func (t *Terminal) Run(ctx context.Context, line string) []string {
	t.Type(line)
	return t.Submit(ctx)
}

func (t *Terminal) appendLines(lines ...string) []string {
	t.output = append(t.output, lines...)
	return lines
}

func (t *Terminal) execute(ctx context.Context, line string) []string {
	fields := strings.Fields(line)
	command, args := fields[0], fields[1:]
	arg := ""
	if len(args) > 0 {
		arg = args[0]
	}

	cmd, ok := commands[command]
	label := command
	if !ok {
		label = "unknown"
	}
	observability.TerminalCommands.WithLabelValues(label).Inc()

	if command == "clear" {
		t.output = t.output[:0]
		return nil
	}

	echo := t.Prompt() + " " + line
	if !ok {
		return t.appendLines(echo, "Command not found: "+command+". Type 'help' for a list of commands.")
	}
	return t.appendLines(append([]string{echo}, cmd.run(ctx, t, arg)...)...)
}

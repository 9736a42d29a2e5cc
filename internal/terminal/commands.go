package terminal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"termfolio.dev/internal/state"
)

const dateLayout = "Mon Jan 02 2006 15:04:05 GMT-0700 (MST)"

type command struct {
	usage string
	help  string
	run   func(ctx context.Context, t *Terminal, arg string) []string
}

// commands is the dispatch table, keyed by exact name
var commands map[string]command

// helpOrder is the order commands are listed by help
var helpOrder = []string{
	"help", "whoami", "experience", "projects", "project", "contact",
	"theme", "mode", "login", "clear", "date",
}

func init() {
	commands = map[string]command{
		"help":       {"help", "Show this help message.", runHelp},
		"whoami":     {"whoami", "Display my bio.", runWhoAmI},
		"home":       {"home", "", runWhoAmI},
		"experience": {"experience", "Show my work experience.", runExperience},
		"projects":   {"projects", "List all projects.", runProjects},
		"project":    {"project <id>", "Show project details.", runProject},
		"contact":    {"contact", "Display contact information.", runContact},
		"theme":      {"theme <light|dark>", "Switch color theme.", runTheme},
		"mode":       {"mode classic", "Switch to classic UI. To return, choose the terminal mode again.", runMode},
		"login":      {"login", "Access the admin dashboard.", runLogin},
		"clear":      {"clear", "Clear the terminal screen.", nil},
		"date":       {"date", "Show the current date.", runDate},
	}
}

func runHelp(context.Context, *Terminal, string) []string {
	lines := []string{"Available Commands:"}
	for _, name := range helpOrder {
		c := commands[name]
		lines = append(lines, fmt.Sprintf("  %-20s %s", c.usage, c.help))
	}
	return lines
}

func runWhoAmI(_ context.Context, t *Terminal, _ string) []string {
	site := t.st.SiteInfo()
	lines := []string{site.Name, site.Title}
	return append(lines, site.Bio...)
}

func runExperience(_ context.Context, t *Terminal, _ string) []string {
	var lines []string
	for _, exp := range t.st.Experience() {
		lines = append(lines, exp.Role+" @ "+exp.Company, "  "+exp.Period())
		for _, d := range exp.Description {
			lines = append(lines, "  - "+d)
		}
	}
	return lines
}

func runProjects(_ context.Context, t *Terminal, _ string) []string {
	lines := []string{"Use 'project <id>' for more details."}
	for _, p := range t.st.Projects() {
		lines = append(lines, fmt.Sprintf("  %-20s %s", p.ID, p.Name))
	}
	return lines
}

func runProject(_ context.Context, t *Terminal, id string) []string {
	p, ok := t.st.Project(id)
	if !ok {
		return []string{"Project not found: " + id}
	}

	title := p.Name
	if p.Year != 0 {
		title = fmt.Sprintf("%s (%d)", p.Name, p.Year)
	}
	lines := []string{title, p.Description, strings.Join(p.TechNames(), ", ")}
	if p.Demo != "" {
		lines = append(lines, "Demo: "+p.Demo)
	}
	if p.Repo != "" {
		lines = append(lines, "Repo: "+p.Repo)
	}
	return lines
}

func runContact(_ context.Context, t *Terminal, _ string) []string {
	var lines []string
	for _, s := range t.st.SiteInfo().Socials {
		value := s.URL
		if value == "" {
			value = s.Phone
		}
		lines = append(lines, fmt.Sprintf("  %-12s %s", s.Name, value))
	}
	return lines
}

func runTheme(ctx context.Context, t *Terminal, arg string) []string {
	theme, err := state.ParseTheme(arg)
	if err != nil {
		return []string{"Invalid theme. Use 'light' or 'dark'."}
	}
	if err := t.st.SetTheme(ctx, theme); err != nil {
		t.logger.WarnContext(ctx, "failed to persist theme", slog.String("error", err.Error()))
	}
	return []string{"Theme set to " + arg}
}

func runMode(_ context.Context, t *Terminal, arg string) []string {
	if arg != string(state.ModeClassic) {
		return []string{"Invalid mode. Use 'classic'."}
	}
	t.st.SetMode(state.ModeClassic)
	return nil
}

func runLogin(_ context.Context, t *Terminal, _ string) []string {
	t.openDashboard()
	return nil
}

func runDate(_ context.Context, t *Terminal, _ string) []string {
	return []string{t.now().Format(dateLayout)}
}

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"

	"termfolio.dev/internal/editor"
	"termfolio.dev/internal/terminal"
)

// runTerminal loads the content and then hands stdin to a terminal session.
// The login command prompts for credentials on the same input.
func (a *app) runTerminal(ctx context.Context, in io.Reader, out io.Writer) error {
	a.state.Bootstrap(ctx)

	r := bufio.NewReader(in)
	login := editor.NewLogin(a.gateway, a.state)

	term := terminal.New(a.state,
		terminal.WithLogger(a.logger),
		terminal.WithDashboard(func() {
			a.dashboard(ctx, login, r, out)
		}),
	)
	return term.Serve(ctx, r, out)
}

// dashboard signs the owner in, or reports the active session
func (a *app) dashboard(ctx context.Context, login *editor.Login, r *bufio.Reader, out io.Writer) {
	if a.state.Authenticated() {
		fmt.Fprintln(out, "Already logged in. Admin endpoints are served by 'portfolio serve' under /admin.")
		return
	}

	fmt.Fprint(out, "Username: ")
	username, err := terminal.ReadLine(r)
	if err != nil {
		return
	}
	fmt.Fprint(out, "Password: ")
	password, err := terminal.ReadLine(r)
	if err != nil {
		return
	}

	if _, err := login.Submit(ctx, username, password); err != nil {
		a.logger.DebugContext(ctx, "terminal login failed", slog.String("error", err.Error()))
		fmt.Fprintln(out, login.Status().Error)
		return
	}
	fmt.Fprintln(out, login.Status().Success)
}

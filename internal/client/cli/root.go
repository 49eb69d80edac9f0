package cli

import (
	"context"
	"fmt"
)

// getStatus renders the prompt suffix: " (email)" when logged in.
func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	return fmt.Sprintf(" (%s)", a.userName)
}

// Root greets the user and runs the REPL over stdin.
func (a *App) Root(ctx context.Context) {
	a.println("Welcome to film-folio (type 'help' for commands)")
	if a.userName != "" {
		a.printf("Welcome back, %s\n", a.userName)
	}
	runREPL(ctx, a, a.getStatus, a.reader)
}

package cli

import (
	"bufio"
	"context"
	"os"
)

// Run starts the interactive client.
func (a *App) Run(ctx context.Context) {
	status := func() string {
		if a.current != nil {
			return a.current.User.Username
		}
		return "not logged in"
	}
	runREPL(ctx, a, status, bufio.NewScanner(os.Stdin))
}

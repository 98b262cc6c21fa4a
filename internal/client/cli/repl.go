package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it
// with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a
// lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Forgot(ctx context.Context) error
	Reset(ctx context.Context) error
	ListActive(ctx context.Context) error
	ListCompleted(ctx context.Context) error
	ListTrash(ctx context.Context) error
	Add(ctx context.Context) error
	Show(ctx context.Context) error
	Edit(ctx context.Context) error
	Done(ctx context.Context) error
	Undone(ctx context.Context) error
	Remove(ctx context.Context) error
	Restore(ctx context.Context) error
	Purge(ctx context.Context) error
	Profile(ctx context.Context) error
	UpdateProfile(ctx context.Context) error
	Passwd(ctx context.Context) error
	Avatar(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL reads a line, parses the first token as the command, and
// dispatches to methods on 'a'. Task views re-fetch from the server on
// every invocation; nothing is cached between commands. The loop exits on
// scanner EOF or when the user types "exit" or "quit". Commands that need
// a session are rejected up front, mirroring the web client's protected
// routes.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	protected := map[string]func(context.Context) error{
		"list":      a.ListActive,
		"l":         a.ListActive,
		"completed": a.ListCompleted,
		"trash":     a.ListTrash,
		"add":       a.Add,
		"show":      a.Show,
		"edit":      a.Edit,
		"done":      a.Done,
		"undone":    a.Undone,
		"rm":        a.Remove,
		"restore":   a.Restore,
		"purge":     a.Purge,
		"profile":   a.Profile,
		"update":    a.UpdateProfile,
		"passwd":    a.Passwd,
		"avatar":    a.Avatar,
		"logout":    a.Logout,
	}
	open := map[string]func(context.Context) error{
		"register": a.Register,
		"login":    a.Login,
		"forgot":   a.Forgot,
		"reset":    a.Reset,
	}

	for {
		printlnFn(fmt.Sprintf("tasky> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch {
		case cmd == "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, completed, trash, add, show, edit, done, undone, rm, restore, purge, profile, update, passwd, avatar, logout, exit")
			} else {
				printlnFn("Available commands: register, login, forgot, reset, exit")
			}

		case cmd == "exit" || cmd == "quit":
			printlnFn("Bye!")
			return

		default:
			if fn, ok := open[cmd]; ok {
				_ = fn(ctx)
				continue
			}
			fn, ok := protected[cmd]
			if !ok {
				printlnFn("Unknown command:", cmd)
				continue
			}
			if !a.isLoggedIn() {
				printlnFn("Please login first.")
				continue
			}
			_ = fn(ctx)
		}
	}
}

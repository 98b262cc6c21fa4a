// Package cli implements the terminal views of the TaskY client: auth
// forms, the three task lists, and profile management, driven by a REPL.
package cli

import (
	"bufio"
	"os"

	"github.com/taskyhq/tasky-be/internal/client/api"
	"github.com/taskyhq/tasky-be/internal/client/session"
)

// App holds the client state: the API client, the persisted session store,
// and the in-memory session.
type App struct {
	client   *api.Client
	sessions *session.Store
	current  *session.Session
	reader   *bufio.Reader
}

// NewApp creates the client application. A persisted session with an
// unexpired token is restored; otherwise the app starts unauthenticated.
func NewApp(serverURL, sessionPath string) (*App, error) {
	store := session.NewStore(sessionPath)
	sess, err := store.Load()
	if err != nil {
		return nil, err
	}

	client := api.New(serverURL)
	if sess != nil {
		client.SetToken(sess.Token)
	}

	return &App{
		client:   client,
		sessions: store,
		current:  sess,
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.current != nil
}

// activate persists and installs a fresh session.
func (a *App) activate(sess session.Session) error {
	if err := a.sessions.Save(sess); err != nil {
		return err
	}
	a.current = &sess
	a.client.SetToken(sess.Token)
	return nil
}

// deactivate clears both the in-memory and the persisted session.
func (a *App) deactivate() error {
	a.current = nil
	a.client.SetToken("")
	return a.sessions.Clear()
}

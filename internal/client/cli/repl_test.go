package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// execStub records which commands the REPL dispatched.
type execStub struct {
	loggedIn bool
	calls    []string
}

func (s *execStub) note(name string) error {
	s.calls = append(s.calls, name)
	return nil
}

func (s *execStub) isLoggedIn() bool { return s.loggedIn }

func (s *execStub) Register(context.Context) error      { return s.note("register") }
func (s *execStub) Login(context.Context) error         { return s.note("login") }
func (s *execStub) Forgot(context.Context) error        { return s.note("forgot") }
func (s *execStub) Reset(context.Context) error         { return s.note("reset") }
func (s *execStub) ListActive(context.Context) error    { return s.note("list") }
func (s *execStub) ListCompleted(context.Context) error { return s.note("completed") }
func (s *execStub) ListTrash(context.Context) error     { return s.note("trash") }
func (s *execStub) Add(context.Context) error           { return s.note("add") }
func (s *execStub) Show(context.Context) error          { return s.note("show") }
func (s *execStub) Edit(context.Context) error          { return s.note("edit") }
func (s *execStub) Done(context.Context) error          { return s.note("done") }
func (s *execStub) Undone(context.Context) error        { return s.note("undone") }
func (s *execStub) Remove(context.Context) error        { return s.note("rm") }
func (s *execStub) Restore(context.Context) error       { return s.note("restore") }
func (s *execStub) Purge(context.Context) error         { return s.note("purge") }
func (s *execStub) Profile(context.Context) error       { return s.note("profile") }
func (s *execStub) UpdateProfile(context.Context) error { return s.note("update") }
func (s *execStub) Passwd(context.Context) error        { return s.note("passwd") }
func (s *execStub) Avatar(context.Context) error        { return s.note("avatar") }
func (s *execStub) Logout(context.Context) error        { return s.note("logout") }

func runScript(t *testing.T, stub *execStub, script string) []string {
	t.Helper()

	var lines []string
	orig := printlnFn
	printlnFn = func(a ...interface{}) (int, error) {
		lines = append(lines, strings.TrimSpace(fmt.Sprintln(a...)))
		return 0, nil
	}
	defer func() { printlnFn = orig }()

	scanner := bufio.NewScanner(strings.NewReader(script))
	runREPL(context.Background(), stub, func() string { return "guest" }, scanner)
	return lines
}

func TestREPL_DispatchesOpenCommands(t *testing.T) {
	stub := &execStub{}
	runScript(t, stub, "register\nlogin\nforgot\nreset\nexit\n")
	assert.Equal(t, []string{"register", "login", "forgot", "reset"}, stub.calls)
}

func TestREPL_ProtectedCommandsNeedLogin(t *testing.T) {
	stub := &execStub{}
	lines := runScript(t, stub, "list\nadd\npurge\nexit\n")
	assert.Empty(t, stub.calls)
	assert.Contains(t, lines, "Please login first.")
}

func TestREPL_ProtectedCommandsWhenLoggedIn(t *testing.T) {
	stub := &execStub{loggedIn: true}
	runScript(t, stub, "list\nl\ncompleted\ntrash\ndone\nrm\nrestore\npurge\nlogout\nexit\n")
	assert.Equal(t, []string{"list", "list", "completed", "trash", "done", "rm", "restore", "purge", "logout"}, stub.calls)
}

func TestREPL_UnknownCommand(t *testing.T) {
	stub := &execStub{loggedIn: true}
	lines := runScript(t, stub, "frobnicate\nexit\n")
	assert.Empty(t, stub.calls)
	assert.Contains(t, lines, "Unknown command: frobnicate")
}

func TestREPL_BlankLinesAndEOF(t *testing.T) {
	stub := &execStub{}
	// No exit command: the loop must end on EOF.
	runScript(t, stub, "\n   \n")
	assert.Empty(t, stub.calls)
}

func TestREPL_HelpMatchesSessionState(t *testing.T) {
	out := runScript(t, &execStub{}, "help\nexit\n")
	assert.Contains(t, strings.Join(out, "\n"), "register, login, forgot, reset")

	out = runScript(t, &execStub{loggedIn: true}, "help\nexit\n")
	assert.Contains(t, strings.Join(out, "\n"), "logout")
}

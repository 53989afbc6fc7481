package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/tapcard/internal/client/api"
)

type fakeExec struct {
	loggedIn bool
	failWith error

	calls []string
	args  [][]string
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	return f.failWith
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(context.Context) error {
	f.loggedIn = true
	return f.record("register", nil)
}
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login", nil)
}
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout", nil)
}
func (f *fakeExec) WhoAmI(context.Context) error  { return f.record("whoami", nil) }
func (f *fakeExec) Profile(context.Context) error { return f.record("profile", nil) }
func (f *fakeExec) Edit(context.Context) error    { return f.record("edit", nil) }
func (f *fakeExec) Links(context.Context) error   { return f.record("links", nil) }
func (f *fakeExec) AddLink(context.Context) error { return f.record("addlink", nil) }
func (f *fakeExec) SetLink(_ context.Context, args []string) error {
	return f.record("setlink", args)
}
func (f *fakeExec) RmLink(_ context.Context, args []string) error {
	return f.record("rmlink", args)
}
func (f *fakeExec) DelLink(_ context.Context, args []string) error {
	return f.record("dellink", args)
}
func (f *fakeExec) Save(context.Context) error { return f.record("save", nil) }
func (f *fakeExec) QR(context.Context) error   { return f.record("qr", nil) }
func (f *fakeExec) Scan(_ context.Context, args []string) error {
	return f.record("scan", args)
}

func runLines(exec *fakeExec, lines ...string) string {
	var out bytes.Buffer
	runREPL(context.Background(), exec, func() string { return "" }, rdr(strings.Join(lines, "\n")), &out)
	return out.String()
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	exec := &fakeExec{}

	out := runLines(exec,
		"help",
		"profile",
		"login",
		"help",
		"edit",
		"addlink",
		"setlink 2",
		"rmlink 1",
		"dellink 3",
		"save",
		"qr",
		"foobar",
		"logout",
		"exit",
		"whoami",
	)

	assert.Equal(t, []string{"login", "edit", "addlink", "setlink", "rmlink", "dellink", "save", "qr", "logout"}, exec.calls)
	assert.Equal(t, []string{"2"}, exec.args[3])
	assert.Contains(t, out, helpEntry)
	assert.Contains(t, out, helpHome)
	assert.Contains(t, out, "Please log in first.")
	assert.Contains(t, out, "Unknown command: foobar")
	assert.Contains(t, out, "Bye!")
}

func TestRunREPL_ScanWorksLoggedOut(t *testing.T) {
	exec := &fakeExec{}
	runLines(exec, "scan https://svc/user/42", "quit")

	assert.Equal(t, []string{"scan"}, exec.calls)
	assert.Equal(t, []string{"https://svc/user/42"}, exec.args[0])
}

func TestRunREPL_ErrorsArePrintedAndLoopContinues(t *testing.T) {
	exec := &fakeExec{loggedIn: true, failWith: &api.APIError{Status: 400, Detail: api.TextDetail("bad link")}}
	out := runLines(exec, "save", "links", "exit")

	assert.Equal(t, []string{"save", "links"}, exec.calls)
	assert.Equal(t, 2, strings.Count(out, "Error: bad link"))

	exec = &fakeExec{loggedIn: true, failWith: errors.New("plain")}
	out = runLines(exec, "profile")
	assert.Contains(t, out, "Error: plain")
}

func TestRunREPL_EOFEnds(t *testing.T) {
	exec := &fakeExec{loggedIn: true}
	runLines(exec, "", "   ", "whoami")
	assert.Equal(t, []string{"whoami"}, exec.calls)
}

func TestRunREPL_PromptShowsStatus(t *testing.T) {
	var out bytes.Buffer
	runREPL(context.Background(), &fakeExec{}, func() string { return "(a@b.com)" }, rdr("exit\n"), &out)
	assert.True(t, strings.HasPrefix(out.String(), "tapcard (a@b.com)> "))
}

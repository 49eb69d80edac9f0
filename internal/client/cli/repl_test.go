package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	failOn   string

	calls []string
	args  map[string][]string
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	if f.args == nil {
		f.args = map[string][]string{}
	}
	f.args[name] = args
	if name == f.failOn {
		return fmt.Errorf("%s failed", name)
	}
	return nil
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
func (f *fakeExec) WhoAmI(context.Context) error { return f.record("whoami", nil) }
func (f *fakeExec) Popular(_ context.Context, args []string) error {
	return f.record("popular", args)
}
func (f *fakeExec) TopRated(_ context.Context, args []string) error {
	return f.record("toprated", args)
}
func (f *fakeExec) Search(_ context.Context, args []string) error { return f.record("search", args) }
func (f *fakeExec) Show(_ context.Context, args []string) error   { return f.record("show", args) }
func (f *fakeExec) Favorite(_ context.Context, args []string) error {
	return f.record("fav", args)
}
func (f *fakeExec) Unfavorite(_ context.Context, args []string) error {
	return f.record("unfav", args)
}
func (f *fakeExec) Favorites(context.Context) error { return f.record("favorites", nil) }
func (f *fakeExec) Share(context.Context) error     { return f.record("share", nil) }

func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, fmt.Sprintln(a...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"popular 2",
		"t",
		"search dune -p 1",
		"",
		"show 1",
		"fav 1",
		"unfav 1",
		"favorites",
		"share",
		"whoami",
		"logout",
		"register",
		"exit",
		"popular",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(input))

	assert.Equal(t, []string{
		"login", "popular", "toprated", "search", "show", "fav", "unfav",
		"favorites", "share", "whoami", "logout", "register",
	}, exec.calls)
	assert.Equal(t, []string{"2"}, exec.args["popular"])
	assert.Equal(t, []string{"dune", "-p", "1"}, exec.args["search"])
	assert.Equal(t, []string{"1"}, exec.args["unfav"])
}

func TestRunREPL_HelpDependsOnLogin(t *testing.T) {
	lines := capturePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" },
		bufio.NewReader(strings.NewReader("help\nlogin\nhelp\nquit\n")))

	var help []string
	for _, l := range *lines {
		if strings.HasPrefix(l, "Available commands:") {
			help = append(help, l)
		}
	}
	if assert.Len(t, help, 2) {
		assert.Contains(t, help[0], "register")
		assert.NotContains(t, help[0], "favorites")
		assert.Contains(t, help[1], "favorites")
	}
}

func TestRunREPL_ReportsErrorsAndUnknown(t *testing.T) {
	lines := capturePrintln(t)

	exec := &fakeExec{failOn: "show"}
	runREPL(context.Background(), exec, func() string { return " (a@b.c)" },
		bufio.NewReader(strings.NewReader("show 9\nfoobar\n")))

	out := strings.Join(*lines, "")
	assert.Contains(t, out, "ff (a@b.c)> ")
	assert.Contains(t, out, "Error: show failed")
	assert.Contains(t, out, "Unknown command: foobar")
}

func TestRunREPL_StopsOnCancelledContext(t *testing.T) {
	silencePrintln(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "" }, bufio.NewReader(strings.NewReader("popular\n")))
	assert.Empty(t, exec.calls)
}

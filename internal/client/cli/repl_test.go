package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type stubExec struct {
	loggedIn bool
	calls    []string
}

func (s *stubExec) isLoggedIn() bool { return s.loggedIn }

func (s *stubExec) record(name string) error {
	s.calls = append(s.calls, name)
	return nil
}

func (s *stubExec) Register(ctx context.Context) error {
	s.loggedIn = true
	return s.record("register")
}

func (s *stubExec) Login(ctx context.Context) error {
	s.loggedIn = true
	return s.record("login")
}

func (s *stubExec) Logout(ctx context.Context) error {
	s.loggedIn = false
	return s.record("logout")
}

func (s *stubExec) List(ctx context.Context) error     { return s.record("list") }
func (s *stubExec) Add(ctx context.Context) error      { return s.record("add") }
func (s *stubExec) Complete(ctx context.Context) error { return s.record("complete") }
func (s *stubExec) Remove(ctx context.Context) error   { return s.record("remove") }

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	orig := printlnFn
	t.Cleanup(func() { printlnFn = orig })

	lines := &[]string{}
	printlnFn = func(a ...any) {
		var parts []string
		for _, v := range a {
			if s, ok := v.(string); ok {
				parts = append(parts, s)
			}
		}
		*lines = append(*lines, strings.Join(parts, " "))
	}
	return lines
}

func runScript(t *testing.T, exec *stubExec, script string) {
	t.Helper()
	scanner := bufio.NewScanner(strings.NewReader(script))
	runREPL(context.Background(), exec, func() string { return "test" }, scanner)
}

func TestREPL_LoginThenCommands(t *testing.T) {
	captureOutput(t)
	exec := &stubExec{}

	runScript(t, exec, "login\nlist\nadd\ncomplete\nremove\nlogout\nexit\n")

	want := []string{"login", "list", "add", "complete", "remove", "logout"}
	if len(exec.calls) != len(want) {
		t.Fatalf("want %v, got %v", want, exec.calls)
	}
	for i, name := range want {
		if exec.calls[i] != name {
			t.Fatalf("want %v, got %v", want, exec.calls)
		}
	}
}

func TestREPL_RequiresLogin(t *testing.T) {
	lines := captureOutput(t)
	exec := &stubExec{}

	runScript(t, exec, "list\nadd\nquit\n")

	if len(exec.calls) != 0 {
		t.Fatalf("commands must not run before login: %v", exec.calls)
	}

	unknown := 0
	for _, line := range *lines {
		if strings.Contains(line, "Unknown command") {
			unknown++
		}
	}
	if unknown != 2 {
		t.Fatalf("want 2 unknown-command messages, got %d", unknown)
	}
}

func TestREPL_UnknownCommandWhenLoggedIn(t *testing.T) {
	lines := captureOutput(t)
	exec := &stubExec{loggedIn: true}

	runScript(t, exec, "frobnicate\nexit\n")

	found := false
	for _, line := range *lines {
		if strings.Contains(line, "Unknown command") {
			found = true
		}
	}
	if !found {
		t.Fatal("unknown command must be reported")
	}
}

func TestREPL_Help(t *testing.T) {
	lines := captureOutput(t)
	exec := &stubExec{}

	runScript(t, exec, "help\nlogin\nhelp\nexit\n")

	var helps []string
	for _, line := range *lines {
		if strings.HasPrefix(line, "Commands:") {
			helps = append(helps, line)
		}
	}
	if len(helps) != 2 {
		t.Fatalf("want 2 help printouts, got %d", len(helps))
	}
	if !strings.Contains(helps[0], "register") || !strings.Contains(helps[1], "list") {
		t.Fatalf("help must match login state: %v", helps)
	}
}

func TestREPL_BlankAndEOF(t *testing.T) {
	captureOutput(t)
	exec := &stubExec{loggedIn: true}

	// blank lines are skipped; EOF ends the loop without a command
	runScript(t, exec, "\n   \n")

	if len(exec.calls) != 0 {
		t.Fatalf("no commands expected, got %v", exec.calls)
	}
}

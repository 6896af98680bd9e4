package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it
// with a stub.
var printlnFn = func(a ...any) { fmt.Println(a...) }

// execIface defines the minimal command surface the REPL needs to
// operate. The real App type satisfies this interface; tests can provide
// a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context) error
	Add(ctx context.Context) error
	Complete(ctx context.Context) error
	Remove(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop. It reads a line from the
// scanner, parses the first token as the command, and dispatches to
// methods on 'a'. Unknown commands are reported back to the user. The
// loop exits on scanner EOF or when the user types "exit" or "quit".
// Errors returned by command handlers are ignored here; handlers log
// their own errors.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("tk> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]

		switch cmd {
		case "exit", "quit":
			return
		case "help":
			printHelp(a.isLoggedIn())
			continue
		}

		if !a.isLoggedIn() {
			switch cmd {
			case "register":
				_ = a.Register(ctx)
			case "login":
				_ = a.Login(ctx)
			default:
				printlnFn("Unknown command. Type 'help' for a list of commands.")
			}
			continue
		}

		switch cmd {
		case "list":
			_ = a.List(ctx)
		case "add":
			_ = a.Add(ctx)
		case "complete":
			_ = a.Complete(ctx)
		case "remove":
			_ = a.Remove(ctx)
		case "logout":
			_ = a.Logout(ctx)
		default:
			printlnFn("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

func printHelp(loggedIn bool) {
	if !loggedIn {
		printlnFn("Commands: register, login, help, exit")
		return
	}
	printlnFn("Commands: list, add, complete, remove, logout, help, exit")
}

package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Language(ctx context.Context, code string) error
	Home(ctx context.Context) error
	SelfAssessment(ctx context.Context) error
	Scan(ctx context.Context) error
	Cure(ctx context.Context) error
	History(ctx context.Context) error
	Delete(ctx context.Context, id string) error
	Hospitals(ctx context.Context, query string) error
}

// runREPL starts a simple read–eval–print loop for the deepneumoscan CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF, when ctx is done, or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current page and user (from statusFn) and accepts:
//
//	Not logged in:
//	  - help              show available commands
//	  - signup            create an account and log in
//	  - login             authenticate
//	  - hospitals [query] map link for nearby hospitals
//	  - exit | quit       leave the program
//
//	Logged in:
//	  - help              show available commands
//	  - home              welcome page and menu
//	  - self              symptom self-assessment
//	  - scan              chest X-ray scan
//	  - cure              recovery assessment
//	  - history           list past results
//	  - delete <id>       delete a past result
//	  - hospitals [query] map link for nearby hospitals
//	  - lang [code]       show or change the language
//	  - logout            log out
//	  - exit | quit       leave the program
//
// Any errors returned by command handlers are ignored here; handlers print
// their own notices. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("dns %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		arg := strings.Join(parts[1:], " ")

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: home, self, scan, cure, history, delete <id>, hospitals [query], lang [code], logout, exit")
			} else {
				printlnFn("Available commands: signup, login, hospitals [query], exit")
			}

		case "signup", "register":
			_ = a.Signup(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "lang":
			_ = a.Language(ctx, arg)

		case "home":
			_ = a.Home(ctx)

		case "self":
			_ = a.SelfAssessment(ctx)

		case "scan":
			_ = a.Scan(ctx)

		case "cure":
			_ = a.Cure(ctx)

		case "history", "l", "list":
			_ = a.History(ctx)

		case "delete", "rm":
			_ = a.Delete(ctx, arg)

		case "hospitals":
			_ = a.Hospitals(ctx, arg)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

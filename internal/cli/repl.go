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

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Profile(ctx context.Context) error
	Avatar(ctx context.Context) error
	Post(ctx context.Context) error
	Posts(ctx context.Context) error
	DeletePost(ctx context.Context) error
	Comment(ctx context.Context) error
	Comments(ctx context.Context) error
	Visits(ctx context.Context) error
}

// runREPL reads a line, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back. The
// loop exits on scanner EOF or when the user types "exit" or "quit".
// Errors returned by command handlers are ignored here; handlers print
// their own messages, keeping the loop focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func(ctx context.Context) string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("omega> %s > ", statusFn(ctx)))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "help":
			if a.isLoggedIn(ctx) {
				printlnFn("Available commands: whoami, profile, avatar, post, posts, delpost, comment, comments, visits, logout, exit")
			} else {
				printlnFn("Available commands: register, login, posts, comments, visits, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "avatar":
			_ = a.Avatar(ctx)

		case "post":
			_ = a.Post(ctx)

		case "posts":
			_ = a.Posts(ctx)

		case "delpost":
			_ = a.DeletePost(ctx)

		case "comment":
			_ = a.Comment(ctx)

		case "comments":
			_ = a.Comments(ctx)

		case "visits":
			_ = a.Visits(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", parts[0])
		}
	}
}

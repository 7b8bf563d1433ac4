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
	Logout(ctx context.Context) error
	List(ctx context.Context) error
	Favorites(ctx context.Context) error
	MyStories(ctx context.Context) error
	Submit(ctx context.Context) error
	Delete(ctx context.Context) error
	Fav(ctx context.Context) error
	Unfav(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the story client.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Anyone may browse the feed; everything that writes requires a login and
// is hidden from the anonymous help text. Errors returned by command
// handlers are ignored here; handlers print their own messages. This keeps
// the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("hs %s> ", statusFn()))
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
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, favorites, mine, submit, delete, fav, unfav, logout, exit")
			} else {
				printlnFn("Available commands: (l)ist, register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "favorites":
			_ = a.Favorites(ctx)

		case "mine":
			_ = a.MyStories(ctx)

		case "submit":
			_ = a.Submit(ctx)

		case "delete":
			_ = a.Delete(ctx)

		case "fav":
			_ = a.Fav(ctx)

		case "unfav":
			_ = a.Unfav(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

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
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Popular(ctx context.Context, args []string) error
	TopRated(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Favorite(ctx context.Context, args []string) error
	Unfavorite(ctx context.Context, args []string) error
	Favorites(ctx context.Context) error
	Share(ctx context.Context) error
}

// runREPL starts a read-eval-print loop for the film-folio CLI.
//
// It reads a line from in, parses the first token as the
// command and the rest as its arguments, and dispatches to methods on 'a'.
// The loop exits on EOF, on ctx cancellation, or when the user
// types "exit" or "quit".
//
// Commands available to everyone:
//
//	help                     show available commands
//	popular [page]           list popular movies
//	toprated [page]          list top rated movies
//	search <query> [-p N]    search by title or genre
//	show <id>                movie details
//	register | login         authenticate
//	exit | quit              leave the program
//
// Logged in only:
//
//	fav <id> | unfav <id>    add or remove a favorite
//	favorites                list favorites
//	share                    upload favorites and print a link
//	whoami | logout
//
// Errors returned by command handlers are printed and the loop continues.
// Handlers prompt through the same reader, so in must be the App's reader.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("ff%s> ", statusFn()))
		line, readErr := in.ReadString('\n')
		if readErr != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: popular, toprated, search, show, fav, unfav, favorites, share, whoami, logout, exit")
			} else {
				printlnFn("Available commands: popular, toprated, search, show, register, login, exit")
			}

		case "register":
			err = a.Register(ctx)

		case "login":
			err = a.Login(ctx)

		case "logout":
			err = a.Logout(ctx)

		case "whoami":
			err = a.WhoAmI(ctx)

		case "p", "popular":
			err = a.Popular(ctx, args)

		case "t", "toprated":
			err = a.TopRated(ctx, args)

		case "s", "search":
			err = a.Search(ctx, args)

		case "show":
			err = a.Show(ctx, args)

		case "fav":
			err = a.Favorite(ctx, args)

		case "unfav":
			err = a.Unfavorite(ctx, args)

		case "f", "favorites":
			err = a.Favorites(ctx)

		case "share":
			err = a.Share(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err.Error())
		}
	}
}

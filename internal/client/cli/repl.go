package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn and promptFn are test seams for REPL output. In tests, replace
// them with stubs.
var (
	printlnFn = fmt.Println
	promptFn  = fmt.Printf
)

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	status() string
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Navigate(ctx context.Context, path string) error
	ListCommand(ctx context.Context, cmd string, args []string) error
	DeleteCustomer(ctx context.Context, id string) error
	Biometrics(ctx context.Context, args []string) error
	Export(ctx context.Context, dest string) error
}

const (
	helpAnonymous = "Available commands: login, help, exit"
	helpSignedIn  = `Available commands:
  home | customers | plans | subscriptions | payments | checkin | attendances
  go <path>                      open a screen by path, e.g. go /customers/<id>
  search <text> | filter <type|gender|status> <value|all>
  pagesize <10|25|50|100> | page <n> | next | prev | sort <column> | reload
  show <id> | add | edit <id> | rm <id>
  bio <customer-id> | bio add <customer-id> | bio primary <id> | bio rm <id>
  export <file|s3://bucket/key>
  whoami | logout | exit`
)

// shortcuts maps menu commands to their paths.
var shortcuts = map[string]string{
	"home":          "/",
	"dashboard":     "/",
	"customers":     "/customers",
	"c":             "/customers",
	"add":           "/customers/new",
	"plans":         "/plans",
	"subscriptions": "/subscriptions",
	"payments":      "/payments",
	"checkin":       "/checkin",
	"attendances":   "/attendances",
}

// runREPL reads commands from reader and dispatches them to a until EOF,
// "exit"/"quit", or ctx is done. Handlers report their own errors; the
// loop keeps going regardless.
func runREPL(ctx context.Context, a execIface, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		promptFn("gym %s> ", a.status())
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
			printlnFn()
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		if !dispatch(ctx, a, cmd, args) {
			return
		}
	}
}

// dispatch runs one command and reports whether the REPL should continue.
func dispatch(ctx context.Context, a execIface, cmd string, args []string) bool {
	switch cmd {
	case "help", "?":
		if a.isLoggedIn() {
			printlnFn(helpSignedIn)
		} else {
			printlnFn(helpAnonymous)
		}
		return true

	case "exit", "quit":
		printlnFn("Bye!")
		return false

	case "login":
		_ = a.Login(ctx)
		return true
	}

	if !a.isLoggedIn() {
		printlnFn("Please login first (type 'login').")
		return true
	}

	switch cmd {
	case "logout":
		_ = a.Logout(ctx)

	case "whoami":
		_ = a.WhoAmI(ctx)

	case "go":
		if len(args) != 1 {
			printlnFn("Usage: go <path>")
			break
		}
		_ = a.Navigate(ctx, args[0])

	case "show", "edit":
		if len(args) != 1 {
			printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
			break
		}
		path := "/customers/" + args[0]
		if cmd == "edit" {
			path += "/edit"
		}
		_ = a.Navigate(ctx, path)

	case "rm", "delete":
		if len(args) != 1 {
			printlnFn("Usage: rm <id>")
			break
		}
		_ = a.DeleteCustomer(ctx, args[0])

	case "search", "filter", "pagesize", "page", "next", "prev", "sort", "reload":
		_ = a.ListCommand(ctx, cmd, args)

	case "bio":
		_ = a.Biometrics(ctx, args)

	case "export":
		if len(args) != 1 {
			printlnFn("Usage: export <file|s3://bucket/key>")
			break
		}
		_ = a.Export(ctx, args[0])

	default:
		if path, ok := shortcuts[cmd]; ok {
			_ = a.Navigate(ctx, path)
			break
		}
		printlnFn("Unknown command:", cmd)
	}
	return true
}

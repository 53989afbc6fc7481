package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Profile(ctx context.Context) error
	Edit(ctx context.Context) error
	Links(ctx context.Context) error
	AddLink(ctx context.Context) error
	SetLink(ctx context.Context, args []string) error
	RmLink(ctx context.Context, args []string) error
	DelLink(ctx context.Context, args []string) error
	Save(ctx context.Context) error
	QR(ctx context.Context) error
	Scan(ctx context.Context, args []string) error
}

const (
	helpEntry = "Available commands: register, login, scan <payload>, help, exit"
	helpHome  = "Available commands: whoami, profile, edit, links, addlink, setlink <n>, rmlink <n>, dellink <n>, save, qr, scan <payload>, logout, help, exit"
)

// runREPL starts a simple read–eval–print loop for the TapCard CLI.
//
// It reads a line from reader, parses the first token as the command
// and dispatches to a. Commands that need a session are refused until the
// user logs in. A failed command prints one error line and the loop goes on;
// it exits on EOF or when the user types "exit" or "quit".
//
// Commands share reader with their own prompts, so the loop reads one line at
// a time instead of buffering ahead.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	for {
		fmt.Fprintf(out, "tapcard%s> ", prefixSpace(statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if needsSession(cmd) && !a.isLoggedIn() {
			fmt.Fprintln(out, "Please log in first.")
			continue
		}

		err = nil
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(out, helpHome)
			} else {
				fmt.Fprintln(out, helpEntry)
			}

		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "whoami":
			err = a.WhoAmI(ctx)
		case "profile":
			err = a.Profile(ctx)
		case "edit":
			err = a.Edit(ctx)
		case "links":
			err = a.Links(ctx)
		case "addlink":
			err = a.AddLink(ctx)
		case "setlink":
			err = a.SetLink(ctx, args)
		case "rmlink":
			err = a.RmLink(ctx, args)
		case "dellink":
			err = a.DelLink(ctx, args)
		case "save":
			err = a.Save(ctx)
		case "qr":
			err = a.QR(ctx)
		case "scan":
			err = a.Scan(ctx, args)

		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return

		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}

		if err != nil {
			fmt.Fprintln(out, "Error:", describe(err))
		}
	}
}

func needsSession(cmd string) bool {
	switch cmd {
	case "logout", "whoami", "profile", "edit", "links", "addlink",
		"setlink", "rmlink", "dellink", "save", "qr":
		return true
	}
	return false
}

func prefixSpace(s string) string {
	if s == "" {
		return ""
	}
	return " " + s
}

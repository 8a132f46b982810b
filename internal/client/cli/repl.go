package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/callsecure/internal/common"
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
	Dashboard(ctx context.Context) error
	SelectTab(ctx context.Context, name string) error
	ToggleMonitoring(ctx context.Context) error
	DismissAlert(ctx context.Context) error
	Export(ctx context.Context, path string) error
	Import(ctx context.Context, path string) error
}

const (
	guestHelp  = "Available commands: register, login, import <file>, export <file>, exit"
	memberHelp = "Available commands: dashboard, tab <overview|monitoring|devices|alerts>, monitor, dismiss, logout, export <file>, exit"
)

// guestOnly and memberOnly list the commands that exist in one state only.
var (
	guestOnly  = map[string]bool{"register": true, "login": true, "import": true}
	memberOnly = map[string]bool{"dashboard": true, "tab": true, "monitor": true, "dismiss": true, "logout": true}
)

// runREPL starts a simple read–eval–print loop for the CallSecure CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands and commands that are not
// available in the current state are reported back to the user. The loop
// exits on EOF or when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help             show available commands
//	  - register         create an account
//	  - login            authenticate
//	  - import <file>    load a storage snapshot
//	  - export <file>    save a storage snapshot
//	  - exit | quit      leave the program
//
//	Logged in:
//	  - help             show available commands
//	  - dashboard        redraw the dashboard
//	  - tab <name>       switch dashboard tab
//	  - monitor          pause or resume monitoring
//	  - dismiss          hide the alert banner
//	  - logout           forget the session
//	  - export <file>    save a storage snapshot
//	  - exit | quit      leave the program
//
// Errors returned by command handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("cs (%s)> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if (guestOnly[cmd] && a.isLoggedIn()) || (memberOnly[cmd] && !a.isLoggedIn()) {
			printlnFn("Command not available now:", cmd)
			continue
		}

		var cmdErr error

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(memberHelp)
			} else {
				printlnFn(guestHelp)
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "dashboard":
			cmdErr = a.Dashboard(ctx)

		case "tab":
			if len(args) == 0 {
				printlnFn("Usage: tab <overview|monitoring|devices|alerts>")
				continue
			}
			cmdErr = a.SelectTab(ctx, args[0])

		case "monitor":
			cmdErr = a.ToggleMonitoring(ctx)

		case "dismiss":
			cmdErr = a.DismissAlert(ctx)

		case "export", "import":
			if len(args) == 0 {
				printlnFn(fmt.Sprintf("Usage: %s <file>", cmd))
				continue
			}
			if cmd == "export" {
				cmdErr = a.Export(ctx, args[0])
			} else {
				cmdErr = a.Import(ctx, args[0])
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		switch {
		case cmdErr == nil:
		case errors.Is(cmdErr, common.ErrorInternal):
			printlnFn("Something went wrong, please try again")
		default:
			printlnFn("Error:", cmdErr)
		}
	}
}

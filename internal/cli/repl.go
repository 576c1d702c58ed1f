package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to
// operate. The real App type satisfies this interface; tests can
// provide a lightweight stub.
type execIface interface {
	AddUser(ctx context.Context) error
	ListUsers(ctx context.Context) error
	DeleteUser(ctx context.Context) error
	AddGroup(ctx context.Context) error
	ListGroups(ctx context.Context) error
	JoinGroup(ctx context.Context) error
	Login(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop over the directory
// store.
//
// It reads a line from the provided scanner, parses the first token as
// the command, and dispatches to methods on 'a'. Unknown commands are
// reported back to the user. The loop exits on scanner EOF or when the
// user types "exit" or "quit".
//
// Commands:
//
//	help        — show available commands
//	adduser     — create a user (interactive prompts, masked password)
//	listusers   — list users with email and group memberships
//	deluser     — delete a user
//	addgroup    — create a group
//	listgroups  — list groups with their members
//	joingroup   — add a user to a group
//	login       — verify a username/password pair
//	exit | quit — save and leave the program
//
// Any errors returned by command handlers are ignored here; handlers
// report their own errors. This keeps the REPL loop resilient and
// focused on I/O.
func runREPL(ctx context.Context, a execIface, scanner *bufio.Scanner) {
	for {
		printlnFn("dir> ")
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
			printlnFn("Available commands: adduser, listusers, deluser, addgroup, listgroups, joingroup, login, exit")

		case "adduser":
			_ = a.AddUser(ctx)

		case "listusers":
			_ = a.ListUsers(ctx)

		case "deluser":
			_ = a.DeleteUser(ctx)

		case "addgroup":
			_ = a.AddGroup(ctx)

		case "listgroups":
			_ = a.ListGroups(ctx)

		case "joingroup":
			_ = a.JoinGroup(ctx)

		case "login":
			_ = a.Login(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

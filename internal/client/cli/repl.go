package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn and printFn are test seams for user-facing output.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

// execIface is the command surface the REPL dispatches to. App implements it.
type execIface interface {
	isLoggedIn() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error

	Me(ctx context.Context) error
	Interests(ctx context.Context) error
	SetInterests(ctx context.Context) error
	Similar(ctx context.Context) error
	Users(ctx context.Context) error
	Admin(ctx context.Context) error

	Post(ctx context.Context) error
	Posts(ctx context.Context) error
	PostsOf(ctx context.Context) error
	EditPost(ctx context.Context) error
	DeletePosts(ctx context.Context) error
	DeleteMe(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, help, exit"
	helpLoggedIn  = "Available commands: me, interests, setinterests, similar, users, admin, post, posts, postsof, editpost, deleteposts, deleteme, logout, help, exit"
)

// runREPL reads commands from reader until EOF, "exit"/"quit" or ctx is
// done. Command errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		prompt := "ik> "
		if s := statusFn(); s != "" {
			prompt = s + " " + prompt
		}
		printFn(prompt)

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		var cmdErr error
		switch cmd := parts[0]; cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)

		case "me", "interests", "setinterests", "similar", "users", "admin", "post", "posts",
			"postsof", "editpost", "deleteposts", "deleteme", "logout":
			if !a.isLoggedIn() {
				printlnFn("Please login first")
				continue
			}
			cmdErr = dispatch(ctx, a, cmd)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string) error {
	switch cmd {
	case "me":
		return a.Me(ctx)
	case "interests":
		return a.Interests(ctx)
	case "setinterests":
		return a.SetInterests(ctx)
	case "similar":
		return a.Similar(ctx)
	case "users":
		return a.Users(ctx)
	case "admin":
		return a.Admin(ctx)
	case "post":
		return a.Post(ctx)
	case "posts":
		return a.Posts(ctx)
	case "postsof":
		return a.PostsOf(ctx)
	case "editpost":
		return a.EditPost(ctx)
	case "deleteposts":
		return a.DeletePosts(ctx)
	case "deleteme":
		return a.DeleteMe(ctx)
	case "logout":
		return a.Logout(ctx)
	}
	return fmt.Errorf("unknown command %q", cmd)
}

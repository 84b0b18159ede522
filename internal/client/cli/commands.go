package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/interestnet/internal/common"
	"github.com/dmitrijs2005/interestnet/internal/server/models"
)

// getSimpleText, getPassword and getMultiline are swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

var errPasswordMismatch = errors.New("passwords do not match")

// Register prompts for the signup fields and creates the account. The
// returned token is kept, so the user is logged in afterwards.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	interests, err := getSimpleText(a.reader, "Enter interests (comma separated, at least 2)", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	repeat, err := getPassword(a.out, "Repeat password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(repeat)

	if string(password) != string(repeat) {
		return errPasswordMismatch
	}

	view, err := a.api.Register(ctx, models.SignupRequest{
		Email:             email,
		Name:              name,
		Password:          string(password),
		RepeatingPassword: string(repeat),
		Interests:         interests,
	})
	if err != nil {
		return err
	}

	a.userName = view.Name
	a.logger.Info(ctx, "registered", "user_id", view.ID)
	fmt.Fprintf(a.out, "Registered %s (id %d), token valid until %s\n",
		view.Email, view.ID, view.Token.Expires.Format("2006-01-02 15:04"))
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.api.Login(ctx, email, string(password)); err != nil {
		return err
	}

	a.userName = email
	if me, err := a.api.Me(ctx); err == nil {
		a.userName = me.Name
	}

	fmt.Fprintln(a.out, "Login successful")
	return nil
}

// Logout only drops the in-memory token; the server keeps it until expiry.
func (a *App) Logout(ctx context.Context) error {
	a.api.Logout()
	a.userName = ""
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) Me(ctx context.Context) error {
	me, err := a.api.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "id:        %d\nemail:     %s\nname:      %s\nactive:    %t\nsuperuser: %t\n",
		me.ID, me.Email, me.Name, me.IsActive, me.IsSuperuser)
	return nil
}

func (a *App) Interests(ctx context.Context) error {
	in, err := a.api.Interests(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, in.Interests)
	return nil
}

func (a *App) SetInterests(ctx context.Context) error {
	text, err := getSimpleText(a.reader, "Enter interests (comma separated, at least 2)", a.out)
	if err != nil {
		return err
	}
	in, err := a.api.UpdateInterests(ctx, text)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Interests updated:", in.Interests)
	return nil
}

// Similar prints one line per matching user, sorted by name.
func (a *App) Similar(ctx context.Context) error {
	similar, err := a.api.Similar(ctx)
	if err != nil {
		return err
	}
	if len(similar) == 0 {
		fmt.Fprintln(a.out, "No users with shared interests")
		return nil
	}

	names := make([]string, 0, len(similar))
	for name := range similar {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(a.out, "%s: %s\n", name, strings.Join(similar[name], ", "))
	}
	return nil
}

func (a *App) Users(ctx context.Context) error {
	users, err := a.api.AllUsers(ctx)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		fmt.Fprintln(a.out, "No users")
		return nil
	}
	for _, u := range users {
		fmt.Fprintf(a.out, "%d %s <%s>: %s\n", u.ID, u.Name, u.Email, u.Interests)
	}
	return nil
}

// Admin prints every account with its token. Only superusers get an answer.
func (a *App) Admin(ctx context.Context) error {
	users, err := a.api.AdminUsers(ctx)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		fmt.Fprintln(a.out, "No users")
		return nil
	}
	for _, u := range users {
		fmt.Fprintf(a.out, "%d %s <%s> active=%t superuser=%t token=%s expires=%s\n",
			u.ID, u.Name, u.Email, u.IsActive, u.IsSuperuser,
			u.Token.Token, u.Token.Expires.Format("2006-01-02 15:04"))
	}
	return nil
}

func (a *App) Post(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter title", a.out)
	if err != nil {
		return err
	}
	content, err := getMultiline(a.reader, "Enter content", a.out)
	if err != nil {
		return err
	}

	p, err := a.api.CreatePost(ctx, models.PostInput{Title: title, Content: content})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Post %d created\n", p.ID)
	return nil
}

func (a *App) Posts(ctx context.Context) error {
	posts, err := a.api.MyPosts(ctx)
	if err != nil {
		return err
	}
	a.printPosts(posts)
	return nil
}

func (a *App) PostsOf(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter author name", a.out)
	if err != nil {
		return err
	}
	posts, err := a.api.PostsOf(ctx, name)
	if err != nil {
		return err
	}
	a.printPosts(posts)
	return nil
}

func (a *App) EditPost(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter title of the post(s) to edit", a.out)
	if err != nil {
		return err
	}
	content, err := getMultiline(a.reader, "Enter new content", a.out)
	if err != nil {
		return err
	}

	n, err := a.api.UpdatePost(ctx, title, content)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%d post(s) updated\n", n)
	return nil
}

func (a *App) DeletePosts(ctx context.Context) error {
	ok, err := Confirm(a.reader, "Delete all your posts?", a.out)
	if err != nil || !ok {
		return err
	}
	n, err := a.api.DeletePosts(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%d post(s) deleted\n", n)
	return nil
}

func (a *App) DeleteMe(ctx context.Context) error {
	ok, err := Confirm(a.reader, "Delete your account with all posts and interests?", a.out)
	if err != nil || !ok {
		return err
	}
	if err := a.api.DeleteMe(ctx); err != nil {
		return err
	}
	a.userName = ""
	fmt.Fprintln(a.out, "Account deleted")
	return nil
}

func (a *App) printPosts(posts []models.Post) {
	if len(posts) == 0 {
		fmt.Fprintln(a.out, "No posts")
		return
	}
	for _, p := range posts {
		author := ""
		if p.AuthorName != "" {
			author = " by " + p.AuthorName
		}
		fmt.Fprintf(a.out, "#%d %s%s (%s)\n  %s\n",
			p.ID, p.Title, author, p.CreatedAt.Format("2006-01-02 15:04"),
			strings.ReplaceAll(p.Content, "\n", "\n  "))
	}
}

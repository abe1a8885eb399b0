package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/gamevault-app/gamevault/internal/common"
)

func (a *App) Register(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	username, err := GetSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.accounts.Register(ctx, email, password, username); err != nil {
		if errors.Is(err, common.ErrEmailTaken) {
			printlnFn("An account with that email already exists")
			return err
		}
		printlnFn("Registration failed:", err.Error())
		return err
	}

	printlnFn("Account created, you can log in now")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}

	sess, err := a.accounts.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			printlnFn("Invalid email or password")
			return err
		}
		printlnFn("Login failed:", err.Error())
		return err
	}

	a.sess = sess
	printlnFn("Logged in as", sess.Username)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.accounts.Logout(ctx); err != nil {
		printlnFn("Logout failed:", err.Error())
		return err
	}
	a.sess = nil
	printlnFn("Logged out")
	return nil
}

func (a *App) AddComment(ctx context.Context) error {
	if a.sess == nil {
		printlnFn("Log in first")
		return common.ErrNoActiveSession
	}

	animeID, err := GetInt(a.reader, "Enter anime id", os.Stdout)
	if err != nil {
		return err
	}
	title, err := GetSimpleText(a.reader, "Enter title", os.Stdout)
	if err != nil {
		return err
	}
	content, err := GetSimpleText(a.reader, "Enter comment", os.Stdout)
	if err != nil {
		return err
	}

	if _, err := a.comments.Add(ctx, a.sess, animeID, title, content); err != nil {
		printlnFn("Saving failed:", err.Error())
		return err
	}

	printlnFn("Comment saved")
	return nil
}

func (a *App) GlobalComments(ctx context.Context) error {
	animeID, err := GetInt(a.reader, "Enter anime id", os.Stdout)
	if err != nil {
		return err
	}

	comments, err := a.comments.GlobalFeed(ctx, animeID)
	if err != nil {
		printlnFn("Loading failed:", err.Error())
		return err
	}

	if len(comments) == 0 {
		printlnFn("No comments yet")
		return nil
	}
	for _, c := range comments {
		printlnFn(fmt.Sprintf("[%s] %s — %s", c.Username, c.Title, c.Content))
	}
	return nil
}

func (a *App) MyComments(ctx context.Context) error {
	if a.sess == nil {
		printlnFn("Log in first")
		return common.ErrNoActiveSession
	}

	animeID, err := GetInt(a.reader, "Enter anime id", os.Stdout)
	if err != nil {
		return err
	}

	comments, err := a.comments.OwnFeed(ctx, a.sess, animeID)
	if err != nil {
		printlnFn("Loading failed:", err.Error())
		return err
	}

	if len(comments) == 0 {
		printlnFn("No comments yet")
		return nil
	}
	for _, c := range comments {
		printlnFn(fmt.Sprintf("%s — %s", c.Title, c.Content))
	}
	return nil
}

func (a *App) AllMyComments(ctx context.Context) error {
	if a.sess == nil {
		printlnFn("Log in first")
		return common.ErrNoActiveSession
	}

	comments, err := a.comments.AllByAccount(ctx, a.sess.Email)
	if err != nil {
		printlnFn("Loading failed:", err.Error())
		return err
	}

	if len(comments) == 0 {
		printlnFn("No comments yet")
		return nil
	}
	for _, c := range comments {
		printlnFn(fmt.Sprintf("anime %d: %s — %s", c.AnimeID, c.Title, c.Content))
	}
	return nil
}

func (a *App) EditComment(ctx context.Context) error {
	if a.sess == nil {
		printlnFn("Log in first")
		return common.ErrNoActiveSession
	}

	animeID, err := GetInt(a.reader, "Enter anime id", os.Stdout)
	if err != nil {
		return err
	}
	oldTitle, err := GetSimpleText(a.reader, "Enter current title", os.Stdout)
	if err != nil {
		return err
	}
	oldContent, err := GetSimpleText(a.reader, "Enter current comment", os.Stdout)
	if err != nil {
		return err
	}
	newTitle, err := GetSimpleText(a.reader, "Enter new title", os.Stdout)
	if err != nil {
		return err
	}
	newContent, err := GetSimpleText(a.reader, "Enter new comment", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.comments.Update(ctx, a.sess.Email, animeID, oldTitle, oldContent, newTitle, newContent); err != nil {
		printlnFn("Update failed:", err.Error())
		return err
	}

	printlnFn("Comment updated")
	return nil
}

func (a *App) DeleteComment(ctx context.Context) error {
	if a.sess == nil {
		printlnFn("Log in first")
		return common.ErrNoActiveSession
	}

	animeID, err := GetInt(a.reader, "Enter anime id", os.Stdout)
	if err != nil {
		return err
	}
	title, err := GetSimpleText(a.reader, "Enter title", os.Stdout)
	if err != nil {
		return err
	}
	content, err := GetSimpleText(a.reader, "Enter comment", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.comments.Delete(ctx, a.sess.Email, animeID, title, content); err != nil {
		printlnFn("Delete failed:", err.Error())
		return err
	}

	printlnFn("Comment deleted")
	return nil
}

func (a *App) SetImage(ctx context.Context) error {
	if a.sess == nil {
		printlnFn("Log in first")
		return common.ErrNoActiveSession
	}

	path, err := GetSimpleText(a.reader, "Enter image file path", os.Stdout)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		printlnFn("Cannot read file:", err.Error())
		return err
	}

	if err := a.profile.SaveImage(ctx, a.sess, data); err != nil {
		printlnFn("Saving failed:", err.Error())
		return err
	}

	printlnFn("Profile image saved")
	return nil
}

func (a *App) ShowImage(ctx context.Context) error {
	if a.sess == nil {
		printlnFn("Log in first")
		return common.ErrNoActiveSession
	}

	data, err := a.profile.LoadImage(ctx, a.sess)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			printlnFn("No profile image set")
			return nil
		}
		printlnFn("Loading failed:", err.Error())
		return err
	}

	path, err := GetSimpleText(a.reader, "Enter output file path", os.Stdout)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		printlnFn("Cannot write file:", err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Wrote %d bytes to %s", len(data), path))
	return nil
}

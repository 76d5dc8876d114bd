package cli

import (
	"context"
	"fmt"
)

func (a *App) Register(ctx context.Context) error {
	username, err := a.prompt("Enter username (min 3 characters)")
	if err != nil {
		return err
	}
	email, err := a.prompt("Enter email")
	if err != nil {
		return err
	}
	password, err := a.promptPassword("Enter password (min 6 characters)")
	if err != nil {
		return err
	}
	confirm, err := a.promptPassword("Repeat password")
	if err != nil {
		return err
	}
	if password != confirm {
		printlnFn("Passwords do not match")
		return nil
	}

	res := a.board.Register(ctx, username, password, email)
	printlnFn(res.Message)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	username, err := a.prompt("Enter username")
	if err != nil {
		return err
	}
	password, err := a.promptPassword("Enter password")
	if err != nil {
		return err
	}

	res := a.board.Login(ctx, username, password)
	printlnFn(res.Message)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	res := a.board.Logout(ctx)
	printlnFn(res.Message)
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	cur, err := a.board.Current(ctx)
	if err != nil {
		return err
	}
	if cur == nil {
		printlnFn("Not logged in")
		return nil
	}
	printlnFn(fmt.Sprintf("%s <%s> level=%s, logged in %s",
		cur.Username, cur.Email, cur.Level, cur.LoginTime.Format("2006-01-02 15:04:05")))
	return nil
}

package cli

import (
	"context"
	"fmt"
)

func (a *App) Post(ctx context.Context) error {
	text, err := a.prompt("What's new?")
	if err != nil {
		return err
	}
	res := a.board.CreatePost(ctx, text)
	printlnFn(res.Message)
	return nil
}

func (a *App) Posts(ctx context.Context) error {
	author, err := a.prompt("Whose posts? (empty for your own)")
	if err != nil {
		return err
	}
	if author == "" {
		cur, err := a.board.Current(ctx)
		if err != nil {
			return err
		}
		if cur == nil {
			printlnFn("Specify an author or log in")
			return nil
		}
		author = cur.Username
	}

	posts, err := a.board.PostsByAuthor(ctx, author)
	if err != nil {
		printlnFn("Could not load posts")
		return err
	}
	if len(posts) == 0 {
		printlnFn("No posts yet")
		return nil
	}
	for _, p := range posts {
		printlnFn(fmt.Sprintf("[%s] %s (%s): %s", p.ID, p.Author, p.Date.Format("2006-01-02 15:04"), p.Content))
	}
	return nil
}

func (a *App) DeletePost(ctx context.Context) error {
	id, err := a.prompt("Post id to delete")
	if err != nil {
		return err
	}
	res := a.board.DeletePost(ctx, id)
	printlnFn(res.Message)
	return nil
}

func (a *App) Comment(ctx context.Context) error {
	page, err := a.prompt("Page (empty for front)")
	if err != nil {
		return err
	}
	if page == "" {
		page = "front"
	}
	text, err := a.prompt("Comment text")
	if err != nil {
		return err
	}
	res := a.board.AddComment(ctx, text, page)
	printlnFn(res.Message)
	return nil
}

func (a *App) Comments(ctx context.Context) error {
	page, err := a.prompt("Page (empty for front)")
	if err != nil {
		return err
	}
	if page == "" {
		page = "front"
	}

	comments, err := a.board.CommentsForPage(ctx, page)
	if err != nil {
		printlnFn("Could not load comments")
		return err
	}
	if len(comments) == 0 {
		printlnFn("No comments yet")
		return nil
	}
	for _, c := range comments {
		printlnFn(fmt.Sprintf("%s (%s): %s", c.User, c.Date.Format("2006-01-02 15:04"), c.Text))
	}
	return nil
}

package cli

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"

	"github.com/omegalab/omegaboard/internal/identity"
)

// Profile prompts for every editable field, prefilled with the current
// values; an empty answer keeps the current value.
func (a *App) Profile(ctx context.Context) error {
	cur, err := a.board.Current(ctx)
	if err != nil {
		return err
	}
	if cur == nil {
		printlnFn("You need to log in first")
		return nil
	}

	upd := identity.ProfileUpdate{
		Username:          cur.Username,
		Email:             cur.Email,
		Bio:               cur.Bio,
		Avatar:            cur.Avatar,
		ProfileBackground: cur.ProfileBackground,
	}

	fields := []struct {
		label string
		dst   *string
	}{
		{fmt.Sprintf("Username [%s]", upd.Username), &upd.Username},
		{fmt.Sprintf("Email [%s]", upd.Email), &upd.Email},
		{fmt.Sprintf("Bio [%s]", upd.Bio), &upd.Bio},
		{fmt.Sprintf("Avatar style: default, robot, pixel, custom [%s]", upd.Avatar), &upd.Avatar},
		{fmt.Sprintf("Background: default, cyber, ocean [%s]", upd.ProfileBackground), &upd.ProfileBackground},
	}
	for _, f := range fields {
		answer, err := a.prompt(f.label)
		if err != nil {
			return err
		}
		if answer != "" {
			*f.dst = answer
		}
	}

	res := a.board.UpdateProfile(ctx, upd)
	printlnFn(res.Message)
	return nil
}

// Avatar uploads an image file as the custom avatar, stored as a data URL
// like the original browser upload did.
func (a *App) Avatar(ctx context.Context) error {
	path, err := a.prompt("Path to image file (jpg/png/gif, max 2MB)")
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		printlnFn("Could not read file:", err.Error())
		return nil
	}

	mimeType := http.DetectContentType(raw)
	data := "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(raw)

	res := a.board.UploadAvatar(ctx, data, mimeType)
	printlnFn(res.Message)
	return nil
}

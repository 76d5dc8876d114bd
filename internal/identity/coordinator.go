// Package identity coordinates profile updates across the credential map,
// the content collections and the session snapshot. A username change fans
// out to every collection holding the old username as a foreign key; the
// storage medium offers no transaction, so the fan-out is ordered program
// steps with no rollback.
package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/omegalab/omegaboard/internal/accounts"
	"github.com/omegalab/omegaboard/internal/avatars"
	"github.com/omegalab/omegaboard/internal/common"
	"github.com/omegalab/omegaboard/internal/content"
	"github.com/omegalab/omegaboard/internal/logging"
	"github.com/omegalab/omegaboard/internal/models"
	"github.com/omegalab/omegaboard/internal/session"
)

// ProfileUpdate carries the full set of mutable profile fields as the
// presentation layer submits them, plus the (possibly unchanged) username.
type ProfileUpdate struct {
	Username          string
	Email             string
	Bio               string
	Avatar            string
	ProfileBackground string
}

type Coordinator struct {
	accounts *accounts.Service
	content  *content.Store
	sessions *session.Manager
	avatars  avatars.Store
	log      logging.Logger
}

func NewCoordinator(acc *accounts.Service, cnt *content.Store, ses *session.Manager, av avatars.Store, log logging.Logger) *Coordinator {
	return &Coordinator{accounts: acc, content: cnt, sessions: ses, avatars: av, log: log}
}

func (u ProfileUpdate) patch() models.ProfilePatch {
	return models.ProfilePatch{
		Email:             &u.Email,
		Bio:               &u.Bio,
		Avatar:            &u.Avatar,
		ProfileBackground: &u.ProfileBackground,
	}
}

// UpdateProfile applies upd to the account currently named oldUsername.
//
// When the username is unchanged only the mutable fields are patched and
// the session snapshot refreshed. When it changes, the steps run in order:
//
//  1. re-key the account (duplicate/length checks inside), one map write
//  2. rewrite the author foreign keys in posts, then comments
//  3. rebuild the session snapshot under the new username, login time kept
//  4. move the custom avatar blob, best effort
//
// Any failure after step 1 has committed leaves collections referencing the
// old username; it is reported as ErrRenamePartiallyApplied with the cause
// attached, and heals on the next successful save of the same profile.
func (c *Coordinator) UpdateProfile(ctx context.Context, oldUsername string, upd ProfileUpdate) (*models.UserAccount, error) {
	if upd.Username == oldUsername {
		account, err := c.accounts.Update(ctx, oldUsername, upd.patch())
		if err != nil {
			return nil, err
		}
		if _, err := c.sessions.Refresh(ctx, account); err != nil {
			return nil, err
		}
		return account, nil
	}

	account, err := c.accounts.Rename(ctx, oldUsername, upd.Username, upd.patch())
	if err != nil {
		return nil, err
	}

	if err := c.content.ReassignAuthor(ctx, oldUsername, upd.Username); err != nil {
		return account, fmt.Errorf("%w: rewriting content references: %w", common.ErrRenamePartiallyApplied, err)
	}

	if _, err := c.sessions.Refresh(ctx, account); err != nil {
		return account, fmt.Errorf("%w: refreshing session: %w", common.ErrRenamePartiallyApplied, err)
	}

	c.moveAvatarBlob(ctx, oldUsername, upd.Username)

	return account, nil
}

// moveAvatarBlob re-keys the uploaded avatar, if one exists. Failures are
// logged and swallowed: the blob is cosmetic and must not fail a rename
// that already committed.
func (c *Coordinator) moveAvatarBlob(ctx context.Context, oldUsername, newUsername string) {
	blob, err := c.avatars.Get(ctx, oldUsername)
	if err != nil {
		if !errors.Is(err, common.ErrAvatarNotFound) {
			c.log.Warn(ctx, "reading avatar blob during rename", "username", oldUsername, "error", err)
		}
		return
	}
	if err := c.avatars.Put(ctx, newUsername, blob); err != nil {
		c.log.Warn(ctx, "moving avatar blob during rename", "username", newUsername, "error", err)
		return
	}
	if err := c.avatars.Delete(ctx, oldUsername); err != nil {
		c.log.Warn(ctx, "removing old avatar blob during rename", "username", oldUsername, "error", err)
	}
}

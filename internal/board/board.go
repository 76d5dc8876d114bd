// Package board assembles the core into a single service object: one Board
// per execution context, constructed explicitly and handed to the
// presentation layer. There is no ambient global instance.
//
// Entry points with validation outcomes return Result; read-only queries
// return data plus an error. Operations are expected to be called from a
// single goroutine per Board; the shared durable scope itself remains
// last-writer-wins between contexts (see the storage package).
package board

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/omegalab/omegaboard/internal/accounts"
	"github.com/omegalab/omegaboard/internal/avatars"
	"github.com/omegalab/omegaboard/internal/common"
	"github.com/omegalab/omegaboard/internal/content"
	"github.com/omegalab/omegaboard/internal/identity"
	"github.com/omegalab/omegaboard/internal/logging"
	"github.com/omegalab/omegaboard/internal/models"
	"github.com/omegalab/omegaboard/internal/session"
	"github.com/omegalab/omegaboard/internal/storage"
	"github.com/omegalab/omegaboard/internal/visits"
)

type Board struct {
	accounts *accounts.Service
	sessions *session.Manager
	content  *content.Store
	avatars  avatars.Store
	visits   *visits.Counter
	identity *identity.Coordinator
	log      logging.Logger
	now      func() time.Time
}

// New wires the core components over the given scopes. The hasher decides
// credential compatibility: accounts.BcryptHasher for new deployments,
// accounts.LegacyHasher when previously stored credentials must keep
// verifying.
func New(stores *storage.Dual, avatarStore avatars.Store, hasher accounts.Hasher, log logging.Logger) *Board {
	log = log.With("board_id", uuid.NewString())

	acc := accounts.NewService(stores.Durable, hasher, log)
	ses := session.NewManager(stores, log)
	cnt := content.NewStore(stores.Durable, log)
	vis := visits.NewCounter(stores.Durable, log)
	coord := identity.NewCoordinator(acc, cnt, ses, avatarStore, log)

	return &Board{
		accounts: acc,
		sessions: ses,
		content:  cnt,
		avatars:  avatarStore,
		visits:   vis,
		identity: coord,
		log:      log,
		now:      time.Now,
	}
}

func (b *Board) requireSession(ctx context.Context) (*models.Session, error) {
	cur, err := b.sessions.Current(ctx)
	if err != nil {
		return nil, err
	}
	if cur == nil {
		return nil, common.ErrNotAuthenticated
	}
	return cur, nil
}

func (b *Board) failWith(ctx context.Context, op string, err error) Result {
	msg, known := messageFor(err)
	if !known {
		// Validation outcomes are normal traffic; only unexpected errors
		// reach the log at error level.
		b.log.Error(ctx, op+" failed", "error", err)
	}
	return fail(msg)
}

// Register creates an account. It does not log the new user in.
func (b *Board) Register(ctx context.Context, username, password, email string) Result {
	if _, err := b.accounts.Register(ctx, username, password, email); err != nil {
		return b.failWith(ctx, "register", err)
	}
	return succeed("Registration successful!")
}

// Login verifies credentials and establishes the session in both scopes.
func (b *Board) Login(ctx context.Context, username, password string) Result {
	account, err := b.accounts.Authenticate(ctx, username, password)
	if err != nil {
		return b.failWith(ctx, "login", err)
	}
	if _, err := b.sessions.Start(ctx, account); err != nil {
		return b.failWith(ctx, "login", err)
	}
	return succeed("Logged in successfully!")
}

// Logout clears the session from both scopes.
func (b *Board) Logout(ctx context.Context) Result {
	if err := b.sessions.End(ctx); err != nil {
		return b.failWith(ctx, "logout", err)
	}
	return succeed("Logged out")
}

// UpdateProfile saves the submitted profile for the logged-in user,
// cascading a username change through every collection.
func (b *Board) UpdateProfile(ctx context.Context, upd identity.ProfileUpdate) Result {
	cur, err := b.requireSession(ctx)
	if err != nil {
		return b.failWith(ctx, "update profile", err)
	}
	if _, err := b.identity.UpdateProfile(ctx, cur.Username, upd); err != nil {
		return b.failWith(ctx, "update profile", err)
	}
	return succeed("Profile updated!")
}

// CreatePost publishes a post authored by the logged-in user.
func (b *Board) CreatePost(ctx context.Context, contentText string) Result {
	cur, err := b.requireSession(ctx)
	if err != nil {
		return b.failWith(ctx, "create post", err)
	}
	if _, err := b.content.CreatePost(ctx, cur.Username, contentText); err != nil {
		return b.failWith(ctx, "create post", err)
	}
	return succeed("Post published!")
}

// DeletePost removes a post by id. The underlying store deletes by id
// alone; the facade additionally requires the logged-in user to be the
// author, since id-only deletion was never an intended capability.
func (b *Board) DeletePost(ctx context.Context, id string) Result {
	cur, err := b.requireSession(ctx)
	if err != nil {
		return b.failWith(ctx, "delete post", err)
	}
	post, err := b.content.Post(ctx, id)
	if err != nil {
		return b.failWith(ctx, "delete post", err)
	}
	if post.Author != cur.Username {
		return b.failWith(ctx, "delete post", common.ErrNotPostOwner)
	}
	if err := b.content.DeletePost(ctx, id); err != nil {
		return b.failWith(ctx, "delete post", err)
	}
	return succeed("Post deleted")
}

// AddComment appends a comment to a page on behalf of the logged-in user.
func (b *Board) AddComment(ctx context.Context, text, page string) Result {
	cur, err := b.requireSession(ctx)
	if err != nil {
		return b.failWith(ctx, "add comment", err)
	}
	if _, err := b.content.AddComment(ctx, cur.Username, text, page); err != nil {
		return b.failWith(ctx, "add comment", err)
	}
	return succeed("Comment added")
}

// CommentsForPage returns a page's comments, oldest first.
func (b *Board) CommentsForPage(ctx context.Context, page string) ([]models.Comment, error) {
	return b.content.CommentsForPage(ctx, page)
}

// PostsByAuthor returns a user's posts, most recent first.
func (b *Board) PostsByAuthor(ctx context.Context, username string) ([]models.Post, error) {
	return b.content.PostsByAuthor(ctx, username)
}

// Current returns the active session snapshot, or nil.
func (b *Board) Current(ctx context.Context) (*models.Session, error) {
	return b.sessions.Current(ctx)
}

// IsAuthenticated reports whether a session is active in this context.
func (b *Board) IsAuthenticated(ctx context.Context) bool {
	ok, err := b.sessions.IsAuthenticated(ctx)
	if err != nil {
		b.log.Error(ctx, "authentication check failed", "error", err)
		return false
	}
	return ok
}

// RecordVisit bumps the shared visit counter, once per presentation-layer
// startup.
func (b *Board) RecordVisit(ctx context.Context) (int, error) {
	return b.visits.Increment(ctx)
}

// VisitCount returns the shared visit counter without bumping it.
func (b *Board) VisitCount(ctx context.Context) (int, error) {
	return b.visits.Count(ctx)
}

// UploadAvatar stores a custom avatar for the logged-in user and flips the
// account's avatar style to custom, refreshing the session snapshot.
func (b *Board) UploadAvatar(ctx context.Context, data, mimeType string) Result {
	cur, err := b.requireSession(ctx)
	if err != nil {
		return b.failWith(ctx, "upload avatar", err)
	}

	blob := &models.AvatarBlob{Data: data, MimeType: mimeType, Timestamp: b.now().UnixMilli()}
	if err := avatars.ValidateUpload(blob); err != nil {
		return b.failWith(ctx, "upload avatar", err)
	}
	if err := b.avatars.Put(ctx, cur.Username, blob); err != nil {
		return b.failWith(ctx, "upload avatar", err)
	}

	custom := models.AvatarCustom
	account, err := b.accounts.Update(ctx, cur.Username, models.ProfilePatch{Avatar: &custom})
	if err != nil {
		return b.failWith(ctx, "upload avatar", err)
	}
	if _, err := b.sessions.Refresh(ctx, account); err != nil {
		return b.failWith(ctx, "upload avatar", err)
	}
	return succeed("Avatar uploaded!")
}

// AvatarURL resolves what to display for a user's avatar: the stored data
// URL for custom uploads, a generated style URL otherwise.
func (b *Board) AvatarURL(ctx context.Context, username string) (string, error) {
	account, err := b.accounts.Get(ctx, username)
	if err != nil {
		return "", err
	}
	if account.Avatar == models.AvatarCustom {
		blob, err := b.avatars.Get(ctx, username)
		if err != nil {
			if errors.Is(err, common.ErrAvatarNotFound) {
				return avatars.StyleURL(models.AvatarDefault, username), nil
			}
			return "", err
		}
		return blob.Data, nil
	}
	return avatars.StyleURL(account.Avatar, username), nil
}

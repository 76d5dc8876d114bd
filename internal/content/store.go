// Package content owns the two content collections: posts (most-recent-
// first) and page-scoped comments (append-only). Each entry carries a
// username foreign key that only the rename coordinator keeps consistent;
// the storage medium enforces nothing.
package content

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/omegalab/omegaboard/internal/common"
	"github.com/omegalab/omegaboard/internal/logging"
	"github.com/omegalab/omegaboard/internal/models"
	"github.com/omegalab/omegaboard/internal/storage"
)

type Store struct {
	store storage.Store
	log   logging.Logger
	now   func() time.Time
}

func NewStore(store storage.Store, log logging.Logger) *Store {
	return &Store{store: store, log: log, now: time.Now}
}

// timeID derives an entry id from the current wall clock, Unix
// milliseconds as a decimal string. Collisions within one millisecond are
// accepted; operations are serialized within an execution context.
func (s *Store) timeID() string {
	return strconv.FormatInt(s.now().UnixMilli(), 10)
}

func (s *Store) loadPosts(ctx context.Context) ([]models.Post, error) {
	b, err := s.store.Get(ctx, storage.KeyPosts)
	if err != nil {
		return nil, fmt.Errorf("loading posts: %w", err)
	}
	posts := []models.Post{}
	if len(b) > 0 {
		if err := json.Unmarshal(b, &posts); err != nil {
			s.log.Warn(ctx, "posts collection corrupted, starting empty", "error", err)
			posts = []models.Post{}
		}
	}
	return posts, nil
}

func (s *Store) savePosts(ctx context.Context, posts []models.Post) error {
	b, err := json.Marshal(posts)
	if err != nil {
		return fmt.Errorf("encoding posts: %w", err)
	}
	if err := s.store.Set(ctx, storage.KeyPosts, b); err != nil {
		return fmt.Errorf("saving posts: %w", err)
	}
	return nil
}

func (s *Store) loadComments(ctx context.Context) ([]models.Comment, error) {
	b, err := s.store.Get(ctx, storage.KeyComments)
	if err != nil {
		return nil, fmt.Errorf("loading comments: %w", err)
	}
	comments := []models.Comment{}
	if len(b) > 0 {
		if err := json.Unmarshal(b, &comments); err != nil {
			s.log.Warn(ctx, "comments collection corrupted, starting empty", "error", err)
			comments = []models.Comment{}
		}
	}
	return comments, nil
}

func (s *Store) saveComments(ctx context.Context, comments []models.Comment) error {
	b, err := json.Marshal(comments)
	if err != nil {
		return fmt.Errorf("encoding comments: %w", err)
	}
	if err := s.store.Set(ctx, storage.KeyComments, b); err != nil {
		return fmt.Errorf("saving comments: %w", err)
	}
	return nil
}

// CreatePost prepends a new post for author and persists the collection.
func (s *Store) CreatePost(ctx context.Context, author, contentText string) (*models.Post, error) {
	posts, err := s.loadPosts(ctx)
	if err != nil {
		return nil, err
	}

	post := models.Post{
		ID:       s.timeID(),
		Author:   author,
		Content:  contentText,
		Date:     s.now().UTC(),
		Likes:    0,
		Comments: []models.Comment{},
	}

	posts = append([]models.Post{post}, posts...)
	if err := s.savePosts(ctx, posts); err != nil {
		return nil, err
	}
	return &post, nil
}

// Post returns the stored post with the given id.
func (s *Store) Post(ctx context.Context, id string) (*models.Post, error) {
	posts, err := s.loadPosts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if posts[i].ID == id {
			return &posts[i], nil
		}
	}
	return nil, common.ErrPostNotFound
}

// DeletePost removes the first post whose id matches and persists the
// collection. No ownership check happens here; callers that care must
// compare the post's author themselves.
func (s *Store) DeletePost(ctx context.Context, id string) error {
	posts, err := s.loadPosts(ctx)
	if err != nil {
		return err
	}

	idx := -1
	for i := range posts {
		if posts[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return common.ErrPostNotFound
	}

	posts = append(posts[:idx], posts[idx+1:]...)
	return s.savePosts(ctx, posts)
}

// PostsByAuthor filters posts by author, preserving stored order
// (most-recent-first). Recomputed on every call.
func (s *Store) PostsByAuthor(ctx context.Context, username string) ([]models.Post, error) {
	posts, err := s.loadPosts(ctx)
	if err != nil {
		return nil, err
	}
	out := []models.Post{}
	for _, p := range posts {
		if p.Author == username {
			out = append(out, p)
		}
	}
	return out, nil
}

// AddComment appends a comment to the given page's partition. Text that is
// empty after trimming is rejected and nothing is written.
func (s *Store) AddComment(ctx context.Context, user, text, page string) (*models.Comment, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, common.ErrEmptyComment
	}

	comments, err := s.loadComments(ctx)
	if err != nil {
		return nil, err
	}

	comment := models.Comment{
		ID:   s.timeID(),
		User: user,
		Text: trimmed,
		Date: s.now().UTC(),
		Page: page,
	}

	comments = append(comments, comment)
	if err := s.saveComments(ctx, comments); err != nil {
		return nil, err
	}
	return &comment, nil
}

// CommentsForPage filters comments by page, oldest first. Recomputed on
// every call, never cached.
func (s *Store) CommentsForPage(ctx context.Context, page string) ([]models.Comment, error) {
	comments, err := s.loadComments(ctx)
	if err != nil {
		return nil, err
	}
	out := []models.Comment{}
	for _, c := range comments {
		if c.Page == page {
			out = append(out, c)
		}
	}
	return out, nil
}

// ReassignAuthor rewrites every foreign-key occurrence of oldUsername to
// newUsername: the post collection is rewritten and persisted first, then
// the comment collection. Both collections are written even when nothing
// matched, so the operation stays a fixed two-write sequence.
func (s *Store) ReassignAuthor(ctx context.Context, oldUsername, newUsername string) error {
	posts, err := s.loadPosts(ctx)
	if err != nil {
		return err
	}
	for i := range posts {
		if posts[i].Author == oldUsername {
			posts[i].Author = newUsername
		}
	}
	if err := s.savePosts(ctx, posts); err != nil {
		return err
	}

	comments, err := s.loadComments(ctx)
	if err != nil {
		return err
	}
	for i := range comments {
		if comments[i].User == oldUsername {
			comments[i].User = newUsername
		}
	}
	return s.saveComments(ctx, comments)
}

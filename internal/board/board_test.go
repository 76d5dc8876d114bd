package board

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omegalab/omegaboard/internal/accounts"
	"github.com/omegalab/omegaboard/internal/avatars"
	"github.com/omegalab/omegaboard/internal/identity"
	"github.com/omegalab/omegaboard/internal/logging"
	"github.com/omegalab/omegaboard/internal/models"
	"github.com/omegalab/omegaboard/internal/storage"
)

func newTestBoard() (*Board, *storage.Dual) {
	durable := storage.NewMemoryStore()
	stores := storage.NewDual(durable, storage.NewMemoryStore())
	b := New(stores, avatars.NewKVStore(durable), accounts.LegacyHasher{}, logging.NewJSON(io.Discard))
	return b, stores
}

func register(t *testing.T, b *Board, username string) {
	t.Helper()
	res := b.Register(context.Background(), username, "secret1", username+"@x.io")
	require.True(t, res.Success, res.Message)
}

func login(t *testing.T, b *Board, username string) {
	t.Helper()
	res := b.Login(context.Background(), username, "secret1")
	require.True(t, res.Success, res.Message)
}

func TestRegisterLoginFlow(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestBoard()

	res := b.Register(ctx, "neo", "secret1", "neo@x.io")
	require.True(t, res.Success)
	assert.Equal(t, "Registration successful!", res.Message)

	// Registering does not log in.
	assert.False(t, b.IsAuthenticated(ctx))

	res = b.Login(ctx, "neo", "wrongpass")
	assert.False(t, res.Success)
	assert.Equal(t, "Wrong password", res.Message)
	assert.False(t, b.IsAuthenticated(ctx))

	res = b.Login(ctx, "ghost", "secret1")
	assert.False(t, res.Success)
	assert.Equal(t, "User not found", res.Message)

	res = b.Login(ctx, "neo", "secret1")
	require.True(t, res.Success)
	assert.True(t, b.IsAuthenticated(ctx))

	cur, err := b.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, "neo", cur.Username)

	res = b.Logout(ctx)
	require.True(t, res.Success)
	assert.False(t, b.IsAuthenticated(ctx))
	cur, err = b.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, cur)
}

func TestRegisterValidationMessages(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestBoard()
	register(t, b, "neo")

	tests := []struct {
		name     string
		username string
		password string
		want     string
	}{
		{"duplicate", "neo", "secret1", "A user with this name already exists"},
		{"short username", "ab", "secret1", "Username must contain at least 3 characters"},
		{"short password", "morpheus", "12345", "Password must contain at least 6 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := b.Register(ctx, tt.username, tt.password, "x@x.io")
			assert.False(t, res.Success)
			assert.Equal(t, tt.want, res.Message)
		})
	}
}

func TestContentRequiresSession(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestBoard()

	for name, res := range map[string]Result{
		"post":    b.CreatePost(ctx, "hello"),
		"comment": b.AddComment(ctx, "hello", "front"),
		"delete":  b.DeletePost(ctx, "123"),
		"profile": b.UpdateProfile(ctx, identity.ProfileUpdate{Username: "neo"}),
	} {
		assert.False(t, res.Success, name)
		assert.Equal(t, "You need to log in first", res.Message, name)
	}
}

func TestPostLifecycle(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestBoard()
	register(t, b, "neo")
	login(t, b, "neo")

	res := b.CreatePost(ctx, "wake up")
	require.True(t, res.Success)

	posts, err := b.PostsByAuthor(ctx, "neo")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "wake up", posts[0].Content)

	res = b.DeletePost(ctx, posts[0].ID)
	require.True(t, res.Success)

	posts, err = b.PostsByAuthor(ctx, "neo")
	require.NoError(t, err)
	assert.Empty(t, posts)

	res = b.DeletePost(ctx, "no-such-id")
	assert.False(t, res.Success)
	assert.Equal(t, "Post not found", res.Message)
}

func TestDeletePost_OnlyOwner(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestBoard()
	register(t, b, "neo")
	register(t, b, "smith")

	login(t, b, "neo")
	require.True(t, b.CreatePost(ctx, "wake up").Success)
	posts, err := b.PostsByAuthor(ctx, "neo")
	require.NoError(t, err)
	require.Len(t, posts, 1)

	login(t, b, "smith")
	res := b.DeletePost(ctx, posts[0].ID)
	assert.False(t, res.Success)
	assert.Equal(t, "You can only delete your own posts", res.Message)

	// Still there.
	posts, err = b.PostsByAuthor(ctx, "neo")
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestAddComment_EmptyLeavesCollectionUnchanged(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestBoard()
	register(t, b, "neo")
	login(t, b, "neo")

	require.True(t, b.AddComment(ctx, "first", "front").Success)

	res := b.AddComment(ctx, "   \t  ", "front")
	assert.False(t, res.Success)
	assert.Equal(t, "Comment cannot be empty", res.Message)

	comments, err := b.CommentsForPage(ctx, "front")
	require.NoError(t, err)
	assert.Len(t, comments, 1)
}

func TestUpdateProfile_RenameMovesContent(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestBoard()
	register(t, b, "neo")
	login(t, b, "neo")
	require.True(t, b.CreatePost(ctx, "wake up").Success)

	res := b.UpdateProfile(ctx, identity.ProfileUpdate{
		Username:          "trinity",
		Email:             "neo@x.io",
		Avatar:            models.AvatarDefault,
		ProfileBackground: models.BackgroundDefault,
	})
	require.True(t, res.Success, res.Message)

	cur, err := b.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "trinity", cur.Username)

	posts, err := b.PostsByAuthor(ctx, "trinity")
	require.NoError(t, err)
	assert.Len(t, posts, 1)

	old, err := b.PostsByAuthor(ctx, "neo")
	require.NoError(t, err)
	assert.Empty(t, old)

	// Logging in under the new name with the old password still works.
	require.True(t, b.Logout(ctx).Success)
	login(t, b, "trinity")
}

func TestRecordVisit(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestBoard()

	n, err := b.RecordVisit(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = b.RecordVisit(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// Reading the counter does not bump it.
	n, err = b.VisitCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestUploadAvatarAndResolveURL(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestBoard()
	register(t, b, "neo")
	login(t, b, "neo")

	// Style URL before any upload.
	url, err := b.AvatarURL(ctx, "neo")
	require.NoError(t, err)
	assert.Contains(t, url, "dicebear")
	assert.Contains(t, url, "seed=neo")

	res := b.UploadAvatar(ctx, "not an image", "text/plain")
	assert.False(t, res.Success)
	assert.Equal(t, "Please choose an image file", res.Message)

	res = b.UploadAvatar(ctx, "data:image/png;base64,xxxx", "image/png")
	require.True(t, res.Success, res.Message)

	cur, err := b.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.AvatarCustom, cur.Avatar)

	url, err = b.AvatarURL(ctx, "neo")
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,xxxx", url)
}

func TestSessionsShareDurableScope(t *testing.T) {
	ctx := context.Background()
	b, stores := newTestBoard()
	register(t, b, "neo")
	login(t, b, "neo")

	// A new context over the same durable scope sees the persisted
	// session even though its ephemeral scope is empty.
	other := New(storage.NewDual(stores.Durable, storage.NewMemoryStore()),
		avatars.NewKVStore(stores.Durable), accounts.LegacyHasher{}, logging.NewJSON(io.Discard))
	cur, err := other.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, "neo", cur.Username)
}

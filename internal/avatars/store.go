// Package avatars stores uploaded custom avatar images, one blob per
// username, and resolves display URLs for the generated avatar styles.
package avatars

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/omegalab/omegaboard/internal/common"
	"github.com/omegalab/omegaboard/internal/models"
	"github.com/omegalab/omegaboard/internal/storage"
)

// MaxBlobSize caps uploads at 2 MiB of encoded image data.
const MaxBlobSize = 2 * 1024 * 1024

// Store persists custom avatar blobs keyed by username.
type Store interface {
	Put(ctx context.Context, username string, blob *models.AvatarBlob) error
	Get(ctx context.Context, username string) (*models.AvatarBlob, error)
	Delete(ctx context.Context, username string) error
}

// ValidateUpload checks an upload before it reaches any backend: the blob
// must declare an image mime type and fit the size cap.
func ValidateUpload(blob *models.AvatarBlob) error {
	if !strings.HasPrefix(blob.MimeType, "image/") {
		return common.ErrAvatarNotImage
	}
	if len(blob.Data) > MaxBlobSize {
		return common.ErrAvatarTooLarge
	}
	return nil
}

// StyleURL returns the generated-avatar URL for a style tag, seeded by
// username. Custom avatars are not resolvable here; read the blob instead.
func StyleURL(style, seed string) string {
	if seed == "" {
		seed = "default"
	}
	switch style {
	case models.AvatarRobot:
		return "https://api.dicebear.com/7.x/bottts/svg?seed=" + seed
	case models.AvatarPixel:
		return "https://api.dicebear.com/7.x/pixel-art/svg?seed=" + seed
	default:
		return "https://api.dicebear.com/7.x/avataaars/svg?seed=" + seed
	}
}

// KVStore keeps avatar blobs in the durable persistence scope under
// per-user keys, the original storage layout.
type KVStore struct {
	store storage.Store
}

func NewKVStore(store storage.Store) *KVStore {
	return &KVStore{store: store}
}

func (s *KVStore) Put(ctx context.Context, username string, blob *models.AvatarBlob) error {
	b, err := json.Marshal(blob)
	if err != nil {
		return fmt.Errorf("encoding avatar: %w", err)
	}
	if err := s.store.Set(ctx, storage.AvatarKey(username), b); err != nil {
		return fmt.Errorf("saving avatar for %s: %w", username, err)
	}
	return nil
}

func (s *KVStore) Get(ctx context.Context, username string) (*models.AvatarBlob, error) {
	b, err := s.store.Get(ctx, storage.AvatarKey(username))
	if err != nil {
		return nil, fmt.Errorf("loading avatar for %s: %w", username, err)
	}
	if len(b) == 0 {
		return nil, common.ErrAvatarNotFound
	}
	var blob models.AvatarBlob
	if err := json.Unmarshal(b, &blob); err != nil {
		return nil, fmt.Errorf("decoding avatar for %s: %w", username, err)
	}
	return &blob, nil
}

func (s *KVStore) Delete(ctx context.Context, username string) error {
	return s.store.Delete(ctx, storage.AvatarKey(username))
}

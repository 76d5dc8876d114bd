// Package accounts owns the username-keyed account map: registration
// validation, password verification and profile mutation. The whole map is
// persisted on every change, matching the storage medium's whole-value
// write model.
package accounts

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/omegalab/omegaboard/internal/common"
	"github.com/omegalab/omegaboard/internal/logging"
	"github.com/omegalab/omegaboard/internal/models"
	"github.com/omegalab/omegaboard/internal/storage"
)

const (
	minUsernameLen = 3
	minPasswordLen = 6
)

type Service struct {
	store  storage.Store
	hasher Hasher
	log    logging.Logger
	now    func() time.Time
}

func NewService(store storage.Store, hasher Hasher, log logging.Logger) *Service {
	return &Service{store: store, hasher: hasher, log: log, now: time.Now}
}

// load reads the account map. A missing key yields an empty map; so does a
// value that no longer parses, which is logged and treated as recoverable
// rather than wedging every account operation on one corrupted key.
func (s *Service) load(ctx context.Context) (map[string]models.UserAccount, error) {
	b, err := s.store.Get(ctx, storage.KeyAccounts)
	if err != nil {
		return nil, fmt.Errorf("loading accounts: %w", err)
	}
	users := make(map[string]models.UserAccount)
	if len(b) > 0 {
		if err := json.Unmarshal(b, &users); err != nil {
			s.log.Warn(ctx, "accounts collection corrupted, starting empty", "error", err)
			users = make(map[string]models.UserAccount)
		}
	}
	return users, nil
}

func (s *Service) save(ctx context.Context, users map[string]models.UserAccount) error {
	b, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("encoding accounts: %w", err)
	}
	if err := s.store.Set(ctx, storage.KeyAccounts, b); err != nil {
		return fmt.Errorf("saving accounts: %w", err)
	}
	return nil
}

// Register validates and creates a new account. Checks run in a fixed
// order: duplicate username, username length, password length.
func (s *Service) Register(ctx context.Context, username, password, email string) (*models.UserAccount, error) {
	users, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	if _, exists := users[username]; exists {
		return nil, common.ErrDuplicateUsername
	}
	if utf8.RuneCountInString(username) < minUsernameLen {
		return nil, common.ErrUsernameTooShort
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		return nil, common.ErrPasswordTooShort
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	account := models.UserAccount{
		Username:          username,
		PasswordHash:      hash,
		Email:             email,
		RegistrationDate:  s.now().UTC(),
		Level:             models.LevelUser,
		Avatar:            models.AvatarDefault,
		Bio:               "",
		ProfileBackground: models.BackgroundDefault,
	}

	users[username] = account
	if err := s.save(ctx, users); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "account registered", "username", username)
	return &account, nil
}

// Authenticate verifies a username/password pair and returns the account.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.UserAccount, error) {
	users, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	account, ok := users[username]
	if !ok {
		return nil, common.ErrUserNotFound
	}
	if !s.hasher.Verify(account.PasswordHash, password) {
		return nil, common.ErrWrongPassword
	}
	return &account, nil
}

// Get returns the stored account for username.
func (s *Service) Get(ctx context.Context, username string) (*models.UserAccount, error) {
	users, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	account, ok := users[username]
	if !ok {
		return nil, common.ErrUserNotFound
	}
	return &account, nil
}

// Update applies a partial mutation to an existing account and re-persists
// the whole map.
func (s *Service) Update(ctx context.Context, username string, patch models.ProfilePatch) (*models.UserAccount, error) {
	users, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	account, ok := users[username]
	if !ok {
		return nil, common.ErrUserNotFound
	}

	patch.Apply(&account)
	users[username] = account
	if err := s.save(ctx, users); err != nil {
		return nil, err
	}
	return &account, nil
}

// Rename moves the account to a new username, applying patch in the same
// whole-map write. The new key must be free; the old key is removed. This
// is the only operation allowed to change the Username field.
func (s *Service) Rename(ctx context.Context, oldUsername, newUsername string, patch models.ProfilePatch) (*models.UserAccount, error) {
	users, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	account, ok := users[oldUsername]
	if !ok {
		return nil, common.ErrUserNotFound
	}
	if _, taken := users[newUsername]; taken {
		return nil, common.ErrDuplicateUsername
	}
	if utf8.RuneCountInString(newUsername) < minUsernameLen {
		return nil, common.ErrUsernameTooShort
	}

	account.Username = newUsername
	patch.Apply(&account)

	users[newUsername] = account
	delete(users, oldUsername)

	if err := s.save(ctx, users); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "account renamed", "from", oldUsername, "to", newUsername)
	return &account, nil
}

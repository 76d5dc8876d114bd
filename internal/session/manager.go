// Package session owns the single current-identity snapshot. The snapshot
// is written identically to both persistence scopes on every change; the
// ephemeral scope is the per-context authority and the durable scope is the
// read fallback shared across contexts.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/omegalab/omegaboard/internal/logging"
	"github.com/omegalab/omegaboard/internal/models"
	"github.com/omegalab/omegaboard/internal/storage"
)

type Manager struct {
	stores  *storage.Dual
	log     logging.Logger
	now     func() time.Time
	current *models.Session
}

func NewManager(stores *storage.Dual, log logging.Logger) *Manager {
	return &Manager{stores: stores, log: log, now: time.Now}
}

// writeBoth persists the snapshot to the ephemeral scope first, then the
// durable scope. Both scopes always receive the same bytes.
func (m *Manager) writeBoth(ctx context.Context, snap *models.Session) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := m.stores.Ephemeral.Set(ctx, storage.KeySession, b); err != nil {
		return fmt.Errorf("saving ephemeral session: %w", err)
	}
	if err := m.stores.Durable.Set(ctx, storage.KeySession, b); err != nil {
		return fmt.Errorf("saving durable session: %w", err)
	}
	return nil
}

// Start establishes a new session for the given account, replacing any
// previous one.
func (m *Manager) Start(ctx context.Context, account *models.UserAccount) (*models.Session, error) {
	snap := models.SnapshotOf(account, m.now().UTC())
	if err := m.writeBoth(ctx, snap); err != nil {
		return nil, err
	}
	m.current = snap
	return snap, nil
}

// Refresh rebuilds the snapshot from the account while preserving the login
// time of the session being replaced. Used after profile updates so the
// snapshot never lags the account record.
func (m *Manager) Refresh(ctx context.Context, account *models.UserAccount) (*models.Session, error) {
	loginTime := m.now().UTC()
	if cur, err := m.Current(ctx); err == nil && cur != nil {
		loginTime = cur.LoginTime
	}
	snap := models.SnapshotOf(account, loginTime)
	if err := m.writeBoth(ctx, snap); err != nil {
		return nil, err
	}
	m.current = snap
	return snap, nil
}

// End clears the session from both scopes and drops the in-memory snapshot.
func (m *Manager) End(ctx context.Context) error {
	m.current = nil
	if err := m.stores.Ephemeral.Delete(ctx, storage.KeySession); err != nil {
		return fmt.Errorf("clearing ephemeral session: %w", err)
	}
	if err := m.stores.Durable.Delete(ctx, storage.KeySession); err != nil {
		return fmt.Errorf("clearing durable session: %w", err)
	}
	return nil
}

// Current returns the active session, or nil when nobody is logged in.
// When the in-memory snapshot is unset it rehydrates lazily: the ephemeral
// scope is consulted first, then the durable scope. An unreadable snapshot
// is treated as absent.
func (m *Manager) Current(ctx context.Context) (*models.Session, error) {
	if m.current != nil {
		return m.current, nil
	}

	for _, store := range []storage.Store{m.stores.Ephemeral, m.stores.Durable} {
		b, err := store.Get(ctx, storage.KeySession)
		if err != nil {
			return nil, fmt.Errorf("loading session: %w", err)
		}
		if len(b) == 0 {
			continue
		}
		var snap models.Session
		if err := json.Unmarshal(b, &snap); err != nil {
			m.log.Warn(ctx, "stored session corrupted, ignoring", "error", err)
			continue
		}
		m.current = &snap
		return m.current, nil
	}

	return nil, nil
}

// IsAuthenticated reports whether a session is active.
func (m *Manager) IsAuthenticated(ctx context.Context) (bool, error) {
	cur, err := m.Current(ctx)
	if err != nil {
		return false, err
	}
	return cur != nil, nil
}

// Package cli is the terminal presentation layer. It only calls Board
// entry points and renders their Results; all invariants live in the core.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/omegalab/omegaboard/internal/accounts"
	"github.com/omegalab/omegaboard/internal/avatars"
	"github.com/omegalab/omegaboard/internal/board"
	"github.com/omegalab/omegaboard/internal/config"
	"github.com/omegalab/omegaboard/internal/logging"
	"github.com/omegalab/omegaboard/internal/storage"
)

type App struct {
	config *config.Config
	board  *board.Board
	reader *bufio.Reader
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logging.NewJSON(os.Stderr)

	durable, err := openDurable(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("opening durable store: %w", err)
	}
	stores := storage.NewDual(durable, storage.NewMemoryStore())

	avatarStore, err := openAvatarStore(ctx, cfg, durable)
	if err != nil {
		return nil, fmt.Errorf("opening avatar store: %w", err)
	}

	var hasher accounts.Hasher = accounts.BcryptHasher{}
	if cfg.LegacyHash {
		log.Warn(ctx, "legacy password hash enabled, credentials are weakly protected")
		hasher = accounts.LegacyHasher{}
	}

	b := board.New(stores, avatarStore, hasher, log)

	return &App{config: cfg, board: b, reader: bufio.NewReader(os.Stdin)}, nil
}

func openDurable(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.DurableBackend {
	case config.BackendMemory:
		return storage.NewMemoryStore(), nil
	case config.BackendSQLite:
		return storage.OpenSQLite(ctx, cfg.DatabaseDSN)
	case config.BackendPostgres:
		return storage.OpenPostgres(ctx, cfg.DatabaseDSN)
	default:
		return nil, fmt.Errorf("unknown durable backend %q", cfg.DurableBackend)
	}
}

func openAvatarStore(ctx context.Context, cfg *config.Config, durable storage.Store) (avatars.Store, error) {
	switch cfg.AvatarBackend {
	case config.AvatarBackendKV:
		return avatars.NewKVStore(durable), nil
	case config.AvatarBackendS3:
		return avatars.NewS3Store(ctx, avatars.S3Config{
			RootUser:     cfg.S3RootUser,
			RootPassword: cfg.S3RootPassword,
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
		})
	default:
		return nil, fmt.Errorf("unknown avatar backend %q", cfg.AvatarBackend)
	}
}

// Run records the visit and enters the command loop.
func (a *App) Run(ctx context.Context) {
	if count, err := a.board.RecordVisit(ctx); err == nil {
		printlnFn(fmt.Sprintf("Visit #%d. Welcome to Project OMEGA.", count))
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

func (a *App) status(ctx context.Context) string {
	if cur, err := a.board.Current(ctx); err == nil && cur != nil {
		return cur.Username
	}
	return "anonymous"
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.board.IsAuthenticated(ctx)
}

// Visits shows the shared visit counter.
func (a *App) Visits(ctx context.Context) error {
	count, err := a.board.VisitCount(ctx)
	if err != nil {
		printlnFn("Could not load visit count")
		return err
	}
	printlnFn(fmt.Sprintf("Visits so far: %d", count))
	return nil
}

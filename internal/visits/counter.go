// Package visits tracks the shared page-load counter.
package visits

import (
	"context"
	"fmt"
	"strconv"

	"github.com/omegalab/omegaboard/internal/logging"
	"github.com/omegalab/omegaboard/internal/storage"
)

// Counter increments a single integer in the durable scope. The value is
// stored as a decimal string; anything unparsable restarts the count.
type Counter struct {
	store storage.Store
	log   logging.Logger
}

func NewCounter(store storage.Store, log logging.Logger) *Counter {
	return &Counter{store: store, log: log}
}

// Increment bumps the counter by one and returns the new value.
func (c *Counter) Increment(ctx context.Context) (int, error) {
	count, err := c.Count(ctx)
	if err != nil {
		return 0, err
	}
	count++
	if err := c.store.Set(ctx, storage.KeyVisitCount, []byte(strconv.Itoa(count))); err != nil {
		return 0, fmt.Errorf("saving visit count: %w", err)
	}
	return count, nil
}

// Count returns the current value without modifying it.
func (c *Counter) Count(ctx context.Context) (int, error) {
	b, err := c.store.Get(ctx, storage.KeyVisitCount)
	if err != nil {
		return 0, fmt.Errorf("loading visit count: %w", err)
	}
	if len(b) == 0 {
		return 0, nil
	}
	count, err := strconv.Atoi(string(b))
	if err != nil {
		c.log.Warn(ctx, "visit count corrupted, restarting from zero", "error", err)
		return 0, nil
	}
	return count, nil
}

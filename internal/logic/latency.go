package logic

import (
	"context"
	"math/rand/v2"
	"time"

	"memodeck/internal/domain"
)

// LatencyStore delays every mutation by base plus a random jitter so that
// concurrent calls settle out of order, the way a remote backend would
type LatencyStore struct {
	ItemStore
	base   time.Duration
	jitter time.Duration
}

// WithLatency wraps inner; a zero base and jitter returns inner unchanged
func WithLatency(inner ItemStore, base, jitter time.Duration) ItemStore {
	if base <= 0 && jitter <= 0 {
		return inner
	}
	return &LatencyStore{ItemStore: inner, base: base, jitter: jitter}
}

func (s *LatencyStore) wait(ctx context.Context) error {
	d := s.base
	if s.jitter > 0 {
		d += rand.N(s.jitter)
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *LatencyStore) Delete(ctx context.Context, itemType domain.ItemType, id int) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	return s.ItemStore.Delete(ctx, itemType, id)
}

func (s *LatencyStore) Purge(ctx context.Context, itemType domain.ItemType, id int) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	return s.ItemStore.Purge(ctx, itemType, id)
}

func (s *LatencyStore) Restore(ctx context.Context, itemType domain.ItemType, originalID string) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	return s.ItemStore.Restore(ctx, itemType, originalID)
}

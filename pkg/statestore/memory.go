package statestore

import (
	"context"
	"time"

	"github.com/puzpuzpuz/xsync"
	"github.com/thready-lab/backend/pkg/xcontext"
)

type MemoryStore struct {
	states     *xsync.MapOf[string, Data]
	expiration time.Duration

	now func() time.Time
}

func NewMemoryStore(expiration time.Duration) *MemoryStore {
	return &MemoryStore{
		states:     xsync.NewMapOf[Data](),
		expiration: expiration,
		now:        time.Now,
	}
}

func (s *MemoryStore) Put(ctx context.Context, state string, data Data) error {
	if data.CreatedAt.IsZero() {
		data.CreatedAt = s.now()
	}

	s.states.Store(state, data)
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, state string) (Data, bool, error) {
	data, ok := s.states.Load(state)
	if !ok {
		return Data{}, false, nil
	}

	if s.now().Sub(data.CreatedAt) > s.expiration {
		s.states.Delete(state)
		return Data{}, false, nil
	}

	return data, true, nil
}

func (s *MemoryStore) Delete(ctx context.Context, state string) error {
	s.states.Delete(state)
	return nil
}

// StartCleaner periodically evicts expired states until ctx is cancelled.
// Abandoned logins never call Get, so eviction on read is not enough.
func (s *MemoryStore) StartCleaner(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed := 0
				s.states.Range(func(state string, data Data) bool {
					if s.now().Sub(data.CreatedAt) > s.expiration {
						s.states.Delete(state)
						removed++
					}
					return true
				})

				if removed > 0 {
					xcontext.Logger(ctx).Debugf("Cleaned up %d expired oauth states", removed)
				}
			}
		}
	}()
}

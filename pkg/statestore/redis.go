package statestore

import (
	"context"
	"errors"
	"time"

	"github.com/thready-lab/backend/pkg/xredis"
)

const redisKeyPrefix = "oauth_state:"

// RedisStore keeps states in redis so callbacks can land on any instance.
// TTL handling is delegated to redis, no cleaner is needed.
type RedisStore struct {
	client     xredis.Client
	expiration time.Duration
}

func NewRedisStore(client xredis.Client, expiration time.Duration) *RedisStore {
	return &RedisStore{client: client, expiration: expiration}
}

func (s *RedisStore) Put(ctx context.Context, state string, data Data) error {
	if data.CreatedAt.IsZero() {
		data.CreatedAt = time.Now()
	}

	return s.client.SetObj(ctx, redisKeyPrefix+state, data, s.expiration)
}

func (s *RedisStore) Get(ctx context.Context, state string) (Data, bool, error) {
	var data Data
	err := s.client.GetObj(ctx, redisKeyPrefix+state, &data)
	if errors.Is(err, xredis.ErrNotExist) {
		return Data{}, false, nil
	}

	if err != nil {
		return Data{}, false, err
	}

	return data, true, nil
}

func (s *RedisStore) Delete(ctx context.Context, state string) error {
	return s.client.Del(ctx, redisKeyPrefix+state)
}

package auth

import (
	"context"
	"time"

	"github.com/redis/rueidis"
)

type RedisSessionStore struct {
	client rueidis.Client
	prefix string
}

func NewRedisSessionStore(client rueidis.Client, prefix string) *RedisSessionStore {
	return &RedisSessionStore{
		client: client,
		prefix: prefix,
	}
}

func (r *RedisSessionStore) Put(ctx context.Context, sessionID, userID string, ttl time.Duration) error {
	cmd := r.client.B().Set().
		Key(r.prefix + sessionID).
		Value(userID).
		Ex(ttl).
		Build()
	return r.client.Do(ctx, cmd).Error()
}

func (r *RedisSessionStore) Get(ctx context.Context, sessionID string) (string, error) {
	cmd := r.client.B().Get().Key(r.prefix + sessionID).Build()
	result := r.client.Do(ctx, cmd)

	userID, err := result.ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return "", ErrSessionNotFound
		}
		return "", err
	}

	return userID, nil
}

func (r *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	cmd := r.client.B().Del().Key(r.prefix + sessionID).Build()
	return r.client.Do(ctx, cmd).Error()
}

package trial

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists trial sessions in Redis, one key per client scope.
// Cross-context change notification rides on Redis pub/sub: every Save and
// Delete publishes on a per-scope channel that Watch subscribes to.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a RedisStore and verifies connectivity.
func NewRedisStore(ctx context.Context, addr, password string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return &RedisStore{client: client}, nil
}

// Close releases the underlying connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func sessionKey(scope string) string {
	return StorageKey + ":" + scope
}

func changeChannel(scope string) string {
	return StorageKey + ":changed:" + scope
}

// Load implements Store.
func (s *RedisStore) Load(ctx context.Context, scope string) (*Session, error) {
	data, err := s.client.Get(ctx, sessionKey(scope)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		// A corrupt record is treated as absent; the manager recreates it.
		return nil, nil
	}
	return &session, nil
}

// Save implements Store.
func (s *RedisStore) Save(ctx context.Context, scope string, session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(scope), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	s.publishChange(ctx, scope)
	return nil
}

// Delete implements Store.
func (s *RedisStore) Delete(ctx context.Context, scope string) error {
	if err := s.client.Del(ctx, sessionKey(scope)).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	s.publishChange(ctx, scope)
	return nil
}

// Watch implements Store via pub/sub.
func (s *RedisStore) Watch(ctx context.Context, scope string) (<-chan struct{}, error) {
	sub := s.client.Subscribe(ctx, changeChannel(scope))
	// Confirm the subscription before handing back the channel.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("redis subscribe failed: %w", err)
	}

	ch := make(chan struct{}, 1)
	go func() {
		defer close(ch)
		defer func() { _ = sub.Close() }()
		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case ch <- struct{}{}:
				default:
				}
			}
		}
	}()

	return ch, nil
}

// publishChange is best-effort; a missed notification only delays a refresh.
func (s *RedisStore) publishChange(ctx context.Context, scope string) {
	_ = s.client.Publish(ctx, changeChannel(scope), "changed").Err()
}

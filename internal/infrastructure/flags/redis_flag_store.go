// Package flags hosts the process-wide "has unsaved changes" registry.
//
// Every navigation affordance in the suite (dispatch board, training
// calendar, project list) checks this registry before leaving the editor
// context. The editor session's dirty-state tracker is the only writer.
package flags

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"summit_contracting/internal/usecase/interfaces"
)

// flagTTL bounds how long a crashed session can pin the flag.
const flagTTL = 24 * time.Hour

// RedisFlagStore keeps the unsaved-changes flags in Redis so every instance
// of the suite sees the same answer.
type RedisFlagStore struct {
	client *redis.Client
	prefix string
}

var _ interfaces.IUnsavedFlagStore = (*RedisFlagStore)(nil)

func NewRedisFlagStore(redisURL string) (*RedisFlagStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &RedisFlagStore{client: client, prefix: "editor:unsaved:"}, nil
}

// NewRedisFlagStoreWithClient creates a store from an existing Redis client.
func NewRedisFlagStoreWithClient(client *redis.Client) *RedisFlagStore {
	return &RedisFlagStore{client: client, prefix: "editor:unsaved:"}
}

func (s *RedisFlagStore) key(sessionID string) string {
	return s.prefix + sessionID
}

func (s *RedisFlagStore) SetUnsaved(ctx context.Context, sessionID string, unsaved bool) error {
	key := s.key(sessionID)
	if !unsaved {
		if err := s.client.Del(ctx, key).Err(); err != nil {
			return fmt.Errorf("clear unsaved flag: %w", err)
		}
		return nil
	}
	if err := s.client.Set(ctx, key, "1", flagTTL).Err(); err != nil {
		return fmt.Errorf("set unsaved flag: %w", err)
	}
	return nil
}

func (s *RedisFlagStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("clear unsaved flag: %w", err)
	}
	return nil
}

// AnyUnsaved reports whether any editor session anywhere in the suite has
// unsaved changes.
func (s *RedisFlagStore) AnyUnsaved(ctx context.Context) (bool, error) {
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 1).Iterator()
	if iter.Next(ctx) {
		return true, nil
	}
	if err := iter.Err(); err != nil {
		return false, fmt.Errorf("scan unsaved flags: %w", err)
	}
	return false, nil
}

func (s *RedisFlagStore) Close() error {
	return s.client.Close()
}

func (s *RedisFlagStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

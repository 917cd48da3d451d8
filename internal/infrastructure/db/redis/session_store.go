package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/k0lab/analysis-gate/internal/core/domain"
	"github.com/k0lab/analysis-gate/internal/core/ports"
)

const (
	sessionKeyPrefix = "session:"
	scanBatch        = 100
)

// SessionStore keeps the Active session set in Redis so multiple gate
// instances share one session population.
//
// Guest keys carry a storage TTL matching the guest window. That TTL is
// garbage collection only: expiry is detected and terminated by the session
// service, which must see expiry as ordinary state even if Redis has not
// evicted the key yet.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) Put(ctx context.Context, sess *domain.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	var ttl time.Duration // 0 = no expiry, named accounts outlive any window
	if deadline, ok := sess.ExpiresAt(); ok {
		// Pad the storage TTL so the service observes expiry (and emits
		// the proper session-expired outcome) before eviction does.
		ttl = time.Until(deadline) + time.Hour
	}

	if err := s.client.Set(ctx, s.key(sess.ID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("fetch session: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Count scans the session keyspace. Deployments here hold tens of sessions,
// not thousands, so a SCAN per stats request is acceptable.
func (s *SessionStore) Count(ctx context.Context) (ports.SessionStats, error) {
	var stats ports.SessionStats
	var cursor uint64

	for {
		keys, next, err := s.client.Scan(ctx, cursor, sessionKeyPrefix+"*", scanBatch).Result()
		if err != nil {
			return ports.SessionStats{}, fmt.Errorf("scan sessions: %w", err)
		}

		for _, key := range keys {
			raw, err := s.client.Get(ctx, key).Bytes()
			if err != nil {
				if err == redis.Nil {
					continue // evicted between scan and fetch
				}
				return ports.SessionStats{}, fmt.Errorf("fetch session %s: %w", key, err)
			}
			var sess domain.Session
			if err := json.Unmarshal(raw, &sess); err != nil {
				continue
			}
			stats.Active++
			if sess.IsGuest {
				stats.Guests++
			}
		}

		cursor = next
		if cursor == 0 {
			return stats, nil
		}
	}
}

func (s *SessionStore) key(id string) string {
	return sessionKeyPrefix + id
}

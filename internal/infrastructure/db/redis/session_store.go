package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/guardianlink/portal/internal/core/domain"
)

const sessionPrefix = "session:"

// SessionStore keeps sessions in Redis. Keys expire with the session.
// Key format: session:<session_id>
type SessionStore struct {
	client redis.UniversalClient
	now    func() time.Time
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client redis.UniversalClient) *SessionStore {
	return &SessionStore{client: client, now: time.Now}
}

// Save stores sess until its ExpiresAt.
func (s *SessionStore) Save(ctx context.Context, sess domain.Session) error {
	if sess.ID == "" {
		return errors.New("session id cannot be empty")
	}

	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return errors.New("session is already expired")
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.client.Set(ctx, s.key(sess.ID), data, ttl).Err()
}

// Get returns domain.ErrSessionNotFound for unknown or expired sessions.
func (s *SessionStore) Get(ctx context.Context, id string) (domain.Session, error) {
	if id == "" {
		return domain.Session{}, domain.ErrSessionNotFound
	}

	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Session{}, domain.ErrSessionNotFound
		}
		return domain.Session{}, fmt.Errorf("session get: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return domain.Session{}, fmt.Errorf("unmarshal session: %w", err)
	}
	if !sess.Active(s.now()) {
		if err := s.Delete(ctx, id); err != nil {
			return domain.Session{}, fmt.Errorf("cleanup expired session: %w", err)
		}
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return sess, nil
}

// Delete removes the session. Deleting an unknown session is not an error.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.client.Del(ctx, s.key(id)).Err()
}

func (s *SessionStore) key(id string) string {
	return sessionPrefix + id
}

package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/smartstart/smartstart-money/internal/domain/session"
	"github.com/smartstart/smartstart-money/internal/domain/shared"
)

// SessionStore is a session.Repository on Redis. Each session is one JSON
// value whose key expires together with the session. Save runs an optimistic
// WATCH/MULTI transaction on the version field.
type SessionStore struct {
	client redis.UniversalClient
	now    func() time.Time
}

// NewSessionStore creates a store on an existing client.
func NewSessionStore(client redis.UniversalClient) *SessionStore {
	return &SessionStore{client: client, now: time.Now}
}

// Create implements session.Repository.
func (s *SessionStore) Create(ctx context.Context, sess *session.Session) error {
	sess.Version = 1
	data, ttl, err := s.encode(sess)
	if err != nil {
		return err
	}

	ok, err := s.client.SetNX(ctx, SessionKey(sess.ID.String()), data, ttl).Result()
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	if !ok {
		return shared.WrapError("session", "Create", shared.ErrAlreadyExists, "session already exists", nil)
	}
	return nil
}

// Get implements session.Repository.
func (s *SessionStore) Get(ctx context.Context, id shared.SessionID) (*session.Session, error) {
	data, err := s.client.Get(ctx, SessionKey(id.String())).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, shared.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	sess, err := decode(data)
	if err != nil {
		return nil, err
	}
	if sess.IsExpired(s.now()) {
		return nil, shared.ErrSessionExpired
	}
	return sess, nil
}

// Save implements session.Repository.
func (s *SessionStore) Save(ctx context.Context, sess *session.Session) error {
	key := SessionKey(sess.ID.String())
	expected := sess.Version

	next := sess.Clone()
	next.Version = expected + 1
	data, ttl, err := s.encode(next)
	if err != nil {
		return err
	}

	txf := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return shared.ErrSessionNotFound
		}
		if err != nil {
			return err
		}
		stored, err := decode(raw)
		if err != nil {
			return err
		}
		if stored.Version != expected {
			return shared.ErrSessionConflict
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, ttl)
			return nil
		})
		return err
	}

	err = s.client.Watch(ctx, txf, key)
	switch {
	case errors.Is(err, redis.TxFailedErr):
		return shared.ErrSessionConflict
	case err != nil:
		if shared.IsNotFound(err) || shared.IsConflict(err) {
			return err
		}
		return fmt.Errorf("save session: %w", err)
	}

	sess.Version = next.Version
	return nil
}

// Delete implements session.Repository.
func (s *SessionStore) Delete(ctx context.Context, id shared.SessionID) error {
	if err := s.client.Del(ctx, SessionKey(id.String())).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SessionStore) encode(sess *session.Session) ([]byte, time.Duration, error) {
	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil, 0, shared.ErrSessionExpired
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return nil, 0, fmt.Errorf("encode session: %w", err)
	}
	return data, ttl, nil
}

func decode(data []byte) (*session.Session, error) {
	var sess session.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &sess, nil
}

var _ session.Repository = (*SessionStore)(nil)

package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"rentledger/internal/kv"
	"rentledger/pkg/domain"
)

// SessionStore owns the installation's single profile record. Authentication
// is a stub: passwords are accepted and ignored.
type SessionStore struct {
	store kv.Store
	opts  options

	mu   sync.RWMutex
	user *domain.User
}

// NewSessionStore constructs an anonymous session over store.
func NewSessionStore(store kv.Store, opts ...Option) *SessionStore {
	return &SessionStore{store: store, opts: newOptions(opts)}
}

// LoadSession restores the persisted profile. Read and decode failures are
// logged and leave the session anonymous.
func (s *SessionStore) LoadSession(ctx context.Context) {
	_ = s.opts.run(ctx, "session.load", func(ctx context.Context) error {
		key := s.opts.key(domain.EntityUser)
		raw, err := s.store.Get(ctx, key)
		if errors.Is(err, kv.ErrNotFound) {
			s.set(nil)
			return nil
		}
		if err != nil {
			s.opts.logger.Error("load session", "key", key, "error", err)
			s.set(nil)
			return err
		}
		var user *domain.User
		if err := json.Unmarshal(raw, &user); err != nil {
			s.opts.logger.Error("decode session", "key", key, "error", err)
			s.set(nil)
			return err
		}
		// A stored null is an anonymous session.
		s.set(user)
		if user != nil {
			s.opts.logger.Debug("session restored", "user", user.ID)
		}
		return nil
	})
}

// SignIn accepts any credentials and stores a mock profile for email.
func (s *SessionStore) SignIn(ctx context.Context, email, _ string) (domain.User, error) {
	user := domain.User{
		ID:        "1",
		Email:     email,
		Name:      "John Landlord",
		Phone:     "+1234567890",
		Currency:  s.opts.currency,
		CreatedAt: s.opts.clock.Now(),
	}
	if err := s.persist(ctx, "session.sign_in", user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// SignUp behaves like SignIn with an explicit display name and no phone.
func (s *SessionStore) SignUp(ctx context.Context, email, _ string, name string) (domain.User, error) {
	user := domain.User{
		ID:        "1",
		Email:     email,
		Name:      name,
		Currency:  s.opts.currency,
		CreatedAt: s.opts.clock.Now(),
	}
	if err := s.persist(ctx, "session.sign_up", user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (s *SessionStore) persist(ctx context.Context, op string, user domain.User) error {
	return s.opts.run(ctx, op, func(ctx context.Context) error {
		if err := writeJSON(ctx, s.store, s.opts.key(domain.EntityUser), user); err != nil {
			s.opts.logger.Error("persist session", "operation", op, "error", err)
			return err
		}
		s.set(&user)
		s.opts.logger.Info("signed in", "email", user.Email)
		return nil
	})
}

// SignOut removes the persisted profile. The in-memory session is cleared
// only when the removal succeeds.
func (s *SessionStore) SignOut(ctx context.Context) error {
	return s.opts.run(ctx, "session.sign_out", func(ctx context.Context) error {
		key := s.opts.key(domain.EntityUser)
		if err := s.store.Remove(ctx, key); err != nil {
			s.opts.logger.Error("sign out", "key", key, "error", err)
			return fmt.Errorf("remove %s: %w", key, err)
		}
		s.set(nil)
		return nil
	})
}

// Current returns the signed-in profile, if any.
func (s *SessionStore) Current() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

// IsAuthenticated reports whether a profile is present.
func (s *SessionStore) IsAuthenticated() bool {
	_, ok := s.Current()
	return ok
}

func (s *SessionStore) set(user *domain.User) {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
}

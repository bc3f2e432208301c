package service

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/guardianlink/portal/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu     sync.Mutex
	users  map[string]*domain.User
	nextID int
	err    error // returned by every call when set
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Roles = append([]domain.Role(nil), u.Roles...)
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
		if u.Phone == user.Phone {
			return nil, domain.ErrPhoneExists
		}
	}
	c := cloneUser(user)
	if c.ID == "" {
		r.nextID++
		c.ID = "user-" + strconv.Itoa(r.nextID)
	}
	r.users[c.ID] = cloneUser(c)
	return c, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) find(match func(*domain.User) bool) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if match(u) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Email == email })
}

func (r *stubUserRepo) FindByPhone(_ context.Context, phone string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Phone == phone })
}

func (r *stubUserRepo) update(id string, fn func(*domain.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	fn(u)
	return nil
}

func (r *stubUserRepo) IncrementLoginAttempts(_ context.Context, id string) (int, error) {
	var n int
	err := r.update(id, func(u *domain.User) {
		u.LoginAttempts++
		n = u.LoginAttempts
	})
	return n, err
}

func (r *stubUserRepo) LockUntil(_ context.Context, id string, until time.Time) error {
	return r.update(id, func(u *domain.User) { u.LockedUntil = &until })
}

func (r *stubUserRepo) ResetLoginAttempts(_ context.Context, id string) error {
	return r.update(id, func(u *domain.User) {
		u.LoginAttempts = 0
		u.LockedUntil = nil
	})
}

func (r *stubUserRepo) RecordLogin(_ context.Context, id string, at time.Time) error {
	return r.update(id, func(u *domain.User) {
		u.LoginAttempts = 0
		u.LockedUntil = nil
		u.LastLogin = &at
	})
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, hash string, at time.Time) error {
	return r.update(id, func(u *domain.User) {
		u.PasswordHash = hash
		u.PasswordChangedAt = &at
	})
}

func (r *stubUserRepo) UpdatePreferences(_ context.Context, id string, patch domain.PreferencesPatch) (domain.Preferences, error) {
	var out domain.Preferences
	err := r.update(id, func(u *domain.User) {
		u.Preferences = u.Preferences.Apply(patch)
		out = u.Preferences
	})
	return out, err
}

func (r *stubUserRepo) get(id string) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneUser(r.users[id])
}

type stubSessionStore struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
	deleted  []string
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]domain.Session)}
}

func (s *stubSessionStore) Save(_ context.Context, sess domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return nil
}

func (s *stubSessionStore) Get(_ context.Context, id string) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return sess, nil
}

func (s *stubSessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	s.deleted = append(s.deleted, id)
	return nil
}

type recordingAudit struct {
	mu     sync.Mutex
	events []domain.AuthEvent
}

func (a *recordingAudit) Record(e domain.AuthEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, e)
}

func (a *recordingAudit) kinds() []domain.AuthEventKind {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]domain.AuthEventKind, len(a.events))
	for i, e := range a.events {
		out[i] = e.Kind
	}
	return out
}

type stubLinkedRepo struct {
	items  []*domain.LinkedUser
	nextID int
	err    error
}

func (r *stubLinkedRepo) Create(_ context.Context, lu *domain.LinkedUser) (*domain.LinkedUser, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.nextID++
	c := *lu
	c.ID = "lu-" + strconv.Itoa(r.nextID)
	r.items = append(r.items, &c)
	return &c, nil
}

func (r *stubLinkedRepo) ListByGuardian(_ context.Context, guardianID string) ([]*domain.LinkedUser, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []*domain.LinkedUser
	for _, lu := range r.items {
		if lu.GuardianID == guardianID {
			out = append(out, lu)
		}
	}
	return out, nil
}

func (r *stubLinkedRepo) Delete(_ context.Context, guardianID, id string) error {
	for i, lu := range r.items {
		if lu.ID == id && lu.GuardianID == guardianID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrLinkedUserNotFound
}

package store

import (
	"Checklister/internal/cli/model"
	"Checklister/internal/cli/repo"
	"context"
	"errors"
	"strings"
	"sync"
)

var ErrEmptyUsername = errors.New("username is required")

// Authenticator — вход/регистрация по имени (POST /users).
type Authenticator interface {
	Login(ctx context.Context, username string) (*model.User, error)
}

// UserStore хранит текущего пользователя. Наличие пользователя — единственная проверка доступа.
type UserStore struct {
	mu      sync.RWMutex
	auth    Authenticator
	persist repo.CurrentUserStore
	user    *model.User
}

// NewUserStore создаёт стор; persist может быть nil (только память).
func NewUserStore(auth Authenticator, persist repo.CurrentUserStore) *UserStore {
	return &UserStore{auth: auth, persist: persist}
}

// Restore подтягивает сохранённого пользователя, если он есть.
func (s *UserStore) Restore() error {
	if s.persist == nil {
		return nil
	}
	u, err := s.persist.Load()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.user = u
	s.mu.Unlock()
	return nil
}

// Login при успехе делает пользователя текущим; при ошибке состояние не меняется.
func (s *UserStore) Login(ctx context.Context, username string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrEmptyUsername
	}
	u, err := s.auth.Login(ctx, username)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.user = u
	s.mu.Unlock()
	if s.persist != nil {
		if err := s.persist.Save(u); err != nil {
			return u, err
		}
	}
	return u, nil
}

func (s *UserStore) Logout() error {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	if s.persist != nil {
		return s.persist.Clear()
	}
	return nil
}

// Current возвращает копию текущего пользователя.
func (s *UserStore) Current() (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return model.User{}, false
	}
	return *s.user, true
}

// OwnerID id текущего пользователя для поля owner_id, либо nil.
func (s *UserStore) OwnerID() *int64 {
	u, ok := s.Current()
	if !ok {
		return nil
	}
	return &u.ID
}

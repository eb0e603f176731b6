package fs

import (
	"Checklister/internal/cli/model"
	"Checklister/internal/cli/repo"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// UserFSStore — файловое хранилище текущего пользователя CLI (JSON, права 0600).
// Пустой Path означает <UserConfigDir>/Checklister/current_user.json.
type UserFSStore struct {
	Path string
}

var _ repo.CurrentUserStore = UserFSStore{}

func (s UserFSStore) path() (string, error) {
	if s.Path != "" {
		return s.Path, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "Checklister", "current_user.json"), nil
}

// Save сохраняет пользователя в файл.
func (s UserFSStore) Save(u *model.User) error {
	if u == nil {
		return errors.New("nil user")
	}
	p, err := s.path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		return err
	}
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}

// Load читает пользователя; отсутствие файла — не ошибка.
func (s UserFSStore) Load() (*model.User, error) {
	p, err := s.path()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var u model.User
	if err := json.Unmarshal(b, &u); err != nil {
		return nil, fmt.Errorf("corrupted user file %s: %w", p, err)
	}
	if u.ID == 0 {
		return nil, nil
	}
	return &u, nil
}

// Clear удаляет файл пользователя.
func (s UserFSStore) Clear() error {
	p, err := s.path()
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

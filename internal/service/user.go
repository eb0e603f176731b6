package service

import (
	"Checklister/internal/model"
	"Checklister/internal/repo"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
	"gorm.io/gorm"
)

// UserService — вход по имени пользователя без пароля.
type UserService struct {
	repo repo.UserRepository
}

func NewUserService(r repo.UserRepository) *UserService {
	return &UserService{repo: r}
}

// HashUsername возвращает hex(blake2b-256(username)).
func HashUsername(username string) string {
	sum := blake2b.Sum256([]byte(username))
	return hex.EncodeToString(sum[:])
}

// LoginOrRegister возвращает существующего пользователя или создаёт нового.
func (s *UserService) LoginOrRegister(ctx context.Context, username string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fail(ErrInvalidInput, "Username is required")
	}
	u, err := s.repo.GetUserByUsername(ctx, username)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("get user: %w", err)
	}
	u, err = s.repo.CreateUser(ctx, &model.User{Username: username, UsernameHash: HashUsername(username)})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

package repo

import "Checklister/internal/cli/model"

// CurrentUserStore абстракция хранилища текущего пользователя между запусками CLI.
type CurrentUserStore interface {
	Save(u *model.User) error
	// Load возвращает (nil, nil), если пользователь не сохранён.
	Load() (*model.User, error)
	Clear() error
}

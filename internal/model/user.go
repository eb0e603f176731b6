package model

import "time"

// User — владелец чек-листов. Пароля нет: вход по имени пользователя.
type User struct {
	ID           int64  `gorm:"primaryKey"`
	Username     string `gorm:"not null;uniqueIndex"`
	UsernameHash string `gorm:"not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

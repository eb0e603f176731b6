package model

// User — текущий пользователь клиента. Пароля и токена нет.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	UsernameHash string `json:"username_hash"`
}

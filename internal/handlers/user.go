package handlers

import (
	"Checklister/internal/service"
	"net/http"

	"go.uber.org/zap"
)

// UserHandler вход/регистрация по имени пользователя
type UserHandler struct {
	Service *service.UserService
	Logger  *zap.SugaredLogger
}

func NewUserHandler(s *service.UserService, logger *zap.SugaredLogger) *UserHandler {
	return &UserHandler{Service: s, Logger: logger}
}

// Login POST /users?username=...
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	u, err := h.Service.LoginOrRegister(r.Context(), r.URL.Query().Get("username"))
	if err != nil {
		writeError(w, h.Logger, "Login", err)
		return
	}
	writeJSON(w, http.StatusOK, UserDTO{ID: u.ID, Username: u.Username, UsernameHash: u.UsernameHash})
}

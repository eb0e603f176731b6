package handlers

import (
	"Checklister/internal/service"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ErrorResponse — тело любого не-2xx ответа.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, ErrorResponse{Detail: detail})
}

// writeError маппит ошибки сервиса в HTTP-статус; неизвестные ошибки логируются и скрываются.
func writeError(w http.ResponseWriter, logger *zap.SugaredLogger, op string, err error) {
	var svcErr *service.Error
	if !errors.As(err, &svcErr) {
		logger.Errorw(op+": service error", "error", err)
		writeDetail(w, http.StatusInternalServerError, "internal error")
		return
	}
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrInvalidInput):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrNotPublic):
		status = http.StatusForbidden
	}
	logger.Warnw(op+": rejected", "status", status, "detail", svcErr.Detail)
	writeDetail(w, status, svcErr.Detail)
}

func idParam(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil && id > 0
}

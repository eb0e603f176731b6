package handlers

import (
	"Checklister/internal/service"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ChecklistHandler обслуживает CRUD чек-листов, клонирование и публикацию.
type ChecklistHandler struct {
	Service *service.ChecklistService
	Logger  *zap.SugaredLogger
}

// NewChecklistHandler создаёт хендлер чек-листов
func NewChecklistHandler(s *service.ChecklistService, logger *zap.SugaredLogger) *ChecklistHandler {
	return &ChecklistHandler{Service: s, Logger: logger}
}

func (h *ChecklistHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.List(r.Context())
	if err != nil {
		writeError(w, h.Logger, "List", err)
		return
	}
	resp := make([]ChecklistDTO, 0, len(list))
	for i := range list {
		resp = append(resp, toChecklistDTO(&list[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ChecklistHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid checklist id")
		return
	}
	c, err := h.Service.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.Logger, "Get", err)
		return
	}
	writeJSON(w, http.StatusOK, toChecklistDTO(c))
}

func (h *ChecklistHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ChecklistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Create: invalid request body", "error", err)
		writeDetail(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	c, err := h.Service.Create(r.Context(), req.toInput())
	if err != nil {
		writeError(w, h.Logger, "Create", err)
		return
	}
	h.Logger.Infow("checklist created", "id", c.ID, "categories", len(c.Categories))
	writeJSON(w, http.StatusOK, toChecklistDTO(c))
}

func (h *ChecklistHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid checklist id")
		return
	}
	var req ChecklistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Update: invalid request body", "id", id, "error", err)
		writeDetail(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	c, err := h.Service.Update(r.Context(), id, req.toInput())
	if err != nil {
		writeError(w, h.Logger, "Update", err)
		return
	}
	writeJSON(w, http.StatusOK, toChecklistDTO(c))
}

func (h *ChecklistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid checklist id")
		return
	}
	if err := h.Service.Delete(r.Context(), id); err != nil {
		writeError(w, h.Logger, "Delete", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *ChecklistHandler) Clone(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid checklist id")
		return
	}
	c, err := h.Service.Clone(r.Context(), id)
	if err != nil {
		writeError(w, h.Logger, "Clone", err)
		return
	}
	writeJSON(w, http.StatusOK, toChecklistDTO(c))
}

func (h *ChecklistHandler) MakePublic(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid checklist id")
		return
	}
	url, err := h.Service.MakePublic(r.Context(), id)
	if err != nil {
		writeError(w, h.Logger, "MakePublic", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"public_url": url})
}

// GetPublic отдаёт опубликованный чек-лист; доступен по /public/{id} и /checklists/public/{id}
func (h *ChecklistHandler) GetPublic(w http.ResponseWriter, r *http.Request) {
	c, err := h.Service.GetPublic(r.Context(), chi.URLParam(r, "public_id"))
	if err != nil {
		writeError(w, h.Logger, "GetPublic", err)
		return
	}
	writeJSON(w, http.StatusOK, toChecklistDTO(c))
}

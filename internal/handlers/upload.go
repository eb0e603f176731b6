package handlers

import (
	"Checklister/internal/service"
	"errors"
	"mime"
	"net/http"

	"go.uber.org/zap"
)

// UploadHandler обрабатывает загрузку файлов к пунктам и их публичную раздачу.
type UploadHandler struct {
	Service *service.UploadService
	Logger  *zap.SugaredLogger
}

// NewUploadHandler создаёт хендлер загрузок
func NewUploadHandler(s *service.UploadService, logger *zap.SugaredLogger) *UploadHandler {
	return &UploadHandler{Service: s, Logger: logger}
}

// Upload загрузка файла (multipart, поле file) к пункту по его серверному id
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	itemID, ok := idParam(r, "item_id")
	if !ok {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid item id")
		return
	}

	// Лимит общего тела запроса: файл плюс запас на заголовки multipart
	r.Body = http.MaxBytesReader(w, r.Body, h.Service.MaxBytes()+1<<20)
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeDetail(w, http.StatusBadRequest, "File too large")
			return
		}
		h.Logger.Warnw("Upload: invalid multipart form", "item_id", itemID, "error", err)
		writeDetail(w, http.StatusUnprocessableEntity, "invalid multipart form")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		h.Logger.Warnw("Upload: missing file", "item_id", itemID, "error", err)
		writeDetail(w, http.StatusUnprocessableEntity, "file is required")
		return
	}
	defer file.Close()

	up, err := h.Service.Save(r.Context(), itemID, header.Filename, file)
	if err != nil {
		writeError(w, h.Logger, "Upload", err)
		return
	}
	h.Logger.Infow("file uploaded", "item_id", itemID, "upload_id", up.ID, "filename", up.Filename)
	writeJSON(w, http.StatusOK, toUploadDTO(up))
}

func (h *UploadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "upload_id")
	if !ok {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid upload id")
		return
	}
	if err := h.Service.Delete(r.Context(), id); err != nil {
		writeError(w, h.Logger, "DeleteUpload", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// ServePublic отдаёт файл, только если чек-лист опубликован (иначе 403)
func (h *UploadHandler) ServePublic(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "upload_id")
	if !ok {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid upload id")
		return
	}
	up, err := h.Service.OpenPublic(r.Context(), id)
	if err != nil {
		writeError(w, h.Logger, "ServePublic", err)
		return
	}
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": up.Filename}))
	http.ServeFile(w, r, up.Path)
}

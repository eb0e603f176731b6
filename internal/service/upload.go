package service

import (
	"Checklister/internal/model"
	"Checklister/internal/repo"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// допустимые расширения и семейство содержимого, которое должно им соответствовать;
// пустое семейство означает проверку только по расширению
var allowedUploads = map[string]string{
	".txt":  "",
	".pdf":  "application/pdf",
	".xlsx": "application/zip",
}

// UploadService сохраняет файлы пунктов на диск и хранит метаданные в БД.
type UploadService struct {
	repo     repo.UploadRepository
	dir      string
	maxBytes int64
	logger   *zap.SugaredLogger
}

func NewUploadService(r repo.UploadRepository, dir string, maxMB int, logger *zap.SugaredLogger) *UploadService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &UploadService{repo: r, dir: dir, maxBytes: int64(maxMB) << 20, logger: logger}
}

// MaxBytes лимит размера одного файла.
func (s *UploadService) MaxBytes() int64 { return s.maxBytes }

// Save проверяет тип и размер файла, пишет его в UPLOAD_DIR как <uuid>_<имя> и регистрирует загрузку.
func (s *UploadService) Save(ctx context.Context, itemID int64, filename string, r io.Reader) (*model.FileUpload, error) {
	filename = filepath.Base(filepath.Clean("/" + filename))
	family, ok := allowedUploads[strings.ToLower(filepath.Ext(filename))]
	if !ok || filename == "/" {
		return nil, fail(ErrInvalidUpload, "Invalid file type")
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, fail(ErrUploadTooLarge, "File too large")
	}
	if mt := mimetype.Detect(data); family != "" && !inFamily(mt, family) {
		s.logger.Warnw("upload content does not match extension", "filename", filename, "detected", mt.String())
		return nil, fail(ErrInvalidUpload, "Invalid file type")
	}

	exists, err := s.repo.ItemExists(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("check item %d: %w", itemID, err)
	}
	if !exists {
		return nil, fail(ErrNotFound, "Item not found")
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	stored := strings.ReplaceAll(uuid.NewString(), "-", "") + "_" + filename
	path := filepath.Join(s.dir, stored)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("write upload: %w", err)
	}

	up := &model.FileUpload{ItemID: itemID, Filename: filename, Path: path}
	if err := s.repo.Create(ctx, up); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("save upload: %w", err)
	}
	return up, nil
}

// Delete удаляет запись о загрузке; ошибки файловой системы игнорируются.
func (s *UploadService) Delete(ctx context.Context, id int64) error {
	up, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return notFound(err, "File not found")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err, "File not found")
	}
	if err := os.Remove(up.Path); err != nil {
		s.logger.Warnw("failed to remove upload file", "path", up.Path, "error", err)
	}
	return nil
}

// OpenPublic возвращает загрузку, только если её чек-лист опубликован.
func (s *UploadService) OpenPublic(ctx context.Context, id int64) (*model.FileUpload, error) {
	up, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "File not found")
	}
	owner, err := s.repo.ChecklistForUpload(ctx, id)
	if err != nil {
		return nil, notFound(err, "Checklist not found")
	}
	if !owner.IsPublic {
		return nil, fail(ErrNotPublic, "Checklist is not public")
	}
	if _, err := os.Stat(up.Path); errors.Is(err, os.ErrNotExist) {
		return nil, fail(ErrNotFound, "File not found")
	}
	return up, nil
}

func inFamily(mt *mimetype.MIME, family string) bool {
	for ; mt != nil; mt = mt.Parent() {
		if mt.Is(family) {
			return true
		}
	}
	return false
}

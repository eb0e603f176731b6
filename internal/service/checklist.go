package service

import (
	"Checklister/internal/model"
	"Checklister/internal/repo"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ChecklistInput — тело POST/PUT /checklists. ID в категориях и пунктах опциональны:
// при обновлении они позволяют сохранить существующие строки вместе с загрузками.
type ChecklistInput struct {
	Title       string
	Description string
	IsPublic    bool
	OwnerID     *int64
	Categories  []CategoryInput
}

type CategoryInput struct {
	ID    int64
	Name  string
	Items []ItemInput
}

type ItemInput struct {
	ID   int64
	Name string
}

// ChecklistService инкапсулирует бизнес-логику чек-листов.
type ChecklistService struct {
	repo          repo.ChecklistRepository
	publicBaseURL string
	logger        *zap.SugaredLogger
}

func NewChecklistService(r repo.ChecklistRepository, publicBaseURL string, logger *zap.SugaredLogger) *ChecklistService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &ChecklistService{repo: r, publicBaseURL: strings.TrimRight(publicBaseURL, "/"), logger: logger}
}

func (s *ChecklistService) List(ctx context.Context) ([]model.Checklist, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list checklists: %w", err)
	}
	return list, nil
}

func (s *ChecklistService) Get(ctx context.Context, id int64) (*model.Checklist, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Checklist not found")
	}
	return c, nil
}

func (s *ChecklistService) Create(ctx context.Context, in ChecklistInput) (*model.Checklist, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	c := fromInput(in)
	c.PublicID = uuid.NewString()
	c.IsPublic = in.IsPublic
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create checklist: %w", err)
	}
	return s.Get(ctx, c.ID)
}

// Update полностью заменяет категории чек-листа. Файлы загрузок удалённых пунктов
// стираются с диска без учёта ошибок.
func (s *ChecklistService) Update(ctx context.Context, id int64, in ChecklistInput) (*model.Checklist, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	c := fromInput(in)
	c.ID = id
	dropped, err := s.repo.Replace(ctx, c)
	if err != nil {
		return nil, notFound(err, "Checklist not found")
	}
	s.removeFiles(dropped)
	return s.Get(ctx, id)
}

func (s *ChecklistService) Delete(ctx context.Context, id int64) error {
	dropped, err := s.repo.Delete(ctx, id)
	if err != nil {
		return notFound(err, "Checklist not found")
	}
	s.removeFiles(dropped)
	return nil
}

// Clone копирует категории и пункты (без загрузок) в новый приватный чек-лист.
func (s *ChecklistService) Clone(ctx context.Context, id int64) (*model.Checklist, error) {
	src, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	cp := &model.Checklist{
		Title:       src.Title + " (Clone)",
		Description: src.Description,
		PublicID:    uuid.NewString(),
		OwnerID:     src.OwnerID,
	}
	for _, cat := range src.Categories {
		nc := model.Category{Name: cat.Name}
		for _, it := range cat.Items {
			nc.Items = append(nc.Items, model.Item{Name: it.Name})
		}
		cp.Categories = append(cp.Categories, nc)
	}
	if err := s.repo.Create(ctx, cp); err != nil {
		return nil, fmt.Errorf("clone checklist %d: %w", id, err)
	}
	return s.Get(ctx, cp.ID)
}

// MakePublic публикует чек-лист и возвращает ссылку PUBLIC_BASE_URL/public/{public_id}.
func (s *ChecklistService) MakePublic(ctx context.Context, id int64) (string, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	publicID := c.PublicID
	if publicID == "" {
		publicID = uuid.NewString()
	}
	if err := s.repo.SetPublic(ctx, id, publicID); err != nil {
		return "", notFound(err, "Checklist not found")
	}
	return s.publicBaseURL + "/public/" + publicID, nil
}

// GetPublic отдаёт чек-лист по public_id; приватные считаются отсутствующими.
func (s *ChecklistService) GetPublic(ctx context.Context, publicID string) (*model.Checklist, error) {
	c, err := s.repo.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, notFound(err, "Checklist not found")
	}
	if !c.IsPublic {
		return nil, fail(ErrNotFound, "Checklist not found")
	}
	return c, nil
}

func (s *ChecklistService) removeFiles(paths []string) {
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.logger.Warnw("failed to remove upload file", "path", p, "error", err)
		}
	}
}

func validate(in ChecklistInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return fail(ErrInvalidInput, "Title is required")
	}
	for _, cat := range in.Categories {
		if strings.TrimSpace(cat.Name) == "" {
			return fail(ErrInvalidInput, "Category name is required")
		}
		for _, it := range cat.Items {
			if strings.TrimSpace(it.Name) == "" {
				return fail(ErrInvalidInput, "All items must have a name")
			}
		}
	}
	return nil
}

func fromInput(in ChecklistInput) *model.Checklist {
	c := &model.Checklist{Title: in.Title, Description: in.Description, OwnerID: in.OwnerID}
	for _, cat := range in.Categories {
		mc := model.Category{ID: cat.ID, Name: cat.Name}
		for _, it := range cat.Items {
			mc.Items = append(mc.Items, model.Item{ID: it.ID, Name: it.Name})
		}
		c.Categories = append(c.Categories, mc)
	}
	return c
}

// notFound переводит gorm.ErrRecordNotFound в ErrNotFound, остальные ошибки оставляет как есть.
func notFound(err error, detail string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(ErrNotFound, detail)
	}
	return err
}

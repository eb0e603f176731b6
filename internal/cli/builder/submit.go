package builder

import (
	"Checklister/internal/cli/model"
	"Checklister/internal/cli/prompt"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ErrBusy — отправка уже идёт; повторная отклоняется.
var ErrBusy = errors.New("submission already in progress")

// ErrCancelled — пользователь отказался подтвердить действие.
var ErrCancelled = errors.New("cancelled")

// API — вызовы сервера, нужные билдеру.
type API interface {
	CreateChecklist(ctx context.Context, in model.ChecklistInput) (*model.Checklist, error)
	UpdateChecklist(ctx context.Context, id int64, in model.ChecklistInput) (*model.Checklist, error)
	GetChecklist(ctx context.Context, id int64) (*model.Checklist, error)
	UploadFile(ctx context.Context, itemID int64, filename string, r io.Reader, progress func(percent int)) (*model.Upload, error)
	DeleteUpload(ctx context.Context, uploadID int64) error
}

// Notifier — канал пользовательских уведомлений (snackbar).
type Notifier interface {
	Show(msg string)
}

// Owner источник owner_id (текущий пользователь).
type Owner interface {
	OwnerID() *int64
}

type State int

const (
	StateIdle State = iota
	StateValidating
	StateSaving
	StateUploading
	StateRefetching
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateValidating:
		return "validating"
	case StateSaving:
		return "saving"
	case StateUploading:
		return "uploading"
	case StateRefetching:
		return "refetching"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// UploadOutcome результат загрузки одного файла.
type UploadOutcome struct {
	ItemKey string
	ItemID  int64
	Path    string
	Upload  *model.Upload
	Err     error
}

// UploadError — чек-лист сохранён, но часть файлов не загрузилась.
type UploadError struct {
	Failed []UploadOutcome
}

func (e *UploadError) Error() string {
	if len(e.Failed) == 1 {
		return fmt.Sprintf("upload %s failed: %v", filepath.Base(e.Failed[0].Path), e.Failed[0].Err)
	}
	return fmt.Sprintf("%d uploads failed, first: %s: %v", len(e.Failed), filepath.Base(e.Failed[0].Path), e.Failed[0].Err)
}

// Result итог отправки: перечитанный чек-лист (состояние навигации для списка) и исходы загрузок.
type Result struct {
	Checklist *model.Checklist
	Created   bool
	Uploads   []UploadOutcome
}

// Submitter проводит черновик через Validating → Saving → Uploading → Refetching → Done|Failed.
type Submitter struct {
	api     API
	notify  Notifier
	owner   Owner
	workers int

	// Open открывает локальный файл для загрузки; подменяется в тестах.
	Open func(path string) (io.ReadCloser, error)
	// OnState вызывается при каждой смене состояния.
	OnState func(State)
	// OnProgress вызывается при изменении прогресса загрузки пункта.
	OnProgress func(itemKey string, percent int)

	mu         sync.Mutex
	state      State
	submitting bool
	progress   map[string]int
}

// NewSubmitter owner может быть nil; workers ограничивает число параллельных загрузок.
func NewSubmitter(api API, notify Notifier, owner Owner, workers int) *Submitter {
	if workers <= 0 {
		workers = 4
	}
	return &Submitter{
		api:      api,
		notify:   notify,
		owner:    owner,
		workers:  workers,
		Open:     func(p string) (io.ReadCloser, error) { return os.Open(p) },
		progress: make(map[string]int),
	}
}

func (s *Submitter) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Submitter) Submitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

// Progress копия карты прогресса (ключ пункта → 0..100) последней отправки.
func (s *Submitter) Progress() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int, len(s.progress))
	for k, v := range s.progress {
		out[k] = v
	}
	return out
}

func (s *Submitter) setState(st State) {
	s.mu.Lock()
	s.state = st
	cb := s.OnState
	s.mu.Unlock()
	if cb != nil {
		cb(st)
	}
}

func (s *Submitter) setProgress(key string, pct int) {
	s.mu.Lock()
	s.progress[key] = pct
	cb := s.OnProgress
	s.mu.Unlock()
	if cb != nil {
		cb(key, pct)
	}
}

func (s *Submitter) show(msg string) {
	if s.notify != nil {
		s.notify.Show(msg)
	}
}

// Submit сохраняет черновик, загружает ожидающие файлы по серверным id пунктов и
// перечитывает чек-лист. Черновик не изменяется: работа идёт по снимку на момент вызова.
func (s *Submitter) Submit(ctx context.Context, d *Draft) (*Result, error) {
	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	s.submitting = true
	s.progress = make(map[string]int)
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.submitting = false
		s.mu.Unlock()
	}()

	s.setState(StateValidating)
	snap := d.Clone()
	if verr := snap.Validate(); verr != nil {
		s.setState(StateIdle)
		return nil, verr
	}

	s.setState(StateSaving)
	var ownerID *int64
	if s.owner != nil {
		ownerID = s.owner.OwnerID()
	}
	payload := snap.Payload(ownerID)
	created := snap.Mode() == ModeCreate
	var saved *model.Checklist
	var err error
	if created {
		saved, err = s.api.CreateChecklist(ctx, payload)
	} else {
		saved, err = s.api.UpdateChecklist(ctx, snap.ID, payload)
	}
	if err != nil {
		return nil, s.fail(err)
	}

	s.setState(StateUploading)
	outcomes, err := s.uploadAll(ctx, snap.PendingUploads(), saved)
	if err != nil {
		return nil, s.fail(err)
	}

	s.setState(StateRefetching)
	fresh, err := s.api.GetChecklist(ctx, saved.ID)
	if err != nil {
		return nil, s.fail(err)
	}

	res := &Result{Checklist: fresh, Created: created, Uploads: outcomes}
	var failed []UploadOutcome
	for _, o := range outcomes {
		if o.Err != nil {
			failed = append(failed, o)
		}
	}
	if len(failed) > 0 {
		uerr := &UploadError{Failed: failed}
		s.setState(StateFailed)
		s.show("Checklist saved, but " + uerr.Error())
		return res, uerr
	}

	s.setState(StateDone)
	if created {
		s.show("Checklist created!")
	} else {
		s.show("Checklist updated!")
	}
	return res, nil
}

func (s *Submitter) fail(err error) error {
	s.setState(StateFailed)
	s.show(err.Error())
	return err
}

// uploadAll параллельно (не более workers) загружает файлы; ошибки отдельных файлов
// собираются в исходы, а не прерывают остальные загрузки.
func (s *Submitter) uploadAll(ctx context.Context, pending []PendingUpload, saved *model.Checklist) ([]UploadOutcome, error) {
	if len(pending) == 0 {
		return nil, nil
	}
	outcomes := make([]UploadOutcome, len(pending))
	for i, p := range pending {
		if p.CategoryIndex >= len(saved.Categories) || p.ItemIndex >= len(saved.Categories[p.CategoryIndex].Items) {
			return nil, fmt.Errorf("server response does not contain item %d of category %d", p.ItemIndex, p.CategoryIndex)
		}
		outcomes[i] = UploadOutcome{
			ItemKey: p.ItemKey,
			ItemID:  saved.Categories[p.CategoryIndex].Items[p.ItemIndex].ID,
			Path:    p.Path,
		}
		s.setProgress(p.ItemKey, 0)
	}

	var g errgroup.Group
	g.SetLimit(s.workers)
	for i := range outcomes {
		o := &outcomes[i]
		g.Go(func() error {
			o.Upload, o.Err = s.uploadOne(ctx, o)
			return nil
		})
	}
	_ = g.Wait()
	return outcomes, nil
}

func (s *Submitter) uploadOne(ctx context.Context, o *UploadOutcome) (*model.Upload, error) {
	f, err := s.Open(o.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return s.api.UploadFile(ctx, o.ItemID, filepath.Base(o.Path), f, func(pct int) {
		s.setProgress(o.ItemKey, pct)
	})
}

// RemoveUpload после подтверждения удаляет загрузку и перечитывает чек-лист.
func (s *Submitter) RemoveUpload(ctx context.Context, confirm prompt.Confirmer, checklistID, uploadID int64) (*model.Checklist, error) {
	if confirm != nil && !confirm.Confirm("Remove this file?") {
		return nil, ErrCancelled
	}
	if err := s.api.DeleteUpload(ctx, uploadID); err != nil {
		s.show(err.Error())
		return nil, err
	}
	fresh, err := s.api.GetChecklist(ctx, checklistID)
	if err != nil {
		s.show(err.Error())
		return nil, err
	}
	s.show("File removed")
	return fresh, nil
}

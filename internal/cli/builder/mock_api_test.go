package builder

import (
	"Checklister/internal/cli/model"
	"context"
	"io"
	"sync"

	"github.com/stretchr/testify/mock"
)

type mockAPI struct{ mock.Mock }

func (m *mockAPI) CreateChecklist(ctx context.Context, in model.ChecklistInput) (*model.Checklist, error) {
	args := m.Called(ctx, in)
	if v, ok := args.Get(0).(*model.Checklist); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAPI) UpdateChecklist(ctx context.Context, id int64, in model.ChecklistInput) (*model.Checklist, error) {
	args := m.Called(ctx, id, in)
	if v, ok := args.Get(0).(*model.Checklist); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAPI) GetChecklist(ctx context.Context, id int64) (*model.Checklist, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Checklist); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAPI) UploadFile(ctx context.Context, itemID int64, filename string, r io.Reader, progress func(percent int)) (*model.Upload, error) {
	args := m.Called(ctx, itemID, filename, r, progress)
	if v, ok := args.Get(0).(*model.Upload); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAPI) DeleteUpload(ctx context.Context, uploadID int64) error {
	return m.Called(ctx, uploadID).Error(0)
}

var _ API = (*mockAPI)(nil)

// recorder собирает уведомления
type recorder struct {
	mu   sync.Mutex
	msgs []string
}

func (r *recorder) Show(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

func (r *recorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.msgs...)
}

type fixedOwner struct{ id *int64 }

func (o fixedOwner) OwnerID() *int64 { return o.id }

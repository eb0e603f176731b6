package views

import (
	"Checklister/internal/cli/model"
	"context"
	"strconv"
	"sync"

	"github.com/stretchr/testify/mock"
)

type mockAPI struct{ mock.Mock }

func (m *mockAPI) ListChecklists(ctx context.Context) ([]model.Checklist, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]model.Checklist); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAPI) DeleteChecklist(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockAPI) CloneChecklist(ctx context.Context, id int64) (*model.Checklist, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Checklist); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAPI) MakePublic(ctx context.Context, id int64) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *mockAPI) PublicLink(publicID string) string {
	return "http://srv/public/" + publicID
}

func (m *mockAPI) GetPublicChecklist(ctx context.Context, publicID string) (*model.Checklist, error) {
	args := m.Called(ctx, publicID)
	if v, ok := args.Get(0).(*model.Checklist); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAPI) PublicUploadURL(uploadID int64) string {
	return "http://srv/public_uploads/" + strconv.FormatInt(uploadID, 10)
}

var (
	_ ListAPI   = (*mockAPI)(nil)
	_ PublicAPI = (*mockAPI)(nil)
)

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

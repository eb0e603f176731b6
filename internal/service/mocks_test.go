package service

import (
	"Checklister/internal/model"
	"Checklister/internal/repo"
	"context"

	"github.com/stretchr/testify/mock"
)

// мок для repo.UserRepository
type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

// мок для repo.ChecklistRepository
type mockChecklistRepo struct{ mock.Mock }

func (m *mockChecklistRepo) List(ctx context.Context) ([]model.Checklist, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]model.Checklist); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockChecklistRepo) GetByID(ctx context.Context, id int64) (*model.Checklist, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Checklist); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockChecklistRepo) GetByPublicID(ctx context.Context, publicID string) (*model.Checklist, error) {
	args := m.Called(ctx, publicID)
	if v, ok := args.Get(0).(*model.Checklist); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockChecklistRepo) Create(ctx context.Context, c *model.Checklist) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockChecklistRepo) Replace(ctx context.Context, c *model.Checklist) ([]string, error) {
	args := m.Called(ctx, c)
	if v, ok := args.Get(0).([]string); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockChecklistRepo) Delete(ctx context.Context, id int64) ([]string, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).([]string); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockChecklistRepo) SetPublic(ctx context.Context, id int64, publicID string) error {
	return m.Called(ctx, id, publicID).Error(0)
}

var _ repo.ChecklistRepository = (*mockChecklistRepo)(nil)

// мок для repo.UploadRepository
type mockUploadRepo struct{ mock.Mock }

func (m *mockUploadRepo) ItemExists(ctx context.Context, itemID int64) (bool, error) {
	args := m.Called(ctx, itemID)
	return args.Bool(0), args.Error(1)
}

func (m *mockUploadRepo) Create(ctx context.Context, u *model.FileUpload) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUploadRepo) GetByID(ctx context.Context, id int64) (*model.FileUpload, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.FileUpload); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUploadRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUploadRepo) ChecklistForUpload(ctx context.Context, uploadID int64) (*model.Checklist, error) {
	args := m.Called(ctx, uploadID)
	if v, ok := args.Get(0).(*model.Checklist); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.UploadRepository = (*mockUploadRepo)(nil)

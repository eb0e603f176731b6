package repo

import (
	"Checklister/internal/model"
	"context"

	"gorm.io/gorm"
)

// UploadRepository минимальный контракт доступа к загрузкам файлов.
type UploadRepository interface {
	ItemExists(ctx context.Context, itemID int64) (bool, error)
	Create(ctx context.Context, u *model.FileUpload) error
	GetByID(ctx context.Context, id int64) (*model.FileUpload, error)
	Delete(ctx context.Context, id int64) error
	// ChecklistForUpload возвращает чек-лист (без дерева), которому принадлежит загрузка.
	ChecklistForUpload(ctx context.Context, uploadID int64) (*model.Checklist, error)
}

type uploadRepo struct {
	db *gorm.DB
}

func NewUploadRepository(db *gorm.DB) UploadRepository {
	return &uploadRepo{db: db}
}

func (r *uploadRepo) ItemExists(ctx context.Context, itemID int64) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Item{}).Where("id = ?", itemID).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *uploadRepo) Create(ctx context.Context, u *model.FileUpload) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *uploadRepo) GetByID(ctx context.Context, id int64) (*model.FileUpload, error) {
	var u model.FileUpload
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *uploadRepo) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&model.FileUpload{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *uploadRepo) ChecklistForUpload(ctx context.Context, uploadID int64) (*model.Checklist, error) {
	var c model.Checklist
	err := r.db.WithContext(ctx).
		Model(&model.Checklist{}).
		Select("checklists.*").
		Joins("JOIN categories ON categories.checklist_id = checklists.id").
		Joins("JOIN items ON items.category_id = categories.id").
		Joins("JOIN file_uploads ON file_uploads.item_id = items.id").
		Where("file_uploads.id = ?", uploadID).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

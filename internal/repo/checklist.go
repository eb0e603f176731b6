package repo

import (
	"Checklister/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ChecklistRepository определяет контракт доступа к чек-листам вместе с их деревом
// (категории → пункты → загрузки).
type ChecklistRepository interface {
	// List возвращает все чек-листы по возрастанию id.
	List(ctx context.Context) ([]model.Checklist, error)
	// GetByID возвращает gorm.ErrRecordNotFound, если записи нет.
	GetByID(ctx context.Context, id int64) (*model.Checklist, error)
	GetByPublicID(ctx context.Context, publicID string) (*model.Checklist, error)
	// Create сохраняет чек-лист с категориями и пунктами; id проставляются в переданную структуру.
	Create(ctx context.Context, c *model.Checklist) error
	// Replace обновляет заголовок/описание и синхронизирует дерево категорий.
	// Категории и пункты с известными id переиспользуются (их загрузки сохраняются),
	// остальные создаются; отсутствующие в c удаляются. Возвращает пути файлов удалённых загрузок.
	Replace(ctx context.Context, c *model.Checklist) ([]string, error)
	// Delete удаляет чек-лист со всем деревом и возвращает пути файлов удалённых загрузок.
	Delete(ctx context.Context, id int64) ([]string, error)
	SetPublic(ctx context.Context, id int64, publicID string) error
}

type checklistRepo struct {
	db *gorm.DB
}

// NewChecklistRepository создаёт реализацию репозитория для Checklist.
func NewChecklistRepository(db *gorm.DB) ChecklistRepository {
	return &checklistRepo{db: db}
}

func byPosition(db *gorm.DB) *gorm.DB { return db.Order("position ASC, id ASC") }

func withTree(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Categories", byPosition).
		Preload("Categories.Items", byPosition).
		Preload("Categories.Items.Uploads", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") })
}

func (r *checklistRepo) List(ctx context.Context) ([]model.Checklist, error) {
	var list []model.Checklist
	if err := withTree(r.db.WithContext(ctx)).Order("id ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *checklistRepo) GetByID(ctx context.Context, id int64) (*model.Checklist, error) {
	var c model.Checklist
	if err := withTree(r.db.WithContext(ctx)).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *checklistRepo) GetByPublicID(ctx context.Context, publicID string) (*model.Checklist, error) {
	var c model.Checklist
	if err := withTree(r.db.WithContext(ctx)).Where("public_id = ?", publicID).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *checklistRepo) Create(ctx context.Context, c *model.Checklist) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(c).Error; err != nil {
			return err
		}
		for ci := range c.Categories {
			cat := &c.Categories[ci]
			cat.ID = 0
			cat.ChecklistID = c.ID
			cat.Position = ci
			if err := insertCategory(tx, cat); err != nil {
				return err
			}
		}
		return nil
	})
}

func insertCategory(tx *gorm.DB, cat *model.Category) error {
	if err := tx.Omit(clause.Associations).Create(cat).Error; err != nil {
		return err
	}
	for ii := range cat.Items {
		it := &cat.Items[ii]
		it.ID = 0
		it.CategoryID = cat.ID
		it.Position = ii
		it.Uploads = nil
		if err := tx.Omit(clause.Associations).Create(it).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *checklistRepo) Replace(ctx context.Context, c *model.Checklist) ([]string, error) {
	var dropped []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur model.Checklist
		if err := withTree(tx).First(&cur, c.ID).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Checklist{}).Where("id = ?", c.ID).
			Updates(map[string]any{"title": c.Title, "description": c.Description}).Error; err != nil {
			return err
		}

		existingCats := make(map[int64]bool, len(cur.Categories))
		existingItems := make(map[int64]model.Item)
		for _, cat := range cur.Categories {
			existingCats[cat.ID] = true
			for _, it := range cat.Items {
				existingItems[it.ID] = it
			}
		}
		usedCats := make(map[int64]bool)
		usedItems := make(map[int64]bool)

		for ci := range c.Categories {
			cat := &c.Categories[ci]
			cat.ChecklistID = c.ID
			cat.Position = ci
			if !existingCats[cat.ID] || usedCats[cat.ID] {
				cat.ID = 0
			}
			items := cat.Items
			cat.Items = nil
			if cat.ID == 0 {
				if err := tx.Omit(clause.Associations).Create(cat).Error; err != nil {
					return err
				}
			} else {
				usedCats[cat.ID] = true
				if err := tx.Model(&model.Category{}).Where("id = ?", cat.ID).
					Updates(map[string]any{"name": cat.Name, "position": ci}).Error; err != nil {
					return err
				}
			}
			for ii := range items {
				it := &items[ii]
				it.CategoryID = cat.ID
				it.Position = ii
				it.Uploads = nil
				if _, ok := existingItems[it.ID]; !ok || usedItems[it.ID] {
					it.ID = 0
				}
				if it.ID == 0 {
					if err := tx.Omit(clause.Associations).Create(it).Error; err != nil {
						return err
					}
					continue
				}
				usedItems[it.ID] = true
				if err := tx.Model(&model.Item{}).Where("id = ?", it.ID).
					Updates(map[string]any{"name": it.Name, "position": ii, "category_id": cat.ID}).Error; err != nil {
					return err
				}
			}
			cat.Items = items
		}

		// Удаляем то, чего больше нет в дереве
		var staleItems []int64
		for id, it := range existingItems {
			if usedItems[id] {
				continue
			}
			staleItems = append(staleItems, id)
			for _, up := range it.Uploads {
				dropped = append(dropped, up.Path)
			}
		}
		if len(staleItems) > 0 {
			if err := tx.Where("item_id IN ?", staleItems).Delete(&model.FileUpload{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", staleItems).Delete(&model.Item{}).Error; err != nil {
				return err
			}
		}
		var staleCats []int64
		for id := range existingCats {
			if !usedCats[id] {
				staleCats = append(staleCats, id)
			}
		}
		if len(staleCats) > 0 {
			if err := tx.Where("id IN ?", staleCats).Delete(&model.Category{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dropped, nil
}

func (r *checklistRepo) Delete(ctx context.Context, id int64) ([]string, error) {
	var dropped []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur model.Checklist
		if err := withTree(tx).First(&cur, id).Error; err != nil {
			return err
		}
		var catIDs, itemIDs []int64
		for _, cat := range cur.Categories {
			catIDs = append(catIDs, cat.ID)
			for _, it := range cat.Items {
				itemIDs = append(itemIDs, it.ID)
				for _, up := range it.Uploads {
					dropped = append(dropped, up.Path)
				}
			}
		}
		if len(itemIDs) > 0 {
			if err := tx.Where("item_id IN ?", itemIDs).Delete(&model.FileUpload{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", itemIDs).Delete(&model.Item{}).Error; err != nil {
				return err
			}
		}
		if len(catIDs) > 0 {
			if err := tx.Where("id IN ?", catIDs).Delete(&model.Category{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.Checklist{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return dropped, nil
}

func (r *checklistRepo) SetPublic(ctx context.Context, id int64, publicID string) error {
	tx := r.db.WithContext(ctx).Model(&model.Checklist{}).Where("id = ?", id).
		Updates(map[string]any{"is_public": true, "public_id": publicID})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

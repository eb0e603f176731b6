// Package builder — редактор чек-листа: локальный черновик со стабильными ключами,
// валидация и отправка (сохранение, загрузка файлов, повторное чтение).
package builder

import (
	"Checklister/internal/cli/model"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrUnknownKey = errors.New("unknown key")

type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// ItemDraft — пункт черновика. Key генерируется локально и не меняется при
// удалении или перестановке соседей; ID — серверный id (0 для новых).
type ItemDraft struct {
	Key         string
	ID          int64
	Name        string
	PendingFile string         // локальный путь файла, ожидающего загрузки
	Uploads     []model.Upload // только из ответа сервера
}

type CategoryDraft struct {
	Key   string
	ID    int64
	Name  string
	Items []*ItemDraft
}

// Draft — редактируемое состояние билдера.
type Draft struct {
	ID          int64
	Title       string
	Description string
	Categories  []*CategoryDraft
}

func newKey() string { return uuid.NewString() }

// NewDraft пустой черновик (режим создания).
func NewDraft() *Draft { return &Draft{} }

// FromChecklist черновик, отражающий существующий чек-лист (режим редактирования).
func FromChecklist(c *model.Checklist) *Draft {
	d := &Draft{ID: c.ID, Title: c.Title, Description: c.Description}
	for _, cat := range c.Categories {
		cd := &CategoryDraft{Key: newKey(), ID: cat.ID, Name: cat.Name}
		for _, it := range cat.Items {
			cd.Items = append(cd.Items, &ItemDraft{
				Key:     newKey(),
				ID:      it.ID,
				Name:    it.Name,
				Uploads: append([]model.Upload(nil), it.Uploads...),
			})
		}
		d.Categories = append(d.Categories, cd)
	}
	return d
}

func (d *Draft) Mode() Mode {
	if d.ID != 0 {
		return ModeEdit
	}
	return ModeCreate
}

// AddCategory добавляет категорию в конец и возвращает её ключ.
func (d *Draft) AddCategory(name string) string {
	c := &CategoryDraft{Key: newKey(), Name: name}
	d.Categories = append(d.Categories, c)
	return c.Key
}

func (d *Draft) RemoveCategory(key string) error {
	for i, c := range d.Categories {
		if c.Key == key {
			d.Categories = append(d.Categories[:i:i], d.Categories[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("category %s: %w", key, ErrUnknownKey)
}

func (d *Draft) RenameCategory(key, name string) error {
	c, ok := d.Category(key)
	if !ok {
		return fmt.Errorf("category %s: %w", key, ErrUnknownKey)
	}
	c.Name = name
	return nil
}

// AddItem добавляет пункт в конец категории и возвращает его ключ.
func (d *Draft) AddItem(categoryKey, name string) (string, error) {
	c, ok := d.Category(categoryKey)
	if !ok {
		return "", fmt.Errorf("category %s: %w", categoryKey, ErrUnknownKey)
	}
	it := &ItemDraft{Key: newKey(), Name: name}
	c.Items = append(c.Items, it)
	return it.Key, nil
}

func (d *Draft) RemoveItem(key string) error {
	for _, c := range d.Categories {
		for i, it := range c.Items {
			if it.Key == key {
				c.Items = append(c.Items[:i:i], c.Items[i+1:]...)
				return nil
			}
		}
	}
	return fmt.Errorf("item %s: %w", key, ErrUnknownKey)
}

func (d *Draft) RenameItem(key, name string) error {
	it, ok := d.Item(key)
	if !ok {
		return fmt.Errorf("item %s: %w", key, ErrUnknownKey)
	}
	it.Name = name
	return nil
}

// AttachFile помечает локальный файл для загрузки в пункт после сохранения.
func (d *Draft) AttachFile(itemKey, path string) error {
	it, ok := d.Item(itemKey)
	if !ok {
		return fmt.Errorf("item %s: %w", itemKey, ErrUnknownKey)
	}
	it.PendingFile = path
	return nil
}

func (d *Draft) DetachFile(itemKey string) error {
	return d.AttachFile(itemKey, "")
}

func (d *Draft) Category(key string) (*CategoryDraft, bool) {
	for _, c := range d.Categories {
		if c.Key == key {
			return c, true
		}
	}
	return nil, false
}

func (d *Draft) Item(key string) (*ItemDraft, bool) {
	for _, c := range d.Categories {
		for _, it := range c.Items {
			if it.Key == key {
				return it, true
			}
		}
	}
	return nil, false
}

// CategoryByName первая категория с таким именем.
func (d *Draft) CategoryByName(name string) (*CategoryDraft, bool) {
	for _, c := range d.Categories {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// ItemByName первый пункт с таким именем в категории с таким именем.
func (d *Draft) ItemByName(category, item string) (*ItemDraft, bool) {
	c, ok := d.CategoryByName(category)
	if !ok {
		return nil, false
	}
	for _, it := range c.Items {
		if it.Name == item {
			return it, true
		}
	}
	return nil, false
}

// Payload тело POST/PUT. Серверные id передаются только в режиме редактирования.
func (d *Draft) Payload(ownerID *int64) model.ChecklistInput {
	in := model.ChecklistInput{
		Title:       d.Title,
		Description: d.Description,
		Categories:  make([]model.CategoryInput, 0, len(d.Categories)),
		OwnerID:     ownerID,
	}
	edit := d.Mode() == ModeEdit
	for _, c := range d.Categories {
		ci := model.CategoryInput{Name: c.Name, Items: make([]model.ItemInput, 0, len(c.Items))}
		if edit {
			ci.ID = c.ID
		}
		for _, it := range c.Items {
			ii := model.ItemInput{Name: it.Name}
			if edit {
				ii.ID = it.ID
			}
			ci.Items = append(ci.Items, ii)
		}
		in.Categories = append(in.Categories, ci)
	}
	return in
}

// PendingUpload файл, ожидающий загрузки, с позицией пункта в теле запроса.
type PendingUpload struct {
	ItemKey       string
	CategoryIndex int
	ItemIndex     int
	Path          string
}

func (d *Draft) PendingUploads() []PendingUpload {
	var out []PendingUpload
	for ci, c := range d.Categories {
		for ii, it := range c.Items {
			if it.PendingFile != "" {
				out = append(out, PendingUpload{ItemKey: it.Key, CategoryIndex: ci, ItemIndex: ii, Path: it.PendingFile})
			}
		}
	}
	return out
}

// Clone глубокая копия; ключи сохраняются.
func (d *Draft) Clone() *Draft {
	cp := &Draft{ID: d.ID, Title: d.Title, Description: d.Description}
	for _, c := range d.Categories {
		cc := &CategoryDraft{Key: c.Key, ID: c.ID, Name: c.Name}
		for _, it := range c.Items {
			ic := *it
			ic.Uploads = append([]model.Upload(nil), it.Uploads...)
			cc.Items = append(cc.Items, &ic)
		}
		cp.Categories = append(cp.Categories, cc)
	}
	return cp
}

// Sync переносит серверное состояние (id и загрузки) в черновик после сохранения,
// сохраняя локальные ключи. Ожидающие файлы сбрасываются.
func (d *Draft) Sync(c *model.Checklist) {
	keys := make([][]string, len(d.Categories))
	catKeys := make([]string, len(d.Categories))
	for ci, cat := range d.Categories {
		catKeys[ci] = cat.Key
		for _, it := range cat.Items {
			keys[ci] = append(keys[ci], it.Key)
		}
	}
	fresh := FromChecklist(c)
	for ci, cat := range fresh.Categories {
		if ci < len(catKeys) {
			cat.Key = catKeys[ci]
		}
		for ii, it := range cat.Items {
			if ci < len(keys) && ii < len(keys[ci]) {
				it.Key = keys[ci][ii]
			}
		}
	}
	*d = *fresh
}

package model

import "time"

// Checklist — чек-лист в том виде, в каком его отдаёт сервер.
type Checklist struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	PublicID    string     `json:"public_id"`
	IsPublic    bool       `json:"is_public"`
	OwnerID     *int64     `json:"owner_id,omitempty"`
	Categories  []Category `json:"categories"`
}

type Category struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

type Item struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Uploads []Upload `json:"uploads"`
}

// Upload — файл, прикреплённый к пункту. Появляется только из ответов сервера.
type Upload struct {
	ID         int64     `json:"id"`
	Filename   string    `json:"filename"`
	UploadedAt time.Time `json:"uploaded_at"`
	Path       string    `json:"path"`
}

// PendingDeletion — чек-лист без категорий показывается с пометкой об удалении.
func (c *Checklist) PendingDeletion() bool { return len(c.Categories) == 0 }

// FindUpload ищет загрузку по id во всём дереве.
func (c *Checklist) FindUpload(id int64) (*Upload, bool) {
	for ci := range c.Categories {
		for ii := range c.Categories[ci].Items {
			for ui := range c.Categories[ci].Items[ii].Uploads {
				if u := &c.Categories[ci].Items[ii].Uploads[ui]; u.ID == id {
					return u, true
				}
			}
		}
	}
	return nil, false
}

// Clone возвращает глубокую копию.
func (c *Checklist) Clone() *Checklist {
	cp := *c
	if c.OwnerID != nil {
		o := *c.OwnerID
		cp.OwnerID = &o
	}
	cp.Categories = make([]Category, len(c.Categories))
	for ci, cat := range c.Categories {
		cc := Category{ID: cat.ID, Name: cat.Name, Items: make([]Item, len(cat.Items))}
		for ii, it := range cat.Items {
			cc.Items[ii] = Item{ID: it.ID, Name: it.Name, Uploads: append([]Upload(nil), it.Uploads...)}
		}
		cp.Categories[ci] = cc
	}
	return &cp
}

package handlers

import (
	"Checklister/internal/model"
	"Checklister/internal/service"
	"time"
)

// ChecklistRequest — тело POST /checklists и PUT /checklists/{id}.
type ChecklistRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	IsPublic    bool              `json:"is_public"`
	OwnerID     *int64            `json:"owner_id,omitempty"`
	Categories  []CategoryRequest `json:"categories"`
}

type CategoryRequest struct {
	ID    int64         `json:"id,omitempty"`
	Name  string        `json:"name"`
	Items []ItemRequest `json:"items"`
}

type ItemRequest struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
}

type ChecklistDTO struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	PublicID    string        `json:"public_id"`
	IsPublic    bool          `json:"is_public"`
	OwnerID     *int64        `json:"owner_id,omitempty"`
	Categories  []CategoryDTO `json:"categories"`
}

type CategoryDTO struct {
	ID    int64     `json:"id"`
	Name  string    `json:"name"`
	Items []ItemDTO `json:"items"`
}

type ItemDTO struct {
	ID      int64       `json:"id"`
	Name    string      `json:"name"`
	Uploads []UploadDTO `json:"uploads"`
}

type UploadDTO struct {
	ID         int64     `json:"id"`
	Filename   string    `json:"filename"`
	UploadedAt time.Time `json:"uploaded_at"`
	Path       string    `json:"path"`
}

type UserDTO struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	UsernameHash string `json:"username_hash"`
}

func (req ChecklistRequest) toInput() service.ChecklistInput {
	in := service.ChecklistInput{
		Title:       req.Title,
		Description: req.Description,
		IsPublic:    req.IsPublic,
		OwnerID:     req.OwnerID,
	}
	for _, cat := range req.Categories {
		ci := service.CategoryInput{ID: cat.ID, Name: cat.Name}
		for _, it := range cat.Items {
			ci.Items = append(ci.Items, service.ItemInput{ID: it.ID, Name: it.Name})
		}
		in.Categories = append(in.Categories, ci)
	}
	return in
}

func toChecklistDTO(c *model.Checklist) ChecklistDTO {
	dto := ChecklistDTO{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		PublicID:    c.PublicID,
		IsPublic:    c.IsPublic,
		OwnerID:     c.OwnerID,
		Categories:  make([]CategoryDTO, 0, len(c.Categories)),
	}
	for _, cat := range c.Categories {
		cd := CategoryDTO{ID: cat.ID, Name: cat.Name, Items: make([]ItemDTO, 0, len(cat.Items))}
		for _, it := range cat.Items {
			id := ItemDTO{ID: it.ID, Name: it.Name, Uploads: make([]UploadDTO, 0, len(it.Uploads))}
			for i := range it.Uploads {
				id.Uploads = append(id.Uploads, toUploadDTO(&it.Uploads[i]))
			}
			cd.Items = append(cd.Items, id)
		}
		dto.Categories = append(dto.Categories, cd)
	}
	return dto
}

func toUploadDTO(u *model.FileUpload) UploadDTO {
	return UploadDTO{ID: u.ID, Filename: u.Filename, UploadedAt: u.UploadedAt.UTC(), Path: u.Path}
}

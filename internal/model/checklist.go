package model

import "time"

// Checklist — серверная модель чек-листа.
type Checklist struct {
	ID          int64  `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	Description string

	// PublicID имеет смысл только при IsPublic=true.
	PublicID string `gorm:"not null;uniqueIndex"`
	IsPublic bool   `gorm:"not null;default:false"`

	OwnerID *int64 `gorm:"index"` // опциональная ссылка на users.id
	Owner   *User  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`

	Categories []Category `gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// Category существует только внутри Checklist.
type Category struct {
	ID          int64  `gorm:"primaryKey"`
	ChecklistID int64  `gorm:"not null;index"`
	Position    int    `gorm:"not null;default:0"`
	Name        string `gorm:"not null"`

	Items []Item `gorm:"constraint:OnDelete:CASCADE"`
}

// Item существует только внутри Category.
type Item struct {
	ID         int64  `gorm:"primaryKey"`
	CategoryID int64  `gorm:"not null;index"`
	Position   int    `gorm:"not null;default:0"`
	Name       string `gorm:"not null"`

	Uploads []FileUpload `gorm:"constraint:OnDelete:CASCADE"`
}

// FileUpload — файл, прикреплённый к Item.
type FileUpload struct {
	ID         int64     `gorm:"primaryKey"`
	ItemID     int64     `gorm:"not null;index"`
	Filename   string    `gorm:"not null"`
	Path       string    `gorm:"not null"`
	UploadedAt time.Time `gorm:"autoCreateTime"`
}

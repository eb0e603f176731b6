package model

// ChecklistInput — тело создания/обновления. ID опциональны и передаются только
// при редактировании, чтобы сервер сохранил существующие пункты вместе с загрузками.
type ChecklistInput struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Categories  []CategoryInput `json:"categories"`
	OwnerID     *int64          `json:"owner_id,omitempty"`
}

type CategoryInput struct {
	ID    int64       `json:"id,omitempty"`
	Name  string      `json:"name"`
	Items []ItemInput `json:"items"`
}

type ItemInput struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
}

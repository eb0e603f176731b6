package repo

import (
	"Checklister/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// хелпер для создания дерева чек-листа
func mkChecklist(title, publicID string, cats ...model.Category) *model.Checklist {
	return &model.Checklist{Title: title, PublicID: publicID, Categories: cats}
}

func mkCategory(name string, items ...string) model.Category {
	c := model.Category{Name: name}
	for _, n := range items {
		c.Items = append(c.Items, model.Item{Name: n})
	}
	return c
}

func TestChecklistRepository_CreateAndGetKeepsOrder(t *testing.T) {
	db := newTestDB(t)
	r := NewChecklistRepository(db)
	ctx := context.Background()

	c := mkChecklist("Move-out", "p1",
		mkCategory("Kitchen", "Clean oven", "Defrost fridge"),
		mkCategory("Bathroom", "Scrub tiles"),
	)
	require.NoError(t, r.Create(ctx, c))
	assert.NotZero(t, c.ID)
	assert.NotZero(t, c.Categories[0].ID)
	assert.NotZero(t, c.Categories[0].Items[1].ID)

	got, err := r.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, got.Categories, 2)
	assert.Equal(t, "Kitchen", got.Categories[0].Name)
	assert.Equal(t, "Bathroom", got.Categories[1].Name)
	require.Len(t, got.Categories[0].Items, 2)
	assert.Equal(t, "Clean oven", got.Categories[0].Items[0].Name)
	assert.Equal(t, "Defrost fridge", got.Categories[0].Items[1].Name)
	assert.Equal(t, c.Categories[0].Items[1].ID, got.Categories[0].Items[1].ID)

	byPublic, err := r.GetByPublicID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, c.ID, byPublic.ID)

	_, err = r.GetByID(ctx, 9999)
	assert.Equal(t, gorm.ErrRecordNotFound, err)
}

func TestChecklistRepository_List(t *testing.T) {
	db := newTestDB(t)
	r := NewChecklistRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, mkChecklist("A", "pa")))
	require.NoError(t, r.Create(ctx, mkChecklist("B", "pb", mkCategory("C1", "I1"))))

	list, err := r.List(ctx)
	require.NoError(t, err)
	if assert.Len(t, list, 2) {
		assert.Equal(t, "A", list[0].Title)
		assert.Equal(t, "B", list[1].Title)
		assert.Len(t, list[1].Categories, 1)
		assert.Len(t, list[1].Categories[0].Items, 1)
	}
}

func TestChecklistRepository_ReplaceKeepsUploadsOfReusedItems(t *testing.T) {
	db := newTestDB(t)
	r := NewChecklistRepository(db)
	ur := NewUploadRepository(db)
	ctx := context.Background()

	c := mkChecklist("Trip", "pt", mkCategory("Docs", "Passport", "Visa"), mkCategory("Gear", "Tent"))
	require.NoError(t, r.Create(ctx, c))
	passport := c.Categories[0].Items[0].ID
	visa := c.Categories[0].Items[1].ID
	require.NoError(t, ur.Create(ctx, &model.FileUpload{ItemID: passport, Filename: "p.pdf", Path: "/tmp/p.pdf"}))
	require.NoError(t, ur.Create(ctx, &model.FileUpload{ItemID: visa, Filename: "v.pdf", Path: "/tmp/v.pdf"}))

	// Passport сохраняем по id, Visa убираем, Gear заменяем новой категорией
	upd := &model.Checklist{
		ID:          c.ID,
		Title:       "Trip 2",
		Description: "updated",
		Categories: []model.Category{
			{ID: c.Categories[0].ID, Name: "Documents", Items: []model.Item{
				{ID: passport, Name: "Passport"},
				{Name: "Insurance"},
			}},
			mkCategory("Food", "Snacks"),
		},
	}
	dropped, err := r.Replace(ctx, upd)
	require.NoError(t, err)
	assert.Equal(t, []string{"/tmp/v.pdf"}, dropped)

	got, err := r.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Trip 2", got.Title)
	assert.Equal(t, "updated", got.Description)
	require.Len(t, got.Categories, 2)
	assert.Equal(t, "Documents", got.Categories[0].Name)
	assert.Equal(t, c.Categories[0].ID, got.Categories[0].ID)
	require.Len(t, got.Categories[0].Items, 2)
	assert.Equal(t, passport, got.Categories[0].Items[0].ID)
	require.Len(t, got.Categories[0].Items[0].Uploads, 1)
	assert.Equal(t, "p.pdf", got.Categories[0].Items[0].Uploads[0].Filename)
	assert.Equal(t, "Insurance", got.Categories[0].Items[1].Name)
	assert.Equal(t, "Food", got.Categories[1].Name)

	// Gear и Tent удалены
	var n int64
	db.Model(&model.Category{}).Where("name = ?", "Gear").Count(&n)
	assert.Zero(t, n)
	db.Model(&model.Item{}).Where("name = ?", "Visa").Count(&n)
	assert.Zero(t, n)

	// чужой id пункта не переиспользуется
	other := mkChecklist("Other", "po", mkCategory("X", "Y"))
	require.NoError(t, r.Create(ctx, other))
	foreign := &model.Checklist{ID: c.ID, Title: "Trip 3", Categories: []model.Category{
		{Name: "Z", Items: []model.Item{{ID: other.Categories[0].Items[0].ID, Name: "stolen"}}},
	}}
	_, err = r.Replace(ctx, foreign)
	require.NoError(t, err)
	otherGot, err := r.GetByID(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, "Y", otherGot.Categories[0].Items[0].Name)
}

func TestChecklistRepository_ReplaceMissing(t *testing.T) {
	r := NewChecklistRepository(newTestDB(t))
	_, err := r.Replace(context.Background(), &model.Checklist{ID: 42, Title: "x"})
	assert.Equal(t, gorm.ErrRecordNotFound, err)
}

func TestChecklistRepository_DeleteRemovesTree(t *testing.T) {
	db := newTestDB(t)
	r := NewChecklistRepository(db)
	ur := NewUploadRepository(db)
	ctx := context.Background()

	c := mkChecklist("Gone", "pg", mkCategory("C", "I"))
	require.NoError(t, r.Create(ctx, c))
	require.NoError(t, ur.Create(ctx, &model.FileUpload{ItemID: c.Categories[0].Items[0].ID, Filename: "f.txt", Path: "/tmp/f.txt"}))

	dropped, err := r.Delete(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"/tmp/f.txt"}, dropped)

	_, err = r.GetByID(ctx, c.ID)
	assert.Equal(t, gorm.ErrRecordNotFound, err)
	var n int64
	db.Model(&model.Item{}).Count(&n)
	assert.Zero(t, n)
	db.Model(&model.FileUpload{}).Count(&n)
	assert.Zero(t, n)

	_, err = r.Delete(ctx, c.ID)
	assert.Equal(t, gorm.ErrRecordNotFound, err)
}

func TestChecklistRepository_SetPublic(t *testing.T) {
	db := newTestDB(t)
	r := NewChecklistRepository(db)
	ctx := context.Background()

	c := mkChecklist("Pub", "old")
	require.NoError(t, r.Create(ctx, c))
	assert.False(t, c.IsPublic)

	require.NoError(t, r.SetPublic(ctx, c.ID, "new"))
	got, err := r.GetByPublicID(ctx, "new")
	require.NoError(t, err)
	assert.True(t, got.IsPublic)

	assert.Equal(t, gorm.ErrRecordNotFound, r.SetPublic(ctx, 777, "zzz"))
}

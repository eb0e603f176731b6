// Package views — экраны клиента: список чек-листов с действиями и публичный просмотр.
package views

import (
	"Checklister/internal/cli/builder"
	"Checklister/internal/cli/model"
	"Checklister/internal/cli/prompt"
	"Checklister/internal/cli/store"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/atotto/clipboard"
)

var (
	ErrNotInList     = errors.New("checklist not in list")
	ErrAlreadyPublic = errors.New("checklist is already public")
	ErrNotPublic     = errors.New("checklist is not public")
	ErrCancelled     = errors.New("cancelled")
)

// ListAPI — вызовы сервера, нужные списку.
type ListAPI interface {
	ListChecklists(ctx context.Context) ([]model.Checklist, error)
	DeleteChecklist(ctx context.Context, id int64) error
	CloneChecklist(ctx context.Context, id int64) (*model.Checklist, error)
	MakePublic(ctx context.Context, id int64) (string, error)
	PublicLink(publicID string) string
}

// Notifier — канал уведомлений (snackbar).
type Notifier interface {
	Show(msg string)
}

// ListView — список чек-листов. Коллекция живёт в ChecklistStore, открытый
// на просмотр чек-лист — в выборе стора.
type ListView struct {
	api    ListAPI
	store  *store.ChecklistStore
	notify Notifier

	// Copy кладёт текст в буфер обмена; подменяется в тестах.
	Copy func(text string) error

	mu      sync.Mutex
	loading bool
	err     string
}

func NewListView(api ListAPI, st *store.ChecklistStore, notify Notifier) *ListView {
	return &ListView{
		api:    api,
		store:  st,
		notify: notify,
		Copy:   clipboard.WriteAll,
	}
}

// Load перечитывает всю коллекцию. Ошибка сохраняется как строка и закрывает рендер списка.
func (v *ListView) Load(ctx context.Context) error {
	v.mu.Lock()
	v.loading = true
	v.mu.Unlock()

	list, err := v.api.ListChecklists(ctx)

	v.mu.Lock()
	v.loading = false
	if err != nil {
		v.err = err.Error()
		v.mu.Unlock()
		return err
	}
	v.err = ""
	v.mu.Unlock()
	v.store.Set(list)
	return nil
}

func (v *ListView) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

func (v *ListView) Err() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}

func (v *ListView) Items() []model.Checklist { return v.store.All() }

// Open вход в список с состоянием навигации: переданный чек-лист сразу открывается на просмотр без запроса.
func (v *ListView) Open(nav *model.Checklist) {
	if nav != nil {
		v.store.SetSelected(nav)
	}
}

// View открывает чек-лист из списка на просмотр.
func (v *ListView) View(id int64) (*model.Checklist, error) {
	c, ok := v.store.Get(id)
	if !ok {
		return nil, ErrNotInList
	}
	v.store.SetSelected(&c)
	return c.Clone(), nil
}

// Viewing чек-лист, открытый на просмотр.
func (v *ListView) Viewing() (*model.Checklist, bool) { return v.store.Selected() }

func (v *ListView) CloseView() { v.store.SetSelected(nil) }

// Edit передаёт чек-лист из списка в билдер без повторного запроса.
func (v *ListView) Edit(id int64) (*builder.Draft, error) {
	c, ok := v.store.Get(id)
	if !ok {
		return nil, ErrNotInList
	}
	return builder.FromChecklist(&c), nil
}

// MakePublic публикует приватный чек-лист, копирует ссылку и обновляет список.
func (v *ListView) MakePublic(ctx context.Context, id int64) (string, error) {
	c, ok := v.store.Get(id)
	if !ok {
		return "", ErrNotInList
	}
	if c.IsPublic {
		return "", ErrAlreadyPublic
	}
	link, err := v.api.MakePublic(ctx, id)
	if err != nil {
		v.show(err.Error())
		return "", err
	}
	v.copyLink(link)
	if err := v.Load(ctx); err != nil {
		v.show(err.Error())
	}
	return link, nil
}

// CopyPublicLink копирует ссылку уже опубликованного чек-листа.
func (v *ListView) CopyPublicLink(id int64) (string, error) {
	c, ok := v.store.Get(id)
	if !ok {
		return "", ErrNotInList
	}
	if !c.IsPublic || c.PublicID == "" {
		return "", ErrNotPublic
	}
	link := v.api.PublicLink(c.PublicID)
	v.copyLink(link)
	return link, nil
}

func (v *ListView) copyLink(link string) {
	if v.Copy == nil {
		v.show("Public link: " + link)
		return
	}
	if err := v.Copy(link); err != nil {
		v.show("Public link: " + link)
		return
	}
	v.show("Public link copied to clipboard!")
}

// Clone клонирует чек-лист на сервере и обновляет список.
func (v *ListView) Clone(ctx context.Context, id int64) (*model.Checklist, error) {
	cp, err := v.api.CloneChecklist(ctx, id)
	if err != nil {
		v.show(err.Error())
		return nil, err
	}
	v.show("Checklist cloned!")
	if err := v.Load(ctx); err != nil {
		v.show(err.Error())
	}
	return cp, nil
}

// Delete после подтверждения удаляет чек-лист и убирает из списка только его, без перечитывания.
func (v *ListView) Delete(ctx context.Context, confirm prompt.Confirmer, id int64) error {
	q := "Delete this checklist?"
	if c, ok := v.store.Get(id); ok {
		q = fmt.Sprintf("Delete checklist %q?", c.Title)
	}
	if confirm != nil && !confirm.Confirm(q) {
		return ErrCancelled
	}
	if err := v.api.DeleteChecklist(ctx, id); err != nil {
		v.show(err.Error())
		return err
	}
	v.store.Remove(id)
	v.show("Checklist deleted")
	return nil
}

func (v *ListView) show(msg string) {
	if v.notify != nil {
		v.notify.Show(msg)
	}
}

package views

import (
	"Checklister/internal/cli/api"
	"Checklister/internal/cli/model"
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"
)

var ErrNoPublicID = errors.New("no public id in reference")

const (
	MsgPublicNotFound = "Checklist not found"
	MsgBadPublicRef   = "Invalid public link"
)

// PublicAPI — чтение опубликованных чек-листов.
type PublicAPI interface {
	GetPublicChecklist(ctx context.Context, publicID string) (*model.Checklist, error)
	PublicUploadURL(uploadID int64) string
}

// PublicView — только чтение. Ошибки показываются в самом экране, а не через snackbar.
type PublicView struct {
	api PublicAPI

	mu        sync.Mutex
	checklist *model.Checklist
	err       string
}

func NewPublicView(api PublicAPI) *PublicView {
	return &PublicView{api: api}
}

// ParsePublicID достаёт public_id из голого id или вставленной ссылки:
// .../public/{id}, .../checklists/public/{id}, ?id= или ?public_id=.
func ParsePublicID(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", ErrNoPublicID
	}
	if !strings.ContainsAny(ref, "/?") {
		return ref, nil
	}
	u, err := url.Parse(ref)
	if err != nil {
		return "", ErrNoPublicID
	}
	q := u.Query()
	for _, k := range []string{"id", "public_id"} {
		if id := strings.TrimSpace(q.Get(k)); id != "" {
			return id, nil
		}
	}
	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := len(segs) - 2; i >= 0; i-- {
		if segs[i] == "public" && segs[i+1] != "" {
			return segs[i+1], nil
		}
	}
	return "", ErrNoPublicID
}

// Fetch загружает публичный чек-лист по id или ссылке.
func (v *PublicView) Fetch(ctx context.Context, ref string) (*model.Checklist, error) {
	id, err := ParsePublicID(ref)
	if err != nil {
		v.set(nil, MsgBadPublicRef)
		return nil, err
	}
	c, err := v.api.GetPublicChecklist(ctx, id)
	if err != nil {
		msg := err.Error()
		if api.IsNotFound(err) {
			msg = MsgPublicNotFound
		}
		v.set(nil, msg)
		return nil, err
	}
	v.set(c, "")
	return c, nil
}

func (v *PublicView) set(c *model.Checklist, msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.checklist = c
	v.err = msg
}

func (v *PublicView) Err() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}

func (v *PublicView) Checklist() (*model.Checklist, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.checklist, v.checklist != nil
}

// Render экран целиком: чек-лист либо строка ошибки.
func (v *PublicView) Render() string {
	v.mu.Lock()
	c, msg := v.checklist, v.err
	v.mu.Unlock()
	if msg != "" {
		return RenderError(msg)
	}
	if c == nil {
		return ""
	}
	return RenderPanel(c, v.api.PublicUploadURL)
}

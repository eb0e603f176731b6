package builder

import "strings"

const (
	MsgTitleRequired    = "Title is required"
	MsgCategoryRequired = "Category name is required"
	MsgItemRequired     = "All items must have a name"
)

// ValidationError ошибки формы: сообщение для заголовка и по сообщению на каждую
// категорию (пустая строка — категория в порядке). До сети не доходит.
type ValidationError struct {
	Title      string
	Categories []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if e.Title != "" {
		parts = append(parts, e.Title)
	}
	for _, m := range e.Categories {
		if m != "" {
			parts = append(parts, m)
			break
		}
	}
	return strings.Join(parts, "; ")
}

// Invalid индексы категорий с ошибками.
func (e *ValidationError) Invalid() []int {
	var idx []int
	for i, m := range e.Categories {
		if m != "" {
			idx = append(idx, i)
		}
	}
	return idx
}

// Validate возвращает nil, если черновик можно отправлять.
func (d *Draft) Validate() *ValidationError {
	e := &ValidationError{Categories: make([]string, len(d.Categories))}
	bad := false
	if strings.TrimSpace(d.Title) == "" {
		e.Title = MsgTitleRequired
		bad = true
	}
	for i, c := range d.Categories {
		if strings.TrimSpace(c.Name) == "" {
			e.Categories[i] = MsgCategoryRequired
			bad = true
			continue
		}
		for _, it := range c.Items {
			if strings.TrimSpace(it.Name) == "" {
				e.Categories[i] = MsgItemRequired
				bad = true
				break
			}
		}
	}
	if !bad {
		return nil
	}
	return e
}

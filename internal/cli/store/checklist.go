package store

import (
	"Checklister/internal/cli/model"
	"sync"
)

// ChecklistStore — кэш последней загруженной коллекции: целиком заменяется после каждого запроса списка.
type ChecklistStore struct {
	mu       sync.RWMutex
	items    []model.Checklist
	selected *model.Checklist
	subs     map[int]func([]model.Checklist)
	nextSub  int
}

func NewChecklistStore() *ChecklistStore {
	return &ChecklistStore{subs: make(map[int]func([]model.Checklist))}
}

// Set заменяет коллекцию целиком.
func (s *ChecklistStore) Set(list []model.Checklist) {
	s.mu.Lock()
	s.items = append([]model.Checklist(nil), list...)
	s.mu.Unlock()
	s.notify()
}

// All возвращает копию коллекции в порядке сервера.
func (s *ChecklistStore) All() []model.Checklist {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Checklist(nil), s.items...)
}

func (s *ChecklistStore) Get(id int64) (model.Checklist, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.items {
		if c.ID == id {
			return c, true
		}
	}
	return model.Checklist{}, false
}

// Remove удаляет ровно один чек-лист по id, не трогая остальные.
func (s *ChecklistStore) Remove(id int64) bool {
	s.mu.Lock()
	removed := false
	for i, c := range s.items {
		if c.ID == id {
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			removed = true
			break
		}
	}
	if removed && s.selected != nil && s.selected.ID == id {
		s.selected = nil
	}
	s.mu.Unlock()
	if removed {
		s.notify()
	}
	return removed
}

func (s *ChecklistStore) Selected() (*model.Checklist, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == nil {
		return nil, false
	}
	return s.selected.Clone(), true
}

// SetSelected выбирает чек-лист; nil сбрасывает выбор.
func (s *ChecklistStore) SetSelected(c *model.Checklist) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c == nil {
		s.selected = nil
		return
	}
	s.selected = c.Clone()
}

// Subscribe вызывает fn после каждого изменения коллекции. Возвращает функцию отписки.
func (s *ChecklistStore) Subscribe(fn func([]model.Checklist)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *ChecklistStore) notify() {
	s.mu.RLock()
	fns := make([]func([]model.Checklist), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	snapshot := append([]model.Checklist(nil), s.items...)
	s.mu.RUnlock()
	for _, fn := range fns {
		fn(snapshot)
	}
}

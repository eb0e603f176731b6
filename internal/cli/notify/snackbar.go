// Package notify — единственное всплывающее уведомление клиента (snackbar).
package notify

import (
	"sync"
	"time"
)

// DefaultTTL время жизни уведомления по умолчанию.
const DefaultTTL = 2500 * time.Millisecond

// Snackbar хранит не более одного сообщения. Новое сообщение заменяет старое
// и перезапускает таймер автоскрытия.
type Snackbar struct {
	mu    sync.Mutex
	ttl   time.Duration
	msg   string
	seq   uint64
	timer *time.Timer

	// OnChange вызывается после показа и после скрытия (с пустой строкой).
	OnChange func(msg string)
}

func NewSnackbar(ttl time.Duration) *Snackbar {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Snackbar{ttl: ttl}
}

// Show показывает сообщение; оно скроется само через TTL.
func (s *Snackbar) Show(msg string) {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.msg = msg
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.ttl, func() { s.expire(seq) })
	cb := s.OnChange
	s.mu.Unlock()
	if cb != nil {
		cb(msg)
	}
}

// Message текущее сообщение или "".
func (s *Snackbar) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.msg
}

// Close скрывает сообщение досрочно.
func (s *Snackbar) Close() {
	s.mu.Lock()
	s.seq++
	s.clear()
	cb := s.OnChange
	s.mu.Unlock()
	if cb != nil {
		cb("")
	}
}

func (s *Snackbar) expire(seq uint64) {
	s.mu.Lock()
	if seq != s.seq {
		// сообщение уже заменено или закрыто
		s.mu.Unlock()
		return
	}
	s.clear()
	cb := s.OnChange
	s.mu.Unlock()
	if cb != nil {
		cb("")
	}
}

func (s *Snackbar) clear() {
	s.msg = ""
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

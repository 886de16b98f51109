// Package session хранит состояние сессии клиента: email вошедшего пользователя.
package session

import "sync"

// Store - единственное поле сессии. Запись без валидации, выигрывает последняя.
type Store struct {
	mu        sync.RWMutex
	email     string
	set       bool
	listeners []func(email string)
}

func NewStore() *Store {
	return &Store{}
}

// SetEmail заменяет email в сессии
func (s *Store) SetEmail(email string) {
	s.mu.Lock()
	s.email = email
	s.set = true
	listeners := append([]func(string){}, s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(email)
	}
}

// Email возвращает email из сессии; false, если вход не выполнялся
func (s *Store) Email() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.email, s.set
}

// OnChange регистрирует обработчик, вызываемый после каждого SetEmail
func (s *Store) OnChange(fn func(email string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

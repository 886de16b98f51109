// Package backend - REST бэкенд в памяти для тестов: /users и /notes
// с теми же маршрутами, что и у внешнего сервиса.
package backend

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"sticky/internal/domain/note"
	"sticky/internal/domain/user"
	"sticky/internal/model"
)

// storedUser хранит числовой ID, как его выдает настоящий бэкенд
type storedUser struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

func (u storedUser) toUser() user.User {
	return user.User{
		ID:        model.ID(strconv.Itoa(u.ID)),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Password:  u.Password,
	}
}

type failure struct {
	status  int
	message string
}

type Server struct {
	srv    *httptest.Server
	router chi.Router

	mu       sync.Mutex
	users    []storedUser
	notes    []note.Note
	nextID   int
	calls    map[string]int
	failures map[string]failure
	latency  time.Duration
}

// New запускает сервер и останавливает его по завершении теста
func New(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		nextID:   1,
		calls:    make(map[string]int),
		failures: make(map[string]failure),
	}
	s.router = s.routes(testLogger(t))
	s.srv = httptest.NewServer(s.router)
	t.Cleanup(s.srv.Close)

	return s
}

// URL - базовый адрес сервера
func (s *Server) URL() string {
	return s.srv.URL
}

// Close останавливает сервер раньше окончания теста (проверка недоступности)
func (s *Server) Close() {
	s.srv.Close()
}

func (s *Server) routes(log *slog.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(requestLogger(log))

	s.handle(r, http.MethodGet, "/users", s.listUsers)
	s.handle(r, http.MethodGet, "/users/{ref}", s.getUser)
	s.handle(r, http.MethodPost, "/users", s.createUser)
	s.handle(r, http.MethodPut, "/users/{ref}", s.updateUser)
	s.handle(r, http.MethodDelete, "/users/{ref}", s.deleteUser)

	s.handle(r, http.MethodGet, "/notes", s.listNotes)
	s.handle(r, http.MethodGet, "/notes/{id}", s.getNote)
	s.handle(r, http.MethodPost, "/notes", s.createNote)
	s.handle(r, http.MethodPut, "/notes/{id}", s.updateNote)
	s.handle(r, http.MethodDelete, "/notes/{id}", s.deleteNote)

	return r
}

// handle регистрирует обработчик со счетчиком вызовов и подменой ответа ошибкой
func (s *Server) handle(r chi.Router, method, pattern string, h http.HandlerFunc) {
	route := method + " " + pattern
	r.Method(method, pattern, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		s.mu.Lock()
		s.calls[route]++
		f, failing := s.failures[route]
		latency := s.latency
		s.mu.Unlock()

		if latency > 0 {
			time.Sleep(latency)
		}
		if failing {
			writeError(w, f.status, f.message)
			return
		}
		h(w, req)
	}))
}

// Calls - сколько раз вызван маршрут, например Calls("GET", "/notes")
func (s *Server) Calls(method, pattern string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method+" "+pattern]
}

// Fail заставляет маршрут отвечать ошибкой до вызова Recover
func (s *Server) Fail(method, pattern string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+pattern] = failure{status: status, message: message}
}

func (s *Server) Recover(method, pattern string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, method+" "+pattern)
}

// SetLatency задерживает каждый ответ
func (s *Server) SetLatency(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latency = d
}

// AddUser добавляет пользователя и возвращает выданный ID
func (s *Server) AddUser(u user.User) model.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertUserLocked(u).toUser().ID
}

// AddNotes добавляет заметки как есть
func (s *Server) AddNotes(notes ...note.Note) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = append(s.notes, notes...)
}

// Users - снимок всех пользователей
func (s *Server) Users() []user.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]user.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u.toUser())
	}
	return users
}

// Notes - снимок всех заметок
func (s *Server) Notes() []note.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]note.Note(nil), s.notes...)
}

func (s *Server) insertUserLocked(u user.User) storedUser {
	id, err := strconv.Atoi(u.ID.String())
	if err != nil || id <= 0 {
		id = s.nextID
	}
	if id >= s.nextID {
		s.nextID = id + 1
	}

	stored := storedUser{
		ID:        id,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Password:  u.Password,
	}
	s.users = append(s.users, stored)
	return stored
}

// findUserLocked ищет по ID, затем по email
func (s *Server) findUserLocked(ref string) int {
	if id, err := strconv.Atoi(ref); err == nil {
		for i, u := range s.users {
			if u.ID == id {
				return i
			}
		}
	}
	for i, u := range s.users {
		if u.Email == ref {
			return i
		}
	}
	return -1
}

func (s *Server) findNoteLocked(id string) int {
	for i, n := range s.notes {
		if n.ID.String() == id {
			return i
		}
	}
	return -1
}

func (s *Server) listUsers(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	users := append([]storedUser{}, s.users...)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, users)
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findUserLocked(chi.URLParam(r, "ref"))
	if i < 0 {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, s.users[i])
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var u user.User
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	s.mu.Lock()
	stored := s.insertUserLocked(u)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, stored)
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	var req user.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findUserLocked(chi.URLParam(r, "ref"))
	if i < 0 {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	u := &s.users[i]
	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.Password != nil {
		u.Password = *req.Password
	}

	writeJSON(w, http.StatusOK, *u)
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findUserLocked(chi.URLParam(r, "ref"))
	if i < 0 {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	s.users = append(s.users[:i], s.users[i+1:]...)

	writeJSON(w, http.StatusOK, struct{}{})
}

func (s *Server) listNotes(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	notes := append([]note.Note{}, s.notes...)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, notes)
}

func (s *Server) getNote(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findNoteLocked(chi.URLParam(r, "id"))
	if i < 0 {
		writeError(w, http.StatusNotFound, "note not found")
		return
	}
	writeJSON(w, http.StatusOK, s.notes[i])
}

func (s *Server) createNote(w http.ResponseWriter, r *http.Request) {
	var n note.Note
	if err := json.NewDecoder(r.Body).Decode(&n); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if n.ID.IsZero() {
		n.ID = model.ID(uuid.NewString())
	}

	s.mu.Lock()
	s.notes = append(s.notes, n)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, n)
}

func (s *Server) updateNote(w http.ResponseWriter, r *http.Request) {
	var req note.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findNoteLocked(chi.URLParam(r, "id"))
	if i < 0 {
		writeError(w, http.StatusNotFound, "note not found")
		return
	}

	s.notes[i].Email = req.Email
	s.notes[i].Heading = req.Heading
	s.notes[i].Description = req.Description

	writeJSON(w, http.StatusOK, s.notes[i])
}

func (s *Server) deleteNote(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findNoteLocked(chi.URLParam(r, "id"))
	if i < 0 {
		writeError(w, http.StatusNotFound, "note not found")
		return
	}
	s.notes = append(s.notes[:i], s.notes[i+1:]...)

	writeJSON(w, http.StatusOK, struct{}{})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

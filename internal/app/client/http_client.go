package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/exp/slog"
	"golang.org/x/time/rate"

	"sticky/internal/app/client/config"
	"sticky/internal/domain/note"
	"sticky/internal/domain/user"
	"sticky/internal/model"
)

const userAgent = "Sticky-Client/1.0"

// ErrUnavailable - бэкенд недоступен (сетевая ошибка, таймаут)
var ErrUnavailable = errors.New("сервер недоступен")

// APIError - ответ бэкенда со статусом вне диапазона 2xx
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ошибка сервера (%d): %s", e.StatusCode, e.Message)
}

// NotFound сообщает, что ресурс не найден
func (e *APIError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// RequestObserver получает результат каждого HTTP запроса.
// status равен 0, если ответ не получен.
type RequestObserver interface {
	ObserveRequest(method, route string, status int, duration time.Duration)
}

type nopRequestObserver struct{}

func (nopRequestObserver) ObserveRequest(string, string, int, time.Duration) {}

type HTTPClient struct {
	client    *http.Client
	log       *slog.Logger
	baseURL   string
	userAgent string
	limiter   *rate.Limiter
	observer  RequestObserver
}

type HTTPOption func(*HTTPClient)

// WithRequestObserver подключает сбор метрик запросов
func WithRequestObserver(o RequestObserver) HTTPOption {
	return func(h *HTTPClient) {
		if o != nil {
			h.observer = o
		}
	}
}

// WithTransport подменяет транспорт (используется в тестах)
func WithTransport(rt http.RoundTripper) HTTPOption {
	return func(h *HTTPClient) {
		h.client.Transport = rt
	}
}

func NewHTTPClient(cfg *config.Config, log *slog.Logger, opts ...HTTPOption) (*HTTPClient, error) {
	base, err := url.Parse(cfg.APIBaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("некорректный адрес API %q", cfg.APIBaseURL)
	}

	client := &http.Client{
		Timeout: cfg.RequestTimeoutDuration(),
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 10,
		},
	}

	h := &HTTPClient{
		client:    client,
		log:       log.With(slog.String("component", "http_client")),
		baseURL:   strings.TrimRight(cfg.APIBaseURL, "/"),
		userAgent: userAgent,
		observer:  nopRequestObserver{},
	}

	if cfg.RequestsPerSecond > 0 {
		burst := int(cfg.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		h.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	for _, opt := range opts {
		opt(h)
	}

	return h, nil
}

// BaseURL возвращает адрес API без завершающего слэша
func (h *HTTPClient) BaseURL() string {
	return h.baseURL
}

// HealthCheck проверяет доступность бэкенда
func (h *HTTPClient) HealthCheck(ctx context.Context) error {
	resp, err := h.doRequest(ctx, http.MethodGet, "/users", "/users", nil)
	if err != nil {
		return err
	}

	return h.parseResponse(resp, nil)
}

// ListUsers получает всех пользователей
func (h *HTTPClient) ListUsers(ctx context.Context) ([]user.User, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, "/users", "/users", nil)
	if err != nil {
		return nil, err
	}

	var users []user.User
	if err := h.parseResponse(resp, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []user.User{}
	}

	return users, nil
}

// GetUser получает пользователя по ID
func (h *HTTPClient) GetUser(ctx context.Context, id model.ID) (user.User, error) {
	return h.getUser(ctx, id.String())
}

// GetUserByEmail получает пользователя по email (GET /users/{email})
func (h *HTTPClient) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	return h.getUser(ctx, email)
}

func (h *HTTPClient) getUser(ctx context.Context, ref string) (user.User, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, "/users/"+url.PathEscape(ref), "/users/{id}", nil)
	if err != nil {
		return user.User{}, err
	}

	var u user.User
	if err := h.parseResponse(resp, &u); err != nil {
		return user.User{}, err
	}

	return u, nil
}

// CreateUser создает пользователя
func (h *HTTPClient) CreateUser(ctx context.Context, u user.User) (user.User, error) {
	resp, err := h.doRequest(ctx, http.MethodPost, "/users", "/users", u)
	if err != nil {
		return user.User{}, err
	}

	var created user.User
	if err := h.parseResponse(resp, &created); err != nil {
		return user.User{}, err
	}

	return created, nil
}

// UpdateUser отправляет только заданные поля пользователя
func (h *HTTPClient) UpdateUser(ctx context.Context, req user.UpdateRequest) (user.User, error) {
	if req.ID.IsZero() {
		return user.User{}, fmt.Errorf("не указан ID пользователя: %w", user.ErrInvalidInput)
	}

	resp, err := h.doRequest(ctx, http.MethodPut, "/users/"+url.PathEscape(req.ID.String()), "/users/{id}", req)
	if err != nil {
		return user.User{}, err
	}

	var updated user.User
	if err := h.parseResponse(resp, &updated); err != nil {
		return user.User{}, err
	}

	return updated, nil
}

// DeleteUser удаляет пользователя
func (h *HTTPClient) DeleteUser(ctx context.Context, id model.ID) error {
	resp, err := h.doRequest(ctx, http.MethodDelete, "/users/"+url.PathEscape(id.String()), "/users/{id}", nil)
	if err != nil {
		return err
	}

	return h.parseResponse(resp, nil)
}

// ListNotes получает все заметки всех пользователей
func (h *HTTPClient) ListNotes(ctx context.Context) ([]note.Note, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, "/notes", "/notes", nil)
	if err != nil {
		return nil, err
	}

	var notes []note.Note
	if err := h.parseResponse(resp, &notes); err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []note.Note{}
	}

	return notes, nil
}

// GetNote получает заметку по ID
func (h *HTTPClient) GetNote(ctx context.Context, id model.ID) (note.Note, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, "/notes/"+url.PathEscape(id.String()), "/notes/{id}", nil)
	if err != nil {
		return note.Note{}, err
	}

	var n note.Note
	if err := h.parseResponse(resp, &n); err != nil {
		return note.Note{}, err
	}

	return n, nil
}

// CreateNote создает заметку с ID, выданным клиентом
func (h *HTTPClient) CreateNote(ctx context.Context, n note.Note) (note.Note, error) {
	resp, err := h.doRequest(ctx, http.MethodPost, "/notes", "/notes", n)
	if err != nil {
		return note.Note{}, err
	}

	var created note.Note
	if err := h.parseResponse(resp, &created); err != nil {
		return note.Note{}, err
	}

	return created, nil
}

// UpdateNote полностью заменяет email, заголовок и описание заметки
func (h *HTTPClient) UpdateNote(ctx context.Context, req note.UpdateRequest) (note.Note, error) {
	if req.ID.IsZero() {
		return note.Note{}, fmt.Errorf("не указан ID заметки: %w", note.ErrNotFound)
	}

	resp, err := h.doRequest(ctx, http.MethodPut, "/notes/"+url.PathEscape(req.ID.String()), "/notes/{id}", req)
	if err != nil {
		return note.Note{}, err
	}

	var updated note.Note
	if err := h.parseResponse(resp, &updated); err != nil {
		return note.Note{}, err
	}

	return updated, nil
}

// DeleteNote удаляет заметку
func (h *HTTPClient) DeleteNote(ctx context.Context, id model.ID) error {
	resp, err := h.doRequest(ctx, http.MethodDelete, "/notes/"+url.PathEscape(id.String()), "/notes/{id}", nil)
	if err != nil {
		return err
	}

	return h.parseResponse(resp, nil)
}

// doRequest выполняет запрос. route - шаблон пути для метрик.
func (h *HTTPClient) doRequest(ctx context.Context, method, path, route string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("ошибка маршалинга тела запроса: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	if h.limiter != nil {
		if err := h.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", h.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	h.log.Debug("Отправка запроса",
		"method", method,
		"url", req.URL.String(),
	)

	start := time.Now()
	resp, err := h.client.Do(req)
	if err != nil {
		h.observer.ObserveRequest(method, route, 0, time.Since(start))
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	h.observer.ObserveRequest(method, route, resp.StatusCode, time.Since(start))

	return resp, nil
}

func (h *HTTPClient) parseResponse(resp *http.Response, result interface{}) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	h.log.Debug("Получен ответ",
		"status", resp.StatusCode,
		"bytes", len(body),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp.StatusCode, body)
	}

	if result != nil && len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("ошибка парсинга ответа: %w", err)
		}
	}

	return nil
}

func newAPIError(status int, body []byte) *APIError {
	var errResp struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}

	msg := http.StatusText(status)
	if err := json.Unmarshal(body, &errResp); err == nil {
		switch {
		case errResp.Error != "":
			msg = errResp.Error
		case errResp.Message != "":
			msg = errResp.Message
		}
	}
	if msg == "" {
		msg = fmt.Sprintf("статус %d", status)
	}

	return &APIError{StatusCode: status, Message: msg}
}

// UserMessage - сообщение бэкенда без кода статуса
func (e *APIError) UserMessage() string {
	return e.Message
}

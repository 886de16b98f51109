package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	gosync "sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/exp/slog"

	"sticky/internal/app/client/config"
	"sticky/internal/app/client/resource"
	"sticky/internal/app/client/screen"
	"sticky/internal/app/client/session"
	"sticky/internal/cache"
	"sticky/internal/metrics"
)

// App владеет кэшем, сессией и хранилищем. Экраны получают их через Deps.
type App struct {
	config     *config.Config
	log        *slog.Logger
	httpClient *HTTPClient
	cache      *cache.Cache
	users      *resource.Users
	notes      *resource.Notes
	session    *session.Store
	storage    Storage
	registry   *prometheus.Registry
	metrics    *metrics.Collector

	wg     gosync.WaitGroup
	cancel context.CancelFunc
	mu     gosync.Mutex
}

type Option func(*options)

type options struct {
	storage    Storage
	httpOpts   []HTTPOption
	cacheClock func() time.Time
}

// WithStorage подменяет локальное хранилище состояния
func WithStorage(s Storage) Option {
	return func(o *options) {
		o.storage = s
	}
}

// WithHTTPOptions передает опции HTTP клиенту
func WithHTTPOptions(opts ...HTTPOption) Option {
	return func(o *options) {
		o.httpOpts = append(o.httpOpts, opts...)
	}
}

// WithCacheClock подменяет часы кэша (для тестов)
func WithCacheClock(now func() time.Time) Option {
	return func(o *options) {
		o.cacheClock = now
	}
}

func New(cfg *config.Config, log *slog.Logger, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// Инициализируем HTTP клиент
	httpOpts := append([]HTTPOption{WithRequestObserver(collector)}, o.httpOpts...)
	httpCl, err := NewHTTPClient(cfg, log, httpOpts...)
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации HTTP клиента: %w", err)
	}

	// Инициализируем локальное хранилище (используем SQLite)
	storage := o.storage
	if storage == nil {
		sqliteStorage, err := NewSQLiteStorage(cfg.StatePath)
		if err != nil {
			log.Warn("Не удалось инициализировать SQLite, используем память", "error", err)
			storage = NewMemoryStorage()
		} else {
			storage = sqliteStorage
		}
	}

	c := cache.New(
		cache.WithLogger(log),
		cache.WithObserver(collector),
		cache.WithKeepUnused(cfg.KeepUnusedDuration()),
		cache.WithClock(o.cacheClock),
	)

	app := &App{
		config:     cfg,
		log:        log,
		httpClient: httpCl,
		cache:      c,
		users:      resource.NewUsers(c, httpCl),
		notes:      resource.NewNotes(c, httpCl),
		session:    session.NewStore(),
		storage:    storage,
		registry:   registry,
		metrics:    collector,
	}

	app.restoreSession()
	app.session.OnChange(app.persistSession)

	return app, nil
}

// restoreSession поднимает email из хранилища, если он сохранен для того же API
func (a *App) restoreSession() {
	state, ok, err := a.storage.LoadSession()
	if err != nil {
		a.log.Warn("Не удалось загрузить сессию", "error", err)
		return
	}
	if !ok || state.Email == "" {
		return
	}
	if state.APIBaseURL != "" && state.APIBaseURL != a.config.APIBaseURL {
		a.log.Debug("Сохраненная сессия относится к другому API", "api", state.APIBaseURL)
		return
	}

	a.session.SetEmail(state.Email)
	a.log.Debug("Сессия загружена", "email", state.Email)
}

func (a *App) persistSession(email string) {
	err := a.storage.SaveSession(SessionState{
		Email:      email,
		APIBaseURL: a.config.APIBaseURL,
	})
	if err != nil {
		a.log.Warn("Не удалось сохранить сессию", "error", err)
	}
}

func (a *App) Config() *config.Config {
	return a.config
}

func (a *App) Logger() *slog.Logger {
	return a.log
}

func (a *App) Session() *session.Store {
	return a.session
}

func (a *App) Users() *resource.Users {
	return a.users
}

func (a *App) Notes() *resource.Notes {
	return a.notes
}

// Email возвращает email текущей сессии
func (a *App) Email() (string, bool) {
	return a.session.Email()
}

// ScreenDeps собирает зависимости экранов с заданными навигатором и уведомлениями
func (a *App) ScreenDeps(nav screen.Navigator, notifier screen.Notifier) screen.Deps {
	return screen.Deps{
		Users:     a.users,
		Notes:     a.notes,
		Session:   a.session,
		Navigator: nav,
		Notifier:  notifier,
		Log:       a.log,
	}
}

// CheckConnection проверяет доступность бэкенда
func (a *App) CheckConnection(ctx context.Context) error {
	if err := a.httpClient.HealthCheck(ctx); err != nil {
		return fmt.Errorf("бэкенд %s недоступен: %w", a.httpClient.BaseURL(), err)
	}
	return nil
}

// MetricsHandler - обработчик /metrics
func (a *App) MetricsHandler() http.Handler {
	return metrics.SetupMetricsRoute(a.registry)
}

// StartMetrics запускает HTTP сервер метрик. Сервер останавливается в Shutdown.
func (a *App) StartMetrics(ctx context.Context, addr string) error {
	if addr == "" {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	a.mu.Lock()
	a.cancel = cancel
	a.mu.Unlock()

	srv := &http.Server{
		Addr:              addr,
		Handler:           a.MetricsHandler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.log.Error("Ошибка остановки сервера метрик", "error", err)
		}
	}()

	// ошибка привязки к адресу приходит сразу
	select {
	case err := <-errCh:
		cancel()
		return fmt.Errorf("ошибка запуска сервера метрик: %w", err)
	case <-time.After(100 * time.Millisecond):
	}

	a.log.Info("Сервер метрик запущен", "addr", addr)
	return nil
}

func (a *App) Shutdown() {
	a.log.Debug("Завершение работы клиента...")

	a.mu.Lock()
	cancel := a.cancel
	a.mu.Unlock()
	if cancel != nil {
		cancel()
	}

	a.wg.Wait()

	if err := a.storage.Close(); err != nil {
		a.log.Warn("Ошибка закрытия хранилища", "error", err)
	}
	a.log.Debug("Клиент завершил работу")
}

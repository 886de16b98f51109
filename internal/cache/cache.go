// Package cache реализует кэш запросов к удаленному API: записи по ключу,
// дедупликацию одновременных запросов, инвалидацию по тегам и подписки.
package cache

import (
	"context"
	"io"
	"sync"
	"time"

	"golang.org/x/exp/slog"
)

// DefaultKeepUnused - сколько живут данные записи без подписчиков
const DefaultKeepUnused = 60 * time.Second

// Observer получает события кэша, используется для метрик
type Observer interface {
	CacheHit(endpoint string)
	CacheMiss(endpoint string)
	Fetched(endpoint string, duration time.Duration, err error)
	Mutated(endpoint string, err error)
	Invalidated(tag string, entries int)
}

type nopObserver struct{}

func (nopObserver) CacheHit(string)                      {}
func (nopObserver) CacheMiss(string)                     {}
func (nopObserver) Fetched(string, time.Duration, error) {}
func (nopObserver) Mutated(string, error)                {}
func (nopObserver) Invalidated(string, int)              {}

// invalidator - запрос, который можно пометить устаревшим по тегу
type invalidator interface {
	invalidate(ctx context.Context) int
}

// Cache хранит индекс тегов и общие настройки для всех запросов и мутаций
type Cache struct {
	log        *slog.Logger
	observer   Observer
	now        func() time.Time
	keepUnused time.Duration

	mu   sync.RWMutex
	tags map[string][]invalidator
}

type Option func(*Cache)

func WithLogger(log *slog.Logger) Option {
	return func(c *Cache) {
		if log != nil {
			c.log = log.With(slog.String("component", "cache"))
		}
	}
}

func WithObserver(o Observer) Option {
	return func(c *Cache) {
		if o != nil {
			c.observer = o
		}
	}
}

// WithClock подменяет источник времени (для тестов)
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// WithKeepUnused задает время жизни данных без подписчиков. 0 - без ограничения.
func WithKeepUnused(d time.Duration) Option {
	return func(c *Cache) {
		c.keepUnused = d
	}
}

func New(opts ...Option) *Cache {
	c := &Cache{
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		observer:   nopObserver{},
		now:        time.Now,
		keepUnused: DefaultKeepUnused,
		tags:       make(map[string][]invalidator),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Cache) provide(q invalidator, tags []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, tag := range tags {
		c.tags[tag] = append(c.tags[tag], q)
	}
}

// Invalidate помечает устаревшими все записи запросов, предоставляющих теги,
// и перезагружает те, на которые есть подписчики. Возвращает управление
// после завершения перезагрузки.
func (c *Cache) Invalidate(ctx context.Context, tags ...string) {
	c.mu.RLock()
	type target struct {
		tag string
		q   invalidator
	}
	var targets []target
	seen := make(map[invalidator]struct{})
	for _, tag := range tags {
		for _, q := range c.tags[tag] {
			if _, ok := seen[q]; ok {
				continue
			}
			seen[q] = struct{}{}
			targets = append(targets, target{tag: tag, q: q})
		}
	}
	c.mu.RUnlock()

	for _, t := range targets {
		n := t.q.invalidate(ctx)
		c.observer.Invalidated(t.tag, n)
		c.log.Debug("Инвалидация тега", slog.String("tag", t.tag), slog.Int("entries", n))
	}
}

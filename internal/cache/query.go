package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/exp/slog"
	"golang.org/x/sync/singleflight"
)

// Fetcher выполняет чтение с удаленного API
type Fetcher[K comparable, V any] func(ctx context.Context, key K) (V, error)

// QueryOptions настраивает эндпоинт чтения
type QueryOptions[K comparable] struct {
	// Key сериализует аргументы в ключ записи. По умолчанию fmt.Sprint.
	Key func(K) string
	// Provides - теги, при инвалидации которых записи запроса устаревают
	Provides []string
}

// Query - кэшируемый эндпоинт чтения
type Query[K comparable, V any] struct {
	cache    *Cache
	endpoint string
	fetch    Fetcher[K, V]
	keyOf    func(K) string
	log      *slog.Logger

	// Ключ присутствует в group ровно пока запись в статусе loading:
	// Forget вызывается под mu вместе с записью результата.
	group singleflight.Group

	mu      sync.Mutex
	entries map[string]*queryEntry[K, V]
}

type subscriber[V any] struct {
	id int
	fn func(Entry[V])
}

type delivery[V any] struct {
	entry     Entry[V]
	listeners []func(Entry[V])
}

type queryEntry[K comparable, V any] struct {
	arg        K
	state      Entry[V]
	gen        uint64
	subs       []subscriber[V]
	nextSub    int
	releasedAt time.Time
	touchedAt  time.Time

	// переходы доставляются подписчикам строго в порядке их записи
	pending    []delivery[V]
	delivering bool
}

func (e *queryEntry[K, V]) listeners() []func(Entry[V]) {
	fns := make([]func(Entry[V]), 0, len(e.subs))
	for _, s := range e.subs {
		fns = append(fns, s.fn)
	}
	return fns
}

// NewQuery регистрирует эндпоинт чтения в кэше
func NewQuery[K comparable, V any](c *Cache, endpoint string, fetch Fetcher[K, V], opts QueryOptions[K]) *Query[K, V] {
	keyOf := opts.Key
	if keyOf == nil {
		keyOf = func(k K) string { return fmt.Sprint(k) }
	}

	q := &Query[K, V]{
		cache:    c,
		endpoint: endpoint,
		fetch:    fetch,
		keyOf:    keyOf,
		log:      c.log.With(slog.String("endpoint", endpoint)),
		entries:  make(map[string]*queryEntry[K, V]),
	}

	if len(opts.Provides) > 0 {
		c.provide(q, opts.Provides)
	}

	return q
}

// Query возвращает актуальную запись из кэша или загружает её.
// Повторный вызов с тем же ключом во время загрузки не порождает второй запрос.
func (q *Query[K, V]) Query(ctx context.Context, key K) Entry[V] {
	k := q.keyOf(key)

	res, hit := q.request(ctx, k, key, false)
	if !hit && res.IsSuccess() && res.Stale {
		// присоединились к загрузке, начатой до инвалидации
		res, _ = q.request(ctx, k, key, false)
	}

	return res
}

// Refetch принудительно загружает запись, минуя кэш
func (q *Query[K, V]) Refetch(ctx context.Context, key K) Entry[V] {
	k := q.keyOf(key)

	res, _ := q.request(ctx, k, key, true)
	if res.IsSuccess() && res.Stale {
		res, _ = q.request(ctx, k, key, false)
	}

	return res
}

// Peek возвращает текущую запись без загрузки
func (q *Query[K, V]) Peek(key K) Entry[V] {
	k := q.keyOf(key)

	q.mu.Lock()
	defer q.mu.Unlock()

	if e, ok := q.entries[k]; ok {
		return e.state
	}

	return Entry[V]{Endpoint: q.endpoint, Key: k, Status: StatusIdle}
}

// Subscribe подписывает fn на все переходы состояния записи.
// Возвращаемая функция отписки идемпотентна.
func (q *Query[K, V]) Subscribe(key K, fn func(Entry[V])) func() {
	k := q.keyOf(key)

	q.mu.Lock()
	e := q.entryLocked(k, key)
	id := e.nextSub
	e.nextSub++
	e.subs = append(e.subs, subscriber[V]{id: id, fn: fn})
	q.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			q.mu.Lock()
			defer q.mu.Unlock()

			for i, s := range e.subs {
				if s.id == id {
					e.subs = append(e.subs[:i], e.subs[i+1:]...)
					break
				}
			}
			if len(e.subs) == 0 {
				e.releasedAt = q.cache.now()
			}
		})
	}
}

func (q *Query[K, V]) entryLocked(k string, key K) *queryEntry[K, V] {
	e, ok := q.entries[k]
	if !ok {
		e = &queryEntry[K, V]{
			arg:   key,
			state: Entry[V]{Endpoint: q.endpoint, Key: k, Status: StatusIdle},
		}
		q.entries[k] = e
	}
	return e
}

func (q *Query[K, V]) freshLocked(e *queryEntry[K, V]) bool {
	if e.state.Stale {
		return false
	}
	if len(e.subs) > 0 || q.cache.keepUnused <= 0 {
		return true
	}

	lastUsed := e.state.FetchedAt
	if e.releasedAt.After(lastUsed) {
		lastUsed = e.releasedAt
	}

	return q.cache.now().Sub(lastUsed) < q.cache.keepUnused
}

func (q *Query[K, V]) request(ctx context.Context, k string, key K, force bool) (Entry[V], bool) {
	q.mu.Lock()
	q.evictLocked(k)
	e := q.entryLocked(k, key)

	if !force && e.state.IsSuccess() && q.freshLocked(e) {
		snapshot := e.state
		q.mu.Unlock()
		q.cache.observer.CacheHit(q.endpoint)
		return snapshot, true
	}

	if !e.state.IsLoading() {
		e.state.Status = StatusLoading
		q.enqueueLocked(e)
		q.log.Debug("Загрузка записи", slog.String("key", k))
	}

	gen := e.gen
	detached := context.WithoutCancel(ctx)
	ch := q.group.DoChan(k, func() (interface{}, error) {
		return q.fetchAndStore(detached, k, key, gen), nil
	})
	q.mu.Unlock()

	q.cache.observer.CacheMiss(q.endpoint)
	q.deliver(e)

	select {
	case res := <-ch:
		return res.Val.(Entry[V]), false
	case <-ctx.Done():
		current := q.Peek(key)
		if current.IsLoading() {
			current.Err = ctx.Err()
		}
		return current, false
	}
}

func (q *Query[K, V]) fetchAndStore(ctx context.Context, k string, key K, gen uint64) Entry[V] {
	start := q.cache.now()
	data, err := q.fetch(ctx, key)
	q.cache.observer.Fetched(q.endpoint, q.cache.now().Sub(start), err)

	q.mu.Lock()
	q.group.Forget(k)

	e := q.entryLocked(k, key)
	if err != nil {
		e.state.Status = StatusError
		e.state.Err = err
	} else {
		e.state.Status = StatusSuccess
		e.state.Data = data
		e.state.Err = nil
		e.state.FetchedAt = q.cache.now()
		e.state.Stale = e.gen != gen
	}
	e.touchedAt = q.cache.now()
	snapshot := e.state
	q.enqueueLocked(e)
	q.mu.Unlock()

	if err != nil {
		q.log.Debug("Ошибка загрузки записи", slog.String("key", k), slog.Any("error", err))
	}
	q.deliver(e)

	return snapshot
}

// enqueueLocked ставит текущее состояние записи в очередь уведомлений
func (q *Query[K, V]) enqueueLocked(e *queryEntry[K, V]) {
	if len(e.subs) == 0 {
		return
	}
	e.pending = append(e.pending, delivery[V]{entry: e.state, listeners: e.listeners()})
}

// deliver раздает накопленные уведомления вне блокировки. Доставкой записи
// занимается одна горутина, остальные только пополняют очередь, поэтому
// подписчик может вызывать Query и Refetch из обработчика.
func (q *Query[K, V]) deliver(e *queryEntry[K, V]) {
	q.mu.Lock()
	if e.delivering {
		q.mu.Unlock()
		return
	}
	e.delivering = true
	for len(e.pending) > 0 {
		d := e.pending[0]
		e.pending = e.pending[1:]
		q.mu.Unlock()

		notify(d.listeners, d.entry)

		q.mu.Lock()
	}
	e.delivering = false
	q.mu.Unlock()
}

// evictLocked удаляет записи без подписчиков, не использованные дольше keepUnused.
// Запись с ключом keep не трогается.
func (q *Query[K, V]) evictLocked(keep string) {
	if q.cache.keepUnused <= 0 {
		return
	}

	now := q.cache.now()
	evicted := 0
	for k, e := range q.entries {
		if k == keep || len(e.subs) > 0 || e.state.IsLoading() || e.delivering || len(e.pending) > 0 {
			continue
		}
		lastUsed := e.touchedAt
		if e.releasedAt.After(lastUsed) {
			lastUsed = e.releasedAt
		}
		if now.Sub(lastUsed) >= q.cache.keepUnused {
			delete(q.entries, k)
			evicted++
		}
	}

	if evicted > 0 {
		q.log.Debug("Удалены неиспользуемые записи", slog.Int("entries", evicted))
	}
}

func (q *Query[K, V]) invalidate(ctx context.Context) int {
	q.mu.Lock()
	var (
		count   int
		refetch []K
	)
	for _, e := range q.entries {
		if e.state.IsIdle() {
			continue
		}
		e.state.Stale = true
		e.gen++
		count++
		if len(e.subs) > 0 {
			refetch = append(refetch, e.arg)
		}
	}
	q.mu.Unlock()

	for _, key := range refetch {
		q.Query(ctx, key)
	}

	return count
}

func notify[V any](listeners []func(Entry[V]), entry Entry[V]) {
	for _, fn := range listeners {
		fn(entry)
	}
}

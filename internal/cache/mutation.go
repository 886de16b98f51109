package cache

import (
	"context"

	"golang.org/x/exp/slog"
)

// MutationOptions настраивает эндпоинт записи
type MutationOptions struct {
	// Invalidates - теги, которые инвалидируются после успешной мутации
	Invalidates []string
}

// Mutation - эндпоинт записи (создание, обновление, удаление).
// Мутации не ставятся в очередь: параллельные вызовы выполняются независимо.
type Mutation[A any, R any] struct {
	cache       *Cache
	endpoint    string
	do          func(ctx context.Context, arg A) (R, error)
	invalidates []string
	log         *slog.Logger
}

func NewMutation[A any, R any](c *Cache, endpoint string, do func(ctx context.Context, arg A) (R, error), opts MutationOptions) *Mutation[A, R] {
	return &Mutation[A, R]{
		cache:       c,
		endpoint:    endpoint,
		do:          do,
		invalidates: opts.Invalidates,
		log:         c.log.With(slog.String("endpoint", endpoint)),
	}
}

// Mutate выполняет запись. После успеха применяет инвалидацию и дожидается
// перезагрузки записей с подписчиками. Ошибка возвращается как есть, без повторов.
func (m *Mutation[A, R]) Mutate(ctx context.Context, arg A) (R, error) {
	res, err := m.do(ctx, arg)
	m.cache.observer.Mutated(m.endpoint, err)
	if err != nil {
		m.log.Debug("Мутация завершилась ошибкой", slog.Any("error", err))
		return res, err
	}

	if len(m.invalidates) > 0 {
		m.cache.Invalidate(ctx, m.invalidates...)
	}

	return res, nil
}

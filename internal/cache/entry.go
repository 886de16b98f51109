package cache

import "time"

// Status - состояние записи кэша
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Entry - снимок записи кэша для пары (эндпоинт, сериализованные аргументы).
// Во время повторной загрузки Data хранит предыдущий успешный результат.
type Entry[V any] struct {
	Endpoint  string
	Key       string
	Status    Status
	Data      V
	Err       error
	Stale     bool
	FetchedAt time.Time
}

func (e Entry[V]) IsIdle() bool    { return e.Status == StatusIdle }
func (e Entry[V]) IsLoading() bool { return e.Status == StatusLoading }
func (e Entry[V]) IsSuccess() bool { return e.Status == StatusSuccess }
func (e Entry[V]) IsError() bool   { return e.Status == StatusError }

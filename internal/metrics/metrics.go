// Package metrics собирает метрики Prometheus по кэшу запросов и HTTP клиенту.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector реализует cache.Observer и client.RequestObserver
type Collector struct {
	cacheHits     *prometheus.CounterVec
	cacheMisses   *prometheus.CounterVec
	fetches       *prometheus.CounterVec
	fetchLatency  *prometheus.HistogramVec
	mutations     *prometheus.CounterVec
	invalidations *prometheus.CounterVec
	httpRequests  *prometheus.CounterVec
	httpLatency   *prometheus.HistogramVec
}

// NewCollector создает Collector и регистрирует метрики в reg
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sticky_cache_hits_total",
			Help: "Ответы из кэша без запроса к бэкенду",
		}, []string{"endpoint"}),
		cacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sticky_cache_misses_total",
			Help: "Запросы, не найденные в кэше или устаревшие",
		}, []string{"endpoint"}),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sticky_cache_fetches_total",
			Help: "Загрузки записей кэша по результату",
		}, []string{"endpoint", "result"}),
		fetchLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sticky_cache_fetch_duration_seconds",
			Help:    "Длительность загрузки записи кэша (секунды)",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sticky_mutations_total",
			Help: "Мутации по результату",
		}, []string{"endpoint", "result"}),
		invalidations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sticky_cache_invalidated_entries_total",
			Help: "Записи кэша, помеченные устаревшими",
		}, []string{"tag"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sticky_http_requests_total",
			Help: "HTTP запросы к бэкенду по методу, маршруту и статусу",
		}, []string{"method", "route", "status_code"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sticky_http_request_duration_seconds",
			Help:    "Длительность HTTP запроса к бэкенду (секунды)",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		c.cacheHits,
		c.cacheMisses,
		c.fetches,
		c.fetchLatency,
		c.mutations,
		c.invalidations,
		c.httpRequests,
		c.httpLatency,
	)

	return c
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func (c *Collector) CacheHit(endpoint string) {
	c.cacheHits.WithLabelValues(endpoint).Inc()
}

func (c *Collector) CacheMiss(endpoint string) {
	c.cacheMisses.WithLabelValues(endpoint).Inc()
}

func (c *Collector) Fetched(endpoint string, duration time.Duration, err error) {
	c.fetches.WithLabelValues(endpoint, result(err)).Inc()
	c.fetchLatency.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (c *Collector) Mutated(endpoint string, err error) {
	c.mutations.WithLabelValues(endpoint, result(err)).Inc()
}

func (c *Collector) Invalidated(tag string, entries int) {
	c.invalidations.WithLabelValues(tag).Add(float64(entries))
}

// ObserveRequest записывает HTTP запрос. status 0 - ответ не получен.
func (c *Collector) ObserveRequest(method, route string, status int, duration time.Duration) {
	code := "none"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	c.httpRequests.WithLabelValues(method, route, code).Inc()
	c.httpLatency.WithLabelValues(method, route).Observe(duration.Seconds())
}

// Handler возвращает HTTP обработчик для сбора метрик Prometheus
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetupMetricsRoute возвращает mux с эндпоинтом /metrics
func SetupMetricsRoute(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))
	return mux
}

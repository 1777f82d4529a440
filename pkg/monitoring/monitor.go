package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// Smartschool 上游请求
	UpstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "smartschool_request_duration_seconds",
			Help:    "Duration of evaluation list requests against Smartschool",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"status"},
	)

	RecordsIngested = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "evaluation_records_ingested_total",
			Help: "Evaluation records accepted by ingest",
		},
	)

	RecordsSkipped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "evaluation_records_skipped_total",
			Help: "Evaluation records dropped by ingest",
		},
	)

	ExportsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "result_exports_total",
			Help: "Result exports generated",
		},
		[]string{"format"},
	)

	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataset_cache_lookups_total",
			Help: "Dataset cache lookups by outcome",
		},
		[]string{"result"},
	)
)

var initOnce sync.Once

func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(UpstreamRequestDuration)
		prometheus.MustRegister(RecordsIngested)
		prometheus.MustRegister(RecordsSkipped)
		prometheus.MustRegister(ExportsGenerated)
		prometheus.MustRegister(CacheLookups)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			endpoint,
		).Observe(duration)
	}
}

// ObserveUpstream 记录一次 Smartschool 请求，status 为 0 表示传输层失败
func ObserveUpstream(status int, started time.Time) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	UpstreamRequestDuration.WithLabelValues(label).Observe(time.Since(started).Seconds())
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

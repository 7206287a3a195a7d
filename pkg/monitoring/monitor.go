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
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2},
		},
		[]string{"method", "endpoint"},
	)

	// PuzzleSubmissions 按谜题与结果统计提交
	PuzzleSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codeverse_puzzle_submissions_total",
			Help: "Phase 2 puzzle submissions by puzzle and outcome",
		},
		[]string{"puzzle", "outcome"},
	)

	PhaseTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codeverse_phase_transitions_total",
			Help: "Persisted phase-completing writes",
		},
		[]string{"phase"},
	)

	StoreFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codeverse_store_failures_total",
			Help: "Participant store operations that did not verifiably succeed",
		},
		[]string{"operation"},
	)
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(PuzzleSubmissions)
		prometheus.MustRegister(PhaseTransitions)
		prometheus.MustRegister(StoreFailures)
	})
}

// 结果标签
const (
	OutcomeValid     = "valid"
	OutcomeInvalid   = "invalid"
	OutcomeLocked    = "locked"
	OutcomeMalformed = "malformed"
)

func ObservePuzzle(puzzle, outcome string) {
	PuzzleSubmissions.WithLabelValues(puzzle, outcome).Inc()
}

func ObserveTransition(phase string) {
	PhaseTransitions.WithLabelValues(phase).Inc()
}

func ObserveStoreFailure(op string) {
	StoreFailures.WithLabelValues(op).Inc()
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

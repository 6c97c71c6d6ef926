package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry = prometheus.NewRegistry()

	storeOperations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "applicant_store_operations_total",
		Help: "Applicant store operations by operation and result",
	}, []string{"op", "result"})

	storeDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "applicant_store_operation_duration_seconds",
		Help:    "Applicant store operation latency in seconds",
		Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
	}, []string{"op"})

	resumeUploads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "resume_uploads_total",
		Help: "Resume uploads by result",
	}, []string{"result"})
)

func init() {
	registry.MustRegister(
		storeOperations,
		storeDuration,
		resumeUploads,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// ErrorClassifier maps an operation error to a short result label.
type ErrorClassifier func(error) string

// ObserveStoreOp records one store operation. A nil classify labels every
// error "error".
func ObserveStoreOp(op string, start time.Time, err error, classify ErrorClassifier) {
	result := "ok"
	if err != nil {
		result = "error"
		if classify != nil {
			if label := classify(err); label != "" {
				result = label
			}
		}
	}
	storeOperations.WithLabelValues(op, result).Inc()
	storeDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// IncResumeUpload counts a resume upload attempt.
func IncResumeUpload(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	resumeUploads.WithLabelValues(result).Inc()
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}

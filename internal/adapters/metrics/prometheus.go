package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/baditaflorin/go_palindrome/internal/ports"
)

const namespace = "palindrome"

// Recorder implements ports.MetricsRecorder on top of Prometheus collectors.
type Recorder struct {
	evaluations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

var _ ports.MetricsRecorder = (*Recorder)(nil)

// NewRecorder creates the evaluation collectors and registers them on reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_total",
			Help:      "Number of palindrome evaluations by strategy and verdict.",
		}, []string{"strategy", "palindrome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "evaluation_duration_seconds",
			Help:      "Time spent normalizing and checking one input.",
			Buckets:   prometheus.ExponentialBuckets(1e-7, 4, 10),
		}, []string{"strategy"}),
	}

	for _, c := range []prometheus.Collector{r.evaluations, r.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// ObserveEvaluation records one evaluation.
func (r *Recorder) ObserveEvaluation(strategy string, palindrome bool, duration time.Duration) {
	r.evaluations.WithLabelValues(strategy, strconv.FormatBool(palindrome)).Inc()
	r.duration.WithLabelValues(strategy).Observe(duration.Seconds())
}

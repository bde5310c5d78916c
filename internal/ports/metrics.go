package ports

import "time"

// MetricsRecorder receives one observation per evaluation.
type MetricsRecorder interface {
	ObserveEvaluation(strategy string, palindrome bool, duration time.Duration)
}

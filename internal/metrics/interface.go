// Quality metrics comparing the working image against the original
package metrics

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"image-filter-studio/internal/core"
)

var (
	ErrUnknownMetric     = errors.New("metric not found")
	ErrDimensionMismatch = errors.New("image dimensions mismatch")
)

// Metric defines the interface for quality metrics
type Metric interface {
	// Calculate computes the metric value
	Calculate(original, processed core.PixelBuffer) (float64, error)

	// GetName returns the metric name
	GetName() string

	// GetDescription returns the metric description
	GetDescription() string

	// GetRange returns the value range (min, max)
	GetRange() (float64, float64)

	// IsHigherBetter returns true if higher values indicate closer similarity
	IsHigherBetter() bool
}

// Evaluator manages and calculates multiple metrics
type Evaluator struct {
	metrics map[string]Metric
	weights map[string]float64
}

// NewEvaluator creates a new metrics evaluator
func NewEvaluator() *Evaluator {
	e := &Evaluator{
		metrics: make(map[string]Metric),
		weights: map[string]float64{
			"psnr": 0.5,
			"ssim": 0.5,
		},
	}

	e.RegisterDefaultMetrics()
	return e
}

// RegisterDefaultMetrics registers all default metrics
func (e *Evaluator) RegisterDefaultMetrics() {
	e.Register("psnr", NewPSNR())
	e.Register("ssim", NewSSIM())
	e.Register("mse", NewMSE())
	e.Register("mean_shift", NewMeanShift())
}

// Register registers a metric
func (e *Evaluator) Register(name string, metric Metric) {
	e.metrics[name] = metric
}

// Names returns registered metric names sorted.
func (e *Evaluator) Names() []string {
	names := make([]string, 0, len(e.metrics))
	for name := range e.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the metric registered under name.
func (e *Evaluator) Get(name string) (Metric, bool) {
	metric, exists := e.metrics[name]
	return metric, exists
}

// Calculate calculates a specific metric
func (e *Evaluator) Calculate(name string, original, processed core.PixelBuffer) (float64, error) {
	metric, exists := e.metrics[name]
	if !exists {
		return 0, fmt.Errorf("%w: %s", ErrUnknownMetric, name)
	}
	return metric.Calculate(original, processed)
}

// CalculateAll calculates every metric that applies to the pair. Metrics that
// need equal dimensions are skipped when the sizes differ.
func (e *Evaluator) CalculateAll(original, processed core.PixelBuffer) map[string]float64 {
	results := make(map[string]float64)
	for name, metric := range e.metrics {
		if value, err := metric.Calculate(original, processed); err == nil {
			results[name] = value
		}
	}
	return results
}

// Report summarises how far the working image has drifted from the original.
type Report struct {
	Comparable bool               `json:"comparable"`
	Score      float64            `json:"score"`
	Level      string             `json:"level"` // "identical", "close", "moderate", "strong"
	Metrics    map[string]float64 `json:"metrics"`
	Timestamp  string             `json:"timestamp"`
}

// GenerateReport computes all metrics and a weighted similarity score.
func (e *Evaluator) GenerateReport(original, processed core.PixelBuffer) Report {
	values := e.CalculateAll(original, processed)
	_, comparable := values["psnr"]

	report := Report{
		Comparable: comparable,
		Metrics:    values,
		Timestamp:  time.Now().Format("2006-01-02 15:04:05"),
	}
	if !comparable {
		report.Level = "resized"
		return report
	}

	report.Score = e.similarityScore(values)
	switch {
	case report.Score >= 99.999:
		report.Level = "identical"
	case report.Score >= 75:
		report.Level = "close"
	case report.Score >= 45:
		report.Level = "moderate"
	default:
		report.Level = "strong"
	}
	return report
}

// similarityScore is a weighted average of normalised metrics, as a percentage.
func (e *Evaluator) similarityScore(values map[string]float64) float64 {
	totalWeight := 0.0
	weightedSum := 0.0

	for name, weight := range e.weights {
		if value, exists := values[name]; exists {
			weightedSum += e.normalizeMetric(name, value) * weight
			totalWeight += weight
		}
	}

	if totalWeight == 0 {
		return 0
	}
	return (weightedSum / totalWeight) * 100
}

// normalizeMetric normalizes a metric value to 0-1 range
func (e *Evaluator) normalizeMetric(name string, value float64) float64 {
	metric, exists := e.metrics[name]
	if !exists {
		return 0
	}

	lo, hi := metric.GetRange()
	if math.IsInf(value, 1) {
		value = hi
	}
	value = math.Max(lo, math.Min(hi, value))
	if hi == lo {
		return 1.0
	}

	normalized := (value - lo) / (hi - lo)
	if !metric.IsHigherBetter() {
		normalized = 1.0 - normalized
	}
	return normalized
}

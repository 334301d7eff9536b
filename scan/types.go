// scan/types.go
// Package: scan
package scan

import (
	"time"

	"github.com/mwiater/cosmoview/internal/dataset"
	"github.com/mwiater/cosmoview/internal/stats"
)

// Options configures a sweep.
type Options struct {
	// Base holds the value index of every parameter; the swept parameter's
	// entry is ignored. Nil means the dataset defaults.
	Base []int `json:"base,omitempty" yaml:"base,omitempty"`

	// Name labels the report (usually the catalog entry name).
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// Row captures the statistics of one value of the swept parameter.
type Row struct {
	Index int         `json:"index" yaml:"index"`
	Value float64     `json:"value" yaml:"value"`
	Label string      `json:"label" yaml:"label"`
	Key   dataset.Key `json:"key" yaml:"key"`

	Xi   *stats.XiStatistics   `json:"xi,omitempty" yaml:"xi,omitempty"`
	Mass *stats.MassStatistics `json:"mass,omitempty" yaml:"mass,omitempty"`

	// Error is set when a curve of this row could not be resolved.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Summary aggregates one scalar across the rows that have it.
type Summary struct {
	Metric string  `json:"metric" yaml:"metric"`
	N      int     `json:"n" yaml:"n"`
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
	Mean   float64 `json:"mean" yaml:"mean"`
	Std    float64 `json:"std" yaml:"std"`
	P50    float64 `json:"p50" yaml:"p50"`
	P95    float64 `json:"p95" yaml:"p95"`
}

// Report is the top-level artifact returned by Sweep.
type Report struct {
	Name        string    `json:"name,omitempty" yaml:"name,omitempty"`
	Parameter   string    `json:"parameter" yaml:"parameter"`
	Index       int       `json:"parameter_index" yaml:"parameter_index"`
	Rows        []Row     `json:"rows" yaml:"rows"`
	Summaries   []Summary `json:"summaries" yaml:"summaries"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
}

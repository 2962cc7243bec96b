// Package models defines the plain structured values exchanged between the
// analyzers and any reporting layer. Nothing here embeds formatting.
package models

import "fmt"

// FunctionMetrics holds the complexity measurements for one function.
// LineCount is always EndLine-StartLine+1; Smells is populated by
// DetectSmells as a finalization step and is empty until then.
type FunctionMetrics struct {
	Name        string   `json:"name"`
	StartLine   uint32   `json:"start_line"`
	EndLine     uint32   `json:"end_line"`
	Cyclomatic  uint32   `json:"cyclomatic"`
	Cognitive   uint32   `json:"cognitive"`
	MaxNesting  int      `json:"max_nesting"`
	ParamCount  int      `json:"param_count"`
	LineCount   int      `json:"line_count"`
	Smells      []string `json:"smells,omitempty"`
}

// Thresholds bounds the smell detectors. Passed explicitly so callers and
// tests can override policies without global state.
type Thresholds struct {
	MaxCyclomatic uint32 `json:"max_cyclomatic" koanf:"max_cyclomatic"`
	MaxCognitive  uint32 `json:"max_cognitive" koanf:"max_cognitive"`
	MaxNesting    int    `json:"max_nesting" koanf:"max_nesting"`
	MaxLines      int    `json:"max_lines" koanf:"max_lines"`
	MaxParams     int    `json:"max_params" koanf:"max_params"`
}

// DefaultThresholds returns the standard smell thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxCyclomatic: 10,
		MaxCognitive:  15,
		MaxNesting:    4,
		MaxLines:      50,
		MaxParams:     5,
	}
}

// DetectSmells compares each metric against the thresholds and appends one
// descriptor per breach, in metric-evaluation order: cyclomatic, cognitive,
// nesting, length, parameters. Calling it again resets the list.
func (m *FunctionMetrics) DetectSmells(t Thresholds) {
	m.Smells = nil

	if m.Cyclomatic > t.MaxCyclomatic {
		m.Smells = append(m.Smells, fmt.Sprintf(
			"High cyclomatic complexity: %d (threshold: %d)", m.Cyclomatic, t.MaxCyclomatic))
	}
	if m.Cognitive > t.MaxCognitive {
		m.Smells = append(m.Smells, fmt.Sprintf(
			"High cognitive complexity: %d (threshold: %d)", m.Cognitive, t.MaxCognitive))
	}
	if m.MaxNesting > t.MaxNesting {
		m.Smells = append(m.Smells, fmt.Sprintf(
			"Deep nesting: %d levels (threshold: %d)", m.MaxNesting, t.MaxNesting))
	}
	if m.LineCount > t.MaxLines {
		m.Smells = append(m.Smells, fmt.Sprintf(
			"Long function: %d lines (threshold: %d)", m.LineCount, t.MaxLines))
	}
	if m.ParamCount > t.MaxParams {
		m.Smells = append(m.Smells, fmt.Sprintf(
			"Too many parameters: %d (threshold: %d)", m.ParamCount, t.MaxParams))
	}
}

// Rating is an ordinal complexity band used for reporting only.
type Rating string

const (
	RatingLow      Rating = "LOW"
	RatingMedium   Rating = "MEDIUM"
	RatingHigh     Rating = "HIGH"
	RatingVeryHigh Rating = "VERY HIGH"
)

// Rating maps the average of cyclomatic and cognitive complexity to a band.
func (m *FunctionMetrics) Rating() Rating {
	avg := (float64(m.Cyclomatic) + float64(m.Cognitive)) / 2

	switch {
	case avg <= 3:
		return RatingLow
	case avg <= 8:
		return RatingMedium
	case avg <= 15:
		return RatingHigh
	default:
		return RatingVeryHigh
	}
}

// Index returns the ordinal position of a rating band.
func (r Rating) Index() int {
	switch r {
	case RatingLow:
		return 0
	case RatingMedium:
		return 1
	case RatingHigh:
		return 2
	default:
		return 3
	}
}

// WithinBand reports whether two ratings are at most tolerance bands apart.
// Used by expectation validation, where adjacent bands are acceptable.
func WithinBand(expected, actual Rating, tolerance int) bool {
	diff := expected.Index() - actual.Index()
	if diff < 0 {
		diff = -diff
	}
	return diff <= tolerance
}

// FileMetrics aggregates the function metrics for one file.
type FileMetrics struct {
	Path            string            `json:"path"`
	Language        string            `json:"language"`
	Functions       []FunctionMetrics `json:"functions"`
	TotalLines      int               `json:"total_lines"`
	PartialParse    bool              `json:"partial_parse,omitempty"`
	TotalCyclomatic uint32            `json:"total_cyclomatic"`
	TotalCognitive  uint32            `json:"total_cognitive"`
	AvgCyclomatic   float64           `json:"avg_cyclomatic"`
	AvgCognitive    float64           `json:"avg_cognitive"`
}

// ComplexityAnalysis is the project-level complexity result.
type ComplexityAnalysis struct {
	Files   []FileMetrics     `json:"files"`
	Summary ComplexitySummary `json:"summary"`
}

// ComplexitySummary provides aggregate statistics across all functions.
type ComplexitySummary struct {
	TotalFiles     int     `json:"total_files"`
	TotalFunctions int     `json:"total_functions"`
	AvgCyclomatic  float64 `json:"avg_cyclomatic"`
	AvgCognitive   float64 `json:"avg_cognitive"`
	MaxCyclomatic  uint32  `json:"max_cyclomatic"`
	MaxCognitive   uint32  `json:"max_cognitive"`
	P50Cyclomatic  float64 `json:"p50_cyclomatic"`
	P95Cyclomatic  float64 `json:"p95_cyclomatic"`
	P50Cognitive   float64 `json:"p50_cognitive"`
	P95Cognitive   float64 `json:"p95_cognitive"`
	SmellCount     int     `json:"smell_count"`
}

package models

import (
	"strings"
	"testing"
)

func TestDetectSmells(t *testing.T) {
	tests := []struct {
		name string
		m    FunctionMetrics
		want []string
	}{
		{
			name: "clean function",
			m:    FunctionMetrics{Cyclomatic: 1, Cognitive: 0, MaxNesting: 0, LineCount: 5, ParamCount: 2},
			want: nil,
		},
		{
			name: "at thresholds is clean",
			m:    FunctionMetrics{Cyclomatic: 10, Cognitive: 15, MaxNesting: 4, LineCount: 50, ParamCount: 5},
			want: nil,
		},
		{
			name: "all thresholds breached in order",
			m:    FunctionMetrics{Cyclomatic: 11, Cognitive: 16, MaxNesting: 5, LineCount: 51, ParamCount: 6},
			want: []string{"cyclomatic", "cognitive", "nesting", "function", "parameters"},
		},
		{
			name: "only nesting",
			m:    FunctionMetrics{Cyclomatic: 2, Cognitive: 3, MaxNesting: 7, LineCount: 10, ParamCount: 1},
			want: []string{"nesting"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.m.DetectSmells(DefaultThresholds())
			if len(tt.m.Smells) != len(tt.want) {
				t.Fatalf("Smells = %v, want %d entries", tt.m.Smells, len(tt.want))
			}
			for i, marker := range tt.want {
				if !strings.Contains(strings.ToLower(tt.m.Smells[i]), marker) {
					t.Errorf("Smells[%d] = %q, want marker %q", i, tt.m.Smells[i], marker)
				}
			}
		})
	}
}

func TestDetectSmells_Resets(t *testing.T) {
	m := FunctionMetrics{Cyclomatic: 11}
	m.DetectSmells(DefaultThresholds())
	m.DetectSmells(DefaultThresholds())
	if len(m.Smells) != 1 {
		t.Errorf("Smells = %v, want a single entry after re-detection", m.Smells)
	}
}

func TestRating(t *testing.T) {
	tests := []struct {
		cyclomatic uint32
		cognitive  uint32
		want       Rating
	}{
		{1, 0, RatingLow},       // avg 0.5
		{3, 3, RatingLow},       // avg 3
		{4, 3, RatingMedium},    // avg 3.5
		{8, 8, RatingMedium},    // avg 8
		{9, 8, RatingHigh},      // avg 8.5
		{15, 15, RatingHigh},     // avg 15
		{16, 15, RatingVeryHigh}, // avg 15.5
	}

	for _, tt := range tests {
		m := FunctionMetrics{Cyclomatic: tt.cyclomatic, Cognitive: tt.cognitive}
		if got := m.Rating(); got != tt.want {
			t.Errorf("Rating(%d, %d) = %v, want %v", tt.cyclomatic, tt.cognitive, got, tt.want)
		}
	}
}

func TestWithinBand(t *testing.T) {
	if !WithinBand(RatingLow, RatingMedium, 1) {
		t.Error("adjacent bands should be within tolerance 1")
	}
	if WithinBand(RatingLow, RatingHigh, 1) {
		t.Error("two bands apart should exceed tolerance 1")
	}
	if !WithinBand(RatingVeryHigh, RatingVeryHigh, 0) {
		t.Error("equal bands should always match")
	}
}

func TestDeadCodeReport_TotalCandidates(t *testing.T) {
	r := DeadCodeReport{
		PrivateUnused:  []DeadCandidate{{Name: "a"}},
		ExportedUnused: []DeadCandidate{{Name: "b"}, {Name: "c"}},
		SingleFileDead: map[string][]DeadCandidate{
			"x.py": {{Name: "d"}},
		},
	}
	if got := r.TotalCandidates(); got != 4 {
		t.Errorf("TotalCandidates() = %d, want 4", got)
	}
}

package analyzer

import (
	"sort"

	"github.com/bgaffney/scalpel/pkg/models"
)

// ExpectationResult records one rating comparison.
type ExpectationResult struct {
	Function string        `json:"function"`
	Expected models.Rating `json:"expected"`
	Actual   models.Rating `json:"actual"`
	Found    bool          `json:"found"`
	OK       bool          `json:"ok"`
}

// ValidateExpectations compares measured ratings against expected bands,
// accepting one band of drift either way. Useful for pinning the rating of
// known functions in CI.
func ValidateExpectations(functions []models.FunctionMetrics, expected map[string]models.Rating) []ExpectationResult {
	byName := make(map[string]models.FunctionMetrics, len(functions))
	for _, fn := range functions {
		byName[fn.Name] = fn
	}

	results := make([]ExpectationResult, 0, len(expected))
	for name, want := range expected {
		fn, ok := byName[name]
		r := ExpectationResult{Function: name, Expected: want, Found: ok}
		if ok {
			r.Actual = fn.Rating()
			r.OK = models.WithinBand(want, r.Actual, 1)
		}
		results = append(results, r)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Function < results[j].Function })
	return results
}

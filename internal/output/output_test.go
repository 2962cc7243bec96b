package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bgaffney/scalpel/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("json"))
	assert.Equal(t, FormatJSON, ParseFormat("JSON"))
	assert.Equal(t, FormatMarkdown, ParseFormat("markdown"))
	assert.Equal(t, FormatMarkdown, ParseFormat("md"))
	assert.Equal(t, FormatTOON, ParseFormat("toon"))
	assert.Equal(t, FormatText, ParseFormat("text"))
	assert.Equal(t, FormatText, ParseFormat("bogus"))
}

func TestTable_RenderMarkdown(t *testing.T) {
	table := &Table{
		Title:   "Results",
		Headers: []string{"Name", "Count"},
		Rows:    [][]string{{"alpha", "1"}, {"beta", "2"}},
		Footer:  []string{"total", "3"},
	}

	var buf bytes.Buffer
	require.NoError(t, table.RenderMarkdown(&buf))
	out := buf.String()

	assert.Contains(t, out, "## Results")
	assert.Contains(t, out, "| Name | Count |")
	assert.Contains(t, out, "| --- | --- |")
	assert.Contains(t, out, "| alpha | 1 |")
	assert.Contains(t, out, "| total | 3 |")
}

func TestTable_RenderText(t *testing.T) {
	table := &Table{
		Title:   "Results",
		Headers: []string{"Name", "Count"},
		Rows:    [][]string{{"alpha", "1"}},
	}

	var buf bytes.Buffer
	require.NoError(t, table.RenderText(&buf, false))
	out := buf.String()

	assert.Contains(t, out, "Results")
	assert.Contains(t, out, "alpha")
}

func TestTable_RenderData(t *testing.T) {
	table := &Table{
		Headers: []string{"Name", "Count"},
		Rows:    [][]string{{"alpha", "1"}},
	}

	data, ok := table.RenderData().([]map[string]string)
	require.True(t, ok)
	require.Len(t, data, 1)
	assert.Equal(t, "alpha", data[0]["Name"])
	assert.Equal(t, "1", data[0]["Count"])

	table.Data = 42
	assert.Equal(t, 42, table.RenderData())
}

func sampleAnalysis() *models.ComplexityAnalysis {
	clean := models.FunctionMetrics{
		Name: "tidy", StartLine: 1, EndLine: 3,
		Cyclomatic: 1, Cognitive: 0, LineCount: 3,
	}
	smelly := models.FunctionMetrics{
		Name: "tangle", StartLine: 10, EndLine: 80,
		Cyclomatic: 14, Cognitive: 22, MaxNesting: 5, ParamCount: 2, LineCount: 71,
	}
	smelly.DetectSmells(models.DefaultThresholds())

	return &models.ComplexityAnalysis{
		Files: []models.FileMetrics{
			{Path: "svc.py", Language: "python", Functions: []models.FunctionMetrics{clean, smelly}, TotalLines: 80},
		},
		Summary: models.ComplexitySummary{
			TotalFiles:     1,
			TotalFunctions: 2,
			AvgCyclomatic:  7.5,
			AvgCognitive:   11,
			MaxCyclomatic:  14,
			MaxCognitive:   22,
			SmellCount:     4,
		},
	}
}

func TestComplexityReport_SmellsOnly(t *testing.T) {
	report := ComplexityReport(sampleAnalysis(), false)

	var buf bytes.Buffer
	require.NoError(t, report.RenderText(&buf, false))
	out := buf.String()

	assert.Contains(t, out, "svc.py:10")
	assert.Contains(t, out, "tangle")
	assert.NotContains(t, out, "tidy")
	assert.Contains(t, out, "VERY HIGH")
}

func TestComplexityReport_Verbose(t *testing.T) {
	report := ComplexityReport(sampleAnalysis(), true)

	var buf bytes.Buffer
	require.NoError(t, report.RenderText(&buf, false))
	out := buf.String()

	assert.Contains(t, out, "tidy")
	assert.Contains(t, out, "tangle")
}

func TestComplexityReport_MachineDataIsFullAnalysis(t *testing.T) {
	a := sampleAnalysis()
	report := ComplexityReport(a, false)

	data, ok := report.RenderData().(*models.ComplexityAnalysis)
	require.True(t, ok)
	assert.Len(t, data.Files[0].Functions, 2)
}

func TestDeadCodeView(t *testing.T) {
	report := DeadCodeView(&models.DeadCodeReport{
		FilesAnalyzed: 3,
		PrivateUnused: []models.DeadCandidate{
			{File: "app.py", Name: "_stale", Kind: models.DefFunction, Line: 4, ContextHash: "ab12cd34ef56ab12"},
		},
		SingleFileDead: map[string][]models.DeadCandidate{
			"svc.py": {{File: "svc.py", Name: "orphan", Kind: models.DefFunction, Line: 9}},
		},
	})

	var buf bytes.Buffer
	require.NoError(t, report.RenderMarkdown(&buf))
	out := buf.String()

	assert.Contains(t, out, "Private Unused (high confidence)")
	assert.Contains(t, out, "app.py:4")
	assert.Contains(t, out, "_stale")
	assert.Contains(t, out, "Unused In File")
	assert.Contains(t, out, "orphan")
	assert.NotContains(t, out, "Exported But Unused")
}

func TestDeadCodeView_Empty(t *testing.T) {
	report := DeadCodeView(&models.DeadCodeReport{FilesAnalyzed: 7})

	var buf bytes.Buffer
	require.NoError(t, report.RenderText(&buf, false))
	assert.Contains(t, buf.String(), "no candidates in 7 files")
}

func TestFileAnalysisView_ImportsSorted(t *testing.T) {
	report := FileAnalysisView(&models.FileAnalysis{
		Path:     "app.py",
		Language: "python",
		Imports: map[string]string{
			"zlib": "zlib",
			"auth": "lib.auth",
		},
		WildcardImports: []string{"helpers"},
	})

	var buf bytes.Buffer
	require.NoError(t, report.RenderMarkdown(&buf))
	out := buf.String()

	assert.Less(t, strings.Index(out, "| auth |"), strings.Index(out, "| zlib |"))
	assert.Contains(t, out, "| * | helpers |")
}

func TestFormatter_JSONOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	f, err := NewFormatter(FormatJSON, path, true)
	require.NoError(t, err)
	require.NoError(t, f.Output(ComplexityReport(sampleAnalysis(), false)))
	require.NoError(t, f.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded models.ComplexityAnalysis
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, 2, decoded.Summary.TotalFunctions)
	assert.Len(t, decoded.Files, 1)
}

func TestRatingColor_PassthroughUnknown(t *testing.T) {
	assert.Equal(t, "n/a", RatingColor("WHATEVER", "n/a"))
}

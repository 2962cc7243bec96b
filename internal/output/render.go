package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bgaffney/scalpel/pkg/models"
)

// ComplexityReport builds the renderable view of a complexity analysis.
// In non-verbose mode only functions carrying smells are listed; the
// machine formats always serialize the full analysis.
func ComplexityReport(a *models.ComplexityAnalysis, verbose bool) *Report {
	rows := make([][]string, 0, a.Summary.TotalFunctions)

	for _, file := range a.Files {
		for _, fn := range file.Functions {
			if !verbose && len(fn.Smells) == 0 {
				continue
			}
			rows = append(rows, []string{
				fmt.Sprintf("%s:%d", file.Path, fn.StartLine),
				fn.Name,
				fmt.Sprintf("%d", fn.Cyclomatic),
				fmt.Sprintf("%d", fn.Cognitive),
				fmt.Sprintf("%d", fn.MaxNesting),
				fmt.Sprintf("%d", fn.ParamCount),
				string(fn.Rating()),
				strings.Join(fn.Smells, "; "),
			})
		}
	}

	table := &Table{
		Title:   "Complexity",
		Headers: []string{"Location", "Function", "Cyclo", "Cognitive", "Nesting", "Params", "Rating", "Smells"},
		Rows:    rows,
		Footer: []string{
			fmt.Sprintf("%d files", a.Summary.TotalFiles),
			fmt.Sprintf("%d functions", a.Summary.TotalFunctions),
			fmt.Sprintf("avg %.1f", a.Summary.AvgCyclomatic),
			fmt.Sprintf("avg %.1f", a.Summary.AvgCognitive),
			"", "", "",
			fmt.Sprintf("%d smells", a.Summary.SmellCount),
		},
	}

	summary := &Table{
		Title:   "Summary",
		Headers: []string{"Metric", "Avg", "P50", "P95", "Max"},
		Rows: [][]string{
			{
				"Cyclomatic",
				fmt.Sprintf("%.2f", a.Summary.AvgCyclomatic),
				fmt.Sprintf("%.1f", a.Summary.P50Cyclomatic),
				fmt.Sprintf("%.1f", a.Summary.P95Cyclomatic),
				fmt.Sprintf("%d", a.Summary.MaxCyclomatic),
			},
			{
				"Cognitive",
				fmt.Sprintf("%.2f", a.Summary.AvgCognitive),
				fmt.Sprintf("%.1f", a.Summary.P50Cognitive),
				fmt.Sprintf("%.1f", a.Summary.P95Cognitive),
				fmt.Sprintf("%d", a.Summary.MaxCognitive),
			},
		},
	}

	return &Report{
		Title: "Complexity Analysis",
		Parts: []Renderable{table, summary},
		Data:  a,
	}
}

// DeadCodeView builds the renderable view of a dead-code report, one
// table per confidence bucket, highest confidence first.
func DeadCodeView(r *models.DeadCodeReport) *Report {
	report := &Report{
		Title: "Dead Code Analysis",
		Data:  r,
	}

	if len(r.PrivateUnused) > 0 {
		report.Parts = append(report.Parts, candidateTable(
			"Private Unused (high confidence)", r.PrivateUnused))
	}
	if len(r.ExportedUnused) > 0 {
		report.Parts = append(report.Parts, candidateTable(
			"Exported But Unused", r.ExportedUnused))
	}

	if len(r.SingleFileDead) > 0 {
		files := make([]string, 0, len(r.SingleFileDead))
		for f := range r.SingleFileDead {
			files = append(files, f)
		}
		sort.Strings(files)

		var all []models.DeadCandidate
		for _, f := range files {
			all = append(all, r.SingleFileDead[f]...)
		}
		report.Parts = append(report.Parts, candidateTable("Unused In File", all))
	}

	if len(report.Parts) == 0 {
		report.Parts = append(report.Parts, &Table{
			Title:   "Dead Code",
			Headers: []string{"Result"},
			Rows:    [][]string{{fmt.Sprintf("no candidates in %d files", r.FilesAnalyzed)}},
		})
	}

	return report
}

// FileAnalysisView builds the renderable view of one file's extraction.
func FileAnalysisView(fa *models.FileAnalysis) *Report {
	defRows := make([][]string, 0, len(fa.Definitions))
	for _, d := range fa.Definitions {
		flags := ""
		if d.IsExported {
			flags = "exported"
		} else if d.IsPrivate {
			flags = "private"
		}
		defRows = append(defRows, []string{
			fmt.Sprintf("%d", d.Line), string(d.Kind), d.Name, d.ParentScope, flags,
		})
	}

	refRows := make([][]string, 0, len(fa.References))
	for _, r := range fa.References {
		refRows = append(refRows, []string{
			fmt.Sprintf("%d", r.Line), string(r.Context), r.Name,
		})
	}

	imports := make([]string, 0, len(fa.Imports))
	for name := range fa.Imports {
		imports = append(imports, name)
	}
	sort.Strings(imports)
	importRows := make([][]string, 0, len(imports))
	for _, name := range imports {
		importRows = append(importRows, []string{name, fa.Imports[name]})
	}
	for _, module := range fa.WildcardImports {
		importRows = append(importRows, []string{"*", module})
	}

	return &Report{
		Title: fa.Path,
		Parts: []Renderable{
			&Table{Title: "Definitions", Headers: []string{"Line", "Kind", "Name", "Scope", "Visibility"}, Rows: defRows},
			&Table{Title: "References", Headers: []string{"Line", "Context", "Name"}, Rows: refRows},
			&Table{Title: "Imports", Headers: []string{"Name", "Module"}, Rows: importRows},
		},
		Data: fa,
	}
}

func candidateTable(title string, candidates []models.DeadCandidate) *Table {
	rows := make([][]string, 0, len(candidates))
	for _, c := range candidates {
		rows = append(rows, []string{
			fmt.Sprintf("%s:%d", c.File, c.Line),
			string(c.Kind),
			c.Name,
			c.ContextHash,
		})
	}
	return &Table{
		Title:   title,
		Headers: []string{"Location", "Kind", "Name", "Hash"},
		Rows:    rows,
	}
}

package analyzer

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/bgaffney/scalpel/internal/fileproc"
	"github.com/bgaffney/scalpel/pkg/models"
	"github.com/bgaffney/scalpel/pkg/parser"
)

// DeadCodeAnalyzer finds definitions that nothing references. Per-file
// extraction runs in parallel; resolution happens once over the collected
// results, which is the only synchronization point. Workers bounds the
// extraction parallelism; zero selects the default pool size.
type DeadCodeAnalyzer struct {
	extractor *Extractor

	Workers int
}

// NewDeadCodeAnalyzer creates a dead-code analyzer.
func NewDeadCodeAnalyzer() *DeadCodeAnalyzer {
	return &DeadCodeAnalyzer{extractor: NewExtractor()}
}

// Close releases analyzer resources.
func (a *DeadCodeAnalyzer) Close() {
	a.extractor.Close()
}

// AnalyzeFile finds candidates in one file without cross-file evidence.
func (a *DeadCodeAnalyzer) AnalyzeFile(path string) (*models.FileAnalysis, []models.DeadCandidate, error) {
	fa, err := a.extractor.AnalyzeFile(path)
	if err != nil {
		return nil, nil, err
	}
	return fa, fileCandidates(fa), nil
}

// fileCandidates returns definitions with no reference inside their own
// file, in definition order.
func fileCandidates(fa *models.FileAnalysis) []models.DeadCandidate {
	refs := make(map[string]bool, len(fa.References))
	for _, r := range fa.References {
		refs[r.Name] = true
	}

	var out []models.DeadCandidate
	for _, d := range fa.Definitions {
		if !refs[d.Name] {
			out = append(out, candidate(fa.Path, d))
		}
	}
	return out
}

func candidate(path string, d models.Definition) models.DeadCandidate {
	return models.DeadCandidate{
		File:        path,
		Name:        d.Name,
		Kind:        d.Kind,
		Line:        d.Line,
		IsExported:  d.IsExported,
		ContextHash: d.ContextHash,
	}
}

// AnalyzeProject resolves dead code across files.
func (a *DeadCodeAnalyzer) AnalyzeProject(files []string) (*models.DeadCodeReport, *fileproc.FileErrors) {
	return a.AnalyzeProjectCtx(context.Background(), files, nil)
}

// AnalyzeProjectCtx extracts every file in parallel, then resolves the
// collected analyses. Files that fail to parse are listed as excluded and
// do not fail the run.
func (a *DeadCodeAnalyzer) AnalyzeProjectCtx(ctx context.Context, files []string, onProgress fileproc.ProgressFunc) (*models.DeadCodeReport, *fileproc.FileErrors) {
	analyses, errs := fileproc.MapCtx(ctx, files, a.Workers, func(psr *parser.Parser, path string) (models.FileAnalysis, error) {
		result, err := psr.ParseFile(path)
		if err != nil {
			return models.FileAnalysis{}, err
		}
		fa, err := ExtractFromResult(result)
		if err != nil {
			return models.FileAnalysis{}, err
		}
		return *fa, nil
	}, onProgress)

	// Path order makes resolution deterministic, including which file wins
	// a name collision in the definitions index.
	sort.Slice(analyses, func(i, j int) bool { return analyses[i].Path < analyses[j].Path })

	report := Resolve(analyses)
	if errs != nil {
		for _, fe := range errs.All() {
			report.ExcludedFiles = append(report.ExcludedFiles, fe.Path)
		}
		sort.Strings(report.ExcludedFiles)
	}

	return report, errs
}

// defEntry ties a definition to its file and its bitmap ID.
type defEntry struct {
	file string
	def  models.Definition
	id   uint32
}

// Resolve buckets every unreferenced definition across the analyses.
//
// Definitions get sequential IDs; a roaring bitmap marks the IDs with any
// evidence of use: a reference in the defining file, or an import of the
// name anywhere in the project. The survivors are bucketed by visibility:
// private symbols, exported or public-kind symbols, and the per-file rest.
//
// The name index keeps one definition per name, the one from the last file
// in path order. Two same-named exported symbols in different files share
// one import-evidence slot, so one of them can be masked. Collisions are
// surfaced as warnings rather than resolved.
func Resolve(analyses []models.FileAnalysis) *models.DeadCodeReport {
	report := &models.DeadCodeReport{
		FilesAnalyzed:  len(analyses),
		PrivateUnused:  []models.DeadCandidate{},
		ExportedUnused: []models.DeadCandidate{},
		SingleFileDead: map[string][]models.DeadCandidate{},
	}

	var entries []defEntry
	byName := make(map[string]uint32)
	imported := make(map[string]bool)

	var nextID uint32
	for _, fa := range analyses {
		for _, d := range fa.Definitions {
			if prev, ok := byName[d.Name]; ok && entries[prev].file != fa.Path {
				report.Warnings = append(report.Warnings, fmt.Sprintf(
					"%s is defined in both %s and %s, resolution keeps the latter",
					d.Name, entries[prev].file, fa.Path))
			}
			entries = append(entries, defEntry{file: fa.Path, def: d, id: nextID})
			byName[d.Name] = nextID
			nextID++
		}
		for name := range fa.Imports {
			imported[name] = true
		}
		for _, module := range fa.WildcardImports {
			report.Warnings = append(report.Warnings, fmt.Sprintf(
				"%s imports %s without named bindings, its symbols may be reported as unused",
				fa.Path, module))
		}
	}

	byFile := make(map[string][]defEntry)
	for _, e := range entries {
		byFile[e.file] = append(byFile[e.file], e)
	}

	referenced := roaring.New()

	for _, fa := range analyses {
		refs := make(map[string]bool, len(fa.References))
		for _, r := range fa.References {
			refs[r.Name] = true
		}
		for _, e := range byFile[fa.Path] {
			if refs[e.def.Name] {
				referenced.Add(e.id)
			}
		}
	}
	for name := range imported {
		if id, ok := byName[name]; ok {
			referenced.Add(id)
		}
	}

	for _, e := range entries {
		if referenced.Contains(e.id) {
			continue
		}
		// Imported somewhere but defined in a file we could not pair up;
		// the import alone is evidence of use.
		if imported[e.def.Name] {
			continue
		}

		c := candidate(e.file, e.def)
		switch {
		case e.def.IsPrivate || strings.HasPrefix(e.def.Name, "_"):
			report.PrivateUnused = append(report.PrivateUnused, c)
		case e.def.IsExported || publicKind(e.def.Kind):
			report.ExportedUnused = append(report.ExportedUnused, c)
		default:
			report.SingleFileDead[e.file] = append(report.SingleFileDead[e.file], c)
		}
	}

	return report
}

// publicKind reports whether a kind is reachable from outside the file
// even without an explicit export marker.
func publicKind(k models.DefKind) bool {
	return k == models.DefFunction || k == models.DefClass || k == models.DefConstant
}

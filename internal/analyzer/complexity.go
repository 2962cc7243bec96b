package analyzer

import (
	"context"
	"fmt"
	"sort"

	"github.com/bgaffney/scalpel/internal/fileproc"
	"github.com/bgaffney/scalpel/pkg/models"
	"github.com/bgaffney/scalpel/pkg/parser"
	"github.com/bgaffney/scalpel/pkg/profile"
	sitter "github.com/smacker/go-tree-sitter"
	"gonum.org/v1/gonum/stat"
)

// ComplexityAnalyzer computes cyclomatic and cognitive complexity, nesting
// depth, and parameter counts per function, then flags smells against a
// Thresholds record. Workers bounds project-analysis parallelism; zero
// selects the default pool size.
type ComplexityAnalyzer struct {
	parser     *parser.Parser
	thresholds models.Thresholds

	Workers int
}

// NewComplexityAnalyzer creates an analyzer with default thresholds.
func NewComplexityAnalyzer() *ComplexityAnalyzer {
	return NewComplexityAnalyzerWithThresholds(models.DefaultThresholds())
}

// NewComplexityAnalyzerWithThresholds creates an analyzer with explicit
// thresholds.
func NewComplexityAnalyzerWithThresholds(t models.Thresholds) *ComplexityAnalyzer {
	return &ComplexityAnalyzer{
		parser:     parser.New(),
		thresholds: t,
	}
}

// AnalyzeFile analyzes complexity for a single file.
func (a *ComplexityAnalyzer) AnalyzeFile(path string) (*models.FileMetrics, error) {
	return analyzeFileComplexity(a.parser, path, a.thresholds)
}

// AnalyzeSource analyzes complexity for in-memory source, mainly for tests
// and editor integrations.
func (a *ComplexityAnalyzer) AnalyzeSource(source []byte, lang parser.Language, path string) (*models.FileMetrics, error) {
	result, err := a.parser.Parse(source, lang, path)
	if err != nil {
		return nil, err
	}
	return complexityFromResult(result, a.thresholds)
}

// Close releases analyzer resources.
func (a *ComplexityAnalyzer) Close() {
	a.parser.Close()
}

func analyzeFileComplexity(psr *parser.Parser, path string, t models.Thresholds) (*models.FileMetrics, error) {
	result, err := psr.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return complexityFromResult(result, t)
}

func complexityFromResult(result *parser.ParseResult, t models.Thresholds) (*models.FileMetrics, error) {
	prof := profile.ForLanguage(result.Language)
	if prof == nil {
		return nil, fmt.Errorf("no profile for language %s", result.Language)
	}

	fm := &models.FileMetrics{
		Path:         result.Path,
		Language:     string(result.Language),
		Functions:    make([]models.FunctionMetrics, 0),
		TotalLines:   int(parser.EndLine(result.Tree.RootNode())),
		PartialParse: result.HasError,
	}

	for _, fn := range Functions(result, prof) {
		m := analyzeFunction(fn, result.Source, prof)
		m.DetectSmells(t)
		fm.Functions = append(fm.Functions, m)
		fm.TotalCyclomatic += m.Cyclomatic
		fm.TotalCognitive += m.Cognitive
	}

	if n := len(fm.Functions); n > 0 {
		fm.AvgCyclomatic = float64(fm.TotalCyclomatic) / float64(n)
		fm.AvgCognitive = float64(fm.TotalCognitive) / float64(n)
	}

	return fm, nil
}

// analyzeFunction computes the raw metrics for one function. A function
// without a body (an interface method, a forward declaration) keeps the
// cyclomatic floor of 1 and zeroes elsewhere.
func analyzeFunction(fn FunctionNode, source []byte, prof *profile.Profile) models.FunctionMetrics {
	m := models.FunctionMetrics{
		Name:       fn.Name,
		StartLine:  fn.StartLine,
		EndLine:    fn.EndLine,
		Cyclomatic: 1,
		LineCount:  int(fn.EndLine - fn.StartLine + 1),
		ParamCount: CountParams(fn, prof, source),
	}

	if fn.Body == nil {
		return m
	}

	m.Cyclomatic += countDecisionPoints(fn.Body, source, prof)
	m.Cognitive = cognitiveComplexity(fn.Body, source, prof, 0)
	m.MaxNesting = maxNesting(fn.Body, prof, 0)

	return m
}

// countDecisionPoints counts branching constructs plus logical operators in
// a subtree. Each logical-operator node contributes one point, so a chain
// of n operators nests into n counted nodes.
func countDecisionPoints(node *sitter.Node, source []byte, prof *profile.Profile) uint32 {
	var count uint32

	parser.WalkTyped(node, source, func(n *sitter.Node, kind string, src []byte) bool {
		if prof.DecisionKinds[kind] {
			count++
		}
		if prof.LogicalKinds[kind] && isLogicalOperator(n, src, prof) {
			count++
		}
		return true
	})

	return count
}

// isLogicalOperator reports whether a logical-kind node carries one of the
// profile's boolean operators. An empty operator set means the node kind is
// exclusively boolean (Python's boolean_operator) and always counts.
func isLogicalOperator(n *sitter.Node, source []byte, prof *profile.Profile) bool {
	if len(prof.LogicalOperators) == 0 {
		return true
	}
	return prof.LogicalOperators[parser.GetNodeText(n.ChildByFieldName("operator"), source)]
}

// cognitiveComplexity folds over a subtree threading the nesting level.
// Penalized kinds cost 1 plus the current level; flat kinds cost 1;
// logical operators cost 1 per occurrence. Only the profile's
// nesting-increment subset raises the level before descending, so an elif
// chain stays at its parent's level while a nested if pays for its depth.
func cognitiveComplexity(node *sitter.Node, source []byte, prof *profile.Profile, level int) uint32 {
	var c uint32

	for i := range int(node.ChildCount()) {
		child := node.Child(i)
		kind := child.Type()

		childLevel := level
		if prof.NestingIncrement[kind] {
			childLevel++
		}

		switch {
		case prof.CognitivePenalized[kind]:
			c += 1 + uint32(level)
		case prof.CognitiveFlat[kind]:
			c++
		case prof.LogicalKinds[kind] && isLogicalOperator(child, source, prof):
			c++
		}

		c += cognitiveComplexity(child, source, prof, childLevel)
	}

	return c
}

// maxNesting finds the deepest chain of depth-counted nodes under node.
// The starting node itself is not counted; a straight-line body reports 0.
func maxNesting(node *sitter.Node, prof *profile.Profile, depth int) int {
	maxDepth := depth

	for i := range int(node.ChildCount()) {
		child := node.Child(i)

		childDepth := depth
		if prof.DepthKinds[child.Type()] {
			childDepth++
		}

		if d := maxNesting(child, prof, childDepth); d > maxDepth {
			maxDepth = d
		}
	}

	return maxDepth
}

// AnalyzeProject analyzes all files in parallel.
func (a *ComplexityAnalyzer) AnalyzeProject(files []string) (*models.ComplexityAnalysis, *fileproc.FileErrors) {
	return a.AnalyzeProjectCtx(context.Background(), files, nil)
}

// AnalyzeProjectCtx analyzes files in parallel with cancellation and an
// optional progress callback. Files that fail to parse are reported in the
// returned errors and excluded from the analysis, never fatal to it.
func (a *ComplexityAnalyzer) AnalyzeProjectCtx(ctx context.Context, files []string, onProgress fileproc.ProgressFunc) (*models.ComplexityAnalysis, *fileproc.FileErrors) {
	t := a.thresholds
	results, errs := fileproc.MapCtx(ctx, files, a.Workers, func(psr *parser.Parser, path string) (models.FileMetrics, error) {
		fm, err := analyzeFileComplexity(psr, path, t)
		if err != nil {
			return models.FileMetrics{}, err
		}
		return *fm, nil
	}, onProgress)

	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })

	analysis := &models.ComplexityAnalysis{Files: results}
	analysis.Summary = summarize(results)

	return analysis, errs
}

func summarize(files []models.FileMetrics) models.ComplexitySummary {
	var s models.ComplexitySummary
	s.TotalFiles = len(files)

	var totalCyc, totalCog uint32
	var allCyc, allCog []float64

	for _, fm := range files {
		totalCyc += fm.TotalCyclomatic
		totalCog += fm.TotalCognitive
		s.TotalFunctions += len(fm.Functions)

		for _, fn := range fm.Functions {
			allCyc = append(allCyc, float64(fn.Cyclomatic))
			allCog = append(allCog, float64(fn.Cognitive))
			if fn.Cyclomatic > s.MaxCyclomatic {
				s.MaxCyclomatic = fn.Cyclomatic
			}
			if fn.Cognitive > s.MaxCognitive {
				s.MaxCognitive = fn.Cognitive
			}
			s.SmellCount += len(fn.Smells)
		}
	}

	if s.TotalFunctions == 0 {
		return s
	}

	s.AvgCyclomatic = float64(totalCyc) / float64(s.TotalFunctions)
	s.AvgCognitive = float64(totalCog) / float64(s.TotalFunctions)

	sort.Float64s(allCyc)
	sort.Float64s(allCog)
	s.P50Cyclomatic = stat.Quantile(0.50, stat.Empirical, allCyc, nil)
	s.P95Cyclomatic = stat.Quantile(0.95, stat.Empirical, allCyc, nil)
	s.P50Cognitive = stat.Quantile(0.50, stat.Empirical, allCog, nil)
	s.P95Cognitive = stat.Quantile(0.95, stat.Empirical, allCog, nil)

	return s
}

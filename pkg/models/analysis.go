package models

// DefKind classifies a definition extracted from a source file.
type DefKind string

const (
	DefFunction  DefKind = "function"
	DefMethod    DefKind = "method"
	DefClass     DefKind = "class"
	DefConstant  DefKind = "constant"
	DefType      DefKind = "type"
	DefInterface DefKind = "interface"
)

// RefContext classifies how a name is used at a reference site.
type RefContext string

const (
	RefCall           RefContext = "call"
	RefInstantiation  RefContext = "instantiation"
	RefAccess         RefContext = "access"
	RefTypeAnnotation RefContext = "type_annotation"
)

// Definition is a named declaration found in a file.
type Definition struct {
	Name        string  `json:"name"`
	Kind        DefKind `json:"kind"`
	Line        uint32  `json:"line"`
	IsExported  bool    `json:"is_exported"`
	IsPrivate   bool    `json:"is_private"`
	ParentScope string  `json:"parent_scope,omitempty"`
	ContextHash string  `json:"context_hash,omitempty"`
}

// Reference is a use of a name found in a file.
type Reference struct {
	Name    string     `json:"name"`
	Line    uint32     `json:"line"`
	Context RefContext `json:"context"`
}

// FileAnalysis is the per-file extraction result consumed by the resolver.
// Imports maps local binding name to source module or package path.
// WildcardImports records modules imported without explicit names, which
// makes reference resolution for their symbols unreliable.
type FileAnalysis struct {
	Path            string            `json:"path"`
	Language        string            `json:"language"`
	Definitions     []Definition      `json:"definitions"`
	References      []Reference       `json:"references"`
	Imports         map[string]string `json:"imports,omitempty"`
	WildcardImports []string          `json:"wildcard_imports,omitempty"`
	PartialParse    bool              `json:"partial_parse,omitempty"`
	Warnings        []string          `json:"warnings,omitempty"`
}

// DeadCandidate is a definition with no observed reference.
type DeadCandidate struct {
	File        string  `json:"file"`
	Name        string  `json:"name"`
	Kind        DefKind `json:"kind"`
	Line        uint32  `json:"line"`
	IsExported  bool    `json:"is_exported"`
	ContextHash string  `json:"context_hash,omitempty"`
}

// DeadCodeReport buckets unreferenced definitions by confidence.
// PrivateUnused holds private symbols never used in their own file, the
// highest-confidence bucket. ExportedUnused holds exported symbols with no
// reference anywhere, including import sites. SingleFileDead groups per-file
// candidates that survived cross-file resolution but are not exported.
type DeadCodeReport struct {
	FilesAnalyzed  int                        `json:"files_analyzed"`
	ExcludedFiles  []string                   `json:"excluded_files,omitempty"`
	PrivateUnused  []DeadCandidate            `json:"private_unused"`
	ExportedUnused []DeadCandidate            `json:"exported_unused"`
	SingleFileDead map[string][]DeadCandidate `json:"single_file_dead"`
	Warnings       []string                   `json:"warnings,omitempty"`
}

// TotalCandidates counts every candidate across the three buckets.
func (r *DeadCodeReport) TotalCandidates() int {
	n := len(r.PrivateUnused) + len(r.ExportedUnused)
	for _, cs := range r.SingleFileDead {
		n += len(cs)
	}
	return n
}

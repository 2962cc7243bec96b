// Package profile defines the per-language node-kind tables that drive the
// analyzers. A Profile is pure data: the complexity analyzer and the
// definition/reference extractor are single generic traversals, and adding
// a language means adding a profile here, not adding code paths there.
package profile

import "github.com/bgaffney/scalpel/pkg/parser"

// ImportStyle selects which import grammar a language uses.
type ImportStyle int

const (
	ImportsNone   ImportStyle = iota
	ImportsPython             // import x / from m import a, b as c
	ImportsEcma               // import { a as b } from "m"
	ImportsGo                 // import alias "path/to/pkg"
)

// Profile is the classification table for one grammar. All sets are keyed
// by tree-sitter node kind strings. Profiles are immutable after
// construction and safe to share across concurrent analyses.
type Profile struct {
	Language parser.Language

	// Complexity classification.
	DecisionKinds      map[string]bool // +1 cyclomatic per occurrence
	LogicalKinds       map[string]bool // nodes carrying boolean operators
	LogicalOperators   map[string]bool // operator tokens; empty means every LogicalKinds node counts
	CognitivePenalized map[string]bool // +1 plus current nesting level
	CognitiveFlat      map[string]bool // +1, no nesting penalty
	NestingIncrement   map[string]bool // raises the cognitive nesting level
	DepthKinds         map[string]bool // counted toward max nesting depth

	// Function discovery and parameter counting.
	FunctionKinds     map[string]bool
	ParamsField       string
	ParamKinds        map[string]bool
	GroupedParamNames bool            // a parameter node may bind several names (a, b int)
	ExcludedParams    map[string]bool // receiver-like names skipped in counts
	ArrowFunctionKind string          // kind of anonymous functions bound via declarators

	// Definition extraction.
	ClassKinds        map[string]bool
	InterfaceKinds    map[string]bool
	TypeAliasKinds    map[string]bool
	TypeSpecKind      string // Go-style type_spec carrying struct/interface types
	AssignmentKind    string // assignment nodes checked for constant definitions
	LexicalDeclKind   string // const/let declaration lists
	ConstSpecKind     string // dedicated constant declaration specs
	UppercaseConstant bool   // only ALL_CAPS assignment targets count as constants
	ExportWrapperKind string // wrapping construct that marks a definition exported
	AccessibilityKind string // explicit visibility modifier kind
	CaseExported      bool   // leading capital marks a name exported
	PrivatePrefix     string // leading-prefix privacy convention ("" when none)

	// Reference extraction.
	CallKinds          map[string]bool
	CallFunctionField  string
	MemberKinds        map[string]bool // member/attribute access inside callees
	MemberField        string          // field naming the accessed member
	MemberObjectField  string          // field naming the receiving object
	InstantiationKinds map[string]string
	TypeIdentifierKind string
	DefinitionParents  map[string]bool // identifier parents that are definition sites
	KeywordExclusions  map[string]bool // pseudo-identifiers never recorded as references

	ImportStyle ImportStyle
}

// ForLanguage returns the profile registered for a language tag, or nil
// when the language has no profile.
func ForLanguage(lang parser.Language) *Profile {
	switch lang {
	case parser.LangPython:
		return pythonProfile
	case parser.LangTypeScript:
		return typescriptProfile
	case parser.LangTSX:
		return tsxProfile
	case parser.LangJavaScript:
		return javascriptProfile
	case parser.LangGo:
		return goProfile
	default:
		return nil
	}
}

// Supported returns the languages that have registered profiles.
func Supported() []parser.Language {
	return []parser.Language{
		parser.LangPython,
		parser.LangTypeScript,
		parser.LangTSX,
		parser.LangJavaScript,
		parser.LangGo,
	}
}

// set builds a lookup set from kind strings.
func set(items ...string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, item := range items {
		m[item] = true
	}
	return m
}

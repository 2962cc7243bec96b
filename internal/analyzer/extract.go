package analyzer

import (
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bgaffney/scalpel/pkg/models"
	"github.com/bgaffney/scalpel/pkg/parser"
	"github.com/bgaffney/scalpel/pkg/profile"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/zeebo/blake3"
)

// Extractor collects definitions, references, and imports from a file.
// Its output feeds the dead-code resolver; it performs no resolution
// itself.
type Extractor struct {
	parser *parser.Parser
}

// NewExtractor creates an extractor with its own parser.
func NewExtractor() *Extractor {
	return &Extractor{parser: parser.New()}
}

// AnalyzeFile extracts definitions, references, and imports from a file.
func (e *Extractor) AnalyzeFile(path string) (*models.FileAnalysis, error) {
	result, err := e.parser.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return ExtractFromResult(result)
}

// AnalyzeSource extracts from in-memory source.
func (e *Extractor) AnalyzeSource(source []byte, lang parser.Language, path string) (*models.FileAnalysis, error) {
	result, err := e.parser.Parse(source, lang, path)
	if err != nil {
		return nil, err
	}
	return ExtractFromResult(result)
}

// Close releases extractor resources.
func (e *Extractor) Close() {
	e.parser.Close()
}

// ExtractFromResult runs all three extraction passes over a parse result.
func ExtractFromResult(result *parser.ParseResult) (*models.FileAnalysis, error) {
	prof := profile.ForLanguage(result.Language)
	if prof == nil {
		return nil, fmt.Errorf("no profile for language %s", result.Language)
	}

	fa := &models.FileAnalysis{
		Path:         result.Path,
		Language:     string(result.Language),
		Imports:      make(map[string]string),
		PartialParse: result.HasError,
	}
	if result.HasError {
		fa.Warnings = append(fa.Warnings, "syntax errors in tree, results may be incomplete")
	}

	root := result.Tree.RootNode()
	extractDefinitions(root, result.Source, prof, fa, "")
	extractReferences(root, result.Source, prof, fa)
	extractImports(root, result.Source, prof, fa)

	return fa, nil
}

// contextHash fingerprints a definition by its source text, so a candidate
// stays identifiable across runs even when surrounding lines shift.
func contextHash(text []byte) string {
	sum := blake3.Sum256(text)
	return hex.EncodeToString(sum[:8])
}

// isUpperName implements the ALL_CAPS constant convention.
func isUpperName(name string) bool {
	hasLetter := false
	for _, r := range name {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

func startsUpper(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}

// isExported applies the profile's export conventions to a definition node.
func isExported(n *sitter.Node, name string, prof *profile.Profile) bool {
	if prof.CaseExported {
		return startsUpper(name)
	}
	if prof.ExportWrapperKind == "" {
		return false
	}
	// Only the directly wrapped declaration is exported; a method inside
	// an exported class is not itself an export.
	p := n.Parent()
	return p != nil && p.Type() == prof.ExportWrapperKind
}

// isPrivate applies the profile's privacy conventions.
func isPrivate(n *sitter.Node, name string, source []byte, prof *profile.Profile) bool {
	if prof.CaseExported {
		return !startsUpper(name)
	}
	if prof.PrivatePrefix != "" && strings.HasPrefix(name, prof.PrivatePrefix) {
		return true
	}
	if prof.AccessibilityKind != "" {
		for i := range int(n.ChildCount()) {
			child := n.Child(i)
			if child.Type() == prof.AccessibilityKind {
				return parser.GetNodeText(child, source) == "private"
			}
		}
	}
	return false
}

func addDefinition(fa *models.FileAnalysis, n *sitter.Node, source []byte, name string, kind models.DefKind, exported, private bool, parentScope string) {
	fa.Definitions = append(fa.Definitions, models.Definition{
		Name:        name,
		Kind:        kind,
		Line:        parser.StartLine(n),
		IsExported:  exported,
		IsPrivate:   private,
		ParentScope: parentScope,
		ContextHash: contextHash([]byte(parser.GetNodeText(n, source))),
	})
}

// extractDefinitions walks the tree collecting named definitions. Class
// bodies are descended exactly once with the class name as parent scope, so
// methods are attributed and never re-collected by the outer walk.
func extractDefinitions(n *sitter.Node, source []byte, prof *profile.Profile, fa *models.FileAnalysis, parentScope string) {
	kind := n.Type()

	switch {
	case prof.FunctionKinds[kind]:
		if name := parser.GetNodeText(n.ChildByFieldName("name"), source); name != "" {
			defKind := models.DefFunction
			if parentScope != "" {
				defKind = models.DefMethod
			}
			addDefinition(fa, n, source, name, defKind,
				isExported(n, name, prof), isPrivate(n, name, source, prof), parentScope)
		}

	case prof.ClassKinds[kind]:
		name := parser.GetNodeText(n.ChildByFieldName("name"), source)
		if name == "" {
			break
		}
		addDefinition(fa, n, source, name, models.DefClass,
			isExported(n, name, prof), isPrivate(n, name, source, prof), parentScope)
		if body := n.ChildByFieldName("body"); body != nil {
			for i := range int(body.ChildCount()) {
				extractDefinitions(body.Child(i), source, prof, fa, name)
			}
		}
		return

	case prof.InterfaceKinds[kind]:
		if name := parser.GetNodeText(n.ChildByFieldName("name"), source); name != "" {
			addDefinition(fa, n, source, name, models.DefInterface,
				isExported(n, name, prof), isPrivate(n, name, source, prof), parentScope)
		}

	case prof.TypeAliasKinds[kind]:
		if name := parser.GetNodeText(n.ChildByFieldName("name"), source); name != "" {
			addDefinition(fa, n, source, name, models.DefType,
				isExported(n, name, prof), isPrivate(n, name, source, prof), parentScope)
		}

	case prof.TypeSpecKind != "" && kind == prof.TypeSpecKind:
		name := parser.GetNodeText(n.ChildByFieldName("name"), source)
		if name == "" {
			break
		}
		defKind := models.DefType
		if t := n.ChildByFieldName("type"); t != nil && t.Type() == "interface_type" {
			defKind = models.DefInterface
		}
		addDefinition(fa, n, source, name, defKind,
			isExported(n, name, prof), isPrivate(n, name, source, prof), parentScope)

	case prof.ConstSpecKind != "" && kind == prof.ConstSpecKind:
		if name := parser.GetNodeText(n.ChildByFieldName("name"), source); name != "" {
			addDefinition(fa, n, source, name, models.DefConstant,
				isExported(n, name, prof), isPrivate(n, name, source, prof), parentScope)
		}

	case prof.AssignmentKind != "" && kind == prof.AssignmentKind:
		left := n.ChildByFieldName("left")
		if left == nil || left.Type() != "identifier" {
			break
		}
		name := parser.GetNodeText(left, source)
		if prof.UppercaseConstant && !isUpperName(name) {
			break
		}
		addDefinition(fa, n, source, name, models.DefConstant,
			isExported(n, name, prof), isPrivate(n, name, source, prof), parentScope)

	case prof.LexicalDeclKind != "" && kind == prof.LexicalDeclKind:
		for i := range int(n.ChildCount()) {
			decl := n.Child(i)
			if decl.Type() != "variable_declarator" {
				continue
			}
			nameNode := decl.ChildByFieldName("name")
			if nameNode == nil || nameNode.Type() != "identifier" {
				continue
			}
			name := parser.GetNodeText(nameNode, source)
			defKind := models.DefConstant
			if v := decl.ChildByFieldName("value"); v != nil && v.Type() == prof.ArrowFunctionKind {
				defKind = models.DefFunction
			}
			addDefinition(fa, n, source, name, defKind,
				isExported(n, name, prof), isPrivate(n, name, source, prof), parentScope)
		}
	}

	for i := range int(n.ChildCount()) {
		extractDefinitions(n.Child(i), source, prof, fa, parentScope)
	}
}

func addReference(fa *models.FileAnalysis, name string, line uint32, ctx models.RefContext) {
	if name == "" {
		return
	}
	fa.References = append(fa.References, models.Reference{Name: name, Line: line, Context: ctx})
}

// extractReferences walks the tree collecting use sites. Identifiers whose
// parent is a definition site, and profile-listed pseudo-identifiers, are
// skipped.
func extractReferences(n *sitter.Node, source []byte, prof *profile.Profile, fa *models.FileAnalysis) {
	kind := n.Type()
	line := parser.StartLine(n)

	switch {
	case prof.CallKinds[kind]:
		fn := n.ChildByFieldName(prof.CallFunctionField)
		if fn == nil {
			break
		}
		switch {
		case fn.Type() == "identifier":
			addReference(fa, parser.GetNodeText(fn, source), line, models.RefCall)
		case prof.MemberKinds[fn.Type()]:
			addReference(fa, parser.GetNodeText(fn.ChildByFieldName(prof.MemberField), source), line, models.RefCall)
			if obj := fn.ChildByFieldName(prof.MemberObjectField); obj != nil && obj.Type() == "identifier" {
				addReference(fa, parser.GetNodeText(obj, source), line, models.RefAccess)
			}
		}

	case prof.TypeIdentifierKind != "" && kind == prof.TypeIdentifierKind:
		addReference(fa, parser.GetNodeText(n, source), line, models.RefTypeAnnotation)

	case kind == "identifier":
		parent := n.Parent()
		if parent != nil && prof.DefinitionParents[parent.Type()] {
			break
		}
		name := parser.GetNodeText(n, source)
		if prof.KeywordExclusions[name] {
			break
		}
		addReference(fa, name, line, models.RefAccess)
	}

	if field, ok := prof.InstantiationKinds[kind]; ok {
		target := n.ChildByFieldName(field)
		if target != nil && (target.Type() == "identifier" || target.Type() == prof.TypeIdentifierKind) {
			addReference(fa, parser.GetNodeText(target, source), line, models.RefInstantiation)
		}
	}

	for i := range int(n.ChildCount()) {
		extractReferences(n.Child(i), source, prof, fa)
	}
}

// extractImports dispatches to the grammar family's import shape.
func extractImports(n *sitter.Node, source []byte, prof *profile.Profile, fa *models.FileAnalysis) {
	switch prof.ImportStyle {
	case profile.ImportsPython:
		extractPythonImports(n, source, fa)
	case profile.ImportsEcma:
		extractEcmaImports(n, source, fa)
	case profile.ImportsGo:
		extractGoImports(n, source, fa)
	}
}

func extractPythonImports(n *sitter.Node, source []byte, fa *models.FileAnalysis) {
	switch n.Type() {
	case "import_from_statement":
		moduleNode := n.ChildByFieldName("module_name")
		module := parser.GetNodeText(moduleNode, source)

		for i := range int(n.ChildCount()) {
			child := n.Child(i)
			switch child.Type() {
			case "dotted_name":
				if moduleNode != nil && child.Equal(moduleNode) {
					continue
				}
				fa.Imports[parser.GetNodeText(child, source)] = module
			case "aliased_import":
				// The alias is the local binding; fall back to the
				// imported name when none is given.
				name := parser.GetNodeText(child.ChildByFieldName("alias"), source)
				if name == "" {
					name = parser.GetNodeText(child.ChildByFieldName("name"), source)
				}
				if name != "" {
					fa.Imports[name] = module
				}
			case "wildcard_import":
				fa.WildcardImports = append(fa.WildcardImports, module)
				fa.Warnings = append(fa.Warnings,
					fmt.Sprintf("wildcard import from %q, references to its symbols cannot be resolved", module))
			}
		}

	case "import_statement":
		for i := range int(n.ChildCount()) {
			child := n.Child(i)
			switch child.Type() {
			case "dotted_name":
				name := parser.GetNodeText(child, source)
				fa.Imports[name] = name
			case "aliased_import":
				alias := parser.GetNodeText(child.ChildByFieldName("alias"), source)
				module := parser.GetNodeText(child.ChildByFieldName("name"), source)
				if alias != "" {
					fa.Imports[alias] = module
				}
			}
		}
	}

	for i := range int(n.ChildCount()) {
		extractPythonImports(n.Child(i), source, fa)
	}
}

func extractEcmaImports(n *sitter.Node, source []byte, fa *models.FileAnalysis) {
	if n.Type() == "import_statement" {
		module := strings.Trim(parser.GetNodeText(n.ChildByFieldName("source"), source), `"'`)

		named := false
		for i := range int(n.ChildCount()) {
			child := n.Child(i)
			if child.Type() != "import_clause" {
				continue
			}
			named = collectEcmaImportNames(child, source, fa, module) || named
		}
		// import "./side-effect" binds nothing; its module's symbols stay
		// unresolvable.
		if !named && module != "" {
			fa.WildcardImports = append(fa.WildcardImports, module)
		}
	}

	for i := range int(n.ChildCount()) {
		extractEcmaImports(n.Child(i), source, fa)
	}
}

func collectEcmaImportNames(n *sitter.Node, source []byte, fa *models.FileAnalysis, module string) bool {
	found := false

	switch n.Type() {
	case "import_specifier":
		name := parser.GetNodeText(n.ChildByFieldName("alias"), source)
		if name == "" {
			name = parser.GetNodeText(n.ChildByFieldName("name"), source)
		}
		if name != "" {
			fa.Imports[name] = module
			found = true
		}
		return found
	case "identifier":
		// Default import binding.
		fa.Imports[parser.GetNodeText(n, source)] = module
		found = true
	case "namespace_import":
		for i := range int(n.ChildCount()) {
			child := n.Child(i)
			if child.Type() == "identifier" {
				fa.Imports[parser.GetNodeText(child, source)] = module
				found = true
			}
		}
		return found
	}

	for i := range int(n.ChildCount()) {
		found = collectEcmaImportNames(n.Child(i), source, fa, module) || found
	}
	return found
}

func extractGoImports(n *sitter.Node, source []byte, fa *models.FileAnalysis) {
	if n.Type() == "import_spec" {
		module := strings.Trim(parser.GetNodeText(n.ChildByFieldName("path"), source), `"`)
		alias := parser.GetNodeText(n.ChildByFieldName("name"), source)

		switch alias {
		case ".":
			fa.WildcardImports = append(fa.WildcardImports, module)
			fa.Warnings = append(fa.Warnings,
				fmt.Sprintf("dot import of %q, references to its symbols cannot be resolved", module))
		case "_":
			// Side-effect import, no binding.
		case "":
			if idx := strings.LastIndex(module, "/"); idx >= 0 {
				fa.Imports[module[idx+1:]] = module
			} else if module != "" {
				fa.Imports[module] = module
			}
		default:
			fa.Imports[alias] = module
		}
	}

	for i := range int(n.ChildCount()) {
		extractGoImports(n.Child(i), source, fa)
	}
}

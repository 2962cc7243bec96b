package analyzer

import (
	"github.com/bgaffney/scalpel/pkg/parser"
	"github.com/bgaffney/scalpel/pkg/profile"
	sitter "github.com/smacker/go-tree-sitter"
)

// FunctionNode is a discovered function with its interesting subtrees
// pre-resolved. Body and Params may be nil for declarations without them.
type FunctionNode struct {
	Name      string
	Node      *sitter.Node
	Body      *sitter.Node
	Params    *sitter.Node
	StartLine uint32
	EndLine   uint32
}

// Functions discovers every named function in a parse result. Nameless
// function nodes are skipped. Anonymous functions bound through a variable
// declarator take the declarator's name.
func Functions(result *parser.ParseResult, prof *profile.Profile) []FunctionNode {
	var fns []FunctionNode

	parser.WalkTyped(result.Tree.RootNode(), result.Source, func(n *sitter.Node, kind string, src []byte) bool {
		if prof.FunctionKinds[kind] {
			if fn, ok := makeFunction(n, src); ok {
				fns = append(fns, fn)
			}
			return true
		}

		if prof.ArrowFunctionKind != "" && kind == "variable_declarator" {
			value := n.ChildByFieldName("value")
			if value != nil && value.Type() == prof.ArrowFunctionKind {
				name := parser.GetNodeText(n.ChildByFieldName("name"), src)
				if name != "" {
					fns = append(fns, FunctionNode{
						Name:      name,
						Node:      value,
						Body:      value.ChildByFieldName("body"),
						Params:    arrowParams(value),
						StartLine: parser.StartLine(value),
						EndLine:   parser.EndLine(value),
					})
				}
				return false
			}
		}

		return true
	})

	return fns
}

func makeFunction(n *sitter.Node, src []byte) (FunctionNode, bool) {
	name := parser.GetNodeText(n.ChildByFieldName("name"), src)
	if name == "" {
		return FunctionNode{}, false
	}
	return FunctionNode{
		Name:      name,
		Node:      n,
		Body:      n.ChildByFieldName("body"),
		Params:    n.ChildByFieldName("parameters"),
		StartLine: parser.StartLine(n),
		EndLine:   parser.EndLine(n),
	}, true
}

// arrowParams handles the single-identifier arrow form, where the grammar
// uses a "parameter" field instead of a parenthesized list.
func arrowParams(n *sitter.Node) *sitter.Node {
	if params := n.ChildByFieldName("parameters"); params != nil {
		return params
	}
	return n.ChildByFieldName("parameter")
}

// CountParams counts declared parameters per the profile's parameter kinds,
// skipping receiver-like names the profile excludes.
func CountParams(fn FunctionNode, prof *profile.Profile, source []byte) int {
	if fn.Params == nil {
		return 0
	}

	// Bare identifier as the whole parameter clause (x => x * 2).
	if fn.Params.Type() == "identifier" {
		return 1
	}

	count := 0
	for i := range int(fn.Params.ChildCount()) {
		child := fn.Params.Child(i)
		if !prof.ParamKinds[child.Type()] {
			continue
		}
		if len(prof.ExcludedParams) > 0 && prof.ExcludedParams[paramName(child, source)] {
			continue
		}
		if prof.GroupedParamNames {
			count += groupedNames(child)
			continue
		}
		count++
	}
	return count
}

// groupedNames counts the identifiers bound by one parameter node, so a
// declaration like (a, b int) contributes two. An unnamed parameter still
// counts once.
func groupedNames(n *sitter.Node) int {
	names := 0
	for i := range int(n.ChildCount()) {
		if n.Child(i).Type() == "identifier" {
			names++
		}
	}
	if names == 0 {
		return 1
	}
	return names
}

// paramName resolves the bound identifier inside a parameter node.
func paramName(n *sitter.Node, source []byte) string {
	if n.Type() == "identifier" {
		return parser.GetNodeText(n, source)
	}
	for i := range int(n.ChildCount()) {
		child := n.Child(i)
		if child.Type() == "identifier" {
			return parser.GetNodeText(child, source)
		}
	}
	return ""
}

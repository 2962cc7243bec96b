package profile

import "github.com/bgaffney/scalpel/pkg/parser"

// goProfile classifies the tree-sitter-go grammar. Visibility follows the
// export-by-capitalization rule rather than a prefix convention, and
// every const_spec is a constant definition regardless of casing.
var goProfile = &Profile{
	Language: parser.LangGo,

	DecisionKinds: set(
		"if_statement",
		"for_statement",
		"expression_switch_statement",
		"type_switch_statement",
		"select_statement",
	),
	LogicalKinds:     set("binary_expression"),
	LogicalOperators: set("&&", "||"),

	CognitivePenalized: set(
		"if_statement",
		"for_statement",
		"expression_switch_statement",
		"type_switch_statement",
		"select_statement",
	),
	CognitiveFlat: set(
		"break_statement",
		"continue_statement",
		"goto_statement",
	),
	NestingIncrement: set(
		"if_statement",
		"for_statement",
		"expression_switch_statement",
		"type_switch_statement",
		"select_statement",
	),
	DepthKinds: set(
		"if_statement",
		"for_statement",
		"expression_switch_statement",
		"type_switch_statement",
		"select_statement",
		"func_literal",
		"function_declaration",
		"method_declaration",
	),

	FunctionKinds: set("function_declaration", "method_declaration"),
	ParamsField:   "parameters",
	ParamKinds: set(
		"parameter_declaration",
		"variadic_parameter_declaration",
	),
	GroupedParamNames: true,

	TypeSpecKind:  "type_spec",
	ConstSpecKind: "const_spec",
	CaseExported:  true,

	CallKinds:          set("call_expression"),
	CallFunctionField:  "function",
	MemberKinds:        set("selector_expression"),
	MemberField:        "field",
	MemberObjectField:  "operand",
	InstantiationKinds: map[string]string{"composite_literal": "type"},
	TypeIdentifierKind: "type_identifier",
	DefinitionParents: set(
		"function_declaration",
		"method_declaration",
		"type_spec",
		"const_spec",
		"var_spec",
		"parameter_declaration",
		"variadic_parameter_declaration",
		"field_declaration",
		"import_spec",
		"package_clause",
		"keyed_element",
		"label_name",
	),
	KeywordExclusions: set("_", "iota", "nil", "true", "false"),

	ImportStyle: ImportsGo,
}

package profile

import "github.com/bgaffney/scalpel/pkg/parser"

// The TypeScript, TSX, and JavaScript grammars share node kinds for
// everything this tool classifies; the three profiles differ only in
// language tag. Type-only kinds (interfaces, type aliases, type
// identifiers) simply never occur in JavaScript trees.

func ecmaProfile(lang parser.Language) *Profile {
	return &Profile{
		Language: lang,

		DecisionKinds: set(
			"if_statement",
			"for_statement",
			"for_in_statement",
			"while_statement",
			"do_statement",
			"switch_case",
			"catch_clause",
			"ternary_expression",
		),
		LogicalKinds:     set("binary_expression"),
		LogicalOperators: set("&&", "||"),

		CognitivePenalized: set(
			"if_statement",
			"for_statement",
			"for_in_statement",
			"while_statement",
			"do_statement",
			"catch_clause",
			"ternary_expression",
		),
		CognitiveFlat: set("else_clause", "switch_case"),
		NestingIncrement: set(
			"if_statement",
			"for_statement",
			"for_in_statement",
			"while_statement",
			"do_statement",
			"try_statement",
			"switch_statement",
		),
		DepthKinds: set(
			"if_statement",
			"for_statement",
			"for_in_statement",
			"while_statement",
			"do_statement",
			"try_statement",
			"switch_statement",
			"function_declaration",
			"method_definition",
			"arrow_function",
			"class_declaration",
		),

		FunctionKinds: set(
			"function_declaration",
			"generator_function_declaration",
			"method_definition",
		),
		ParamsField: "parameters",
		ParamKinds: set(
			"required_parameter",
			"optional_parameter",
			"rest_parameter",
			"identifier",
		),
		ArrowFunctionKind: "arrow_function",

		ClassKinds:        set("class_declaration"),
		InterfaceKinds:    set("interface_declaration"),
		TypeAliasKinds:    set("type_alias_declaration"),
		LexicalDeclKind:   "lexical_declaration",
		ExportWrapperKind: "export_statement",
		AccessibilityKind: "accessibility_modifier",
		PrivatePrefix:     "_",

		CallKinds:          set("call_expression"),
		CallFunctionField:  "function",
		MemberKinds:        set("member_expression"),
		MemberField:        "property",
		MemberObjectField:  "object",
		InstantiationKinds: map[string]string{"new_expression": "constructor"},
		TypeIdentifierKind: "type_identifier",
		DefinitionParents: set(
			"function_declaration",
			"generator_function_declaration",
			"class_declaration",
			"variable_declarator",
			"import_specifier",
			"namespace_import",
			"type_alias_declaration",
			"interface_declaration",
			"method_definition",
			"formal_parameters",
			"required_parameter",
			"optional_parameter",
			"rest_parameter",
		),
		KeywordExclusions: set(
			"undefined", "null", "true", "false",
			"this", "super", "console", "process",
			"require", "module", "exports",
		),

		ImportStyle: ImportsEcma,
	}
}

var (
	typescriptProfile = ecmaProfile(parser.LangTypeScript)
	tsxProfile        = ecmaProfile(parser.LangTSX)
	javascriptProfile = ecmaProfile(parser.LangJavaScript)
)

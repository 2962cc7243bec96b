package profile

import "github.com/bgaffney/scalpel/pkg/parser"

// pythonProfile classifies the tree-sitter-python grammar.
//
// Constants use the uppercase naming heuristic: an assignment whose target
// is written ALL_CAPS is recorded as a constant definition. Mixed-case
// constants are misclassified as plain assignments; this is a documented
// limitation of the convention, not a parse defect.
var pythonProfile = &Profile{
	Language: parser.LangPython,

	DecisionKinds: set(
		"if_statement",
		"elif_clause",
		"for_statement",
		"while_statement",
		"except_clause",
		"with_statement",
		"conditional_expression",
		"list_comprehension",
		"dictionary_comprehension",
		"set_comprehension",
		"generator_expression",
	),
	LogicalKinds:     set("boolean_operator"),
	LogicalOperators: nil, // "and"/"or" are the only operators the kind carries

	CognitivePenalized: set(
		"if_statement",
		"elif_clause",
		"for_statement",
		"while_statement",
		"except_clause",
		"conditional_expression",
	),
	CognitiveFlat: set("else_clause"),
	NestingIncrement: set(
		"if_statement",
		"for_statement",
		"while_statement",
		"try_statement",
		"with_statement",
	),
	DepthKinds: set(
		"if_statement",
		"for_statement",
		"while_statement",
		"try_statement",
		"with_statement",
		"function_definition",
		"class_definition",
	),

	FunctionKinds: set("function_definition"),
	ParamsField:   "parameters",
	ParamKinds: set(
		"identifier",
		"typed_parameter",
		"default_parameter",
		"typed_default_parameter",
		"list_splat_pattern",
		"dictionary_splat_pattern",
	),
	ExcludedParams: set("self", "cls"),

	ClassKinds:        set("class_definition"),
	AssignmentKind:    "assignment",
	UppercaseConstant: true,
	PrivatePrefix:     "_",

	CallKinds:         set("call"),
	CallFunctionField: "function",
	MemberKinds:       set("attribute"),
	MemberField:       "attribute",
	MemberObjectField: "object",
	DefinitionParents: set(
		"function_definition",
		"class_definition",
		"import_from_statement",
		"import_statement",
		"aliased_import",
		"dotted_name",
		"assignment",
		"parameters",
		"typed_parameter",
		"default_parameter",
		"typed_default_parameter",
		"keyword_argument",
	),
	KeywordExclusions: set("None", "True", "False", "self", "cls"),

	ImportStyle: ImportsPython,
}

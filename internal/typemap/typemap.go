// Package typemap converts native C++ type spellings into the small type
// vocabulary used throughout the generated documentation.
package typemap

import "strings"

// direct maps exact C++ spellings to their documentation type. Spellings not
// listed here fall through to the wrapper handling in Lua.
var direct = map[string]string{
	"bool":        "boolean",
	"int":         "integer",
	"int64_t":     "integer",
	"uint64_t":    "integer",
	"size_t":      "integer",
	"double":      "number",
	"float":       "number",
	"std::string": "string",
	"sol::table":  "table",
	"sol::object": "any",
	"void":        "nil",
	"HexAddress":  "HexAddress",
}

// Lua maps a C++ type spelling to a Lua-facing type string. The function is
// total: spellings it does not recognize are returned unchanged.
func Lua(cppType string) string {
	t := strings.TrimSpace(cppType)

	if mapped, ok := direct[t]; ok {
		return mapped
	}

	if inner, ok := unwrap(t, "std::optional<"); ok {
		return Lua(inner) + "|nil"
	}
	if inner, ok := unwrap(t, "Ref<"); ok {
		return inner
	}
	if strings.Contains(t, "sol::table") {
		return "table"
	}
	if strings.Contains(t, "std::tuple") {
		return "multiple"
	}

	return t
}

// unwrap strips a generic wrapper prefix and its closing '>'.
func unwrap(t, prefix string) (string, bool) {
	if !strings.HasPrefix(t, prefix) || !strings.HasSuffix(t, ">") {
		return "", false
	}
	return strings.TrimSpace(t[len(prefix) : len(t)-1]), true
}

// MetatableNames maps *_METATABLE constant spellings used by the bindings to
// the display name each usertype is documented under. New constants belong
// here, not in the extraction logic.
var MetatableNames = map[string]string{
	"BINARYVIEW_METATABLE":       "BinaryView",
	"FUNCTION_METATABLE":         "Function",
	"BASICBLOCK_METATABLE":       "BasicBlock",
	"SECTION_METATABLE":          "Section",
	"SYMBOL_METATABLE":           "Symbol",
	"HEXADDRESS_METATABLE":       "HexAddress",
	"SELECTION_METATABLE":        "Selection",
	"INSTRUCTION_METATABLE":      "Instruction",
	"VARIABLE_METATABLE":         "Variable",
	"DATAVARIABLE_METATABLE":     "DataVariable",
	"TYPE_METATABLE":             "Type",
	"TAG_METATABLE":              "Tag",
	"TAGTYPE_METATABLE":          "TagType",
	"FLOWGRAPH_METATABLE":        "FlowGraph",
	"FLOWGRAPHNODE_METATABLE":    "FlowGraphNode",
	"LLIL_FUNCTION_METATABLE":    "LowLevelILFunction",
	"LLIL_INSTRUCTION_METATABLE": "LowLevelILInstruction",
	"MLIL_FUNCTION_METATABLE":    "MediumLevelILFunction",
	"MLIL_INSTRUCTION_METATABLE": "MediumLevelILInstruction",
	"HLIL_FUNCTION_METATABLE":    "HighLevelILFunction",
	"HLIL_INSTRUCTION_METATABLE": "HighLevelILInstruction",
}

// ScopeFromMetatable resolves a metatable constant to its display name,
// title-casing the constant stem when it is not in the lookup table.
func ScopeFromMetatable(constant string) string {
	if name, ok := MetatableNames[constant]; ok {
		return name
	}
	stem := strings.TrimSuffix(constant, "_METATABLE")
	return titleCase(stem)
}

// titleCase lowercases a constant stem and capitalizes the first letter of
// each underscore-separated word, mirroring Python's str.title().
func titleCase(s string) string {
	words := strings.Split(strings.ToLower(s), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, "_")
}

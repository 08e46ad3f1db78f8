package render

import (
	"fmt"
	"strings"

	"github.com/alecnunn/soldoc/internal/docmodel"
)

// magicVariables is the fixed reference table appended to the API reference.
var magicVariables = []string{
	"| Variable | Type | Description |",
	"|----------|------|-------------|",
	"| `bv` | BinaryView | Current binary view instance |",
	"| `current_function` | Function | Currently selected function (may be nil) |",
	"| `current_address` | HexAddress | Current address in the UI |",
	"| `here` | HexAddress | Alias for current_address |",
	"| `current_selection` | Selection | Currently selected range (may be nil) |",
}

// APIReference renders the core API reference: title, summary counts, table
// of contents in document order, one section per class, and the magic
// variables table.
func APIReference(doc *docmodel.Document) string {
	lines := []string{
		"# Binary Ninja Lua API Reference",
		"",
		"*Generated from API definitions*",
		"",
		summaryCounts("Classes", doc),
		"",
		"## Table of Contents",
		"",
	}

	for _, class := range doc.Classes {
		lines = append(lines, tocEntry(class.Name))
	}
	lines = append(lines,
		"- [Magic Variables](#magic-variables)",
		"",
		"---",
		"",
	)

	for i := range doc.Classes {
		lines = append(lines, classSection(&doc.Classes[i])...)
	}

	lines = append(lines,
		"## Magic Variables",
		"",
		"These variables are automatically available in the Lua scripting environment:",
		"",
	)
	lines = append(lines, magicVariables...)
	lines = append(lines, "")

	return strings.Join(lines, "\n")
}

// ExtensionsReference renders the extension-module reference. Extension
// method entries carry Scope:name keys and usually a full signature, so the
// headings use the signature form.
func ExtensionsReference(doc *docmodel.Document) string {
	lines := []string{
		"# Binary Ninja Lua API Extensions",
		"",
		"*Auto-generated from Lua extension source code*",
		"",
		summaryCounts("Extension Modules", doc),
		"",
		"## Overview",
		"",
		"This document covers the optional Lua API extensions that provide idiomatic",
		"Lua patterns for Binary Ninja analysis. They are loaded automatically when",
		"available and extend the core bindings.",
		"",
		"## Table of Contents",
		"",
	}

	for _, class := range doc.Classes {
		lines = append(lines, tocEntry(class.Name))
	}
	lines = append(lines, "", "---", "")

	for i := range doc.Classes {
		class := &doc.Classes[i]
		lines = append(lines,
			fmt.Sprintf("## %s", class.Name),
			"",
			fmt.Sprintf("*%s*", orNoDescription(class.Description)),
			"",
		)
		if class.Source != "" {
			lines = append(lines, fmt.Sprintf("**Source:** `%s`", class.Source), "")
		}
		if len(class.Methods) > 0 {
			lines = append(lines, "### Methods", "")
			for j := range class.Methods {
				lines = append(lines, extensionMethod(&class.Methods[j])...)
			}
		}
		lines = append(lines, "---", "")
	}

	return strings.Join(lines, "\n")
}

func classSection(class *docmodel.Class) []string {
	lines := []string{
		fmt.Sprintf("## %s", class.Name),
		"",
		fmt.Sprintf("*%s*", orNoDescription(class.Description)),
		"",
	}

	if len(class.Properties) > 0 {
		lines = append(lines, "### Properties", "")
		for i := range class.Properties {
			p := &class.Properties[i]
			typ := p.Type
			if typ == "" {
				typ = "any"
			}
			lines = append(lines,
				fmt.Sprintf("#### `%s.%s` -> `%s`", class.Name, p.Name, typ),
				"",
				p.Description,
			)
			if len(p.Aliases) > 0 {
				lines = append(lines, fmt.Sprintf("\n**Aliases:** `%s`", strings.Join(p.Aliases, ", ")))
			}
			lines = append(lines, "")
			lines = append(lines, exampleFence(p.Example)...)
		}
	}

	if len(class.Methods) > 0 {
		lines = append(lines, "### Methods", "")
		for i := range class.Methods {
			m := &class.Methods[i]
			returnInfo := ""
			if m.Returns != "" {
				returnInfo = fmt.Sprintf(" -> `%s`", m.Returns)
			}
			lines = append(lines,
				fmt.Sprintf("#### `%s:%s(...)`%s", class.Name, m.Name, returnInfo),
				"",
				m.Description,
				"",
			)
			lines = append(lines, paramList(m.Params)...)
			if m.Returns != "" && m.ReturnDescription != "" {
				lines = append(lines,
					"**Returns:**",
					fmt.Sprintf("`%s` - %s", m.Returns, m.ReturnDescription),
					"",
				)
			}
			lines = append(lines, exampleFence(m.Example)...)
		}
	}

	lines = append(lines, "---", "")
	return lines
}

func extensionMethod(m *docmodel.Entry) []string {
	signature := m.Signature
	if signature == "" {
		signature = fmt.Sprintf("%s()", m.Name)
	}
	returnInfo := ""
	if m.Returns != "" {
		returnInfo = fmt.Sprintf(" -> `%s`", m.Returns)
	}

	lines := []string{
		fmt.Sprintf("#### `%s`%s", signature, returnInfo),
		"",
		m.Description,
		"",
	}
	lines = append(lines, paramList(m.Params)...)
	if m.Returns != "" && m.ReturnDescription != "" {
		lines = append(lines,
			"**Returns:**",
			fmt.Sprintf("`%s` - %s", m.Returns, m.ReturnDescription),
			"",
		)
	}
	lines = append(lines, exampleFence(m.Example)...)
	return lines
}

func paramList(params []docmodel.Param) []string {
	if len(params) == 0 {
		return nil
	}
	lines := []string{"**Parameters:**"}
	for _, p := range params {
		typ := p.Type
		if typ == "" {
			typ = "any"
		}
		lines = append(lines, fmt.Sprintf("- `%s` (%s) - %s", p.Name, typ, p.Description))
	}
	lines = append(lines, "")
	return lines
}

func exampleFence(example string) []string {
	if example == "" {
		return nil
	}
	return []string{
		"**Example:**",
		"```lua",
		strings.TrimSpace(example),
		"```",
		"",
	}
}

func summaryCounts(noun string, doc *docmodel.Document) string {
	methods := 0
	for _, class := range doc.Classes {
		methods += len(class.Methods)
	}
	return fmt.Sprintf("**%s:** %d | **Methods:** %d", noun, len(doc.Classes), methods)
}

func tocEntry(name string) string {
	return fmt.Sprintf("- [%s](#%s)", name, strings.ToLower(name))
}

func orNoDescription(desc string) string {
	if desc == "" {
		return "No description available."
	}
	return desc
}

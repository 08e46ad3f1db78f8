package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alecnunn/soldoc/internal/docmodel"
)

func sampleDocument() *docmodel.Document {
	return &docmodel.Document{
		Classes: []docmodel.Class{
			{
				Name:        "BinaryView",
				Description: "Top-level analysis container.",
				Properties: []docmodel.Entry{
					{
						Name:        "filename",
						Type:        "string",
						Description: "Path of the loaded file.",
						Aliases:     []string{"file"},
					},
					{
						Name:        "analysis_progress",
						Type:        "string",
						Description: "Current analysis state.",
						Writable:    true,
					},
				},
				Methods: []docmodel.Entry{
					{
						Name:              "get_function_at",
						Description:       "Looks up a function by start address.",
						Returns:           "Function|nil",
						ReturnDescription: "The function, or nil when none starts there.",
						Params: []docmodel.Param{
							{Name: "address", Type: "integer", Description: "Start address."},
						},
						Example: "local f = bv:get_function_at(here)\nprint(f.name)",
					},
				},
			},
			{
				Name:        "Function",
				Description: "A single analyzed function.",
				Methods: []docmodel.Entry{
					{Name: "comment", Description: "Reads the function comment.", Returns: "string"},
				},
			},
		},
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	doc := sampleDocument()

	out, err := YAML(doc)
	require.NoError(t, err)

	parsed, err := docmodel.ParseDocument(out)
	require.NoError(t, err)

	require.Len(t, parsed.Classes, 2)
	assert.Equal(t, "BinaryView", parsed.Classes[0].Name)
	assert.Equal(t, "Function", parsed.Classes[1].Name)

	bv := parsed.Class("BinaryView")
	require.NotNil(t, bv)
	require.Len(t, bv.Properties, 2)
	assert.Equal(t, "filename", bv.Properties[0].Name)
	assert.Equal(t, []string{"file"}, bv.Properties[0].Aliases)
	assert.True(t, bv.Properties[1].Writable)

	require.Len(t, bv.Methods, 1)
	m := bv.Methods[0]
	assert.Equal(t, "Function|nil", m.Returns)
	require.Len(t, m.Params, 1)
	assert.Equal(t, "address", m.Params[0].Name)
	assert.Equal(t, "local f = bv:get_function_at(here)\nprint(f.name)", m.Example)
}

func TestYAMLLiteralStyleForMultiline(t *testing.T) {
	doc := sampleDocument()

	out, err := YAML(doc)
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "example: |")
	assert.Contains(t, text, "        local f = bv:get_function_at(here)")
	// Single-line values stay plain scalars.
	assert.Contains(t, text, "returns: Function|nil")
}

func TestYAMLMetaComesFirst(t *testing.T) {
	doc := sampleDocument()
	doc.Meta = &docmodel.Meta{
		Title:       "Lua Extension APIs",
		Description: "Optional extensions.",
		Status:      "experimental",
	}

	out, err := YAML(doc)
	require.NoError(t, err)

	text := string(out)
	assert.True(t, strings.HasPrefix(text, "_meta:"))

	parsed, err := docmodel.ParseDocument(out)
	require.NoError(t, err)
	require.NotNil(t, parsed.Meta)
	assert.Equal(t, "experimental", parsed.Meta.Status)
}

func TestYAMLStableAcrossMergeCycles(t *testing.T) {
	fresh := sampleDocument()

	first, err := YAML(docmodel.Merge(fresh, nil))
	require.NoError(t, err)

	prior, err := docmodel.ParseDocument(first)
	require.NoError(t, err)

	second, err := YAML(docmodel.Merge(fresh, prior))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestAPIReferenceLayout(t *testing.T) {
	doc := sampleDocument()

	out := APIReference(doc)

	require.True(t, strings.HasPrefix(out, "# Binary Ninja Lua API Reference"))
	assert.Contains(t, out, "**Classes:** 2 | **Methods:** 2")
	assert.Contains(t, out, "- [BinaryView](#binaryview)")
	assert.Contains(t, out, "- [Magic Variables](#magic-variables)")
	assert.Contains(t, out, "#### `BinaryView.filename` -> `string`")
	assert.Contains(t, out, "**Aliases:** `file`")
	assert.Contains(t, out, "#### `BinaryView:get_function_at(...)` -> `Function|nil`")
	assert.Contains(t, out, "- `address` (integer) - Start address.")
	assert.Contains(t, out, "`Function|nil` - The function, or nil when none starts there.")
	assert.Contains(t, out, "```lua\nlocal f = bv:get_function_at(here)\nprint(f.name)\n```")
	assert.Contains(t, out, "| `bv` | BinaryView | Current binary view instance |")

	// Class sections follow document order and precede the magic variables table.
	bvIdx := strings.Index(out, "## BinaryView")
	fnIdx := strings.Index(out, "## Function")
	magicIdx := strings.Index(out, "## Magic Variables")
	assert.Less(t, bvIdx, fnIdx)
	assert.Less(t, fnIdx, magicIdx)
}

func TestExtensionsReferenceLayout(t *testing.T) {
	doc := &docmodel.Document{
		Meta: &docmodel.Meta{Title: "Lua Extension APIs", Status: "experimental"},
		Classes: []docmodel.Class{
			{
				Name:        "query_helpers",
				Description: "Chainable query helpers.",
				Source:      "plugin/lua/query_helpers.lua",
				Methods: []docmodel.Entry{
					{
						Name:        "Query:filter",
						Description: "Keeps items matching a predicate.",
						Signature:   "Query:filter(predicate)",
						Returns:     "Query",
						Params: []docmodel.Param{
							{Name: "predicate", Type: "function", Description: "Filter function."},
						},
					},
					{Name: "helpers:dump", Description: "Prints a value tree."},
				},
			},
		},
	}

	out := ExtensionsReference(doc)

	require.True(t, strings.HasPrefix(out, "# Binary Ninja Lua API Extensions"))
	assert.Contains(t, out, "**Extension Modules:** 1 | **Methods:** 2")
	assert.Contains(t, out, "**Source:** `plugin/lua/query_helpers.lua`")
	assert.Contains(t, out, "#### `Query:filter(predicate)` -> `Query`")
	// Entries without a recorded signature fall back to the key.
	assert.Contains(t, out, "#### `helpers:dump()`")
}

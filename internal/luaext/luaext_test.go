package luaext

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLua = `--[[
@file collections.lua
@brief Collection helpers for analysis results.
]]

local bv_mt = getmetatable(bv)

--[[
@luaapi BinaryView:strings()
@description Returns all strings found in the binary.
@return table array of string entries
@example
    for _, s in ipairs(bv:strings()) do
        print(s.value)
    end
]]
bv_mt.__index.strings = function(self)
    return collect_strings(self)
end

--[[
@luaapi dump(value)
@description Pretty-prints a table.
@param value (any) the value to print
]]
function dump(value)
end

--[[
This block has no signature tag and no declaration follows.
]]
local unrelated = 1
`

func writeLua(t *testing.T, root, name, content string) {
	t.Helper()
	dir := filepath.Join(root, "lua-api")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestExtractAll(t *testing.T) {
	root := t.TempDir()
	writeLua(t, root, "collections.lua", sampleLua)

	var progress bytes.Buffer
	modules, err := New(root, &progress).ExtractAll()
	require.NoError(t, err)
	require.Len(t, modules, 1)

	mod := modules[0]
	assert.Equal(t, "collections", mod.Name)
	assert.Equal(t, "Collection helpers for analysis results.", mod.Description)
	assert.Equal(t, "lua-api/collections.lua", mod.SourceFile)

	require.Len(t, mod.Records, 2)

	strings := mod.Records[0]
	assert.Equal(t, "BinaryView", strings.Scope)
	assert.Equal(t, "strings", strings.Name)
	assert.Equal(t, "table", strings.ReturnType)
	assert.Contains(t, strings.Example, "for _, s in ipairs(bv:strings()) do")

	dump := mod.Records[1]
	assert.Equal(t, "global", dump.Scope)
	assert.Equal(t, "dump", dump.Name)
	require.Len(t, dump.Params, 1)
	assert.Equal(t, "any", dump.Params[0].Type)

	assert.Contains(t, progress.String(), "Found: collections (2 methods)")
}

func TestNamelessBlockRecoveredFromDeclaration(t *testing.T) {
	root := t.TempDir()
	writeLua(t, root, "extras.lua", `--[[
@luaapi
@description Recovered from the declaration below.
]]
func_mt.__index.callers = function(self)
end
`)

	var progress bytes.Buffer
	modules, err := New(root, &progress).ExtractAll()
	require.NoError(t, err)
	require.Len(t, modules, 1)
	require.Len(t, modules[0].Records, 1)

	rec := modules[0].Records[0]
	assert.Equal(t, "Function", rec.Scope)
	assert.Equal(t, "callers", rec.Name)
}

func TestBlockWithoutSignatureOrDeclarationDropped(t *testing.T) {
	root := t.TempDir()
	writeLua(t, root, "empty.lua", `--[[
@luaapi
@description Documented but anonymous, with nothing declared after.
]]
-- no declaration here
`)

	var progress bytes.Buffer
	modules, err := New(root, &progress).ExtractAll()
	require.NoError(t, err)
	require.Len(t, modules, 1)
	assert.Empty(t, modules[0].Records)
}

func TestMissingDirectoryWarns(t *testing.T) {
	var progress bytes.Buffer
	modules, err := New(t.TempDir(), &progress).ExtractAll()
	require.NoError(t, err)
	assert.Empty(t, modules)
	assert.Contains(t, progress.String(), "Warning: no Lua extension files found")
}

func TestDocument(t *testing.T) {
	root := t.TempDir()
	writeLua(t, root, "collections.lua", sampleLua)

	var progress bytes.Buffer
	modules, err := New(root, &progress).ExtractAll()
	require.NoError(t, err)

	doc := Document(modules)
	require.NotNil(t, doc.Meta)
	assert.Equal(t, "Lua Extension APIs", doc.Meta.Title)

	require.Len(t, doc.Classes, 1)
	class := doc.Classes[0]
	assert.Equal(t, "collections", class.Name)
	require.Len(t, class.Methods, 2)
	assert.Equal(t, "BinaryView:strings", class.Methods[0].Name)
	assert.Equal(t, "global:dump", class.Methods[1].Name)
}

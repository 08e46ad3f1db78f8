package binding

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBinding = `
void RegisterBinaryViewBindings(sol::state_view lua) {
    lua.new_usertype<BinaryView>(BINARYVIEW_METATABLE,
        sol::no_constructor,

        "start_addr", sol::property([](BinaryView& bv) -> HexAddress {
            return HexAddress(bv.GetStart());
        }),

        "length", sol::property([](BinaryView& bv) -> uint64_t {
            return bv.GetLength();
        }),

        "read", [](sol::this_state ts, BinaryView& bv, uint64_t addr, size_t length) -> std::string {
            return ReadBytes(bv, addr, length);
        },

        "functions", [](sol::this_state ts, BinaryView& bv) -> sol::table {
            return CollectFunctions(ts, bv);
        },

        sol::meta_function::to_string, [](BinaryView& bv) -> std::string {
            return bv.GetFile()->GetFilename();
        },

        "value", &BinaryView::value,
        "helper", &BinaryView::Helper
    );
}
`

func writeBinding(t *testing.T, root, name, content string) {
	t.Helper()
	dir := filepath.Join(root, "bindings")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestExtractAll(t *testing.T) {
	root := t.TempDir()
	writeBinding(t, root, "binaryview.cpp", sampleBinding)

	var progress bytes.Buffer
	usertypes, err := New(root, &progress).ExtractAll()
	require.NoError(t, err)
	require.Len(t, usertypes, 1)

	ut := usertypes[0]
	assert.Equal(t, "BinaryView", ut.Name)
	assert.Equal(t, "BINARYVIEW_METATABLE", ut.Metatable)
	assert.Equal(t, "BinaryView", ut.CppType)
	assert.Equal(t, "bindings/binaryview.cpp", ut.SourceFile)
	assert.False(t, ut.HasConstructor)

	require.Len(t, ut.Properties, 3)
	assert.Equal(t, "start_addr", ut.Properties[0].Name)
	assert.Equal(t, "HexAddress", ut.Properties[0].ReturnType)
	assert.True(t, ut.Properties[0].Readonly)
	assert.Equal(t, "length", ut.Properties[1].Name)
	assert.Equal(t, "integer", ut.Properties[1].ReturnType)
	// Member pointer with a data-member name lands as a property.
	assert.Equal(t, "value", ut.Properties[2].Name)
	assert.Equal(t, "any", ut.Properties[2].ReturnType)

	read := ut.method("read")
	require.NotNil(t, read)
	assert.Equal(t, "string", read.ReturnType)
	require.Len(t, read.Params, 2)
	assert.Equal(t, "addr", read.Params[0].Name)
	assert.Equal(t, "integer", read.Params[0].Type)
	assert.Equal(t, "length", read.Params[1].Name)
	assert.Equal(t, "integer", read.Params[1].Type)

	funcs := ut.method("functions")
	require.NotNil(t, funcs)
	assert.Equal(t, "table", funcs.ReturnType)
	assert.Empty(t, funcs.Params)

	helper := ut.method("helper")
	require.NotNil(t, helper)
	assert.Equal(t, "any", helper.ReturnType)

	assert.Equal(t, []string{"to_string"}, ut.Metamethods)
	assert.Contains(t, progress.String(), "Extracting from bindings/binaryview.cpp...")
	assert.Contains(t, progress.String(), "Found: BinaryView (3 props, 3 methods)")
}

func TestExtractQuotedMetatable(t *testing.T) {
	root := t.TempDir()
	writeBinding(t, root, "tag.cpp", `
    lua.new_usertype<TagWrapper>("BinaryNinja.Tag",
        sol::no_constructor,
        "data", sol::property([](TagWrapper& t) -> std::string { return t.data; })
    );`)

	var progress bytes.Buffer
	usertypes, err := New(root, &progress).ExtractAll()
	require.NoError(t, err)
	require.Len(t, usertypes, 1)
	assert.Equal(t, "Tag", usertypes[0].Name)
	assert.Equal(t, "BinaryNinja.Tag", usertypes[0].Metatable)
}

func TestDuplicateUsertypeWarns(t *testing.T) {
	root := t.TempDir()
	decl := `
    lua.new_usertype<Symbol>(SYMBOL_METATABLE,
        sol::no_constructor,
        "name", sol::property([](Symbol& s) -> std::string { return s.name; })
    );`
	writeBinding(t, root, "a.cpp", decl)
	writeBinding(t, root, "b.cpp", decl)

	var progress bytes.Buffer
	usertypes, err := New(root, &progress).ExtractAll()
	require.NoError(t, err)
	require.Len(t, usertypes, 1, "last write wins under the same key")
	assert.Equal(t, "bindings/b.cpp", usertypes[0].SourceFile)
	assert.Contains(t, progress.String(), "overwrites earlier definition")
}

func TestExtractNoBindingsDir(t *testing.T) {
	var progress bytes.Buffer
	usertypes, err := New(t.TempDir(), &progress).ExtractAll()
	require.NoError(t, err)
	assert.Empty(t, usertypes)
	assert.Contains(t, progress.String(), "Warning: no binding files found")
}

func TestDocument(t *testing.T) {
	usertypes := []*Usertype{
		{
			Name:       "Function",
			SourceFile: "bindings/function.cpp",
			Properties: []Property{{Name: "name", ReturnType: "string", Readonly: true}},
			Methods: []Method{
				{Name: "basic_blocks", ReturnType: "table"},
				{Name: "reanalyze", ReturnType: "nil"},
			},
		},
	}

	doc := Document(usertypes)
	require.Len(t, doc.Classes, 1)
	fn := doc.Class("Function")
	require.NotNil(t, fn)
	assert.Equal(t, "bindings/function.cpp", fn.Source)

	name := fn.Property("name")
	require.NotNil(t, name)
	assert.False(t, name.Writable)

	assert.Equal(t, "table", fn.Method("basic_blocks").Returns)
	assert.Empty(t, fn.Method("reanalyze").Returns, "nil returns are omitted")
}

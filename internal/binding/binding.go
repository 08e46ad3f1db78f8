// Package binding extracts Lua API definitions from sol2-based C++ binding
// files: usertype declarations, their properties, methods and metamethods.
package binding

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/alecnunn/soldoc/internal/docmodel"
	"github.com/alecnunn/soldoc/internal/scan"
	"github.com/alecnunn/soldoc/internal/typemap"
)

// Property is an extracted sol::property binding.
type Property struct {
	Name       string
	ReturnType string
	Readonly   bool
}

// Method is an extracted lambda or member-pointer binding.
type Method struct {
	Name       string
	ReturnType string
	Params     []docmodel.Param
}

// Usertype is one lua.new_usertype declaration with everything found inside
// its argument list. Property and method order follows source order.
type Usertype struct {
	Name           string
	Metatable      string
	CppType        string
	SourceFile     string
	Properties     []Property
	Methods        []Method
	Metamethods    []string
	HasConstructor bool
}

func (u *Usertype) property(name string) *Property {
	for i := range u.Properties {
		if u.Properties[i].Name == name {
			return &u.Properties[i]
		}
	}
	return nil
}

func (u *Usertype) method(name string) *Method {
	for i := range u.Methods {
		if u.Methods[i].Name == name {
			return &u.Methods[i]
		}
	}
	return nil
}

var (
	usertypeRe  = regexp.MustCompile(`lua\.new_usertype<([^>]+)>\s*\(\s*([A-Z_]+|"[^"]+"),\s*`)
	propertyRe  = regexp.MustCompile(`"(\w+)",\s*sol::(readonly_)?property\s*\(`)
	lambdaRe    = regexp.MustCompile(`"(\w+)",\s*\[\]\s*\(([^)]*)\)\s*(?:->\s*([^{]+))?\s*\{`)
	memberPtrRe = regexp.MustCompile(`"(\w+)",\s*&(\w+)::(\w+)`)
	metaFnRe    = regexp.MustCompile(`sol::meta_function::(\w+)`)
	arrowRe     = regexp.MustCompile(`->\s*([^{,)]+)`)
)

// dataMemberHints lists member names that are bound as data members rather
// than callables, so member-pointer bindings can be classified.
var dataMemberHints = map[string]bool{
	"value": true, "size": true, "count": true, "length": true,
	"name": true, "type": true, "index": true, "start": true,
	"end": true, "address": true, "offset": true,
}

// returnTypeLookahead bounds how far into a property body the extractor
// searches for the getter's -> return type arrow.
const returnTypeLookahead = 500

// Extractor scans binding sources under a project root and accumulates
// usertypes keyed by display name. Later declarations overwrite earlier ones
// under the same name; each overwrite is reported on the progress writer.
type Extractor struct {
	root      string
	progress  io.Writer
	usertypes []*Usertype
	index     map[string]int
}

// New returns an Extractor rooted at the given project directory. Progress
// and warning lines go to the supplied writer.
func New(root string, progress io.Writer) *Extractor {
	return &Extractor{
		root:     root,
		progress: progress,
		index:    map[string]int{},
	}
}

// ExtractAll discovers bindings/*.cpp in sorted order and extracts every
// usertype declaration. Missing or unreadable files produce a warning and are
// skipped; the run continues.
func (e *Extractor) ExtractAll() ([]*Usertype, error) {
	files, err := filepath.Glob(filepath.Join(e.root, "bindings", "*.cpp"))
	if err != nil {
		return nil, fmt.Errorf("discover bindings: %w", err)
	}
	sort.Strings(files)
	if len(files) == 0 {
		fmt.Fprintf(e.progress, "Warning: no binding files found under %s\n", filepath.Join(e.root, "bindings"))
	}

	for _, path := range files {
		rel, err := filepath.Rel(e.root, path)
		if err != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		content, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(e.progress, "Warning: %s not readable: %v\n", rel, err)
			continue
		}
		fmt.Fprintf(e.progress, "Extracting from %s...\n", rel)
		e.extractFile(string(content), rel)
	}
	return e.usertypes, nil
}

func (e *Extractor) extractFile(content, relPath string) {
	for _, m := range usertypeRe.FindAllStringSubmatchIndex(content, -1) {
		cppType := strings.TrimSpace(content[m[2]:m[3]])
		metatable := strings.TrimSpace(content[m[4]:m[5]])
		metatable = strings.Trim(metatable, `"`)

		ut := &Usertype{
			Name:       displayName(metatable, cppType),
			Metatable:  metatable,
			CppType:    cppType,
			SourceFile: relPath,
		}

		block, _ := scan.CallBlock(content, m[1])
		e.extractProperties(block, ut)
		e.extractMethods(block, ut)
		e.extractMetamethods(block, ut)
		ut.HasConstructor = strings.Contains(block, "sol::constructors") ||
			!strings.Contains(block, "sol::no_constructor")

		e.add(ut)
		fmt.Fprintf(e.progress, "  Found: %s (%d props, %d methods)\n",
			ut.Name, len(ut.Properties), len(ut.Methods))
	}
}

// add stores a usertype under its display name. Last write wins, loudly.
func (e *Extractor) add(ut *Usertype) {
	if i, ok := e.index[ut.Name]; ok {
		fmt.Fprintf(e.progress, "Warning: usertype %s from %s overwrites earlier definition from %s\n",
			ut.Name, ut.SourceFile, e.usertypes[i].SourceFile)
		e.usertypes[i] = ut
		return
	}
	e.index[ut.Name] = len(e.usertypes)
	e.usertypes = append(e.usertypes, ut)
}

// displayName resolves the documented name for a usertype: the last segment
// of a dotted metatable string, a metatable constant via the lookup table, or
// the C++ type name as a last resort.
func displayName(metatable, cppType string) string {
	if strings.Contains(metatable, ".") {
		parts := strings.Split(metatable, ".")
		return parts[len(parts)-1]
	}
	if strings.HasSuffix(metatable, "_METATABLE") {
		return typemap.ScopeFromMetatable(metatable)
	}
	return cppType
}

func (e *Extractor) extractProperties(block string, ut *Usertype) {
	for _, m := range propertyRe.FindAllStringSubmatchIndex(block, -1) {
		name := block[m[2]:m[3]]
		readonly := m[4] >= 0

		end := m[1] + returnTypeLookahead
		if end > len(block) {
			end = len(block)
		}
		body := block[m[1]:end]

		returnType := "any"
		if am := arrowRe.FindStringSubmatch(body); am != nil {
			returnType = typemap.Lua(am[1])
		}

		// A second lambda before the getter's closing paren means a setter.
		hasSetter := false
		if i := strings.Index(body, ")"); i >= 0 && !readonly {
			hasSetter = strings.Contains(body[:i], ",")
		}

		if ut.property(name) != nil {
			continue
		}
		ut.Properties = append(ut.Properties, Property{
			Name:       name,
			ReturnType: returnType,
			Readonly:   readonly || !hasSetter,
		})
	}
}

func (e *Extractor) extractMethods(block string, ut *Usertype) {
	for _, m := range lambdaRe.FindAllStringSubmatch(block, -1) {
		name := m[1]
		if ut.property(name) != nil || ut.method(name) != nil {
			continue
		}

		returnType := "nil"
		if m[3] != "" {
			returnType = typemap.Lua(m[3])
		}

		ut.Methods = append(ut.Methods, Method{
			Name:       name,
			ReturnType: returnType,
			Params:     extractParams(m[2], ut.CppType),
		})
	}

	// Member pointers bind either data members or member functions; a small
	// name hint list decides which side they land on.
	for _, m := range memberPtrRe.FindAllStringSubmatch(block, -1) {
		bindingName, memberName := m[1], m[3]
		if ut.property(bindingName) != nil || ut.method(bindingName) != nil {
			continue
		}
		if dataMemberHints[strings.ToLower(memberName)] || dataMemberHints[strings.ToLower(bindingName)] {
			ut.Properties = append(ut.Properties, Property{
				Name:       bindingName,
				ReturnType: "any",
				Readonly:   true,
			})
		} else {
			ut.Methods = append(ut.Methods, Method{
				Name:       bindingName,
				ReturnType: "any",
			})
		}
	}
}

func (e *Extractor) extractMetamethods(block string, ut *Usertype) {
	seen := map[string]bool{}
	for _, m := range metaFnRe.FindAllStringSubmatch(block, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			ut.Metamethods = append(ut.Metamethods, m[1])
		}
	}
}

// extractParams parses a lambda parameter list, skipping the interpreter
// state and the bound self reference, and normalizes each remaining type.
func extractParams(paramsStr, selfType string) []docmodel.Param {
	var params []docmodel.Param
	for _, p := range scan.SplitArgs(paramsStr) {
		if strings.Contains(p, "sol::this_state") {
			continue
		}
		if strings.Contains(p, selfType) && strings.ContainsAny(p, "&*") {
			continue
		}
		i := strings.LastIndex(p, " ")
		if i < 0 {
			continue
		}
		paramType := strings.TrimSpace(p[:i])
		paramName := strings.Trim(p[i+1:], "&*")
		paramType = strings.ReplaceAll(paramType, "const", "")
		paramType = strings.ReplaceAll(paramType, "&", "")
		params = append(params, docmodel.Param{
			Name: paramName,
			Type: typemap.Lua(paramType),
		})
	}
	return params
}

// Document converts extracted usertypes into the shared documentation model,
// in extraction order. Methods returning nothing carry no returns field.
func Document(usertypes []*Usertype) *docmodel.Document {
	doc := &docmodel.Document{}
	for _, ut := range usertypes {
		class := docmodel.Class{Name: ut.Name, Source: ut.SourceFile}
		for _, p := range ut.Properties {
			class.Properties = append(class.Properties, docmodel.Entry{
				Name:     p.Name,
				Type:     p.ReturnType,
				Writable: !p.Readonly,
			})
		}
		for _, m := range ut.Methods {
			entry := docmodel.Entry{Name: m.Name, Params: m.Params}
			if m.ReturnType != "" && m.ReturnType != "nil" {
				entry.Returns = m.ReturnType
			}
			class.Methods = append(class.Methods, entry)
		}
		doc.Classes = append(doc.Classes, class)
	}
	return doc
}

// Package luaext extracts API documentation from annotated Lua extension
// sources: --[[ ]] doc blocks carrying the @luaapi tag vocabulary, correlated
// with the function declarations that follow them.
package luaext

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/alecnunn/soldoc/internal/doccomment"
	"github.com/alecnunn/soldoc/internal/docmodel"
	"github.com/alecnunn/soldoc/internal/scan"
)

// Module is one Lua extension file with its parsed documentation records.
type Module struct {
	Name        string
	Description string
	SourceFile  string
	Records     []*doccomment.Record
}

// headerRe anchors the module description comment to the top of the file.
var headerRe = regexp.MustCompile(`^--\[\[`)

// Extractor scans lua-api/*.lua sources under a project root. Modules are
// keyed by file stem; a later file with the same stem overwrites the earlier
// one with a warning.
type Extractor struct {
	root     string
	progress io.Writer
	modules  []*Module
	index    map[string]int
}

// New returns an Extractor rooted at the given project directory.
func New(root string, progress io.Writer) *Extractor {
	return &Extractor{
		root:     root,
		progress: progress,
		index:    map[string]int{},
	}
}

// ExtractAll discovers lua-api/*.lua in sorted order and parses each file.
// Missing files warn and are skipped.
func (e *Extractor) ExtractAll() ([]*Module, error) {
	files, err := filepath.Glob(filepath.Join(e.root, "lua-api", "*.lua"))
	if err != nil {
		return nil, fmt.Errorf("discover lua extensions: %w", err)
	}
	sort.Strings(files)
	if len(files) == 0 {
		fmt.Fprintf(e.progress, "Warning: no Lua extension files found under %s\n", filepath.Join(e.root, "lua-api"))
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
	return e.modules, nil
}

func (e *Extractor) extractFile(content, relPath string) {
	stem := strings.TrimSuffix(filepath.Base(relPath), ".lua")
	mod := &Module{Name: stem, SourceFile: relPath}

	blocks := scan.CommentBlocks(content, "--[[", "]]")
	for i, block := range blocks {
		// The file-leading block is the module header, not an API block.
		if i == 0 && headerRe.MatchString(content) && !strings.Contains(block.Text, "@luaapi") {
			header := doccomment.ParseHeader(block.Text)
			mod.Description = header.Description
			if header.Name != "" {
				mod.Name = header.Name
			}
			continue
		}

		rec, ok := doccomment.Parse(block.Text)
		if !ok {
			continue
		}

		// The signature tag may omit the symbol; the nearest following
		// declaration supplies it. Records with no name either way are
		// dropped.
		if rec.Name == "" || rec.Scope == "global" {
			if decl, found := doccomment.Correlate(content[block.End:]); found {
				if rec.Name == "" {
					rec.Name = decl.Name
				}
				if rec.Scope == "global" && decl.Scope != "global" {
					rec.Scope = decl.Scope
				}
			}
		}
		if rec.Name == "" {
			continue
		}
		mod.Records = append(mod.Records, rec)
	}

	e.add(mod)
	fmt.Fprintf(e.progress, "  Found: %s (%d methods)\n", mod.Name, len(mod.Records))
}

func (e *Extractor) add(mod *Module) {
	if i, ok := e.index[mod.Name]; ok {
		fmt.Fprintf(e.progress, "Warning: module %s from %s overwrites earlier definition from %s\n",
			mod.Name, mod.SourceFile, e.modules[i].SourceFile)
		e.modules[i] = mod
		return
	}
	e.index[mod.Name] = len(e.modules)
	e.modules = append(e.modules, mod)
}

// Document converts extracted modules into the shared documentation model.
// Each module becomes one class; methods are keyed Scope:name so the same
// symbol extended onto different scopes stays distinct.
func Document(modules []*Module) *docmodel.Document {
	doc := &docmodel.Document{
		Meta: &docmodel.Meta{
			Title:       "Lua Extension APIs",
			Description: "Optional & experimental Lua extensions",
			Status:      "experimental",
		},
	}

	for _, mod := range modules {
		class := docmodel.Class{
			Name:        mod.Name,
			Description: mod.Description,
			Source:      mod.SourceFile,
		}
		for _, rec := range mod.Records {
			entry := docmodel.Entry{
				Name:              fmt.Sprintf("%s:%s", rec.Scope, rec.Name),
				Description:       rec.Description,
				Returns:           rec.ReturnType,
				ReturnDescription: rec.ReturnDescription,
				Params:            rec.Params,
				Example:           rec.Example,
				Signature:         rec.Signature,
			}
			class.Methods = append(class.Methods, entry)
		}
		doc.Classes = append(doc.Classes, class)
	}
	return doc
}

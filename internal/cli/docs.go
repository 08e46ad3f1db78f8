package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/alecnunn/soldoc/internal/binding"
	"github.com/alecnunn/soldoc/internal/docmodel"
	"github.com/alecnunn/soldoc/internal/luaext"
	"github.com/alecnunn/soldoc/internal/render"
)

func newDocsCommand() *cobra.Command {
	var config DocsConfig

	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Generate Markdown documentation",
		RunE: func(_ *cobra.Command, _ []string) error {
			return RunDocs(&config, os.Stdout)
		},
	}

	cmd.Flags().StringVar(&config.Root, "root", ".", "Project root containing bindings/ and lua-api/")
	cmd.Flags().StringVarP(&config.OutputDir, "output", "o", "docs", "Output directory, relative to the project root")

	return cmd
}

// DocsConfig holds configuration for Markdown generation.
type DocsConfig struct {
	Root      string
	OutputDir string
}

// RunDocs renders the API reference, the Lua extensions reference and the
// getting-started guide into the output directory. The API reference prefers
// the curated YAML document and falls back to fresh binding extraction when
// the YAML is absent.
func RunDocs(config *DocsConfig, out io.Writer) error {
	outDir := resolvePath(config.Root, config.OutputDir)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	apiDoc, err := apiDocument(config.Root, out)
	if err != nil {
		return err
	}
	if err := writeDoc(outDir, "api-reference.md", render.APIReference(apiDoc), out); err != nil {
		return err
	}

	modules, err := luaext.New(config.Root, out).ExtractAll()
	if err != nil {
		return err
	}
	extDoc := luaext.Document(modules)
	if err := writeDoc(outDir, "lua-extensions.md", render.ExtensionsReference(extDoc), out); err != nil {
		return err
	}

	return writeDoc(outDir, "getting-started.md", render.GettingStarted(), out)
}

// apiDocument loads the curated API document, falling back to fresh
// extraction when no curated file exists.
func apiDocument(root string, out io.Writer) (*docmodel.Document, error) {
	curated := filepath.Join(root, defaultAPIOverlay)
	data, err := os.ReadFile(curated)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read %s: %w", curated, err)
		}
		fmt.Fprintf(out, "Warning: %s not found, extracting from bindings\n", curated)
		usertypes, err := binding.New(root, out).ExtractAll()
		if err != nil {
			return nil, err
		}
		return binding.Document(usertypes), nil
	}

	doc, err := docmodel.ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", curated, err)
	}
	return doc, nil
}

func writeDoc(dir, name, content string, out io.Writer) error {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	fmt.Fprintf(out, "  - Generated %s\n", path)
	return nil
}

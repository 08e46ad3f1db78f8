package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/alecnunn/soldoc/internal/binding"
	"github.com/alecnunn/soldoc/internal/docmodel"
	"github.com/alecnunn/soldoc/internal/render"
)

const apiBanner = "# Auto-extracted API definitions from C++ bindings\n" +
	"# Generated by soldoc api\n" +
	"# TODO items need manual documentation\n\n"

// defaultAPIOverlay is the curated document folded in when --merge is given
// without an explicit path.
const defaultAPIOverlay = "docs/api_definitions.yaml"

func newAPICommand() *cobra.Command {
	var config APIConfig

	cmd := &cobra.Command{
		Use:   "api",
		Short: "Extract API definitions from C++ sol2 bindings",
		RunE: func(_ *cobra.Command, _ []string) error {
			return RunAPI(&config, os.Stdout)
		},
	}

	cmd.Flags().StringVar(&config.Root, "root", ".", "Project root containing the bindings/ directory")
	cmd.Flags().StringVarP(&config.OutputPath, "output", "o", "docs/api_definitions_extracted.yaml", "Output YAML path, relative to the project root")
	cmd.Flags().StringVarP(&config.MergePath, "merge", "m", "", "Curated YAML to merge manual content from")
	cmd.Flags().Lookup("merge").NoOptDefVal = defaultAPIOverlay

	return cmd
}

// APIConfig holds configuration for binding extraction.
type APIConfig struct {
	Root       string
	OutputPath string
	MergePath  string
}

// RunAPI extracts usertype bindings, merges curated content when requested,
// and writes the YAML document. Progress and warnings go to out.
func RunAPI(config *APIConfig, out io.Writer) error {
	usertypes, err := binding.New(config.Root, out).ExtractAll()
	if err != nil {
		return err
	}
	fresh := binding.Document(usertypes)

	prior, err := loadOverlay(resolvePath(config.Root, config.MergePath), out)
	if err != nil {
		return err
	}
	merged := docmodel.Merge(fresh, prior)

	data, err := render.YAML(merged)
	if err != nil {
		return err
	}

	outPath := resolvePath(config.Root, config.OutputPath)
	if err := writeBanneredYAML(outPath, apiBanner, data); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nWritten to %s\n", outPath)
	if config.MergePath == "" {
		fmt.Fprintln(out, "\nTip: use --merge to fold in curated api_definitions.yaml content")
	}
	return nil
}

// loadOverlay reads a curated document. A missing file is a warning, not an
// error; an unparseable file is fatal.
func loadOverlay(path string, out io.Writer) (*docmodel.Document, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(out, "Warning: %s not found, skipping merge\n", path)
			return nil, nil
		}
		return nil, fmt.Errorf("read overlay: %w", err)
	}
	doc, err := docmodel.ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("parse overlay %s: %w", path, err)
	}
	return doc, nil
}

func writeBanneredYAML(path, banner string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	content := append([]byte(banner), data...)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func resolvePath(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/alecnunn/soldoc/internal/docmodel"
	"github.com/alecnunn/soldoc/internal/luaext"
	"github.com/alecnunn/soldoc/internal/render"
)

const luaBanner = "# Lua Extension API definitions\n" +
	"# Generated by soldoc lua\n" +
	"# These are optional & experimental extensions\n\n"

const defaultLuaOverlay = "docs/lua_extensions.yaml"

func newLuaCommand() *cobra.Command {
	var config LuaConfig

	cmd := &cobra.Command{
		Use:   "lua",
		Short: "Extract API definitions from annotated Lua extensions",
		RunE: func(_ *cobra.Command, _ []string) error {
			return RunLua(&config, os.Stdout)
		},
	}

	cmd.Flags().StringVar(&config.Root, "root", ".", "Project root containing the lua-api/ directory")
	cmd.Flags().StringVarP(&config.OutputPath, "output", "o", "docs/lua_extensions.yaml", "Output YAML path, relative to the project root")
	cmd.Flags().StringVarP(&config.MergePath, "merge", "m", "", "Curated YAML to merge manual content from")
	cmd.Flags().Lookup("merge").NoOptDefVal = defaultLuaOverlay

	return cmd
}

// LuaConfig holds configuration for Lua extension extraction.
type LuaConfig struct {
	Root       string
	OutputPath string
	MergePath  string
}

// RunLua extracts annotated Lua extension modules, merges curated content
// when requested, and writes the YAML document.
func RunLua(config *LuaConfig, out io.Writer) error {
	modules, err := luaext.New(config.Root, out).ExtractAll()
	if err != nil {
		return err
	}
	fresh := luaext.Document(modules)

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
	if err := writeBanneredYAML(outPath, luaBanner, data); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nWritten to %s\n", outPath)
	return nil
}

package commands

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/rigforge/rigforge/component"
	"github.com/rigforge/rigforge/config"
	"github.com/rigforge/rigforge/errors"
	"github.com/rigforge/rigforge/guide"
	"github.com/rigforge/rigforge/param"
	"github.com/rigforge/rigforge/scene"
)

// scenePath resolves the scene file from the --scene flag, falling back to
// the configured default.
func scenePath(cmd *cobra.Command) (string, error) {
	path, _ := cmd.Flags().GetString("scene")
	if path != "" {
		return path, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return "", err
	}
	return cfg.Scene.Path, nil
}

// openScene loads the scene file, or starts an empty scene when the file
// does not exist yet.
func openScene(path string) (*scene.Memory, error) {
	if _, err := os.Stat(path); err == nil {
		return scene.LoadFile(path)
	}
	return scene.NewMemory(), nil
}

// requireScene loads an existing scene file.
func requireScene(path string) (*scene.Memory, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, "scene file %s", path)
	}
	return scene.LoadFile(path)
}

// findModelRoot returns the guide model root of the scene.
func findModelRoot(sc *scene.Memory) (scene.Node, error) {
	for _, r := range sc.Roots() {
		if r.HasAttr(component.AttrIsModel) {
			return r, nil
		}
	}
	return nil, errors.New("no guide model root in scene")
}

// findSceneNode returns a named node or a descriptive error.
func findSceneNode(sc *scene.Memory, name string) (scene.Node, error) {
	n, ok := sc.FindNode(name)
	if !ok {
		return nil, errors.Newf("node %s not found in scene", name)
	}
	return n, nil
}

// variantRegistry returns the registry commands build graphs with,
// narrowed to the configured whitelist when one is set.
func variantRegistry() (*component.Registry, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if len(cfg.Variants.Enabled) == 0 {
		return component.Default(), nil
	}
	return component.Default().Subset(cfg.Variants.Enabled)
}

// newGraph builds a guide graph bound to sc using the configured variants.
func newGraph(sc scene.Scene) (*guide.Graph, error) {
	reg, err := variantRegistry()
	if err != nil {
		return nil, err
	}
	return guide.NewGraph(sc, guide.WithVariants(reg)), nil
}

// resolveTemplatePath locates a template argument for reading: as given
// first, then with the default extension, then across the configured
// template search paths.
func resolveTemplatePath(arg string) (string, error) {
	cfg, err := config.Load()
	if err != nil {
		return "", err
	}
	return findTemplate(cfg.Templates.Paths, cfg.Templates.DefaultExtension, arg)
}

func findTemplate(paths []string, ext, arg string) (string, error) {
	for _, candidate := range templateCandidates(paths, ext, arg) {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", errors.Newf("template %s not found (searched %s)", arg, strings.Join(paths, ", "))
}

func templateCandidates(paths []string, ext, arg string) []string {
	names := []string{arg}
	if filepath.Ext(arg) == "" && ext != "" {
		names = append(names, arg+ext)
	}
	out := append([]string(nil), names...)
	if !filepath.IsAbs(arg) {
		for _, dir := range paths {
			for _, name := range names {
				out = append(out, filepath.Join(dir, name))
			}
		}
	}
	return out
}

// exportTemplatePath applies the configured default extension to a bare
// template name on write.
func exportTemplatePath(arg string) (string, error) {
	cfg, err := config.Load()
	if err != nil {
		return "", err
	}
	if filepath.Ext(arg) == "" && cfg.Templates.DefaultExtension != "" {
		return arg + cfg.Templates.DefaultExtension, nil
	}
	return arg, nil
}

// renderDiagnostics prints reconciliation findings as a table.
func renderDiagnostics(diags []param.Diagnostic) {
	if len(diags) == 0 {
		return
	}
	table := pterm.TableData{{"Component", "Kind", "Message"}}
	for _, d := range diags {
		table = append(table, []string{d.Component, string(d.Kind), d.Message})
	}
	pterm.DefaultTable.WithHasHeader().WithData(table).Render()
}

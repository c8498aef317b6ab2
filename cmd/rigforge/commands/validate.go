package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/rigforge/rigforge/errors"
)

// ValidateCmd reconciles a guide and reports diagnostics.
var ValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Reconcile a guide and report diagnostics",
	Long: `Reconcile the guide in the scene file against its live hierarchy
and report every stale parameter, unresolved parent and unknown component
type. Exits non-zero when the guide is stale.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := scenePath(cmd)
		if err != nil {
			return err
		}
		sc, err := requireScene(path)
		if err != nil {
			return err
		}
		model, err := findModelRoot(sc)
		if err != nil {
			return err
		}

		g, err := newGraph(sc)
		if err != nil {
			return err
		}
		if err := g.SetFromHierarchy(model, true); err != nil {
			return err
		}

		pterm.Info.Printf("Guide %s: %d component(s)\n", model.Name(), len(g.ComponentsIndex))
		for i, fn := range g.ComponentsIndex {
			pterm.Printf("  %s (parent: %s)\n", fn, g.Parents[i])
		}

		if g.Valid() {
			pterm.Success.Println("Guide reconciles clean")
			return nil
		}

		renderDiagnostics(g.Diagnostics())
		return errors.Newf("guide is stale: %d finding(s)", len(g.Diagnostics()))
	},
}

func init() {
	ValidateCmd.Flags().String("scene", "", "Scene file (default from config scene.path)")
}

package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// UpdateCmd rebuilds a stale guide from its own snapshot.
var UpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Rebuild a stale guide from its own snapshot",
	Long: `Reconcile the guide in the scene and, when stale, rename the old
hierarchy aside, redraw it from the reconciled snapshot and delete the old
tree. A valid guide is left untouched unless --force is given.`,
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

		force, _ := cmd.Flags().GetBool("force")

		g, err := newGraph(sc)
		if err != nil {
			return err
		}
		if err := g.Update(model, force); err != nil {
			return err
		}
		if err := sc.SaveFile(path); err != nil {
			return err
		}

		pterm.Success.Printf("Guide %s up to date (%d components)\n",
			g.Model.Name(), len(g.ComponentsIndex))
		return nil
	},
}

func init() {
	UpdateCmd.Flags().String("scene", "", "Scene file (default from config scene.path)")
	UpdateCmd.Flags().Bool("force", false, "Rebuild even when the guide reconciles clean")
}

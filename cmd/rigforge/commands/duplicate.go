package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// DuplicateCmd copies or mirrors a guide branch.
var DuplicateCmd = &cobra.Command{
	Use:   "duplicate <component-root>",
	Short: "Copy or mirror a guide branch",
	Long: `Duplicate the component branch rooted at the named node. The copy
gets the next free index; with --symmetrize, sided components flip to the
opposite side and mirror their positions:

  rigforge duplicate arm_L0_root
  rigforge duplicate arm_L0_root --symmetrize`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := scenePath(cmd)
		if err != nil {
			return err
		}
		sc, err := requireScene(path)
		if err != nil {
			return err
		}
		root, err := findSceneNode(sc, args[0])
		if err != nil {
			return err
		}

		symmetrize, _ := cmd.Flags().GetBool("symmetrize")

		g, err := newGraph(sc)
		if err != nil {
			return err
		}
		if err := g.Duplicate(root, symmetrize); err != nil {
			return err
		}
		if err := sc.SaveFile(path); err != nil {
			return err
		}

		pterm.Success.Printf("Duplicated %d component(s):\n", len(g.ComponentsIndex))
		for _, fn := range g.ComponentsIndex {
			pterm.Printf("  %s\n", fn)
		}
		return nil
	},
}

func init() {
	DuplicateCmd.Flags().String("scene", "", "Scene file (default from config scene.path)")
	DuplicateCmd.Flags().Bool("symmetrize", false, "Mirror sided components to the opposite side")
}

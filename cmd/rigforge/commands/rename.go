package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/rigforge/rigforge/component"
	"github.com/rigforge/rigforge/errors"
)

// RenameCmd re-identifies a component and renames its subtree.
var RenameCmd = &cobra.Command{
	Use:   "rename <component-root>",
	Short: "Rename or re-side a scene component",
	Long: `Give the component rooted at the named node a new identity. Flags
left out keep the current value; when the requested identity is already
taken the index bumps to the next free one:

  rigforge rename arm_L0_root --name wing
  rigforge rename arm_L0_root --side R --index 1`,
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

		fullName, _ := component.SplitNodeName(root.Name())
		name, side, index, ok := component.ParseFullName(fullName)
		if !ok {
			return errors.NewInvalidSelection("node %s does not follow the naming convention", root.Name())
		}
		if cmd.Flags().Changed("name") {
			name, _ = cmd.Flags().GetString("name")
		}
		if cmd.Flags().Changed("side") {
			side, _ = cmd.Flags().GetString("side")
		}
		if cmd.Flags().Changed("index") {
			index, _ = cmd.Flags().GetInt("index")
		}

		g, err := newGraph(sc)
		if err != nil {
			return err
		}
		nf, err := g.RenameComponent(root, name, side, index)
		if err != nil {
			return err
		}
		if err := sc.SaveFile(path); err != nil {
			return err
		}

		pterm.Success.Printf("Renamed %s to %s\n", fullName, nf)
		return nil
	},
}

func init() {
	RenameCmd.Flags().String("scene", "", "Scene file (default from config scene.path)")
	RenameCmd.Flags().String("name", "", "New component name (default current)")
	RenameCmd.Flags().String("side", "", "New side: C, L or R (default current)")
	RenameCmd.Flags().Int("index", 0, "New index (default current)")
}

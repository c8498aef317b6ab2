package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/rigforge/rigforge/scene"
)

// AddCmd draws a fresh component into a scene guide.
var AddCmd = &cobra.Command{
	Use:   "add <comp-type> <name>",
	Short: "Add a component to a scene guide",
	Long: `Draw a fresh component of the given type into the scene. With
--parent the component attaches to that guide node; without, it goes
under the model root, starting a new guide model if the scene has none.
The index resolves to the first free one for the name and side:

  rigforge add control_01 world
  rigforge add chain_01 arm --side L --parent spine_C0_loc1`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := scenePath(cmd)
		if err != nil {
			return err
		}
		sc, err := openScene(path)
		if err != nil {
			return err
		}

		side, _ := cmd.Flags().GetString("side")
		parentName, _ := cmd.Flags().GetString("parent")

		g, err := newGraph(sc)
		if err != nil {
			return err
		}
		var parent scene.Node
		if parentName != "" {
			if parent, err = findSceneNode(sc, parentName); err != nil {
				return err
			}
		} else if model, err := findModelRoot(sc); err == nil {
			parent = model
		}

		c, err := g.AddComponent(args[0], args[1], side, parent)
		if err != nil {
			return err
		}
		if err := sc.SaveFile(path); err != nil {
			return err
		}

		pterm.Success.Printf("Added %s (%s)\n", c.Info().FullName(), args[0])
		return nil
	},
}

func init() {
	AddCmd.Flags().String("scene", "", "Scene file (default from config scene.path)")
	AddCmd.Flags().String("side", "C", "Component side: C, L or R")
	AddCmd.Flags().String("parent", "", "Guide node to attach under (default model root)")
}

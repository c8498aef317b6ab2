package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/rigforge/rigforge/guide"
)

// DrawCmd materializes a guide template into a scene file.
var DrawCmd = &cobra.Command{
	Use:   "draw <template>",
	Short: "Materialize a guide template into a scene",
	Long: `Load a guide template and draw its components into the scene file.

A partial draw seeds specific components (children ride along) and can
re-root them under an existing guide node:

  rigforge draw biped.sgt
  rigforge draw biped.sgt --partial arm_L0 --parent spine_C0_loc1`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tmpl, err := resolveTemplatePath(args[0])
		if err != nil {
			return err
		}
		doc, err := guide.ReadTemplate(tmpl)
		if err != nil {
			return err
		}

		path, err := scenePath(cmd)
		if err != nil {
			return err
		}
		sc, err := openScene(path)
		if err != nil {
			return err
		}

		g, err := newGraph(sc)
		if err != nil {
			return err
		}
		if err := g.SetFromTemplate(doc); err != nil {
			return err
		}

		partial, _ := cmd.Flags().GetStringSlice("partial")
		parentName, _ := cmd.Flags().GetString("parent")

		opts := guide.DrawOptions{Partial: partial}
		if parentName != "" {
			parent, err := findSceneNode(sc, parentName)
			if err != nil {
				return err
			}
			opts.InitParent = parent
		}

		res, err := g.Draw(opts)
		if err != nil {
			return err
		}
		if err := sc.SaveFile(path); err != nil {
			return err
		}

		pterm.Success.Printf("Drew %d component(s) into %s\n", len(res.Built), path)
		for _, fn := range res.Built {
			pterm.Printf("  %s\n", fn)
		}
		renderDiagnostics(g.Diagnostics())
		return nil
	},
}

func init() {
	DrawCmd.Flags().String("scene", "", "Scene file (default from config scene.path)")
	DrawCmd.Flags().StringSlice("partial", nil, "Seed components for a partial draw")
	DrawCmd.Flags().String("parent", "", "Existing guide node to re-root partial seeds under")
}

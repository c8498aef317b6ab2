package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/rigforge/rigforge/guide"
)

// ExportCmd serializes a scene guide to a template file.
var ExportCmd = &cobra.Command{
	Use:   "export <template>",
	Short: "Serialize a scene guide to a template",
	Long: `Reconcile the guide in the scene file and write it as a template.

By default the whole guide model is exported; --root exports the branch
under one component instead.`,
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

		rootName, _ := cmd.Flags().GetString("root")

		g, err := newGraph(sc)
		if err != nil {
			return err
		}
		if rootName != "" {
			n, err := findSceneNode(sc, rootName)
			if err != nil {
				return err
			}
			if err := g.SetFromHierarchy(n, true); err != nil {
				return err
			}
		} else {
			model, err := findModelRoot(sc)
			if err != nil {
				return err
			}
			if err := g.SetFromHierarchy(model, true); err != nil {
				return err
			}
		}

		doc, err := g.TemplateDocument()
		if err != nil {
			return err
		}
		target, err := exportTemplatePath(args[0])
		if err != nil {
			return err
		}
		if err := guide.WriteTemplate(target, doc); err != nil {
			return err
		}

		pterm.Success.Printf("Exported %d component(s) to %s\n", len(doc.ComponentsList), target)
		renderDiagnostics(g.Diagnostics())
		return nil
	},
}

func init() {
	ExportCmd.Flags().String("scene", "", "Scene file (default from config scene.path)")
	ExportCmd.Flags().String("root", "", "Export only the branch under this node")
}

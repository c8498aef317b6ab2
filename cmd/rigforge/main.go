package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rigforge/rigforge/cmd/rigforge/commands"
	_ "github.com/rigforge/rigforge/component/chain"
	_ "github.com/rigforge/rigforge/component/control"
	"github.com/rigforge/rigforge/logger"
)

var rootCmd = &cobra.Command{
	Use:   "rigforge",
	Short: "rigforge - Guide authoring for modular rigs",
	Long: `rigforge - Guide authoring and template tooling for modular rigs.

rigforge builds, inspects and transforms rig guides: parameterized
component hierarchies that a rig builder later turns into a final rig.
Guides live either in a host scene or in a headless scene file, and
serialize to guide templates.

Available commands:
  draw       - Materialize a guide template into a scene
  export     - Serialize a scene guide to a template
  update     - Rebuild a stale guide from its own snapshot
  add        - Add a component to a scene guide
  rename     - Rename or re-side a scene component
  duplicate  - Copy or mirror a guide branch
  validate   - Reconcile a guide and report diagnostics
  components - List registered component variants
  steps      - Inspect and run custom build steps

Examples:
  rigforge draw biped.sgt --scene shot.json
  rigforge draw biped.sgt --partial arm_L0 --parent spine_C0_loc1
  rigforge export out.sgt --scene shot.json
  rigforge duplicate arm_L0_root --symmetrize
  rigforge validate --scene shot.json`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonOutput, _ := cmd.Flags().GetBool("log-json")
		if err := logger.InitializeWithLevel(jsonOutput, logger.VerbosityToLevel(verbosity)); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Structured JSON log output")

	rootCmd.AddCommand(commands.DrawCmd)
	rootCmd.AddCommand(commands.ExportCmd)
	rootCmd.AddCommand(commands.UpdateCmd)
	rootCmd.AddCommand(commands.AddCmd)
	rootCmd.AddCommand(commands.RenameCmd)
	rootCmd.AddCommand(commands.DuplicateCmd)
	rootCmd.AddCommand(commands.ValidateCmd)
	rootCmd.AddCommand(commands.ComponentsCmd)
	rootCmd.AddCommand(commands.StepsCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

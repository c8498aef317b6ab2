package commands

import (
	"sort"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/rigforge/rigforge/version"
)

// ComponentsCmd lists the registered component variants.
var ComponentsCmd = &cobra.Command{
	Use:   "components",
	Short: "List registered component variants",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := variantRegistry()
		if err != nil {
			return err
		}
		factories := reg.Factories()

		types := make([]string, 0, len(factories))
		for t := range factories {
			types = append(types, t)
		}
		sort.Strings(types)

		table := pterm.TableData{{"Type", "Version", "Core constraint"}}
		for _, t := range types {
			f := factories[t]
			constraint := f.CoreConstraint
			if constraint == "" {
				constraint = "any"
			}
			table = append(table, []string{f.Type, f.Version, constraint})
		}

		pterm.Info.Printf("Core %s, %d variant(s)\n", version.Version, len(types))
		return pterm.DefaultTable.WithHasHeader().WithData(table).Render()
	},
}

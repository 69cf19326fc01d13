package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newProfilesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List assumption profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.load()
			if err != nil {
				return err
			}

			infos := rt.engine.Profiles()
			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return outputJSON(out, infos)
			}

			def := rt.registry.DefaultName()
			rows := make([][]string, 0, len(infos))
			for _, p := range infos {
				name := p.Name
				if name == def {
					name += " *"
				}
				rows = append(rows, []string{
					name,
					fmt.Sprintf("%d", p.LifeExpectancy),
					percent(p.DiscountRate),
					percent(p.AccumulationRate),
					percent(p.EscalationRate),
				})
			}
			printTable(out, []string{"PROFILE", "LIFE", "DISCOUNT", "RETURN", "ESCALATION"}, rows)
			return nil
		},
	}
}

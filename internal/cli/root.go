package cli

import (
	"context"

	"github.com/spf13/cobra"
)

type options struct {
	configPath string
	profile    string
	jsonOutput bool
	verbose    bool
}

var version = "dev"

func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// NewRootCmd builds the planner command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:     "planner",
		Version: version,
		Short:   "Retirement savings estimator",
		Long: `planner estimates the nest egg needed for a monthly pension, the shortfall
against current savings, a yearly escalating savings plan and single-lever
alternatives (investment return, monthly saving, retirement age).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	root.SetVersionTemplate("{{.Version}}\n")

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to config file")
	root.PersistentFlags().StringVar(&opts.profile, "profile", "", "Assumption profile (default from config)")
	root.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log calculations to stderr")

	root.AddCommand(newCalcCmd(opts))
	root.AddCommand(newWizardCmd(opts))
	root.AddCommand(newProfilesCmd(opts))
	return root
}

// Execute runs the command tree with ctx.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

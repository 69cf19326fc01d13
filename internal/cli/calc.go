package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"retirement-planner/internal/model"
)

var errCalculationFailed = errors.New("calculation failed")

func newCalcCmd(opts *options) *cobra.Command {
	var in model.RetirementInputs
	var tenant string

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Run a single calculation",
		Long: `Compute the retirement goal, shortfall, savings schedule and solutions
for the given inputs.`,
		Example: `  planner calc --current-age 30 --retirement-age 65 --monthly-pension 2000000 --saved-money 50000000`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.load()
			if err != nil {
				return err
			}
			defer func() { _ = rt.log.Sync() }()

			resp := rt.engine.Process(&model.CalculationRequest{
				TenantID: tenant,
				Profile:  opts.profile,
				Inputs:   in,
			})

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				if err := outputJSON(out, resp); err != nil {
					return err
				}
			} else {
				printResponse(out, resp)
			}

			if resp.CalculationMetadata.CalculationOutcome != model.OutcomeSuccess {
				if !opts.jsonOutput {
					printMessages(cmd.ErrOrStderr(), resp.Messages)
				}
				return errCalculationFailed
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&in.CurrentAge, "current-age", 0, "Current age (18 or older)")
	cmd.Flags().IntVar(&in.RetirementAge, "retirement-age", 0, "Target retirement age (55-100)")
	cmd.Flags().Float64Var(&in.MonthlyPension, "monthly-pension", 0, "Desired monthly pension in KRW")
	cmd.Flags().Float64Var(&in.SavedMoney, "saved-money", 0, "Current savings in KRW")
	cmd.Flags().StringVar(&tenant, "tenant", "cli", "Tenant id recorded in the calculation metadata")
	_ = cmd.MarkFlagRequired("current-age")
	_ = cmd.MarkFlagRequired("retirement-age")
	_ = cmd.MarkFlagRequired("monthly-pension")
	return cmd
}

package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/bnema/toolshed/internal/adapters/dto"
	"github.com/bnema/toolshed/internal/adapters/in/cli"
	"github.com/bnema/toolshed/internal/domain"
)

func newTaxCmd(opts *rootOptions) *cobra.Command {
	var (
		base       string
		gross      string
		dependants int
		probation  bool
		percent    string
		period     string
		brackets   bool
		output     string
	)

	cmd := &cobra.Command{
		Use:   "tax",
		Short: "Estimate Vietnamese income tax and net salary",
		Long: `Estimate the monthly employee insurance, personal income tax and net
salary for a gross salary in VND.

The "new" period uses the 5-step table with a 15,500,000 personal deduction,
the "legacy" period the 7-step table with 11,000,000.`,
		Example: `  toolshed tax --base 30000000 --gross 50000000 --dependants 1
  toolshed tax --base 10000000 --gross 20000000 --probation --percent 85
  toolshed tax --base 20000000 --gross 40000000 --period legacy --brackets -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := cli.ParseFormat(output)
			if err != nil {
				return err
			}

			req := dto.TaxRequest{
				Dependants: dependants,
				Probation:  probation,
				Period:     period,
			}
			if req.BaseSalary, err = parseAmount("base", base); err != nil {
				return err
			}
			if req.GrossSalary, err = parseAmount("gross", gross); err != nil {
				return err
			}
			if percent != "" {
				p, err := parseAmount("percent", percent)
				if err != nil {
					return err
				}
				req.ProbationPercent = &p
			}

			k, err := opts.load(cmd)
			if err != nil {
				return err
			}

			return cli.NewTaxRunner(k.Tax(), cmd.OutOrStdout()).Run(cmd.Context(), cli.TaxOptions{
				Request:       req,
				DefaultPeriod: k.TaxPeriod(),
				Brackets:      brackets,
				Output:        format,
			})
		},
	}

	cmd.Flags().StringVar(&base, "base", "", "insured base salary in VND")
	cmd.Flags().StringVar(&gross, "gross", "", "gross monthly salary in VND")
	cmd.Flags().IntVar(&dependants, "dependants", 0, "number of registered dependants")
	cmd.Flags().BoolVar(&probation, "probation", false, "employee is on probation (flat 10% tax)")
	cmd.Flags().StringVar(&percent, "percent", "", "share of gross paid during probation, 85 to 100 (default 100)")
	cmd.Flags().StringVar(&period, "period", "", "tax period: new or legacy (default from config)")
	cmd.Flags().BoolVar(&brackets, "brackets", false, "also print the progressive tax table")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text, json or yaml")
	_ = cmd.MarkFlagRequired("base")
	_ = cmd.MarkFlagRequired("gross")

	return cmd
}

// parseAmount accepts plain numbers and comma or underscore grouped ones.
func parseAmount(flag, raw string) (decimal.Decimal, error) {
	clean := make([]rune, 0, len(raw))
	for _, r := range raw {
		if r != ',' && r != '_' && r != ' ' {
			clean = append(clean, r)
		}
	}
	d, err := decimal.NewFromString(string(clean))
	if err != nil {
		return decimal.Zero, domain.NewValidationError(flag, raw, fmt.Sprintf("--%s must be a number, got %q", flag, raw))
	}
	return d, nil
}

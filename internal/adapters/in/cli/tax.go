package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/bnema/toolshed/internal/adapters/dto"
	"github.com/bnema/toolshed/internal/adapters/in/cli/ui/components"
	"github.com/bnema/toolshed/internal/boundaries/in"
	"github.com/bnema/toolshed/internal/domain"
	"github.com/bnema/toolshed/internal/usecase/tax"
)

// TaxOptions is the parsed command line of `toolshed tax`.
type TaxOptions struct {
	Request       dto.TaxRequest
	DefaultPeriod domain.TaxPeriod
	Brackets      bool
	Output        Format
}

// TaxRunner prints a salary estimate.
type TaxRunner struct {
	svc in.TaxService
	out io.Writer
}

// NewTaxRunner creates a runner writing to out.
func NewTaxRunner(svc in.TaxService, out io.Writer) *TaxRunner {
	return &TaxRunner{svc: svc, out: out}
}

// taxOutput is the structured form printed with --output json|yaml.
type taxOutput struct {
	dto.TaxResponse `yaml:",inline"`
	Brackets        []dto.TaxBracketResponse `json:"brackets,omitempty" yaml:"brackets,omitempty"`
}

// Run executes the command.
func (r *TaxRunner) Run(ctx context.Context, opts TaxOptions) error {
	input, err := opts.Request.ToInput(opts.DefaultPeriod)
	if err != nil {
		return err
	}

	res, err := r.svc.Compute(ctx, input)
	if err != nil {
		return err
	}

	var brackets []domain.TaxBracket
	if opts.Brackets {
		brackets = r.svc.Brackets(res.Period)
	}

	if opts.Output != FormatText && opts.Output != "" {
		return writeStructured(r.out, opts.Output, taxOutput{
			TaxResponse: dto.NewTaxResponse(res),
			Brackets:    dto.NewTaxBracketResponses(brackets),
		})
	}
	return r.renderText(res, brackets)
}

func (r *TaxRunner) renderText(res *domain.TaxResult, brackets []domain.TaxBracket) error {
	if err := cliWriteLine(r.out, cliRenderTitle("Salary estimate")); err != nil {
		return err
	}
	if err := cliWriteLine(r.out, cliRenderMeta("Period:", string(res.Period))); err != nil {
		return err
	}

	var rows [][]string
	if res.IsProbation {
		rows = [][]string{
			{"Probation salary", tax.FormatAmount(res.ProbationSalary)},
			{"Taxable income", tax.FormatAmount(res.TaxableIncome)},
			{"Income tax (flat)", tax.FormatAmount(res.TaxedAmount)},
			{"Net salary", tax.FormatAmount(res.NetSalary)},
		}
	} else {
		rows = [][]string{
			{"Insured base salary", tax.FormatAmount(res.CappedBaseSalary)},
			{"Insurance", tax.FormatAmount(res.InsuranceAmount)},
			{"Taxable income", tax.FormatAmount(res.TaxableIncome)},
			{"Income tax", tax.FormatAmount(res.TaxedAmount)},
			{"Net salary", tax.FormatAmount(res.NetSalary)},
		}
	}
	if err := cliWriteLine(r.out, components.BreakdownTable(rows)); err != nil {
		return err
	}

	for _, w := range res.Warnings {
		if err := cliWriteLine(r.out, cliRenderWarning(w)); err != nil {
			return err
		}
	}

	if len(brackets) == 0 {
		return nil
	}
	bracketRows := make([][]string, len(brackets))
	for i, b := range brackets {
		bracketRows[i] = []string{"above " + tax.FormatAmount(b.Floor), b.Rate.Mul(decimal.NewFromInt(100)).String() + "%"}
	}
	if err := cliWritef(r.out, "%s\n", cliRenderMuted(fmt.Sprintf("%d brackets", len(brackets)))); err != nil {
		return err
	}
	return cliWriteLine(r.out, components.SimpleTable([]string{"Monthly taxable income", "Rate"}, bracketRows))
}

// Package tax implements the Vietnamese personal income tax estimate.
package tax

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/bnema/toolshed/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Service implements the TaxService interface.
type Service struct {
	log *log.Logger
}

// NewService creates a new tax service.
func NewService(logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{log: logger.WithPrefix("tax")}
}

// Brackets returns the progressive table of period.
func (s *Service) Brackets(period domain.TaxPeriod) []domain.TaxBracket {
	return Brackets(period)
}

// Compute estimates insurance, tax and net pay for one monthly salary.
func (s *Service) Compute(ctx context.Context, in domain.TaxInput) (*domain.TaxResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res, err := Compute(in)
	if err != nil {
		s.log.Debug("tax input rejected", "err", err)
		return nil, err
	}

	s.log.Debug("tax computed",
		"period", res.Period,
		"probation", res.IsProbation,
		"taxed", res.TaxedAmount.String(),
		"net", res.NetSalary.String(),
	)
	return res, nil
}

// Compute is the pure calculation behind Service.Compute.
func Compute(in domain.TaxInput) (*domain.TaxResult, error) {
	period := in.Period
	if period == "" {
		period = domain.TaxPeriodNew
	}
	table, ok := tables[period]
	if !ok {
		return nil, domain.NewValidationError("period", string(in.Period),
			fmt.Sprintf("Unknown tax period %q", in.Period))
	}

	percent := in.ProbationPercent
	if percent.IsZero() {
		percent = MaximumProbationPercent
	}

	if err := validate(in, percent); err != nil {
		return nil, err
	}

	res := &domain.TaxResult{
		Period:           period,
		IsProbation:      in.IsProbation,
		CappedBaseSalary: decimal.Min(in.BaseSalary, MaximumBaseSalary),
		InsuranceAmount:  decimal.Zero,
		TaxableIncome:    decimal.Zero,
		TaxedAmount:      decimal.Zero,
		ProbationSalary:  decimal.Zero,
	}
	if in.BaseSalary.GreaterThan(MaximumBaseSalary) {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("Insurance is capped at a base salary of %s VND", FormatAmount(MaximumBaseSalary)))
	}
	if in.GrossSalary.LessThan(in.BaseSalary) {
		res.Warnings = append(res.Warnings, "Gross salary is lower than the insured base salary")
	}

	if in.IsProbation {
		salary := in.GrossSalary.Mul(percent).Div(hundred)
		res.ProbationSalary = salary
		if salary.GreaterThanOrEqual(table.personal) {
			res.TaxableIncome = salary
			res.TaxedAmount = salary.Mul(ProbationTaxRate)
		}
		res.NetSalary = salary.Sub(res.TaxedAmount)
		return round(res), nil
	}

	rate := SocialInsuranceRate.Add(HealthInsuranceRate).Add(UnemploymentInsuranceRate)
	res.InsuranceAmount = res.CappedBaseSalary.Mul(rate)

	deductions := table.personal.Add(table.dependant.Mul(decimal.NewFromInt(int64(in.Dependants))))
	taxable := in.GrossSalary.Sub(res.InsuranceAmount).Sub(deductions)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}
	res.TaxableIncome = taxable
	res.TaxedAmount = progressiveTax(taxable, table.brackets)
	res.NetSalary = in.GrossSalary.Sub(res.InsuranceAmount).Sub(res.TaxedAmount)

	return round(res), nil
}

func validate(in domain.TaxInput, percent decimal.Decimal) error {
	if in.BaseSalary.LessThan(MinimumBaseSalary) {
		return domain.NewValidationError("base_salary", in.BaseSalary.String(),
			fmt.Sprintf("Base salary must be at least %s VND", FormatAmount(MinimumBaseSalary)))
	}
	if in.GrossSalary.IsNegative() {
		return domain.NewValidationError("gross_salary", in.GrossSalary.String(),
			"Gross salary must not be negative")
	}
	if in.Dependants < 0 {
		return domain.NewValidationError("dependants", fmt.Sprint(in.Dependants),
			"Number of dependants must not be negative")
	}
	if percent.LessThan(MinimumProbationPercent) || percent.GreaterThan(MaximumProbationPercent) {
		return domain.NewValidationError("probation_percent", percent.String(),
			fmt.Sprintf("Probation percentage must be between %s%% and %s%%", MinimumProbationPercent, MaximumProbationPercent))
	}
	return nil
}

func round(res *domain.TaxResult) *domain.TaxResult {
	res.InsuranceAmount = res.InsuranceAmount.Round(0)
	res.TaxableIncome = res.TaxableIncome.Round(0)
	res.TaxedAmount = res.TaxedAmount.Round(0)
	res.NetSalary = res.NetSalary.Round(0)
	res.CappedBaseSalary = res.CappedBaseSalary.Round(0)
	res.ProbationSalary = res.ProbationSalary.Round(0)
	return res
}

// FormatAmount renders a whole amount with comma thousands separators.
func FormatAmount(d decimal.Decimal) string {
	s := d.Round(0).String()
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}

	var b strings.Builder
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return sign + b.String()
}

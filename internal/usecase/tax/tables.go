package tax

import (
	"github.com/shopspring/decimal"

	"github.com/bnema/toolshed/internal/domain"
)

// Statutory constants, in VND.
var (
	SocialInsuranceRate       = decimal.RequireFromString("0.08")
	HealthInsuranceRate       = decimal.RequireFromString("0.015")
	UnemploymentInsuranceRate = decimal.RequireFromString("0.01")

	MinimumBaseSalary = decimal.NewFromInt(3_450_000)
	MaximumBaseSalary = decimal.NewFromInt(46_800_000)

	ProbationTaxRate = decimal.RequireFromString("0.1")

	MinimumProbationPercent = decimal.NewFromInt(85)
	MaximumProbationPercent = decimal.NewFromInt(100)
)

type periodTable struct {
	personal  decimal.Decimal
	dependant decimal.Decimal
	brackets  []domain.TaxBracket
}

func bracket(floor int64, rate string) domain.TaxBracket {
	return domain.TaxBracket{Floor: decimal.NewFromInt(floor), Rate: decimal.RequireFromString(rate)}
}

var tables = map[domain.TaxPeriod]periodTable{
	domain.TaxPeriodLegacy: {
		personal:  decimal.NewFromInt(11_000_000),
		dependant: decimal.NewFromInt(4_400_000),
		brackets: []domain.TaxBracket{
			bracket(0, "0.05"),
			bracket(5_000_000, "0.10"),
			bracket(10_000_000, "0.15"),
			bracket(18_000_000, "0.20"),
			bracket(32_000_000, "0.25"),
			bracket(52_000_000, "0.30"),
			bracket(80_000_000, "0.35"),
		},
	},
	domain.TaxPeriodNew: {
		personal:  decimal.NewFromInt(15_500_000),
		dependant: decimal.NewFromInt(6_200_000),
		brackets: []domain.TaxBracket{
			bracket(0, "0.05"),
			bracket(10_000_000, "0.15"),
			bracket(30_000_000, "0.25"),
			bracket(60_000_000, "0.30"),
			bracket(100_000_000, "0.35"),
		},
	},
}

// PersonalDeduction returns the monthly non-taxable allowance of the period.
func PersonalDeduction(period domain.TaxPeriod) decimal.Decimal {
	return tables[period].personal
}

// DependantDeduction returns the monthly allowance per dependant of the period.
func DependantDeduction(period domain.TaxPeriod) decimal.Decimal {
	return tables[period].dependant
}

// Brackets returns a copy of the period's progressive table, lowest first.
func Brackets(period domain.TaxPeriod) []domain.TaxBracket {
	src := tables[period].brackets
	out := make([]domain.TaxBracket, len(src))
	copy(out, src)
	return out
}

// progressiveTax applies brackets to a non-negative taxable income.
func progressiveTax(income decimal.Decimal, brackets []domain.TaxBracket) decimal.Decimal {
	total := decimal.Zero
	for i, b := range brackets {
		if income.LessThanOrEqual(b.Floor) {
			break
		}
		upper := income
		if i+1 < len(brackets) && income.GreaterThan(brackets[i+1].Floor) {
			upper = brackets[i+1].Floor
		}
		total = total.Add(upper.Sub(b.Floor).Mul(b.Rate))
	}
	return total
}

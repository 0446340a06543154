package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TaxPeriod selects the deduction constants and bracket table.
type TaxPeriod string

const (
	// TaxPeriodLegacy is the 7-step table with the 11,000,000 personal deduction.
	TaxPeriodLegacy TaxPeriod = "legacy"
	// TaxPeriodNew is the 5-step table with the 15,500,000 personal deduction.
	TaxPeriodNew TaxPeriod = "new"
)

// ParseTaxPeriod resolves a period name. An empty name yields TaxPeriodNew.
func ParseTaxPeriod(name string) (TaxPeriod, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", string(TaxPeriodNew):
		return TaxPeriodNew, nil
	case string(TaxPeriodLegacy), "old":
		return TaxPeriodLegacy, nil
	default:
		return "", fmt.Errorf("unknown tax period %q (want %q or %q)", name, TaxPeriodLegacy, TaxPeriodNew)
	}
}

// TaxBracket taxes income above Floor at Rate, up to the next bracket's Floor.
type TaxBracket struct {
	Floor decimal.Decimal
	Rate  decimal.Decimal
}

// TaxInput is one salary estimate request.
type TaxInput struct {
	BaseSalary  decimal.Decimal
	GrossSalary decimal.Decimal
	Dependants  int
	IsProbation bool
	// ProbationPercent is the share of gross paid during probation.
	// Zero means 100.
	ProbationPercent decimal.Decimal
	Period           TaxPeriod
}

// TaxResult is the breakdown of one estimate. All amounts are whole units.
type TaxResult struct {
	InsuranceAmount  decimal.Decimal
	TaxableIncome    decimal.Decimal
	TaxedAmount      decimal.Decimal
	NetSalary        decimal.Decimal
	CappedBaseSalary decimal.Decimal
	IsProbation      bool
	ProbationSalary  decimal.Decimal
	Period           TaxPeriod
	Warnings         []string
}

package dto

import (
	"github.com/shopspring/decimal"

	"github.com/bnema/toolshed/internal/domain"
)

// TaxRequest is the body of POST /api/tax. Amounts accept JSON numbers or
// numeric strings.
type TaxRequest struct {
	BaseSalary       decimal.Decimal  `json:"base_salary"`
	GrossSalary      decimal.Decimal  `json:"gross_salary"`
	Dependants       int              `json:"dependants"`
	Probation        bool             `json:"probation"`
	ProbationPercent *decimal.Decimal `json:"probation_percent,omitempty"`
	Period           string           `json:"period,omitempty"`
}

// ToInput converts the request. An empty period falls back to defaultPeriod.
func (r TaxRequest) ToInput(defaultPeriod domain.TaxPeriod) (domain.TaxInput, error) {
	name := r.Period
	if name == "" {
		name = string(defaultPeriod)
	}
	period, err := domain.ParseTaxPeriod(name)
	if err != nil {
		return domain.TaxInput{}, domain.NewValidationError("period", r.Period, err.Error())
	}

	in := domain.TaxInput{
		BaseSalary:  r.BaseSalary,
		GrossSalary: r.GrossSalary,
		Dependants:  r.Dependants,
		IsProbation: r.Probation,
		Period:      period,
	}
	if r.ProbationPercent != nil {
		in.ProbationPercent = *r.ProbationPercent
	}
	return in, nil
}

// TaxResponse is the breakdown of one estimate. Amounts are whole VND.
type TaxResponse struct {
	Period           string   `json:"period" yaml:"period"`
	CappedBaseSalary string   `json:"capped_base_salary" yaml:"capped_base_salary"`
	InsuranceAmount  string   `json:"insurance_amount" yaml:"insurance_amount"`
	TaxableIncome    string   `json:"taxable_income" yaml:"taxable_income"`
	TaxedAmount      string   `json:"taxed_amount" yaml:"taxed_amount"`
	NetSalary        string   `json:"net_salary" yaml:"net_salary"`
	Probation        bool     `json:"probation" yaml:"probation"`
	ProbationSalary  string   `json:"probation_salary,omitempty" yaml:"probation_salary,omitempty"`
	Warnings         []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// NewTaxResponse maps a result.
func NewTaxResponse(res *domain.TaxResult) TaxResponse {
	resp := TaxResponse{
		Period:           string(res.Period),
		CappedBaseSalary: res.CappedBaseSalary.String(),
		InsuranceAmount:  res.InsuranceAmount.String(),
		TaxableIncome:    res.TaxableIncome.String(),
		TaxedAmount:      res.TaxedAmount.String(),
		NetSalary:        res.NetSalary.String(),
		Probation:        res.IsProbation,
		Warnings:         res.Warnings,
	}
	if res.IsProbation {
		resp.ProbationSalary = res.ProbationSalary.String()
	}
	return resp
}

// TaxBracketResponse is one row of a progressive table.
type TaxBracketResponse struct {
	Floor string `json:"floor" yaml:"floor"`
	Rate  string `json:"rate" yaml:"rate"`
}

// NewTaxBracketResponses maps a table.
func NewTaxBracketResponses(brackets []domain.TaxBracket) []TaxBracketResponse {
	out := make([]TaxBracketResponse, len(brackets))
	for i, b := range brackets {
		out[i] = TaxBracketResponse{Floor: b.Floor.String(), Rate: b.Rate.String()}
	}
	return out
}

package in

import (
	"context"

	"github.com/bnema/toolshed/internal/domain"
)

// TaxService defines the contract for salary tax estimates.
type TaxService interface {
	// Compute estimates insurance, income tax and net pay for one salary.
	// Invalid input yields a *domain.ValidationError.
	Compute(ctx context.Context, input domain.TaxInput) (*domain.TaxResult, error)

	// Brackets returns the progressive table of a period.
	Brackets(period domain.TaxPeriod) []domain.TaxBracket
}

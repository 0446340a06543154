// Package in defines input ports (interfaces) for use cases.
// These interfaces define the contract between driving adapters (HTTP, CLI)
// and the business logic (use cases).
package in

import (
	"context"
	"net/url"
	"time"

	"github.com/bnema/toolshed/internal/domain"
)

// CronService defines the contract for building cron expressions.
type CronService interface {
	// FormatField validates one field configuration and returns its sub-expression.
	// Invalid input yields a *domain.ValidationError.
	FormatField(field domain.CronField, cfg domain.CronFieldConfig) (string, error)

	// Build formats all six fields. Fields that fail validation fall back to
	// "*" and are reported in the result's Errors.
	Build(ctx context.Context, cfg domain.CronConfig) *domain.CronBuild

	// Encode writes the configuration into query parameters for share links.
	Encode(cfg domain.CronConfig) url.Values

	// Decode reads a configuration from query parameters. Any field whose
	// parameters are missing or invalid is reset to "every".
	Decode(values url.Values) domain.CronConfig

	// DecodeRaw reads a configuration from query parameters without
	// validating arguments. Only an unknown option index resets a field.
	DecodeRaw(values url.Values) domain.CronConfig

	// ShareURL returns the bookmarkable link for cfg under pageURL.
	ShareURL(pageURL string, cfg domain.CronConfig) string

	// Preview returns the next n fire times of expr after from.
	Preview(ctx context.Context, expr string, from time.Time, n int) ([]time.Time, error)
}

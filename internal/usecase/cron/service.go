// Package cron implements the cron expression builder use case: per-field
// formatting, the share-link query codec and fire-time previews.
package cron

import (
	"context"
	"net/url"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bnema/toolshed/internal/domain"
)

// Service implements the CronService interface.
type Service struct {
	log   *log.Logger
	loc   *time.Location
	nowFn func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLocation sets the zone previews are computed in.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithClock overrides the clock used when a preview has no start time.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.nowFn = now
		}
	}
}

// NewService creates a new cron service.
func NewService(logger *log.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = log.Default()
	}
	s := &Service{
		log:   logger.WithPrefix("cron"),
		loc:   time.UTC,
		nowFn: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FormatField validates one field configuration.
func (s *Service) FormatField(field domain.CronField, cfg domain.CronFieldConfig) (string, error) {
	return FormatField(field, cfg)
}

// Build formats every field. A field that fails keeps "*" and records its error.
func (s *Service) Build(ctx context.Context, cfg domain.CronConfig) *domain.CronBuild {
	logger := s.logger(ctx)

	build := &domain.CronBuild{
		Config:     cfg,
		Expression: domain.NewEveryExpression(),
	}
	for _, f := range domain.CronFields {
		fc := cfg.Field(f)
		expr, err := FormatField(f, fc)
		if err != nil {
			logger.Debug("field rejected", "field", f, "kind", fc.Kind, "err", err)
			build.Errors = append(build.Errors, domain.FieldError{Field: f, Err: err})
			continue
		}
		build.Expression[f] = expr
	}

	logger.Debug("expression built", "expression", build.Expression.String(), "errors", len(build.Errors))
	return build
}

// Encode writes cfg into share-link query parameters.
func (s *Service) Encode(cfg domain.CronConfig) url.Values {
	return Encode(cfg)
}

// Decode reads a configuration from share-link query parameters.
func (s *Service) Decode(values url.Values) domain.CronConfig {
	return Decode(values)
}

// DecodeRaw reads a configuration from form or query parameters, keeping
// invalid arguments so Build can report them.
func (s *Service) DecodeRaw(values url.Values) domain.CronConfig {
	return DecodeRaw(values)
}

// ShareURL returns the bookmarkable link for cfg under pageURL. A pageURL
// that does not parse yields a relative link.
func (s *Service) ShareURL(pageURL string, cfg domain.CronConfig) string {
	link, err := ShareURL(pageURL, cfg)
	if err != nil {
		s.log.Warn("invalid share page url", "url", pageURL, "err", err)
		return "?" + Encode(cfg).Encode()
	}
	return link
}

// Preview returns the next n fire times of expr after from, in the service's
// zone. A zero from means now.
func (s *Service) Preview(ctx context.Context, expr string, from time.Time, n int) ([]time.Time, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if from.IsZero() {
		from = s.nowFn()
	}

	runs, err := NextRuns(expr, from.In(s.loc), n)
	if err != nil {
		s.logger(ctx).Debug("preview unavailable", "expression", expr, "err", err)
		return nil, err
	}
	return runs, nil
}

func (s *Service) logger(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(log.ContextKey).(*log.Logger); ok && l != nil {
		return l.WithPrefix("cron")
	}
	return s.log
}

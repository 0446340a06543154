package dto

import (
	"time"

	"github.com/bnema/toolshed/internal/domain"
)

// PreviewUnsupportedMessage explains a missing preview for L and # syntax.
const PreviewUnsupportedMessage = "Preview is not available for expressions using L or #"

// CronFieldRequest is the raw input for one schedule field.
type CronFieldRequest struct {
	Kind       domain.OptionKind `json:"kind" yaml:"kind"`
	Interval   string            `json:"interval,omitempty" yaml:"interval,omitempty"`
	From       string            `json:"from,omitempty" yaml:"from,omitempty"`
	To         string            `json:"to,omitempty" yaml:"to,omitempty"`
	Values     string            `json:"values,omitempty" yaml:"values,omitempty"`
	Weekday    string            `json:"weekday,omitempty" yaml:"weekday,omitempty"`
	Nth        string            `json:"nth,omitempty" yaml:"nth,omitempty"`
	LastOffset string            `json:"last_offset,omitempty" yaml:"last_offset,omitempty"`
}

// CronRequest is the body of POST /api/cron. Omitted fields mean "every".
type CronRequest struct {
	Second     *CronFieldRequest `json:"second,omitempty"`
	Minute     *CronFieldRequest `json:"minute,omitempty"`
	Hour       *CronFieldRequest `json:"hour,omitempty"`
	DayOfMonth *CronFieldRequest `json:"dayOfMonth,omitempty"`
	Month      *CronFieldRequest `json:"month,omitempty"`
	DayOfWeek  *CronFieldRequest `json:"dayOfWeek,omitempty"`
	// Preview is the number of upcoming fire times to return. Nil uses the
	// server default.
	Preview *int `json:"preview,omitempty"`
}

// ToConfig converts the request into a domain configuration.
func (r CronRequest) ToConfig() domain.CronConfig {
	var cfg domain.CronConfig
	for f, fr := range map[domain.CronField]*CronFieldRequest{
		domain.FieldSecond:     r.Second,
		domain.FieldMinute:     r.Minute,
		domain.FieldHour:       r.Hour,
		domain.FieldDayOfMonth: r.DayOfMonth,
		domain.FieldMonth:      r.Month,
		domain.FieldDayOfWeek:  r.DayOfWeek,
	} {
		if fr != nil {
			cfg[f] = fr.ToConfig()
		}
	}
	return cfg
}

// ToConfig converts one field request.
func (r CronFieldRequest) ToConfig() domain.CronFieldConfig {
	return domain.CronFieldConfig{
		Kind:       r.Kind,
		Interval:   r.Interval,
		From:       r.From,
		To:         r.To,
		Values:     r.Values,
		Weekday:    r.Weekday,
		Nth:        r.Nth,
		LastOffset: r.LastOffset,
	}
}

// NewCronFieldRequest mirrors a domain field configuration.
func NewCronFieldRequest(cfg domain.CronFieldConfig) CronFieldRequest {
	return CronFieldRequest{
		Kind:       cfg.Kind,
		Interval:   cfg.Interval,
		From:       cfg.From,
		To:         cfg.To,
		Values:     cfg.Values,
		Weekday:    cfg.Weekday,
		Nth:        cfg.Nth,
		LastOffset: cfg.LastOffset,
	}
}

// CronFieldResult is the outcome for one field.
type CronFieldResult struct {
	Field      string           `json:"field" yaml:"field"`
	Label      string           `json:"label" yaml:"label"`
	Expression string           `json:"expression" yaml:"expression"`
	Config     CronFieldRequest `json:"config" yaml:"config"`
	Error      string           `json:"error,omitempty" yaml:"error,omitempty"`
}

// CronResponse is returned by the cron endpoints.
type CronResponse struct {
	Expression   string            `json:"expression" yaml:"expression"`
	Valid        bool              `json:"valid" yaml:"valid"`
	Fields       []CronFieldResult `json:"fields" yaml:"fields"`
	Query        string            `json:"query" yaml:"query"`
	ShareURL     string            `json:"share_url,omitempty" yaml:"share_url,omitempty"`
	NextRuns     []time.Time       `json:"next_runs,omitempty" yaml:"next_runs,omitempty"`
	PreviewError string            `json:"preview_error,omitempty" yaml:"preview_error,omitempty"`
}

// NewCronResponse maps a build. Field errors are sanitized.
func NewCronResponse(build *domain.CronBuild) CronResponse {
	resp := CronResponse{
		Expression: build.Expression.String(),
		Valid:      build.Valid(),
		Fields:     make([]CronFieldResult, 0, len(domain.CronFields)),
	}
	for _, f := range domain.CronFields {
		fr := CronFieldResult{
			Field:      f.String(),
			Label:      f.Label(),
			Expression: build.Expression.Get(f),
			Config:     NewCronFieldRequest(build.Config.Field(f)),
		}
		if err := build.ErrorFor(f); err != nil {
			fr.Error = SanitizeMessage(err.Error())
		}
		resp.Fields = append(resp.Fields, fr)
	}
	return resp
}

package cli

import (
	"fmt"
	"strings"

	"github.com/bnema/toolshed/internal/domain"
)

// specArgs lists, per option kind, the parameters a field spec carries after
// the kind, in order.
var specArgs = map[domain.OptionKind][]string{
	domain.OptionEvery:           nil,
	domain.OptionInterval:        {"interval"},
	domain.OptionBetween:         {"from", "to"},
	domain.OptionSpecific:        {"values"},
	domain.OptionRanges:          {"values"},
	domain.OptionIntervalBetween: {"interval", "from", "to"},
	domain.OptionLastDay:         {"offset"},
	domain.OptionNthWeekday:      {"weekday", "nth"},
	domain.OptionLastWeekday:     {"weekday"},
}

// ParseFieldSpec reads a flag value of the form kind[:arg[:arg[:arg]]], e.g.
// "interval:5", "between:MON:FRI", "specific:1,15", "nth:FRI:2" or "last:3".
// Only the shape is checked here; values are validated by the cron service.
func ParseFieldSpec(field domain.CronField, spec string) (domain.CronFieldConfig, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" || spec == domain.EveryExpression {
		return domain.CronFieldConfig{}, nil
	}

	parts := strings.Split(spec, ":")
	kind, err := domain.ParseOptionKind(parts[0])
	if err != nil {
		return domain.CronFieldConfig{}, fieldSpecError(field, spec, err.Error())
	}
	if !field.Supports(kind) {
		return domain.CronFieldConfig{}, fieldSpecError(field, spec,
			fmt.Sprintf("%s does not support the %s option", field.Label(), kind))
	}

	args := parts[1:]
	want := specArgs[kind]
	switch {
	case kind == domain.OptionLastDay && len(args) <= 1:
		// the offset is optional
	case len(args) != len(want):
		usage := kind.String()
		for _, a := range want {
			usage += ":<" + a + ">"
		}
		return domain.CronFieldConfig{}, fieldSpecError(field, spec, "expected "+usage)
	}

	cfg := domain.CronFieldConfig{Kind: kind}
	switch kind {
	case domain.OptionInterval:
		cfg.Interval = args[0]
	case domain.OptionBetween:
		cfg.From, cfg.To = args[0], args[1]
	case domain.OptionSpecific, domain.OptionRanges:
		cfg.Values = args[0]
	case domain.OptionIntervalBetween:
		cfg.Interval, cfg.From, cfg.To = args[0], args[1], args[2]
	case domain.OptionLastDay:
		if len(args) == 1 {
			cfg.LastOffset = args[0]
		}
	case domain.OptionNthWeekday:
		cfg.Weekday, cfg.Nth = args[0], args[1]
	case domain.OptionLastWeekday:
		cfg.Weekday = args[0]
	}
	return cfg, nil
}

// FormatFieldSpec is the inverse of ParseFieldSpec.
func FormatFieldSpec(cfg domain.CronFieldConfig) string {
	parts := []string{cfg.Kind.String()}
	switch cfg.Kind {
	case domain.OptionInterval:
		parts = append(parts, cfg.Interval)
	case domain.OptionBetween:
		parts = append(parts, cfg.From, cfg.To)
	case domain.OptionSpecific, domain.OptionRanges:
		parts = append(parts, cfg.Values)
	case domain.OptionIntervalBetween:
		parts = append(parts, cfg.Interval, cfg.From, cfg.To)
	case domain.OptionLastDay:
		if cfg.LastOffset != "" {
			parts = append(parts, cfg.LastOffset)
		}
	case domain.OptionNthWeekday:
		parts = append(parts, cfg.Weekday, cfg.Nth)
	case domain.OptionLastWeekday:
		parts = append(parts, cfg.Weekday)
	}
	return strings.Join(parts, ":")
}

func fieldSpecError(field domain.CronField, spec, msg string) error {
	return domain.NewValidationError(field.String(), spec, msg)
}

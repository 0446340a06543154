package cron

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/bnema/toolshed/internal/domain"
)

var (
	specificPattern   = regexp.MustCompile(`^[\d\s,]+$`)
	rangesPattern     = regexp.MustCompile(`^[\d\s,-]+$`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Last-day offsets accepted after "L-".
const (
	minLastOffset = 1
	maxLastOffset = 31
)

// FormatField validates cfg against the rules of field and returns the
// field's sub-expression. Every failure is a *domain.ValidationError.
func FormatField(field domain.CronField, cfg domain.CronFieldConfig) (string, error) {
	if !field.Valid() {
		return "", domain.NewValidationError(field.String(), "", fmt.Sprintf("Unknown cron field %d", int(field)))
	}
	if !field.Supports(cfg.Kind) {
		return "", invalid(field, cfg.Kind.String(), "%s does not support the %s option", field.Label(), cfg.Kind)
	}

	switch cfg.Kind {
	case domain.OptionEvery:
		return domain.EveryExpression, nil
	case domain.OptionInterval:
		return formatInterval(field, cfg)
	case domain.OptionBetween:
		return formatBetween(field, cfg)
	case domain.OptionSpecific:
		if isNamed(field) {
			return formatSpecificNames(field, cfg.Values)
		}
		return formatSpecificNumbers(field, cfg.Values)
	case domain.OptionRanges:
		return formatRanges(field, cfg.Values)
	case domain.OptionIntervalBetween:
		return formatIntervalBetween(field, cfg)
	case domain.OptionLastDay:
		return formatLastDay(field, cfg.LastOffset)
	case domain.OptionNthWeekday:
		return formatNthWeekday(field, cfg.Weekday, cfg.Nth)
	case domain.OptionLastWeekday:
		return formatLastWeekday(field, cfg.Weekday)
	default:
		return "", invalid(field, cfg.Kind.String(), "Invalid cron part type")
	}
}

func invalid(field domain.CronField, value, format string, args ...any) *domain.ValidationError {
	return domain.NewValidationError(field.String(), value, fmt.Sprintf(format, args...))
}

func formatInterval(field domain.CronField, cfg domain.CronFieldConfig) (string, error) {
	b := field.Bounds()
	step, err := parseInterval(field, cfg.Interval)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d/%d", b.IntervalStart, step), nil
}

func formatBetween(field domain.CronField, cfg domain.CronFieldConfig) (string, error) {
	span, err := parseSpan(field, cfg.From, cfg.To)
	if err != nil {
		return "", err
	}
	return span, nil
}

func formatIntervalBetween(field domain.CronField, cfg domain.CronFieldConfig) (string, error) {
	span, err := parseSpan(field, cfg.From, cfg.To)
	if err != nil {
		return "", err
	}
	step, err := parseInterval(field, cfg.Interval)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%d", span, step), nil
}

// parseInterval reads a step and checks it against [1, IntervalMax].
func parseInterval(field domain.CronField, raw string) (int, error) {
	b := field.Bounds()
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, invalid(field, raw, "Interval value is required for %s interval", field.Label())
	}
	step, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalid(field, raw, "Invalid %s interval: %s", field.Label(), raw)
	}
	if err := checkRange(field, field.Label(), step, 1, b.IntervalMax); err != nil {
		return 0, err
	}
	return step, nil
}

// parseSpan reads both bounds of a range and orders them. Named fields emit
// names when both bounds were given as names.
func parseSpan(field domain.CronField, rawFrom, rawTo string) (string, error) {
	if strings.TrimSpace(rawFrom) == "" || strings.TrimSpace(rawTo) == "" {
		return "", invalid(field, rawFrom+"-"+rawTo, "From and To values are required for %s range", field.Label())
	}
	from, fromNamed, err := parseBound(field, "from", rawFrom)
	if err != nil {
		return "", err
	}
	to, toNamed, err := parseBound(field, "to", rawTo)
	if err != nil {
		return "", err
	}

	lo, hi := min(from, to), max(from, to)
	if fromNamed && toNamed {
		return nameOf(field, lo) + "-" + nameOf(field, hi), nil
	}
	return fmt.Sprintf("%d-%d", lo, hi), nil
}

// parseBound accepts a number for any field, or a name for month and day of week.
func parseBound(field domain.CronField, which, raw string) (int, bool, error) {
	raw = strings.TrimSpace(raw)
	if isNamed(field) {
		if v, ok := lookupName(field, raw); ok {
			return v, true, nil
		}
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		if isNamed(field) {
			table, _ := names(field)
			return 0, false, invalid(field, raw, "Invalid %s %s value: %s. Must be a number or one of %s",
				which, field.Label(), raw, strings.Join(table, ", "))
		}
		return 0, false, invalid(field, raw, "Invalid %s %s value: %s", which, field.Label(), raw)
	}

	b := field.Bounds()
	if err := checkRange(field, field.Label(), v, b.Min, b.Max); err != nil {
		return 0, false, err
	}
	return v, false, nil
}

func checkRange(field domain.CronField, part string, value, lo, hi int) error {
	if value < lo || value > hi {
		return invalid(field, strconv.Itoa(value), "%s value %d is outside the valid range (%d-%d)", part, value, lo, hi)
	}
	return nil
}

// splitList removes all whitespace, splits on commas and drops empty items.
func splitList(input string) []string {
	parts := strings.Split(whitespacePattern.ReplaceAllString(input, ""), ",")
	items := parts[:0]
	for _, p := range parts {
		if p != "" {
			items = append(items, p)
		}
	}
	return items
}

func formatSpecificNumbers(field domain.CronField, input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", invalid(field, input, "Specific values are required for %s", field.Label())
	}
	if !specificPattern.MatchString(input) {
		return "", invalid(field, input, "Specific %s values can only contain numbers, commas, and whitespace", field.Label())
	}

	b := field.Bounds()
	var values []int
	for _, item := range splitList(input) {
		v, err := strconv.Atoi(item)
		if err != nil {
			return "", invalid(field, item, "Invalid %s number: %s", field.Label(), item)
		}
		if err := checkRange(field, field.Label(), v, b.Min, b.Max); err != nil {
			return "", err
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return "", invalid(field, input, "At least one valid %s value is required", field.Label())
	}

	slices.Sort(values)
	values = slices.Compact(values)

	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strconv.Itoa(v)
	}
	return strings.Join(out, ","), nil
}

func formatSpecificNames(field domain.CronField, input string) (string, error) {
	label := strings.ToLower(field.Label())
	if strings.TrimSpace(input) == "" {
		return "", invalid(field, input, "At least one %s must be selected", label)
	}

	table, _ := names(field)
	var values []int
	for _, item := range splitList(input) {
		v, ok := lookupName(field, item)
		if !ok {
			return "", invalid(field, item, "Invalid %s value: %s. Must be one of %s", label, item, strings.Join(table, ", "))
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return "", invalid(field, input, "At least one valid %s value is required", label)
	}

	slices.Sort(values)
	values = slices.Compact(values)

	out := make([]string, len(values))
	for i, v := range values {
		out[i] = nameOf(field, v)
	}
	return strings.Join(out, ","), nil
}

type span struct {
	start, end int
}

func formatRanges(field domain.CronField, input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", invalid(field, input, "Range values are required for %s", field.Label())
	}
	if !rangesPattern.MatchString(input) {
		return "", invalid(field, input, "Ranges for %s can only contain numbers, commas, hyphens, and whitespace", field.Label())
	}

	b := field.Bounds()
	var spans []span
	for _, item := range splitList(input) {
		parts := strings.Split(item, "-")
		if len(parts) != 2 {
			return "", invalid(field, item, "Invalid range format in %s: '%s' must be in the form 'num-num'", field.Label(), item)
		}
		start, errStart := strconv.Atoi(parts[0])
		end, errEnd := strconv.Atoi(parts[1])
		if errStart != nil || errEnd != nil {
			return "", invalid(field, item, "Invalid numbers in %s range: '%s'", field.Label(), item)
		}
		if err := checkRange(field, field.Label(), start, b.Min, b.Max); err != nil {
			return "", err
		}
		if err := checkRange(field, field.Label(), end, b.Min, b.Max); err != nil {
			return "", err
		}
		if start > end {
			return "", invalid(field, item, "Start must be less than or equal to end in %s range: '%s'", field.Label(), item)
		}
		spans = append(spans, span{start: start, end: end})
	}
	if len(spans) == 0 {
		return "", invalid(field, input, "At least one valid %s range is required", field.Label())
	}

	slices.SortStableFunc(spans, func(a, b span) int {
		if a.start != b.start {
			return a.start - b.start
		}
		return a.end - b.end
	})

	out := make([]string, len(spans))
	for i, s := range spans {
		out[i] = fmt.Sprintf("%d-%d", s.start, s.end)
	}
	return strings.Join(out, ","), nil
}

func formatLastDay(field domain.CronField, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "L", nil
	}
	offset, err := strconv.Atoi(raw)
	if err != nil {
		return "", invalid(field, raw, "Invalid last day offset: %s", raw)
	}
	if offset == 0 {
		return "L", nil
	}
	if err := checkRange(field, "Last day offset", offset, minLastOffset, maxLastOffset); err != nil {
		return "", err
	}
	return fmt.Sprintf("L-%d", offset), nil
}

func formatNthWeekday(field domain.CronField, rawWeekday, rawNth string) (string, error) {
	if strings.TrimSpace(rawWeekday) == "" || strings.TrimSpace(rawNth) == "" {
		return "", invalid(field, rawWeekday+"#"+rawNth, "Weekday and nth occurrence are required for nth type")
	}
	day, err := parseWeekday(field, rawWeekday)
	if err != nil {
		return "", err
	}
	nth := strings.TrimSpace(rawNth)
	if !slices.Contains(NthOccurrences[:], nth) {
		return "", invalid(field, nth, "Invalid nth occurrence: %s. Must be one of %s", nth, strings.Join(NthOccurrences[:], ", "))
	}
	return day + "#" + nth, nil
}

func formatLastWeekday(field domain.CronField, rawWeekday string) (string, error) {
	if strings.TrimSpace(rawWeekday) == "" {
		return "", invalid(field, rawWeekday, "Weekday is required for last weekday type")
	}
	day, err := parseWeekday(field, rawWeekday)
	if err != nil {
		return "", err
	}
	return day + "L", nil
}

func parseWeekday(field domain.CronField, raw string) (string, error) {
	day, ok := lookupWeekday(raw)
	if !ok {
		return "", invalid(field, raw, "Invalid weekday: %s. Must be one of %s", strings.TrimSpace(raw), strings.Join(Weekdays[:], ", "))
	}
	return day, nil
}

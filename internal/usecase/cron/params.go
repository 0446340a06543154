package cron

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/bnema/toolshed/internal/domain"
)

// optionKeys are the per-field query keys carrying the option index.
var optionKeys = [...]string{
	domain.FieldSecond:     "s",
	domain.FieldMinute:     "m",
	domain.FieldHour:       "h",
	domain.FieldDayOfMonth: "dm",
	domain.FieldMonth:      "mm",
	domain.FieldDayOfWeek:  "dw",
}

// OptionKey returns the query key holding the option index of field.
func OptionKey(field domain.CronField) string {
	return optionKeys[field]
}

// ArgKeys returns the three positional argument keys of field.
func ArgKeys(field domain.CronField) (a, b, c string) {
	i := strconv.Itoa(int(field))
	return "a" + i, "b" + i, "c" + i
}

// EncodeField writes cfg into values. Argument keys of the field are cleared
// first so a previous option never leaks its arguments. A nil values is a no-op.
func EncodeField(values url.Values, field domain.CronField, cfg domain.CronFieldConfig) {
	if values == nil || !field.Valid() {
		return
	}
	a, b, c := ArgKeys(field)
	values.Del(a)
	values.Del(b)
	values.Del(c)

	idx := field.OptionIndex(cfg.Kind)
	if idx < 0 {
		values.Del(OptionKey(field))
		return
	}
	values.Set(OptionKey(field), strconv.Itoa(idx))

	set := func(key, v string) {
		if v != "" {
			values.Set(key, v)
		}
	}

	switch cfg.Kind {
	case domain.OptionInterval:
		set(a, cfg.Interval)
	case domain.OptionBetween:
		set(a, cfg.From)
		set(b, cfg.To)
	case domain.OptionSpecific, domain.OptionRanges:
		set(a, cfg.Values)
	case domain.OptionIntervalBetween:
		set(a, cfg.From)
		set(b, cfg.To)
		set(c, cfg.Interval)
	case domain.OptionNthWeekday:
		set(a, cfg.Weekday)
		set(b, cfg.Nth)
	case domain.OptionLastDay:
		set(a, cfg.LastOffset)
	case domain.OptionLastWeekday:
		set(a, cfg.Weekday)
	}
}

// DecodeFieldRaw reads the configuration of field from values without
// validating its arguments, so a form can be rebuilt with the user's input and
// its errors. A missing or unknown option index yields "every".
func DecodeFieldRaw(values url.Values, field domain.CronField) domain.CronFieldConfig {
	var cfg domain.CronFieldConfig
	if values == nil || !field.Valid() {
		return cfg
	}

	idx, err := strconv.Atoi(strings.TrimSpace(values.Get(OptionKey(field))))
	if err != nil {
		return cfg
	}
	opts := field.Options()
	if idx < 0 || idx >= len(opts) {
		return cfg
	}

	a, b, c := ArgKeys(field)
	cfg.Kind = opts[idx]
	switch cfg.Kind {
	case domain.OptionInterval:
		cfg.Interval = values.Get(a)
	case domain.OptionBetween:
		cfg.From, cfg.To = values.Get(a), values.Get(b)
	case domain.OptionSpecific, domain.OptionRanges:
		cfg.Values = values.Get(a)
	case domain.OptionIntervalBetween:
		cfg.From, cfg.To, cfg.Interval = values.Get(a), values.Get(b), values.Get(c)
	case domain.OptionNthWeekday:
		cfg.Weekday, cfg.Nth = values.Get(a), values.Get(b)
	case domain.OptionLastDay:
		cfg.LastOffset = values.Get(a)
	case domain.OptionLastWeekday:
		cfg.Weekday = values.Get(a)
	}
	return cfg
}

// DecodeField reads the configuration of field from values. Anything that does
// not validate yields the default "every" configuration.
func DecodeField(values url.Values, field domain.CronField) domain.CronFieldConfig {
	cfg := DecodeFieldRaw(values, field)
	if _, err := FormatField(field, cfg); err != nil {
		return domain.CronFieldConfig{}
	}
	return cfg
}

// Encode serializes all six fields into a fresh query.
func Encode(cfg domain.CronConfig) url.Values {
	values := url.Values{}
	for _, f := range domain.CronFields {
		EncodeField(values, f, cfg.Field(f))
	}
	return values
}

// Decode reads all six fields. A nil query yields the default configuration.
func Decode(values url.Values) domain.CronConfig {
	var cfg domain.CronConfig
	for _, f := range domain.CronFields {
		cfg[f] = DecodeField(values, f)
	}
	return cfg
}

// DecodeRaw reads all six fields without validating their arguments.
func DecodeRaw(values url.Values) domain.CronConfig {
	var cfg domain.CronConfig
	for _, f := range domain.CronFields {
		cfg[f] = DecodeFieldRaw(values, f)
	}
	return cfg
}

// ShareURL returns the bookmarkable link for cfg under baseURL. The path of
// baseURL is kept; its query is replaced.
func ShareURL(baseURL string, cfg domain.CronConfig) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	u.RawQuery = Encode(cfg).Encode()
	return u.String(), nil
}

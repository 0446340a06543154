package domain

import (
	"fmt"
	"strings"
)

// EveryExpression is the sub-expression that matches every value of a field.
const EveryExpression = "*"

// CronField identifies one of the six schedule fields.
type CronField int

const (
	FieldSecond CronField = iota
	FieldMinute
	FieldHour
	FieldDayOfMonth
	FieldMonth
	FieldDayOfWeek
)

// CronFields lists the fields in emission order.
var CronFields = [...]CronField{
	FieldSecond,
	FieldMinute,
	FieldHour,
	FieldDayOfMonth,
	FieldMonth,
	FieldDayOfWeek,
}

var cronFieldNames = [...]string{"second", "minute", "hour", "dayOfMonth", "month", "dayOfWeek"}

var cronFieldLabels = [...]string{"Second", "Minute", "Hour", "Day", "Month", "Day of Week"}

// String returns the machine name used in JSON and CLI flags.
func (f CronField) String() string {
	if !f.Valid() {
		return fmt.Sprintf("CronField(%d)", int(f))
	}
	return cronFieldNames[f]
}

// Label returns the human readable name used in validation messages.
func (f CronField) Label() string {
	if !f.Valid() {
		return f.String()
	}
	return cronFieldLabels[f]
}

// Valid reports whether f is one of the six known fields.
func (f CronField) Valid() bool {
	return f >= FieldSecond && f <= FieldDayOfWeek
}

// ParseCronField resolves a field from its machine name.
func ParseCronField(name string) (CronField, error) {
	for i, n := range cronFieldNames {
		if strings.EqualFold(n, name) {
			return CronField(i), nil
		}
	}
	return 0, fmt.Errorf("unknown cron field %q", name)
}

// FieldBounds holds the numeric limits of a field.
type FieldBounds struct {
	Min int
	Max int
	// IntervalStart is the value written before the slash of an interval.
	IntervalStart int
	// IntervalMax is the largest accepted step.
	IntervalMax int
}

var fieldBounds = [...]FieldBounds{
	FieldSecond:     {Min: 0, Max: 59, IntervalStart: 0, IntervalMax: 59},
	FieldMinute:     {Min: 0, Max: 59, IntervalStart: 0, IntervalMax: 59},
	FieldHour:       {Min: 0, Max: 23, IntervalStart: 0, IntervalMax: 23},
	FieldDayOfMonth: {Min: 1, Max: 31, IntervalStart: 1, IntervalMax: 31},
	FieldMonth:      {Min: 1, Max: 12, IntervalStart: 1, IntervalMax: 12},
	FieldDayOfWeek:  {Min: 0, Max: 6, IntervalStart: 0, IntervalMax: 7},
}

// Bounds returns the numeric limits of the field.
func (f CronField) Bounds() FieldBounds {
	return fieldBounds[f]
}

// OptionKind is the strategy a user picked for a field.
type OptionKind int

const (
	OptionEvery OptionKind = iota
	OptionInterval
	OptionBetween
	OptionSpecific
	OptionRanges
	OptionIntervalBetween
	OptionLastDay
	OptionNthWeekday
	OptionLastWeekday
)

var optionKindNames = [...]string{
	"every",
	"interval",
	"between",
	"specific",
	"ranges",
	"intervalBetween",
	"last",
	"nth",
	"lastWeekday",
}

// String returns the stable name of the option kind.
func (k OptionKind) String() string {
	if k < OptionEvery || k > OptionLastWeekday {
		return fmt.Sprintf("OptionKind(%d)", int(k))
	}
	return optionKindNames[k]
}

// ParseOptionKind resolves an option kind from its name, case-insensitively.
func ParseOptionKind(name string) (OptionKind, error) {
	for i, n := range optionKindNames {
		if strings.EqualFold(n, name) {
			return OptionKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown option kind %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (k OptionKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *OptionKind) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*k = OptionEvery
		return nil
	}
	parsed, err := ParseOptionKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

var fieldOptions = [...][]OptionKind{
	FieldSecond:     {OptionEvery, OptionInterval, OptionBetween, OptionSpecific, OptionRanges, OptionIntervalBetween},
	FieldMinute:     {OptionEvery, OptionInterval, OptionBetween, OptionSpecific, OptionRanges, OptionIntervalBetween},
	FieldHour:       {OptionEvery, OptionInterval, OptionBetween, OptionSpecific, OptionRanges, OptionIntervalBetween},
	FieldDayOfMonth: {OptionEvery, OptionInterval, OptionBetween, OptionSpecific, OptionRanges, OptionIntervalBetween, OptionLastDay},
	FieldMonth:      {OptionEvery, OptionInterval, OptionBetween, OptionSpecific, OptionIntervalBetween},
	FieldDayOfWeek:  {OptionEvery, OptionInterval, OptionBetween, OptionSpecific, OptionIntervalBetween, OptionNthWeekday, OptionLastWeekday},
}

// Options returns the option kinds the field accepts, in their stable order.
// The position of a kind in this slice is its URL option index.
func (f CronField) Options() []OptionKind {
	opts := fieldOptions[f]
	out := make([]OptionKind, len(opts))
	copy(out, opts)
	return out
}

// Supports reports whether the field accepts the option kind.
func (f CronField) Supports(kind OptionKind) bool {
	return f.OptionIndex(kind) >= 0
}

// OptionIndex returns the position of kind in the field's option list, or -1.
func (f CronField) OptionIndex(kind OptionKind) int {
	for i, k := range fieldOptions[f] {
		if k == kind {
			return i
		}
	}
	return -1
}

// CronFieldConfig is the raw user input for one field. Parameters are kept as
// text so that malformed input can be reported instead of silently coerced.
type CronFieldConfig struct {
	Kind       OptionKind
	Interval   string
	From       string
	To         string
	Values     string
	Weekday    string
	Nth        string
	LastOffset string
}

// CronConfig holds one configuration per field. The zero value is "every"
// for all six fields.
type CronConfig [6]CronFieldConfig

// Field returns the configuration of f.
func (c CronConfig) Field(f CronField) CronFieldConfig {
	return c[f]
}

// CronExpression is the six generated sub-expressions.
type CronExpression [6]string

// NewEveryExpression returns an expression with every field set to "*".
func NewEveryExpression() CronExpression {
	var e CronExpression
	for i := range e {
		e[i] = EveryExpression
	}
	return e
}

// Get returns the sub-expression for f.
func (e CronExpression) Get(f CronField) string {
	return e[f]
}

// String joins the six fields with single spaces.
func (e CronExpression) String() string {
	return strings.Join(e[:], " ")
}

// FieldError records why a field fell back to "*".
type FieldError struct {
	Field CronField
	Err   error
}

// CronBuild is the outcome of building a full configuration.
type CronBuild struct {
	Config     CronConfig
	Expression CronExpression
	Errors     []FieldError
}

// Valid reports whether every field produced an expression of its own.
func (b *CronBuild) Valid() bool {
	return len(b.Errors) == 0
}

// ErrorFor returns the error recorded for f, if any.
func (b *CronBuild) ErrorFor(f CronField) error {
	for _, fe := range b.Errors {
		if fe.Field == f {
			return fe.Err
		}
	}
	return nil
}

// Effective returns the configuration the expression was built from: fields
// that failed are reset to "every".
func (b *CronBuild) Effective() CronConfig {
	cfg := b.Config
	for _, fe := range b.Errors {
		cfg[fe.Field] = CronFieldConfig{}
	}
	return cfg
}

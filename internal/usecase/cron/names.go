package cron

import (
	"strings"

	"github.com/bnema/toolshed/internal/domain"
)

// Months holds the month names; JAN has value 1.
var Months = [...]string{"JAN", "FEB", "MAR", "APR", "MAY", "JUN", "JUL", "AUG", "SEP", "OCT", "NOV", "DEC"}

// Weekdays holds the weekday names; SUN has value 0.
var Weekdays = [...]string{"SUN", "MON", "TUE", "WED", "THU", "FRI", "SAT"}

// NthOccurrences are the accepted positions for the nth-weekday option.
var NthOccurrences = [...]string{"1", "2", "3", "4", "5"}

// isNamed reports whether the field accepts calendar names.
func isNamed(field domain.CronField) bool {
	return field == domain.FieldMonth || field == domain.FieldDayOfWeek
}

// names returns the name table of a named field and the value of its first entry.
func names(field domain.CronField) ([]string, int) {
	switch field {
	case domain.FieldMonth:
		return Months[:], 1
	case domain.FieldDayOfWeek:
		return Weekdays[:], 0
	default:
		return nil, 0
	}
}

// lookupName resolves a name to its canonical value, case-insensitively.
func lookupName(field domain.CronField, token string) (int, bool) {
	table, offset := names(field)
	upper := strings.ToUpper(strings.TrimSpace(token))
	for i, n := range table {
		if n == upper {
			return i + offset, true
		}
	}
	return 0, false
}

// nameOf returns the canonical name for a value of a named field.
func nameOf(field domain.CronField, value int) string {
	table, offset := names(field)
	return table[value-offset]
}

// lookupWeekday resolves a weekday name to its canonical upper-case form.
func lookupWeekday(token string) (string, bool) {
	v, ok := lookupName(domain.FieldDayOfWeek, token)
	if !ok {
		return "", false
	}
	return Weekdays[v], true
}

package cron

import (
	"fmt"
	"strings"
	"time"

	robfig "github.com/robfig/cron/v3"

	"github.com/bnema/toolshed/internal/domain"
)

// MaxPreview caps how many fire times a single preview may compute.
const MaxPreview = 50

var parser = robfig.NewParser(
	robfig.Second | robfig.Minute | robfig.Hour | robfig.Dom | robfig.Month | robfig.Dow,
)

// previewHorizon bounds the search for a day matching both day fields.
const previewHorizon = 30 * 366 * 24 * time.Hour

// NextRuns returns the next n fire times of expr strictly after from.
// Expressions using the last-day or nth-weekday extensions cannot be
// evaluated and return domain.ErrPreviewUnsupported.
//
// When both day-of-month and day-of-week are restricted a run must match
// both, whereas robfig fires when either matches; such runs are filtered.
func NextRuns(expr string, from time.Time, n int) ([]time.Time, error) {
	if n <= 0 {
		return nil, nil
	}
	if n > MaxPreview {
		n = MaxPreview
	}
	if usesExtensions(expr) {
		return nil, fmt.Errorf("%w: %s", domain.ErrPreviewUnsupported, expr)
	}

	sched, err := parser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse expression %q: %w", expr, err)
	}

	spec, _ := sched.(*robfig.SpecSchedule)
	both := spec != nil && spec.Dom&starBit == 0 && spec.Dow&starBit == 0
	limit := from.Add(previewHorizon)

	runs := make([]time.Time, 0, n)
	next := from
	for len(runs) < n {
		next = sched.Next(next)
		if next.IsZero() || next.After(limit) {
			break
		}
		if both && !matchesDays(spec, next) {
			// skip the rest of a day that only matches one of the fields
			y, m, d := next.Date()
			next = time.Date(y, m, d+1, 0, 0, 0, 0, next.Location()).Add(-time.Second)
			continue
		}
		runs = append(runs, next)
	}
	return runs, nil
}

// starBit marks a robfig field that was given as "*" or "?".
const starBit = 1 << 63

func matchesDays(spec *robfig.SpecSchedule, t time.Time) bool {
	return spec.Dom&(1<<uint(t.Day())) != 0 && spec.Dow&(1<<uint(t.Weekday())) != 0
}

// usesExtensions reports whether the day-of-month or day-of-week field uses
// the L or # syntax. Month names are not inspected since JUL contains an L.
func usesExtensions(expr string) bool {
	fields := strings.Fields(expr)
	if len(fields) != len(domain.CronFields) {
		return false
	}
	dom := fields[domain.FieldDayOfMonth]
	dow := fields[domain.FieldDayOfWeek]
	return strings.Contains(dom, "L") ||
		strings.Contains(dow, "#") ||
		strings.HasSuffix(dow, "L")
}

package cron

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/toolshed/internal/domain"
)

func TestNextRuns(t *testing.T) {
	from := time.Date(2026, 2, 7, 12, 34, 20, 0, time.UTC)

	tests := []struct {
		name string
		expr string
		n    int
		want []time.Time
	}{
		{
			name: "every fifteen minutes",
			expr: "0 0/15 * * * *",
			n:    3,
			want: []time.Time{
				time.Date(2026, 2, 7, 12, 45, 0, 0, time.UTC),
				time.Date(2026, 2, 7, 13, 0, 0, 0, time.UTC),
				time.Date(2026, 2, 7, 13, 15, 0, 0, time.UTC),
			},
		},
		{
			name: "weekday mornings",
			expr: "0 0 9 * * MON-FRI",
			n:    2,
			want: []time.Time{
				time.Date(2026, 2, 9, 9, 0, 0, 0, time.UTC),
				time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC),
			},
		},
		{
			name: "month name containing L",
			expr: "0 0 0 1 JUL *",
			n:    1,
			want: []time.Time{
				time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name: "day of month and weekday must both match",
			expr: "0 0 0 1 * MON",
			n:    2,
			want: []time.Time{
				time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2027, 2, 1, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name: "both day fields with every second",
			expr: "* * * 13 * FRI",
			n:    2,
			want: []time.Time{
				time.Date(2026, 2, 13, 0, 0, 0, 0, time.UTC),
				time.Date(2026, 2, 13, 0, 0, 1, 0, time.UTC),
			},
		},
		{
			name: "zero count",
			expr: "* * * * * *",
			n:    0,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextRuns(tt.expr, from, tt.n)
			require.NoError(t, err)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.True(t, tt.want[i].Equal(got[i]), "run %d: want %s, got %s", i, tt.want[i], got[i])
			}
		})
	}
}

func TestNextRunsCapsCount(t *testing.T) {
	got, err := NextRuns("* * * * * *", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), MaxPreview+10)
	require.NoError(t, err)
	assert.Len(t, got, MaxPreview)
}

func TestNextRunsImpossibleDay(t *testing.T) {
	got, err := NextRuns("0 0 0 30 2 *", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 1)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNextRunsUnsupported(t *testing.T) {
	for _, expr := range []string{
		"0 0 0 L * *",
		"0 0 0 L-3 * *",
		"0 0 0 * * FRI#2",
		"0 0 0 * * FRIL",
	} {
		t.Run(expr, func(t *testing.T) {
			_, err := NextRuns(expr, time.Now(), 1)
			assert.ErrorIs(t, err, domain.ErrPreviewUnsupported)
		})
	}
}

func TestNextRunsInvalidExpression(t *testing.T) {
	_, err := NextRuns("not a cron", time.Now(), 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrPreviewUnsupported)
}

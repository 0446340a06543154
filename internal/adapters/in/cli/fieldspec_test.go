package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/toolshed/internal/domain"
)

func TestParseFieldSpec(t *testing.T) {
	tests := []struct {
		name  string
		field domain.CronField
		spec  string
		want  domain.CronFieldConfig
	}{
		{"empty means every", domain.FieldSecond, "", domain.CronFieldConfig{}},
		{"star means every", domain.FieldSecond, "*", domain.CronFieldConfig{}},
		{"every", domain.FieldMinute, "every", domain.CronFieldConfig{Kind: domain.OptionEvery}},
		{"interval", domain.FieldMinute, "interval:5", domain.CronFieldConfig{Kind: domain.OptionInterval, Interval: "5"}},
		{"kind is case insensitive", domain.FieldMinute, "INTERVAL:5", domain.CronFieldConfig{Kind: domain.OptionInterval, Interval: "5"}},
		{"between names", domain.FieldDayOfWeek, "between:MON:FRI", domain.CronFieldConfig{Kind: domain.OptionBetween, From: "MON", To: "FRI"}},
		{"specific list", domain.FieldDayOfMonth, "specific:1,15", domain.CronFieldConfig{Kind: domain.OptionSpecific, Values: "1,15"}},
		{"ranges", domain.FieldHour, "ranges:1-5,10-15", domain.CronFieldConfig{Kind: domain.OptionRanges, Values: "1-5,10-15"}},
		{"interval between", domain.FieldHour, "intervalBetween:2:8:18", domain.CronFieldConfig{Kind: domain.OptionIntervalBetween, Interval: "2", From: "8", To: "18"}},
		{"last without offset", domain.FieldDayOfMonth, "last", domain.CronFieldConfig{Kind: domain.OptionLastDay}},
		{"last with offset", domain.FieldDayOfMonth, "last:3", domain.CronFieldConfig{Kind: domain.OptionLastDay, LastOffset: "3"}},
		{"nth weekday", domain.FieldDayOfWeek, "nth:FRI:2", domain.CronFieldConfig{Kind: domain.OptionNthWeekday, Weekday: "FRI", Nth: "2"}},
		{"last weekday", domain.FieldDayOfWeek, "lastWeekday:FRI", domain.CronFieldConfig{Kind: domain.OptionLastWeekday, Weekday: "FRI"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFieldSpec(tt.field, tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFieldSpecErrors(t *testing.T) {
	tests := []struct {
		name    string
		field   domain.CronField
		spec    string
		wantMsg string
	}{
		{"unknown kind", domain.FieldMinute, "sometimes", `unknown option kind "sometimes"`},
		{"unsupported kind", domain.FieldHour, "nth:FRI:2", "Hour does not support the nth option"},
		{"missing argument", domain.FieldMinute, "interval", "expected interval:<interval>"},
		{"too many arguments", domain.FieldHour, "between:1:2:3", "expected between:<from>:<to>"},
		{"last with two offsets", domain.FieldDayOfMonth, "last:1:2", "expected last:<offset>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFieldSpec(tt.field, tt.spec)
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestFormatFieldSpecRoundTrip(t *testing.T) {
	specs := map[domain.CronField][]string{
		domain.FieldMinute:     {"every", "interval:5", "between:10:20", "specific:1,2", "ranges:1-2,4-5", "intervalBetween:5:10:40"},
		domain.FieldDayOfMonth: {"last", "last:3"},
		domain.FieldDayOfWeek:  {"nth:FRI:2", "lastWeekday:SUN"},
	}

	for field, list := range specs {
		for _, spec := range list {
			cfg, err := ParseFieldSpec(field, spec)
			require.NoError(t, err, spec)
			assert.Equal(t, spec, FormatFieldSpec(cfg))
		}
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatText, "TEXT": FormatText, "json": FormatJSON, " yaml ": FormatYAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

package components

import (
	"regexp"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)

func stripANSI(input string) string {
	return ansiPattern.ReplaceAllString(input, "")
}

func lineWith(rendered, needle string) string {
	for _, line := range strings.Split(rendered, "\n") {
		if strings.Contains(line, needle) {
			return line
		}
	}
	return ""
}

func TestTable_CutsCellsToColumnWidth(t *testing.T) {
	rendered := stripANSI(Table([]Column{{Title: "Rate", Width: 5}}, [][]string{{"abcdef"}, {"abc"}}))

	assert.Contains(t, rendered, "ab...")
	assert.NotContains(t, rendered, "abcdef")
	require.NotEmpty(t, lineWith(rendered, "abc"))
}

func TestTable_NoColumns(t *testing.T) {
	assert.Empty(t, Table(nil, [][]string{{"x"}}))
}

func TestFit(t *testing.T) {
	tests := []struct {
		name  string
		value string
		width int
		want  string
	}{
		{"short text unchanged", "abc", 5, "abc"},
		{"zero width passthrough", "abcdef", 0, "abcdef"},
		{"width three all dots", "abcdef", 3, "..."},
		{"ascii cut", "abcdef", 5, "ab..."},
		{"cjk cut by display width", "你好世界", 5, "你..."},
		{"vietnamese diacritics count once", "Lương thực nhận", 8, "Lương..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fit(tt.value, tt.width)
			assert.Equal(t, tt.want, got)
			if tt.width > 0 {
				assert.LessOrEqual(t, runewidth.StringWidth(got), tt.width)
			}
		})
	}
}

func TestFit_StyledInputPassthrough(t *testing.T) {
	styled := "\x1b[32mvalid\x1b[0m"
	assert.Equal(t, styled, fit(styled, 3))
}

func TestFieldTable_ShowsEveryColumn(t *testing.T) {
	rendered := stripANSI(FieldTable([][]string{
		{"Minute", "interval", "0/5", ""},
		{"Hour", "specific", "*", "Hour value 24 is outside the valid range (0-23)"},
	}))

	for _, want := range []string{"Field", "Option", "Expression", "Error", "Minute", "0/5", "Hour value 24"} {
		assert.Contains(t, rendered, want)
	}
}

func TestBreakdownTable(t *testing.T) {
	rendered := stripANSI(BreakdownTable([][]string{
		{"Insurance", "362,250"},
		{"Net salary", "3,087,750"},
	}))

	assert.Contains(t, rendered, "Amount (VND)")
	assert.Contains(t, rendered, "3,087,750")
	assert.Contains(t, lineWith(rendered, "Insurance"), "362,250")
}

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/bnema/toolshed/internal/adapters/dto"
	"github.com/bnema/toolshed/internal/domain"
	cronuc "github.com/bnema/toolshed/internal/usecase/cron"
)

// Saturday.
var fixedNow = time.Date(2026, 2, 7, 12, 34, 20, 0, time.UTC)

func newCronRunner(prompt Prompter) (*CronRunner, *bytes.Buffer, *bytes.Buffer) {
	svc := cronuc.NewService(log.New(io.Discard), cronuc.WithClock(func() time.Time { return fixedNow }))
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	return NewCronRunner(svc, prompt, out, errOut), out, errOut
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// scriptedPrompter replays canned answers in order.
type scriptedPrompter struct {
	selects  []string
	inputs   []string
	confirms []bool
}

func (p *scriptedPrompter) Select(_ string, options []string, _ string) (string, error) {
	if len(p.selects) == 0 {
		return "", errors.New("unexpected select")
	}
	answer := p.selects[0]
	p.selects = p.selects[1:]
	for _, o := range options {
		if o == answer {
			return answer, nil
		}
	}
	return "", errors.New("answer is not an option: " + answer)
}

func (p *scriptedPrompter) Input(_, _, _ string) (string, error) {
	if len(p.inputs) == 0 {
		return "", errors.New("unexpected input")
	}
	answer := p.inputs[0]
	p.inputs = p.inputs[1:]
	return answer, nil
}

func (p *scriptedPrompter) Confirm(_ string, _ bool) (bool, error) {
	if len(p.confirms) == 0 {
		return false, errors.New("unexpected confirm")
	}
	answer := p.confirms[0]
	p.confirms = p.confirms[1:]
	return answer, nil
}

func TestCronRunner_FlagsJSON(t *testing.T) {
	runner, out, _ := newCronRunner(nil)

	err := runner.Run(context.Background(), CronOptions{
		Specs: map[domain.CronField]string{
			domain.FieldSecond:    "specific:0",
			domain.FieldMinute:    "interval:15",
			domain.FieldHour:      "between:9:17",
			domain.FieldDayOfWeek: "between:MON:FRI",
		},
		Preview: 2,
		Output:  FormatJSON,
		BaseURL: "https://tools.example.com/",
	})
	require.NoError(t, err)

	var resp dto.CronResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))

	assert.Equal(t, "0 0/15 9-17 * * MON-FRI", resp.Expression)
	assert.True(t, resp.Valid)
	assert.Contains(t, resp.ShareURL, "https://tools.example.com/cron?")
	require.Len(t, resp.NextRuns, 2)
	assert.True(t, time.Date(2026, 2, 9, 9, 0, 0, 0, time.UTC).Equal(resp.NextRuns[0]))
	assert.True(t, time.Date(2026, 2, 9, 9, 15, 0, 0, time.UTC).Equal(resp.NextRuns[1]))
}

func TestCronRunner_QueryThenFlags(t *testing.T) {
	runner, out, _ := newCronRunner(nil)

	err := runner.Run(context.Background(), CronOptions{
		Query: "?m=1&a1=5&h=3&a2=4",
		Specs: map[domain.CronField]string{domain.FieldHour: "specific:3"},
	})
	require.NoError(t, err)

	text := stripANSI(out.String())
	assert.Contains(t, text, "* 0/5 3 * * *")
	assert.Contains(t, text, "Valid expression")
	assert.Contains(t, text, "Share:")
}

func TestCronRunner_InvalidFieldYAML(t *testing.T) {
	runner, out, _ := newCronRunner(nil)

	err := runner.Run(context.Background(), CronOptions{
		Specs:   map[domain.CronField]string{domain.FieldHour: "specific:24"},
		Preview: 3,
		Output:  FormatYAML,
	})
	require.ErrorIs(t, err, ErrInvalidExpression)

	var resp struct {
		Expression string `yaml:"expression"`
		Valid      bool   `yaml:"valid"`
		Fields     []struct {
			Field string `yaml:"field"`
			Error string `yaml:"error"`
		} `yaml:"fields"`
		NextRuns []time.Time `yaml:"next_runs"`
	}
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &resp))

	assert.Equal(t, "* * * * * *", resp.Expression)
	assert.False(t, resp.Valid)
	require.Len(t, resp.Fields, 6)
	assert.Equal(t, "hour", resp.Fields[2].Field)
	assert.Equal(t, "Hour value 24 is outside the valid range (0-23)", resp.Fields[2].Error)
	assert.Empty(t, resp.NextRuns)
}

func TestCronRunner_BadSpec(t *testing.T) {
	runner, out, _ := newCronRunner(nil)

	err := runner.Run(context.Background(), CronOptions{
		Specs: map[domain.CronField]string{domain.FieldMinute: "sometimes"},
	})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Contains(t, err.Error(), "--minute")
	assert.Empty(t, out.String())
}

func TestCronRunner_BadQuery(t *testing.T) {
	runner, _, _ := newCronRunner(nil)

	err := runner.Run(context.Background(), CronOptions{Query: "m=%zz"})
	assert.ErrorContains(t, err, "invalid query")
}

func TestCronRunner_InteractiveNeedsPrompter(t *testing.T) {
	runner, _, _ := newCronRunner(nil)

	err := runner.Run(context.Background(), CronOptions{Interactive: true})
	assert.Error(t, err)
}

func TestCronRunner_Interactive(t *testing.T) {
	prompt := &scriptedPrompter{
		// second, minute, hour, day of month, month, day of week
		confirms: []bool{false, true, false, true, false, false},
		selects:  []string{"interval", "interval", "last"},
		inputs:   []string{"abc", "10", "0"},
	}
	runner, out, errOut := newCronRunner(prompt)

	err := runner.Run(context.Background(), CronOptions{Interactive: true, Preview: 3})
	require.NoError(t, err)

	assert.Contains(t, stripANSI(errOut.String()), "Invalid Minute interval: abc")

	text := stripANSI(out.String())
	assert.Contains(t, text, "* 0/10 * L * *")
	assert.Contains(t, text, dto.PreviewUnsupportedMessage)

	assert.Empty(t, prompt.selects)
	assert.Empty(t, prompt.inputs)
	assert.Empty(t, prompt.confirms)
}

func TestCronRunner_TextPreview(t *testing.T) {
	runner, out, _ := newCronRunner(nil)

	err := runner.Run(context.Background(), CronOptions{
		Specs: map[domain.CronField]string{
			domain.FieldSecond: "specific:0",
			domain.FieldMinute: "specific:0",
			domain.FieldHour:   "specific:0",
		},
		Preview: 1,
	})
	require.NoError(t, err)

	text := stripANSI(out.String())
	assert.Contains(t, text, "Next runs")
	assert.Contains(t, text, "Sun 2026-02-08 00:00:00 UTC")
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/toolshed/internal/adapters/dto"
	"github.com/bnema/toolshed/internal/adapters/in/cli/ui/components"
	"github.com/bnema/toolshed/internal/boundaries/in"
	"github.com/bnema/toolshed/internal/domain"
)

// ErrInvalidExpression is returned after output when at least one field
// failed validation, so the process exits non-zero.
var ErrInvalidExpression = errors.New("cron expression has invalid fields")

const runTimeLayout = "Mon 2006-01-02 15:04:05 MST"

// CronOptions is the parsed command line of `toolshed cron`.
type CronOptions struct {
	// Specs holds raw kind[:arg...] values keyed by field. They override
	// anything read from Query.
	Specs       map[domain.CronField]string
	Query       string
	Interactive bool
	Preview     int
	Output      Format
	BaseURL     string
}

// CronRunner builds an expression from flags, a share query or prompts and
// prints it.
type CronRunner struct {
	svc    in.CronService
	prompt Prompter
	out    io.Writer
	errOut io.Writer
}

// NewCronRunner creates a runner. A nil prompter disables interactive mode.
func NewCronRunner(svc in.CronService, prompt Prompter, out, errOut io.Writer) *CronRunner {
	return &CronRunner{svc: svc, prompt: prompt, out: out, errOut: errOut}
}

// Run executes the command.
func (r *CronRunner) Run(ctx context.Context, opts CronOptions) error {
	cfg, err := r.config(opts)
	if err != nil {
		return err
	}

	if opts.Interactive {
		if r.prompt == nil {
			return errors.New("interactive mode needs a terminal")
		}
		if cfg, err = r.promptConfig(cfg); err != nil {
			return err
		}
	}

	build := r.svc.Build(ctx, cfg)
	resp := dto.NewCronResponse(build)
	resp.Query = r.svc.Encode(build.Effective()).Encode()
	resp.ShareURL = r.svc.ShareURL(strings.TrimRight(opts.BaseURL, "/")+"/cron", build.Effective())

	if opts.Preview > 0 && build.Valid() {
		runs, err := r.svc.Preview(ctx, resp.Expression, time.Time{}, opts.Preview)
		switch {
		case errors.Is(err, domain.ErrPreviewUnsupported):
			resp.PreviewError = dto.PreviewUnsupportedMessage
		case err != nil:
			resp.PreviewError = err.Error()
		default:
			resp.NextRuns = runs
		}
	}

	if opts.Output == FormatText || opts.Output == "" {
		err = r.renderText(resp)
	} else {
		err = writeStructured(r.out, opts.Output, resp)
	}
	if err != nil {
		return err
	}

	if !resp.Valid {
		return ErrInvalidExpression
	}
	return nil
}

func (r *CronRunner) config(opts CronOptions) (domain.CronConfig, error) {
	var cfg domain.CronConfig
	if opts.Query != "" {
		values, err := url.ParseQuery(strings.TrimPrefix(opts.Query, "?"))
		if err != nil {
			return cfg, fmt.Errorf("invalid query: %w", err)
		}
		cfg = r.svc.Decode(values)
	}

	for _, f := range domain.CronFields {
		spec, ok := opts.Specs[f]
		if !ok {
			continue
		}
		fc, err := ParseFieldSpec(f, spec)
		if err != nil {
			return cfg, fmt.Errorf("--%s: %w", f, err)
		}
		cfg[f] = fc
	}
	return cfg, nil
}

var argPrompts = map[string]struct{ message, help string }{
	"interval": {"Every how many?", "A whole number, e.g. 5"},
	"from":     {"From", "A number, or a name such as JAN or MON"},
	"to":       {"To", "A number, or a name such as DEC or FRI"},
	"values":   {"Values", "Comma separated, e.g. 1,15 or 1-5,10-15 for ranges"},
	"offset":   {"Days before the end of the month", "0 means the last day"},
	"weekday":  {"Weekday", "SUN MON TUE WED THU FRI SAT"},
}

// promptConfig walks the six fields, keeping the current configuration of
// any field the user does not want to change. Answers that fail validation
// are reported and asked again.
func (r *CronRunner) promptConfig(cfg domain.CronConfig) (domain.CronConfig, error) {
	for _, f := range domain.CronFields {
		current := cfg.Field(f)
		change, err := r.prompt.Confirm(fmt.Sprintf("Customize %s? (currently %s)", f.Label(), FormatFieldSpec(current)), false)
		if err != nil {
			return cfg, err
		}
		if !change {
			continue
		}

		for {
			fc, err := r.promptField(f, current)
			if err != nil {
				return cfg, err
			}
			if _, err := r.svc.FormatField(f, fc); err != nil {
				if werr := cliWriteLine(r.errOut, cliRenderWarning(err.Error())); werr != nil {
					return cfg, werr
				}
				current = fc
				continue
			}
			cfg[f] = fc
			break
		}
	}
	return cfg, nil
}

func (r *CronRunner) promptField(f domain.CronField, current domain.CronFieldConfig) (domain.CronFieldConfig, error) {
	options := f.Options()
	names := make([]string, len(options))
	for i, k := range options {
		names[i] = k.String()
	}

	choice, err := r.prompt.Select(f.Label(), names, current.Kind.String())
	if err != nil {
		return current, err
	}
	kind, err := domain.ParseOptionKind(choice)
	if err != nil {
		return current, err
	}

	fc := domain.CronFieldConfig{Kind: kind}
	for _, arg := range specArgs[kind] {
		if arg == "nth" {
			if fc.Nth, err = r.prompt.Select("Occurrence in the month", []string{"1", "2", "3", "4", "5"}, current.Nth); err != nil {
				return current, err
			}
			continue
		}

		p := argPrompts[arg]
		switch arg {
		case "interval":
			fc.Interval, err = r.prompt.Input(p.message, current.Interval, p.help)
		case "from":
			fc.From, err = r.prompt.Input(p.message, current.From, p.help)
		case "to":
			fc.To, err = r.prompt.Input(p.message, current.To, p.help)
		case "values":
			fc.Values, err = r.prompt.Input(p.message, current.Values, p.help)
		case "offset":
			def := current.LastOffset
			if def == "" {
				def = "0"
			}
			fc.LastOffset, err = r.prompt.Input(p.message, def, p.help)
		case "weekday":
			fc.Weekday, err = r.prompt.Input(p.message, current.Weekday, p.help)
		}
		if err != nil {
			return current, err
		}
	}
	return fc, nil
}

func (r *CronRunner) renderText(resp dto.CronResponse) error {
	if err := cliWriteLine(r.out, cliRenderExpression(resp.Expression)); err != nil {
		return err
	}

	rows := make([][]string, 0, len(resp.Fields))
	for _, f := range resp.Fields {
		rows = append(rows, []string{f.Label, f.Config.Kind.String(), f.Expression, f.Error})
	}
	if err := cliWriteLine(r.out, components.FieldTable(rows)); err != nil {
		return err
	}

	if resp.Valid {
		if err := cliWriteLine(r.out, cliRenderSuccess("Valid expression")); err != nil {
			return err
		}
	} else {
		if err := cliWriteLine(r.out, cliRenderError("Some fields are invalid and were replaced by *")); err != nil {
			return err
		}
	}

	if len(resp.NextRuns) > 0 {
		if err := cliWriteLine(r.out, cliRenderTitle("Next runs")); err != nil {
			return err
		}
		for _, t := range resp.NextRuns {
			if err := cliWriteLine(r.out, cliRenderListItem(t.Format(runTimeLayout))); err != nil {
				return err
			}
		}
	}
	if resp.PreviewError != "" {
		if err := cliWriteLine(r.out, cliRenderWarning(resp.PreviewError)); err != nil {
			return err
		}
	}

	return cliWriteLine(r.out, cliRenderMeta("Share:", resp.ShareURL))
}

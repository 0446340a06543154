// Package web serves the server-rendered pages of the cron builder and the
// tax estimator. Both pages are driven entirely by their query string, so
// every result has a bookmarkable link.
package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/bnema/toolshed/internal/adapters/dto"
	"github.com/bnema/toolshed/internal/adapters/in/http/api"
	"github.com/bnema/toolshed/internal/boundaries/in"
	"github.com/bnema/toolshed/internal/domain"
	"github.com/bnema/toolshed/internal/usecase/cron"
	"github.com/bnema/toolshed/internal/usecase/tax"
)

// Options holds the page settings taken from configuration.
type Options struct {
	BaseURL      string
	PreviewCount int
	TaxPeriod    domain.TaxPeriod
	Location     *time.Location
}

// Handler renders the HTML pages.
type Handler struct {
	cronSvc in.CronService
	taxSvc  in.TaxService
	opts    Options
	log     *log.Logger
}

// NewHandler creates a new page handler.
func NewHandler(cronSvc in.CronService, taxSvc in.TaxService, opts Options, logger *log.Logger) *Handler {
	if opts.TaxPeriod == "" {
		opts.TaxPeriod = domain.TaxPeriodNew
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{cronSvc: cronSvc, taxSvc: taxSvc, opts: opts, log: logger}
}

// RegisterRoutes registers the page routes on e. e.Renderer must be a *Renderer.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/cron")
	})
	e.GET("/cron", h.handleCron)
	e.GET("/tax", h.handleTax)
}

type optionView struct {
	Index    int
	Name     string
	Selected bool
}

type argView struct {
	Key   string
	Label string
	Value string
}

type fieldView struct {
	Name       string
	Label      string
	OptionKey  string
	Options    []optionView
	Args       []argView
	Expression string
	Error      string
}

type cronPage struct {
	Expression   string
	Fields       []fieldView
	ShareURL     string
	NextRuns     []string
	PreviewError string
	Timezone     string
}

var argLabels = map[domain.OptionKind][3]string{
	domain.OptionInterval:        {"Every"},
	domain.OptionBetween:         {"From", "To"},
	domain.OptionSpecific:        {"Values"},
	domain.OptionRanges:          {"Ranges"},
	domain.OptionIntervalBetween: {"From", "To", "Every"},
	domain.OptionLastDay:         {"Days before end"},
	domain.OptionNthWeekday:      {"Weekday", "Occurrence"},
	domain.OptionLastWeekday:     {"Weekday"},
}

func (h *Handler) handleCron(c echo.Context) error {
	ctx := c.Request().Context()
	cfg := h.cronSvc.DecodeRaw(c.QueryParams())
	build := h.cronSvc.Build(ctx, cfg)
	values := h.cronSvc.Encode(build.Config)

	page := cronPage{
		Expression: build.Expression.String(),
		ShareURL:   h.cronSvc.ShareURL(api.PageURL(h.opts.BaseURL, "/cron"), build.Effective()),
		Timezone:   h.opts.Location.String(),
	}

	for _, f := range domain.CronFields {
		fc := build.Config.Field(f)
		fv := fieldView{
			Name:       f.String(),
			Label:      f.Label(),
			OptionKey:  cron.OptionKey(f),
			Expression: build.Expression.Get(f),
		}
		for i, kind := range f.Options() {
			fv.Options = append(fv.Options, optionView{Index: i, Name: kind.String(), Selected: kind == fc.Kind})
		}

		a, b, cc := cron.ArgKeys(f)
		labels := argLabels[fc.Kind]
		for i, key := range []string{a, b, cc} {
			if labels[i] == "" {
				continue
			}
			fv.Args = append(fv.Args, argView{Key: key, Label: labels[i], Value: values.Get(key)})
		}
		if err := build.ErrorFor(f); err != nil {
			fv.Error = err.Error()
		}
		page.Fields = append(page.Fields, fv)
	}

	if h.opts.PreviewCount > 0 && build.Valid() {
		runs, err := h.cronSvc.Preview(ctx, page.Expression, time.Time{}, h.opts.PreviewCount)
		switch {
		case errors.Is(err, domain.ErrPreviewUnsupported):
			page.PreviewError = dto.PreviewUnsupportedMessage
		case err != nil:
			page.PreviewError = err.Error()
		}
		for _, r := range runs {
			page.NextRuns = append(page.NextRuns, r.In(h.opts.Location).Format("Mon 2006-01-02 15:04:05"))
		}
	}

	return c.Render(http.StatusOK, "cron.gohtml", page)
}

type taxForm struct {
	Base       string
	Gross      string
	Dependants string
	Probation  bool
	Percent    string
	Period     string
}

type periodView struct {
	Value    string
	Label    string
	Selected bool
}

type taxPage struct {
	Form     taxForm
	Periods  []periodView
	Error    string
	Result   *dto.TaxResponse
	Brackets []dto.TaxBracketResponse
}

func (h *Handler) handleTax(c echo.Context) error {
	form := taxForm{
		Base:       strings.TrimSpace(c.QueryParam("base")),
		Gross:      strings.TrimSpace(c.QueryParam("gross")),
		Dependants: strings.TrimSpace(c.QueryParam("dependants")),
		Probation:  c.QueryParam("probation") != "",
		Percent:    strings.TrimSpace(c.QueryParam("percent")),
		Period:     c.QueryParam("period"),
	}

	period, err := domain.ParseTaxPeriod(form.Period)
	if err != nil || form.Period == "" {
		period = h.opts.TaxPeriod
	}

	page := taxPage{Form: form}
	for _, p := range []domain.TaxPeriod{domain.TaxPeriodNew, domain.TaxPeriodLegacy} {
		page.Periods = append(page.Periods, periodView{Value: string(p), Label: periodLabel(p), Selected: p == period})
	}
	for _, b := range h.taxSvc.Brackets(period) {
		page.Brackets = append(page.Brackets, dto.TaxBracketResponse{
			Floor: tax.FormatAmount(b.Floor),
			Rate:  b.Rate.Mul(decimal.NewFromInt(100)).String() + "%",
		})
	}

	status := http.StatusOK
	if form.Base != "" || form.Gross != "" {
		input, err := parseTaxForm(form, period)
		if err == nil {
			var res *domain.TaxResult
			res, err = h.taxSvc.Compute(c.Request().Context(), input)
			if err == nil {
				page.Result = formatTaxResult(res)
			}
		}
		if err != nil {
			page.Error = err.Error()
			status = http.StatusUnprocessableEntity
		}
	}

	return c.Render(status, "tax.gohtml", page)
}

func periodLabel(p domain.TaxPeriod) string {
	if p == domain.TaxPeriodLegacy {
		return "Legacy (11,000,000 personal deduction)"
	}
	return "New (15,500,000 personal deduction)"
}

func parseTaxForm(form taxForm, period domain.TaxPeriod) (domain.TaxInput, error) {
	in := domain.TaxInput{IsProbation: form.Probation, Period: period}

	var err error
	if in.BaseSalary, err = parseAmount("base_salary", "Base salary", form.Base); err != nil {
		return in, err
	}
	if in.GrossSalary, err = parseAmount("gross_salary", "Gross salary", form.Gross); err != nil {
		return in, err
	}
	if form.Dependants != "" {
		n, convErr := strconv.Atoi(form.Dependants)
		if convErr != nil {
			return in, domain.NewValidationError("dependants", form.Dependants, "Dependants must be a whole number")
		}
		in.Dependants = n
	}
	if form.Percent != "" {
		if in.ProbationPercent, err = parseAmount("probation_percent", "Probation percent", form.Percent); err != nil {
			return in, err
		}
	}
	return in, nil
}

func parseAmount(field, label, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
	if err != nil {
		return decimal.Zero, domain.NewValidationError(field, raw, label+" must be a number")
	}
	return d, nil
}

func formatTaxResult(res *domain.TaxResult) *dto.TaxResponse {
	return &dto.TaxResponse{
		Period:           string(res.Period),
		CappedBaseSalary: tax.FormatAmount(res.CappedBaseSalary),
		InsuranceAmount:  tax.FormatAmount(res.InsuranceAmount),
		TaxableIncome:    tax.FormatAmount(res.TaxableIncome),
		TaxedAmount:      tax.FormatAmount(res.TaxedAmount),
		NetSalary:        tax.FormatAmount(res.NetSalary),
		Probation:        res.IsProbation,
		ProbationSalary:  tax.FormatAmount(res.ProbationSalary),
		Warnings:         res.Warnings,
	}
}

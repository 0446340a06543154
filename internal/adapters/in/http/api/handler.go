// Package api implements the JSON HTTP adapter for the cron builder and the
// tax estimator.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"

	"github.com/bnema/toolshed/internal/adapters/dto"
	"github.com/bnema/toolshed/internal/boundaries/in"
	"github.com/bnema/toolshed/internal/domain"
)

// maxRequestSize is the maximum allowed size for API request bodies.
const maxRequestSize = 64 << 10

// Options holds the handler settings taken from configuration.
type Options struct {
	BaseURL      string
	PreviewCount int
	TaxPeriod    domain.TaxPeriod
}

// Handler implements the JSON API.
type Handler struct {
	cronSvc in.CronService
	taxSvc  in.TaxService
	opts    Options
	log     *log.Logger
}

// NewHandler creates a new API handler.
func NewHandler(cronSvc in.CronService, taxSvc in.TaxService, opts Options, logger *log.Logger) *Handler {
	if opts.TaxPeriod == "" {
		opts.TaxPeriod = domain.TaxPeriodNew
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{
		cronSvc: cronSvc,
		taxSvc:  taxSvc,
		opts:    opts,
		log:     logger,
	}
}

// RegisterRoutes registers the API routes on e.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.handleHealth)

	g := e.Group("/api")
	g.GET("/cron", h.handleCronQuery)
	g.POST("/cron", h.handleCronBuild)
	g.POST("/tax", h.handleTax)
	g.GET("/tax/brackets", h.handleTaxBrackets)
}

func (h *Handler) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleCronQuery(c echo.Context) error {
	cfg := h.cronSvc.DecodeRaw(c.QueryParams())

	n := h.opts.PreviewCount
	if raw := c.QueryParam("preview"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return c.JSON(http.StatusBadRequest, dto.NewErrorResponse("preview", "preview must be a non-negative integer"))
		}
		n = v
	}

	return c.JSON(http.StatusOK, h.cronResponse(c.Request().Context(), cfg, n))
}

func (h *Handler) handleCronBuild(c echo.Context) error {
	c.Request().Body = http.MaxBytesReader(c.Response(), c.Request().Body, maxRequestSize)

	var req dto.CronRequest
	if err := c.Bind(&req); err != nil {
		h.log.Debug("invalid cron request", "err", err)
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
	}

	n := h.opts.PreviewCount
	if req.Preview != nil {
		if *req.Preview < 0 {
			return c.JSON(http.StatusBadRequest, dto.NewErrorResponse("preview", "preview must be a non-negative integer"))
		}
		n = *req.Preview
	}

	return c.JSON(http.StatusOK, h.cronResponse(c.Request().Context(), req.ToConfig(), n))
}

// cronResponse builds cfg, attaches the share link and, for valid
// expressions, the next n fire times.
func (h *Handler) cronResponse(ctx context.Context, cfg domain.CronConfig, n int) dto.CronResponse {
	build := h.cronSvc.Build(ctx, cfg)
	resp := dto.NewCronResponse(build)

	resp.Query = h.cronSvc.Encode(build.Effective()).Encode()
	resp.ShareURL = h.cronSvc.ShareURL(PageURL(h.opts.BaseURL, "/cron"), build.Effective())

	if n > 0 && build.Valid() {
		runs, err := h.cronSvc.Preview(ctx, resp.Expression, time.Time{}, n)
		switch {
		case errors.Is(err, domain.ErrPreviewUnsupported):
			resp.PreviewError = dto.PreviewUnsupportedMessage
		case err != nil:
			resp.PreviewError = dto.SanitizeMessage(err.Error())
		default:
			resp.NextRuns = runs
		}
	}
	return resp
}

func (h *Handler) handleTax(c echo.Context) error {
	c.Request().Body = http.MaxBytesReader(c.Response(), c.Request().Body, maxRequestSize)

	var req dto.TaxRequest
	if err := c.Bind(&req); err != nil {
		h.log.Debug("invalid tax request", "err", err)
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
	}

	input, err := req.ToInput(h.opts.TaxPeriod)
	if err != nil {
		return validationError(c, err)
	}

	res, err := h.taxSvc.Compute(c.Request().Context(), input)
	if err != nil {
		if domain.IsValidation(err) {
			return validationError(c, err)
		}
		log.FromContext(c.Request().Context()).Error("tax computation failed", "err", err)
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal Server Error"})
	}

	return c.JSON(http.StatusOK, dto.NewTaxResponse(res))
}

func (h *Handler) handleTaxBrackets(c echo.Context) error {
	name := c.QueryParam("period")
	if name == "" {
		name = string(h.opts.TaxPeriod)
	}
	period, err := domain.ParseTaxPeriod(name)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse("period", err.Error()))
	}
	return c.JSON(http.StatusOK, dto.NewTaxBracketResponses(h.taxSvc.Brackets(period)))
}

func validationError(c echo.Context, err error) error {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return c.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(verr.Field, verr.Message))
	}
	return c.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse("", err.Error()))
}

// PageURL joins baseURL and path. An empty baseURL yields path.
func PageURL(baseURL, path string) string {
	return strings.TrimRight(baseURL, "/") + path
}

// Package app wires configuration, services and adapters together and runs
// the HTTP server.
package app

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/bnema/toolshed/internal/boundaries/in"
	"github.com/bnema/toolshed/internal/config"
	"github.com/bnema/toolshed/internal/domain"
	cronusecase "github.com/bnema/toolshed/internal/usecase/cron"
	taxusecase "github.com/bnema/toolshed/internal/usecase/tax"
)

// Kernel provides in-process service access for CLI commands and the server.
//
// It does not start HTTP servers or register signal handlers.
type Kernel struct {
	cfg       *config.Config
	log       *log.Logger
	cronSvc   in.CronService
	taxSvc    in.TaxService
	taxPeriod domain.TaxPeriod
}

// NewKernel builds the services described by cfg. A nil logger uses the
// package default.
func NewKernel(cfg *config.Config, logger *log.Logger) (*Kernel, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil configuration", domain.ErrInvalidConfig)
	}
	if logger == nil {
		logger = log.Default()
	}

	loc, err := cfg.Cron.Location()
	if err != nil {
		return nil, fmt.Errorf("%w: cron.timezone: %v", domain.ErrInvalidConfig, err)
	}
	period, err := domain.ParseTaxPeriod(cfg.Tax.Period)
	if err != nil {
		return nil, fmt.Errorf("%w: tax.period: %v", domain.ErrInvalidConfig, err)
	}

	return &Kernel{
		cfg:       cfg,
		log:       logger,
		cronSvc:   cronusecase.NewService(logger, cronusecase.WithLocation(loc)),
		taxSvc:    taxusecase.NewService(logger),
		taxPeriod: period,
	}, nil
}

func (k *Kernel) Config() *config.Config { return k.cfg }

func (k *Kernel) Logger() *log.Logger { return k.log }

func (k *Kernel) Cron() in.CronService { return k.cronSvc }

func (k *Kernel) Tax() in.TaxService { return k.taxSvc }

// TaxPeriod is the period used when a request does not name one.
func (k *Kernel) TaxPeriod() domain.TaxPeriod { return k.taxPeriod }

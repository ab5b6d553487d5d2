package usecase

import (
	"github.com/secmon-lab/briareus/pkg/domain/interfaces"
	"github.com/secmon-lab/briareus/pkg/domain/model/config"
	"github.com/secmon-lab/briareus/pkg/engine"
)

type UseCases struct {
	repo       interfaces.Repository
	calcConfig *config.CalcConfig
	engineOpts []engine.Option

	Vendor     *VendorUseCase
	Process    *ProcessUseCase
	Simulation *SimulationUseCase
}

type Option func(*UseCases)

// WithCalcConfig sets the calculation configuration used by simulation
// execution
func WithCalcConfig(cfg *config.CalcConfig) Option {
	return func(uc *UseCases) {
		uc.calcConfig = cfg
	}
}

// WithEngineOptions forwards options to the simulation engine. Tests use
// this to inject a fixed-seed random source.
func WithEngineOptions(opts ...engine.Option) Option {
	return func(uc *UseCases) {
		uc.engineOpts = opts
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Vendor = NewVendorUseCase(repo)
	uc.Process = NewProcessUseCase(repo)
	uc.Simulation = NewSimulationUseCase(repo, uc.calcConfig, uc.engineOpts...)

	return uc
}

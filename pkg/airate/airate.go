// Package airate exposes the AI-likelihood estimator behind a configurable
// facade.
package airate

import (
	"context"

	"github.com/baditaflorin/l"
	adlogger "github.com/textintel/go_content_authenticity/internal/adapters/logger"
	adtextprep "github.com/textintel/go_content_authenticity/internal/adapters/textprep"
	core "github.com/textintel/go_content_authenticity/internal/core/airate"
	"github.com/textintel/go_content_authenticity/internal/core/domain"
	"github.com/textintel/go_content_authenticity/internal/ports"
	"github.com/textintel/go_content_authenticity/internal/warmup"
)

// Estimator provides methods to estimate how model-like a passage reads.
type Estimator struct {
	core   *core.Estimator
	logger ports.Logger
}

// Option defines a functional option for configuring the Estimator.
type Option func(*estimatorConfig)

type estimatorConfig struct {
	Threshold float64
	Logger    ports.Logger
	Preparer  ports.TextPreparer
	WarmUp    bool
}

// WithThreshold sets a custom decision threshold (clamped to [0.05, 0.95]).
func WithThreshold(th float64) Option {
	return func(cfg *estimatorConfig) {
		cfg.Threshold = th
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger l.Logger) Option {
	return func(cfg *estimatorConfig) {
		cfg.Logger = adlogger.FromExisting(logger)
	}
}

// WithPreparer sets a custom text preparer.
func WithPreparer(preparer ports.TextPreparer) Option {
	return func(cfg *estimatorConfig) {
		cfg.Preparer = preparer
	}
}

// WithWarmUp runs an engine warm-up during construction.
func WithWarmUp(enabled bool) Option {
	return func(cfg *estimatorConfig) {
		cfg.WarmUp = enabled
	}
}

// New creates a new Estimator with the provided functional options.
func New(opts ...Option) (*Estimator, error) {
	config := &estimatorConfig{
		Threshold: core.DefaultThreshold,
	}
	for _, opt := range opts {
		opt(config)
	}

	if config.Logger == nil {
		var err error
		config.Logger, err = adlogger.NewStdLogger()
		if err != nil {
			return nil, err
		}
	}
	if config.Preparer == nil {
		config.Preparer = adtextprep.NewDefaultPreparer()
	}

	estimator := core.NewEstimator(config.Threshold, config.Logger, config.Preparer)
	e := &Estimator{core: estimator, logger: config.Logger}
	if config.WarmUp {
		manager := warmup.NewManager(config.Logger, warmup.DefaultConfig())
		manager.RegisterEstimator(estimator)
		manager.RegisterPreparer(config.Preparer)
		manager.WarmUp(context.Background())
	}
	return e, nil
}

// Estimate computes the AI-likelihood of a passage.
func (e *Estimator) Estimate(ctx context.Context, text string) domain.AiRateResult {
	return e.core.Estimate(ctx, text)
}

package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/specialistvlad/axiomgrid/internal/config"
	"github.com/specialistvlad/axiomgrid/internal/ctxlog"
	"github.com/specialistvlad/axiomgrid/internal/planner"
	"github.com/specialistvlad/axiomgrid/internal/policy"
	"github.com/specialistvlad/axiomgrid/internal/registry"
	"github.com/specialistvlad/axiomgrid/internal/validator"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	ctx        context.Context
	outW       io.Writer
	logger     *slog.Logger
	config     *Config
	registry   *registry.Registry
	policy     *policy.Policy
	validator  validator.Interface
	model      *config.Model
	httpServer *http.Server
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
//
// Plan and policy files are loaded eagerly so that a malformed file fails
// before any collaborator is contacted.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader, modules ...registry.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	if len(modules) == 0 {
		modules = coreModules
	}
	reg := registry.NewWithModules(modules...)
	logger.Debug("Language checkers registered.", "languages", reg.Languages())

	model := &config.Model{}
	if len(cfg.PlanPaths) > 0 {
		m, err := loader.Load(ctx, cfg.PlanPaths...)
		if err != nil {
			return nil, fmt.Errorf("failed to load plan: %w", err)
		}
		model = m
		logger.Debug("Plan loaded.", "units", len(model.Units))
	}
	if cfg.PolicyPath != "" {
		m, err := loader.Load(ctx, cfg.PolicyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load policy: %w", err)
		}
		if m.Policy == nil {
			return nil, fmt.Errorf("%s declares no policy block", cfg.PolicyPath)
		}
		// The dedicated policy file wins over a policy block inside the plan.
		model.Policy = m.Policy
	}

	overrides, err := planner.Overrides(model.Policy)
	if err != nil {
		return nil, fmt.Errorf("invalid policy: %w", err)
	}
	pol := policy.Default().Apply(overrides)
	if err := reg.Validate(pol); err != nil {
		return nil, fmt.Errorf("policy does not match the registered checkers: %w", err)
	}
	logger.Debug("Policy resolved.", "banned", len(pol.Banned), "languages", pol.Languages())

	var v validator.Interface = validator.New(pol, reg)
	if cfg.CacheSize > 0 {
		cached, err := validator.NewCached(v, cfg.CacheSize)
		if err != nil {
			return nil, err
		}
		v = cached
	}

	return &App{
		ctx:       ctx,
		outW:      outW,
		logger:    logger,
		config:    cfg,
		registry:  reg,
		policy:    pol,
		validator: v,
		model:     model,
	}, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Policy returns the resolved policy.
func (a *App) Policy() *policy.Policy {
	return a.policy
}

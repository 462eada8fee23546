package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/axiomgrid/internal/artifactsink"
	"github.com/specialistvlad/axiomgrid/internal/ctxlog"
	"github.com/specialistvlad/axiomgrid/internal/executor"
	"github.com/specialistvlad/axiomgrid/internal/pipeline"
	"github.com/specialistvlad/axiomgrid/internal/validator"
	"github.com/specialistvlad/axiomgrid/internal/verify"
)

var (
	// ErrRunFailed is returned when at least one unit did not pass.
	ErrRunFailed = errors.New("run finished with failed units")
	// ErrValidationFailed is returned by the validate mode for a failing file.
	ErrValidationFailed = errors.New("artifact failed validation")
)

// extensionLanguages maps file extensions to language names for validate mode.
var extensionLanguages = map[string]string{
	".py":  "python",
	".rs":  "rust",
	".js":  "javascript",
	".mjs": "javascript",
	".ts":  "typescript",
}

// Run executes the configured mode.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.ctx = ctx
	a.logger.Debug("App.Run method started.", "mode", a.config.Mode)

	if a.config.HealthcheckPort > 0 {
		a.healthCheckServer()
		defer func() { _ = a.closeHealthCheckServer() }()
	}

	var err error
	switch a.config.Mode {
	case ModeValidate:
		err = a.runValidate(ctx)
	case ModeVerify:
		err = a.runVerify(ctx)
	default:
		err = a.runPipeline(ctx)
	}

	a.logger.Debug("App.Run method finished.")
	return err
}

// newPipeline wires a pipeline for the configured backend. The returned
// closer releases the backend and the event transports.
func (a *App) newPipeline(ctx context.Context) (*pipeline.Pipeline, closer, error) {
	agents, closeAgents, err := a.buildAgents(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build %s backend: %w", a.config.Backend, err)
	}
	pubs, err := a.buildPublisher(ctx)
	if err != nil {
		_ = closeAgents()
		return nil, nil, err
	}
	p := &pipeline.Pipeline{
		Agents:    agents,
		Policy:    a.policy,
		Validator: a.validator,
		Publisher: pubs,
	}
	return p, func() error {
		return errors.Join(pubs.Close(), closeAgents())
	}, nil
}

func (a *App) runPipeline(ctx context.Context) error {
	p, release, err := a.newPipeline(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := release(); err != nil {
			a.logger.Warn("Failed to release pipeline resources.", "error", err)
		}
	}()

	a.logger.Info("🚀 Starting pipeline run.", "backend", a.config.Backend, "max_retries", a.config.MaxRetries)
	result, err := p.RunPipeline(ctx, a.config.Requirement, a.config.MaxRetries)
	if err != nil {
		return fmt.Errorf("pipeline failed: %w", err)
	}

	if err := a.store(ctx, result); err != nil {
		return err
	}
	a.logger.Info("🏁 Pipeline finished.", "run_id", result.RunID, "success", result.Success,
		"files", len(result.Files), "iterations", result.TotalIterations)

	if !result.Success {
		return fmt.Errorf("%w: %s", ErrRunFailed, strings.Join(result.Errors, "; "))
	}
	return nil
}

// store hands passing artifacts to every configured sink.
func (a *App) store(ctx context.Context, result *executor.RunResult) error {
	sinks, err := a.buildSinks()
	if err != nil {
		return err
	}
	var errs []error
	for _, s := range sinks {
		n, err := artifactsink.WriteAll(ctx, s, result)
		if err != nil {
			errs = append(errs, err)
		}
		a.logger.Info("Artifacts stored.", "sink", fmt.Sprintf("%T", s), "count", n)
	}
	return errors.Join(errs...)
}

func (a *App) runValidate(ctx context.Context) error {
	data, err := os.ReadFile(a.config.File)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", a.config.File, err)
	}
	code := string(data)

	language := a.config.Language
	if language == "" {
		language = extensionLanguages[strings.ToLower(filepath.Ext(a.config.File))]
	}
	if language == "" {
		language = validator.DetectLanguage(code)
		a.logger.Debug("Language detected from content.", "language", language)
	}

	p := &pipeline.Pipeline{Validator: a.validator}
	outcome := p.ValidateArtifact(code, language)
	status := "PASSED"
	if !outcome.Passed {
		status = "FAILED"
	}
	fmt.Fprintf(a.outW, "%s (%s): %s\n%s\n", a.config.File, language, status, outcome.Digest())
	if !outcome.Passed {
		return fmt.Errorf("%w: %s", ErrValidationFailed, a.config.File)
	}
	return nil
}

func (a *App) runVerify(ctx context.Context) error {
	p, release, err := a.newPipeline(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := release(); err != nil {
			a.logger.Warn("Failed to release pipeline resources.", "error", err)
		}
	}()

	report, err := verify.Check(ctx, a.config.VerifyRuns, func(ctx context.Context) (*executor.RunResult, error) {
		return p.RunPipeline(ctx, a.config.Requirement, a.config.MaxRetries)
	})
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}
	fmt.Fprintf(a.outW, "Deterministic across %d runs: %s\n", report.Runs, report.Hashes[0])
	return nil
}

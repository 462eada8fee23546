package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/specialistvlad/axiomgrid/internal/agent"
	"github.com/specialistvlad/axiomgrid/internal/artifactsink"
	"github.com/specialistvlad/axiomgrid/internal/events"
	"github.com/specialistvlad/axiomgrid/internal/planner"
	"github.com/specialistvlad/axiomgrid/modules/gemini"
	"github.com/specialistvlad/axiomgrid/modules/http_client"
	"github.com/specialistvlad/axiomgrid/modules/nats"
	"github.com/specialistvlad/axiomgrid/modules/offline"
	"github.com/specialistvlad/axiomgrid/modules/print"
	"github.com/specialistvlad/axiomgrid/modules/s3"
	"github.com/specialistvlad/axiomgrid/modules/socketio"
)

// closer releases resources acquired while wiring a run.
type closer func() error

// buildAgents assembles the three collaborators for the configured backend.
// A static plan always replaces the model's planner, so a Gemini run over a
// plan file only generates and repairs.
func (a *App) buildAgents(ctx context.Context) (agent.Agents, closer, error) {
	noop := func() error { return nil }

	switch a.config.Backend {
	case BackendGemini:
		httpClient, err := http_client.New(a.config.HTTPTimeout)
		if err != nil {
			return agent.Agents{}, noop, err
		}
		client, err := gemini.NewClient(ctx, gemini.Config{
			APIKey:     a.config.GeminiAPIKey,
			Model:      a.config.GeminiModel,
			HTTPClient: httpClient,
		})
		if err != nil {
			return agent.Agents{}, noop, err
		}
		agents := gemini.NewAgents(client)
		if len(a.model.Units) > 0 {
			agents.Planner = planner.NewStatic(a.model)
		}
		a.logger.Debug("Gemini backend ready.", "model", client.Name())
		return agents, func() error { return http_client.Close(httpClient) }, nil
	default:
		return agent.Agents{
			Planner:   planner.NewStatic(a.model),
			Generator: &offline.Generator{},
			Repairer:  offline.NewRepairer(a.policy),
		}, noop, nil
	}
}

// buildPublisher fans events out to the console, the structured log, and
// any configured remote transport.
func (a *App) buildPublisher(ctx context.Context) (events.Multi, error) {
	pubs := events.Multi{
		print.New(a.outW, a.config.Verbose),
		&events.LogPublisher{},
	}

	if a.config.NATSURL != "" {
		p, err := nats.NewPublisher(a.config.NATSURL)
		if err != nil {
			_ = pubs.Close()
			return nil, err
		}
		pubs = append(pubs, p)
		a.logger.Info("Publishing events to NATS.", "url", a.config.NATSURL)
	}
	if a.config.SocketIOURL != "" {
		p, err := socketio.Dial(ctx, socketio.Options{URL: a.config.SocketIOURL})
		if err != nil {
			_ = pubs.Close()
			return nil, err
		}
		pubs = append(pubs, p)
		a.logger.Info("Publishing events to Socket.IO.", "url", a.config.SocketIOURL)
	}
	return pubs, nil
}

// buildSinks returns the artifact destinations. An empty list means the run
// only reports.
func (a *App) buildSinks() ([]artifactsink.Sink, error) {
	var sinks []artifactsink.Sink
	if a.config.OutDir != "" {
		sinks = append(sinks, &artifactsink.Dir{Root: a.config.OutDir})
	}
	if a.config.S3.Bucket != "" {
		var transport http.RoundTripper = http_client.NewTransport()
		sink, err := s3.New(s3.Config{
			Endpoint:  a.config.S3.Endpoint,
			Region:    a.config.S3.Region,
			AccessKey: a.config.S3.AccessKey,
			SecretKey: a.config.S3.SecretKey,
			Bucket:    a.config.S3.Bucket,
			UseSSL:    a.config.S3.UseSSL,
			Transport: transport,
		})
		if err != nil {
			return nil, fmt.Errorf("s3 sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	return sinks, nil
}

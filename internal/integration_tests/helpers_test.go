package integration_tests

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/axiomgrid/internal/agent"
	"github.com/specialistvlad/axiomgrid/internal/config"
	"github.com/specialistvlad/axiomgrid/internal/hcl_adapter"
	"github.com/specialistvlad/axiomgrid/internal/pipeline"
	"github.com/specialistvlad/axiomgrid/internal/planner"
	"github.com/specialistvlad/axiomgrid/internal/policy"
	"github.com/specialistvlad/axiomgrid/internal/registry"
	"github.com/specialistvlad/axiomgrid/internal/testutil"
	"github.com/specialistvlad/axiomgrid/internal/validator"
	"github.com/specialistvlad/axiomgrid/modules/javascript"
	"github.com/specialistvlad/axiomgrid/modules/python"
	"github.com/specialistvlad/axiomgrid/modules/rust"
	"github.com/stretchr/testify/require"
)

// harness wires a pipeline over an HCL plan with scripted collaborators.
type harness struct {
	Pipeline  *pipeline.Pipeline
	Generator *testutil.FixedGenerator
	Repairer  *testutil.CountingRepairer
	Events    *testutil.RecordingPublisher
}

// loadPlan writes files into a temp dir and loads them with the HCL loader.
func loadPlan(t *testing.T, files map[string]string) *config.Model {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}
	model, err := hcl_adapter.NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	return model
}

// newHarness resolves the model's policy and builds a pipeline whose
// generator and repairer are test doubles.
func newHarness(t *testing.T, model *config.Model) *harness {
	t.Helper()
	overrides, err := planner.Overrides(model.Policy)
	require.NoError(t, err)
	pol := policy.Default().Apply(overrides)
	reg := registry.NewWithModules(&python.Module{}, &rust.Module{}, &javascript.Module{})
	require.NoError(t, reg.Validate(pol))

	h := &harness{
		Generator: &testutil.FixedGenerator{},
		Repairer:  &testutil.CountingRepairer{},
		Events:    &testutil.RecordingPublisher{},
	}
	h.Pipeline = &pipeline.Pipeline{
		Agents: agent.Agents{
			Planner:   planner.NewStatic(model),
			Generator: h.Generator,
			Repairer:  h.Repairer,
		},
		Policy:    pol,
		Validator: validator.New(pol, reg),
		Publisher: h.Events,
		NewRunID:  func() (string, error) { return "run-test", nil },
	}
	return h
}

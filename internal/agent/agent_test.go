package agent

import (
	"context"
	"testing"

	"github.com/specialistvlad/axiomgrid/internal/task"
	"github.com/specialistvlad/axiomgrid/internal/topologystore"
	"github.com/stretchr/testify/assert"
)

type stubPlanner struct{}

func (stubPlanner) Plan(context.Context, string) (topologystore.Store, error) { return nil, nil }

type stubGenerator struct{}

func (stubGenerator) Generate(context.Context, *task.Task) (string, error) { return "x = 1", nil }

type stubRepairer struct{}

func (stubRepairer) Repair(context.Context, *task.RepairTask) (string, error) { return "x = 1", nil }

func TestAgents_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		agents  Agents
		wantErr string
	}{
		{"complete", Agents{stubPlanner{}, stubGenerator{}, stubRepairer{}}, ""},
		{"no planner", Agents{nil, stubGenerator{}, stubRepairer{}}, "no planner configured"},
		{"no generator", Agents{stubPlanner{}, nil, stubRepairer{}}, "no generator configured"},
		{"no repairer", Agents{stubPlanner{}, stubGenerator{}, nil}, "no repairer configured"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.agents.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tc.wantErr)
		})
	}
}

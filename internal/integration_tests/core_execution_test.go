package integration_tests

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/specialistvlad/axiomgrid/internal/events"
	"github.com/specialistvlad/axiomgrid/internal/executor"
	"github.com/specialistvlad/axiomgrid/internal/testutil"
	"github.com/specialistvlad/axiomgrid/internal/unitid"
)

const diamondHCL = `
unit "app.top" {
  path       = "app/top.py"
  kind       = kind.python
  depends_on = ["app.left", "app.right"]
  function "top" { returns = "str" }
}

unit "app.left" {
  path       = "app/left.py"
  kind       = kind.python
  depends_on = ["app.base"]
  function "left" { returns = "str" }
}

unit "app.right" {
  path       = "app/right.py"
  kind       = kind.python
  depends_on = ["app.base"]
  function "right" { returns = "str" }
}

unit "app.base" {
  path = "app/base.py"
  kind = kind.python
  function "base" { returns = "str" }
}
`

// Test for: a diamond plan is processed dependencies-first with a
// lexicographic tie-break, and every stub is repaired exactly once.
func TestCoreExecution_DiamondRepairedInOrder(t *testing.T) {
	// --- Arrange ---
	model := loadPlan(t, map[string]string{"plan.hcl": diamondHCL})
	h := newHarness(t, model)
	h.Generator.Code = map[unitid.ID]string{}
	for _, id := range []unitid.ID{"app.base", "app.left", "app.right", "app.top"} {
		h.Generator.Code[id] = testutil.Stub(id)
	}

	// --- Act ---
	result, err := h.Pipeline.RunPipeline(context.Background(), "diamond", 3)

	// --- Assert ---
	if err != nil {
		t.Fatalf("RunPipeline() returned an unexpected error: %v", err)
	}
	want := &executor.RunResult{
		RunID:           "run-test",
		Success:         true,
		TotalIterations: 8,
		Files: []executor.GeneratedFile{
			{Unit: "app.base", Path: "app/base.py", Language: "python", Passed: true, Iterations: 2},
			{Unit: "app.left", Path: "app/left.py", Language: "python", Passed: true, Iterations: 2},
			{Unit: "app.right", Path: "app/right.py", Language: "python", Passed: true, Iterations: 2},
			{Unit: "app.top", Path: "app/top.py", Language: "python", Passed: true, Iterations: 2},
		},
	}
	opts := cmp.Options{
		cmpopts.IgnoreFields(executor.GeneratedFile{}, "Content"),
		cmpopts.EquateEmpty(),
	}
	if diff := cmp.Diff(want, result, opts); diff != "" {
		t.Errorf("RunResult mismatch (-want +got):\n%s", diff)
	}
	for _, f := range result.Files {
		if f.Content != testutil.Clean(f.Unit) {
			t.Errorf("unit %s: got content %q, want the repaired candidate", f.Unit, f.Content)
		}
	}
}

// Test for: each generation task sees only its direct dependencies, in
// declared order, already indexed.
func TestCoreExecution_DirectDependencyContext(t *testing.T) {
	// --- Arrange ---
	model := loadPlan(t, map[string]string{"plan.hcl": diamondHCL})
	h := newHarness(t, model)

	// --- Act ---
	if _, err := h.Pipeline.RunPipeline(context.Background(), "diamond", 3); err != nil {
		t.Fatalf("RunPipeline() returned an unexpected error: %v", err)
	}

	// --- Assert ---
	top := h.Generator.TaskFor("app.top")
	if top == nil {
		t.Fatal("no generation task recorded for app.top")
	}
	var got []string
	for _, dep := range top.Context {
		if !dep.Indexed || !dep.Passed {
			t.Errorf("dependency %s should be indexed and passed", dep.ID)
		}
		got = append(got, dep.ID.String()+":"+dep.Interface.Functions[0].Name)
	}
	if diff := cmp.Diff([]string{"app.left:left", "app.right:right"}, got); diff != "" {
		t.Errorf("dependency context mismatch (-want +got):\n%s", diff)
	}
}

// Test for: progress events are published in processing order and bracket
// the run.
func TestCoreExecution_EventSequence(t *testing.T) {
	// --- Arrange ---
	model := loadPlan(t, map[string]string{"plan.hcl": `
unit "one" {
  path = "one.py"
  kind = kind.python
}
unit "two" {
  path       = "two.py"
  kind       = kind.python
  depends_on = ["one"]
}
`})
	h := newHarness(t, model)

	// --- Act ---
	if _, err := h.Pipeline.RunPipeline(context.Background(), "pair", 1); err != nil {
		t.Fatalf("RunPipeline() returned an unexpected error: %v", err)
	}

	// --- Assert ---
	want := []string{
		events.TopicRunStarted,
		events.TopicUnitStarted, events.TopicIteration, events.TopicUnitPassed, events.TopicInterfaceIndexed,
		events.TopicUnitStarted, events.TopicIteration, events.TopicUnitPassed, events.TopicInterfaceIndexed,
		events.TopicRunFinished,
	}
	if diff := cmp.Diff(want, h.Events.Topics()); diff != "" {
		t.Errorf("event topics mismatch (-want +got):\n%s", diff)
	}
	finished, ok := h.Events.Events[len(h.Events.Events)-1].Event.(events.RunFinished)
	if !ok || !finished.Success || finished.Files != 2 {
		t.Errorf("unexpected run finished event: %+v", h.Events.Events[len(h.Events.Events)-1].Event)
	}
}

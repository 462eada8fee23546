// Package scheduler turns a run's dependency graph into the sequence of units
// the orchestrator processes.
//
// Execution is strictly sequential: a unit's context depends on the interfaces
// indexed for the units before it. Independent branches could run in
// parallel; that is left as an extension and not done here.
package scheduler

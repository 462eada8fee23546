// Package graph provides a unified facade over a run's two stores: the
// dependency graph (topologystore) and the mutable unit state (unitstore).
//
// # Why Graph Package Exists
//
// The orchestrator needs structure queries (order, pruned context) and state
// updates (status, artifacts, failures, interface index) for the same unit.
// The facade gives it one API and keeps the storage split an implementation
// detail.
//
// # State Transitions
//
// Units move through:
//
//	Pending → Generating → Repairing → Passed
//	                                 ↘ Failed
//
// A unit can also fail straight from Generating when the generator errors.
// Whatever the outcome, the unit is indexed afterwards (the librarian step)
// so that dependents still see its declared signature.
//
// # Lifecycle
//
//  1. **Created** by the session factory with both stores injected
//  2. **Queried** by the scheduler for the order
//  3. **Updated** by the orchestrator while it walks the order
//  4. **Discarded** when the session ends
package graph

// Package inmemorytopology provides the in-memory implementation of the
// topologystore.Store dependency graph.
//
// Insertion runs a reachability search from each declared dependency back to
// the inserted unit, so a cycle is rejected before any state changes. Ordering
// uses in-degree reduction with a min-heap ready set keyed by identifier,
// which makes the order a pure function of the inserted units.
package inmemorytopology

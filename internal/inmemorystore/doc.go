// Package inmemorystore provides a thread-safe, in-memory implementation
// of the unitstore.Store interface. Run state is never persisted.
package inmemorystore

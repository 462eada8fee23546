// Package config defines the format-agnostic configuration model for the
// application, along with the Loader interface for reading it from files.
//
// The `config.Model` is the single source of truth for the static planner and
// for policy overrides. Concrete implementations of the Loader, such as for
// HCL, are provided in separate packages.
package config

// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the execution lifecycle of the three modes
// (run, validate, verify), decoupled from any specific entrypoint like a CLI.
//
// The App is the only place where the pure core meets I/O: it loads plan and
// policy files, builds the collaborator backend, attaches event transports,
// and hands finished artifacts to the configured sinks.
package app

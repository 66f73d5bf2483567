// Package cli defines the Cobra command tree for the giro CLI. Each file in
// this package registers one top-level command (install, update, sync, etc.)
// with the root command. Command implementations delegate to internal packages
// for the actual work and only handle flag parsing, I/O formatting, and user
// interaction.
package cli

// Package kiropaths resolves every path the CLI manages: the ~/.kiro home
// tree, the template checkout inside it, the managed section directories, and
// the sync destination. All resolutions honor KIRO_* environment overrides so
// tests and sandboxed installs never touch the real home directory.
package kiropaths

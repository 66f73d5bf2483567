// Package updater implements self-update for the giro binary. It queries
// GitHub Releases (or a configured mirror) for newer versions, downloads the
// platform archive, verifies its checksum, and swaps the running executable
// with rollback on failure. A daily-cached version check feeds the startup
// banner so normal commands never wait on the network.
package updater

// Package cli provides the interactive CallSecure command-line client.
//
// It wires configuration, local storage, the auth service and an interactive
// REPL. Typical flow: restore a remembered session or prompt the user to
// register and log in, then show the security dashboard.
//
// Key features:
//   - Register / Login (with "remember me") / Logout
//   - Dashboard with overview, monitoring, devices and alerts tabs
//   - Export / Import of the local key/value store
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli

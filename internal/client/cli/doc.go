// Package cli provides the interactive gym administration console.
//
// It wires the session manager, the route guard and the customer services
// into a line-oriented REPL. Typical flow: restore the session of the
// current shell, prompt for credentials when there is none, start a
// background connectivity watcher, and execute operator commands.
//
// Every screen is reached through App.Navigate, which resolves a path,
// asks the guard for a decision and renders the result. When the API
// answers 401 the console announces the expiry once and returns to the
// login screen.
//
// The REPL is started via App.Run(ctx), which blocks until the operator exits.
package cli

// Package app boots catlog and owns the process lifecycle: configuration,
// the diagnostics log, device selection, the log pump and the terminal
// session, with guaranteed terminal restore on every exit path.
package app

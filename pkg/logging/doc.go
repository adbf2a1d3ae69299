// Package logging provides the named logger registry used throughout
// metarootbus. Every component logs through a *slog.Logger obtained by
// name from Get; the registry hands back the same instance for the same
// name, matching the process-wide keyed logger cache the config's
// SCREEN_VERBOSITY/FILE_VERBOSITY/LOG_FILE keys describe.
//
// Configure wires the console sink (always on) and an optional file sink.
// LOG_FILE=$NONE (or a nil writer) disables the file sink; the two sinks
// carry independent level filters so the console and the file can run at
// different verbosity.
package logging

// Package logging configures log/slog for tunerd and the tuner CLI.
//
// Records are JSON on stderr and always carry "module" and "version":
//
//	{"time":"2026-03-02T09:14:07Z","level":"INFO","msg":"upgrade installed",
//	 "module":"tunerd","version":"v0.3.0","id":"v4","upgrade":"Full Exhaust"}
//
// The level comes from LOG_LEVEL (debug, info, warn or warning, error; case
// does not matter) and defaults to info. Debug records include the source
// location.
//
//	logging.SetDefaultStructuredLogger("tunerd", version)
//	logging.SetDefaultStructuredLoggerWithLevel("tuner", version, cmd.String("log-level"))
//
// NewLogLogger adapts the default handler to a *log.Logger for APIs such as
// http.Server.ErrorLog.
package logging

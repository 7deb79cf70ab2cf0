// Package logging provides structured logging for gwscan.
//
// This package wraps a zap logger configured for terminal use. The scanning
// packages never use the package-level logger directly; the CLI builds it
// here and hands it down as a *zap.Logger.
//
// # Log Levels
//
//   - Debug: Per-address failures (refused connections, probe mismatches, timeouts)
//   - Info: Scan start and end summaries
//   - Warn: Non-fatal issues (interrupted scans, unreadable OUI database)
//   - Error: Failures that end the command
//
// # Verbosity
//
// The CLI maps repeated -v flags onto levels with LevelFromVerbosity:
//
//	gwscan          warn
//	gwscan -v       info
//	gwscan -vv      debug
//
// The GWSCAN_LOG_LEVEL environment variable is used when no level is passed
// to Initialize.
//
// # Output
//
// Logs go to stderr in console format so that stdout only carries the scan
// result:
//
//	2026-10-15T10:30:45.123+0200  INFO  scanner/scanner.go:121  Scanning range
//	  {"component": "scanner", "range": "192.168.1.1..192.168.1.255", "addresses": 255}
package logging

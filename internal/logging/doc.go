// Package logging provides structured logging for the dotjson daemon and CLI.
//
// This package wraps zap logger with convenience functions for common logging
// patterns used throughout the daemon. It provides both general logging
// functions and specialized functions for registry and protocol events.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (document writes, frame payloads)
//   - Info: Normal operations (connections, operations, loads)
//   - Warn: Non-fatal issues (connection drops, retries)
//   - Error: Fatal issues (startup failures, critical errors)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Client connected",
//	    zap.String("remote_addr", "192.168.1.100"),
//	    zap.String("op", "get_value"),
//	)
//
// # Specialized Logging
//
// The package provides domain-specific logging functions:
//
// Connection Logging:
//
//	logging.LogConnection(remoteAddr, "connection_accepted")
//	logging.LogConnection(remoteAddr, "websocket_upgraded")
//	logging.LogConnection(remoteAddr, "websocket_closed")
//
// Operation Logging:
//
//	logging.LogOperation(remoteAddr, "get_value", "default")
//	logging.LogOperationResult(remoteAddr, "get_value", "ok")
//
// Registry Logging:
//
//	logging.LogDocumentLoad("configuration", "default", "/etc/app/config.json")
//	logging.LogDocumentWrite("/etc/app/config.json")
//
// # Configuration
//
// Initialize logging at daemon startup:
//
//	if err := logging.Initialize("debug"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// CLI commands use InitializeFromEnv instead, which stays silent unless the
// DOTJSON_LOG_LEVEL environment variable asks for output.
//
// # Output Format
//
// Logs are written to stdout in console format (human-readable):
//
//	2026-08-23T10:30:45.123-0800  INFO  Connection event
//	  remote_addr=192.168.1.100
//	  event=connection_accepted
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap logger
// handles synchronization automatically.
package logging

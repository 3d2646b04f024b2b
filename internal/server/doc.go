// Package server implements the dotjsond daemon.
//
// The daemon serves a configuration and language registry pair to remote
// callers over a WebSocket JSON protocol, with a small read-only HTTP
// surface beside it and optional mDNS advertisement so clients can find the
// daemon without knowing its address.
//
// # Endpoints
//
//   - /ws: WebSocket endpoint speaking the protocol defined in
//     internal/protocol. One JSON request per text frame, one response per
//     request.
//   - /healthz: GET returns daemon status, version, and registry entry counts.
//   - /api/list: GET mirrors the list protocol operation for callers that
//     only speak plain HTTP (curl, load balancer checks).
//
// # Usage Example
//
//	configs := dotjson.NewConfigRegistry()
//	languages := dotjson.NewLanguageRegistry()
//	// ... load documents, typically via a manifest ...
//
//	srv, err := server.New(&server.Config{
//	    Host:     "",    // Listen on all interfaces
//	    Port:     7600,  // Default dotjsond port
//	    LogLevel: "info",
//	}, configs, languages)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Start blocks until shutdown signal or error
//	if err := srv.Start(); err != nil {
//	    log.Fatal(err)
//	}
//
// # TLS
//
// TLS is file-based and optional: set both CertPath and KeyPath in the
// Config. The daemon requires TLS 1.2 or newer.
//
// # Discovery
//
// Unless disabled, the daemon registers itself as a "_dotjson._tcp" mDNS
// service with a TXT record carrying its version. The discovery package and
// the discover command browse for these registrations. Registration failure
// is logged and otherwise ignored; an undiscoverable daemon still serves.
//
// # Connection Lifecycle
//
// Each WebSocket connection runs a request/response loop in its own
// goroutine. Connections idle for more than a minute are closed; clients
// that hold a connection open send the ping operation (or WebSocket-level
// pings) as keepalive.
//
// # Graceful Shutdown
//
// The daemon handles SIGINT and SIGTERM:
//  1. Withdraw the mDNS advertisement
//  2. Stop accepting new connections
//  3. Send close frames on active WebSocket connections
//  4. Wait for connection goroutines to drain, bounded by a timeout
//
// # Thread Safety
//
// The daemon is fully concurrent. Registry locking serializes document
// access; connection tracking has its own mutex.
package server

// Package client implements a WebSocket client for dotjsond daemons.
//
// The client speaks the protocol defined in internal/protocol: one JSON
// request per text frame, one response per request. Connections are dialed
// lazily on the first operation and reused until Close or a transport
// failure; failed round trips retry on a fresh connection with exponential
// backoff.
//
// # Usage Example
//
//	c := client.NewClient("192.168.1.50:7600")
//	defer c.Close()
//
//	host, err := c.GetValue("app", "database.host")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(host)
//
// # Error Mapping
//
// Failures reported by the daemon carry stable taxonomy codes on the wire.
// The client rebuilds them as dotjson registry errors, so remote and local
// operations fail the same way:
//
//	_, err := c.GetValue("missing", "any.key")
//	if dotjson.IsNotLoaded(err) {
//	    // the daemon has no configuration named "missing"
//	}
//
// Transport failures (unreachable daemon, timeouts) are plain wrapped errors
// and do not match any taxonomy predicate.
//
// # Thread Safety
//
// A Client is safe for concurrent use. Round trips are serialized on the
// single underlying connection.
package client

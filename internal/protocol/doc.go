// Package protocol implements the dotjsond wire protocol.
//
// This package handles parsing, validation, and construction of the JSON
// request/response messages exchanged between dotjson clients and a dotjsond
// daemon. Messages travel as WebSocket text frames, one JSON object per
// frame, with responses echoing the request's id and op.
//
// # Protocol Overview
//
// A request names an operation and its operands:
//
//	{"id": 7, "op": "get_value", "name": "default", "key": "database.host"}
//
// The daemon answers every frame with exactly one response:
//
//	{"id": 7, "op": "get_value", "ok": true, "value": "localhost"}
//
// Failures flip ok and carry a machine-readable error:
//
//	{"id": 7, "op": "get_value", "ok": false,
//	 "error": {"code": "not_loaded", "message": "configuration \"default\" not loaded"}}
//
// Error codes are the registry error taxonomy tokens (already_loaded,
// not_loaded, file_not_found, invalid_format, invalid_argument) plus
// "internal" for faults outside the taxonomy.
//
// # Operations
//
//   - ping: liveness probe; answers with the daemon identity string
//   - list: inventory of loaded configurations, languages, active language
//   - get_value: dotted-key lookup against a named configuration
//   - set_value: dotted-key assignment, persisted server-side
//   - translate: translation lookup through the active language, with an
//     optional per-call language override
//   - get_document: fetch a whole parsed document from either registry
//
// # Usage Example - Client Side
//
//	req := protocol.NewGetValueRequest("default", "database.host")
//	data, err := protocol.EncodeRequest(req)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// write data, read reply...
//	resp, err := protocol.ParseResponse(reply)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	var host string
//	if err := protocol.DecodeValue(resp, &host); err != nil {
//	    log.Fatal(err)
//	}
//
// # Usage Example - Server Side
//
//	handler := protocol.NewHandler(configs, languages)
//	// for each frame read from the WebSocket:
//	reply := handler.Handle(remoteAddr, frame)
//	// write reply back
//
// # Error Handling
//
// The package distinguishes between:
//   - Parse errors: frames that are not valid JSON
//   - Validation errors: known JSON shape but missing or illegal fields
//   - Registry errors: valid operations that fail against the registries
//
// All three come back to the client as error responses; a frame never goes
// unanswered.
//
// # Thread Safety
//
// Parsing and construction functions are stateless and safe for concurrent
// use. Request ID generation uses atomic operations. Handler methods are as
// concurrent as the registries they wrap.
package protocol

package protocol

import (
	"encoding/json"
	"fmt"
)

// Wire protocol for the dotjsond daemon. Requests and responses are single
// JSON objects carried in WebSocket text frames, one message per frame.

const (
	// MaxMessageSize is the largest frame either side accepts. Documents
	// bigger than this must be served out of band.
	MaxMessageSize = 1 << 20 // 1 MiB
)

// Operation names. Every request carries exactly one.
const (
	OpPing        = "ping"
	OpList        = "list"
	OpGetValue    = "get_value"
	OpSetValue    = "set_value"
	OpTranslate   = "translate"
	OpGetDocument = "get_document"
)

// IsKnownOp reports whether op names a protocol operation.
func IsKnownOp(op string) bool {
	switch op {
	case OpPing, OpList, OpGetValue, OpSetValue, OpTranslate, OpGetDocument:
		return true
	default:
		return false
	}
}

// Request is one client operation. Which fields are required depends on the
// operation; ParseRequest enforces that.
type Request struct {
	ID uint64 `json:"id"`
	Op string `json:"op"`

	// Registry selects "configuration" or "language" for get_document.
	Registry string `json:"registry,omitempty"`

	// Name addresses a registry entry (get_value, set_value, get_document).
	Name string `json:"name,omitempty"`

	// Key is the dotted lookup key (get_value, set_value, translate).
	Key string `json:"key,omitempty"`

	// Value is the raw JSON value to assign (set_value). Raw bytes keep
	// "field absent" distinguishable from an explicit null.
	Value json.RawMessage `json:"value,omitempty"`

	// Lang overrides the active language for a single translate call.
	Lang string `json:"lang,omitempty"`
}

// String returns a compact description for logging.
func (r *Request) String() string {
	target := r.Name
	if target == "" {
		target = r.Lang
	}
	if r.Key != "" {
		return fmt.Sprintf("%s(%s %s)", r.Op, target, r.Key)
	}
	if target != "" {
		return fmt.Sprintf("%s(%s)", r.Op, target)
	}
	return r.Op
}

// Target returns the registry entry the request addresses, or "" for
// registry-wide operations. Used for operation logging.
func (r *Request) Target() string {
	if r.Name != "" {
		return r.Name
	}
	return r.Lang
}

// Response answers one request, echoing its ID and operation. Exactly one of
// the payload fields is set on success; Error is set instead when OK is
// false.
type Response struct {
	ID uint64 `json:"id"`
	Op string `json:"op"`
	OK bool   `json:"ok"`

	// Value carries the operation result as raw JSON: the resolved value for
	// get_value, the translated string for translate, the full document for
	// get_document, and the server identity for ping.
	Value json.RawMessage `json:"value,omitempty"`

	// List carries the registry inventory for the list operation.
	List *ListResult `json:"list,omitempty"`

	Error *WireError `json:"error,omitempty"`
}

// ListResult inventories both registries.
type ListResult struct {
	Configs        []ListEntry `json:"configs"`
	Languages      []ListEntry `json:"languages"`
	ActiveLanguage string      `json:"active_language,omitempty"`
}

// ListEntry describes one loaded registry entry. Path is set for
// configurations (which track their source file) and empty for languages.
type ListEntry struct {
	Name string `json:"name"`
	Path string `json:"path,omitempty"`
}

// WireError is the machine-readable failure payload. Code is a stable error
// taxonomy token ("not_loaded", "file_not_found", ...); Message is
// human-readable.
type WireError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface so clients can return wire errors
// directly.
func (e *WireError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// CodeInternal marks failures outside the registry error taxonomy (I/O
// faults, marshalling).
const CodeInternal = "internal"

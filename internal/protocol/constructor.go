package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/wrrulos/dotjson"
)

// Request constructor library for building protocol messages to send to a
// dotjsond daemon. The CLI's --remote mode and the client package build all
// their traffic through these.

// Global request ID counter (thread-safe)
var requestIDCounter uint64

// GenerateRequestID returns the next request ID for outgoing messages.
// IDs are sequential starting from 1; zero is never returned so an unset ID
// field stays distinguishable. Thread-safe using atomic operations.
func GenerateRequestID() uint64 {
	for {
		id := atomic.AddUint64(&requestIDCounter, 1)
		if id != 0 {
			return id
		}
	}
}

// NewPingRequest builds a liveness probe. The daemon answers with its
// identity string.
func NewPingRequest() *Request {
	return &Request{ID: GenerateRequestID(), Op: OpPing}
}

// NewListRequest builds a registry inventory request.
func NewListRequest() *Request {
	return &Request{ID: GenerateRequestID(), Op: OpList}
}

// NewGetValueRequest builds a dotted-key lookup against the named
// configuration.
func NewGetValueRequest(name, key string) *Request {
	return &Request{ID: GenerateRequestID(), Op: OpGetValue, Name: name, Key: key}
}

// NewSetValueRequest builds an assignment of value at the dotted key inside
// the named configuration. The value is marshalled immediately so an
// unencodable value fails here rather than mid-send.
func NewSetValueRequest(name, key string, value any) (*Request, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode value: %w", err)
	}
	return &Request{ID: GenerateRequestID(), Op: OpSetValue, Name: name, Key: key, Value: raw}, nil
}

// NewTranslateRequest builds a translation lookup. An empty lang uses the
// daemon's active language; a non-empty lang overrides it for this call.
func NewTranslateRequest(key, lang string) *Request {
	return &Request{ID: GenerateRequestID(), Op: OpTranslate, Key: key, Lang: lang}
}

// NewGetDocumentRequest builds a whole-document fetch. Registry selects
// "configuration" or "language".
func NewGetDocumentRequest(registry, name string) *Request {
	return &Request{ID: GenerateRequestID(), Op: OpGetDocument, Registry: registry, Name: name}
}

// EncodeRequest serializes a request to its wire form.
func EncodeRequest(req *Request) ([]byte, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	if len(data) > MaxMessageSize {
		return nil, fmt.Errorf("request too large: %d bytes (max %d)", len(data), MaxMessageSize)
	}
	return data, nil
}

// EncodeResponse serializes a response to its wire form.
func EncodeResponse(resp *Response) ([]byte, error) {
	data, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to encode response: %w", err)
	}
	return data, nil
}

// NewValueResponse builds a success response carrying one JSON value.
func NewValueResponse(req *Request, value any) (*Response, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode response value: %w", err)
	}
	return &Response{ID: req.ID, Op: req.Op, OK: true, Value: raw}, nil
}

// NewListResponse builds a success response carrying a registry inventory.
func NewListResponse(req *Request, list *ListResult) *Response {
	return &Response{ID: req.ID, Op: req.Op, OK: true, List: list}
}

// NewOKResponse builds a payload-less success response (set_value).
func NewOKResponse(req *Request) *Response {
	return &Response{ID: req.ID, Op: req.Op, OK: true}
}

// NewErrorResponse builds a failure response from any error. Registry errors
// map to their taxonomy token; everything else is reported as internal.
func NewErrorResponse(req *Request, err error) *Response {
	resp := &Response{Op: req.Op, ID: req.ID}
	resp.Error = classifyError(err)
	return resp
}

// classifyError maps an error to its wire payload.
func classifyError(err error) *WireError {
	var regErr *dotjson.RegistryError
	if errors.As(err, &regErr) {
		return &WireError{Code: regErr.Type.String(), Message: regErr.Error()}
	}

	var wireErr *WireError
	if errors.As(err, &wireErr) {
		return wireErr
	}

	return &WireError{Code: CodeInternal, Message: err.Error()}
}

package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/wrrulos/dotjson"
)

// Request parsing and validation for the daemon side of the protocol.
// Validation failures are *WireError values carrying taxonomy codes, so the
// handler can echo them straight back to the client.

func invalidArgument(format string, args ...any) *WireError {
	return &WireError{
		Code:    dotjson.ErrTypeInvalidArgument.String(),
		Message: fmt.Sprintf(format, args...),
	}
}

func invalidFormat(format string, args ...any) *WireError {
	return &WireError{
		Code:    dotjson.ErrTypeInvalidFormat.String(),
		Message: fmt.Sprintf(format, args...),
	}
}

// ParseRequest decodes and validates one wire frame. The returned request
// has passed per-operation field validation and is safe to dispatch.
func ParseRequest(data []byte) (*Request, error) {
	if len(data) > MaxMessageSize {
		return nil, invalidArgument("request too large: %d bytes (max %d)", len(data), MaxMessageSize)
	}

	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, invalidFormat("request is not valid JSON: %v", err)
	}

	if err := ValidateRequest(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// ValidateRequest enforces the per-operation field requirements.
func ValidateRequest(req *Request) error {
	if req.Op == "" {
		return invalidArgument("request is missing an op")
	}
	if !IsKnownOp(req.Op) {
		return invalidArgument("unknown operation %q", req.Op)
	}

	switch req.Op {
	case OpPing, OpList:
		// No operands.

	case OpGetValue:
		if req.Name == "" {
			return invalidArgument("%s requires a name", req.Op)
		}
		if req.Key == "" {
			return invalidArgument("%s requires a key", req.Op)
		}

	case OpSetValue:
		if req.Name == "" {
			return invalidArgument("%s requires a name", req.Op)
		}
		if req.Key == "" {
			return invalidArgument("%s requires a key", req.Op)
		}
		if len(req.Value) == 0 {
			return invalidArgument("%s requires a value", req.Op)
		}
		if !json.Valid(req.Value) {
			return invalidFormat("%s value is not valid JSON", req.Op)
		}

	case OpTranslate:
		if req.Key == "" {
			return invalidArgument("%s requires a key", req.Op)
		}

	case OpGetDocument:
		if req.Registry != dotjson.KindConfiguration && req.Registry != dotjson.KindLanguage {
			return invalidArgument("%s requires registry %q or %q", req.Op,
				dotjson.KindConfiguration, dotjson.KindLanguage)
		}
		if req.Name == "" {
			return invalidArgument("%s requires a name", req.Op)
		}
	}

	return nil
}

// ParseResponse decodes and sanity-checks one response frame on the client
// side.
func ParseResponse(data []byte) (*Response, error) {
	if len(data) > MaxMessageSize {
		return nil, fmt.Errorf("response too large: %d bytes (max %d)", len(data), MaxMessageSize)
	}

	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("response is not valid JSON: %w", err)
	}

	// A response must commit to success or failure, never both.
	if resp.OK && resp.Error != nil {
		return nil, fmt.Errorf("malformed response: ok with error payload")
	}
	if !resp.OK && resp.Error == nil {
		return nil, fmt.Errorf("malformed response: failure without error payload")
	}

	return &resp, nil
}

// DecodeValue unmarshals a response's raw value into out. Callers pass a
// pointer, as with json.Unmarshal.
func DecodeValue(resp *Response, out any) error {
	if len(resp.Value) == 0 {
		return fmt.Errorf("response carries no value")
	}
	if err := json.Unmarshal(resp.Value, out); err != nil {
		return fmt.Errorf("failed to decode response value: %w", err)
	}
	return nil
}

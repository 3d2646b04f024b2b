package protocol

import (
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/wrrulos/dotjson"
)

func TestGenerateRequestID(t *testing.T) {
	first := GenerateRequestID()
	second := GenerateRequestID()

	if first == 0 || second == 0 {
		t.Error("GenerateRequestID() returned zero")
	}
	if first == second {
		t.Errorf("consecutive IDs collide: %d", first)
	}
}

func TestGenerateRequestIDConcurrent(t *testing.T) {
	const n = 64
	ids := make(chan uint64, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- GenerateRequestID()
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[uint64]bool, n)
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate ID %d", id)
		}
		seen[id] = true
	}
}

func TestRequestConstructors(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
		op   string
	}{
		{"ping", NewPingRequest(), OpPing},
		{"list", NewListRequest(), OpList},
		{"get value", NewGetValueRequest("default", "database.host"), OpGetValue},
		{"translate", NewTranslateRequest("menu.title", ""), OpTranslate},
		{"translate with override", NewTranslateRequest("menu.title", "es"), OpTranslate},
		{"get document", NewGetDocumentRequest(dotjson.KindLanguage, "en"), OpGetDocument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.req.Op != tt.op {
				t.Errorf("Op = %q, want %q", tt.req.Op, tt.op)
			}
			if tt.req.ID == 0 {
				t.Error("request has no ID")
			}
			// Every constructed request passes its own validation.
			if err := ValidateRequest(tt.req); err != nil {
				t.Errorf("constructed request fails validation: %v", err)
			}
		})
	}
}

func TestNewSetValueRequest(t *testing.T) {
	req, err := NewSetValueRequest("default", "database.port", 5432)
	if err != nil {
		t.Fatalf("NewSetValueRequest() error = %v", err)
	}
	if string(req.Value) != "5432" {
		t.Errorf("Value = %s, want 5432", req.Value)
	}
	if err := ValidateRequest(req); err != nil {
		t.Errorf("constructed request fails validation: %v", err)
	}

	// Unencodable values fail at construction, not at send time.
	if _, err := NewSetValueRequest("default", "k", make(chan int)); err == nil {
		t.Error("NewSetValueRequest() accepted an unencodable value")
	}
}

func TestEncodeRequestRoundTrip(t *testing.T) {
	req := NewGetValueRequest("default", "database.host")

	data, err := EncodeRequest(req)
	if err != nil {
		t.Fatalf("EncodeRequest() error = %v", err)
	}

	parsed, err := ParseRequest(data)
	if err != nil {
		t.Fatalf("ParseRequest() of encoded request error = %v", err)
	}
	if parsed.ID != req.ID || parsed.Op != req.Op || parsed.Name != req.Name || parsed.Key != req.Key {
		t.Errorf("round trip mangled the request: %+v vs %+v", parsed, req)
	}
}

func TestEncodeRequestTooLarge(t *testing.T) {
	req, err := NewSetValueRequest("default", "blob", strings.Repeat("x", MaxMessageSize))
	if err != nil {
		t.Fatalf("NewSetValueRequest() error = %v", err)
	}

	if _, err := EncodeRequest(req); err == nil {
		t.Error("EncodeRequest() accepted an oversized request")
	}
}

func TestNewErrorResponseClassification(t *testing.T) {
	req := NewGetValueRequest("default", "k")

	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{
			"registry error maps to taxonomy token",
			dotjson.NewNotLoadedError(dotjson.KindConfiguration, "default"),
			"not_loaded",
		},
		{
			"wrapped registry error still maps",
			errors.Join(errors.New("context"), dotjson.NewFileNotFoundError(dotjson.KindConfiguration, "/x.json", nil)),
			"file_not_found",
		},
		{
			"wire error passes through",
			invalidArgument("get_value requires a key"),
			"invalid_argument",
		},
		{
			"plain error is internal",
			errors.New("disk on fire"),
			CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewErrorResponse(req, tt.err)

			if resp.OK {
				t.Error("error response has OK set")
			}
			if resp.ID != req.ID || resp.Op != req.Op {
				t.Error("error response does not echo the request")
			}
			if resp.Error == nil {
				t.Fatal("error response carries no error payload")
			}
			if resp.Error.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", resp.Error.Code, tt.wantCode)
			}
		})
	}
}

func TestNewValueResponse(t *testing.T) {
	req := NewGetValueRequest("default", "debug")

	resp, err := NewValueResponse(req, false)
	if err != nil {
		t.Fatalf("NewValueResponse() error = %v", err)
	}

	// A false value must survive encoding; it cannot be dropped as empty.
	data, err := EncodeResponse(resp)
	if err != nil {
		t.Fatalf("EncodeResponse() error = %v", err)
	}
	if !strings.Contains(string(data), `"value":false`) {
		t.Errorf("encoded response lost the false value: %s", data)
	}

	parsed, err := ParseResponse(data)
	if err != nil {
		t.Fatalf("ParseResponse() error = %v", err)
	}
	var got bool
	if err := DecodeValue(parsed, &got); err != nil {
		t.Fatalf("DecodeValue() error = %v", err)
	}
	if got != false {
		t.Errorf("decoded value = %v, want false", got)
	}
}

func TestWireErrorError(t *testing.T) {
	err := &WireError{Code: "not_loaded", Message: `configuration "x" not loaded`}
	want := `not_loaded: configuration "x" not loaded`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

// Benchmark tests

func BenchmarkEncodeRequest(b *testing.B) {
	req := NewGetValueRequest("default", "database.host")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := EncodeRequest(req); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseRequest(b *testing.B) {
	data, err := json.Marshal(NewGetValueRequest("default", "database.host"))
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ParseRequest(data); err != nil {
			b.Fatal(err)
		}
	}
}

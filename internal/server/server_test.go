package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wrrulos/dotjson"
	"github.com/wrrulos/dotjson/internal/protocol"
)

const serverConfigJSON = `{
    "database": {
        "host": "localhost",
        "port": 5432
    },
    "debug": false
}`

const serverLanguageJSON = `{
    "greeting": "Hello",
    "menu": {
        "exit": "Exit"
    }
}`

func TestServerHealthz(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.routes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /healthz status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want %q", ct, "application/json")
	}

	var status healthStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatalf("failed to decode healthz body: %v", err)
	}

	if status.Status != "ok" {
		t.Errorf("status = %q, want %q", status.Status, "ok")
	}
	if status.Configs != 1 {
		t.Errorf("configs = %d, want 1", status.Configs)
	}
	if status.Languages != 1 {
		t.Errorf("languages = %d, want 1", status.Languages)
	}
	if status.ActiveLanguage != "en" {
		t.Errorf("active_language = %q, want %q", status.ActiveLanguage, "en")
	}
}

func TestServerHealthzMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.routes())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/healthz", "application/json", nil)
	if err != nil {
		t.Fatalf("POST /healthz failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("POST /healthz status = %d, want %d", resp.StatusCode, http.StatusMethodNotAllowed)
	}
}

func TestServerAPIList(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.routes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/list")
	if err != nil {
		t.Fatalf("GET /api/list failed: %v", err)
	}
	defer resp.Body.Close()

	var list protocol.ListResult
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("failed to decode list body: %v", err)
	}

	if len(list.Configs) != 1 || list.Configs[0].Name != "app" {
		t.Errorf("list.Configs = %v, want one entry named app", list.Configs)
	}
	if list.Configs[0].Path == "" {
		t.Error("list.Configs[0].Path is empty, want source path")
	}
	if len(list.Languages) != 1 || list.Languages[0].Name != "en" {
		t.Errorf("list.Languages = %v, want one entry named en", list.Languages)
	}
	if list.ActiveLanguage != "en" {
		t.Errorf("list.ActiveLanguage = %q, want %q", list.ActiveLanguage, "en")
	}
}

func TestServerWebSocketGetValue(t *testing.T) {
	srv := newTestServer(t)
	conn, cleanup := dialTestServer(t, srv)
	defer cleanup()

	req := protocol.NewGetValueRequest("app", "database.host")
	resp := wsRoundTrip(t, conn, req)

	if !resp.OK {
		t.Fatalf("get_value failed: %v", resp.Error)
	}

	var host string
	if err := protocol.DecodeValue(resp, &host); err != nil {
		t.Fatalf("failed to decode value: %v", err)
	}
	if host != "localhost" {
		t.Errorf("value = %q, want %q", host, "localhost")
	}
}

func TestServerWebSocketSetValue(t *testing.T) {
	srv := newTestServer(t)
	conn, cleanup := dialTestServer(t, srv)
	defer cleanup()

	setReq, err := protocol.NewSetValueRequest("app", "database.host", "db.internal")
	if err != nil {
		t.Fatalf("NewSetValueRequest failed: %v", err)
	}
	setResp := wsRoundTrip(t, conn, setReq)
	if !setResp.OK {
		t.Fatalf("set_value failed: %v", setResp.Error)
	}

	getResp := wsRoundTrip(t, conn, protocol.NewGetValueRequest("app", "database.host"))
	if !getResp.OK {
		t.Fatalf("get_value after set failed: %v", getResp.Error)
	}

	var host string
	if err := protocol.DecodeValue(getResp, &host); err != nil {
		t.Fatalf("failed to decode value: %v", err)
	}
	if host != "db.internal" {
		t.Errorf("value after set = %q, want %q", host, "db.internal")
	}
}

func TestServerWebSocketTranslate(t *testing.T) {
	srv := newTestServer(t)
	conn, cleanup := dialTestServer(t, srv)
	defer cleanup()

	resp := wsRoundTrip(t, conn, protocol.NewTranslateRequest("menu.exit", ""))
	if !resp.OK {
		t.Fatalf("translate failed: %v", resp.Error)
	}

	var text string
	if err := protocol.DecodeValue(resp, &text); err != nil {
		t.Fatalf("failed to decode value: %v", err)
	}
	if text != "Exit" {
		t.Errorf("translate = %q, want %q", text, "Exit")
	}
}

func TestServerWebSocketUnknownName(t *testing.T) {
	srv := newTestServer(t)
	conn, cleanup := dialTestServer(t, srv)
	defer cleanup()

	resp := wsRoundTrip(t, conn, protocol.NewGetValueRequest("missing", "any.key"))
	if resp.OK {
		t.Fatal("get_value for unknown name succeeded, want error")
	}
	if resp.Error.Code != dotjson.ErrTypeNotLoaded.String() {
		t.Errorf("error code = %q, want %q", resp.Error.Code, dotjson.ErrTypeNotLoaded.String())
	}
}

func TestServerWebSocketMalformedFrame(t *testing.T) {
	srv := newTestServer(t)
	conn, cleanup := dialTestServer(t, srv)
	defer cleanup()

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatalf("failed to write frame: %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}

	resp, err := protocol.ParseResponse(data)
	if err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.OK {
		t.Fatal("malformed frame got ok response, want error")
	}
	if resp.Error.Code != dotjson.ErrTypeInvalidFormat.String() {
		t.Errorf("error code = %q, want %q", resp.Error.Code, dotjson.ErrTypeInvalidFormat.String())
	}
}

func TestServerConnectionSurvivesBadRequest(t *testing.T) {
	srv := newTestServer(t)
	conn, cleanup := dialTestServer(t, srv)
	defer cleanup()

	// A malformed request must answer an error without dropping the
	// connection
	bad := wsRoundTripRaw(t, conn, []byte(`{"id":1,"op":"get_value"}`))
	if bad.OK {
		t.Fatal("invalid request got ok response, want error")
	}

	good := wsRoundTrip(t, conn, protocol.NewPingRequest())
	if !good.OK {
		t.Fatalf("ping after bad request failed: %v", good.Error)
	}
}

func TestNewRejectsPartialTLS(t *testing.T) {
	configs := dotjson.NewConfigRegistry()
	languages := dotjson.NewLanguageRegistry()

	_, err := New(&Config{CertPath: "/tmp/cert.pem"}, configs, languages)
	if err == nil {
		t.Fatal("New() with cert but no key succeeded, want error")
	}
}

func TestNewTLSConfigMissingFiles(t *testing.T) {
	_, err := NewTLSConfig("/nonexistent/cert.pem", "/nonexistent/key.pem")
	if err == nil {
		t.Fatal("NewTLSConfig() with missing files succeeded, want error")
	}
}

// Helper functions

func newTestServer(t *testing.T) *Server {
	t.Helper()

	dir := t.TempDir()

	configPath := filepath.Join(dir, "config.json")
	if err := os.WriteFile(configPath, []byte(serverConfigJSON), 0o644); err != nil {
		t.Fatalf("failed to write config fixture: %v", err)
	}
	languagePath := filepath.Join(dir, "en.json")
	if err := os.WriteFile(languagePath, []byte(serverLanguageJSON), 0o644); err != nil {
		t.Fatalf("failed to write language fixture: %v", err)
	}

	configs := dotjson.NewConfigRegistry()
	if err := configs.Load("app", configPath); err != nil {
		t.Fatalf("failed to load config fixture: %v", err)
	}
	languages := dotjson.NewLanguageRegistry()
	if err := languages.Load("en", languagePath); err != nil {
		t.Fatalf("failed to load language fixture: %v", err)
	}
	if err := languages.SetActive("en"); err != nil {
		t.Fatalf("failed to activate language fixture: %v", err)
	}

	srv, err := New(&Config{LogLevel: "", DisableMDNS: true}, configs, languages)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return srv
}

func dialTestServer(t *testing.T, srv *Server) (*websocket.Conn, func()) {
	t.Helper()

	ts := httptest.NewServer(srv.routes())

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		ts.Close()
		t.Fatalf("failed to dial %s: %v", wsURL, err)
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	cleanup := func() {
		_ = conn.Close()
		ts.Close()
	}
	return conn, cleanup
}

func wsRoundTrip(t *testing.T, conn *websocket.Conn, req *protocol.Request) *protocol.Response {
	t.Helper()

	data, err := protocol.EncodeRequest(req)
	if err != nil {
		t.Fatalf("failed to encode request: %v", err)
	}

	resp := wsRoundTripRaw(t, conn, data)
	if resp.ID != req.ID {
		t.Errorf("response ID = %d, want %d", resp.ID, req.ID)
	}
	return resp
}

func wsRoundTripRaw(t *testing.T, conn *websocket.Conn, data []byte) *protocol.Response {
	t.Helper()

	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		t.Fatalf("failed to write frame: %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, body, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}

	resp, err := protocol.ParseResponse(body)
	if err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	return resp
}

package client

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/wrrulos/dotjson"
	"github.com/wrrulos/dotjson/internal/logging"
	"github.com/wrrulos/dotjson/internal/protocol"
	"github.com/wrrulos/dotjson/internal/version"
)

const (
	// DefaultPath is the daemon's WebSocket endpoint path
	DefaultPath = "/ws"

	// DefaultTimeout bounds the dial and each request round trip
	DefaultTimeout = 10 * time.Second

	// DefaultMaxRetries is the default number of retry attempts for failed round trips
	DefaultMaxRetries = 2

	// DefaultRetryDelay is the initial delay between retry attempts
	DefaultRetryDelay = 500 * time.Millisecond

	// DefaultMaxRetryDelay is the maximum delay for exponential backoff
	DefaultMaxRetryDelay = 5 * time.Second
)

// Client is a WebSocket client for a dotjsond daemon
type Client struct {
	// Addr is the daemon address (e.g., "192.168.1.50:7600")
	Addr string

	// Path is the WebSocket endpoint path (default "/ws")
	Path string

	// UseTLS dials wss:// instead of ws://
	UseTLS bool

	// InsecureSkipVerify accepts daemon certificates signed by unknown
	// authorities. Meant for self-signed LAN daemons.
	InsecureSkipVerify bool

	// Timeout bounds the dial and each request round trip
	Timeout time.Duration

	// MaxRetries is the maximum number of retry attempts for failed round trips
	MaxRetries int

	// RetryDelay is the initial delay between retry attempts
	RetryDelay time.Duration

	// MaxRetryDelay is the maximum delay for exponential backoff
	MaxRetryDelay time.Duration

	// UseExponentialBackoff enables exponential backoff for retries
	UseExponentialBackoff bool

	// mu serializes round trips: the daemon answers in order, and a gorilla
	// connection allows one concurrent reader and writer
	mu   sync.Mutex
	conn *websocket.Conn
}

// NewClient creates a new daemon client
// addr: Daemon address (e.g., "192.168.1.50:7600")
func NewClient(addr string) *Client {
	return &Client{
		Addr:                  addr,
		Path:                  DefaultPath,
		Timeout:               DefaultTimeout,
		MaxRetries:            DefaultMaxRetries,
		RetryDelay:            DefaultRetryDelay,
		MaxRetryDelay:         DefaultMaxRetryDelay,
		UseExponentialBackoff: true,
	}
}

// SetTimeout sets the dial and round-trip timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.Timeout = timeout
}

// SetRetry configures retry behavior
func (c *Client) SetRetry(maxRetries int, retryDelay time.Duration) {
	c.MaxRetries = maxRetries
	c.RetryDelay = retryDelay
}

// URL returns the WebSocket URL the client dials
func (c *Client) URL() string {
	scheme := "ws"
	if c.UseTLS {
		scheme = "wss"
	}
	path := c.Path
	if path == "" {
		path = DefaultPath
	}
	return fmt.Sprintf("%s://%s%s", scheme, c.Addr, path)
}

// Connect dials the daemon. Operations connect lazily, so calling Connect is
// only needed to verify reachability up front.
func (c *Client) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connectLocked()
}

func (c *Client) connectLocked() error {
	if c.conn != nil {
		return nil
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: c.Timeout,
	}
	if c.UseTLS && c.InsecureSkipVerify {
		dialer.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	header := http.Header{}
	header.Set("User-Agent", version.UserAgent())

	conn, resp, err := dialer.Dial(c.URL(), header)
	if err != nil {
		return fmt.Errorf("failed to dial daemon at %s: %w", c.URL(), err)
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	conn.SetReadLimit(protocol.MaxMessageSize)
	c.conn = conn
	logging.LogConnection(c.Addr, "connected")
	return nil
}

// Close sends a close frame and drops the connection. The client stays
// usable; the next operation reconnects.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}

	message := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = c.conn.WriteControl(websocket.CloseMessage, message, time.Now().Add(writeGrace))
	err := c.conn.Close()
	c.conn = nil
	logging.LogConnection(c.Addr, "closed")
	return err
}

// writeGrace bounds the close frame write during Close
const writeGrace = time.Second

// dropLocked discards the connection after a transport failure
func (c *Client) dropLocked() {
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
}

// Ping checks daemon reachability and returns its identity string
// (e.g., "dotjson/0.3.0")
func (c *Client) Ping() (string, error) {
	resp, err := c.roundTrip(protocol.NewPingRequest())
	if err != nil {
		return "", err
	}

	var identity string
	if err := protocol.DecodeValue(resp, &identity); err != nil {
		return "", err
	}
	return identity, nil
}

// List inventories the daemon's registries
func (c *Client) List() (*protocol.ListResult, error) {
	resp, err := c.roundTrip(protocol.NewListRequest())
	if err != nil {
		return nil, err
	}
	if resp.List == nil {
		return nil, fmt.Errorf("list response carries no inventory")
	}
	return resp.List, nil
}

// GetValue resolves a dotted key in a named remote configuration
func (c *Client) GetValue(name, key string) (any, error) {
	resp, err := c.roundTrip(protocol.NewGetValueRequest(name, key))
	if err != nil {
		return nil, err
	}

	var value any
	if err := protocol.DecodeValue(resp, &value); err != nil {
		return nil, err
	}
	return value, nil
}

// SetValue assigns a value to a dotted key in a named remote configuration.
// The daemon persists the change to its source file before answering.
func (c *Client) SetValue(name, key string, value any) error {
	req, err := protocol.NewSetValueRequest(name, key, value)
	if err != nil {
		return err
	}
	_, err = c.roundTrip(req)
	return err
}

// Translate resolves a dotted key in the daemon's active language. A
// non-empty lang overrides the active language for this call.
func (c *Client) Translate(key, lang string) (string, error) {
	resp, err := c.roundTrip(protocol.NewTranslateRequest(key, lang))
	if err != nil {
		return "", err
	}

	var text string
	if err := protocol.DecodeValue(resp, &text); err != nil {
		return "", err
	}
	return text, nil
}

// GetDocument fetches a whole document from the daemon
// registry: "configuration" or "language"
func (c *Client) GetDocument(registry, name string) (any, error) {
	resp, err := c.roundTrip(protocol.NewGetDocumentRequest(registry, name))
	if err != nil {
		return nil, err
	}

	var doc any
	if err := protocol.DecodeValue(resp, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// roundTrip sends one request and waits for its response, retrying transport
// failures on a fresh connection. Wire-level failures come back as registry
// errors and are not retried.
func (c *Client) roundTrip(req *protocol.Request) (*protocol.Response, error) {
	data, err := protocol.EncodeRequest(req)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var lastErr error
	currentDelay := c.RetryDelay

	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(currentDelay)

			// Exponential backoff
			if c.UseExponentialBackoff {
				currentDelay *= 2
				if currentDelay > c.MaxRetryDelay {
					currentDelay = c.MaxRetryDelay
				}
			}
		}

		logging.Debug("Sending request",
			zap.String("daemon", c.Addr),
			zap.String("op", req.Op),
			zap.Uint64("id", req.ID),
		)

		resp, err := c.attemptLocked(req.ID, data)
		if err == nil {
			if !resp.OK {
				return nil, errorFromWire(resp.Error)
			}
			return resp, nil
		}

		lastErr = err
		c.dropLocked()
		if attempt < c.MaxRetries {
			logging.Warn("Request failed, retrying",
				zap.String("daemon", c.Addr),
				zap.String("op", req.Op),
				zap.Error(err),
			)
		}
	}

	return nil, lastErr
}

// attemptLocked performs a single round trip on the current connection
func (c *Client) attemptLocked(id uint64, data []byte) (*protocol.Response, error) {
	if err := c.connectLocked(); err != nil {
		return nil, err
	}

	if err := c.conn.SetWriteDeadline(time.Now().Add(c.Timeout)); err != nil {
		return nil, err
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	if err := c.conn.SetReadDeadline(time.Now().Add(c.Timeout)); err != nil {
		return nil, err
	}
	_, body, err := c.conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	resp, err := protocol.ParseResponse(body)
	if err != nil {
		return nil, err
	}

	// A mismatched ID means the connection fell out of sync, usually a stale
	// response left over from a timed-out request
	if resp.ID != id {
		return nil, fmt.Errorf("response ID %d does not match request ID %d", resp.ID, id)
	}

	return resp, nil
}

// errorFromWire rebuilds a registry error from a wire error so callers can
// use the dotjson predicates (IsNotLoaded, ...) on remote failures
func errorFromWire(we *protocol.WireError) error {
	if we == nil {
		return fmt.Errorf("daemon reported failure without error payload")
	}
	if t, ok := dotjson.ParseErrorType(we.Code); ok {
		return &dotjson.RegistryError{Type: t, Message: we.Message}
	}
	return we
}

package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/wrrulos/dotjson/internal/logging"
	"github.com/wrrulos/dotjson/internal/protocol"
)

const (
	// Time allowed to write a response to the peer
	writeWait = 10 * time.Second

	// Idle connections are reaped after this long without a frame; clients
	// that hold a connection open use the ping operation as keepalive
	readWait = 60 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// The daemon serves CLI and TUI clients on the local network, not
	// browsers; there is no Origin to check.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleWebSocket upgrades the connection and serves protocol frames until
// the client disconnects
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote an HTTP error to the client
		logging.Error("WebSocket upgrade failed",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
		return
	}

	s.wg.Add(1)
	defer s.wg.Done()
	s.serveConn(conn)
}

// serveConn runs the request/response loop for a single connection. Every
// text frame is one protocol request and produces exactly one response frame.
func (s *Server) serveConn(conn *websocket.Conn) {
	remoteAddr := conn.RemoteAddr().String()

	// Track active connection
	s.mu.Lock()
	s.activeConns[remoteAddr] = conn
	s.mu.Unlock()

	defer func() {
		_ = conn.Close()
		s.mu.Lock()
		delete(s.activeConns, remoteAddr)
		s.mu.Unlock()
		logging.LogConnection(remoteAddr, "connection_closed")
	}()

	logging.LogConnection(remoteAddr, "connection_accepted")

	conn.SetReadLimit(protocol.MaxMessageSize)

	// WebSocket-level pings also count as liveness
	conn.SetPingHandler(func(appData string) error {
		_ = conn.SetReadDeadline(time.Now().Add(readWait))
		return conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(writeWait))
	})

	// Main request/response loop
	for {
		if err := conn.SetReadDeadline(time.Now().Add(readWait)); err != nil {
			logging.Info("Failed to set read deadline, connection may be closed",
				zap.String("remote_addr", remoteAddr),
				zap.Error(err),
			)
			return
		}

		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logging.Info("Connection closed by client",
					zap.String("remote_addr", remoteAddr),
				)
			} else {
				logging.Info("Connection closed or error reading message",
					zap.String("remote_addr", remoteAddr),
					zap.Error(err),
				)
			}
			return
		}

		if messageType != websocket.TextMessage {
			logging.Warn("Ignoring non-text frame",
				zap.String("remote_addr", remoteAddr),
				zap.Int("message_type", messageType),
			)
			continue
		}

		response := s.handler.Handle(remoteAddr, data)

		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return
		}
		if err := conn.WriteMessage(websocket.TextMessage, response); err != nil {
			logging.Error("Failed to write response",
				zap.String("remote_addr", remoteAddr),
				zap.Error(err),
			)
			return
		}
	}
}

package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/wrrulos/dotjson"
	"github.com/wrrulos/dotjson/internal/discovery"
	"github.com/wrrulos/dotjson/internal/logging"
	"github.com/wrrulos/dotjson/internal/protocol"
	"github.com/wrrulos/dotjson/internal/version"
)

// Config holds the daemon configuration
type Config struct {
	Host        string
	Port        int
	CertPath    string // Path to certificate file (optional)
	KeyPath     string // Path to private key file (optional)
	LogLevel    string
	Instance    string // mDNS instance name (default "dotjsond on <hostname>")
	DisableMDNS bool   // If true, do not advertise the daemon over mDNS
}

// Server serves a registry pair to remote callers over WebSocket, with a
// read-only HTTP mirror and optional mDNS advertisement.
type Server struct {
	config      *Config
	configs     *dotjson.ConfigRegistry
	languages   *dotjson.LanguageRegistry
	handler     *protocol.Handler
	httpServer  *http.Server
	listener    net.Listener
	tlsConfig   *tls.Config
	mdns        *zeroconf.Server
	wg          sync.WaitGroup
	mu          sync.Mutex
	activeConns map[string]*websocket.Conn
}

// New creates a new Server instance serving the given registries
func New(config *Config, configs *dotjson.ConfigRegistry, languages *dotjson.LanguageRegistry) (*Server, error) {
	// Initialize logging
	if err := logging.Initialize(config.LogLevel); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	var tlsConfig *tls.Config
	if config.CertPath != "" || config.KeyPath != "" {
		if config.CertPath == "" || config.KeyPath == "" {
			return nil, fmt.Errorf("TLS requires both a certificate and a key file")
		}
		var err error
		tlsConfig, err = NewTLSConfig(config.CertPath, config.KeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create TLS config: %w", err)
		}
	}

	return &Server{
		config:      config,
		configs:     configs,
		languages:   languages,
		handler:     protocol.NewHandler(configs, languages),
		tlsConfig:   tlsConfig,
		activeConns: make(map[string]*websocket.Conn),
	}, nil
}

// routes builds the daemon's HTTP surface
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/api/list", s.handleList)
	return mux
}

// Start starts the daemon and blocks until shutdown
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	if s.tlsConfig != nil {
		logging.Info("Starting dotjson daemon",
			zap.String("addr", addr),
			zap.String("cert", s.config.CertPath),
			zap.String("key", s.config.KeyPath),
			zap.String("version", version.Version),
		)
		logging.Info("TLS configuration",
			zap.Any("tls_info", GetTLSInfo(s.tlsConfig)),
		)
	} else {
		logging.Info("Starting dotjson daemon",
			zap.String("addr", addr),
			zap.String("version", version.Version),
		)
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}
	if s.tlsConfig != nil {
		listener = tls.NewListener(listener, s.tlsConfig)
	}
	s.listener = listener

	s.httpServer = &http.Server{
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logging.Info("Daemon listening for connections",
		zap.String("addr", listener.Addr().String()),
	)

	if !s.config.DisableMDNS {
		s.registerMDNS()
	}

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Serve in a goroutine
	errChan := make(chan error, 1)
	go func() {
		errChan <- s.httpServer.Serve(listener)
	}()

	// Wait for shutdown signal or error
	select {
	case <-sigChan:
		logging.Info("Shutdown signal received, stopping daemon...")
		return s.Shutdown(context.Background())
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// registerMDNS advertises the daemon as a "_dotjson._tcp" service so that
// discovery.Scan and the discover command can find it. Registration failure
// is logged but never fatal.
func (s *Server) registerMDNS() {
	instance := s.config.Instance
	if instance == "" {
		host, err := os.Hostname()
		if err != nil {
			host = "dotjsond"
		}
		instance = "dotjsond on " + host
	}

	txt := []string{"version=" + version.Version}
	if s.tlsConfig != nil {
		txt = append(txt, "tls=1")
	}

	mdnsServer, err := zeroconf.Register(instance, discovery.ServiceType, discovery.ServiceDomain, s.config.Port, txt, nil)
	if err != nil {
		logging.Warn("Failed to register mDNS service, daemon will not be discoverable",
			zap.Error(err),
		)
		return
	}
	s.mdns = mdnsServer

	logging.Info("Registered mDNS service",
		zap.String("instance", instance),
		zap.String("type", discovery.ServiceType),
		zap.Int("port", s.config.Port),
	)
}

// Shutdown gracefully shuts down the daemon
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down daemon...")

	// Withdraw the mDNS advertisement
	if s.mdns != nil {
		s.mdns.Shutdown()
	}

	// Stop accepting new connections. Hijacked WebSocket connections are not
	// covered by http.Server.Shutdown, so they are closed explicitly below.
	if s.httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			logging.Error("Error shutting down HTTP server", zap.Error(err))
		}
	}

	// Close all active WebSocket connections
	s.mu.Lock()
	for addr, conn := range s.activeConns {
		logging.Info("Closing active connection", zap.String("remote_addr", addr))
		message := websocket.FormatCloseMessage(websocket.CloseGoingAway, "daemon shutting down")
		_ = conn.WriteControl(websocket.CloseMessage, message, time.Now().Add(writeWait))
		_ = conn.Close()
	}
	s.mu.Unlock()

	// Wait for all connection goroutines to finish with timeout
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logging.Info("All connections closed gracefully")
	case <-ctx.Done():
		logging.Warn("Shutdown timeout, forcing close")
	case <-time.After(10 * time.Second):
		logging.Warn("Shutdown timeout after 10 seconds, forcing close")
	}

	// Sync logger
	logging.Sync()

	return nil
}

// GetActiveConnections returns the number of active WebSocket connections
func (s *Server) GetActiveConnections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.activeConns)
}

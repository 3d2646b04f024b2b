package server

import (
	"crypto/tls"
	"fmt"

	"go.uber.org/zap"

	"github.com/wrrulos/dotjson/internal/logging"
)

// NewTLSConfig creates a TLS configuration from certificate and key files
func NewTLSConfig(certPath, keyPath string) (*tls.Config, error) {
	// Load certificate and private key
	cert, err := tls.LoadX509KeyPair(certPath, keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load TLS certificate: %w", err)
	}

	logging.Info("TLS configuration created from files",
		zap.String("cert", certPath),
		zap.String("key", keyPath),
		zap.String("min_version", "TLS 1.2"),
	)

	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}, nil
}

// GetTLSInfo returns human-readable TLS configuration information
func GetTLSInfo(config *tls.Config) map[string]interface{} {
	return map[string]interface{}{
		"min_version": "TLS 1.2",
		"num_certs":   len(config.Certificates),
	}
}

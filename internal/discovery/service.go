package discovery

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Service represents a discovered dotjson daemon on the network
type Service struct {
	// Instance is the mDNS instance name the daemon registered under
	// (e.g., "dotjsond on buildhost")
	Instance string

	// Hostname is the mDNS hostname (e.g., "buildhost.local.")
	Hostname string

	// IP is the address the daemon resolved to (IPv4 preferred)
	IP string

	// Port is the daemon listen port (typically 7600)
	Port int

	// Version is the daemon version from the "version" TXT record,
	// empty when the daemon did not advertise one
	Version string

	// Metadata contains additional mDNS TXT record data
	// Common fields: "version=0.3.0", "tls=1"
	Metadata map[string]string

	// DiscoveredAt is when the daemon was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the service
func (s *Service) String() string {
	return fmt.Sprintf("dotjson daemon %s (%s) at %s", s.Instance, s.Hostname, s.Addr())
}

// Addr returns the host:port address for dialing the daemon.
// IPv6 addresses are bracketed so the result feeds net.Dial directly.
func (s *Service) Addr() string {
	return net.JoinHostPort(s.IP, strconv.Itoa(s.Port))
}

// GetMetadata retrieves a TXT record value by key, or returns empty string if not found
func (s *Service) GetMetadata(key string) string {
	if s.Metadata == nil {
		return ""
	}
	return s.Metadata[key]
}

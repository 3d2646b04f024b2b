package discovery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"
)

const (
	// ServiceType is the mDNS service type dotjson daemons register under
	ServiceType = "_dotjson._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for daemon discovery
	DefaultScanTimeout = 10 * time.Second

	// DefaultPort is the default listen port for dotjson daemons
	DefaultPort = 7600
)

// versionKey is the TXT record key daemons use to advertise their version
const versionKey = "version"

// Scanner handles mDNS daemon discovery
type Scanner struct {
	// Timeout is the maximum time to wait for daemon discovery
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// Scan discovers all dotjson daemons on the local network
// Returns a list of discovered services or an error
func (s *Scanner) Scan() ([]*Service, error) {
	return s.ScanWithContext(context.Background())
}

// ScanWithContext discovers daemons with a custom context
func (s *Scanner) ScanWithContext(ctx context.Context) ([]*Service, error) {
	// Create a context with timeout
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	// Channel to receive service entries
	entries := make(chan *zeroconf.ServiceEntry)
	services := make([]*Service, 0)

	// Start the resolver
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	// Collect entries in a goroutine; the resolver closes the channel
	// once the context ends
	done := make(chan struct{})
	go func() {
		defer close(done)
		for entry := range entries {
			service := s.parseServiceEntry(entry)
			if service != nil {
				services = append(services, service)
			}
		}
	}()

	// Start browsing for dotjson daemons
	err = resolver.Browse(ctx, ServiceType, ServiceDomain, entries)
	if err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	// Wait for the timeout (or cancellation) and the collector to drain
	<-ctx.Done()
	<-done

	return services, nil
}

// WaitForService waits for a daemon with a specific instance name
// Returns the service or an error if not found within timeout
func (s *Scanner) WaitForService(instance string) (*Service, error) {
	return s.WaitForServiceWithContext(context.Background(), instance)
}

// WaitForServiceWithContext waits for a specific daemon with a custom context
func (s *Scanner) WaitForServiceWithContext(ctx context.Context, instance string) (*Service, error) {
	// Create a context with timeout
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	// Channel to receive service entries
	entries := make(chan *zeroconf.ServiceEntry)
	serviceChan := make(chan *Service, 1)

	// Start the resolver
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	// Watch entries in a goroutine
	go func() {
		for entry := range entries {
			service := s.parseServiceEntry(entry)
			if service != nil && service.Instance == instance {
				serviceChan <- service
				cancel() // Found the daemon, cancel context
				return
			}
		}
	}()

	// Start browsing for dotjson daemons
	err = resolver.Browse(ctx, ServiceType, ServiceDomain, entries)
	if err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	// Wait for the daemon or timeout
	select {
	case service := <-serviceChan:
		return service, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("daemon %q not found within timeout", instance)
	}
}

// parseServiceEntry converts a zeroconf service entry to a Service
// Returns nil if the entry carries no usable address
func (s *Scanner) parseServiceEntry(entry *zeroconf.ServiceEntry) *Service {
	if entry == nil {
		return nil
	}

	// The instance name identifies the daemon; fall back to the bare
	// hostname when a responder omits it
	instance := entry.Instance
	hostname := entry.HostName
	if instance == "" {
		instance = strings.TrimSuffix(strings.TrimSuffix(hostname, "."), ".local")
	}
	if instance == "" {
		return nil
	}

	// Get IP address (prefer IPv4)
	var ip string
	for _, addr := range entry.AddrIPv4 {
		ip = addr.String()
		break
	}

	// Fallback to IPv6 if no IPv4
	if ip == "" && len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}

	if ip == "" {
		return nil
	}

	// Get port (default to 7600 if not specified)
	port := entry.Port
	if port == 0 {
		port = DefaultPort
	}

	// Parse TXT records into metadata
	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		// TXT records are in "key=value" format
		parts := strings.SplitN(txt, "=", 2)
		if len(parts) == 2 {
			metadata[parts[0]] = parts[1]
		} else {
			// Key without value
			metadata[parts[0]] = ""
		}
	}

	return &Service{
		Instance:     instance,
		Hostname:     hostname,
		IP:           ip,
		Port:         port,
		Version:      metadata[versionKey],
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}

// Scan is a convenience function to scan for daemons with a custom timeout
func Scan(timeout time.Duration) ([]*Service, error) {
	scanner := NewScanner()
	scanner.Timeout = timeout
	return scanner.Scan()
}

// QuickScan performs a fast scan with a 3-second timeout
func QuickScan() ([]*Service, error) {
	scanner := NewScanner()
	scanner.Timeout = 3 * time.Second
	return scanner.Scan()
}

// FindService searches for a daemon by instance name with default timeout
func FindService(instance string) (*Service, error) {
	scanner := NewScanner()
	return scanner.WaitForService(instance)
}

package discovery

import (
	"net"
	"testing"
	"time"

	"github.com/grandcat/zeroconf"
)

func TestScanner_parseServiceEntry(t *testing.T) {
	scanner := NewScanner()

	tests := []struct {
		name         string
		entry        *zeroconf.ServiceEntry
		wantNil      bool
		wantInstance string
		wantIP       string
		wantPort     int
		wantVersion  string
	}{
		{
			name: "daemon with IPv4 and version record",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "dotjsond on buildhost"},
				HostName:      "buildhost.local.",
				Port:          7600,
				AddrIPv4:      []net.IP{net.ParseIP("192.168.4.16")},
				Text:          []string{"version=0.3.0"},
			},
			wantNil:      false,
			wantInstance: "dotjsond on buildhost",
			wantIP:       "192.168.4.16",
			wantPort:     7600,
			wantVersion:  "0.3.0",
		},
		{
			name: "daemon without version record",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "dotjsond on pi"},
				HostName:      "pi.local",
				Port:          7600,
				AddrIPv4:      []net.IP{net.ParseIP("10.0.0.5")},
				Text:          []string{},
			},
			wantNil:      false,
			wantInstance: "dotjsond on pi",
			wantIP:       "10.0.0.5",
			wantPort:     7600,
			wantVersion:  "",
		},
		{
			name: "daemon with custom port",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "staging"},
				HostName:      "staging.local",
				Port:          9000,
				AddrIPv4:      []net.IP{net.ParseIP("192.168.1.100")},
			},
			wantNil:      false,
			wantInstance: "staging",
			wantIP:       "192.168.1.100",
			wantPort:     9000,
		},
		{
			name: "no port specified (should default to 7600)",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "dotjsond"},
				HostName:      "host.local",
				Port:          0,
				AddrIPv4:      []net.IP{net.ParseIP("172.16.0.1")},
			},
			wantNil:      false,
			wantInstance: "dotjsond",
			wantIP:       "172.16.0.1",
			wantPort:     DefaultPort,
		},
		{
			name: "missing instance falls back to hostname",
			entry: &zeroconf.ServiceEntry{
				HostName: "buildhost.local.",
				Port:     7600,
				AddrIPv4: []net.IP{net.ParseIP("192.168.1.1")},
			},
			wantNil:      false,
			wantInstance: "buildhost",
			wantIP:       "192.168.1.1",
			wantPort:     7600,
		},
		{
			name: "no instance and no hostname",
			entry: &zeroconf.ServiceEntry{
				HostName: "",
				Port:     7600,
				AddrIPv4: []net.IP{net.ParseIP("192.168.1.1")},
			},
			wantNil: true,
		},
		{
			name: "no IP address",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "dotjsond"},
				HostName:      "host.local",
				Port:          7600,
				AddrIPv4:      []net.IP{},
				AddrIPv6:      []net.IP{},
			},
			wantNil: true,
		},
		{
			name: "IPv6 only daemon",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "dotjsond"},
				HostName:      "host.local",
				Port:          7600,
				AddrIPv6:      []net.IP{net.ParseIP("fe80::1")},
			},
			wantNil:      false,
			wantInstance: "dotjsond",
			wantIP:       "fe80::1",
			wantPort:     7600,
		},
		{
			name: "both IPv4 and IPv6 (should prefer IPv4)",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "dotjsond"},
				HostName:      "host.local",
				Port:          7600,
				AddrIPv4:      []net.IP{net.ParseIP("192.168.1.50")},
				AddrIPv6:      []net.IP{net.ParseIP("fe80::2")},
			},
			wantNil:      false,
			wantInstance: "dotjsond",
			wantIP:       "192.168.1.50",
			wantPort:     7600,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := scanner.parseServiceEntry(tt.entry)

			if tt.wantNil {
				if service != nil {
					t.Errorf("parseServiceEntry() = %v, want nil", service)
				}
				return
			}

			if service == nil {
				t.Fatal("parseServiceEntry() = nil, want non-nil service")
			}

			if service.Instance != tt.wantInstance {
				t.Errorf("service.Instance = %v, want %v", service.Instance, tt.wantInstance)
			}

			if service.IP != tt.wantIP {
				t.Errorf("service.IP = %v, want %v", service.IP, tt.wantIP)
			}

			if service.Port != tt.wantPort {
				t.Errorf("service.Port = %v, want %v", service.Port, tt.wantPort)
			}

			if service.Version != tt.wantVersion {
				t.Errorf("service.Version = %v, want %v", service.Version, tt.wantVersion)
			}

			if service.Hostname != tt.entry.HostName {
				t.Errorf("service.Hostname = %v, want %v", service.Hostname, tt.entry.HostName)
			}

			// Check that DiscoveredAt is recent (within last second)
			if time.Since(service.DiscoveredAt) > time.Second {
				t.Errorf("service.DiscoveredAt is not recent: %v", service.DiscoveredAt)
			}
		})
	}
}

func TestScanner_parseServiceEntry_Metadata(t *testing.T) {
	scanner := NewScanner()

	entry := &zeroconf.ServiceEntry{
		ServiceRecord: zeroconf.ServiceRecord{Instance: "dotjsond on buildhost"},
		HostName:      "buildhost.local",
		Port:          7600,
		AddrIPv4:      []net.IP{net.ParseIP("192.168.4.16")},
		Text:          []string{"version=0.3.0", "tls=1", "flag"},
	}

	service := scanner.parseServiceEntry(entry)
	if service == nil {
		t.Fatal("parseServiceEntry() = nil, want service")
	}

	// Check metadata parsing
	expectedMetadata := map[string]string{
		"version": "0.3.0",
		"tls":     "1",
		"flag":    "", // Key without value
	}

	if len(service.Metadata) != len(expectedMetadata) {
		t.Errorf("service.Metadata has %d entries, want %d", len(service.Metadata), len(expectedMetadata))
	}

	for key, expectedValue := range expectedMetadata {
		if actualValue, ok := service.Metadata[key]; !ok {
			t.Errorf("service.Metadata missing key %q", key)
		} else if actualValue != expectedValue {
			t.Errorf("service.Metadata[%q] = %q, want %q", key, actualValue, expectedValue)
		}
	}

	if service.Version != "0.3.0" {
		t.Errorf("service.Version = %q, want %q", service.Version, "0.3.0")
	}
}

func TestNewScanner(t *testing.T) {
	scanner := NewScanner()

	if scanner == nil {
		t.Fatal("NewScanner() = nil, want scanner")
	}

	if scanner.Timeout != DefaultScanTimeout {
		t.Errorf("scanner.Timeout = %v, want %v", scanner.Timeout, DefaultScanTimeout)
	}
}

// Note: Integration tests with live mDNS discovery require network access
// and should be run manually with:
// go test -tags=integration ./internal/discovery/

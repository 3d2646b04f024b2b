// Package discovery provides mDNS-based discovery of dotjson daemons.
//
// This package implements multicast DNS (mDNS) service discovery to
// automatically locate dotjsond instances on the local network. Daemons
// register themselves using the "_dotjson._tcp" service type and advertise
// their version through a TXT record.
//
// # Discovery Process
//
// The discovery process works as follows:
//  1. Broadcasts mDNS queries on the local network
//  2. Listens for "_dotjson._tcp" service advertisements
//  3. Collects daemon information (instance name, hostname, IP, port, version)
//  4. Returns a list of discovered services after the timeout period
//
// # Usage Example
//
//	// Discover daemons with a 10-second timeout
//	services, err := discovery.Scan(10 * time.Second)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Print discovered daemons
//	for _, service := range services {
//	    fmt.Printf("Found: %s at %s (version %s)\n",
//	        service.Instance, service.Addr(), service.Version)
//	}
//
// # Service Information
//
// Each discovered service includes:
//   - Instance: the name the daemon registered under
//   - Hostname: daemon's network hostname (e.g., "buildhost.local.")
//   - IP: IPv4 address when available, IPv6 otherwise
//   - Port: daemon listen port (typically 7600)
//   - Version: daemon version from the TXT record
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - Daemons must be on the same local network segment
// - Firewall must allow mDNS (UDP port 5353)
//
// # Thread Safety
//
// This package is safe for concurrent use. Multiple discovery sessions can run
// simultaneously without interference.
package discovery

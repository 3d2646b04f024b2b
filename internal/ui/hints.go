package ui

import (
	"github.com/wrrulos/dotjson"
	"github.com/wrrulos/dotjson/internal/urls"
)

// Troubleshooting returns tips matched to the registry error category of err.
// Commands pass the result straight to PrintFailure so every failure box
// carries advice specific to what actually went wrong.
func Troubleshooting(err error) []string {
	switch {
	case dotjson.IsFileNotFound(err):
		return []string{
			"Check the path exists and is readable",
			"Manifest paths resolve relative to the manifest file, not the working directory",
			"Quick start: " + urls.GettingStarted,
		}
	case dotjson.IsInvalidFormat(err):
		return []string{
			"Check the file is valid JSON (a trailing comma is the usual culprit)",
			"YAML files need converting first: dotjson convert <in> <out>",
			"Quick start: " + urls.GettingStarted,
		}
	case dotjson.IsAlreadyLoaded(err):
		return []string{
			"Names are unique per registry; pick a different name or remove the entry first",
			"See what is loaded with: dotjson list",
		}
	case dotjson.IsNotLoaded(err):
		return []string{
			"See what is loaded with: dotjson list",
			"Entries are preloaded from the manifest: " + urls.ManifestReference,
		}
	case dotjson.IsInvalidArgument(err):
		return []string{
			"Keys are dotted paths like database.host with no empty segments",
			"Dotted key reference: " + urls.DottedKeys,
		}
	default:
		return []string{
			"Re-run with DOTJSON_LOG_LEVEL=debug for details",
			"Quick start: " + urls.GettingStarted,
		}
	}
}

// ConnectionTroubleshooting returns tips for a failed daemon connection.
func ConnectionTroubleshooting(addr string) []string {
	return []string{
		"Check the daemon is running and reachable at " + addr,
		"Find daemons on the local network with: dotjson discover",
		"Daemon guide: " + urls.DaemonGuide,
	}
}

// DiscoveryTroubleshooting returns tips for an empty or failed mDNS scan.
func DiscoveryTroubleshooting() []string {
	return []string{
		"Check a daemon is running: dotjsond serve",
		"mDNS uses UDP port 5353; firewalls and VPNs often block it",
		"Discovery guide: " + urls.DiscoveryTroubleshooting,
	}
}

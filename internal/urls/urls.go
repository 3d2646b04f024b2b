package urls

// Documentation URLs for guides and troubleshooting
// All URLs point to the documentation site at https://wrrulos.github.io/dotjson/

// GettingStarted is the quick start guide for loading configuration and
// language files and reading values with dotted keys.
const GettingStarted = "https://wrrulos.github.io/dotjson/getting-started/overview/"

// DottedKeys is the reference for dotted key syntax, fallback behavior,
// and assignment semantics.
const DottedKeys = "https://wrrulos.github.io/dotjson/reference/dotted-keys/"

// ManifestReference documents the dotjson.yaml manifest format used to
// preload registries for the CLI and daemon.
const ManifestReference = "https://wrrulos.github.io/dotjson/reference/manifest/"

// DaemonGuide covers running dotjsond, connecting clients, and enabling TLS.
const DaemonGuide = "https://wrrulos.github.io/dotjson/daemon/running/"

// DiscoveryTroubleshooting provides solutions to common mDNS discovery
// issues (firewalls, multicast-hostile networks, multiple interfaces).
const DiscoveryTroubleshooting = "https://wrrulos.github.io/dotjson/daemon/discovery-troubleshooting/"

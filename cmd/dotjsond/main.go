// Dotjsond is a daemon that serves a manifest's documents to remote callers.
//
// It loads the configuration and language files a dotjson.yaml manifest
// declares and serves them over a WebSocket JSON protocol, with a read-only
// HTTP mirror for health checks and listings. Optional TLS and mDNS
// advertisement make daemons easy to secure and easy to find with
// 'dotjson discover'.
//
// Usage:
//
//	dotjsond serve [flags]
//
// See 'dotjsond serve --help' for available options.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wrrulos/dotjson"
	"github.com/wrrulos/dotjson/internal/discovery"
	"github.com/wrrulos/dotjson/internal/logging"
	"github.com/wrrulos/dotjson/internal/manifest"
	"github.com/wrrulos/dotjson/internal/server"
	"github.com/wrrulos/dotjson/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dotjsond",
	Short: "dotjson document daemon",
	Long: `A daemon serving a dotjson manifest's documents over the network.

Remote dotjson CLIs, and anything else speaking the JSON protocol, can
read and write configuration values, look up translations, and list
loaded documents without filesystem access to this machine. Writes are
persisted to the backing files before the daemon answers.

Note: For local, manifest-driven operations use the 'dotjson' utility.`,
	Version: version.Version,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// Serve command and flags
var (
	manifestPath string
	certPath     string
	keyPath      string
	host         string
	port         int
	logLevel     string
	instance     string
	noMDNS       bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the daemon",
	Long: `Start the dotjson daemon serving the manifest's documents.

The daemon loads every configuration and language the manifest declares
into its own registries, then accepts WebSocket connections on /ws and
answers the protocol's ping, list, get_value, set_value, translate, and
get_document requests. GET /healthz and GET /api/list mirror the state
read-only over plain HTTP.

Unless --no-mdns is set, the daemon advertises itself as a
_dotjson._tcp service so 'dotjson discover' can find it.`,
	Example: `  # Serve the nearest manifest on the default port
  dotjsond serve

  # Serve an explicit manifest on a custom port with debug logging
  dotjsond serve --manifest deploy/dotjson.yaml --port 7601 --log-level debug

  # Serve with TLS
  dotjsond serve --cert /path/to/fullchain.pem --key /path/to/privkey.pem

  # Serve without mDNS advertisement
  dotjsond serve --no-mdns`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&manifestPath, "manifest", "", "Path to the manifest file (default: nearest dotjson.yaml)")
	serveCmd.Flags().StringVar(&certPath, "cert", "", "Path to TLS certificate file (optional)")
	serveCmd.Flags().StringVar(&keyPath, "key", "", "Path to TLS private key file (optional)")
	serveCmd.Flags().StringVar(&host, "host", "", "Listen host (empty = all interfaces)")
	serveCmd.Flags().IntVar(&port, "port", discovery.DefaultPort, "Listen port")
	serveCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	serveCmd.Flags().StringVar(&instance, "instance", "", "mDNS instance name (default: dotjsond on <hostname>)")
	serveCmd.Flags().BoolVar(&noMDNS, "no-mdns", false, "Do not advertise the daemon over mDNS")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Validate: either both cert and key are provided, or neither
	if (certPath != "" && keyPath == "") || (certPath == "" && keyPath != "") {
		return fmt.Errorf("both --cert and --key must be provided together, or neither")
	}
	if certPath != "" {
		if _, err := os.Stat(certPath); os.IsNotExist(err) {
			return fmt.Errorf("certificate file not found: %s", certPath)
		}
		if _, err := os.Stat(keyPath); os.IsNotExist(err) {
			return fmt.Errorf("private key file not found: %s", keyPath)
		}
	}

	// Load the manifest into daemon-owned registries
	path, err := manifest.Find(manifestPath)
	if err != nil {
		return fmt.Errorf("no manifest to serve: %w", err)
	}
	m, err := manifest.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load manifest: %w", err)
	}

	configs := dotjson.NewConfigRegistry()
	languages := dotjson.NewLanguageRegistry()
	if err := m.Apply(configs, languages); err != nil {
		return fmt.Errorf("failed to load documents: %w", err)
	}

	// Create server configuration
	config := &server.Config{
		Host:        host,
		Port:        port,
		CertPath:    certPath,
		KeyPath:     keyPath,
		LogLevel:    logLevel,
		Instance:    instance,
		DisableMDNS: noMDNS,
	}

	// Create and start server
	srv, err := server.New(config, configs, languages)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	// Logging is up once the server exists; announce the served documents
	for _, src := range m.ConfigSources() {
		logging.LogDocumentLoad(dotjson.KindConfiguration, src.Name, src.Path)
	}
	for _, src := range m.LanguageSources() {
		logging.LogDocumentLoad(dotjson.KindLanguage, src.Name, src.Path)
	}

	return srv.Start()
}

// Version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dotjsond %s (commit: %s)\n", version.Version, version.Commit)
	},
}

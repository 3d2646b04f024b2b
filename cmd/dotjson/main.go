// Dotjson is a command line companion for the dotjson library.
//
// It loads the nearest dotjson.yaml manifest into the default registries and
// exposes the library's operations from the shell: reading and writing
// configuration values, translation lookups, locale coverage linting, and
// YAML/JSON conversion. It can also discover running dotjsond daemons over
// mDNS and run the same operations against one with --remote.
//
// Usage:
//
//	dotjson [command] [flags]
//
// Running without arguments launches the interactive document browser.
// See 'dotjson --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wrrulos/dotjson/internal/urls"
	"github.com/wrrulos/dotjson/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dotjson",
	Short: "JSON configuration and localization utility",
	Long: `A command line companion for the dotjson library.

Reads the nearest dotjson.yaml manifest, loads the configuration and
language files it declares, and exposes the library's operations from the
shell: get, set, keys, translate, lint, and convert. The browse command
opens a full-screen document browser, and discover finds dotjsond daemons
on the local network.

If no command is specified, the document browser launches.

Documentation: ` + urls.GettingStarted,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: open the browser when no subcommand provided
		return runBrowse(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dotjson %s (commit: %s)\n", version.Version, version.Commit)
	},
}

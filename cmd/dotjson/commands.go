package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/wrrulos/dotjson"
	"github.com/wrrulos/dotjson/internal/client"
	"github.com/wrrulos/dotjson/internal/discovery"
	"github.com/wrrulos/dotjson/internal/dotpath"
	"github.com/wrrulos/dotjson/internal/i18n"
	"github.com/wrrulos/dotjson/internal/logging"
	"github.com/wrrulos/dotjson/internal/manifest"
	"github.com/wrrulos/dotjson/internal/protocol"
	"github.com/wrrulos/dotjson/internal/tui"
	"github.com/wrrulos/dotjson/internal/ui"
	"github.com/wrrulos/dotjson/internal/urls"
)

// Command flags
var (
	manifestPath  string
	remoteAddr    string
	forceLocal    bool
	configName    string
	langName      string
	rawString     bool
	referenceLang string
	scanTimeout   int
)

func init() {
	// Common flags for all commands (persistent on root)
	rootCmd.PersistentFlags().StringVar(&manifestPath, "manifest", "", "Path to the manifest file (default: nearest dotjson.yaml)")
	rootCmd.PersistentFlags().StringVar(&remoteAddr, "remote", "", "Daemon address (host:port) to run supported operations against")
	rootCmd.PersistentFlags().BoolVar(&forceLocal, "local", false, "Ignore the manifest's remote entry and use local files")

	// Add subcommands directly to root
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(translateCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(initCmd)
}

// getCmd prints one resolved configuration value
var getCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a configuration value",
	Long: `Resolve a dotted key path in a loaded configuration and print it.

Plain string values print raw so the output can feed shell substitution;
everything else prints as JSON. The configuration defaults to the
manifest's default_config entry ("default" when unset).`,
	Example: `  # Read from the default configuration
  dotjson get server.port

  # Read from a named configuration
  dotjson get pool.max --config db

  # Read through a running daemon
  dotjson get server.port --remote 192.168.1.20:7600`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func init() {
	getCmd.Flags().StringVar(&configName, "config", "", "Configuration name (default: the manifest's default_config)")
}

func runGet(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	key := args[0]

	m, err := openManifest()
	if err != nil {
		ui.PrintFailure("Manifest not loaded", err, manifestTips(err))
		return err
	}
	name := resolveConfigName(m)

	var value any
	addr := remoteTarget(m)
	if addr != "" {
		c := newRemoteClient(addr)
		defer c.Close()
		value, err = c.GetValue(name, key)
	} else {
		if err = m.ApplyGlobal(); err != nil {
			ui.PrintFailure("Documents not loaded", err, ui.Troubleshooting(err))
			return err
		}
		value, err = dotjson.GetConfigValue(key, name)
	}
	if err != nil {
		ui.PrintFailure("Lookup failed", err, failureTips(err, addr))
		return err
	}

	return printValue(value)
}

// setCmd writes one configuration value and persists the document
var setCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value and persist it",
	Long: `Assign a value to a dotted key path and rewrite the backing file.

The value is parsed as JSON (8080 becomes a number, true a boolean,
{"a":1} an object) with a fallback to the raw string when it does not
parse. Use --string to skip JSON parsing entirely. Intermediate objects
along the path are created; non-object intermediates are replaced.`,
	Example: `  # Set a number
  dotjson set server.port 9090

  # Set a string (no quoting needed)
  dotjson set server.host db.internal

  # Force a numeric-looking value to stay a string
  dotjson set app.version 1.2 --string

  # Write through a running daemon
  dotjson set server.port 9090 --remote 192.168.1.20:7600`,
	Args: cobra.ExactArgs(2),
	RunE: runSet,
}

func init() {
	setCmd.Flags().StringVar(&configName, "config", "", "Configuration name (default: the manifest's default_config)")
	setCmd.Flags().BoolVar(&rawString, "string", false, "Store the value as a raw string without JSON parsing")
}

func runSet(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	key, raw := args[0], args[1]

	m, err := openManifest()
	if err != nil {
		ui.PrintFailure("Manifest not loaded", err, manifestTips(err))
		return err
	}
	name := resolveConfigName(m)

	value := any(raw)
	if !rawString {
		value = parseValueArg(raw)
	}

	details := map[string]string{"Value": renderValueDetail(value)}

	addr := remoteTarget(m)
	if addr != "" {
		c := newRemoteClient(addr)
		defer c.Close()
		err = c.SetValue(name, key, value)
		details["Daemon"] = addr
	} else {
		if err = m.ApplyGlobal(); err != nil {
			ui.PrintFailure("Documents not loaded", err, ui.Troubleshooting(err))
			return err
		}
		err = dotjson.SetConfigValue(key, value, name)
		if path, pathErr := dotjson.DefaultConfigs().Path(name); pathErr == nil {
			details["Source"] = path
		}
	}
	if err != nil {
		ui.PrintFailure("Update failed", err, failureTips(err, addr))
		return err
	}

	ui.PrintSuccess(i18n.Tf("value_updated", map[string]any{"Key": key, "Name": name}), details)
	return nil
}

// keysCmd lists every dotted key path of a configuration
var keysCmd = &cobra.Command{
	Use:   "keys [name]",
	Short: "List all dotted key paths of a configuration",
	Long: `Print every leaf key of a loaded configuration as a dotted path,
one per line, sorted. The plain output is meant for shell completion
and scripting.`,
	Example: `  # Keys of the default configuration
  dotjson keys

  # Keys of a named configuration
  dotjson keys db

  # Feed a fuzzy finder
  dotjson keys | fzf | xargs dotjson get`,
	Args: cobra.MaximumNArgs(1),
	RunE: runKeys,
}

func runKeys(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	m, err := openManifest()
	if err != nil {
		ui.PrintFailure("Manifest not loaded", err, manifestTips(err))
		return err
	}
	name := resolveConfigName(m)
	if len(args) == 1 {
		name = args[0]
	}

	var doc any
	addr := remoteTarget(m)
	if addr != "" {
		c := newRemoteClient(addr)
		defer c.Close()
		doc, err = c.GetDocument(dotjson.KindConfiguration, name)
	} else {
		if err = m.ApplyGlobal(); err != nil {
			ui.PrintFailure("Documents not loaded", err, ui.Troubleshooting(err))
			return err
		}
		doc, err = dotjson.GetConfig(name)
	}
	if err != nil {
		ui.PrintFailure("Lookup failed", err, failureTips(err, addr))
		return err
	}

	for _, key := range dotpath.Keys(doc) {
		fmt.Println(key)
	}
	return nil
}

// listCmd shows the manifest entries and their loaded state
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List manifest entries and their loaded state",
	Long: `Load every entry the manifest declares and report the result per
entry: configurations with their source paths, languages, and the
active language. Entries that fail to load are reported in place
instead of aborting the listing.`,
	Example: `  # List the local manifest's documents
  dotjson list

  # List what a daemon is serving
  dotjson list --remote 192.168.1.20:7600`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	m, err := openManifest()
	if err != nil {
		ui.PrintFailure("Manifest not loaded", err, manifestTips(err))
		return err
	}

	if addr := remoteTarget(m); addr != "" {
		c := newRemoteClient(addr)
		defer c.Close()
		result, err := c.List()
		if err != nil {
			ui.PrintFailure("Listing failed", err, failureTips(err, addr))
			return err
		}
		printRemoteList(result)
		return nil
	}

	if len(m.Configs)+len(m.Languages) == 0 {
		fmt.Println(i18n.T("no_documents"))
		return nil
	}

	if len(m.Configs) > 0 {
		fmt.Println()
		fmt.Println(ui.HeadingStyle.Render(i18n.T("config_heading")))
		for _, src := range m.ConfigSources() {
			printManifestEntry(src.Name, src.Path, dotjson.LoadConfig(src.Name, src.Path))
		}
	}

	if len(m.Languages) > 0 {
		fmt.Println()
		fmt.Println(ui.HeadingStyle.Render(i18n.T("language_heading")))
		for _, src := range m.LanguageSources() {
			printManifestEntry(src.Name, src.Path, dotjson.LoadLanguage(src.Name, src.Path))
		}
	}

	// A failed activation already surfaced as a load failure above.
	if m.ActiveLanguage != "" {
		_ = dotjson.SetActiveLanguage(m.ActiveLanguage)
	}
	if name, ok := dotjson.GetActiveLanguageName(); ok {
		fmt.Println()
		fmt.Printf("%s: %s\n", i18n.T("active_language"), ui.OKStyle.Render(name))
	}

	fmt.Println()
	fmt.Println(ui.NoteStyle.Render("Use 'dotjson browse' to inspect documents interactively"))
	return nil
}

// translateCmd resolves one translation key
var translateCmd = &cobra.Command{
	Use:   "translate <key>",
	Short: "Print a translation for a dotted key",
	Long: `Look up a dotted key path in a language document and print the
string it resolves to. Missing paths and non-string values fall back
to the key itself, so the command always prints something usable.

The active language from the manifest is used unless --lang names
another loaded language.`,
	Example: `  # Translate with the active language
  dotjson translate greeting.hello

  # Translate with a specific language
  dotjson translate greeting.hello --lang es

  # Translate through a running daemon
  dotjson translate greeting.hello --remote 192.168.1.20:7600`,
	Args: cobra.ExactArgs(1),
	RunE: runTranslate,
}

func init() {
	translateCmd.Flags().StringVar(&langName, "lang", "", "Language name (default: the active language)")
}

func runTranslate(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	key := args[0]

	m, err := openManifest()
	if err != nil {
		ui.PrintFailure("Manifest not loaded", err, manifestTips(err))
		return err
	}

	var text string
	addr := remoteTarget(m)
	if addr != "" {
		c := newRemoteClient(addr)
		defer c.Close()
		text, err = c.Translate(key, langName)
	} else {
		if err = m.ApplyGlobal(); err != nil {
			ui.PrintFailure("Documents not loaded", err, ui.Troubleshooting(err))
			return err
		}
		if langName != "" {
			text, err = dotjson.DefaultLanguages().TranslateWith(langName, key)
		} else {
			text, err = dotjson.Translate(key)
		}
	}
	if err != nil {
		ui.PrintFailure("Translation failed", err, failureTips(err, addr))
		return err
	}

	fmt.Println(text)
	return nil
}

// lintCmd checks key coverage across the manifest's languages
var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Check translation key coverage across languages",
	Long: `Load every language the manifest declares and compare its keys
against a reference language (the active one unless --reference names
another). Each file is reported as valid or broken, and every dotted
key present in the reference but missing elsewhere is listed.

The command exits non-zero when any file fails to parse or any key
is missing, so it can gate CI.`,
	Example: `  # Lint against the active language
  dotjson lint

  # Lint against an explicit reference
  dotjson lint --reference en`,
	RunE: runLint,
}

func init() {
	lintCmd.Flags().StringVar(&referenceLang, "reference", "", "Reference language for coverage (default: the active language)")
}

func runLint(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	m, err := openManifest()
	if err != nil {
		ui.PrintFailure("Manifest not loaded", err, manifestTips(err))
		return err
	}

	sources := m.LanguageSources()
	if len(sources) == 0 {
		fmt.Println(i18n.T("no_documents"))
		return nil
	}

	// Load each file individually so one broken document does not hide
	// the state of the others
	languages := dotjson.NewLanguageRegistry()
	parseFailures := 0
	fmt.Println()
	for _, src := range sources {
		if err := languages.Load(src.Name, src.Path); err != nil {
			parseFailures++
			fmt.Printf("  %s %s\n", ui.FailureMarker, ui.ErrorMessageStyle.Render(src.Path+": "+err.Error()))
			continue
		}
		fmt.Printf("  %s\n", ui.OKStyle.Render(ui.SuccessMarker+" "+i18n.Tf("lint_ok", map[string]any{"Path": src.Path})))
	}

	reference := referenceLang
	if reference == "" {
		reference = m.ActiveLanguage
	}
	if reference == "" {
		err := dotjson.NewInvalidArgumentError("no reference language: set active_language in the manifest or pass --reference")
		ui.PrintFailure("Lint failed", err, ui.Troubleshooting(err))
		return err
	}

	refDoc, err := languages.Document(reference)
	if err != nil {
		ui.PrintFailure("Lint failed", err, ui.Troubleshooting(err))
		return err
	}
	refKeys := dotpath.Keys(refDoc)

	missingTotal := 0
	for _, name := range languages.Names() {
		if name == reference {
			continue
		}
		doc, docErr := languages.Document(name)
		if docErr != nil {
			continue
		}

		have := make(map[string]bool)
		for _, key := range dotpath.Keys(doc) {
			have[key] = true
		}

		var missing []string
		for _, key := range refKeys {
			if !have[key] {
				missing = append(missing, key)
			}
		}
		if len(missing) == 0 {
			continue
		}

		missingTotal += len(missing)
		fmt.Println()
		fmt.Printf("  %s %s\n", ui.ListMarker, ui.ItemNameStyle.Render(fmt.Sprintf("%s: missing %d key(s)", name, len(missing))))
		for _, key := range missing {
			fmt.Printf("    %s %s\n", ui.DetailMarker, ui.ItemDetailStyle.Render(key))
		}
	}

	if parseFailures == 0 && missingTotal == 0 {
		fmt.Println()
		fmt.Println(ui.OKStyle.Render(fmt.Sprintf("All languages cover the %d key(s) of %q", len(refKeys), reference)))
		return nil
	}

	fmt.Println()
	fmt.Println(i18n.Tf("troubleshooting_hint", map[string]any{"URL": urls.ManifestReference}))
	return fmt.Errorf("lint found %d broken file(s) and %d missing key(s)", parseFailures, missingTotal)
}

// convertCmd converts config files between YAML and JSON
var convertCmd = &cobra.Command{
	Use:   "convert <input> <output>",
	Short: "Convert a config file between YAML and JSON",
	Long: `Convert a document between YAML and JSON, chosen by the file
extensions. JSON output uses 4-space indentation, matching the format
the registries persist. Useful for migrating YAML configs into
registry-loadable JSON files.`,
	Example: `  # YAML to JSON
  dotjson convert config.yaml config.json

  # JSON to YAML
  dotjson convert config.json config.yaml`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	input, output := args[0], args[1]

	data, err := os.ReadFile(input)
	if err != nil {
		ui.PrintFailure("Conversion failed", err, []string{
			"Check the input path exists and is readable",
		})
		return err
	}

	inYAML := isYAMLExt(input)
	outYAML := isYAMLExt(output)
	inJSON := strings.EqualFold(filepath.Ext(input), ".json")
	outJSON := strings.EqualFold(filepath.Ext(output), ".json")

	var converted []byte
	switch {
	case inYAML && outJSON:
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			ui.PrintFailure("Conversion failed", err, []string{
				"The input is not valid YAML",
			})
			return err
		}
		converted, err = json.MarshalIndent(doc, "", "    ")
		if err == nil {
			converted = append(converted, '\n')
		}

	case inJSON && outYAML:
		var doc any
		if err := json.Unmarshal(data, &doc); err != nil {
			ui.PrintFailure("Conversion failed", err, []string{
				"The input is not valid JSON",
				"Lint it first: dotjson lint",
			})
			return err
		}
		converted, err = yaml.Marshal(doc)

	default:
		err := fmt.Errorf("unsupported conversion from %q to %q", filepath.Ext(input), filepath.Ext(output))
		ui.PrintFailure("Conversion failed", err, []string{
			"Name the input and output with .json, .yaml, or .yml extensions",
			"The extensions decide the direction of the conversion",
		})
		return err
	}
	if err != nil {
		ui.PrintFailure("Conversion failed", err, ui.Troubleshooting(err))
		return err
	}

	if err := os.WriteFile(output, converted, 0o644); err != nil {
		ui.PrintFailure("Conversion failed", err, []string{
			"Check the output directory exists and is writable",
		})
		return err
	}

	direction := "YAML to JSON"
	if inJSON {
		direction = "JSON to YAML"
	}
	ui.PrintSuccess(i18n.Tf("converted", map[string]any{"Path": output}), map[string]string{
		"Format": direction,
		"Source": input,
	})
	return nil
}

// discoverCmd scans the local network for running daemons
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Discover dotjsond daemons on the network",
	Long: `Scan for dotjsond daemons using mDNS/DNS-SD discovery.

Each daemon advertises itself as a _dotjson._tcp service with its
version in a TXT record. Discovered daemons are listed with the
address to pass to --remote.`,
	Example: `  # Scan for 10 seconds (default)
  dotjson discover

  # Quick 3-second scan
  dotjson discover --timeout 3

  # Longer scan for congested networks
  dotjson discover --timeout 30`,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().IntVar(&scanTimeout, "timeout", 10, "Scan timeout in seconds")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	ui.PrintCommandHeader(
		"Network Discovery",
		"dotjson discover",
		map[string]string{
			"Service": discovery.ServiceType,
			"Timeout": fmt.Sprintf("%ds", scanTimeout),
		},
	)

	ui.PrintPleaseWait(i18n.T("scanning_network"), fmt.Sprintf("up to %d seconds", scanTimeout))

	services, err := discovery.Scan(time.Duration(scanTimeout) * time.Second)
	if err != nil {
		ui.PrintFailure("Discovery failed", err, ui.DiscoveryTroubleshooting())
		return err
	}

	if len(services) == 0 {
		ui.PrintWarning(i18n.T("no_daemons"), nil)
		fmt.Println(i18n.Tf("troubleshooting_hint", map[string]any{"URL": urls.DiscoveryTroubleshooting}))
		return nil
	}

	fmt.Println()
	fmt.Println(ui.HeadingStyle.Render(i18n.Tn("daemons_found", len(services))))
	for _, svc := range services {
		fmt.Printf("  %s %s\n", ui.ListMarker, ui.ItemNameStyle.Render(svc.Instance))
		detail := svc.Addr()
		if svc.Version != "" {
			detail += "  " + svc.Version
		}
		fmt.Printf("    %s %s\n", ui.DetailMarker, ui.ItemDetailStyle.Render(detail))
	}

	fmt.Println()
	fmt.Println(ui.NoteStyle.Render("Use 'dotjson list --remote <address>' to inspect a daemon"))
	return nil
}

// browseCmd launches the interactive document browser
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse and edit loaded documents interactively",
	Long: `Open a full-screen browser over the manifest's documents.

The entries screen lists every configuration and language with its
source and key count. Opening an entry drills into the document one
object level at a time; leaf values of configurations can be edited
inline and are persisted on save. Language documents are read-only.

Without a manifest the browser opens empty and points at 'dotjson
init' to create one.`,
	Example: `  # Browse the nearest manifest's documents
  dotjson browse
  # Or simply (browse is the default):
  dotjson

  # Browse an explicit manifest
  dotjson browse --manifest deploy/dotjson.yaml`,
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	m, err := openManifest()
	switch {
	case err == nil:
		if err := m.ApplyGlobal(); err != nil {
			ui.PrintFailure("Documents not loaded", err, ui.Troubleshooting(err))
			return err
		}
	case errors.Is(err, fs.ErrNotExist):
		// No manifest found: open the empty browser, which points at init
	default:
		ui.PrintFailure("Manifest not loaded", err, manifestTips(err))
		return err
	}

	model := tui.NewAppModel(dotjson.DefaultConfigs(), dotjson.DefaultLanguages())

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("browser error: %w", err)
	}
	return nil
}

// initCmd writes a starter manifest with sample documents
var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Create a starter manifest and sample documents",
	Long: `Write a starter dotjson.yaml to the given directory (default the
current one), together with the sample configuration and language
files it declares. Existing files are never overwritten.`,
	Example: `  # Start a project in the current directory
  dotjson init

  # Start a project somewhere else
  dotjson init ./deploy`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		ui.PrintFailure("Starter not created", err, []string{
			"Check the directory is writable",
		})
		return err
	}

	path := filepath.Join(dir, manifest.FileName)
	if _, err := os.Stat(path); err == nil {
		err := fmt.Errorf("%s already exists", path)
		ui.PrintFailure("Starter not created", err, []string{
			"Remove the existing manifest first, or pick another directory",
			"Inspect what it declares with: dotjson list",
		})
		return err
	}

	m, err := manifest.CreateStarter(path)
	if err != nil {
		ui.PrintFailure("Starter not created", err, ui.Troubleshooting(err))
		return err
	}

	for _, entry := range m.Configs {
		if err := writeStarterFile(filepath.Join(dir, entry.Path), starterConfigJSON); err != nil {
			ui.PrintFailure("Starter not created", err, ui.Troubleshooting(err))
			return err
		}
	}
	for _, entry := range m.Languages {
		if err := writeStarterFile(filepath.Join(dir, entry.Path), starterLanguageJSON); err != nil {
			ui.PrintFailure("Starter not created", err, ui.Troubleshooting(err))
			return err
		}
	}

	ui.PrintSuccess(i18n.Tf("starter_created", map[string]any{"Path": dir}), map[string]string{
		"Manifest": path,
	})
	fmt.Println(ui.NoteStyle.Render("Edit " + manifest.FileName + " to declare your own files, then run 'dotjson list'"))
	return nil
}

// Helper functions

// openManifest finds and parses the manifest without loading its documents.
// Commands decide themselves whether to apply it locally or talk to a
// daemon instead.
func openManifest() (*manifest.Manifest, error) {
	path, err := manifest.Find(manifestPath)
	if err != nil {
		return nil, err
	}
	return manifest.Load(path)
}

// resolveConfigName returns the configuration the command should target:
// the --config flag, then the manifest's default
func resolveConfigName(m *manifest.Manifest) string {
	if configName != "" {
		return configName
	}
	return m.ConfigName()
}

// newRemoteClient builds a daemon client for commands running against
// --remote. Logging comes up from the environment first, so
// DOTJSON_LOG_LEVEL=debug traces the round trips.
func newRemoteClient(addr string) *client.Client {
	if err := logging.InitializeFromEnv(); err != nil {
		// Ignore error, GetLogger will create fallback logger
		_ = err
	}
	return client.NewClient(addr)
}

// remoteTarget resolves the daemon address for commands that support
// --remote: the flag wins, then the manifest's remote entry; --local
// forces the local files
func remoteTarget(m *manifest.Manifest) string {
	if forceLocal {
		return ""
	}
	if remoteAddr != "" {
		return remoteAddr
	}
	return m.Remote
}

// failureTips picks troubleshooting hints for err. Registry errors carry
// their own category; anything else that happened against a daemon is
// treated as a connection problem.
func failureTips(err error, addr string) []string {
	if addr == "" {
		return ui.Troubleshooting(err)
	}
	var regErr *dotjson.RegistryError
	if errors.As(err, &regErr) {
		return ui.Troubleshooting(err)
	}
	return ui.ConnectionTroubleshooting(addr)
}

// manifestTips explains a failed manifest lookup
func manifestTips(err error) []string {
	if errors.Is(err, fs.ErrNotExist) {
		return []string{
			"Run 'dotjson init' to create a starter manifest",
			"Or point at one explicitly: --manifest path/to/dotjson.yaml",
			"Manifest format: " + urls.ManifestReference,
		}
	}
	return ui.Troubleshooting(err)
}

// printValue writes a value the way the library resolves it: raw for plain
// strings, JSON for everything else
func printValue(value any) error {
	if s, ok := value.(string); ok {
		fmt.Println(s)
		return nil
	}
	data, err := json.MarshalIndent(value, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding value: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// parseValueArg interprets a command line value as JSON, falling back to
// the raw string when it does not parse
func parseValueArg(text string) any {
	var value any
	if err := json.Unmarshal([]byte(text), &value); err != nil {
		return text
	}
	return value
}

// renderValueDetail renders a value compactly for result box details
func renderValueDetail(value any) string {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(data)
}

// printManifestEntry prints one list line with its load outcome
func printManifestEntry(name, path string, err error) {
	fmt.Printf("  %s %s\n", ui.ListMarker, ui.ItemNameStyle.Render(name))
	if err != nil {
		fmt.Printf("    %s %s\n", ui.FailureMarker, ui.ErrorMessageStyle.Render(err.Error()))
		return
	}
	fmt.Printf("    %s %s\n", ui.DetailMarker, ui.ItemDetailStyle.Render(path))
}

// printRemoteList renders a daemon's list response
func printRemoteList(result *protocol.ListResult) {
	if len(result.Configs)+len(result.Languages) == 0 {
		fmt.Println(i18n.T("no_documents"))
		return
	}

	if len(result.Configs) > 0 {
		fmt.Println()
		fmt.Println(ui.HeadingStyle.Render(i18n.T("config_heading")))
		for _, entry := range result.Configs {
			fmt.Printf("  %s %s\n", ui.ListMarker, ui.ItemNameStyle.Render(entry.Name))
			if entry.Path != "" {
				fmt.Printf("    %s %s\n", ui.DetailMarker, ui.ItemDetailStyle.Render(entry.Path))
			}
		}
	}

	if len(result.Languages) > 0 {
		fmt.Println()
		fmt.Println(ui.HeadingStyle.Render(i18n.T("language_heading")))
		for _, entry := range result.Languages {
			fmt.Printf("  %s %s\n", ui.ListMarker, ui.ItemNameStyle.Render(entry.Name))
		}
	}

	if result.ActiveLanguage != "" {
		fmt.Println()
		fmt.Printf("%s: %s\n", i18n.T("active_language"), ui.OKStyle.Render(result.ActiveLanguage))
	}
}

// isYAMLExt reports whether the path names a YAML file
func isYAMLExt(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// writeStarterFile writes a sample document unless the path already exists
func writeStarterFile(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

const starterConfigJSON = `{
    "app": {
        "name": "my-app",
        "debug": false
    },
    "server": {
        "host": "localhost",
        "port": 8080
    }
}
`

const starterLanguageJSON = `{
    "greeting": {
        "hello": "Hello",
        "goodbye": "Goodbye"
    },
    "farewell": "See you soon"
}
`

package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arc-language/appanvil"
	"github.com/arc-language/appanvil/pkg/core"
	"github.com/arc-language/appanvil/pkg/plan"
)

var (
	cfgFile    string
	catalogSrc string
	debug      bool
	config     *core.Config
	logger     = log.New(io.Discard, "", 0)
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "appanvil",
	Short: "Windows install script generator",
	Long: `appanvil - build install scripts for a selection of Windows apps

Pick apps from a catalog and get a PowerShell script, a batch installer and
plain winget, Chocolatey and Scoop command lists. Selections can be shared
as compact tokens and imported again later.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion overrides the reported version.
func SetVersion(v string) {
	if v != "" {
		rootCmd.Version = v
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/appanvil/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&catalogSrc, "catalog", "", "catalog file or URL (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add commands
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(providersCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	var err error
	config, err = core.LoadConfig(cfgFile)
	if err != nil {
		printError(os.Stderr, fmt.Sprintf("Error loading config: %v", err))
		config = core.DefaultConfig()
	}

	// Override config with flags
	if catalogSrc != "" {
		config.CatalogPath = catalogSrc
		config.CatalogURL = ""
	}
	if debug {
		config.Debug = true
	}

	if config.Debug {
		logger = log.New(os.Stderr, "[appanvil] ", log.LstdFlags)
	} else {
		logger = log.New(io.Discard, "", 0)
	}
}

// openGenerator loads the configured catalog.
func openGenerator(ctx context.Context) (*appanvil.Generator, error) {
	source := config.CatalogSource()
	if source == "" {
		return nil, fmt.Errorf("%w: pass --catalog, set catalog_path in the config or run `appanvil catalog sync`", appanvil.ErrNoCatalog)
	}

	logger.Printf("Loading catalog from %s", source)
	return appanvil.Open(ctx, source, &appanvil.Config{
		ShareBaseURL: config.ShareBaseURL,
		Logger:       logger,
	})
}

// addOptionFlags registers the generator option flags on cmd.
func addOptionFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("silent", true, "install silently where supported")
	cmd.Flags().Bool("continue-on-error", true, "keep installing after a failure")
	cmd.Flags().Bool("include-msstore", false, "include Microsoft Store apps")
}

// resolveOptions starts from base and applies any option flags the user set.
func resolveOptions(cmd *cobra.Command, base plan.Options) plan.Options {
	opts := base
	if f := cmd.Flags().Lookup("silent"); f != nil && f.Changed {
		opts.SilentInstall, _ = cmd.Flags().GetBool("silent")
	}
	if f := cmd.Flags().Lookup("continue-on-error"); f != nil && f.Changed {
		opts.ContinueOnError, _ = cmd.Flags().GetBool("continue-on-error")
	}
	if f := cmd.Flags().Lookup("include-msstore"); f != nil && f.Changed {
		opts.IncludeMsStoreApps, _ = cmd.Flags().GetBool("include-msstore")
	}
	return opts
}

// readInput returns the contents of path when it names a file, and the
// argument itself otherwise.
func readInput(arg string) (string, error) {
	trimmed := strings.TrimSpace(arg)
	if trimmed == "" || strings.ContainsAny(trimmed, "\n{") {
		return arg, nil
	}
	info, err := os.Stat(trimmed)
	if err != nil || info.IsDir() {
		return arg, nil
	}
	data, err := os.ReadFile(trimmed)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", trimmed, err)
	}
	return string(data), nil
}

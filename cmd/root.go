package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	cfgpkg "github.com/kestrelworks/listr-cli/internal/config"
	"github.com/kestrelworks/listr-cli/internal/optimizer"
	"github.com/kestrelworks/listr-cli/internal/report"
)

var (
	// Global flags
	cfgFile string
	debug   bool
	// Service flags (override config if set)
	flagServerURL      string
	flagHTTPTimeoutSec int

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "listr",
	Short: "Listr CLI: rank birding hotspots by expected new lifers",
	Long: `Listr parses your eBird life list export, sends it to a hotspot
optimization service together with a date range and optional county filter,
and renders the ranked recommendations as an HTML report with a map, a
terminal summary, or raw JSON.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.listr/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagServerURL, "server", "", "optimization service base URL (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagHTTPTimeoutSec, "http-timeout", 0, "HTTP timeout in seconds, 0 waits indefinitely (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: defaults still allow running against a local service
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c

	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("server") && flagServerURL != "" {
		cfg.ServerURL = flagServerURL
	}
	if f.Changed("http-timeout") {
		cfg.HTTPTimeoutSec = flagHTTPTimeoutSec
	}
}

// serviceClient builds the optimizer client from effective configuration.
func serviceClient() *optimizer.Client {
	baseURL := ""
	timeoutSec := 0
	if cfg != nil {
		baseURL = cfg.ServerURL
		timeoutSec = cfg.HTTPTimeoutSec
	}
	if baseURL == "" && flagServerURL != "" {
		baseURL = flagServerURL
	}
	return optimizer.NewClient(baseURL, time.Duration(timeoutSec)*time.Second)
}

// renderOptions builds report options from effective configuration.
func renderOptions() report.Options {
	opt := report.DefaultOptions()
	if cfg != nil {
		if cfg.MinProbability > 0 {
			opt.MinProbability = cfg.MinProbability
		}
		if cfg.MaxSpeciesRows > 0 {
			opt.MaxSpeciesRows = cfg.MaxSpeciesRows
		}
	}
	return opt
}

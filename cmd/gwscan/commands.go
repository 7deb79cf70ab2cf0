package main

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/rtls-ctl/gwscan/internal/config"
	"github.com/rtls-ctl/gwscan/internal/iprange"
	"github.com/rtls-ctl/gwscan/internal/logging"
	"github.com/rtls-ctl/gwscan/internal/probe"
	"github.com/rtls-ctl/gwscan/internal/report"
	"github.com/rtls-ctl/gwscan/internal/scanner"
	"github.com/rtls-ctl/gwscan/internal/ui"
	"github.com/rtls-ctl/gwscan/internal/vendor"
)

// Command flags
var (
	configPath     string
	verbose        int
	concurrency    int
	port           int
	connectTimeout time.Duration
	raceTimeout    time.Duration
	outputFormat   string
	ouiDatabase    string
	showProgress   bool
	forceInit      bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/gwscan/config.yaml)")
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "Increase log verbosity (-v info, -vv debug)")

	rootCmd.Flags().IntVarP(&concurrency, "concurrency", "c", scanner.DefaultConcurrency, "Maximum addresses probed at once")
	rootCmd.Flags().IntVar(&port, "port", probe.DefaultPort, "HTTP port probed on every address")
	rootCmd.Flags().DurationVar(&connectTimeout, "connect-timeout", probe.DefaultConnectTimeout, "TCP reachability timeout")
	rootCmd.Flags().DurationVar(&raceTimeout, "race-timeout", scanner.DefaultRaceTimeout, "Deadline shared by both gateway probes")
	rootCmd.Flags().StringVar(&outputFormat, "format", report.FormatJSON, "Output format (json, table)")
	rootCmd.Flags().StringVar(&ouiDatabase, "oui-database", "", "IEEE oui.txt used to add vendor names (\"auto\" searches the usual system paths)")
	rootCmd.Flags().BoolVar(&showProgress, "progress", false, "Show a live progress display on stderr (terminal only)")
}

// loadConfig reads the config file and applies the flags the user set
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("concurrency") {
		cfg.Concurrency = concurrency
	}
	if flags.Changed("port") {
		cfg.Port = port
	}
	if flags.Changed("connect-timeout") {
		cfg.ConnectTimeout = connectTimeout
	}
	if flags.Changed("race-timeout") {
		cfg.RaceTimeout = raceTimeout
	}
	if flags.Changed("format") {
		cfg.Format = outputFormat
	}
	if flags.Changed("oui-database") {
		cfg.OUIDatabase = ouiDatabase
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return cfg, nil
}

// resolveRange parses the RANGE argument, or derives the default range from
// the local IPv4 address
func resolveRange(args []string) (iprange.Range, error) {
	if len(args) == 0 {
		return iprange.Default()
	}
	return parseRangeArg(args[0])
}

func parseRangeArg(arg string) (iprange.Range, error) {
	if strings.Contains(arg, "/") && !strings.Contains(arg, iprange.Separator) {
		prefix, err := netip.ParsePrefix(arg)
		if err != nil {
			return iprange.Range{}, fmt.Errorf("invalid range %q: %w", arg, err)
		}
		return iprange.FromPrefix(prefix)
	}
	return iprange.Parse(arg)
}

// openVendors loads the OUI database if one is configured. A database that
// fails to load only disables the vendor column.
func openVendors(path string, logger *zap.Logger) report.VendorLookup {
	db, err := vendor.Load(path)
	if err != nil {
		logger.Warn("Vendor names disabled", zap.Error(err))
		return nil
	}
	if db == nil {
		return nil
	}
	logger.Debug("Loaded OUI database", zap.String("path", db.Path()))
	return db
}

func runScan(cmd *cobra.Command, args []string) error {
	// Suppress usage on execution errors (we're past argument parsing)
	cmd.SilenceUsage = true

	level := ""
	if verbose > 0 {
		level = logging.LevelFromVerbosity(verbose)
	}
	if err := logging.Initialize(level); err != nil {
		return err
	}
	defer logging.Sync()
	logger := logging.GetLogger()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	rng, err := resolveRange(args)
	if err != nil {
		return err
	}

	vendors := openVendors(cfg.OUIDatabase, logger)
	s := scanner.New(cfg.Scanner(), logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var detections []probe.Detection
	if showProgress && ui.IsTerminal(os.Stderr) {
		detections, err = scanWithProgress(ctx, s, rng, cfg)
	} else {
		detections, err = s.Scan(ctx, rng)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	// Partial results of an interrupted scan are still reported
	if werr := report.Write(cmd.OutOrStdout(), detections, cfg.Format, vendors); werr != nil {
		return werr
	}
	return err
}

// scanWithProgress runs the scan behind the Bubble Tea progress display
func scanWithProgress(ctx context.Context, s *scanner.Scanner, rng iprange.Range, cfg *config.Config) ([]probe.Detection, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	width := ui.GetTerminalWidth()
	fmt.Fprintln(os.Stderr, ui.NewHeader("Gateway scan", "gwscan "+rng.String(),
		ui.Param{Key: "Range", Value: rng.String()},
		ui.Param{Key: "Addresses", Value: fmt.Sprintf("%d", rng.Len())},
		ui.Param{Key: "Concurrency", Value: fmt.Sprintf("%d", cfg.Concurrency)},
		ui.Param{Key: "Port", Value: fmt.Sprintf("%d", cfg.Port)},
		ui.Param{Key: "Race timeout", Value: cfg.RaceTimeout.String()},
	).SetWidth(width).Render())

	var (
		detections []probe.Detection
		last       scanner.Progress
	)
	start := time.Now()

	err := ui.RunScan(os.Stderr, "Scanning "+rng.String(), cancel, func(onProgress func(scanner.Progress)) error {
		s.OnProgress = func(p scanner.Progress) {
			last = p
			onProgress(p)
		}
		var scanErr error
		detections, scanErr = s.Scan(ctx, rng)
		return scanErr
	})

	fmt.Fprintln(os.Stderr, ui.NewScanResult(last, time.Since(start), err).SetWidth(width).Render())
	return detections, err
}

// configCmd groups the config file helpers
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with the default settings",
	Example: `  # Create ~/.config/gwscan/config.yaml
  gwscan config init

  # Write to a custom location
  gwscan config init --config ./gwscan.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		path := configPath
		if path == "" {
			var err error
			if path, err = config.GetConfigPath(); err != nil {
				return err
			}
		}

		if _, err := os.Stat(path); err == nil && !forceInit {
			return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
		}

		if err := config.Default().Save(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

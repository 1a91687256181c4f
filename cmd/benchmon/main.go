package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/HadrienG2/benchmon/internal/config"
	"github.com/HadrienG2/benchmon/internal/logging"
	"github.com/HadrienG2/benchmon/internal/report"
	"github.com/HadrienG2/benchmon/internal/snapshot"
	"github.com/HadrienG2/benchmon/internal/watch"
)

// Build-time version info, injected via ldflags:
//
//	go build -ldflags "-X main.version=$(git describe --tags) \
//	  -X main.commit=$(git rev-parse --short HEAD) \
//	  -X main.buildDate=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/benchmon
var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

var (
	// Global flags
	cfgPath string
	verbose bool
	logFile string

	cfg *config.Config
)

// rootCmd probes the host and reports everything that may affect
// benchmark results. Running without a subcommand is the common case.
var rootCmd = &cobra.Command{
	Use:   "benchmon",
	Short: "benchmon - benchmark host inspector",
	Long: `benchmon inspects the machine you are about to run benchmarks on.

It takes a full snapshot of the host configuration (CPU, memory,
filesystems, network, sensors, logged-in users and running processes)
and reports anything liable to perturb measurements: swap pressure,
virtualization layers, other users, heterogeneous CPU frequency ranges.

Run without arguments for the startup report, or use the watch
subcommand for a live CPU and memory pressure monitor.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
	RunE:              runReport,
}

var watchInterval time.Duration

// watchCmd runs the interactive monitor. It keeps the terminal, so the
// structured logger stays out of the way here.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live CPU and memory pressure monitor",
	RunE: func(cmd *cobra.Command, args []string) error {
		interval := watchInterval
		if interval <= 0 {
			interval = cfg.WatchInterval()
		}
		return watch.Run(interval)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("benchmon %s (commit %s, built %s)\n", version, commit, buildDate)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "benchmon.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug detail to the console")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "Also write a JSON log to this file (overrides config)")

	watchCmd.Flags().DurationVar(&watchInterval, "interval", 0, "Sampling interval (overrides config)")

	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	return nil
}

func runReport(cmd *cobra.Command, args []string) error {
	level := cfg.LogLevel()
	if verbose {
		level = zapcore.DebugLevel
	}
	file := cfg.Log.File
	if logFile != "" {
		file = logFile
	}

	log, closeLog, err := logging.New(logging.Options{
		ConsoleLevel: level,
		File:         file,
		Version:      version,
	})
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer closeLog()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Info("Probing host system characteristics...")
	snap, err := snapshot.Collect(ctx, snapshot.Options{
		Mounts:  cfg.Sections.Mounts,
		Network: cfg.Sections.Network,
		Sensors: cfg.Sections.Sensors,
		Users:   cfg.Sections.Users,
	})
	if err != nil {
		log.Error("Host inspection failed", zap.Error(err))
		return err
	}
	return report.Startup(log, snap)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

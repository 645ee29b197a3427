package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	clientcmd "github.com/max-niederman/beryl/internal/cmd/client"
	serverrun "github.com/max-niederman/beryl/internal/cmd/server"
	cfgpkg "github.com/max-niederman/beryl/internal/config"
	pebblestore "github.com/max-niederman/beryl/internal/storage/pebble"
	logpkg "github.com/max-niederman/beryl/pkg/log"
)

func main() {
	// initialize logger for CLI
	// Respect BERYL_LOG_LEVEL for both CLI and server start output
	level := os.Getenv("BERYL_LOG_LEVEL")
	parsed, err := logpkg.ParseLevel(level)
	if err != nil || level == "" {
		parsed = logpkg.InfoLevel
	}
	logger := logpkg.NewLogger(
		logpkg.WithLevel(parsed),
		logpkg.WithFormatter(&logpkg.TextFormatter{}),
		logpkg.WithOutput(logpkg.NewConsoleOutput()),
	)

	// Redirect standard library logs (used by Pebble) to our logger
	logpkg.RedirectStdLog(logger)

	rootCmd := &cobra.Command{
		Use:   "beryl",
		Short: "Beryl crystal id service CLI",
		Long:  "Beryl mints compact 64-bit time-sortable identifiers. This CLI manages the server and basic operations.",
	}

	// server start
	serverCmd := &cobra.Command{Use: "server", Short: "Server commands"}
	serverStartCmd := &cobra.Command{
		Use:     "start",
		Short:   "Start beryl server (HTTP API)",
		Aliases: []string{"run"},
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			dataDir, _ := cmd.Flags().GetString("data-dir")
			httpAddr, _ := cmd.Flags().GetString("http")
			generatorID, _ := cmd.Flags().GetInt("generator-id")
			epoch, _ := cmd.Flags().GetString("epoch")
			fsyncMode, _ := cmd.Flags().GetString("fsync")
			fsyncIntervalMs, _ := cmd.Flags().GetInt("fsync-interval-ms")
			logLevel, _ := cmd.Flags().GetString("log-level")
			logFormat, _ := cmd.Flags().GetString("log-format")

			cfg, err := cfgpkg.Load(configPath)
			if err != nil {
				return err
			}
			cfgpkg.FromEnv(&cfg)
			// Flags override file and env.
			if cmd.Flags().Changed("generator-id") {
				cfg.GeneratorID = generatorID
			}
			if epoch != "" {
				cfg.Epoch = epoch
			}
			if cmd.Flags().Changed("fsync") {
				cfg.Fsync = fsyncMode
			}
			if cmd.Flags().Changed("fsync-interval-ms") {
				cfg.FsyncIntervalMs = fsyncIntervalMs
			}
			if dataDir == "" {
				dataDir = cfg.DataDir
			}
			if httpAddr == "" {
				httpAddr = cfg.HTTPAddr
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
				_ = os.Setenv("BERYL_LOG_LEVEL", logLevel)
			}
			if logFormat != "" {
				cfg.Log.Format = logFormat
				_ = os.Setenv("BERYL_LOG_FORMAT", logFormat)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			mode, err := pebblestore.ParseFsyncMode(cfg.Fsync)
			if err != nil {
				return fmt.Errorf("invalid --fsync; use always|interval|never")
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			if err := serverrun.Run(ctx, serverrun.Options{
				DataDir:       dataDir,
				HTTPAddr:      httpAddr,
				Fsync:         mode,
				FsyncInterval: time.Duration(cfg.FsyncIntervalMs) * time.Millisecond,
				Config:        cfg,
			}); err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			// brief delay to allow logs flush
			time.Sleep(100 * time.Millisecond)
			return nil
		},
	}
	serverStartCmd.Flags().String("config", "", "Config file path (JSON or YAML)")
	serverStartCmd.Flags().String("data-dir", "", "Data directory (if not specified, uses OS-specific application data directory)")
	serverStartCmd.Flags().String("http", "", "HTTP listen address (default :8080)")
	serverStartCmd.Flags().Int("generator-id", 0, "12-bit generator id for this node")
	serverStartCmd.Flags().String("epoch", "", "Epoch (RFC3339 or unix ms) timestamps count from")
	serverStartCmd.Flags().String("fsync", "", "Fsync mode: always|interval|never")
	serverStartCmd.Flags().Int("fsync-interval-ms", 5, "When --fsync=interval, group-commit window in ms (default 5)")
	serverStartCmd.Flags().String("log-level", os.Getenv("BERYL_LOG_LEVEL"), "Log level: debug|info|warn|error")
	serverStartCmd.Flags().String("log-format", os.Getenv("BERYL_LOG_FORMAT"), "Log format: text|json (default text)")
	serverCmd.AddCommand(serverStartCmd)
	rootCmd.AddCommand(serverCmd)

	// client commands (mint, decode, info, state, stats, watch, bench)
	clientcmd.AddClientCommands(rootCmd, apiURL)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func apiURL() string {
	if v := os.Getenv("BERYL_HTTP"); v != "" {
		return v
	}
	return "http://127.0.0.1:8080"
}

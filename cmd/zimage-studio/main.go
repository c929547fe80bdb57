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

	"github.com/twalderman/zimage-studio/internal/config"
	"github.com/twalderman/zimage-studio/internal/generate"
	"github.com/twalderman/zimage-studio/internal/history"
	"github.com/twalderman/zimage-studio/internal/invoker"
	"github.com/twalderman/zimage-studio/internal/logging"
	"github.com/twalderman/zimage-studio/internal/lora"
	"github.com/twalderman/zimage-studio/internal/server"
)

var (
	// Global flags
	configPath string
	verbose    bool
	listenAddr string

	// Logger
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "zimage-studio",
	Short: "HTTP/JSON front end for the ZImageCLI image generator",
	Long: `zimage-studio wraps the ZImageCLI command-line image generator with a
REST API, a searchable generation history, a curated prompt library, and an
MCP (Model Context Protocol) endpoint for agent clients.

Run without arguments to start the server.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

var configInitCmd = &cobra.Command{
	Use:   "config-init [path]",
	Short: "Write a default config file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			path = "zimage-studio.yaml"
		}
		cfg := config.DefaultConfig()
		if err := cfg.Save(path); err != nil {
			return err
		}
		fmt.Printf("Wrote default config to %s\n", path)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(config.DefaultConfig().Version)
	},
}

func runServe() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if listenAddr != "" {
		cfg.Server.Addr = listenAddr
	}
	if verbose {
		cfg.Logging.DebugMode = true
		cfg.Logging.Level = "debug"
	}

	if err := cfg.EnsureDirs(); err != nil {
		return err
	}
	if err := logging.Initialize(cfg.DataDir, logging.Options{
		DebugMode:  cfg.Logging.DebugMode,
		Level:      cfg.Logging.Level,
		JSONFormat: cfg.Logging.JSONFormat,
		Categories: cfg.Logging.Categories,
	}); err != nil {
		return err
	}
	defer logging.Close()

	var storeOpts []history.Option
	if cfg.Search.CaseInsensitive {
		storeOpts = append(storeOpts, history.WithCaseInsensitiveSearch())
	}
	store, err := history.NewStore(cfg.DatabasePath, storeOpts...)
	if err != nil {
		return fmt.Errorf("failed to open history store: %w", err)
	}
	defer store.Close()

	registry, err := lora.NewRegistry(cfg.LorasDir)
	if err != nil {
		return fmt.Errorf("failed to scan loras directory: %w", err)
	}
	if err := registry.Start(); err != nil {
		logger.Warn("lora directory watcher unavailable", zap.Error(err))
	} else {
		defer registry.Stop()
	}

	runner := invoker.New(cfg.Tool.Binary, cfg.GetToolTimeout())
	orchestrator := generate.NewOrchestrator(cfg.OutputDir, runner, store, cfg.Tool.MaxConcurrent)

	srv := server.New(server.Options{
		Addr:      cfg.Server.Addr,
		Name:      cfg.Name,
		Version:   cfg.Version,
		OutputDir: cfg.OutputDir,
		Generator: orchestrator,
		Historian: store,
		Loras:     registry,
	})

	logger.Info("starting zimage-studio",
		zap.String("addr", cfg.Server.Addr),
		zap.String("data_dir", cfg.DataDir),
		zap.String("tool", cfg.Tool.Binary),
		zap.Int("loras", len(registry.List())))

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&listenAddr, "addr", "", "Listen address (overrides config)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

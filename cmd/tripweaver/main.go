// Package main provides the tripweaver binary entry point.
// Tripweaver is an AI travel planning service that generates trip plans
// through chat completion providers and serves them over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	// Register completion providers via init()
	_ "github.com/tripweaver/tripweaver/llm/providers"

	"github.com/spf13/cobra"
	"github.com/tripweaver/tripweaver/agent"
	"github.com/tripweaver/tripweaver/config"
	"github.com/tripweaver/tripweaver/content"
	"github.com/tripweaver/tripweaver/llm"
	"github.com/tripweaver/tripweaver/server"
	"github.com/tripweaver/tripweaver/session"
	"github.com/tripweaver/tripweaver/trip"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "tripweaver"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "tripweaver",
		Short: "AI travel planning service",
		Long: `Tripweaver is an AI travel planning service.

It collects travel requirements, runs a planning pipeline backed by a
chat completion provider (groq, deepseek, or openai), and serves the
resulting plan, conversation, and destination catalog over HTTP.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath, logLevel)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

func run(configPath, logLevel string) error {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.NewLoader(logger).Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	endpoint, err := llm.Select(cfg.AI.Provider, cfg.AI.Endpoint, cfg.AI.Model)
	if err != nil {
		return err
	}

	client := llm.NewClient(endpoint,
		llm.WithTimeout(cfg.AI.GetTimeout()),
		llm.WithLogger(logger),
	)
	planner := trip.NewPlanner(client, trip.WithLogger(logger))

	store := session.NewStore()
	orchestrator := agent.New(store, planner,
		agent.WithTaskDelay(cfg.Agent.GetTaskDelay()),
		agent.WithLogger(logger),
	)
	defer orchestrator.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := server.Options{
		BaseContext:  ctx,
		Store:        store,
		Orchestrator: orchestrator,
		Answerer:     planner,
		Logger:       logger,
	}

	if cfg.Data.URL != "" {
		data := content.NewClient(cfg.Data.URL, cfg.Data.Key, content.WithLogger(logger))
		opts.Destinations = content.NewDestinationsService(data)
		opts.Guides = content.NewGuidesService(data)
		opts.Community = content.NewCommunityService(data)
		opts.Site = content.NewSiteService(data)
		opts.Users = content.NewUserService(data)
	} else {
		logger.Warn("data service not configured, catalog endpoints disabled")
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           server.New(opts).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Tripweaver ready",
			"version", Version,
			"addr", cfg.Server.Addr,
			"provider", endpoint.Provider.Name())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}

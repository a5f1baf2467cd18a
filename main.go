package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/tournevent/otpravka/pkg/otpravka"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

var version = "0.0.1"

// session is the state shared by every subcommand for one invocation.
type session struct {
	logger   *otelzap.Logger
	client   *otpravka.Client
	registry *prometheus.Registry
	shutdown func(context.Context) error
	out      io.Writer
}

var current *session

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "otpravka",
	Short:             "Command-line client for the Russian Post otpravka API",
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	cobra.OnFinalize(teardown)
	rootCmd.AddCommand(
		tariffCmd,
		normalizeCmd,
		postOfficeCmd,
		ordersCmd,
		batchesCmd,
		formsCmd,
		usageCmd,
	)
}

func setup(cmd *cobra.Command, args []string) error {
	if !needsClient(cmd) {
		return nil
	}
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		return err
	}

	s := &session{
		logger:   logger,
		registry: prometheus.NewRegistry(),
		out:      cmd.OutOrStdout(),
	}

	tracer, shutdown, err := initTracer(ctx, cfg)
	if err != nil {
		logger.Warn("Failed to initialize tracer", zap.Error(err))
	} else {
		s.shutdown = shutdown
	}

	s.client, err = newClient(cfg, logger, tracer, s.registry)
	if err != nil {
		return err
	}

	logger.Debug("Otpravka client ready",
		zap.String("base_url", s.client.BaseURL()),
		zap.Bool("mock", cfg.UseMock),
		zap.String("version", cfg.Version),
	)
	current = s
	return nil
}

// needsClient is false for the built-in help and completion commands.
func needsClient(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return false
		}
	}
	return true
}

// teardown runs after every command, including failed ones.
func teardown() {
	s := current
	if s == nil {
		return
	}
	current = nil

	logRequestCount(s.logger, s.registry)
	if s.shutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.shutdown(ctx); err != nil {
			s.logger.Warn("Failed to flush traces", zap.Error(err))
		}
	}
	_ = s.logger.Sync()
}

// printJSON writes v to the command output as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(current.out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

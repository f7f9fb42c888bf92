package main

import (
	"context"
	"fmt"

	"mdvalidate/internal/config"
	"mdvalidate/internal/report"
	"mdvalidate/internal/validator"
	"mdvalidate/pkg/logger"
	"mdvalidate/pkg/metrics"
	"mdvalidate/pkg/serrors"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// deps holds the constructors the command depends on so tests can swap them.
type deps struct {
	newValidator func(opts validator.Options, recorder *metrics.Recorder) validator.Validator
}

func defaultDeps() deps {
	return deps{newValidator: validator.New}
}

// rootCommand constructs the mdvalidate command. It validates the directory
// given as the only argument, or the configured root when none is given.
func rootCommand(d deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "mdvalidate [root]",
		Short:         "Checks markdown files for YAML front matter, a title and raw HTML",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, d)
		},
	}

	cmd.PersistentFlags().StringP("config", "c", "", "Config File Path (optional)")
	cmd.Flags().String("format", "", "Report format, text or json (overrides config)")
	cmd.Flags().String("metrics-file", "", "Write Prometheus metrics to this file after the run (overrides config)")

	return cmd
}

func run(cmd *cobra.Command, args []string, d deps) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if err := logger.Setup(cfg.Environment, cfg.LogLevel); err != nil {
		return fmt.Errorf("could not setup logger: %w", err)
	}
	ctx := logger.WithFields(cmd.Context(), zap.String("runID", uuid.NewString()))

	root := cfg.Validator.Root
	if len(args) == 1 {
		root = args[0]
	}

	reg := prometheus.NewRegistry()
	mp, err := metrics.NewPrometheusProvider(reg)
	if err != nil {
		return err //nolint: wrapcheck
	}
	defer func() {
		if err := mp.Shutdown(context.WithoutCancel(ctx)); err != nil {
			logger.Warn(ctx, "could not shutdown meter provider", zap.Error(err))
		}
	}()

	recorder, err := metrics.New(mp)
	if err != nil {
		return err //nolint: wrapcheck
	}

	rep, err := d.newValidator(validator.NewOptions(cfg), recorder).Validate(ctx, root)
	if err != nil {
		logger.Error(ctx, "validation aborted", zap.Error(err), zap.NamedError("kind", serrors.KindOf(err)))

		return err //nolint: wrapcheck
	}

	if cfg.Metrics.File != "" {
		if err := metrics.WriteTextfile(cfg.Metrics.File, reg); err != nil {
			logger.Warn(ctx, "could not export metrics", zap.Error(err))
		}
	}

	if err := report.Write(cmd.OutOrStdout(), rep, cfg.Output.Format); err != nil {
		return err //nolint: wrapcheck
	}

	if code := report.ExitCode(rep); code != report.ExitOK {
		return &exitError{code: code}
	}

	return nil
}

// loadConfig reads the config file named by the --config flag, if any, and
// applies the command line overrides on top of it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("could not load config: %w", err)
	}

	if cmd.Flags().Changed("format") {
		cfg.Output.Format, _ = cmd.Flags().GetString("format")
	}
	if cmd.Flags().Changed("metrics-file") {
		cfg.Metrics.File, _ = cmd.Flags().GetString("metrics-file")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}

	return cfg, nil
}

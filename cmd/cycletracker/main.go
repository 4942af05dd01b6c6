package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/cycletracker/internal/api"
	"github.com/terraincognita07/cycletracker/internal/cli"
	"github.com/terraincognita07/cycletracker/internal/config"
	"github.com/terraincognita07/cycletracker/internal/db"
	"github.com/terraincognita07/cycletracker/internal/i18n"
	"github.com/terraincognita07/cycletracker/internal/logging"
	"github.com/terraincognita07/cycletracker/internal/services"
)

const clearPeriodLogsCommand = "clear-period-logs"

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, cli.ErrAborted) {
			fmt.Fprintln(os.Stderr, "aborted")
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "cycletracker: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
	})
	if err != nil {
		return fmt.Errorf("logger init failed: %w", err)
	}

	ctx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	repos, err := db.Open(ctx, storeOptions(cfg, logger))
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			logger.WithError(err).Warn("close store")
		}
	}()

	if len(args) > 0 {
		return runCommand(ctx, args, repos.Profiles, stdin, stdout)
	}
	return serve(ctx, cfg, logger, repos.Profiles)
}

func runCommand(ctx context.Context, args []string, profiles services.ProfileRepository, stdin io.Reader, stdout io.Writer) error {
	switch args[0] {
	case clearPeriodLogsCommand:
		flags := flag.NewFlagSet(clearPeriodLogsCommand, flag.ContinueOnError)
		flags.SetOutput(stdout)
		assumeYes := flags.Bool("yes", false, "skip the confirmation prompt")
		if err := flags.Parse(args[1:]); err != nil {
			return err
		}
		service := services.NewProfileService(profiles, nil)
		return cli.RunClearPeriodLogsCommand(ctx, service, stdin, stdout, *assumeYes)
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func serve(ctx context.Context, cfg config.Config, logger *logrus.Logger, profiles services.ProfileRepository) error {
	i18nManager, err := i18n.NewEmbeddedManager(cfg.DefaultLanguage)
	if err != nil {
		return fmt.Errorf("i18n init failed: %w", err)
	}

	var metrics *api.Metrics
	var observer services.AnalysisObserver
	if cfg.MetricsEnabled {
		metrics = api.NewMetrics()
		observer = metrics
	}

	handler, err := api.NewHandler(services.NewProfileService(profiles, observer), i18nManager, logger)
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}
	app := api.NewApp(handler, api.AppOptions{
		AllowedOrigins: cfg.AllowedOrigins(),
		Metrics:        metrics,
	})

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.WithError(err).Error("server shutdown failed")
		}
	}()

	logger.WithFields(logrus.Fields{
		"addr":    cfg.ListenAddress(),
		"storage": cfg.StorageDriver,
		"metrics": cfg.MetricsEnabled,
	}).Info("cycletracker listening")
	if err := app.Listen(cfg.ListenAddress()); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func storeOptions(cfg config.Config, logger *logrus.Logger) db.Options {
	return db.Options{
		Driver:        cfg.StorageDriver,
		SQLitePath:    cfg.DBPath,
		MongoURI:      cfg.MongoURI,
		MongoDatabase: cfg.MongoDatabase,
		Logger:        logger,
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"github.com/David0179/DS-Parking-Mngt-System/internal/config"
	"github.com/David0179/DS-Parking-Mngt-System/internal/journal"
	"github.com/David0179/DS-Parking-Mngt-System/internal/logging"
	"github.com/David0179/DS-Parking-Mngt-System/internal/metrics"
	"github.com/David0179/DS-Parking-Mngt-System/internal/parking"
	"github.com/David0179/DS-Parking-Mngt-System/internal/render"
	"github.com/David0179/DS-Parking-Mngt-System/internal/shell"
)

var (
	capacity    = flag.Int("capacity", 0, "Number of parking slots (overrides PARKING_CAPACITY)")
	rate        = flag.String("rate", "", "Fee per hour (overrides PARKING_RATE_PER_HOUR)")
	journalPath = flag.String("journal", "", "Journal file path, empty to disable (overrides PARKING_JOURNAL_PATH)")
	metricsFile = flag.String("metrics-file", "", "Prometheus textfile written on exit (overrides PARKING_METRICS_FILE)")
	otelEnabled = flag.Bool("otel", false, "Export traces, metrics and logs over OTLP (overrides OTEL_ENABLED)")
	noColor     = flag.Bool("no-color", false, "Disable colored output")
)

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	telemetryProvider, err := parking.NewTelemetryProvider(ctx, parking.TelemetryConfig{
		Enabled:     cfg.OTelEnabled,
		ServiceName: cfg.OTelServiceName,
		Endpoint:    cfg.OTelEndpoint,
		Environment: cfg.Environment,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize telemetry: %v\n", err)
		os.Exit(1)
	}

	logging.Init(os.Stderr, cfg.OTelServiceName, cfg.Environment, cfg.LogLevel)

	j, err := journal.Open(cfg.JournalPath)
	if err != nil {
		logging.Warn(ctx, "journal disabled", "path", cfg.JournalPath, "error", err)
	}
	defer j.Close()

	lot := parking.NewParkingLot(cfg.Capacity, cfg.RatePerHour,
		parking.WithObserver(parking.Observers{j, parking.ObserverFunc(logEvent)}))

	instrumented, err := parking.NewInstrumentedParkingLot(lot, telemetryProvider)
	if err != nil {
		logging.Error(ctx, "failed to instrument parking lot", "error", err)
		os.Exit(1)
	}

	logging.Info(ctx, "parking lot ready",
		"capacity", cfg.Capacity,
		"rate_per_hour", cfg.RatePerHour.StringFixed(2),
		"journal", j.Enabled())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	console := render.NewConsole(os.Stdout, cfg.NoColor)
	sh := shell.NewInstrumentedShell(instrumented, telemetryProvider, os.Stdin, console)

	cliDone := make(chan struct{})
	go func() {
		sh.Run(ctx)
		close(cliDone)
	}()

	select {
	case <-cliDone:
	case sig := <-sigChan:
		logging.Info(ctx, "received shutdown signal", "signal", sig.String())
		cancel()
	}

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile, lot); err != nil {
			logging.Error(ctx, "writing metrics textfile failed", "path", cfg.MetricsFile, "error", err)
		}
	}

	shutdownTelemetry(telemetryProvider)
}

// loadConfig reads the environment, then applies any flags given on the
// command line.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	var flagErr error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "capacity":
			cfg.Capacity = *capacity
		case "rate":
			r, err := decimal.NewFromString(*rate)
			if err != nil {
				flagErr = fmt.Errorf("invalid -rate: %w", err)
				return
			}
			cfg.RatePerHour = r
		case "journal":
			cfg.JournalPath = *journalPath
		case "metrics-file":
			cfg.MetricsFile = *metricsFile
		case "otel":
			cfg.OTelEnabled = *otelEnabled
		case "no-color":
			cfg.NoColor = *noColor
		}
	})
	if flagErr != nil {
		return nil, flagErr
	}

	return cfg, cfg.Validate()
}

func logEvent(e parking.Event) {
	logging.Logger().Debug("lot event",
		slog.String("event_id", e.ID.String()),
		slog.String("kind", string(e.Kind)),
		slog.String("registration", e.RegistrationNumber),
		slog.String("message", e.String()))
}

func shutdownTelemetry(telemetryProvider *parking.TelemetryProvider) {
	logging.Debug(context.Background(), "shutting down telemetry")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := telemetryProvider.Shutdown(shutdownCtx); err != nil {
		logging.Error(shutdownCtx, "error shutting down telemetry", "error", err)
	}
}

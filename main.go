package main

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/danielgtaylor/huma/v2/humacli"

	"github.com/nvoss/lighthald/cmd"
	"github.com/nvoss/lighthald/internal/api"
	"github.com/nvoss/lighthald/internal/board"
	"github.com/nvoss/lighthald/internal/config"
	"github.com/nvoss/lighthald/internal/events"
	"github.com/nvoss/lighthald/internal/hal"
	"github.com/nvoss/lighthald/internal/logging"
	"github.com/nvoss/lighthald/internal/metrics"
	"github.com/nvoss/lighthald/internal/power"
)

// Options for the CLI - flat structure with toml mapping.
type Options struct {
	Config string `help:"Path to configuration file" short:"c" default:"config.toml"`

	// Server settings
	Port string `help:"Port to listen on" short:"p" default:":8090" toml:"server.port" env:"SERVER_PORT"`

	// Auth settings
	AuthUsername string `help:"Basic auth username" default:"admin" toml:"auth.username" env:"AUTH_USERNAME"`
	AuthPassword string `help:"Basic auth password" default:"password" toml:"auth.password" env:"AUTH_PASSWORD"`

	// Charging indicator settings
	IndicatorEnabled    bool   `help:"Drive the battery light from power supply state" default:"false" toml:"indicator.enabled" env:"INDICATOR_ENABLED"`
	IndicatorPolicyFile string `help:"Indicator policy file" default:"indicator.toml" toml:"indicator.policy_file" env:"INDICATOR_POLICY_FILE"`
	PowerSupply         string `help:"Power supply name under /sys/class/power_supply" default:"battery" toml:"indicator.supply" env:"POWER_SUPPLY"`
	PowerPollInterval   string `help:"Power supply poll interval" default:"5s" toml:"indicator.poll_interval" env:"POWER_POLL_INTERVAL"`

	// Logging settings
	LoggingLevel  string `help:"Global logging level (debug, info, warn, error)" default:"info" toml:"logging.level" env:"LOGGING_LEVEL"`
	LoggingFormat string `help:"Logging format (text, json)" default:"text" toml:"logging.format" env:"LOGGING_FORMAT"`
	LoggingHAL    string `help:"HAL logging level" default:"info" toml:"logging.hal" env:"LOGGING_HAL"`
	LoggingAPI    string `help:"API logging level" default:"info" toml:"logging.api" env:"LOGGING_API"`
	LoggingPower  string `help:"Power monitor logging level" default:"info" toml:"logging.power" env:"LOGGING_POWER"`
}

func main() {
	cli := humacli.New(func(hooks humacli.Hooks, opts *Options) {
		if loadErr := config.LoadConfig(opts, nil); loadErr != nil {
			slog.Warn("Failed to load config", "error", loadErr)
		}

		logging.Initialize(logging.Config{
			Level:  opts.LoggingLevel,
			Format: opts.LoggingFormat,
			Modules: map[string]string{
				"hal":   opts.LoggingHAL,
				"api":   opts.LoggingAPI,
				"power": opts.LoggingPower,
			},
		})

		logger := logging.GetLogger("main")

		// Event bus for in-process event handling
		eventBus := events.New()

		// HAL bound to the board's control sink
		halLogger := logging.GetLogger("hal")
		sink := board.NewSink(halLogger)
		controller := hal.New(sink, halLogger)

		// Charging indicator: power supply poller + policy-driven manager
		var powerMonitor *power.Monitor
		var powerManager *power.Manager
		var policyWatcher *config.Watcher[power.Policy]
		if opts.IndicatorEnabled {
			powerLogger := logging.GetLogger("power")

			policy, err := power.LoadPolicy(opts.IndicatorPolicyFile)
			if err != nil {
				powerLogger.Warn("Using default indicator policy", "error", err)
			}
			powerManager = power.NewManager(controller, eventBus, powerLogger, policy)

			interval, err := time.ParseDuration(opts.PowerPollInterval)
			if err != nil {
				interval = 5 * time.Second
			}
			powerMonitor = power.NewMonitor(opts.PowerSupply, interval, eventBus, powerLogger)

			policyWatcher = config.NewConfigWatcher(opts.IndicatorPolicyFile, power.LoadPolicy, powerLogger)
			policyWatcher.OnReload(powerManager.SetPolicy)
		}

		server := api.NewServer(&api.Options{
			AuthUsername:      opts.AuthUsername,
			AuthPassword:      opts.AuthPassword,
			Controller:        controller,
			EventBus:          eventBus,
			PrometheusHandler: metrics.Handler(),
		})

		hooks.OnStart(func() {
			if powerManager != nil {
				if startErr := powerManager.Start(); startErr != nil {
					logger.Error("Failed to start charging indicator", "error", startErr)
					os.Exit(1)
				}
				powerMonitor.Start()
				if watchErr := policyWatcher.Start(); watchErr != nil {
					logger.Warn("Failed to watch indicator policy file", "error", watchErr)
				}
			}

			logger.Info("Starting HTTP server", "port", opts.Port)
			if startErr := server.Start(opts.Port); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
				logger.Error("Failed to start HTTP server", "error", startErr)
				os.Exit(1)
			}
		})

		hooks.OnStop(func() {
			logger.Info("Shutting down server")
			if stopErr := server.Stop(); stopErr != nil {
				logger.Error("Error stopping HTTP server", "error", stopErr)
			}

			if powerManager != nil {
				if stopErr := policyWatcher.Stop(); stopErr != nil {
					logger.Warn("Error stopping policy watcher", "error", stopErr)
				}
				powerMonitor.Stop()
				powerManager.Stop()
			}
		})
	})

	cli.Root().AddCommand(cmd.CreateSetCmd())

	cli.Run()
}

// ScoreLink Core - Scoreboard Accessory Bridge
//
// This is the main entry point for the ScoreLink Core application.
// ScoreLink bridges LAN scoreboard controllers into an accessory
// framework, handling:
//   - Sync-code and literal address resolution
//   - Persistent accessory identity across restarts
//   - Live device state reads and writes over HTTP
//   - Health reporting and state-history telemetry
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/nerrad567/scorelink-core/migrations"

	"github.com/nerrad567/scorelink-core/internal/accessory"
	"github.com/nerrad567/scorelink-core/internal/api"
	"github.com/nerrad567/scorelink-core/internal/bridges/scoreboard"
	"github.com/nerrad567/scorelink-core/internal/infrastructure/config"
	"github.com/nerrad567/scorelink-core/internal/infrastructure/database"
	"github.com/nerrad567/scorelink-core/internal/infrastructure/influxdb"
	"github.com/nerrad567/scorelink-core/internal/infrastructure/logging"
	"github.com/nerrad567/scorelink-core/internal/infrastructure/mqtt"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Cancel on interrupt signals (Ctrl+C, SIGTERM) for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting ScoreLink Core",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open database
	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	// Run migrations
	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	// Initialise accessory registry over the persisted store
	repo := accessory.NewSQLiteRepository(db.DB)
	registry := accessory.NewRegistry(repo)
	registry.SetLogger(log)
	registry.SetNamePrefix(cfg.Accessories.NamePrefix)

	// Connect to InfluxDB for state history (optional)
	var influxClient *influxdb.Client
	var recorder accessory.StateRecorder
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
		recorder = influxClient
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)
	} else {
		log.Info("InfluxDB disabled")
	}

	// Run discovery over the configured tokens
	discoverer, err := accessory.NewDiscoverer(accessory.DiscovererConfig{
		Registry:      registry,
		DevicePort:    cfg.Device.Port,
		DeviceTimeout: cfg.GetDeviceTimeout(),
		Recorder:      recorder,
		Logger:        log,
	})
	if err != nil {
		return fmt.Errorf("creating discoverer: %w", err)
	}

	result := discoverer.Run(ctx, cfg.Accessories.Tokens)
	for _, failure := range result.Failures {
		log.Warn("accessory token rejected", "token", failure.Token, "error", failure.Err)
	}
	log.Info("accessories discovered",
		"count", len(result.Accessories),
		"rejected", len(result.Failures),
	)

	// Connect to MQTT and start health reporting (optional)
	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		lwtPayload, marshalErr := json.Marshal(scoreboard.NewLWTMessage(cfg.MQTT.Broker.ClientID))
		if marshalErr != nil {
			return fmt.Errorf("building LWT payload: %w", marshalErr)
		}

		mqttClient, err = mqtt.Connect(cfg.MQTT, &mqtt.Will{
			Topic:    scoreboard.HealthTopic(),
			Payload:  lwtPayload,
			QoS:      byte(cfg.MQTT.QoS),
			Retained: true,
		})
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)

		reporter := scoreboard.NewHealthReporter(scoreboard.HealthReporterConfig{
			BridgeID:  cfg.MQTT.Broker.ClientID,
			Version:   version,
			Interval:  cfg.GetHealthInterval(),
			Publisher: mqttClient,
		})
		reporter.SetLogger(log)
		reporter.SetAccessoryCount(len(result.Accessories))
		if pubErr := reporter.PublishStarting(); pubErr != nil {
			log.Warn("failed to publish starting status", "error", pubErr)
		}
		reporter.Start(ctx)
		defer func() {
			log.Info("stopping health reporter")
			reporter.Stop()
		}()
	} else {
		log.Info("MQTT disabled")
	}

	// Start the local status API (optional)
	if cfg.API.Enabled {
		apiServer, apiErr := api.New(api.Deps{
			Config:      cfg.API,
			Logger:      log,
			Registry:    registry,
			Accessories: result.Accessories,
			MQTT:        mqttClient,
			Version:     version,
		})
		if apiErr != nil {
			return fmt.Errorf("creating API server: %w", apiErr)
		}
		if startErr := apiServer.Start(ctx); startErr != nil {
			return fmt.Errorf("starting API server: %w", startErr)
		}
		defer func() {
			if closeErr := apiServer.Close(); closeErr != nil {
				log.Error("error closing API server", "error", closeErr)
			}
		}()
		log.Info("API server started", "host", cfg.API.Host, "port", cfg.API.Port)
	} else {
		log.Info("API server disabled")
	}

	// Verify all connections are healthy
	if err := healthCheck(ctx, db, mqttClient, influxClient); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	log.Info("initialisation complete, waiting for shutdown signal")

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred Close() calls run in reverse order:
	// 1. API server (if enabled)
	// 2. Health reporter and MQTT (if enabled)
	// 3. InfluxDB (if enabled)
	// 4. Database

	log.Info("ScoreLink Core stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses SCORELINK_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("SCORELINK_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// healthCheck verifies all infrastructure connections are healthy.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - db: Database connection to check
//   - mqttClient: MQTT client to check (may be nil if disabled)
//   - influxClient: InfluxDB client to check (may be nil if disabled)
//
// Returns:
//   - error: First health check failure, or nil if all healthy
func healthCheck(ctx context.Context, db *database.DB, mqttClient *mqtt.Client, influxClient *influxdb.Client) error {
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if mqttClient != nil {
		if err := mqttClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("mqtt: %w", err)
		}
	}

	if influxClient != nil {
		if err := influxClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("influxdb: %w", err)
		}
	}

	return nil
}

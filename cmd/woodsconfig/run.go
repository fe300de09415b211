package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nerrad567/woods-config/internal/history"
	"github.com/nerrad567/woods-config/internal/infrastructure/config"
	"github.com/nerrad567/woods-config/internal/infrastructure/database"
	"github.com/nerrad567/woods-config/internal/infrastructure/influxdb"
	"github.com/nerrad567/woods-config/internal/infrastructure/logging"
	"github.com/nerrad567/woods-config/internal/infrastructure/mqtt"
	"github.com/nerrad567/woods-config/internal/loader"
	"github.com/nerrad567/woods-config/internal/sink"
	"github.com/nerrad567/woods-config/migrations"
)

// historyKeep bounds the number of stored load runs.
const historyKeep = 500

func newRunCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Load configuration and publish the outcome to every enabled sink",
		Long: `run performs a load pass at startup and forwards its report to every
enabled sink (history database, MQTT, InfluxDB). It then stays connected
until SIGINT or SIGTERM. A message on woods/config/request triggers a
pass over the cached data and republishes the outcome; data files are
read once per process.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			return run(cmd.Context(), cfg, newLogger(cfg, cmd.ErrOrStderr()))
		},
	}
}

// run is the daemon logic, separated from the command for testability.
//
// Parameters:
//   - ctx: Cancelled on shutdown signals
//   - cfg: Resolved configuration
//   - log: Service logger
//
// Returns:
//   - error: nil on clean shutdown, or error describing a startup failure
func run(ctx context.Context, cfg *config.Config, log *logging.Logger) error {
	log.Info("starting Woods Config",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	p, err := newPipeline(cfg, log)
	if err != nil {
		return err
	}

	requests := make(chan struct{}, 1)
	request := func() {
		select {
		case requests <- struct{}{}:
		default:
			// A pass is already pending.
		}
	}

	closers, err := attachSinks(ctx, cfg, p, log, request)
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}()
	if err != nil {
		return err
	}

	p.LoadConfigs(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Info("shutting down")
			return nil
		case <-requests:
			log.Info("status requested")
			p.LoadConfigs(ctx)
		}
	}
}

// attachSinks connects every enabled sink and registers it with p. The
// returned closers are valid even when err is non-nil and must be run in
// reverse order. onRequest is called for each MQTT status request.
func attachSinks(ctx context.Context, cfg *config.Config, p *loader.Pipeline, log *logging.Logger, onRequest func()) ([]func(), error) {
	var closers []func()

	if cfg.Database.Enabled {
		db, err := database.Open(cfg.Database)
		if err != nil {
			return closers, fmt.Errorf("opening database: %w", err)
		}
		closers = append(closers, func() {
			log.Info("closing database")
			if closeErr := db.Close(); closeErr != nil {
				log.Error("error closing database", "error", closeErr)
			}
		})
		log.Info("database connected", "path", db.Path())

		applied, err := db.Migrate(ctx, migrations.FS)
		if err != nil {
			return closers, fmt.Errorf("running migrations: %w", err)
		}
		log.Info("database migrations complete", "applied", applied)

		p.AddReporter(sink.NewHistory(history.NewSQLiteRepository(db.DB), historyKeep))
	} else {
		log.Info("load history disabled")
	}

	if cfg.MQTT.Enabled {
		client, err := mqtt.Connect(cfg.MQTT)
		if err != nil {
			return closers, fmt.Errorf("connecting to MQTT: %w", err)
		}
		closers = append(closers, func() {
			log.Info("disconnecting from MQTT")
			if closeErr := client.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		})
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)

		client.SetLogger(log.Subsystem("mqtt"))
		client.SetOnConnect(func() { log.Info("MQTT reconnected") })
		client.SetOnDisconnect(func(err error) { log.Warn("MQTT disconnected", "error", err) })

		err = client.Subscribe(mqtt.Topics{}.Request(), byte(cfg.MQTT.QoS), func(_ string, _ []byte) error { //nolint:gosec // qos validated by config
			onRequest()
			return nil
		})
		if err != nil {
			return closers, fmt.Errorf("subscribing to status requests: %w", err)
		}

		p.AddReporter(sink.NewMQTT(client))
	} else {
		log.Info("MQTT disabled")
	}

	if cfg.InfluxDB.Enabled {
		client, err := influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return closers, fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		closers = append(closers, func() {
			log.Info("closing InfluxDB connection")
			if closeErr := client.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		})
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)

		client.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
		p.AddReporter(sink.NewInflux(client))
	} else {
		log.Info("InfluxDB disabled")
	}

	return closers, nil
}

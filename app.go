package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/opencog/cogexp/cogserver"
	"github.com/opencog/cogexp/config"
	"github.com/opencog/cogexp/server"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "cogexp",
		Usage: "Run attention allocation experiments on an OpenCog CogServer",
		Description: `cogexp drives a CogServer through its REST API, captures the short term importance of its atoms
over time and exports the resulting time series to CSV files or Elasticsearch.

Settings are read from an optional YAML file and from COGEXP_* environment variables, eg. COGEXP_REST_PORT.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "YAML configuration file",
				Sources: cli.EnvVars("COGEXP_CONFIG"),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level (debug, info, warn, error), overrides the configuration",
			},
		},
		Commands: []*cli.Command{
			shellCmd(),
			recordCmd(),
		},
	}
}

// loads the configuration and builds the root logger from the global flags
func setup(cmd *cli.Command) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	if level := cmd.String("log-level"); level != "" {
		cfg.LogLevel = level
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Logger()
	return cfg, logger, nil
}

func shellCmd() *cli.Command {
	return &cli.Command{
		Name:  "shell",
		Usage: "Serve the interactive experiment shell",
		Description: `Listens for TCP connections, each one being an independent session. Connect with eg.

  nc localhost 8234

and type 'help' to see the available commands.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "listen",
				Usage: "address to listen on, overrides the configuration",
			},
			&cli.StringFlag{
				Name:  "metrics-listen",
				Usage: "address to serve Prometheus metrics on, disabled if empty",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			if cmd.IsSet("listen") {
				cfg.Listen = cmd.String("listen")
			}
			if cmd.IsSet("metrics-listen") {
				cfg.MetricsListen = cmd.String("metrics-listen")
			}
			if cfg.MetricsListen != "" {
				go serveMetrics(ctx, cfg.MetricsListen, logger)
			}
			return server.ListenAndServe(ctx, *cfg, logger)
		},
	}
}

func serveMetrics(ctx context.Context, addr string, logger zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	stop := context.AfterFunc(ctx, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	})
	defer stop()
	logger.Info().Str("addr", addr).Msg("serving metrics")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error().Err(err).Msg("metrics server failed")
	}
}

func recordCmd() *cli.Command {
	return &cli.Command{
		Name:  "record",
		Usage: "Capture a time series by stepping an agent, then export it",
		Description: `Takes --steps snapshots of the atomspace (or of the attentional focus with --af), running one step
of --agent between two snapshots. The series is then written to a CSV file and/or Elasticsearch.

  cogexp record --start --steps 50 --af --csv sti.csv --store`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:     "steps",
				Usage:    "number of snapshots to take",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "agent",
				Usage: "C++ agent to step between snapshots",
				Value: cogserver.ImportanceDiffusionAgent,
			},
			&cli.BoolFlag{
				Name:  "af",
				Usage: "capture only the attentional focus",
			},
			&cli.BoolFlag{
				Name:  "scheme",
				Usage: "capture the scheme dump with every snapshot",
			},
			&cli.StringFlag{
				Name:  "csv",
				Usage: "write the series to this CSV file",
			},
			&cli.BoolFlag{
				Name:  "compat",
				Usage: "omit the scheme column in CSV rows of points without scheme dump, end rows with CRLF",
			},
			&cli.BoolFlag{
				Name:  "store",
				Usage: "replace the Elasticsearch collection with the series",
			},
			&cli.BoolFlag{
				Name:  "append",
				Usage: "with --store, add to the collection instead of replacing it",
			},
			&cli.BoolFlag{
				Name:  "start",
				Usage: "start the cogserver before recording and stop it afterwards",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			r := recording{
				Steps:  cmd.Int("steps"),
				Agent:  cmd.String("agent"),
				Focus:  cmd.Bool("af"),
				Scheme: cmd.Bool("scheme"),
				CSV:    cmd.String("csv"),
				Compat: cmd.Bool("compat"),
				Store:  cmd.Bool("store"),
				Append: cmd.Bool("append"),
				Start:  cmd.Bool("start"),
			}
			series, err := record(ctx, *cfg, r, logger)
			if series != nil {
				summarize(cmd.Root().Writer, series)
			}
			return err
		},
	}
}

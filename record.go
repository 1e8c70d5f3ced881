package main

import (
	"context"
	"fmt"
	stdio "io"

	"github.com/opencog/cogexp/cogserver"
	"github.com/opencog/cogexp/config"
	"github.com/opencog/cogexp/es"
	"github.com/opencog/cogexp/export"
	"github.com/opencog/cogexp/process"
	"github.com/opencog/cogexp/server/api/io"
	"github.com/opencog/cogexp/server/strcoll"
	"github.com/opencog/cogexp/timeseries"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// recording describes a scripted experiment
type recording struct {
	Steps  int
	Agent  string
	Focus  bool
	Scheme bool
	CSV    string
	Compat bool
	Store  bool
	Append bool
	Start  bool
}

// record takes r.Steps snapshots with one agent step in between, then exports them.
// The series captured so far is returned along with any error.
func record(ctx context.Context, cfg config.Config, r recording, logger zerolog.Logger) (*timeseries.Series, error) {
	if r.Steps <= 0 {
		return nil, fmt.Errorf("invalid number of steps %d", r.Steps)
	}
	var store *es.Store
	if r.Store {
		var err error
		if store, err = es.NewStore(cfg.ElasticURL, cfg.ElasticUsername, cfg.ElasticPassword, cfg.Database,
			cfg.Collection); err != nil {
			return nil, err
		}
	}

	client := cogserver.New(cfg.RestURL(),
		cogserver.WithTimeout(cfg.HTTPTimeout),
		cogserver.WithLogger(logger.With().Str("component", "rest").Logger()))
	if r.Start {
		cog := process.NewCogServer(cfg, client, logger.With().Str("component", "cogserver").Logger())
		if err := cog.Start(ctx); err != nil {
			return nil, err
		}
		defer func() {
			if err := cog.Stop(context.Background()); err != nil {
				logger.Warn().Err(err).Msg("stopping cogserver")
			}
		}()
	}

	filter := cogserver.All
	if r.Focus {
		filter = cogserver.AttentionalFocus
	}
	series := &timeseries.Series{}
	for i := 0; i < r.Steps; i++ {
		if i > 0 {
			if err := client.StepAgent(ctx, r.Agent); err != nil {
				return series, errors.Wrapf(err, "stepping %s", r.Agent)
			}
		}
		p, err := client.Snapshot(ctx, filter, series.NextTimestep(), r.Scheme)
		if err == nil {
			err = series.Append(p)
		}
		if err != nil {
			return series, err
		}
		logger.Info().Int64("timestep", p.Timestep).Int("atoms", len(p.Atoms)).Msg("snapshot")
	}

	points := series.Points()
	if r.CSV != "" {
		opts := export.CSVOptions{IncludeScheme: r.Scheme, Layout: export.FixedWidth}
		if r.Compat {
			opts.Layout = export.VariableWidth
		}
		n, err := export.ExportCSV(io.DiskWriter{}, r.CSV, points, opts)
		if err != nil {
			return series, err
		}
		logger.Info().Str("file", r.CSV).Int("bytes", n).Msg("exported")
	}
	if store != nil {
		var err error
		if r.Append {
			err = store.Append(ctx, points)
		} else {
			err = store.ReplaceAll(ctx, points)
		}
		if err != nil {
			return series, err
		}
		logger.Info().Str("store", store.String()).Int("points", len(points)).Msg("exported")
	}
	return series, nil
}

func summarize(w stdio.Writer, series *timeseries.Series) {
	ts := strcoll.NewTuples()
	ts.Add("points", series.Len())
	ts.Add("atoms", series.AtomCount())
	if last, ok := series.Last(); ok {
		ts.Add("last timestep", last.Timestep)
	}
	fmt.Fprintln(w, ts.Format(16))
}

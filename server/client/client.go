package client

import (
	"context"
	"fmt"
	stdio "io"
	"os"
	"strconv"
	s "strings"
	"time"

	"github.com/opencog/cogexp/cogserver"
	"github.com/opencog/cogexp/config"
	"github.com/opencog/cogexp/es"
	"github.com/opencog/cogexp/export"
	"github.com/opencog/cogexp/process"
	"github.com/opencog/cogexp/server/api"
	"github.com/opencog/cogexp/server/api/io"
	"github.com/opencog/cogexp/server/strcoll"
	"github.com/opencog/cogexp/timeseries"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// words that can't be used as names in `define`
var reservedWords = []string{
	"agent", "clear", "cogserver", "define", "diff", "diffuse", "dot", "dump", "exit", "export", "forget", "hebbian",
	"help", "import", "load", "logic", "quit", "relex", "scheme", "series", "set", "shell", "snapshot", "status",
	"step", "store", "update",
}

type evalEnvironment struct {
	cfg    config.Config
	usr    string
	logger zerolog.Logger
	// where name definitions and exports are written to
	fw io.FileWriter

	client *cogserver.Client
	cog    *process.CogServer
	relex  *process.RelEx
	// nil when it couldn't be configured, see storeErr
	store    *es.Store
	storeErr error

	// points captured in this session
	series   *timeseries.Series
	nameDefs map[string][]string
}

// NewEvalEnvironment loads the name definitions of `usr` and prepares, without connecting to anything, the
// CogServer client and process manager, the RelEx manager and the Elasticsearch store described by `cfg`.
// The evaluation environment models everything that impacts the evaluation of user's commands, other than the
// commands themselves.
// Notifications that don't follow a command, like an unexpected exit of the CogServer, are written to `w`.
func NewEvalEnvironment(cfg config.Config, usr string, w stdio.Writer, logger zerolog.Logger) *evalEnvironment {
	client := cogserver.New(cfg.RestURL(),
		cogserver.WithTimeout(cfg.HTTPTimeout),
		cogserver.WithLogger(logger.With().Str("component", "rest").Logger()))
	env := &evalEnvironment{
		cfg:      cfg,
		usr:      usr,
		logger:   logger,
		fw:       io.DiskWriter{},
		client:   client,
		cog:      process.NewCogServer(cfg, client, logger.With().Str("component", "cogserver").Logger()),
		relex:    process.NewRelEx(cfg, logger.With().Str("component", "relex").Logger()),
		series:   &timeseries.Series{},
		nameDefs: io.LoadDefs(usr),
	}
	env.cog.OnExit = func(err error) {
		io.Reply(w, "\n")
		io.ReplyEitherNL(w, errors.Wrap(err, "cogserver exited"), io.Yellow+"cogserver exited")
		io.Reply(w, api.Tail(env.cog.Log(), 5, ""))
		io.Prompt(w)
	}
	env.store, env.storeErr = es.NewStore(cfg.ElasticURL, cfg.ElasticUsername, cfg.ElasticPassword, cfg.Database,
		cfg.Collection)
	return env
}

// Eval evaluates a single command and returns what to reply.
// Commands run one at a time, and a valid command might modify the environment state.
func (env *evalEnvironment) Eval(ctx context.Context, cmd []string) string {
	start := time.Now()
	var err error
	out := "ok"

	fn := strcoll.Nth(0, cmd)
	arg1 := strcoll.Nth(1, cmd)
	arg2 := strcoll.Nth(2, cmd)
	args1 := strcoll.Rest(1, cmd)
	args2 := strcoll.Rest(2, cmd)

	switch {
	case fn == "help":
		return api.Help()

	case fn == "status":
		return api.Status(ctx, env).String()

	case fn == "define" && len(args1) <= 1:
		return api.NameDefinitions(env.Names(), arg1)

	case fn == "define":
		out, env.nameDefs = api.Define(env.usr, env.fw, reservedWords, args1, env.Names())

	case fn == "cogserver" && arg1 == "start":
		if err = env.cog.Start(ctx); err == nil {
			out = fmt.Sprintf("cogserver running, REST API at %s", env.client.Url())
		}

	case fn == "cogserver" && arg1 == "stop":
		if err = env.cog.Stop(ctx); err == nil {
			out = "cogserver stopped"
		}

	case fn == "cogserver" && arg1 == "log":
		args, n := io.ParseCmdIntOption(args2, "-n", 10)
		return api.Tail(env.cog.Log(), n, strcoll.Nth(0, args))

	case fn == "relex" && arg1 == "start":
		if err = env.relex.Start(ctx); err == nil {
			out = "relex started"
		}

	case fn == "relex" && arg1 == "stop":
		if err = env.relex.Stop(ctx); err == nil {
			out = "relex stopped"
		}

	case fn == "relex" && arg1 == "parse":
		args, full := io.ParseCmdBoolOption(args2, "--full")
		if len(args) == 0 {
			err = errors.New("a sentence is required")
			break
		}
		out, err = env.relex.Parse(ctx, s.Join(args, " "), !full)

	case fn == "logic":
		args, keep := io.ParseCmdBoolOption(args1, "--keep")
		if len(args) == 0 {
			err = errors.New("a sentence is required")
			break
		}
		out, err = env.client.ToLogic(ctx, s.Join(args, " "), !keep)

	case fn == "scheme":
		out, err = env.client.Scheme(ctx, s.Join(args1, " "))

	case fn == "shell":
		err = env.client.Shell(ctx, s.Join(args1, " "))

	case fn == "load":
		if len(args1) == 0 {
			err = errors.New("at least one file is required")
			break
		}
		err = env.client.LoadSchemeFiles(ctx, env.cfg.SourceFolder, args1...)

	case fn == "step":
		args, path := io.ParseCmdStringOption(args1, "--py", "")
		agent := strcoll.Nth(0, args)
		if agent == "" {
			err = errors.New("an agent is required")
		} else if path != "" {
			err = env.client.StepPythonAgent(ctx, path, agent)
		} else {
			err = env.client.StepAgent(ctx, agent)
		}

	case fn == "agent" && arg1 == "load" && arg2 != "":
		err = env.client.LoadPythonAgent(ctx, arg2)

	case fn == "agent" && arg1 == "start" && strcoll.Nth(3, cmd) != "":
		err = env.client.StartPythonAgent(ctx, arg2, strcoll.Nth(3, cmd))

	case fn == "agent" && arg1 == "stop-loop":
		err = env.client.StopAgentLoop(ctx)

	case fn == "diffuse":
		err = env.client.ImportanceDiffusion(ctx)

	case fn == "update":
		err = env.client.ImportanceUpdating(ctx)

	case fn == "hebbian":
		err = env.client.HebbianUpdating(ctx)

	case fn == "forget":
		err = env.client.Forgetting(ctx)

	case fn == "set":
		err = env.set(ctx, arg1, arg2)

	case fn == "clear":
		err = env.client.ClearAtomspace(ctx)

	case fn == "snapshot":
		out, err = env.snapshot(ctx, args1)

	case fn == "series" && arg1 == "reset":
		env.series.Reset()

	case fn == "series":
		return api.SeriesSummary(env.series)

	case fn == "dump":
		return s.TrimSuffix(api.Dump(env.series, arg1), "\n") + "\n"

	case fn == "diff":
		return api.Diff(env.series, arg1, arg2)

	case fn == "dot":
		out, err = env.client.DumpDot(ctx)

	case fn == "export" && arg1 == "csv":
		out, err = env.exportCSV(args2)

	case fn == "export" && arg1 == "store":
		out, err = env.exportStore(ctx, args2)

	case fn == "store" && arg1 == "list":
		if err = env.storeErr; err != nil {
			break
		}
		var points []timeseries.Point
		if points, err = env.store.Fetch(ctx); err == nil {
			return api.ListPoints(points)
		}

	case fn == "import" && arg1 == "csv":
		out, err = env.importCSV(arg2)

	default:
		err = errors.New(fmt.Sprintf("nothing done for %s", s.Join(cmd, " ")))
	}

	env.logger.Debug().Strs("cmd", cmd).Dur("took", time.Since(start)).Err(err).Msg("evaluated")
	w := io.NewBufferWriter()
	io.ReplyEitherNL(w, err, io.Grey+out)
	return w.String()
}

func (env *evalEnvironment) set(ctx context.Context, param, arg string) error {
	v, err := io.ParseFloat(arg)
	if err != nil {
		return err
	}
	switch param {
	case "af-boundary":
		return env.client.SetAFBoundary(ctx, v)
	case "diffusion":
		return env.client.SetDiffusionPercent(ctx, v)
	case "stimulus":
		return env.client.SetStimulusAmount(ctx, v)
	case "rent":
		return env.client.SetRent(ctx, v)
	case "wages":
		return env.client.SetWages(ctx, v)
	}
	return fmt.Errorf("unknown parameter %q", param)
}

// captures a point and appends it to the series
// `args` might look like {"atomspace", "--scheme", "-t", "10"}
func (env *evalEnvironment) snapshot(ctx context.Context, args []string) (string, error) {
	args, withScheme := io.ParseCmdBoolOption(args, "--scheme")
	args, t := io.ParseCmdStringOption(args, "-t", "")
	filter := cogserver.AttentionalFocus
	switch what := strcoll.Nth(0, args); what {
	case "", "af":
	case "atomspace":
		filter = cogserver.All
	default:
		return "", fmt.Errorf("can't take a snapshot of %s", what)
	}
	timestep := env.series.NextTimestep()
	if t != "" {
		var err error
		if timestep, err = strconv.ParseInt(t, 10, 64); err != nil {
			return "", fmt.Errorf("%s is not a timestep", t)
		}
	}
	p, err := env.client.Snapshot(ctx, filter, timestep, withScheme)
	if err == nil {
		err = env.series.Append(p)
	}
	if err != nil {
		return "", err
	}
	return s.TrimSuffix(api.ListPoints([]timeseries.Point{p}), "\n"), nil
}

// `args` might look like {"out.csv", "--scheme", "--compat"}
func (env *evalEnvironment) exportCSV(args []string) (string, error) {
	args, withScheme := io.ParseCmdBoolOption(args, "--scheme")
	args, compat := io.ParseCmdBoolOption(args, "--compat")
	file := strcoll.Nth(0, args)
	if file == "" {
		return "", errors.New("a file name is required")
	}
	opts := export.CSVOptions{IncludeScheme: withScheme, Layout: export.FixedWidth}
	if compat {
		opts.Layout = export.VariableWidth
	}
	n, err := export.ExportCSV(env.fw, file, env.series.Points(), opts)
	return fmt.Sprintf("%s written to %s", io.ByteCountDecimal(int64(n)), file), err
}

func (env *evalEnvironment) exportStore(ctx context.Context, args []string) (string, error) {
	if env.storeErr != nil {
		return "", env.storeErr
	}
	_, appendOnly := io.ParseCmdBoolOption(args, "--append")
	points := env.series.Points()
	var err error
	if appendOnly {
		err = env.store.Append(ctx, points)
	} else {
		err = env.store.ReplaceAll(ctx, points)
	}
	return printer.Sprintf("%d points saved to %s", len(points), env.store), err
}

func (env *evalEnvironment) importCSV(file string) (string, error) {
	if file == "" {
		return "", errors.New("a file name is required")
	}
	f, err := os.Open(file)
	if err != nil {
		return "", err
	}
	defer f.Close()
	series, err := export.ReadCSV(f)
	if err != nil {
		return "", errors.Wrapf(err, "reading %s", file)
	}
	env.series = series
	return printer.Sprintf("%d points read from %s", series.Len(), file), nil
}

// Close stops the CogServer if it was started in this session.
func (env *evalEnvironment) Close(ctx context.Context) error {
	if !env.cog.IsRunning() {
		return nil
	}
	return env.cog.Stop(ctx)
}

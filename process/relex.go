package process

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/opencog/cogexp/config"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// ErrVagrantOnly is returned by RelEx when it doesn't run inside a Vagrant VM.
var ErrVagrantOnly = errors.New("relex is currently only implemented for vagrant")

// DefaultParseCmd runs the RelEx command line tool, %s is replaced by the sentence.
const DefaultParseCmd = `cd /home/vagrant/relex && ./relex.sh 1 "" "%s"`

// RelEx manages the RelEx server, which parses English sentences for the CogServer.
type RelEx struct {
	Runner    Runner
	StartCmd  string
	StopCmd   string
	ParseCmd  string
	InitDelay time.Duration
	Logger    zerolog.Logger

	mu  sync.Mutex
	cmd *exec.Cmd
}

func NewRelEx(cfg config.Config, logger zerolog.Logger) *RelEx {
	return &RelEx{
		Runner:    RelExRunner(cfg),
		StartCmd:  cfg.RelexStart,
		StopCmd:   cfg.RelexStop,
		ParseCmd:  DefaultParseCmd,
		InitDelay: cfg.InitDelay,
		Logger:    logger,
	}
}

// Start stops any running RelEx server and launches a new one in the background.
func (r *RelEx) Start(ctx context.Context) error {
	if err := r.Stop(ctx); err != nil {
		return err
	}
	cmd := r.Runner.Command(context.Background(), r.StartCmd)
	ownProcessGroup(cmd)
	if err := cmd.Start(); err != nil {
		return errors.Wrapf(err, "starting %s", r.StartCmd)
	}
	r.mu.Lock()
	r.cmd = cmd
	r.mu.Unlock()
	go cmd.Wait()
	r.Logger.Info().Str("cmd", r.StartCmd).Msg("relex started")
	return sleep(ctx, r.InitDelay)
}

// Stop runs the stop command and drops the session opened by Start, if any.
func (r *RelEx) Stop(ctx context.Context) error {
	if !r.Runner.Remote() {
		return ErrVagrantOnly
	}
	if err := runIgnoringNoMatch(ctx, r.Runner, r.StopCmd); err != nil {
		return errors.Wrap(err, "stopping relex")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cmd != nil {
		kill(r.cmd)
		r.cmd = nil
	}
	return nil
}

// Parse returns the RelEx parse of `sentence`. With `concise`, status messages around the parse are stripped.
func (r *RelEx) Parse(ctx context.Context, sentence string, concise bool) (string, error) {
	if !r.Runner.Remote() {
		return "", ErrVagrantOnly
	}
	out, err := Run(ctx, r.Runner, fmt.Sprintf(r.ParseCmd, strings.ReplaceAll(sentence, `"`, `\"`)))
	if err != nil || !concise {
		return out, err
	}
	return Concise(out)
}

// Concise keeps the text between the "Parse 1 of 1" header and the last "======" separator.
func Concise(out string) (string, error) {
	const header = "Parse 1 of 1"
	idx := strings.Index(out, header)
	if idx < 0 {
		return "", errors.New("unexpected relex output: no parse found")
	}
	out = out[idx+len(header):]
	end := strings.LastIndex(out, "======")
	if end < 0 {
		return "", nil
	}
	return strings.TrimSpace(out[:end]), nil
}

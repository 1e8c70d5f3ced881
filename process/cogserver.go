package process

import (
	"bufio"
	"context"
	"fmt"
	stdio "io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/opencog/cogexp/cogserver"
	"github.com/opencog/cogexp/config"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// lines of stderr kept in memory
const logSize = 1000

// CogServer manages a CogServer process and its REST API.
type CogServer struct {
	Runner Runner
	// command lines to start and stop the server
	StartCmd string
	StopCmd  string
	// address of the line-oriented shell and the command that starts the REST API on it
	ShellAddr    string
	ShellPort    int
	RestAPIStart string
	InitDelay    time.Duration
	// REST client, used to wait for the API and to shut down remote servers
	Client *cogserver.Client
	// called when a process started by Start exits on its own
	OnExit func(err error)
	Logger zerolog.Logger

	mu       sync.RWMutex // guards the fields below
	cmd      *exec.Cmd
	done     chan struct{}
	stopping bool
	log      []string
}

// NewCogServer returns a manager for the CogServer described by `cfg`.
func NewCogServer(cfg config.Config, client *cogserver.Client, logger zerolog.Logger) *CogServer {
	return &CogServer{
		Runner:       CogServerRunner(cfg),
		StartCmd:     cfg.CogServerStart,
		StopCmd:      cfg.CogServerStop,
		ShellAddr:    cfg.ShellAddr(),
		ShellPort:    cfg.ShellPort,
		RestAPIStart: cfg.RestAPIStart,
		InitDelay:    cfg.InitDelay,
		Client:       client,
		Logger:       logger,
	}
}

// Start stops any running instance, launches a new one and starts its REST API.
// It returns once the REST API answers, or with an error if it doesn't within a reasonable time.
func (s *CogServer) Start(ctx context.Context) error {
	if err := s.Stop(ctx); err != nil {
		return err
	}

	cmd := s.Runner.Command(context.Background(), s.StartCmd)
	ownProcessGroup(cmd)
	stderr, err := cmd.StderrPipe()
	if err == nil {
		err = cmd.Start()
	}
	if err != nil {
		return errors.Wrapf(err, "starting %s", s.StartCmd)
	}
	s.Logger.Info().Int("pid", cmd.Process.Pid).Str("cmd", s.StartCmd).Msg("cogserver started")

	done := make(chan struct{})
	s.mu.Lock()
	s.cmd, s.done, s.stopping, s.log = cmd, done, false, make([]string, 0)
	s.mu.Unlock()

	scanned := make(chan struct{})
	go s.consume(stderr, scanned)
	go s.wait(cmd, scanned, done)

	if s.Runner.Remote() {
		// the shell port is not necessarily forwarded to this host
		if err = sleep(ctx, s.InitDelay); err == nil {
			_, err = Run(ctx, s.Runner, fmt.Sprintf(`echo "%s" | nc localhost %d`, s.RestAPIStart, s.ShellPort))
		}
	} else {
		err = s.poll(ctx, func(ctx context.Context) error {
			return s.exited(SendLine(ctx, s.ShellAddr, s.RestAPIStart))
		})
	}
	if err == nil {
		err = s.poll(ctx, func(ctx context.Context) error {
			return s.exited(s.Client.Ping(ctx))
		})
	}
	if err != nil {
		s.mu.Lock()
		s.stopping = true
		s.mu.Unlock()
		kill(cmd)
		<-done
		return errors.Wrap(err, "waiting for the cogserver")
	}
	return nil
}

// consumes stderr as soon as it is produced, keeping the last lines
// scanned is closed once stderr reaches EOF
func (s *CogServer) consume(stderr stdio.Reader, scanned chan struct{}) {
	defer close(scanned)
	scanner := bufio.NewScanner(stderr)
	for scanner.Scan() {
		s.mu.Lock()
		if len(s.log) >= logSize {
			// rotate log
			s.log = s.log[:copy(s.log, append(s.log[1:], scanner.Text()))]
		} else {
			s.log = append(s.log, scanner.Text())
		}
		s.mu.Unlock()
	}
	// a line too long stops the scanner, the rest must still be drained for the process to exit
	stdio.Copy(stdio.Discard, stderr)
}

// Wait closes the stderr pipe, so it must not be called before all of it has been read
func (s *CogServer) wait(cmd *exec.Cmd, scanned, done chan struct{}) {
	<-scanned
	err := cmd.Wait()
	s.mu.RLock()
	stopping := s.stopping
	s.mu.RUnlock()
	close(done)
	if stopping {
		return
	}
	s.Logger.Warn().Err(err).Msg("cogserver exited")
	if s.OnExit != nil {
		s.OnExit(err)
	}
}

// exited makes retrying pointless when the process is gone
func (s *CogServer) exited(err error) error {
	if err != nil && !s.IsRunning() {
		return backoff.Permanent(errors.New("cogserver exited:\n" + strings.Join(s.Tail(5), "\n")))
	}
	return err
}

func (s *CogServer) poll(ctx context.Context, op func(context.Context) error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.InitDelay / 10
	if b.InitialInterval <= 0 {
		b.InitialInterval = 10 * time.Millisecond
	}
	b.MaxElapsedTime = 10 * s.InitDelay
	if b.MaxElapsedTime < time.Second {
		b.MaxElapsedTime = time.Second
	}
	return backoff.Retry(func() error {
		err := op(ctx)
		if err != nil {
			s.Logger.Debug().Err(err).Msg("cogserver not ready")
		}
		return err
	}, backoff.WithContext(b, ctx))
}

// Stop terminates the CogServer.
// With Vagrant it sends `shutdown` to the server, ignoring connection errors since there might be nothing running.
// Locally, it kills the process started by Start, or runs the stop command if there is none.
func (s *CogServer) Stop(ctx context.Context) error {
	s.mu.Lock()
	cmd, done := s.cmd, s.done
	s.stopping = true
	s.mu.Unlock()

	var err error
	if s.Runner.Remote() {
		err = s.Client.Shell(ctx, "shutdown")
		var status *cogserver.StatusError
		if err != nil && !errors.As(err, &status) {
			err = nil
		}
	} else if cmd == nil {
		err = runIgnoringNoMatch(ctx, s.Runner, s.StopCmd)
	}
	if err != nil {
		return errors.Wrap(err, "stopping the cogserver")
	}

	if cmd != nil && s.IsRunning() {
		if s.Runner.Remote() {
			// give the server a chance to shut down before dropping the ssh session
			select {
			case <-done:
			case <-time.After(s.InitDelay):
			}
		}
		if s.IsRunning() {
			kill(cmd)
		}
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
		s.Logger.Info().Msg("cogserver stopped")
	} else if err = sleep(ctx, s.InitDelay); err != nil {
		return err
	}

	s.mu.Lock()
	s.cmd, s.done = nil, nil
	s.mu.Unlock()
	return nil
}

// IsRunning is true while a process started by Start hasn't exited.
func (s *CogServer) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.done == nil {
		return false
	}
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}

// Pid returns the pid of the process started by Start, or 0.
func (s *CogServer) Pid() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cmd == nil || s.cmd.Process == nil {
		return 0
	}
	return s.cmd.Process.Pid
}

// Log returns the last lines written to stderr by the process, oldest first.
func (s *CogServer) Log() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.log...)
}

// Tail returns up to the last `n` lines of Log.
func (s *CogServer) Tail(n int) []string {
	log := s.Log()
	if n < len(log) {
		return log[len(log)-n:]
	}
	return log
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

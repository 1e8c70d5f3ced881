package server

import (
	"bufio"
	"context"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/opencog/cogexp/config"
	"github.com/opencog/cogexp/server/api/io"
	"github.com/opencog/cogexp/server/client"
	"github.com/opencog/cogexp/server/strcoll"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/net/netutil"
)

// time given to a session to stop its cogserver once the connection is gone
const closeTimeout = 10 * time.Second

// ListenAndServe listens on cfg.Listen and serves sessions until ctx is done.
func ListenAndServe(ctx context.Context, cfg config.Config, logger zerolog.Logger) error {
	l, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		return errors.Wrapf(err, "listening on %s", cfg.Listen)
	}
	logger.Info().Str("addr", l.Addr().String()).Int("max_connections", cfg.MaxConnections).Msg("experiment shell listening")
	return Serve(ctx, cfg, l, logger)
}

// Serve accepts connections on `l`, up to cfg.MaxConnections at a time, each one being a session.
// It returns when ctx is done and every session has ended, or when `l` fails.
func Serve(ctx context.Context, cfg config.Config, l net.Listener, logger zerolog.Logger) error {
	if cfg.MaxConnections > 0 {
		l = netutil.LimitListener(l, cfg.MaxConnections)
	}
	stop := context.AfterFunc(ctx, func() { l.Close() })
	defer stop()

	var wg sync.WaitGroup
	defer wg.Wait()
	for {
		conn, err := l.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return errors.Wrap(err, "accepting connections")
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			serveConn(ctx, cfg, conn, logger)
		}()
	}
}

// reads commands from the connection, evaluates them and writes back the results, until the user quits or the
// connection is closed
func serveConn(ctx context.Context, cfg config.Config, conn net.Conn, logger zerolog.Logger) {
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	usr := resolveUsr(conn)
	logger = logger.With().Str("session", uuid.NewString()).Str("usr", usr).Logger()
	logger.Info().Msg("session started")

	env := client.NewEvalEnvironment(cfg, usr, conn, logger)
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
		defer cancel()
		if err := env.Close(closeCtx); err != nil {
			logger.Warn().Err(err).Msg("stopping cogserver")
		}
		logger.Info().Msg("session ended")
	}()

	io.ReplyEitherNL(conn, io.Bootstrap(usr))
	io.ReplyNL(conn, io.Grey+"type 'help' for help")
	io.Prompt(conn)

	reader := bufio.NewReader(conn)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			logger.Debug().Err(err).Msg("connection closed")
			return
		}
		cmds, err := io.Read(env.Names())(line, nil)
		if err != nil || len(cmds) == 0 {
			io.ReplyEitherNL(conn, err)
			io.Prompt(conn)
			continue
		}
		for _, cmd := range cmds {
			if fn := strcoll.Nth(0, cmd); fn == "quit" || fn == "exit" {
				io.ReplyNL(conn, io.Grey+"bye!")
				return
			}
			logger.Debug().Strs("cmd", cmd).Msg("evaluating")
			io.Reply(conn, env.Eval(ctx, cmd))
		}
		io.Prompt(conn)
	}
}

// a user is determined by its hostname or ip address
// users are modeled so to persist data across sessions for them
func resolveUsr(conn net.Conn) string {
	addr, _, _ := net.SplitHostPort(conn.RemoteAddr().String())
	hosts, _ := net.LookupAddr(addr)
	if len(hosts) == 0 {
		return addr
	}
	return hosts[0]
}

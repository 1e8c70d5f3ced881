package process

import (
	"context"
	stdio "io"
	"runtime"
	"strings"

	"github.com/opencog/cogexp/config"
	"github.com/opencog/cogexp/server/api/io"
	"github.com/opencog/cogexp/server/strcoll"
	"github.com/pkg/errors"
)

// Shell returns a function that runs its arguments as a command line with `r`, tracking occurred errors across
// invocations and aborting if a previous error had occurred.
// Calling it with no arguments returns the last error.
func Shell(w stdio.Writer, r Runner, verbose bool) func(...string) (string, error) {
	var err error
	return func(args ...string) (string, error) {
		if err != nil || strcoll.Nth(0, args) == "" {
			return "", err
		}
		cmdline := strings.Join(args, " ")
		if verbose {
			io.ReplyWithDots(w, cmdline)
		}
		var out string
		out, err = Run(context.Background(), r, cmdline)
		if err != nil {
			// errors are always printed
			io.ReplyNL(w, io.Red+out)
		} else if verbose {
			io.ReplyNL(w, io.Grey+out)
		}
		return out, err
	}
}

// Preflight checks that the tools needed to manage the servers are available.
func Preflight(w stdio.Writer, cfg config.Config) error {
	if runtime.GOOS != "linux" && runtime.GOOS != "darwin" {
		// meaning only linux and darwin have been somewhat tested
		return errors.New("only linux and darwin OS supported")
	}
	sh := Shell(w, Local{}, false)
	if cfg.UseVagrant {
		sh("vagrant", "--version")
	} else {
		sh("test", "-d", cfg.BuildFolder)
	}
	_, err := sh()
	return errors.Wrap(err, "preflight checks failed")
}

/*
Package process starts and stops the CogServer and the RelEx server, either on this host or inside Vagrant VMs.

Commands are plain shell command lines: locally they run with `sh -c` in a working directory, with Vagrant they are
passed to `vagrant ssh <id> -c`.
*/
package process

import (
	"context"
	"os/exec"
	"strings"

	"github.com/opencog/cogexp/config"
	"github.com/pkg/errors"
)

// Runner builds the commands that run a command line somewhere.
type Runner interface {
	Command(ctx context.Context, cmdline string) *exec.Cmd
	// true when command lines run inside a Vagrant VM
	Remote() bool
}

// Local runs command lines in Dir.
type Local struct {
	Dir string
}

func (l Local) Command(ctx context.Context, cmdline string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, "sh", "-c", cmdline)
	cmd.Dir = l.Dir
	return cmd
}

func (Local) Remote() bool {
	return false
}

// Vagrant runs command lines in the VM with the given id (see `vagrant global-status`).
type Vagrant struct {
	ID string
}

func (v Vagrant) Command(ctx context.Context, cmdline string) *exec.Cmd {
	return exec.CommandContext(ctx, "vagrant", "ssh", v.ID, "-c", cmdline)
}

func (Vagrant) Remote() bool {
	return true
}

// CogServerRunner returns where the CogServer runs according to `cfg`.
func CogServerRunner(cfg config.Config) Runner {
	if cfg.UseVagrant {
		return Vagrant{cfg.VagrantID}
	}
	return Local{cfg.BuildFolder}
}

// RelExRunner returns where the RelEx server runs according to `cfg`.
func RelExRunner(cfg config.Config) Runner {
	if cfg.UseVagrant {
		return Vagrant{cfg.VagrantIDRelex}
	}
	return Local{}
}

// Run runs `cmdline` to completion and returns its combined output, trimmed.
func Run(ctx context.Context, r Runner, cmdline string) (string, error) {
	b, err := r.Command(ctx, cmdline).CombinedOutput()
	out := strings.TrimSpace(string(b))
	if err != nil {
		return out, errors.Wrapf(err, "%s: %s", cmdline, out)
	}
	return out, nil
}

// runIgnoringNoMatch is Run for pkill-like commands, which exit with 1 when there is nothing to do
func runIgnoringNoMatch(ctx context.Context, r Runner, cmdline string) error {
	_, err := Run(ctx, r, cmdline)
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return nil
	}
	return err
}

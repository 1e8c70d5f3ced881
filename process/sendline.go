package process

import (
	"context"
	"net"
	"time"

	"github.com/pkg/errors"
)

// SendLine writes a single line to the CogServer shell at `addr` and closes the connection.
func SendLine(ctx context.Context, addr, line string) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "connecting to %s", addr)
	}
	defer conn.Close()
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(5 * time.Second)
	}
	conn.SetDeadline(deadline)
	_, err = conn.Write([]byte(line + "\n"))
	return errors.Wrapf(err, "sending %q to %s", line, addr)
}

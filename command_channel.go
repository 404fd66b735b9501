package main

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"time"
)

// CommandChannel delivers encoded sequences to the cockpit script over a
// fresh TCP connection per upload. Nothing is read back: a nil error means
// the line was written, not that the simulation ran it.
type CommandChannel struct {
	addr    string
	timeout time.Duration
}

func NewCommandChannel(host string, port int, timeout time.Duration) *CommandChannel {
	return &CommandChannel{
		addr:    net.JoinHostPort(host, fmt.Sprint(port)),
		timeout: timeout,
	}
}

func (c *CommandChannel) Addr() string {
	return c.addr
}

// Send connects, writes line plus a newline, flushes and closes. The
// connect and write together are bounded by the channel timeout.
func (c *CommandChannel) Send(ctx context.Context, line string) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		return fmt.Errorf("connect %s: %w", c.addr, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetWriteDeadline(deadline)
	}

	w := bufio.NewWriter(conn)
	if _, err := w.WriteString(line); err != nil {
		return fmt.Errorf("write %s: %w", c.addr, err)
	}
	if err := w.WriteByte('\n'); err != nil {
		return fmt.Errorf("write %s: %w", c.addr, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", c.addr, err)
	}
	return nil
}

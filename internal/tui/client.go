package tui

import (
	"bufio"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/lexiserve/lexiserve/internal/engine"
	"github.com/lexiserve/lexiserve/internal/wire"
)

// Client is the debug UI's view of a completion backend, satisfied by
// either an embedded Engine or a live TCP connection (SPEC_FULL §4.11).
type Client interface {
	BestCompletions(query string, limit int) ([]string, error)
	Close() error
}

// EmbeddedClient wraps an in-process Engine, used when the debug UI is
// launched without a server address.
type EmbeddedClient struct {
	Engine *engine.Engine
}

func (c *EmbeddedClient) BestCompletions(query string, limit int) ([]string, error) {
	results := c.Engine.BestCompletions(query, limit)
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Text
	}
	return out, nil
}

func (c *EmbeddedClient) Close() error { return nil }

// WireClient speaks the RS/EOT protocol to a running server, one
// connection reused across the whole debug session.
type WireClient struct {
	conn   net.Conn
	reader *bufio.Reader
}

// DialWireClient connects to addr for the duration of the debug session.
func DialWireClient(addr string) (*WireClient, error) {
	conn, err := net.DialTimeout("tcp", addr, 3*time.Second)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", addr, err)
	}
	return &WireClient{conn: conn, reader: bufio.NewReader(conn)}, nil
}

func (c *WireClient) BestCompletions(query string, limit int) ([]string, error) {
	frame := []byte("best-completions")
	frame = append(frame, wire.RS)
	frame = append(frame, []byte(query)...)
	frame = append(frame, wire.RS)
	frame = append(frame, []byte(strconv.Itoa(limit))...)
	frame = append(frame, wire.EOT)

	if _, err := c.conn.Write(frame); err != nil {
		return nil, err
	}
	c.conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	raw, err := c.reader.ReadString(wire.EOT)
	if err != nil {
		return nil, err
	}
	body := strings.TrimSuffix(raw, string(wire.EOT))
	if body == "" {
		return nil, nil
	}
	if strings.HasPrefix(body, "ERROR - ") {
		return nil, fmt.Errorf("%s", strings.TrimPrefix(body, "ERROR - "))
	}

	lines := strings.Split(body, "\n")
	out := make([]string, len(lines))
	for i, line := range lines {
		fields := strings.Fields(line)
		if len(fields) > 0 {
			out[i] = fields[0]
		}
	}
	return out, nil
}

func (c *WireClient) Close() error { return c.conn.Close() }

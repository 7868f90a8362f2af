// internal/writer/bridge/client.go
package bridge

import (
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"time"
)

// Scheme selects this transport in serial.port ("tcp://host:port").
const Scheme = "tcp://"

// Client writes frames to a raw TCP serial bridge (ser2net or a
// networked serial server in raw mode).
// Stateless, 1 frame = 1 connection, mirroring one serial transaction.
type Client struct {
	endpoint string
	timeout  time.Duration
	dial     func(network, addr string, timeout time.Duration) (net.Conn, error)
}

type Config struct {
	Endpoint string // host:port, with or without the tcp:// prefix
	Timeout  time.Duration
}

// IsBridge reports whether a configured port names a TCP bridge.
func IsBridge(port string) bool {
	return strings.HasPrefix(strings.ToLower(port), Scheme)
}

func New(cfg Config) (*Client, error) {
	ep := cfg.Endpoint
	if IsBridge(ep) {
		ep = ep[len(Scheme):]
	}
	if ep == "" {
		return nil, errors.New("writer bridge: endpoint required")
	}
	if _, _, err := net.SplitHostPort(ep); err != nil {
		return nil, fmt.Errorf("writer bridge: endpoint %q: %w", ep, err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}
	return &Client{
		endpoint: ep,
		timeout:  cfg.Timeout,
		dial:     net.DialTimeout,
	}, nil
}

// Send dials the bridge, writes the frame and closes the connection.
// A close failure is a send failure.
func (c *Client) Send(frame []byte) (err error) {
	conn, err := c.dial("tcp", c.endpoint, c.timeout)
	if err != nil {
		return fmt.Errorf("writer bridge: dial: %w", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("writer bridge: close: %w", cerr)
		}
	}()

	if err := conn.SetWriteDeadline(time.Now().Add(c.timeout)); err != nil {
		return fmt.Errorf("writer bridge: set deadline: %w", err)
	}
	if err := writeAll(conn, frame); err != nil {
		return fmt.Errorf("writer bridge: write: %w", err)
	}
	return nil
}

//
// ---- helpers ----
//

func writeAll(w io.Writer, b []byte) error {
	for len(b) > 0 {
		n, err := w.Write(b)
		if err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}

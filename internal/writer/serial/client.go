// internal/writer/serial/client.go
package serial

import (
	"errors"
	"fmt"
	"io"
	"time"

	goserial "github.com/goburrow/serial"
)

// Client writes frames to a local serial port.
// Stateless: the port is opened and closed for every frame, which is the
// discrete transaction the Brink unit expects.
type Client struct {
	cfg  goserial.Config
	open func(*goserial.Config) (io.WriteCloser, error)
}

// Config is minimal port config. Framing is fixed at 8N1.
type Config struct {
	Port    string
	Baud    int
	Timeout time.Duration
}

func New(cfg Config) (*Client, error) {
	if cfg.Port == "" {
		return nil, errors.New("writer serial: port required")
	}
	if cfg.Baud <= 0 {
		return nil, fmt.Errorf("writer serial: invalid baud %d", cfg.Baud)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}

	return &Client{
		cfg: goserial.Config{
			Address:  cfg.Port,
			BaudRate: cfg.Baud,
			DataBits: 8,
			StopBits: 1,
			Parity:   "N",
			Timeout:  cfg.Timeout,
		},
		open: openPort,
	}, nil
}

func openPort(c *goserial.Config) (io.WriteCloser, error) {
	p, err := goserial.Open(c)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Send opens the port, writes the whole frame and closes the port.
// Close runs even when the write fails.
func (c *Client) Send(frame []byte) (err error) {
	cfg := c.cfg
	port, err := c.open(&cfg)
	if err != nil {
		return fmt.Errorf("writer serial: open %s: %w", c.cfg.Address, err)
	}
	defer func() {
		if cerr := port.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("writer serial: close %s: %w", c.cfg.Address, cerr)
		}
	}()

	if err := writeAll(port, frame); err != nil {
		return fmt.Errorf("writer serial: write %s: %w", c.cfg.Address, err)
	}
	return nil
}

func writeAll(w io.Writer, b []byte) error {
	for len(b) > 0 {
		n, err := w.Write(b)
		if err != nil {
			return err
		}
		if n == 0 {
			return io.ErrShortWrite
		}
		b = b[n:]
	}
	return nil
}

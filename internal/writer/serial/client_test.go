// internal/writer/serial/client_test.go
package serial

import (
	"bytes"
	"errors"
	"io"
	"testing"

	goserial "github.com/goburrow/serial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePort struct {
	buf      bytes.Buffer
	writeErr error
	closed   bool
	chunk    int // max bytes accepted per Write; 0 = all
}

func (p *fakePort) Write(b []byte) (int, error) {
	if p.writeErr != nil {
		return 0, p.writeErr
	}
	if p.chunk > 0 && len(b) > p.chunk {
		b = b[:p.chunk]
	}
	return p.buf.Write(b)
}

func (p *fakePort) Close() error {
	p.closed = true
	return nil
}

func newTestClient(t *testing.T, port *fakePort, openErr error) (*Client, *[]goserial.Config) {
	t.Helper()
	c, err := New(Config{Port: "COM3", Baud: 2400})
	require.NoError(t, err)

	var opened []goserial.Config
	c.open = func(cfg *goserial.Config) (io.WriteCloser, error) {
		opened = append(opened, *cfg)
		if openErr != nil {
			return nil, openErr
		}
		return port, nil
	}
	return c, &opened
}

func TestSend_OpenWriteClosePerFrame(t *testing.T) {
	port := &fakePort{chunk: 3}
	c, opened := newTestClient(t, port, nil)

	require.NoError(t, c.Send([]byte("+2,0,1\r\n")))
	require.NoError(t, c.Send([]byte("+2,0,2\r\n")))

	assert.Len(t, *opened, 2, "port must be opened once per frame")
	assert.True(t, port.closed)
	assert.Equal(t, "+2,0,1\r\n+2,0,2\r\n", port.buf.String())

	cfg := (*opened)[0]
	assert.Equal(t, "COM3", cfg.Address)
	assert.Equal(t, 2400, cfg.BaudRate)
	assert.Equal(t, 8, cfg.DataBits)
	assert.Equal(t, 1, cfg.StopBits)
	assert.Equal(t, "N", cfg.Parity)
}

func TestSend_ClosesOnWriteFailure(t *testing.T) {
	port := &fakePort{writeErr: errors.New("device gone")}
	c, _ := newTestClient(t, port, nil)

	err := c.Send([]byte("+2,0,1\r\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "device gone")
	assert.True(t, port.closed, "port must be released on failure")
}

func TestSend_OpenFailure(t *testing.T) {
	c, _ := newTestClient(t, &fakePort{}, errors.New("access denied"))

	err := c.Send([]byte("+2,0,1\r\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open COM3")
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Config{Baud: 2400})
	assert.Error(t, err)

	_, err = New(Config{Port: "COM3"})
	assert.Error(t, err)
}

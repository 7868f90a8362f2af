// internal/writer/builder.go
package writer

import (
	"time"

	cfg "github.com/tamzrod/brink-callerid/internal/config"
	"github.com/tamzrod/brink-callerid/internal/writer/bridge"
	wserial "github.com/tamzrod/brink-callerid/internal/writer/serial"
)

// BuildTransport selects the transport for serial.port.
// "tcp://host:port" uses a raw TCP serial bridge; anything else is a local
// serial device. Nothing is opened here: transports acquire per frame.
func BuildTransport(s cfg.SerialConfig) (Transport, error) {
	timeout := time.Duration(s.TimeoutMs) * time.Millisecond

	if bridge.IsBridge(s.Port) {
		c, err := bridge.New(bridge.Config{
			Endpoint: s.Port,
			Timeout:  timeout,
		})
		if err != nil {
			return nil, err
		}
		return c, nil
	}

	c, err := wserial.New(wserial.Config{
		Port:    s.Port,
		Baud:    s.Baud,
		Timeout: timeout,
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

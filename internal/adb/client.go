package adb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"
)

const (
	// DefaultAddr is the standard ADB server address.
	DefaultAddr = "127.0.0.1:5037"

	dialTimeout = 5 * time.Second
)

// ErrRejected reports a FAIL status from the ADB server, with the server's
// own message attached by the caller.
var ErrRejected = errors.New("adb: request rejected")

// ErrNoDevices reports that the server knows no attached devices.
var ErrNoDevices = errors.New("adb: no devices attached")

// Client talks the ADB server's smart-socket protocol over TCP. Each request
// uses a fresh connection, matching how the server treats its sockets.
type Client struct {
	addr   string
	dialer net.Dialer
}

// NewClient builds a Client for the given host:port. An empty addr uses the
// standard local server.
func NewClient(addr string) (*Client, error) {
	if addr == "" {
		addr = DefaultAddr
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return nil, fmt.Errorf("adb server address %q: %w", addr, err)
	}
	return &Client{
		addr:   addr,
		dialer: net.Dialer{Timeout: dialTimeout},
	}, nil
}

// Addr returns the server address the client dials.
func (c *Client) Addr() string { return c.addr }

// ListDevices asks the server for all attached devices.
func (c *Client) ListDevices(ctx context.Context) ([]Device, error) {
	conn, err := c.dialer.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		return nil, fmt.Errorf("dial adb server: %w", err)
	}
	defer conn.Close()

	if err := roundTrip(conn, "host:devices"); err != nil {
		return nil, err
	}
	payload, err := readHexPayload(conn)
	if err != nil {
		return nil, fmt.Errorf("read device list: %w", err)
	}
	return parseDevices(payload), nil
}

// OpenLogStream attaches to a device and starts the logcat shell stream.
// An empty serial lets the server pick the single attached device
// (host:transport-any). The returned Connection's StreamLogs blocks until
// the device disconnects or the sink errors.
func (c *Client) OpenLogStream(serial string) (*Connection, error) {
	conn, err := c.dialer.Dial("tcp", c.addr)
	if err != nil {
		return nil, fmt.Errorf("dial adb server: %w", err)
	}

	transport := "host:transport-any"
	if serial != "" {
		transport = "host:transport:" + serial
	}
	if err := roundTrip(conn, transport); err != nil {
		conn.Close()
		return nil, fmt.Errorf("select device: %w", err)
	}
	if err := roundTrip(conn, "shell:logcat"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("start logcat: %w", err)
	}

	return &Connection{conn: conn}, nil
}

// Connection is one live logcat stream. It satisfies the pump's transport
// contract.
type Connection struct {
	conn net.Conn
}

// StreamLogs copies raw chunks from the device into sink until the device
// disconnects or the sink reports an error. A sink error (the framer saying
// its consumer is gone) is returned as-is so callers can recognize it.
func (s *Connection) StreamLogs(sink io.Writer) error {
	buf := make([]byte, 16*1024)
	for {
		n, err := s.conn.Read(buf)
		if n > 0 {
			if _, werr := sink.Write(buf[:n]); werr != nil {
				return werr
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read log stream: %w", err)
		}
	}
}

// Close tears down the underlying socket. Safe after StreamLogs returned.
func (s *Connection) Close() error {
	return s.conn.Close()
}

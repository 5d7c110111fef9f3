package adb

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// The ADB server speaks a text protocol: every request is a 4-digit lowercase
// hex length followed by the payload, answered by an "OKAY" or "FAIL" status.
// FAIL carries a hex4-prefixed message. Stream services (shell:...) follow
// OKAY with raw bytes until close.

func encodeRequest(payload string) []byte {
	return []byte(fmt.Sprintf("%04x%s", len(payload), payload))
}

// roundTrip sends one request and consumes the status reply.
func roundTrip(rw io.ReadWriter, payload string) error {
	if _, err := rw.Write(encodeRequest(payload)); err != nil {
		return fmt.Errorf("send %q: %w", payload, err)
	}
	return readStatus(rw, payload)
}

func readStatus(r io.Reader, payload string) error {
	status := make([]byte, 4)
	if _, err := io.ReadFull(r, status); err != nil {
		return fmt.Errorf("read status for %q: %w", payload, err)
	}
	switch string(status) {
	case "OKAY":
		return nil
	case "FAIL":
		msg, err := readHexPayload(r)
		if err != nil {
			return fmt.Errorf("%w (unreadable failure message: %v)", ErrRejected, err)
		}
		return fmt.Errorf("%w: %s", ErrRejected, msg)
	default:
		return fmt.Errorf("unexpected status %q for %q", status, payload)
	}
}

// readHexPayload reads a hex4 length prefix and the payload it frames.
func readHexPayload(r io.Reader) (string, error) {
	size := make([]byte, 4)
	if _, err := io.ReadFull(r, size); err != nil {
		return "", fmt.Errorf("read length: %w", err)
	}
	n, err := strconv.ParseUint(string(size), 16, 32)
	if err != nil {
		return "", fmt.Errorf("length prefix %q: %w", size, err)
	}
	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		return "", fmt.Errorf("read payload: %w", err)
	}
	return string(payload), nil
}

// parseDevices splits the "serial\tstate" lines of a host:devices reply.
func parseDevices(payload string) []Device {
	var devices []Device
	for _, line := range strings.Split(payload, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		serial, state, found := strings.Cut(line, "\t")
		if !found {
			continue
		}
		devices = append(devices, Device{
			Serial: strings.TrimSpace(serial),
			State:  strings.TrimSpace(state),
		})
	}
	return devices
}

package adb

// Device is one entry from the server's device list.
type Device struct {
	Serial string
	State  string
}

// Online reports whether the device can accept a shell stream. Offline and
// unauthorized devices still appear in listings but refuse transports.
func (d Device) Online() bool {
	return d.State == "device"
}

// Label is the human-readable form used in the picker and status line.
func (d Device) Label() string {
	if d.Online() {
		return d.Serial
	}
	return d.Serial + " (" + d.State + ")"
}

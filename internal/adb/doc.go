// Package adb provides a minimal client for the ADB server's smart-socket
// protocol.
//
// # Overview
//
// catlog only needs two services from the server: the device list and a
// logcat shell stream. Both ride the same text protocol on 127.0.0.1:5037:
// requests are 4-digit hex length prefixes plus payload, replies are an
// "OKAY" or "FAIL" status, and stream services follow OKAY with raw bytes
// until the socket closes.
//
//	-> 000chost:devices
//	<- OKAY
//	<- 0015emulator-5554\tdevice\n
//
//	-> 0012host:transport-any
//	<- OKAY
//	-> 000cshell:logcat
//	<- OKAY
//	<- <raw log bytes until disconnect>
//
// # Usage
//
//	client, err := adb.NewClient("")
//	devices, err := client.ListDevices(ctx)
//	conn, err := client.OpenLogStream(devices[0].Serial)
//	err = conn.StreamLogs(sink) // blocks until disconnect
//
// # Error Handling
//
// FAIL replies surface as wrapped ErrRejected carrying the server's message
// ("device offline", "device unauthorized", ...). Network errors are wrapped
// with the operation that failed. StreamLogs returns nil on a clean EOF and
// passes sink errors through unwrapped so the pump can match its own
// sentinel.
//
// # Scope
//
// Read-only, unauthenticated, local-server assumptions throughout — the same
// posture as any adb CLI invocation. Server autostart, forwarding, sync and
// the rest of the host services are deliberately absent.
package adb

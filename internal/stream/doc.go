// Package stream owns the path from raw device bytes to discrete log lines.
//
// # Overview
//
// The device transport delivers arbitrary byte chunks with embedded newlines,
// not pre-split records. This package adapts that push-based feed into line
// events the UI can drain at its own pace:
//
//	transport bytes ─> LineFramer ─> Mailbox ─> (UI drains per tick)
//
// # Components
//
//   - mailbox.go: bounded SPSC channel between pump and UI
//   - framer.go:  newline framing, CR trimming, UTF-8 validation
//   - pump.go:    background goroutine owning the live connection
//   - status.go:  mutex-guarded session snapshot for the status line
//
// # Concurrency Model
//
// Exactly one Pump runs per device session. It owns the producer half of the
// Mailbox and blocks indefinitely inside Connection.StreamLogs. The UI owns
// the consumer half and polls it non-blockingly once per tick; it never waits
// on the Mailbox.
//
// Cancellation is reactive by design: the pump stops only when the transport
// read itself errors. Closing the Mailbox consumer makes the framer's next
// Accept fail with ErrConsumerGone, which StreamLogs propagates out of its
// read loop, which ends the pump. There is no separate stop signal.
//
// # Error Handling
//
//   - Transport errors end the pump permanently and are recorded on Status;
//     the UI keeps showing buffered history read-only.
//   - Invalid UTF-8 segments are dropped silently; framing continues.
//   - ErrConsumerGone is a clean shutdown, not a failure.
package stream

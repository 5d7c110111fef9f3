// Package scrollback bounds the memory of log history and decides which
// window of it is visible.
//
// # Overview
//
// Two small pieces, both owned by the single UI context:
//
//   - Buffer: ring-backed history capped at MaxLines (65536). Appending past
//     the cap evicts from the head in O(1) and reports the eviction count so
//     the view offset can be reduced to keep the apparent position stable.
//   - ScrollState: tail-follow versus manual offset policy. While following,
//     every tick re-pins the window to the bottom; a manual scroll input
//     leaves follow mode, and jumping (or stepping) back onto the bottom
//     re-arms it.
//
// The ring indexing mirrors the tail-read ring this viewer's status sibling
// uses for log files; here it runs continuously instead of once per read.
//
// Buffer.DrainAll is the only coupling to the stream package: once per tick
// it non-blockingly empties the Mailbox into the buffer. It never waits, so
// the UI loop's cadence is bounded by the tick rate alone.
package scrollback

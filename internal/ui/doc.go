// Package ui runs the live log session: one event loop that drains the line
// mailbox on a tick, applies scroll and tab state, renders styled rows and
// commits frames through the viewport controller.
//
// # Overview
//
// The session is the single UI context. It is the only goroutine touching
// the scrollback buffer, the scroll state and the terminal, and it blocks
// only on one select over input events, resize signals and the tick. The
// mailbox is polled non-blockingly once per tick, never waited on.
//
// Rendering is split into pure helpers (priority detection, rune-aware
// clipping, tab bar, status line) so they test without a terminal.
package ui

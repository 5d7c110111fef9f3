// Package term drives the terminal directly: viewport placement, the
// inline/alternate screen state machine, synchronized frame commits, raw
// mode and job-control suspend.
//
// # Overview
//
// The Controller owns a viewport rectangle on the screen and is the only
// writer to the terminal. Two surfaces exist. Inline mode renders into a
// sub-rectangle at the bottom of the primary screen, so the terminal's own
// scrollback above it stays usable. Alternate mode takes the full secondary
// surface for an immersive view and restores the exact inline rectangle on
// the way back.
//
// Every frame goes out inside a synchronized-update scope (CSI ?2026) so the
// terminal never repaints mid-frame. Cursor-position queries are answered
// asynchronously on the input stream, so anything that needs one (resize
// realignment, resume placement) is computed before the scope opens.
//
// # Resize and suspend
//
// When the terminal resizes it may shift our rows; the controller detects
// this by comparing the cursor row against its last known position and moves
// the viewport by the same delta, keeping it anchored to scrollback.
//
// Ctrl+Z suspend is split three ways: Controller.PrepareSuspend records a
// single-shot resume intent and parks the cursor, Suspender performs the
// platform stop (restore modes, SIGTSTP, re-set modes), and the first Draw
// after resume applies the intent exactly once.
//
// # Cleanup
//
// Modes owns the process-wide raw state. Exactly one Controller and one
// Modes may be live; EmergencyReset is the panic-path fallback when the
// normal Restore cannot run.
package term

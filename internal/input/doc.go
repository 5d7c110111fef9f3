// Package input decodes raw terminal bytes into key, paste and cursor
// report events. It assumes the terminal is in raw mode and tolerates
// escape sequences split across reads.
package input

// Package config loads catlog's optional TOML configuration and supplies
// defaults for everything it omits.
package config

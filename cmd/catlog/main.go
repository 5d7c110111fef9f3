package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/droidbay/catlog/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	addr := flag.String("addr", "", "adb server address (optional, defaults to 127.0.0.1:5037)")
	serial := flag.String("serial", "", "device serial to attach (optional)")
	tick := flag.Int("tick", 0, "redraw interval in milliseconds (optional, defaults to 50)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		AdbAddr:    *addr,
		Serial:     *serial,
	}
	if *tick > 0 {
		opts.TickMS = *tick
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "catlog: %v\n", err)
		return 1
	}
	return 0
}

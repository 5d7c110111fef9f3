package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/droidbay/catlog/internal/adb"
	"github.com/droidbay/catlog/internal/config"
	"github.com/droidbay/catlog/internal/input"
	"github.com/droidbay/catlog/internal/picker"
	"github.com/droidbay/catlog/internal/stream"
	"github.com/droidbay/catlog/internal/term"
	"github.com/droidbay/catlog/internal/ui"
)

// cursorReportTimeout bounds how long a draw waits for the terminal to
// answer a position query.
const cursorReportTimeout = 250 * time.Millisecond

// Options configure the catlog application.
type Options struct {
	ConfigPath string
	AdbAddr    string // overrides config when set
	Serial     string // overrides config when set
	TickMS     int    // overrides config when set
}

// Run boots catlog: config, diagnostics log, device selection, the log pump
// and the terminal session. It returns after the user quits or a startup
// step fails, always with the terminal restored.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.AdbAddr != "" {
		cfg.AdbAddr = opts.AdbAddr
	}
	if opts.Serial != "" {
		cfg.Serial = opts.Serial
	}
	if opts.TickMS > 0 {
		cfg.TickMS = opts.TickMS
	}

	logClose, err := redirectLog(cfg.LogPath())
	if err != nil {
		return err
	}
	defer logClose()

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("catlog needs an interactive terminal")
	}

	client, err := adb.NewClient(cfg.AdbAddr)
	if err != nil {
		return err
	}

	serial := cfg.Serial
	if serial == "" {
		devices, err := client.ListDevices(ctx)
		if err != nil {
			return fmt.Errorf("list devices: %w", err)
		}
		dev, err := picker.Run(devices)
		if err != nil {
			return err
		}
		serial = dev.Serial
	}
	log.Printf("attaching to %s via %s", serial, client.Addr())

	return runSession(ctx, cfg, client, serial)
}

// runSession owns the terminal for the lifetime of the log view.
func runSession(ctx context.Context, cfg config.Config, client *adb.Client, serial string) (err error) {
	modes := term.NewModes(int(os.Stdin.Fd()), os.Stdout)
	if err := modes.Set(); err != nil {
		return err
	}
	defer func() {
		if rerr := modes.Restore(); rerr != nil && err == nil {
			err = rerr
		}
	}()
	defer func() {
		if r := recover(); r != nil {
			modes.Restore()
			term.EmergencyReset(os.Stdout)
			panic(r)
		}
	}()

	reader := input.NewReader(os.Stdin)
	reader.Start()

	size := func() (term.Size, error) {
		return term.DeviceSize(int(os.Stdout.Fd()))
	}
	cursorRow := func() (int, error) {
		if err := term.RequestCursorReport(os.Stdout); err != nil {
			return 0, err
		}
		rep, err := reader.WaitCursorReport(cursorReportTimeout)
		if err != nil {
			return 0, err
		}
		return rep.Row, nil
	}

	ctrl := term.NewController(os.Stdout, size, cursorRow)
	if err := ctrl.Init(); err != nil {
		return err
	}

	status := &stream.Status{}
	pump, err := stream.StartPump(func() (stream.Connection, error) {
		conn, err := client.OpenLogStream(serial)
		if err != nil {
			return nil, err
		}
		return conn, nil
	}, status)
	if err != nil {
		return fmt.Errorf("open log stream: %w", err)
	}
	status.SetConnected(serial)

	resizeCh := make(chan os.Signal, 1)
	term.NotifyResize(resizeCh)
	defer term.StopResize(resizeCh)

	session := ui.NewSession(ui.Options{
		Serial:   serial,
		Tick:     cfg.TickInterval(),
		Mailbox:  pump.Mailbox(),
		Status:   status,
		Ctrl:     ctrl,
		Reader:   reader,
		Suspend:  term.NewSuspender(modes),
		Size:     size,
		Theme:    ui.DefaultTheme(),
		ResizeCh: resizeCh,
		Quit:     ctx.Done(),
	})

	runErr := session.Run()
	if ferr := ctrl.Finish(); runErr == nil && ferr != nil {
		runErr = ferr
	}
	return runErr
}

// redirectLog sends the stdlib logger to catlog's own file so diagnostics
// never corrupt the raw-mode terminal.
func redirectLog(path string) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmsgprefix)
	log.SetPrefix("catlog ")
	return func() {
		log.SetOutput(os.Stderr)
		f.Close()
	}, nil
}

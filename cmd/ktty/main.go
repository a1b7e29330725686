// Package main is the entry point for ktty, the text console run on a
// terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/ktty/internal/arch/power"
	"github.com/dshills/ktty/internal/config"
	"github.com/dshills/ktty/internal/config/watcher"
	"github.com/dshills/ktty/internal/hosted"
	"github.com/dshills/ktty/internal/kernel"
	"github.com/dshills/ktty/internal/printk"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath  string
	logLevel    string
	printConfig bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	loader := config.NewLoader(opts.configPath)
	load := func() (*config.Config, error) {
		cfg, err := loader.Load()
		if err != nil {
			return nil, err
		}
		if opts.logLevel != "" {
			cfg.Logging.Level = opts.logLevel
		}
		return cfg, cfg.Validate()
	}

	cfg, err := load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if opts.printConfig {
		data, err := cfg.MarshalTOML()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		_, _ = os.Stdout.Write(data)
		return 0
	}

	var hostLog io.Writer
	if cfg.Logging.File != "" {
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to open log file: %v\n", err)
			return 1
		}
		defer f.Close()
		hostLog = f
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var k *kernel.Kernel
	console, err := hosted.NewTerminal(
		hosted.WithInterruptHandler(cancel),
		hosted.WithResetHandler(func() {
			if k != nil {
				k.Logger().Notice("reset line asserted")
			}
		}),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := console.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
		return 1
	}
	// Ensure the terminal is restored on all exit paths
	defer console.Shutdown()

	// detach leaves only the host log sink before the terminal is restored.
	detach := func() {
		if k == nil {
			return
		}
		k.Logger().SetConsole(nil)
		if n := console.Dropped(); n > 0 {
			k.Logger().Warn("%d scancode bytes dropped on a full queue", n)
		}
	}

	// Reboot and halt end the process once the hardware sequence is issued.
	machine := power.NewPortMachine(console, func(code int) {
		detach()
		console.Shutdown()
		if c, ok := hostLog.(io.Closer); ok {
			_ = c.Close()
		}
		os.Exit(code)
	})

	k, err = kernel.New(kernel.Hardware{
		Display: console,
		Ports:   console,
		Machine: machine,
	}, kernel.Options{Config: cfg, HostLog: hostLog})
	if err != nil {
		console.Shutdown()
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	printk.SetDefault(k.Logger())

	if err := k.Boot(); err != nil {
		console.Shutdown()
		fmt.Fprintf(os.Stderr, "Error: boot failed: %v\n", err)
		return 1
	}

	var w *watcher.Watcher
	if path := loader.Path(); path != "" {
		log := k.Logger().WithComponent("config")
		w, err = watcher.New(path, load,
			func(cfg *config.Config) {
				if err := k.Reload(cfg); err != nil {
					log.Error("%v", err)
				}
			},
			watcher.WithErrorHandler(func(err error) {
				log.Warn("reload failed: %v", err)
			}),
		)
		if err != nil {
			log.Warn("live reload disabled: %v", err)
			w = nil
		} else {
			defer w.Close()
		}
	}

	// Handle signals: SIGHUP re-reads the configuration, the rest shut down
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(signals)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case sig := <-signals:
				if sig == syscall.SIGHUP && w != nil {
					_ = w.Trigger()
					continue
				}
				cancel()
				return
			}
		}
	}()

	err = k.Run(ctx)
	detach()
	if err != nil {
		console.Shutdown()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (emerg, alert, crit, err, warning, notice, info, debug)")
	flag.BoolVar(&opts.printConfig, "print-config", false, "Print the effective configuration and exit")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "ktty - multiplexed text console\n\n")
		fmt.Fprintf(os.Stderr, "Usage: ktty [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  Ctrl+Left/Right   Switch screens\n")
		fmt.Fprintf(os.Stderr, "  Ctrl+C            Power off\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  ktty                        Boot with defaults\n")
		fmt.Fprintf(os.Stderr, "  ktty -c ktty.toml           Boot with a config file\n")
		fmt.Fprintf(os.Stderr, "  KTTY_PROMPT='# ' ktty       Override the prompt\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("ktty %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if opts.logLevel != "" {
		if _, err := printk.ParseLevel(opts.logLevel); err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid log level %q\n", opts.logLevel)
			os.Exit(1)
		}
	}

	return opts
}

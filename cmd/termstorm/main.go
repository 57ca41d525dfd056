// Package main is the termstorm settings tool: it loads the layered
// terminal settings, reports the effective configuration, and can run as
// a live-reload monitor.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/dshills/termstorm/internal/settings"
	"github.com/dshills/termstorm/internal/settings/notify"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

type options struct {
	configDir string
	check     bool
	print     bool
	watch     bool
	noEnv     bool
}

func run() int {
	opts := parseFlags()

	var mopts []settings.Option
	if opts.configDir != "" {
		mopts = append(mopts, settings.WithUserConfigDir(opts.configDir))
	}
	mopts = append(mopts,
		settings.WithWatcher(opts.watch),
		settings.WithEnvironment(!opts.noEnv),
	)

	manager := settings.NewManager(mopts...)
	defer manager.Close()

	if err := manager.Load(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if opts.check {
		path := manager.UserSettingsPath()
		if path == "" {
			fmt.Println("no user settings file; built-in defaults apply")
		} else {
			fmt.Printf("%s: OK\n", path)
		}
		return 0
	}

	if opts.print {
		if err := printEffective(manager); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	if !opts.watch {
		return 0
	}

	return watchLoop(manager)
}

// printEffective writes the merged settings document to stdout.
func printEffective(manager *settings.Manager) error {
	g := manager.Globals()
	doc := g.ToJSON()

	schemes := g.ColorSchemes()
	names := make([]string, 0, len(schemes))
	for name := range schemes {
		names = append(names, name)
	}
	sort.Strings(names)
	encoded := make([]any, 0, len(names))
	for _, name := range names {
		encoded = append(encoded, schemes[name].ToJSON())
	}
	doc["schemes"] = encoded

	out, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// watchLoop reports settings changes until interrupted.
func watchLoop(manager *settings.Manager) int {
	events := make(chan notify.Event, 16)
	sub := manager.Subscribe(func(e notify.Event) {
		select {
		case events <- e:
		default:
		}
	})
	defer sub.Unsubscribe()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	fmt.Fprintln(os.Stderr, "watching for settings changes; Ctrl+C to stop")
	for {
		select {
		case e := <-events:
			switch e.Type {
			case notify.EventReload:
				fmt.Printf("reloaded %s\n", e.Source)
			case notify.EventSet:
				fmt.Printf("set %s = %v\n", e.Key, e.New)
			}
		case <-signals:
			return 0
		}
	}
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configDir, "config", "", "Settings directory (default: $XDG_CONFIG_HOME/termstorm)")
	flag.StringVar(&opts.configDir, "c", "", "Settings directory (shorthand)")
	flag.BoolVar(&opts.check, "check", false, "Validate the settings files and exit")
	flag.BoolVar(&opts.print, "print", true, "Print the effective settings as JSON")
	flag.BoolVar(&opts.watch, "watch", false, "Keep running and report live reloads")
	flag.BoolVar(&opts.noEnv, "no-env", false, "Ignore TERMSTORM_* environment overrides")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Termstorm - layered terminal settings tool\n\n")
		fmt.Fprintf(os.Stderr, "Usage: termstorm [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  termstorm                   Print the effective settings\n")
		fmt.Fprintf(os.Stderr, "  termstorm -check            Validate the settings files\n")
		fmt.Fprintf(os.Stderr, "  termstorm -c ./conf -watch  Monitor a settings directory\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("Termstorm %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	return opts
}

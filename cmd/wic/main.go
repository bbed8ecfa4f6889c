package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"gopkg.in/yaml.v3"

	"github.com/bivex/wic/internal/config"
	"github.com/bivex/wic/internal/control"
	"github.com/bivex/wic/internal/hotkeys"
	"github.com/bivex/wic/internal/ipc"
	"github.com/bivex/wic/internal/layout"
	"github.com/bivex/wic/internal/perf"
	"github.com/bivex/wic/internal/platform"
	"github.com/bivex/wic/internal/tui"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		if len(os.Args) > 2 && (os.Args[2] == "help" || os.Args[2] == "-h" || os.Args[2] == "--help") {
			fmt.Fprintln(os.Stdout, "Usage: wic daemon")
			os.Exit(0)
		}
		if len(os.Args) > 2 {
			fmt.Fprintln(os.Stderr, "daemon takes no arguments")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Usage: wic daemon")
			os.Exit(2)
		}
		runDaemon()
	case "arrange":
		os.Exit(runArrange(os.Args[2:]))
	case "undo":
		os.Exit(runUndo(os.Args[2:]))
	case "keep-on-screen":
		os.Exit(runKeepOnScreen(os.Args[2:]))
	case "mode":
		os.Exit(runMode(os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "monitors":
		os.Exit(runMonitors(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "tui":
		os.Exit(runTUI(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "perf":
		os.Exit(runPerf(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wic <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the wic daemon (foreground)")
	fmt.Fprintln(w, "  arrange [mode]      Arrange windows on the active monitor")
	fmt.Fprintln(w, "  undo                Restore geometry from before the last arrangement")
	fmt.Fprintln(w, "  keep-on-screen      Pull off-screen and oversized windows back into view")
	fmt.Fprintln(w, "  status              Show daemon status")
	fmt.Fprintln(w, "  monitors            List connected monitors")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mode list           List available arrangement modes")
	fmt.Fprintln(w, "  mode default        Set default mode")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  tui                 Open interactive TUI")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "  perf [file]         Analyze daemon timing logs")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'wic <command> --help' for command-specific options.")
}

func runArrange(args []string) int {
	fs := flag.NewFlagSet("arrange", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: wic arrange [mode]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Arrange all windows on the active monitor. With a mode argument the")
		fmt.Fprintln(os.Stderr, "daemon switches its active mode first.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "arrange takes at most one argument")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	if err := client.Arrange(fs.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runUndo(args []string) int {
	fs := flag.NewFlagSet("undo", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: wic undo")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Restore windows on the active monitor to their geometry before the")
		fmt.Fprintln(os.Stderr, "last arrangement.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "undo takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	if err := client.Undo(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runKeepOnScreen(args []string) int {
	fs := flag.NewFlagSet("keep-on-screen", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: wic keep-on-screen")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Correct windows that are off-screen or larger than the monitor")
		fmt.Fprintln(os.Stderr, "without changing the overall arrangement.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "keep-on-screen takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	corrected, err := client.KeepOnScreen()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("corrected: %d\n", corrected)
	return 0
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: wic status")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show daemon status via IPC.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	status, err := client.GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("daemon_running: %v\n", status.DaemonRunning)
	fmt.Printf("active_mode:    %s\n", status.ActiveMode)
	fmt.Printf("window_count:   %d\n", status.WindowCount)
	fmt.Printf("uptime_seconds: %d\n", status.UptimeSeconds)
	return 0
}

func runMonitors(args []string) int {
	fs := flag.NewFlagSet("monitors", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: wic monitors")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List connected monitors with their full and usable frames.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "monitors takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	data, err := client.GetMonitors()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	for _, m := range data.Monitors {
		fmt.Printf("%d: %s  %dx%d+%d+%d  usable %dx%d+%d+%d\n",
			m.ID, m.Name,
			m.Width, m.Height, m.X, m.Y,
			m.UsableWidth, m.UsableHeight, m.UsableX, m.UsableY)
	}
	return 0
}

func printModeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  wic mode list [--json]")
	fmt.Fprintln(w, "  wic mode default [--arrange] <mode>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'wic mode <command> --help' for command-specific options.")
}

func runMode(args []string) int {
	if len(args) == 0 {
		printModeUsage(os.Stderr)
		return 2
	}
	if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printModeUsage(os.Stdout)
		return 0
	}

	client := ipc.NewClient()

	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("list", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		fs.Usage = func() {
			fmt.Fprintln(os.Stderr, "Usage: wic mode list [--json]")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "List available modes (and current selection when the daemon is running).")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Flags:")
			fs.PrintDefaults()
		}
		jsonOut := fs.Bool("json", false, "Output mode list as JSON")
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		if fs.NArg() != 0 {
			fmt.Fprintln(os.Stderr, "mode list takes no arguments")
			fs.Usage()
			return 2
		}

		if *jsonOut {
			return modeListJSON()
		}

		data, err := client.ListModes()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Printf("default_mode: %s\n", data.DefaultMode)
		fmt.Printf("active_mode:  %s\n", data.ActiveMode)
		for _, name := range data.Modes {
			fmt.Printf("- %s\n", name)
		}
		return 0

	case "default":
		fs := flag.NewFlagSet("default", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		fs.Usage = func() {
			fmt.Fprintln(os.Stderr, "Usage: wic mode default [--arrange] <mode>")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Set default_mode in config (optionally arranging immediately).")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Flags:")
			fs.PrintDefaults()
		}
		arrangeNow := fs.Bool("arrange", false, "Arrange immediately")
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		if fs.NArg() < 1 {
			fmt.Fprintln(os.Stderr, "mode default requires <mode>")
			fs.Usage()
			return 2
		}
		if err := client.SetDefaultMode(fs.Arg(0), *arrangeNow); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown mode command: %s\n\n", args[0])
		printModeUsage(os.Stderr)
		return 2
	}
}

type modeJSON struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Custom      bool   `json:"custom,omitempty"`
}

func modeListJSON() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	modes := make([]modeJSON, 0, len(cfg.ModeNames()))
	for _, name := range cfg.ModeNames() {
		entry := modeJSON{Name: name}
		if layout.Valid(layout.Mode(name)) {
			entry.Description = layout.Describe(layout.Mode(name))
		} else {
			entry.Custom = true
		}
		modes = append(modes, entry)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(modes); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  wic config validate [--path PATH]")
		fmt.Fprintln(os.Stderr, "  wic config print [--path PATH] [--defaults]")
		return 2
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/wic/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		var err error
		if *path == "" {
			_, err = config.Load()
		} else {
			_, err = config.LoadFromPath(*path)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("config: ok")
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/wic/config.yaml)")
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		var cfg *config.Config
		var err error
		switch {
		case *printDefaults:
			cfg = config.Default()
		case *path == "":
			cfg, err = config.Load()
		default:
			cfg, err = config.LoadFromPath(*path)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Print(string(data))
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args[0])
		return 2
	}
}

func runTUI(args []string) int {
	fs := flag.NewFlagSet("tui", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/wic/config.yaml)")

	if len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help") {
		fmt.Fprintln(os.Stderr, "Usage: wic tui [--path PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Interactive TUI for browsing modes and controlling the daemon.")
		fmt.Fprintln(os.Stderr, "Works as an offline browser when the daemon is not running.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Keybindings:")
		fmt.Fprintln(os.Stderr, "  j/k, ↑/↓  Navigate modes")
		fmt.Fprintln(os.Stderr, "  Enter, a  Arrange with selected mode (daemon)")
		fmt.Fprintln(os.Stderr, "  d         Set selected mode as default")
		fmt.Fprintln(os.Stderr, "  2/4/6/9   Set window count for preview")
		fmt.Fprintln(os.Stderr, "  Tab       Switch tabs")
		fmt.Fprintln(os.Stderr, "  r         Reload config (and daemon when running)")
		fmt.Fprintln(os.Stderr, "  q, Ctrl+C Quit")
		return 0
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if err := tui.Run(*path); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runPerf(args []string) int {
	fs := flag.NewFlagSet("perf", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: wic perf [file]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Analyze daemon timing logs. Reads from the given file, or from stdin")
		fmt.Fprintln(os.Stderr, "when no file is given.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "perf takes at most one argument")
		fs.Usage()
		return 2
	}

	var in io.Reader = os.Stdin
	if fs.NArg() == 1 {
		f, err := os.Open(fs.Arg(0))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		defer f.Close()
		in = f
	}

	report, err := perf.Parse(in)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	report.Render(os.Stdout)
	return 0
}

func runDaemon() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Printf("Configuration loaded (default mode: %s, padding: %.0fpx)", cfg.DefaultMode, cfg.Padding)

	backend, err := platform.NewLinuxBackendFromDisplay()
	if err != nil {
		log.Fatalf("Failed to connect to display: %v", err)
	}
	defer backend.Disconnect()

	displays, err := backend.Displays()
	if err != nil {
		log.Fatalf("Failed to enumerate displays: %v", err)
	}
	log.Printf("initialized with %d display(s)", len(displays))

	controller := control.NewController(backend, cfg)

	handler := hotkeys.NewHandler(backend)
	registerHotkey := func(name, sequence string, callback func()) {
		if sequence == "" {
			return
		}
		if err := handler.Register(sequence, callback); err != nil {
			log.Printf("Warning: failed to register %s hotkey %q: %v", name, sequence, err)
			return
		}
		log.Printf("Hotkey registered: %s (%s)", sequence, name)
	}

	registerHotkey("arrange", cfg.Hotkeys.Arrange, func() {
		if err := controller.ArrangeActiveDisplay(); err != nil {
			log.Printf("Arrange failed: %v", err)
		}
	})
	registerHotkey("undo", cfg.Hotkeys.Undo, func() {
		if err := controller.Undo(); err != nil {
			log.Printf("Undo failed: %v", err)
		}
	})
	registerHotkey("keep-on-screen", cfg.Hotkeys.KeepOnScreen, func() {
		if _, err := controller.KeepOnScreen(); err != nil {
			log.Printf("Keep-on-screen failed: %v", err)
		}
	})
	registerHotkey("cycle-mode", cfg.Hotkeys.CycleMode, func() {
		name, err := controller.CycleMode(1)
		if err != nil {
			log.Printf("Failed to cycle mode: %v", err)
			return
		}
		log.Printf("Switched to mode: %s", name)
		if err := controller.ArrangeActiveDisplay(); err != nil {
			log.Printf("Arrange failed: %v", err)
		}
	})

	reloadChan := make(chan struct{}, 1)

	ipcServer, err := ipc.NewServer(cfg, controller, backend, reloadChan)
	if err != nil {
		log.Fatalf("Failed to create IPC server: %v", err)
	}
	if err := ipcServer.Start(); err != nil {
		log.Fatalf("Failed to start IPC server: %v", err)
	}
	defer ipcServer.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		for {
			select {
			case sig := <-sigCh:
				switch sig {
				case syscall.SIGHUP:
					log.Println("Received SIGHUP, reloading config...")
					newCfg, err := config.Load()
					if err != nil {
						log.Printf("Config reload failed: %v", err)
						continue
					}
					ipcServer.UpdateConfig(newCfg)
					controller.UpdateConfig(newCfg)
					log.Println("Config reloaded successfully")

				case os.Interrupt, syscall.SIGTERM:
					log.Println("Shutting down wic daemon...")
					ipcServer.Stop()
					os.Exit(0)
				}

			case <-reloadChan:
				// Config was reloaded via IPC; the server already
				// pushed it to the controller.
				log.Printf("Active config now defaults to mode: %s", ipcServer.GetConfig().DefaultMode)
			}
		}
	}()

	log.Println("Entering event loop...")
	backend.EventLoop()
}

// Package main is the entry point for cellpanel.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/cellpanel/internal/app"
	"github.com/dshills/cellpanel/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// cliOptions holds the parsed command line.
type cliOptions struct {
	app      app.Options
	print    bool
	snapshot string
}

func main() {
	os.Exit(run())
}

func run() int {
	cli := parseFlags()

	headless := cli.print || cli.snapshot != ""
	if headless {
		cli.app.LogOutput = os.Stderr
	}

	// Create application
	application, err := app.New(cli.app)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	if headless {
		return runHeadless(application, cli)
	}

	// Create terminal backend
	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := application.SetBackend(term); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to set backend: %v\n", err)
		return 1
	}

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	go func() {
		<-signals
		application.Shutdown()
	}()

	// Run the application
	if err := application.Run(); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

func runHeadless(application *app.Application, cli cliOptions) int {
	if cli.print {
		if err := application.RenderText(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	if cli.snapshot != "" {
		if err := writeSnapshot(application, cli.snapshot); err != nil {
			fmt.Fprintf(os.Stderr, "Error: snapshot: %v\n", err)
			return 1
		}
	}
	return 0
}

// writeSnapshot writes a PNG frame to path, or to stdout for "-".
func writeSnapshot(application *app.Application, path string) error {
	var w io.Writer = os.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return application.RenderPNG(w)
}

func parseFlags() cliOptions {
	var cli cliOptions
	var (
		scenePath   string
		scriptPath  string
		logLevel    string
		logFile     string
		fps         int
		watch       bool
		showVersion bool
		showHelp    bool
	)

	flag.StringVar(&cli.app.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&cli.app.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&scenePath, "scene", "", "Scene file (.toml, .yaml)")
	flag.StringVar(&scriptPath, "script", "", "Lua script driving the scene")
	flag.BoolVar(&watch, "watch", false, "Reload scene and script when they change")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.StringVar(&logFile, "log-file", "", "Write logs to this file")
	flag.IntVar(&fps, "fps", 60, "Frame rate limit, 0 for unlimited")
	flag.BoolVar(&cli.print, "print", false, "Print one frame as text and exit")
	flag.StringVar(&cli.snapshot, "snapshot", "", "Write one frame as PNG to this file (- for stdout) and exit")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "cellpanel - character-cell widget renderer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: cellpanel [options] [scene]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  cellpanel                          Show the demo scene\n")
		fmt.Fprintf(os.Stderr, "  cellpanel hud.toml                 Show a scene file\n")
		fmt.Fprintf(os.Stderr, "  cellpanel -script hud.lua -watch   Drive it from Lua, reload on save\n")
		fmt.Fprintf(os.Stderr, "  cellpanel -print hud.yaml          Print one frame\n")
		fmt.Fprintf(os.Stderr, "  cellpanel -snapshot out.png        Render one frame to PNG\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("cellpanel %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if scenePath == "" && flag.NArg() > 0 {
		scenePath = flag.Arg(0)
	}

	// Only flags given on the command line override the other layers
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	overrides := make(map[string]any)
	if scenePath != "" {
		overrides["scene.path"] = scenePath
	}
	if set["script"] {
		overrides["script.path"] = scriptPath
	}
	if set["watch"] {
		overrides["scene.watch"] = watch
	}
	if set["log-level"] {
		overrides["logging.level"] = logLevel
	}
	if set["log-file"] {
		overrides["logging.file"] = logFile
	}
	if set["fps"] {
		overrides["render.fps"] = fps
	}
	cli.app.Overrides = overrides

	return cli
}

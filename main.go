// claude-line renders a configurable status line for Claude Code.
//
// Claude Code invokes the binary with a JSON session payload on stdin;
// claude-line prints one or more ANSI-styled lines on stdout. Everything
// else (config management, the interactive editor, licensing) hangs off
// flags.
//
// Usage:
//
//	claude-line [flags] < session.json
//
// Flags:
//
//	-config string       Path to configuration file (default: ~/.config/claude-line/config.toml)
//	-theme string        Theme override (see -themes for the list)
//	-color-level string  Color depth override (none|16|256|truecolor)
//	-term-width int      Terminal width override (0 = auto-detect)
//	-init                Write a starter config and exit
//	-preset string       Preset for -init (minimal|full|powerline|compact)
//	-themes              List available themes
//	-set-theme string    Persist a theme choice into the config
//	-schema              List available widget types
//	-doctor              Print environment diagnostics
//	-tui                 Launch the interactive config editor
//	-activate string     Activate a Pro license key
//	-license             Show license status
//	-deactivate          Remove the stored license
//	-verbose             Enable verbose logging on stderr
//	-version             Print version and exit
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gitlab.com/tinyland/lab/claude-line/config"
	"gitlab.com/tinyland/lab/claude-line/history"
	"gitlab.com/tinyland/lab/claude-line/layout"
	"gitlab.com/tinyland/lab/claude-line/license"
	"gitlab.com/tinyland/lab/claude-line/render"
	"gitlab.com/tinyland/lab/claude-line/themes"
	"gitlab.com/tinyland/lab/claude-line/tui"
	"gitlab.com/tinyland/lab/claude-line/widgets"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to configuration file (default: ~/.config/claude-line/config.toml)")
		themeFlag   = flag.String("theme", "", "Theme override")
		colorLevel  = flag.String("color-level", "", "Color depth override (none|16|256|truecolor)")
		termWidth   = flag.Int("term-width", 0, "Terminal width override (0 = auto-detect)")
		runInit     = flag.Bool("init", false, "Write a starter config and exit")
		presetName  = flag.String("preset", "", "Preset for -init (minimal|full|powerline|compact)")
		listThemes  = flag.Bool("themes", false, "List available themes")
		setTheme    = flag.String("set-theme", "", "Persist a theme choice into the config")
		showSchema  = flag.Bool("schema", false, "List available widget types")
		runDoctor   = flag.Bool("doctor", false, "Print environment diagnostics")
		runTUI      = flag.Bool("tui", false, "Launch the interactive config editor")
		activateKey = flag.String("activate", "", "Activate a Pro license key")
		showLicense = flag.Bool("license", false, "Show license status")
		deactivate  = flag.Bool("deactivate", false, "Remove the stored license")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging on stderr")
		showVersion = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	logger := slog.New(slog.DiscardHandler)
	if *verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	// ---------------------------------------------------------------
	// Commands that don't require config
	// ---------------------------------------------------------------

	if *showVersion {
		fmt.Printf("claude-line %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	if *listThemes {
		for _, name := range themes.Names() {
			fmt.Println(name)
		}
		os.Exit(0)
	}

	if *showSchema {
		for _, name := range widgets.NewRegistry(nil).Names() {
			fmt.Println(name)
		}
		os.Exit(0)
	}

	if *activateKey != "" {
		info, err := license.NewValidator().Activate(*activateKey)
		if err != nil {
			fmt.Fprintf(os.Stderr, "activation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("activated %s license on machine %s\n", info.Tier, info.MachineID)
		os.Exit(0)
	}

	if *deactivate {
		if err := license.NewValidator().Deactivate(); err != nil {
			fmt.Fprintf(os.Stderr, "deactivation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("license removed")
		os.Exit(0)
	}

	if *showLicense {
		info, ok := license.CheckPro()
		if !ok {
			fmt.Println("license: free tier (no valid Pro key)")
			os.Exit(0)
		}
		fmt.Printf("license: %s (%s)\n", info.Tier, info.Status)
		fmt.Printf("  features: %v\n", info.Features)
		fmt.Printf("  last validated: %s\n", info.LastValidated.Format(time.RFC3339))
		os.Exit(0)
	}

	if *runInit {
		cfg := config.Default()
		if *presetName != "" {
			preset, ok := config.Preset(*presetName)
			if !ok {
				fmt.Fprintf(os.Stderr, "unknown preset: %s (supported: %v)\n",
					*presetName, config.PresetNames())
				os.Exit(1)
			}
			cfg = preset
		}
		path := *configPath
		if path == "" {
			path = config.DefaultPath()
		}
		if _, err := os.Stat(path); err == nil {
			fmt.Fprintf(os.Stderr, "refusing to overwrite existing config at %s\n", path)
			os.Exit(1)
		}
		if err := config.Save(cfg, path); err != nil {
			fmt.Fprintf(os.Stderr, "init failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("wrote %s\n", path)
		os.Exit(0)
	}

	// ---------------------------------------------------------------
	// Load configuration (required for remaining modes)
	// ---------------------------------------------------------------

	var cfg *config.Config
	var cfgErr error
	if *configPath != "" {
		cfg, cfgErr = config.LoadFromFile(*configPath)
	} else {
		cfg, cfgErr = config.Load()
	}
	if cfgErr != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", cfgErr)
		os.Exit(1)
	}

	if *themeFlag != "" {
		cfg.Theme = *themeFlag
	}
	if *colorLevel != "" {
		cfg.ColorLevel = *colorLevel
	}

	if *setTheme != "" {
		known := false
		for _, name := range themes.Names() {
			if name == *setTheme {
				known = true
			}
		}
		if !known {
			fmt.Fprintf(os.Stderr, "unknown theme: %s (see -themes)\n", *setTheme)
			os.Exit(1)
		}
		cfg.Theme = *setTheme
		path := *configPath
		if path == "" {
			path = config.DefaultPath()
		}
		if err := config.Save(cfg, path); err != nil {
			fmt.Fprintf(os.Stderr, "failed to save config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("theme set to %s\n", *setTheme)
		os.Exit(0)
	}

	if *runDoctor {
		doctor(cfg)
		os.Exit(0)
	}

	tracker, err := history.Open(history.DefaultDir(), logger)
	if err != nil {
		logger.Warn("history unavailable", slog.String("error", err.Error()))
		tracker = nil
	}

	var costs widgets.CostSource
	if tracker != nil {
		costs = tracker
	}
	registry := widgets.NewRegistry(costs)

	// ---------------------------------------------------------------
	// TUI mode
	// ---------------------------------------------------------------

	if *runTUI {
		defer func() {
			if r := recover(); r != nil {
				// Restore the terminal from alt-screen before printing.
				fmt.Print("\x1b[?1049l\x1b[?25h")
				fmt.Fprintf(os.Stderr, "claude-line: TUI panic: %v\n", r)
				os.Exit(1)
			}
		}()

		path := *configPath
		if path == "" {
			path = config.DefaultPath()
		}
		if err := tui.Run(cfg, path, registry); err != nil {
			fmt.Fprintf(os.Stderr, "TUI error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	// ---------------------------------------------------------------
	// Default: render the status line from stdin
	// ---------------------------------------------------------------

	// A broken status line must never break the prompt. Whatever goes
	// wrong, exit zero with whatever output was produced.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "claude-line: render panic: %v\n", r)
			os.Exit(0)
		}
	}()

	data, err := widgets.ReadSessionData(os.Stdin)
	if err != nil {
		logger.Warn("bad session payload", slog.String("error", err.Error()))
		data = &widgets.SessionData{}
	}

	if tracker != nil {
		recordHistory(tracker, data, logger)
	}

	engine := layout.New(cfg, render.Detect(cfg.ColorLevel))
	if *termWidth > 0 {
		engine.Term = layout.FixedTerminal(*termWidth)
	}
	for _, line := range engine.Render(data, registry) {
		fmt.Println(line)
	}
}

// recordHistory folds the current payload into the local history file:
// the session aggregate is upserted, and any cost growth since the last
// invocation becomes a cost event for the burn-rate window.
func recordHistory(tracker *history.Tracker, data *widgets.SessionData, logger *slog.Logger) {
	if data.SessionID == nil || *data.SessionID == "" {
		return
	}
	id := *data.SessionID
	now := time.Now()

	rec, known := tracker.Session(id)
	if !known {
		rec = history.SessionRecord{ID: id, StartTime: now}
	}
	prevCost := rec.TotalCost

	if data.Model != nil && data.Model.ID != nil {
		rec.Model = *data.Model.ID
	}
	if data.Cost != nil && data.Cost.TotalCostUSD != nil {
		rec.TotalCost = *data.Cost.TotalCostUSD
	}
	if cw := data.ContextWindow; cw != nil {
		if cw.TotalInputTokens != nil {
			rec.TokensInput = *cw.TotalInputTokens
		}
		if cw.TotalOutputTokens != nil {
			rec.TokensOutput = *cw.TotalOutputTokens
		}
		if cw.CurrentUsage != nil && cw.CurrentUsage.CacheReadInputTokens != nil {
			rec.TokensCached = *cw.CurrentUsage.CacheReadInputTokens
		}
	}

	if err := tracker.UpsertSession(rec); err != nil {
		logger.Warn("history upsert failed", slog.String("error", err.Error()))
		return
	}

	if delta := rec.TotalCost - prevCost; delta > 0 {
		ev := history.CostEvent{
			SessionID: id,
			Timestamp: now,
			Type:      "usage",
			Cost:      delta,
		}
		if err := tracker.AppendEvent(ev); err != nil {
			logger.Warn("history event failed", slog.String("error", err.Error()))
		}
	}
}

// doctor prints environment diagnostics for support requests.
func doctor(cfg *config.Config) {
	fmt.Printf("claude-line %s diagnostics\n", version)
	fmt.Println("==========================")
	fmt.Println()

	fmt.Println("Config:")
	fmt.Printf("  path: %s\n", config.DefaultPath())
	fmt.Printf("  theme: %s\n", cfg.Theme)
	fmt.Printf("  flex mode: %s\n", cfg.FlexMode)
	fmt.Printf("  powerline: %v\n", cfg.Powerline.Enabled)
	fmt.Println()

	fmt.Println("Terminal:")
	fmt.Printf("  color level: %s\n", render.Detect(cfg.ColorLevel).Level)
	fmt.Printf("  width: %d\n", layout.DetectWidth(layout.StdoutTerminal{}))
	fmt.Printf("  TERM=%s COLORTERM=%s\n", os.Getenv("TERM"), os.Getenv("COLORTERM"))
	fmt.Println()

	fmt.Println("History:")
	fmt.Printf("  dir: %s\n", history.DefaultDir())
	if tracker, err := history.Open(history.DefaultDir(), nil); err != nil {
		fmt.Printf("  error: %v\n", err)
	} else {
		weekStart := history.WeekStart(time.Now())
		fmt.Printf("  sessions this week: %d\n", tracker.SessionCount(weekStart, time.Now().Add(time.Hour)))
		fmt.Printf("  spend this week: $%.2f\n", tracker.TotalCostSince(weekStart))
	}
	fmt.Println()

	fmt.Println("License:")
	if info, ok := license.CheckPro(); ok {
		fmt.Printf("  %s (%s)\n", info.Tier, info.Status)
	} else {
		fmt.Println("  free tier")
	}
}

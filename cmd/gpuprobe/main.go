package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"gpuprobe/internal/config"
	"gpuprobe/internal/fsutil"
	"gpuprobe/internal/gpu"
	"gpuprobe/internal/logging"
	"gpuprobe/internal/probe"
	"gpuprobe/internal/tui"
)

const version = "0.1.0-dev"

const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

// app bundles the process surfaces so commands can be driven from tests.
type app struct {
	stdout   io.Writer
	stderr   io.Writer
	newQuery func(*logging.Logger) gpu.DeviceQuery
	runTUI   func(tea.Model) error
}

func main() {
	a := &app{
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		newQuery: gpu.NewDeviceQuery,
		runTUI: func(m tea.Model) error {
			_, err := tea.NewProgram(m).Run()
			return err
		},
	}
	os.Exit(a.run(os.Args[1:]))
}

func (a *app) run(args []string) int {
	if len(args) == 0 {
		return a.runCheck(nil)
	}

	command := strings.ToLower(args[0])
	if handler, ok := a.commandHandlers()[command]; ok {
		return handler(args[1:])
	}

	fmt.Fprintf(a.stderr, "Unknown command: %s\n\n", args[0])
	a.printUsage()
	return exitUsage
}

func (a *app) commandHandlers() map[string]func([]string) int {
	help := func([]string) int {
		a.printUsage()
		return exitOK
	}
	return map[string]func([]string) int{
		"check":   a.runCheck,
		"tui":     a.runInteractive,
		"config":  a.runConfig,
		"version": a.runVersion,
		"help":    help,
		"--help":  help,
		"-h":      help,
	}
}

func (a *app) runVersion([]string) int {
	fmt.Fprintf(a.stdout, "gpuprobe version %s\n", version)
	return exitOK
}

// runCheck probes for an accelerator and maps the outcome onto the exit code.
func (a *app) runCheck(args []string) int {
	save := false
	for _, arg := range args {
		switch arg {
		case "--save":
			save = true
		default:
			fmt.Fprintf(a.stderr, "Unknown check option: %s\n", arg)
			return exitUsage
		}
	}

	cfg := a.loadConfig()
	logger, closeLogger := a.newLogger(cfg)
	defer closeLogger()

	result, err := probe.New(a.newQuery(logger), a.stdout, logger).Run()

	if save {
		if saveErr := fsutil.WriteJSON(cfg.Report.Path, result, logger); saveErr != nil {
			fmt.Fprintf(a.stderr, "Failed to save report: %v\n", saveErr)
			return exitFail
		}
		fmt.Fprintf(a.stderr, "Report saved to: %s\n", cfg.Report.Path)
	}

	if err != nil {
		if errors.Is(err, probe.ErrPreconditionNotMet) {
			fmt.Fprintf(a.stderr, "FAIL: %v\n", err)
		} else {
			fmt.Fprintf(a.stderr, "Error: %v\n", err)
		}
		return exitFail
	}
	return exitOK
}

func (a *app) runInteractive([]string) int {
	cfg := a.loadConfig()
	logger, closeLogger := a.newLogger(cfg)
	defer closeLogger()

	logger.Info("app.started", "TUI started", map[string]interface{}{
		"version": version,
	})

	if err := a.runTUI(tui.NewModel(logger, a.newQuery(logger), cfg.Report.Path)); err != nil {
		logger.Error("app.error", "Application error", map[string]interface{}{
			"error": err.Error(),
		})
		fmt.Fprintf(a.stderr, "Error running TUI: %v\n", err)
		return exitFail
	}
	return exitOK
}

func (a *app) runConfig(args []string) int {
	if len(args) < 1 {
		fmt.Fprintf(a.stderr, "Usage: gpuprobe config <subcommand>\n")
		fmt.Fprintf(a.stderr, "Subcommands:\n")
		fmt.Fprintf(a.stderr, "  test [path]  Test configuration file for validity\n")
		return exitUsage
	}

	switch strings.ToLower(args[0]) {
	case "test":
		return a.runConfigTest(args[1:])
	default:
		fmt.Fprintf(a.stderr, "Unknown config subcommand: %s\n", args[0])
		fmt.Fprintf(a.stderr, "Valid subcommands: test\n")
		return exitUsage
	}
}

func (a *app) runConfigTest(args []string) int {
	logger := logging.NewLoggerWithWriter(logging.LevelInfo, a.stderr)

	var cfg config.Config
	var configErr error

	if len(args) > 0 {
		fmt.Fprintf(a.stdout, "Testing configuration file: %s\n", args[0])
		cfg, configErr = config.LoadFrom(args[0])
	} else {
		fmt.Fprintln(a.stdout, "Testing configuration (system + user merge):")
		fmt.Fprintf(a.stdout, "  System config: %s\n", config.SystemConfigPath())
		if userPath := config.UserConfigPath(); userPath != "" {
			fmt.Fprintf(a.stdout, "  User config:   %s\n", userPath)
		}
		fmt.Fprintln(a.stdout)
		cfg, configErr = config.Load()
	}

	if configErr != nil {
		fmt.Fprintf(a.stderr, "❌ Configuration validation FAILED:\n")
		fmt.Fprintf(a.stderr, "   %v\n", configErr)
		logger.Error("config.validation.error", "Configuration validation failed", map[string]interface{}{
			"error": configErr.Error(),
		})
		return exitFail
	}

	logFile := cfg.Logging.File
	if logFile == "" {
		logFile = "(stderr)"
	}

	fmt.Fprintln(a.stdout, "✓ Configuration is VALID")
	fmt.Fprintln(a.stdout)
	fmt.Fprintln(a.stdout, "Configuration Summary:")
	fmt.Fprintf(a.stdout, "  Log Level:    %s\n", cfg.Logging.Level)
	fmt.Fprintf(a.stdout, "  Log File:     %s\n", logFile)
	fmt.Fprintf(a.stdout, "  Report Path:  %s\n", cfg.Report.Path)
	return exitOK
}

// loadConfig falls back to defaults when the merged config cannot be used.
func (a *app) loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(a.stderr, "Warning: Could not load configuration: %v\n", err)
		return config.DefaultConfig()
	}
	return cfg
}

func (a *app) newLogger(cfg config.Config) (*logging.Logger, func()) {
	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logging.LevelInfo
	}

	if cfg.Logging.File == "" {
		return logging.NewLoggerWithWriter(level, a.stderr), func() {}
	}

	logger, err := logging.NewFileLogger(level, cfg.Logging.File)
	if err != nil {
		fmt.Fprintf(a.stderr, "Warning: %v; logging to stderr\n", err)
		return logging.NewLoggerWithWriter(level, a.stderr), func() {}
	}
	return logger, func() {
		if cerr := logger.Close(); cerr != nil {
			fmt.Fprintf(a.stderr, "Warning: failed to close log file: %v\n", cerr)
		}
	}
}

func (a *app) printUsage() {
	fmt.Fprintf(a.stdout, `gpuprobe - GPU availability check (version %s)

Usage:
  gpuprobe                     Check for a GPU (same as 'check')
  gpuprobe check [--save]      Check for a GPU; exit 0 if one is visible, 1 otherwise
  gpuprobe tui                 Interactive status view (r: re-run, s: save, q: quit)
  gpuprobe config test [path]  Test configuration file for validity
  gpuprobe version             Print version information
  gpuprobe help                Show this help message

Environment:
  GPUPROBE_CONFIG_DIR          System configuration directory (default /etc/gpuprobe)
  GPUPROBE_DISABLE_NVML=1      Skip NVML and report no GPU

NVML support requires building with -tags cuda.
`, version)
}

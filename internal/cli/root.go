package cli

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nissyi-gh/tasksplit/internal/app"
	"github.com/nissyi-gh/tasksplit/internal/breakdown"
	"github.com/nissyi-gh/tasksplit/internal/clock"
	"github.com/nissyi-gh/tasksplit/internal/config"
	"github.com/nissyi-gh/tasksplit/internal/store"
	"github.com/nissyi-gh/tasksplit/internal/ui"
)

var (
	cfgFile string
	dbPath  string
	rootCmd *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:   "tasksplit",
		Short: "tasksplit - break big tasks into small steps",
		Long: `tasksplit is a terminal task tracker. Big tasks are broken down into
steps, every step has its own timer, and a short list of daily habits
resets every morning.`,
		RunE:          runTUI, // Default action is the TUI
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default $XDG_CONFIG_HOME/tasksplit/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (overrides db_path)")
}

// Execute runs the root command
func Execute(version string) error {
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(promptCmd)

	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// env is everything a command needs once configuration is resolved.
type env struct {
	cfg     config.Config
	blobs   *store.BlobStore
	session *app.Session
	logger  *log.Logger
	logFile io.Closer
}

func (e *env) Close() {
	e.session.Close()
	if err := e.blobs.Close(); err != nil {
		e.logger.Printf("close db: %v", err)
	}
	if e.logFile != nil {
		e.logFile.Close()
	}
}

// openEnv loads config, opens the database and starts a session. ticker
// may be nil for one-shot commands that never run timers.
func openEnv(ticker func(*log.Logger) clock.Ticker) (*env, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}

	e := &env{cfg: cfg, logger: log.New(io.Discard, "", 0)}
	if cfg.DebugLog != "" {
		f, err := tea.LogToFile(cfg.DebugLog, "tasksplit")
		if err != nil {
			return nil, fmt.Errorf("open debug log: %w", err)
		}
		e.logFile = f
		e.logger = log.Default()
	}

	blobs, err := store.Open(cfg.DBPath)
	if err != nil {
		if e.logFile != nil {
			e.logFile.Close()
		}
		return nil, err
	}
	e.blobs = blobs

	var tk clock.Ticker
	if ticker != nil {
		tk = ticker(e.logger)
	}
	session, err := app.Open(blobs, tk, app.Options{
		Engine: breakdown.NewEngine(cfg.BreakdownDelay, cfg.TemplateDelay),
		Logger: e.logger,
	})
	if err != nil {
		blobs.Close()
		if e.logFile != nil {
			e.logFile.Close()
		}
		return nil, err
	}
	e.session = session
	return e, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	var p *tea.Program
	e, err := openEnv(func(logger *log.Logger) clock.Ticker {
		// Ticks are handed to the program so that all state changes happen
		// on its loop.
		return clock.NewCronTicker(func(gen uint64) { p.Send(ui.TickMsg{Gen: gen}) }, logger)
	})
	if err != nil {
		return err
	}
	defer e.Close()

	p = tea.NewProgram(ui.NewModel(e.session), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}

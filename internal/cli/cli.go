// Package cli wires configuration, logging and storage behind the daybook
// command tree. Running daybook without a subcommand opens the terminal UI.
package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sadopc/daybook/internal/clock"
	"github.com/sadopc/daybook/internal/config"
	"github.com/sadopc/daybook/internal/logger"
	"github.com/sadopc/daybook/internal/store"
	"github.com/sadopc/daybook/internal/todo"
	"github.com/sadopc/daybook/internal/tui"
)

// Version is overridden at build time with -ldflags "-X ...cli.Version=...".
var Version = "dev"

var _ todo.KV = (*store.Store)(nil)

// env holds what a command needs once it has opened the data file.
type env struct {
	cfgFile string
	clock   clock.Clock

	cfg   *config.Config
	log   *logger.Logger
	kv    *store.Store
	todos *todo.Store
}

func (e *env) open() error {
	cfg, err := config.Load(e.cfgFile)
	if err != nil {
		return err
	}

	base, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	// one session id per invocation
	log := base.With("session", uuid.NewString())

	kv, err := store.New(cfg.Data.Path)
	if err != nil {
		log.Sync()
		return fmt.Errorf("open database: %w", err)
	}

	todos, err := todo.Open(kv, e.clock, log.SugaredLogger)
	if err != nil {
		kv.Close()
		log.Sync()
		return err
	}

	log.Debugw("store opened", "path", cfg.Data.Path, "tasks", len(todos.Tasks()))
	e.cfg, e.log, e.kv, e.todos = cfg, log, kv, todos
	return nil
}

func (e *env) close() {
	if e.kv != nil {
		e.kv.Close()
	}
	if e.log != nil {
		e.log.Sync()
	}
}

// NewRootCommand builds the daybook command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(clock.Real{})
}

func newRootCommand(clk clock.Clock) *cobra.Command {
	e := &env{clock: clk}

	root := &cobra.Command{
		Use:           "daybook",
		Short:         "A TODO list with due dates and a daily fortune",
		Long:          "daybook keeps a TODO list with optional due dates and draws a fortune for every calendar day.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(e)
		},
	}
	root.PersistentFlags().StringVar(&e.cfgFile, "config", "", "config file (default <config dir>/daybook/config.yaml)")

	root.AddCommand(newFortuneCommand(e))
	root.AddCommand(newTodoCommand(e))
	root.AddCommand(newExportCommand(e))
	root.AddCommand(newStoreCommand(e))
	root.AddCommand(newVersionCommand())
	return root
}

func runUI(e *env) error {
	if err := e.open(); err != nil {
		return err
	}
	defer e.close()

	app := tui.NewApp(e.todos, e.kv, e.clock, e.log.With("component", "tui").SugaredLogger)

	var opts []tea.ProgramOption
	if e.cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}

	e.log.Infow("starting ui")
	if _, err := tea.NewProgram(app, opts...).Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print daybook version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "daybook %s\n", Version)
		},
	}
}

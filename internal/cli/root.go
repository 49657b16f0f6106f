// Package cli implements the rcleaner command tree.
package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/RiPetitor/rCleaner/internal/config"
	"github.com/RiPetitor/rCleaner/internal/logger"
	"github.com/RiPetitor/rCleaner/internal/tui"
	"github.com/RiPetitor/rCleaner/internal/userconfig"
	"github.com/RiPetitor/rCleaner/internal/version"
)

// initLogger is swapped in tests.
var initLogger = logger.Init

type rootOptions struct {
	configPath string
	level      string
	debug      bool

	// newApp is swapped in tests.
	newApp func(*config.Config) (*App, error)
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadWithLists(o.configPath, config.WhitelistPath(), config.BlacklistPath())
	if err != nil {
		return nil, err
	}
	if o.level != "" {
		return cfg.WithLevel(o.level)
	}
	return cfg, nil
}

func (o *rootOptions) app() (*App, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return o.newApp(cfg)
}

// NewRootCommand builds the full command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{newApp: NewApp}
	return newRootCommand(opts)
}

func newRootCommand(opts *rootOptions) *cobra.Command {
	root := &cobra.Command{
		Use:   "rcleaner",
		Short: "Reclaim disk space on Linux, safely",
		Long: `rcleaner finds caches, temp files, rotated logs, orphaned packages,
old kernels and unused application images, lets you pick what to remove,
and backs everything up before deleting it.

Run without a subcommand to open the interactive UI.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initLogger(opts.debug); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: logging disabled: %v\n", err)
			}
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			logger.Close()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal(os.Stdout) {
				return cmd.Help()
			}
			app, err := opts.app()
			if err != nil {
				return err
			}
			return runTUI(app)
		},
	}
	root.SetVersionTemplate(version.String() + "\n")

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", config.DefaultPath(), "Path to the config file")
	flags.StringVar(&opts.level, "level", "", "Override the safety level (safe, aggressive)")
	flags.BoolVar(&opts.debug, "debug", false, "Write debug logs to "+logger.Path())

	root.AddCommand(
		newScanCommand(opts),
		newCleanCommand(opts),
		newBackupCommand(opts),
		newRollbackCommand(opts),
		newConfigCommand(opts),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

func runTUI(app *App) error {
	userCfg, err := userconfig.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load user config: %v\n", err)
		userCfg = nil
	}

	p := tea.NewProgram(
		tui.NewModel(tui.Options{
			Engine:      app.Service,
			Cache:       app.Cache,
			UserConfig:  userCfg,
			AutoConfirm: app.Config.CurrentProfile().AutoConfirm,
			Version:     version.Version,
		}),
		tea.WithAltScreen(),
	)
	_, err = p.Run()
	return err
}

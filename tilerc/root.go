package main

import (
	"os/exec"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/vhal/tilerc/logging"
	"github.com/vhal/tilerc/output"
	"github.com/vhal/tilerc/settings"
	"github.com/vhal/tilerc/spawn"
	"github.com/vhal/tilerc/terminal"
	"github.com/vhal/tilerc/wmconf"
)

// app carries the flags and the outside-world hooks shared by every
// subcommand.
type app struct {
	verbosity    int
	settingsPath string
	formatFlag   string
	format       output.Format

	lookPath     terminal.LookPathFunc
	spawn        spawn.Func
	setupLogging func(verbosity int)
}

func newRootCmd() *cobra.Command {
	return newApp().rootCmd()
}

func newApp() *app {
	return &app{
		lookPath:     exec.LookPath,
		spawn:        spawn.Start,
		setupLogging: logging.Setup,
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tilerc",
		Short: "Build, check and run a tiling window manager configuration",
		Long: `tilerc builds a tiling window manager configuration from a few settings
and prints, checks or runs it. See "go doc github.com/vhal/tilerc/tilerc".`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.setupLogging(a.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")

			f, err := output.ParseFormat(a.formatFlag)
			if err != nil {
				return err
			}
			a.format = f
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	root.PersistentFlags().StringVar(&a.settingsPath, "settings", "", "Settings file (default "+settings.DefaultPath()+")")
	root.PersistentFlags().StringVar(&a.formatFlag, "format", "yaml", "Output format for dump: yaml, json or toml")

	root.AddCommand(
		a.dumpCmd(),
		a.checkCmd(),
		a.keysCmd(),
		a.paletteCmd(),
		a.runCmd(),
		a.versionCmd(),
	)
	return root
}

// load reads the settings and builds the configuration for backend.
func (a *app) load(backend func() string) (*wmconf.Config, settings.Settings, error) {
	defer logging.LogDuration(log.Logger, time.Now(), "load configuration")

	s, err := settings.Load(a.settingsPath)
	if err != nil {
		return nil, settings.Settings{}, err
	}
	if s.File != "" {
		log.Debug().Str("path", s.File).Msg("Loaded settings")
	}

	term := s.Terminal
	if term == "" {
		term = terminal.Guess(a.lookPath)
		log.Debug().Str("terminal", term).Msg("Guessed terminal")
	}
	cfg := wmconf.Build(wmconf.Env{
		Settings:          s,
		Terminal:          term,
		Backend:           backend,
		DefaultFloatRules: wmconf.DefaultFloatRules(),
		Spawn:             a.spawn,
	})
	return cfg, s, nil
}

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vhal/tilerc/dispatch"
	"github.com/vhal/tilerc/doctor"
	"github.com/vhal/tilerc/hook"
	"github.com/vhal/tilerc/logging"
	"github.com/vhal/tilerc/output"
	"github.com/vhal/tilerc/wmconf"
	"github.com/vhal/tilerc/xhost"
)

// styled reports whether w is a terminal that wants color.
func styled(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && output.Styled(f)
}

func (a *app) dumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print the built configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := a.load(xhost.BackendName)
			if err != nil {
				return err
			}
			return output.Print(cmd.OutOrStdout(), cfg, a.format)
		},
	}
}

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the configuration and the files it refers to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, s, err := a.load(xhost.BackendName)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			defects := wmconf.Defects(wmconf.Validate(cfg))
			for _, d := range defects {
				fmt.Fprintf(out, "error %s\n", d)
			}
			findings := doctor.Run(cfg, s.Autostart, a.lookPath)
			for _, f := range findings {
				fmt.Fprintln(out, f)
			}

			if len(defects) > 0 {
				return fmt.Errorf("%d configuration error(s)", len(defects))
			}
			fmt.Fprintf(out, "configuration ok, %d warning(s)\n", doctor.Failed(findings))
			return nil
		},
	}
}

func (a *app) keysCmd() *cobra.Command {
	var markdown bool
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "List the key and mouse bindings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := a.load(xhost.BackendName)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !markdown {
				return output.KeyTable(out, cfg, styled(out))
			}
			text, err := output.RenderMarkdown(output.Cheatsheet(cfg), styled(out), 100)
			if err != nil {
				return err
			}
			_, err = io.WriteString(out, text)
			return err
		},
	}
	cmd.Flags().BoolVar(&markdown, "markdown", false, "Print a Markdown cheat sheet instead of a table")
	return cmd
}

func (a *app) paletteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "palette",
		Short: "Show the color table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return output.Swatches(cmd.OutOrStdout(), wmconf.Dracula(), styled(cmd.OutOrStdout()))
		},
	}
}

func (a *app) runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Grab the bindings on $DISPLAY and run the startup hooks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			// The log file is appended to across runs; the session id tells
			// them apart.
			session := uuid.NewString()
			h := &xhost.Host{
				Load:  a.loadValid,
				Hooks: hook.NewRegistry(),
				Exec:  dispatch.Local{Spawn: a.spawn, Log: logging.For("dispatch").With().Str("session", session).Logger()},
				Log:   logging.For("xhost").With().Str("session", session).Logger(),
			}
			return h.Run(ctx)
		},
	}
}

// loadValid builds the configuration for the X host and rejects it only for
// defects. Missing external programs are left to the check command.
func (a *app) loadValid() (*wmconf.Config, error) {
	cfg, _, err := a.load(xhost.BackendName)
	if err != nil {
		return nil, err
	}
	if err := wmconf.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "tilerc", version)
		},
	}
}

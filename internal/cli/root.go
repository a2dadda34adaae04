package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/idilsaglam/bucketlist/internal/auth"
	"github.com/idilsaglam/bucketlist/internal/config"
	"github.com/idilsaglam/bucketlist/internal/logging"
	"github.com/idilsaglam/bucketlist/internal/tui"
	"github.com/idilsaglam/bucketlist/internal/ui"
)

// UsageError marks bad invocations; the binary exits 2 for them.
type UsageError struct{ msg string }

func (e *UsageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &UsageError{msg: fmt.Sprintf(format, args...)}
}

// ExitCode maps an Execute error to a process exit code (0 ok, 1 error, 2 usage).
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ue *UsageError
	if errors.As(err, &ue) {
		return 2
	}
	return 1
}

// App carries the per-invocation state shared by all subcommands.
type App struct {
	Backend string
	DataDir string
	Theme   string
	Verbose bool
	NoColor bool

	cfg  *config.Config
	log  *zap.Logger
	auth *auth.Manager

	// interactive is set for the TUI, whose terminal must stay free of logs.
	interactive bool
}

func NewRootCmd() *cobra.Command {
	a := &App{}

	cmd := &cobra.Command{
		Use:           "bucketlist",
		Short:         "Track your bucket list from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  bucketlist

  # Scriptable commands
  bucketlist add "Visit the Northern Lights" --location Iceland --priority high
  bucketlist ls --filter pending
  bucketlist done 2
  bucketlist attach 1 ./aurora.jpg
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, a)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		a.interactive = cmd == cmd.Root()
		return a.setup()
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if a.log != nil {
			_ = a.log.Sync()
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&a.Backend, "backend", "", "Storage backend (json|sqlite|demo); overrides BUCKETLIST_BACKEND")
	cmd.PersistentFlags().StringVar(&a.DataDir, "data-dir", "", "Data directory; overrides BUCKETLIST_DATA_DIR")
	cmd.PersistentFlags().StringVar(&a.Theme, "theme", "", "Output theme (classic|neon|mono)")
	cmd.PersistentFlags().BoolVarP(&a.Verbose, "verbose", "v", false, "Log to stderr")
	cmd.PersistentFlags().BoolVar(&a.NoColor, "no-color", false, "Disable colored output")

	cmd.AddCommand(newListCmd(a))
	cmd.AddCommand(newAddCmd(a))
	cmd.AddCommand(newEditCmd(a))
	cmd.AddCommand(newDoneCmd(a))
	cmd.AddCommand(newRemoveCmd(a))
	cmd.AddCommand(newAttachCmd(a))
	cmd.AddCommand(newAuthCmd(a))

	return cmd
}

func (a *App) setup() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.Backend != "" {
		cfg.Backend = a.Backend
	}
	if a.DataDir != "" {
		cfg.DataDir = a.DataDir
	}
	if a.Theme != "" {
		cfg.Theme = a.Theme
	}
	if err := cfg.Validate(); err != nil {
		return usagef("%v", err)
	}
	a.cfg = cfg
	ui.SetTheme(cfg.Theme)
	if a.NoColor {
		ui.SetColorForcing(false, true)
	}

	log, err := logging.New(logging.Options{
		Production: cfg.IsProduction(),
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		Quiet:      a.interactive || !a.Verbose,
	})
	if err != nil {
		return err
	}
	a.log = log

	a.auth = &auth.Manager{Dir: cfg.CredentialsDir, Secret: []byte(cfg.JWTSecret)}
	return nil
}

func runTUI(cmd *cobra.Command, a *App) error {
	user, err := a.identity()
	if err != nil {
		return err
	}
	st, closeFn, err := a.openApp(user.Username)
	if err != nil {
		return err
	}
	defer closeFn()

	return tui.Run(cmd.Context(), st, tui.Options{
		SignOut: a.auth.Logout,
	})
}

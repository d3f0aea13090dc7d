// Package cli implements the relbump command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/relbump/relbump/internal/build"
	"github.com/relbump/relbump/internal/config"
	clierrors "github.com/relbump/relbump/internal/errors"
	"github.com/relbump/relbump/internal/logging"
	"github.com/relbump/relbump/internal/progress"
)

// Command groups shown in help output.
const (
	GroupRelease = "release"
	GroupSetup   = "setup"
)

// skipConfigAnnotation marks commands that run without loading the configuration.
const skipConfigAnnotation = "relbump/skip-config"

// app holds the state shared by all commands of one invocation.
type app struct {
	fs   afero.Fs
	now  func() time.Time
	caps progress.TerminalCapabilities
	// skipUserConfig ignores ~/.config/relbump/config.yml.
	skipUserConfig bool

	configPath string
	logLevel   string
	logFormat  string
	plain      bool

	cfg    *config.Configuration
	logger *slog.Logger
}

func newApp() *app {
	return &app{
		fs:     afero.NewOsFs(),
		now:    time.Now,
		caps:   progress.DetectTerminalCapabilities(),
		logger: logging.Discard(),
	}
}

// NewRootCmd creates the relbump command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(newApp())
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "relbump",
		Short: "Release automation for versioned repositories",
		Long: `relbump decides and applies version bumps.

It reads the release notes written in a commit message, decides whether the
change is a major, minor or patch release, computes the next version and
writes it into every configured file and changelog.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (RELBUMP_*)
  2. Project config (.relbump/config.yml)
  3. User config (~/.config/relbump/config.yml)
  4. Built-in defaults`,
		Example: `  # Check the release notes of the last commit
  git log -1 --format=%B | relbump changelog

  # Preview a minor release
  relbump bump --minor --dry-run

  # Start the beta phase of a prerelease
  relbump bump --beta`,
		Version:       build.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to the project config file (default: .relbump/config.yml)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Set the log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "Set the log format ("+strings.Join(logging.Formats(), ", ")+")")
	cmd.PersistentFlags().BoolVar(&a.plain, "plain", false, "Plain output without colors or icons")

	if err := cmd.MarkPersistentFlagFilename("config", "yml", "yaml", "json"); err != nil {
		panic(err)
	}

	cmd.AddGroup(
		&cobra.Group{ID: GroupRelease, Title: "Release Commands:"},
		&cobra.Group{ID: GroupSetup, Title: "Setup Commands:"},
	)

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return clierrors.Wrap(err, clierrors.Argument, "Run 'relbump --help' for the list of flags")
	})

	cmd.PersistentPreRunE = func(cc *cobra.Command, _ []string) error {
		return a.setup(cc)
	}

	cmd.AddCommand(
		newBumpCmd(a),
		newChangelogCmd(a),
		newNextCmd(a),
		newAlphaCmd(a),
		newHistoryCmd(a),
		newConfigCmd(a),
		newDoctorCmd(a),
		newVersionCmd(a),
	)

	return cmd
}

// setup checks the global flags, loads the configuration and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	var merr *multierror.Error
	if a.logLevel != "" {
		if _, err := logging.ParseLevel(a.logLevel); err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	if a.logFormat != "" {
		if _, err := logging.ParseFormat(a.logFormat); err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	if err := merr.ErrorOrNil(); err != nil {
		return clierrors.Wrap(err, clierrors.Argument,
			"Valid log levels: debug, info, warn, error",
			"Valid log formats: "+strings.Join(logging.Formats(), ", "),
		)
	}

	level, format := "warn", logging.FormatText
	if cmd.Annotations[skipConfigAnnotation] == "" {
		cfg, err := config.LoadWithOptions(config.LoadOptions{
			ProjectConfigPath: a.configPath,
			SkipUserConfig:    a.skipUserConfig,
			WarningWriter:     cmd.ErrOrStderr(),
		})
		if err != nil {
			return clierrors.Wrap(err, clierrors.Configuration,
				"Run 'relbump config init' to create a project config",
				"Check the file passed with --config",
			)
		}
		a.cfg = cfg
		level, format = cfg.LogLevel, cfg.LogFormat
	}
	if a.logLevel != "" {
		level = a.logLevel
	}
	if a.logFormat != "" {
		format = a.logFormat
	}

	logger, err := logging.New(cmd.ErrOrStderr(), level, format)
	if err != nil {
		return clierrors.Wrap(err, clierrors.Configuration)
	}
	a.logger = logger
	slog.SetDefault(logger)

	logger.Debug("configuration loaded", slog.Any("sources", a.sources()))
	return nil
}

// usePlain reports whether output should go without colors.
func (a *app) usePlain() bool {
	return a.plain || !a.caps.SupportsColor
}

func (a *app) sources() []string {
	if a.cfg == nil {
		return nil
	}
	out := make([]string, 0, len(a.cfg.Sources))
	for _, s := range a.cfg.Sources {
		if s.Path != "" {
			out = append(out, fmt.Sprintf("%s (%s)", s.Kind, s.Path))
			continue
		}
		out = append(out, string(s.Kind))
	}
	return out
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := newApp()
	cmd := newRootCmd(a)
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Err != nil {
		clierrors.FprintAny(cmd.ErrOrStderr(), err, a.usePlain())
	}
	return ExitCode(err)
}

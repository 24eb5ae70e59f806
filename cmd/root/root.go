// Package root contains the root command for the application
package root

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"fjacquet/income-categories/internal/api"
	"fjacquet/income-categories/internal/config"
	"fjacquet/income-categories/internal/container"
	"fjacquet/income-categories/internal/logging"
	"fjacquet/income-categories/internal/report"
	"fjacquet/income-categories/internal/validation"

	"github.com/spf13/cobra"
)

// GlobalFlags are the persistent flags shared by every command.
type GlobalFlags struct {
	ConfigFile string
	LogLevel   string
	LogFormat  string
	Output     string
	BaseURL    string
}

var (
	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "income-categories",
		Short: "Manage income categories through the budget API.",
		Long: `income-categories lists, shows, creates, edits and deletes income
categories on a remote budget API, reporting each outcome as a notification.`,
		SilenceUsage:      true,
		PersistentPreRunE:  setup,
		PersistentPostRunE: teardown,
	}

	// Flags holds the parsed persistent flags.
	Flags = GlobalFlags{}

	// LoggerOverride, when set, replaces the configured logger. Tests use it.
	LoggerOverride logging.Logger

	app *container.Container
)

// Init registers the persistent flags on the root command.
func Init() {
	pf := Cmd.PersistentFlags()
	pf.StringVar(&Flags.ConfigFile, "config", "", "Config file (default searches ./config.yaml, .income-categories/, $HOME/.income-categories/)")
	pf.StringVar(&Flags.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&Flags.LogFormat, "log-format", "", "Log format: text or json")
	pf.StringVarP(&Flags.Output, "output", "o", "", "Output format: table, json, yaml, csv")
	pf.StringVar(&Flags.BaseURL, "base-url", "", "Base URL of the budget API")
}

func setup(cmd *cobra.Command, args []string) error {
	if _, err := config.LoadEnv(); err != nil {
		return err
	}

	cfg, err := config.InitializeConfig(Flags.ConfigFile)
	if err != nil {
		return err
	}
	applyFlags(cfg)
	if err := validation.IsValidOutputFormat(cfg.Output.Format); err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	var opts []container.Option
	if LoggerOverride != nil {
		opts = append(opts, container.WithLogger(LoggerOverride))
	}
	c, err := container.NewContainer(cfg, opts...)
	if err != nil {
		return err
	}
	if app != nil {
		_ = app.Close()
	}
	app = c
	return nil
}

// teardown closes the container built by setup once the command finished.
func teardown(cmd *cobra.Command, args []string) error {
	if app == nil {
		return nil
	}
	err := app.Close()
	app = nil
	return err
}

func applyFlags(cfg *config.Config) {
	if Flags.LogLevel != "" {
		cfg.Log.Level = Flags.LogLevel
	}
	if Flags.LogFormat != "" {
		cfg.Log.Format = Flags.LogFormat
	}
	if Flags.Output != "" {
		cfg.Output.Format = Flags.Output
	}
	if Flags.BaseURL != "" {
		cfg.API.BaseURL = Flags.BaseURL
	}
}

// Action adapts an operation into a cobra RunE. Notifications queued by the
// operation are printed to stderr whether it succeeded or not.
func Action(fn func(ctx context.Context, app *container.Container, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if app == nil {
			return errors.New("application not initialized")
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		err := fn(ctx, app, cmd, args)
		if werr := report.WriteNotifications(cmd.ErrOrStderr(), app.GetNotifications().Drain()); werr != nil && err == nil {
			err = werr
		}
		return err
	}
}

// OutputFormat returns the effective output format.
func OutputFormat() string {
	return app.GetConfig().Output.Format
}

// ParseID parses a category id argument.
func ParseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid income category id %q: must be a positive integer", arg)
	}
	return id, nil
}

// WriteFieldErrors prints the validation messages of a rejected form.
func WriteFieldErrors(w io.Writer, err error, fe validation.FieldErrors) {
	if !errors.Is(err, api.ErrValidation) {
		return
	}
	for _, field := range fe.Fields() {
		for _, msg := range fe[field] {
			fmt.Fprintf(w, "  %s: %s\n", field, msg)
		}
	}
}

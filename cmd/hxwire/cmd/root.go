package cmd

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/solatis/hxwire/internal/core/config"
	"github.com/solatis/hxwire/internal/core/logging"
	"github.com/solatis/hxwire/internal/types"
	"github.com/spf13/cobra"
)

// app is the state shared by every subcommand, filled in by the root
// command's pre-run hook.
type app struct {
	configFile string
	logLevel   string
	logFormat  string

	cfg    *config.Config
	logger zerolog.Logger
}

// NewRootCmd builds the hxwire command tree.
func NewRootCmd() *cobra.Command {
	a := &app{logger: zerolog.Nop()}

	rootCmd := &cobra.Command{
		Use:   "hxwire",
		Short: "Typed codec for htmx request and response headers",
		Long: `hxwire converts between raw htmx headers and their typed form.
It decodes header blocks into JSON or YAML documents and encodes such
documents back into header-safe lines.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", "config file path (yaml, toml or json)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "log level (trace, debug, info, warn, error, disabled)")
	rootCmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "text", "log format (json, text)")

	rootCmd.AddCommand(
		newDecodeCmd(a),
		newEncodeCmd(a),
		newFieldsCmd(a),
	)
	return rootCmd
}

// Execute runs the command tree against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// setup loads the configuration, applies flag overrides and builds the
// logger. Logs go to stderr so stdout carries only command output.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(a.configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = a.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	a.cfg = cfg
	a.logger = logger
	a.logger.Debug().
		Str("config", a.configFile).
		Str("output_format", cfg.OutputFormat).
		Str("input_format", cfg.InputFormat).
		Msg("configuration loaded")
	return nil
}

// directionFlag parses the --direction value shared by decode and encode.
func directionFlag(s string) (types.Direction, error) {
	switch s {
	case "request":
		return types.DirectionRequest, nil
	case "response":
		return types.DirectionResponse, nil
	}
	return 0, fmt.Errorf("--direction must be request or response, got %q", s)
}

package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dshills/opentext/internal/app"
	"github.com/dshills/opentext/internal/config"
)

// Flag annotations naming the config settings a flag affects.
const (
	// configAnnotation marks a flag that overrides a config setting.
	configAnnotation = "opentext/config"
	// disablesAnnotation lists boolean settings a given flag turns off.
	disablesAnnotation = "opentext/disables"
)

var (
	cfgFile   string
	inputFile string

	application *app.Application
)

var rootCmd = &cobra.Command{
	Use:   "opentext",
	Short: "Codepoint-aware text operations",
	Long: `opentext reads UTF-8 (or UTF-32) text from a file or standard input,
applies one operation counted in codepoints and writes the result.

Settings come from built-in defaults, an optional TOML or YAML file,
OPENTEXT_* environment variables and finally the command line flags.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command until it finishes or a signal arrives.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (.toml, .yaml or .yml)")
	pf.StringVarP(&inputFile, "input", "i", "", "input file (default: standard input)")
	pf.String("log-level", "", "log level: debug, info, warn or error")
	pf.String("encoding", "", "input encoding: utf-8, utf-32le or utf-32be")
	pf.String("allocator", "", "buffer allocator: heap or pool")

	bindConfig(pf, "log-level", "log.level")
	bindConfig(pf, "encoding", "input.encoding")
	bindConfig(pf, "allocator", "engine.allocator")
}

// bindConfig makes flag override the setting at path when given.
func bindConfig(fs *pflag.FlagSet, flag, path string) {
	if err := fs.SetAnnotation(flag, configAnnotation, []string{path}); err != nil {
		panic(err)
	}
}

// disablesConfig makes flag turn off the boolean setting at path when given,
// unless another flag sets it explicitly.
func disablesConfig(fs *pflag.FlagSet, flag, path string) {
	if err := fs.SetAnnotation(flag, disablesAnnotation, []string{path}); err != nil {
		panic(err)
	}
}

// setup loads the configuration, layers the changed flags on top and
// builds the application.
func setup(cmd *cobra.Command, _ []string) error {
	var opts []config.Option
	if cfgFile != "" {
		opts = append(opts, config.WithFile(cfgFile))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		return err
	}

	if err := applyFlags(cmd.Flags(), cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	application, err = app.New(app.Options{Config: cfg})
	return err
}

// applyFlags layers the changed flags over cfg. Disabled settings are applied
// first so an explicit flag for the same setting wins.
func applyFlags(fs *pflag.FlagSet, cfg *config.Config) error {
	var errs []error
	fs.Visit(func(f *pflag.Flag) {
		for _, path := range f.Annotations[disablesAnnotation] {
			errs = append(errs, cfg.Set(path, false))
		}
	})
	fs.Visit(func(f *pflag.Flag) {
		for _, path := range f.Annotations[configAnnotation] {
			errs = append(errs, cfg.Set(path, flagValue(f)))
		}
	})
	return errors.Join(errs...)
}

func flagValue(f *pflag.Flag) any {
	if f.Value.Type() == "bool" {
		b, err := strconv.ParseBool(f.Value.String())
		if err == nil {
			return b
		}
	}
	return f.Value.String()
}

// runOp applies op to the --input file or standard input.
func runOp(cmd *cobra.Command, op app.Op) error {
	out := cmd.OutOrStdout()
	if inputFile != "" {
		return application.RunFile(cmd.Context(), op, inputFile, out)
	}
	return application.Run(cmd.Context(), op, app.StdinTarget, cmd.InOrStdin(), out)
}

// opCommand builds a subcommand that parses its arguments with ParseOp.
func opCommand(use, short string, args cobra.PositionalArgs) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := application.ParseOp(cmd.Name(), args)
			if err != nil {
				return err
			}
			return runOp(cmd, op)
		},
	}
}

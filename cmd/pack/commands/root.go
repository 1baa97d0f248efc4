// Package commands implements the CLI commands for the pack bundler.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/pack/internal/app"
	"go.trai.ch/pack/internal/build"
	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/zerr"
)

// CLI represents the command line interface for pack.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, opts app.RunOptions) error
	Clean(ctx context.Context, opts app.RunOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	c := &CLI{app: a}

	rootCmd := &cobra.Command{
		Use:           domain.ToolName,
		Short:         "Bundle a JavaScript or TypeScript package into every module format it ships",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := runOptions(cmd)
			if err != nil {
				return err
			}
			return c.app.Run(cmd.Context(), opts)
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	persistent := rootCmd.PersistentFlags()
	persistent.Bool("debug", false, "Log debug output and dump the resolved configuration")
	persistent.StringP("mode", "m", "", "Build mode: development or production")
	persistent.StringP("target", "t", "", "Build target: node or browser")
	persistent.StringP("cwd", "C", ".", "Project root directory")

	flags := rootCmd.Flags()
	flags.BoolP("watch", "w", false, "Rebuild on source and configuration changes")
	flags.StringSliceP("format", "f", nil, "Output formats: esm, cjs, amd, iife, umd, sys, dts")
	flags.StringP("primary", "p", "", "Format written with the plain .js extension, or false")

	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	c.rootCmd = rootCmd
	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// runOptions converts the flags that were set into configuration overrides.
func runOptions(cmd *cobra.Command) (app.RunOptions, error) {
	flags := cmd.Flags()
	debug, _ := flags.GetBool("debug")
	cwd, _ := flags.GetString("cwd")

	opts := app.RunOptions{
		Cwd:   cwd,
		Debug: debug || os.Getenv("DEBUG") != "",
	}
	overrides := &opts.Overrides

	if flags.Changed("mode") {
		value, _ := flags.GetString("mode")
		mode := domain.Mode(value)
		if !mode.Valid() {
			return opts, zerr.With(domain.ErrInvalidMode, "mode", value)
		}
		overrides.Mode = &mode
	}

	if flags.Changed("target") {
		value, _ := flags.GetString("target")
		target := domain.Target(value)
		if !target.Valid() {
			return opts, zerr.With(domain.ErrInvalidTarget, "target", value)
		}
		overrides.Target = &target
	}

	if flags.Lookup("watch") != nil && flags.Changed("watch") {
		watch, _ := flags.GetBool("watch")
		overrides.Watch = &watch
	}

	if flags.Lookup("format") != nil && flags.Changed("format") {
		values, _ := flags.GetStringSlice("format")
		for _, value := range values {
			format := domain.Format(value)
			if !format.Valid() {
				return opts, zerr.With(domain.ErrInvalidFormat, "format", value)
			}
			overrides.Format = append(overrides.Format, format)
		}
	}

	if flags.Lookup("primary") != nil && flags.Changed("primary") {
		value, _ := flags.GetString("primary")
		if value == "false" {
			overrides.Primary = &domain.Primary{Disabled: true}
		} else {
			format := domain.Format(value)
			if !format.Valid() {
				return opts, zerr.With(domain.ErrInvalidFormat, "primary", value)
			}
			overrides.Primary = &domain.Primary{Format: format}
		}
	}

	return opts, nil
}

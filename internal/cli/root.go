// Package cli provides the cobra command tree of the mentions binary.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/dshills/mentions/internal/app"
	"github.com/dshills/mentions/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
	trigger    string
	minChars   int
	scriptPath string
}

// options converts the flags into application options. min-chars only
// overrides the config when it was given.
func (f *globalFlags) options(cmd *cobra.Command) app.Options {
	opts := app.Options{
		ConfigPath: f.configPath,
		LogLevel:   f.logLevel,
		Trigger:    f.trigger,
		ScriptPath: f.scriptPath,
	}
	if cmd.Flags().Changed("min-chars") {
		n := f.minChars
		opts.MinChars = &n
	}
	return opts
}

// NewRootCommand creates the root mentions command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "mentions",
		Short: "Compose text with @-mention suggestions",
		Long: `mentions is a small terminal composer that tracks trigger spans such as
@ann as you type, offers completions for them and turns a chosen completion
into an inline mention.

Settings are read from a TOML or YAML config file, MENTIONS_* environment
variables and the flags below, later sources winning.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if flags.logLevel == "" {
				return
			}
			lc := logging.DefaultLoggerConfig()
			lc.Level = logging.ParseLogLevel(flags.logLevel)
			lc.Output = cmd.ErrOrStderr()
			logging.SetDefault(logging.NewLogger(lc))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "path to config file (.toml, .yaml)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVarP(&flags.trigger, "trigger", "t", "", "trigger character")
	pf.IntVarP(&flags.minChars, "min-chars", "m", 0, "minimum characters after the trigger")
	pf.StringVarP(&flags.scriptPath, "script", "s", "", "Lua script with mention hooks")

	rootCmd.AddCommand(newEditCommand(flags))
	rootCmd.AddCommand(newScanCommand(flags))
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}

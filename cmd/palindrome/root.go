package main

import (
	"github.com/baditaflorin/l"
	"github.com/spf13/cobra"

	"github.com/baditaflorin/go_palindrome/internal/config"
)

// globalOptions are shared by every subcommand.
type globalOptions struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:           "palindrome",
		Short:         "Check text for palindromes",
		Long:          "Check text for palindromes, ignoring case, whitespace and punctuation,\nand compare the speed of the available strategies.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a YAML configuration file")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log evaluations to stderr")

	cmd.AddCommand(
		newCheckCmd(opts),
		newStrategiesCmd(),
		newBenchCmd(opts),
	)
	return cmd
}

// load returns the validated configuration and, when verbose, a logger
// writing to the command's error stream. The logger is nil otherwise.
func (o *globalOptions) load(cmd *cobra.Command) (config.Config, l.Logger, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return config.Config{}, nil, err
	}
	if !o.verbose {
		return cfg, nil, nil
	}
	lg, err := config.NewLogger(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, lg, nil
}

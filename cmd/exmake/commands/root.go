// Package commands implements the exmake command-line surface: flag
// parsing into a domain.Config, with the --args tail and the -- target
// boundary handled ahead of the cobra-driven switch parsing, since neither
// is expressible as an ordinary pflag.
package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/exmake/internal/core/domain"
)

// CLI parses os.Args into a domain.Config via a single root cobra.Command.
// exmake has no subcommands: every switch applies to the one build the
// invocation describes.
type CLI struct {
	rootCmd *cobra.Command
	cfg     domain.Config
}

// New creates a CLI with every recognized switch registered as a flag.
func New() *CLI {
	c := &CLI{}
	c.rootCmd = &cobra.Command{
		Use:           "exmake [targets...]",
		Short:         "A scriptable, dependency-driven build tool",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, args []string) error {
			c.cfg.Targets = args
			return nil
		},
	}

	flags := c.rootCmd.Flags()
	flags.StringVarP(&c.cfg.Options.File, "file", "f", domain.DefaultFile, "entry script path")
	flags.BoolVarP(&c.cfg.Options.Loud, "loud", "l", false, "print a status line for every recipe invocation")
	flags.BoolVarP(&c.cfg.Options.Question, "question", "q", false, "check staleness only; run nothing")
	flags.IntVarP(&c.cfg.Options.Jobs, "jobs", "j", 1, "maximum number of concurrent recipe invocations")
	flags.BoolVarP(&c.cfg.Options.Time, "time", "t", false, "record a build timing trace")
	flags.BoolVarP(&c.cfg.Options.Clear, "clear", "c", false, "clear the cache before building")

	return c
}

// Parse parses head as the switches-and-targets portion of the command
// line (everything up to an --args/-a boundary the caller has already
// split off) and attaches tail as the opaque tail arguments.
func (c *CLI) Parse(head, tail []string) (domain.Config, error) {
	if head == nil {
		// cobra parses os.Args[1:] when handed nil args.
		head = []string{}
	}
	c.rootCmd.SetArgs(head)
	if err := c.rootCmd.Execute(); err != nil {
		return domain.Config{}, err
	}
	c.cfg.Args = tail
	return c.cfg, nil
}

package terminal

import (
	"io"
	"os"

	"github.com/de-tools/maturity-atlas/pkg/runtime/export"
	"github.com/de-tools/maturity-atlas/pkg/runtime/terminal/commands"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	output   io.Writer
	reporter *export.Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		output:   opts.Output,
		reporter: export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "maturity",
		Short:         "Legal IT maturity scoring tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(cli.output)

	cmd.AddCommand(commands.NewScoreCmd(cli.reporter))
	cmd.AddCommand(commands.NewFrameworkCmd())
	cmd.AddCommand(commands.NewControlsCmd())

	return cmd
}

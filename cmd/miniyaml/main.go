// Command miniyaml parses documents in the restricted YAML subset and
// converts, checks, validates or describes them.
//
// # Usage
//
//	miniyaml parse [--format json|yaml] [--indent N] [file ...]
//	miniyaml check [file ...]
//	miniyaml schema [-o out.json] [--strict] [file ...]
//	miniyaml validate --schema schema.json [file ...]
//	miniyaml diff [--color auto|always|never] [--exit-code] old new
//	miniyaml fields --field name [file ...]
//	miniyaml list --key name [file ...]
//	miniyaml version
//
// Every command reads standard input when no file is given, or when a file
// argument is "-".
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"go.jacobcolvin.com/miniyaml/log"
	"go.jacobcolvin.com/miniyaml/profile"
)

var (
	errReadInput   = errors.New("read input")
	errWriteOutput = errors.New("write output")
	errDocuments   = errors.New("invalid documents")
	errDiffers     = errors.New("documents differ")
)

func main() {
	profCfg := profile.NewConfig()
	prof := profCfg.NewProfiler()

	rootCmd := newRootCommand(os.Stdin, os.Stdout, os.Stderr, profCfg, prof)

	err := rootCmd.Execute()
	err = errors.Join(err, prof.Stop())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// newRootCommand builds the command tree. The profiler is started before
// any subcommand runs; stopping it is left to the caller.
func newRootCommand(
	stdin io.Reader,
	stdout, stderr io.Writer,
	profCfg *profile.Config,
	prof *profile.Profiler,
) *cobra.Command {
	logCfg := log.NewConfig()

	rootCmd := &cobra.Command{
		Use:   "miniyaml",
		Short: "Parse and inspect documents in a restricted YAML subset",
		Long: `miniyaml reads configuration documents written in a small, predictable
subset of YAML. Anchors, aliases, tags and merge keys are rejected with the
offending line instead of being interpreted.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			_, err := logCfg.Install(stderr)
			if err != nil {
				return err
			}

			return prof.Start()
		},
	}

	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	logCfg.RegisterFlags(rootCmd.PersistentFlags())
	profCfg.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		newParseCommand(),
		newCheckCommand(),
		newSchemaCommand(),
		newValidateCommand(),
		newDiffCommand(),
		newFieldsCommand(),
		newListCommand(),
		newVersionCommand(),
	)

	err := errors.Join(
		logCfg.RegisterCompletions(rootCmd),
		profCfg.RegisterCompletions(rootCmd),
	)
	if err != nil {
		fmt.Fprintf(stderr, "register completions: %v\n", err)
	}

	return rootCmd
}

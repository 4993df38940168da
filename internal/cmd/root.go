// Package cmd implements the command-line interface of the conformance
// test runner.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/erbsland-dev/elcl-conformance/internal/adapter"
	"github.com/erbsland-dev/elcl-conformance/internal/types"
)

// Process exit codes. Test failures and runner errors are told apart so CI
// pipelines can distinguish a non-conforming parser from a broken setup.
const (
	ExitSuccess      = 0
	ExitTestFailures = 1
	ExitError        = 2
)

// errTestsFailed signals that the run completed but at least one test case
// failed. It maps to ExitTestFailures instead of a printed error.
var errTestsFailed = errors.New("conformance test failed")

// Execute runs the CLI and returns the process exit code.
func Execute(version, commit, date string) int {
	rootCmd := newRootCmd(version)
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errTestsFailed) {
			return ExitTestFailures
		}
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return ExitError
	}
	return ExitSuccess
}

func newRootCmd(version string) *cobra.Command {
	opts := &runOptions{}

	rootCmd := &cobra.Command{
		Use:   "elcl-conformance [flags] <testadapter>",
		Short: "Conformance test runner for the Erbsland Configuration Language",
		Long: `elcl-conformance tests a configuration parser against the complete
conformance test suite of the Erbsland Configuration Language.

It requires a test adapter: an executable that parses a given document and
writes the result in the adapter output format. The runner feeds every test
case of the selected tier to the adapter, compares the outcome with the
expectation, and reports the conformance score.

Exit codes: 0 all tests passed, 1 some tests failed, 2 unexpected error.`,
		Version:       version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.flagChanged = cmd.Flags().Changed
			return runConformance(cmd.OutOrStdout(), opts, args[0])
		},
	}

	flags := rootCmd.Flags()
	flags.BoolVarP(&opts.silent, "silent", "s", false, "Disable all progress output")
	flags.StringVarP(&opts.format, "format", "f", types.FormatText.String(), "Output format: text, json")
	flags.StringVarP(&opts.output, "output", "o", "", "Write the report to this path instead of the console")
	flags.StringVarP(&opts.tier, "tier", "t", types.TierFull.String(), "Parser tier: minimal, standard, full")
	flags.StringVarP(&opts.langVersion, "lang-version", "l", types.DefaultLangVersion, "Language version to test")
	flags.StringVar(&opts.testsDir, "tests", "tests", "Path to the test suite root directory")
	flags.DurationVar(&opts.timeout, "timeout", adapter.DefaultTimeout, "Timeout for a single adapter invocation")
	flags.IntVar(&opts.jobs, "jobs", 1, "Number of adapter invocations running concurrently")
	flags.StringVar(&opts.configPath, "config", "", "Path to a runner configuration file")
	flags.BoolVar(&opts.selfTest, "self-test", false, "Sanity-check the adapter before running the suite")

	rootCmd.AddCommand(newCompletionCmd())

	_ = rootCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "json"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("tier", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"minimal", "standard", "full"}, cobra.ShellCompDirectiveNoFileComp
	})

	return rootCmd
}

// runOptions holds the flag values of the root command. Zero values are
// replaced by configuration-file settings unless the flag was set
// explicitly.
type runOptions struct {
	silent      bool
	format      string
	output      string
	tier        string
	langVersion string
	testsDir    string
	timeout     time.Duration
	jobs        int
	configPath  string
	selfTest    bool

	flagChanged func(string) bool
}

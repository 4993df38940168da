package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/erbsland-dev/elcl-conformance/internal/adapter"
	"github.com/erbsland-dev/elcl-conformance/internal/config"
	"github.com/erbsland-dev/elcl-conformance/internal/corpus"
	"github.com/erbsland-dev/elcl-conformance/internal/report"
	"github.com/erbsland-dev/elcl-conformance/internal/runner"
	"github.com/erbsland-dev/elcl-conformance/internal/types"
)

// runConformance drives a complete conformance run: validate the setup,
// scan the corpus, run every case through the adapter, and render the
// report. Progress goes to the console; the report goes to the console or
// the requested output file.
func runConformance(console io.Writer, opts *runOptions, adapterPath string) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	applyConfig(opts, cfg)

	tier, err := types.ParseTier(opts.tier)
	if err != nil {
		return err
	}
	format, err := types.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	if err := types.ValidateLangVersion(opts.langVersion); err != nil {
		return err
	}
	renderer, err := report.NewRenderer(format)
	if err != nil {
		return err
	}

	adapterRunner, err := adapter.New(adapterPath, adapter.Options{
		Timeout:     opts.timeout,
		LangVersion: opts.langVersion,
		ExtraArgs:   cfg.AdapterArgs,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	progress := func(line string, args ...any) {
		if !opts.silent {
			fmt.Fprintf(console, line+"\n", args...)
		}
	}
	progress("%s", report.Banner)
	progress("%s", report.BannerRule)

	if opts.selfTest {
		progress("Running the adapter self-test...")
		if err := adapterRunner.SelfTest(ctx); err != nil {
			return err
		}
	}

	progress("Scanning all test cases for tier '%s'...", tier)
	cases, err := corpus.Scan(opts.testsDir, tier, opts.langVersion)
	if err != nil {
		return err
	}

	progress("Running all tests...")
	results, runErr := runner.New(adapterRunner).Run(ctx, cases, runner.Options{Jobs: opts.jobs})
	if runErr != nil && len(results) == 0 {
		return runErr
	}

	summary := report.Summarize(tier, opts.langVersion, results)
	if err := renderReport(console, renderer, summary, opts.output); err != nil {
		return err
	}

	// An interrupted run still reports what it completed, but never
	// succeeds: the summary covers only part of the suite.
	if runErr != nil {
		return fmt.Errorf("test run aborted: %w", runErr)
	}
	if !summary.Passing() {
		return errTestsFailed
	}
	return nil
}

// loadConfig loads the configuration file named by --config, or the first
// default file found in the working directory.
func loadConfig(opts *runOptions) (*config.Config, error) {
	path := opts.configPath
	if path == "" {
		path = config.Find()
	}
	if path == "" {
		return &config.Config{}, nil
	}
	return config.Load(path)
}

// applyConfig fills in configuration-file values for all flags the user did
// not set explicitly. Flags always win over the configuration file.
func applyConfig(opts *runOptions, cfg *config.Config) {
	changed := opts.flagChanged
	if changed == nil {
		changed = func(string) bool { return false }
	}
	if !changed("tier") && cfg.Tier != "" {
		opts.tier = cfg.Tier
	}
	if !changed("format") && cfg.Format != "" {
		opts.format = cfg.Format
	}
	if !changed("lang-version") && cfg.LangVersion != "" {
		opts.langVersion = cfg.LangVersion
	}
	if !changed("tests") && cfg.Tests != "" {
		opts.testsDir = cfg.Tests
	}
	if !changed("timeout") && cfg.TimeoutDuration() > 0 {
		opts.timeout = cfg.TimeoutDuration()
	}
	if !changed("jobs") && cfg.Jobs > 0 {
		opts.jobs = cfg.Jobs
	}
}

// renderReport writes the summary to the console, or to the output file
// when one is requested.
func renderReport(console io.Writer, renderer report.Renderer, summary *report.Summary, outputPath string) error {
	if outputPath == "" {
		return renderer.Render(console, summary)
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create the report file: %w", err)
	}
	if err := renderer.Render(file, summary); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

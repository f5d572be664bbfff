// Package commands implements the ecbuild CLI: a single flat command
// with no subcommands, matching spec.md §6's flag surface exactly.
package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/RPDevJesco/EventChains-BuildSystem/internal/app"
	"github.com/RPDevJesco/EventChains-BuildSystem/internal/build"
	"github.com/RPDevJesco/EventChains-BuildSystem/internal/core/domain"
	"github.com/spf13/cobra"
)

// CLI wraps the root cobra.Command bound to the application.
type CLI struct {
	app     *app.App
	rootCmd *cobra.Command

	flagVersion    bool
	flagVerbose    bool
	flagDebug      bool
	flagNoOptimize bool
	flagOutput     string
	flagBuildDir   string
	flagJobs       int
	flagClean      bool
	flagExclude    string
	flagGraph      bool
}

// New creates the ecbuild CLI bound to a.
func New(a *app.App) *CLI {
	c := &CLI{app: a}

	c.rootCmd = &cobra.Command{
		Use:           "ecbuild [options] [source_directory]",
		Short:         "Zero-configuration build driver for C/C++ projects",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          c.runE,
	}

	flags := c.rootCmd.Flags()
	flags.BoolVarP(&c.flagVersion, "version", "V", false, "print version, exit 0")
	flags.BoolVarP(&c.flagVerbose, "verbose", "v", false, "log each task's start, result and timing (compiler command lines are not printed)")
	flags.BoolVarP(&c.flagDebug, "debug", "d", false, "add -g to cflags")
	flags.BoolVar(&c.flagNoOptimize, "no-optimize", false, "disable default -O2 (spec.md's -O0)")
	flags.StringVarP(&c.flagOutput, "output", "o", "program", "output binary name")
	flags.StringVarP(&c.flagBuildDir, "build-dir", "b", "build", "output directory, resolved relative to source dir")
	flags.IntVarP(&c.flagJobs, "jobs", "j", 1, "accepted, clamped >=1; not currently honored")
	flags.BoolVarP(&c.flagClean, "clean", "c", false, "remove the build directory before building")
	flags.StringVarP(&c.flagExclude, "exclude", "e", "", "additional directory-basename exclusions (CSV)")
	flags.BoolVar(&c.flagGraph, "graph", false, "print the resolved build order and entry point without compiling")

	return c
}

// Execute runs the root command with ctx.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOut redirects the root command's output stream. Used for testing.
func (c *CLI) SetOut(w io.Writer) {
	c.rootCmd.SetOut(w)
}

func (c *CLI) runE(cmd *cobra.Command, args []string) error {
	if c.flagVersion {
		fmt.Fprintln(cmd.OutOrStdout(), build.Version) //nolint:errcheck
		return nil
	}

	cfg, err := c.buildConfig(cmd, args)
	if err != nil {
		return err
	}

	defaultsPath := filepath.Join(cfg.SourceDir, ".ecbuild.yaml")
	report, err := c.app.Run(cmd.Context(), cfg, defaultsPath)
	if err != nil {
		return err
	}

	printReport(cmd, report)
	return nil
}

// buildConfig translates CLI flags into a domain.BuildConfig, resolving
// the source directory and the build directory the same way spec.md §6
// and §4.9 describe: the build directory is resolved relative to the
// source directory, and the project directory for cache purposes is the
// source directory itself.
//
// compiler, output-dir, and output-binary are left at their zero value
// when the user never passed the corresponding flag, rather than always
// being set to the flag's own default — that's what lets
// app.mergeDefaults fill them in from .ecbuild.yaml (SPEC_FULL.md §4.14)
// instead of the project defaults file being permanently shadowed by a
// CLI default no one asked for.
func (c *CLI) buildConfig(cmd *cobra.Command, args []string) (*domain.BuildConfig, error) {
	sourceDir := "."
	if len(args) > 0 {
		sourceDir = args[0]
	}
	absSource, err := filepath.Abs(sourceDir)
	if err != nil {
		return nil, err
	}

	var outputDir string
	if cmd.Flags().Changed("build-dir") {
		outputDir = c.flagBuildDir
		if !filepath.IsAbs(outputDir) {
			outputDir = filepath.Join(absSource, outputDir)
		}
	}

	var outputBinary string
	if cmd.Flags().Changed("output") {
		outputBinary = c.flagOutput
	}

	var excludes []string
	if c.flagExclude != "" {
		excludes = strings.Split(c.flagExclude, ",")
	}

	jobs := c.flagJobs
	if jobs < 1 {
		jobs = 1
	}

	return &domain.BuildConfig{
		SourceDir:    absSource,
		OutputDir:    outputDir,
		OutputBinary: outputBinary,
		Excludes:     excludes,
		Verbose:      c.flagVerbose,
		Debug:        c.flagDebug,
		Optimize:     !c.flagNoOptimize,
		ParallelJobs: jobs,
		Clean:        c.flagClean,
		Graph:        c.flagGraph,
	}, nil
}

func printReport(cmd *cobra.Command, report *domain.BuildReport) {
	if report == nil {
		return
	}
	out := cmd.OutOrStdout()
	if report.OutputBinary == "" {
		// --graph ran: nothing was compiled, report is diagnostic-only.
		return
	}
	fmt.Fprintf(out, "built %s (%d files: %d compiled, %d cached, %d failed) in %s\n", //nolint:errcheck
		report.OutputBinary, report.TotalFiles, report.CompiledFiles, report.CachedFiles,
		report.FailedFiles, report.TotalTime)
	fmt.Fprintf(out, "cache: %.1f%% hit rate, ~%d bytes of entries in memory\n", report.CacheHitRate*100, report.CacheSizeBytes) //nolint:errcheck
}

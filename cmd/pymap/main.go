package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/oakbranch/pymap/app"
	"github.com/oakbranch/pymap/domain"
	"github.com/oakbranch/pymap/internal/config"
	"github.com/oakbranch/pymap/internal/version"
	"github.com/oakbranch/pymap/service"
	"github.com/spf13/cobra"
)

// resolveFlags holds the root command's flag values.
type resolveFlags struct {
	describeModules  bool
	format           string
	outputPath       string
	cachePath        string
	shallowStd       bool
	pythonPath       []string
	exclude          []string
	configFile       string
	verbose          bool
	resolveReExports bool
}

var rootCmd = &cobra.Command{
	Use:   "pymap ENTRY",
	Short: "Static import-graph resolver for a single Python entry file",
	Long: `pymap statically resolves the import graph reachable from a single
Python entry file, without executing any code.

Examples:
  pymap main.py --describe-modules
  pymap main.py --dm -f dot -o graph.dot
  pymap main.py --dm --shallow-std --cache .pymap-cache.json`,
	Args:    cobra.ExactArgs(1),
	Version: version.Short(),
	RunE:    run,
}

var flags resolveFlags

func init() {
	rootCmd.Flags().BoolVar(&flags.describeModules, "describe-modules", false, "Resolve the import graph instead of echoing the entry source")
	rootCmd.Flags().BoolVar(&flags.describeModules, "dm", false, "Shorthand for --describe-modules")
	rootCmd.Flags().StringVarP(&flags.format, "format", "f", "json", "Graph output format: json, dot, yaml")
	rootCmd.Flags().StringVarP(&flags.outputPath, "output", "o", "", "Write output to PATH instead of stdout (parent directories are created as needed)")
	rootCmd.Flags().StringVar(&flags.cachePath, "cache", "", "Path to a module-parse cache file")
	rootCmd.Flags().BoolVar(&flags.shallowStd, "shallow-std", false, "Resolve standard-library imports as leaf nodes without descending into their sources")
	rootCmd.Flags().StringArrayVar(&flags.pythonPath, "python-path", nil, "Extra module search root (repeatable)")
	rootCmd.Flags().StringArrayVar(&flags.exclude, "exclude", nil, "Glob pattern to exclude from resolution, matched against module origin paths (repeatable)")
	rootCmd.Flags().StringVarP(&flags.configFile, "config", "c", "", "Configuration file path (.pymap.toml or pyproject.toml)")
	rootCmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Print the error to stderr when the run fails (resolver warnings are not written to stderr)")
	rootCmd.Flags().BoolVar(&flags.resolveReExports, "resolve-reexports", false, "Point a from-imported name's edge at the submodule its package's __init__.py re-exports it from")
}

func run(cmd *cobra.Command, args []string) error {
	entry := args[0]

	cfg, err := config.LoadConfigWithTarget(flags.configFile, entry)
	if err != nil {
		return err
	}

	pythonPath := flags.pythonPath
	if len(pythonPath) == 0 {
		pythonPath = cfg.Search.Roots
	}
	exclude := flags.exclude
	if len(exclude) == 0 {
		exclude = cfg.Search.ExcludePatterns
	}

	req := domain.ResolveRequest{
		EntryPath:        entry,
		DescribeModules:  flags.describeModules,
		OutputFormat:     domain.OutputFormat(flags.format),
		OutputWriter:     cmd.OutOrStdout(),
		CachePath:        firstNonEmpty(flags.cachePath, cfg.Cache.Path),
		ShallowStd:       flags.shallowStd || cfg.Parser.ShallowStd,
		PythonPath:       pythonPath,
		ExcludePatterns:  exclude,
		ResolveReExports: flags.resolveReExports,
	}
	if flags.outputPath != "" {
		req.OutputPath = flags.outputPath
		req.OutputWriter = nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	useCase, err := createUseCase(cmd)
	if err != nil {
		return err
	}

	if err := useCase.Execute(ctx, req); err != nil {
		if flags.verbose {
			fmt.Fprintf(cmd.ErrOrStderr(), "pymap: %v\n", err)
		}
		return err
	}
	return nil
}

func createUseCase(cmd *cobra.Command) (*app.ResolveUseCase, error) {
	progress := service.NewBFSProgress(cmd.ErrOrStderr())
	resolveSvc := service.NewResolveService().WithModuleHook(progress.Advance)

	return app.NewResolveUseCaseBuilder().
		WithService(resolveSvc).
		WithFileReader(service.NewFileReader()).
		WithFormatter(service.NewGraphFormatter()).
		WithOutputWriter(service.NewFileOutputWriter(cmd.ErrOrStderr())).
		Build()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var domainErr domain.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == domain.ErrCodeEntryMissing {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

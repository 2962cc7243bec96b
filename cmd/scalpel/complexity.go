package main

import (
	"fmt"
	"path/filepath"

	"github.com/bgaffney/scalpel/internal/analyzer"
	"github.com/bgaffney/scalpel/internal/fileproc"
	"github.com/bgaffney/scalpel/internal/output"
	"github.com/bgaffney/scalpel/internal/progress"
	"github.com/bgaffney/scalpel/internal/scanner"
	"github.com/bgaffney/scalpel/pkg/config"
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

func complexityCmd() *cli.Command {
	return &cli.Command{
		Name:      "complexity",
		Aliases:   []string{"cx"},
		Usage:     "Analyze per-function complexity and code smells",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  "max-cyclomatic",
				Usage: "Override the cyclomatic complexity threshold",
			},
			&cli.UintFlag{
				Name:  "max-cognitive",
				Usage: "Override the cognitive complexity threshold",
			},
			&cli.BoolFlag{
				Name:  "all",
				Usage: "List every function, not only those with smells",
			},
		},
		Action: runComplexity,
	}
}

// collectFiles scans each path argument through the configured scanner.
func collectFiles(cfg *config.Config, paths []string) ([]string, error) {
	scan := scanner.New(cfg)

	var files []string
	for _, path := range paths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("invalid path %s: %w", path, err)
		}
		found, err := scan.ScanDir(absPath)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", path, err)
		}
		files = append(files, found...)
	}
	return files, nil
}

func runComplexity(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	thresholds := cfg.Thresholds
	if c.IsSet("max-cyclomatic") {
		thresholds.MaxCyclomatic = uint32(c.Uint("max-cyclomatic"))
	}
	if c.IsSet("max-cognitive") {
		thresholds.MaxCognitive = uint32(c.Uint("max-cognitive"))
	}

	files, err := collectFiles(cfg, getPaths(c))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		color.Yellow("No source files found")
		return nil
	}

	cx := analyzer.NewComplexityAnalyzerWithThresholds(thresholds)
	cx.Workers = cfg.Analysis.Workers
	defer cx.Close()

	var tick fileproc.ProgressFunc
	var tracker *progress.Tracker
	if cfg.Analysis.Progress && !c.Bool("no-progress") {
		tracker = progress.New("Analyzing complexity...", len(files))
		tick = tracker.Tick
	}

	analysis, errs := cx.AnalyzeProjectCtx(c.Context, files, tick)
	if tracker != nil {
		tracker.Done()
	}

	formatter, err := output.NewFormatter(
		outputFormat(c, cfg), c.String("output"), cfg.Output.Color)
	if err != nil {
		return err
	}
	defer formatter.Close()

	verbose := c.Bool("all") || c.Bool("verbose") || cfg.Output.Verbose
	if err := formatter.Output(output.ComplexityReport(analysis, verbose)); err != nil {
		return err
	}

	if errs != nil && formatter.Format() == output.FormatText {
		for _, fe := range errs.All() {
			formatter.Warning("skipped %s: %v", fe.Path, fe.Err)
		}
	}

	return nil
}

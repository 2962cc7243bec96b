package main

import (
	"fmt"

	"github.com/bgaffney/scalpel/internal/analyzer"
	"github.com/bgaffney/scalpel/internal/fileproc"
	"github.com/bgaffney/scalpel/internal/output"
	"github.com/bgaffney/scalpel/internal/progress"
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

func deadcodeCmd() *cli.Command {
	return &cli.Command{
		Name:      "deadcode",
		Aliases:   []string{"dc"},
		Usage:     "Find definitions nothing references",
		ArgsUsage: "[path...]",
		Action:    runDeadcode,
	}
}

func runDeadcode(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	files, err := collectFiles(cfg, getPaths(c))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		color.Yellow("No source files found")
		return nil
	}

	dc := analyzer.NewDeadCodeAnalyzer()
	dc.Workers = cfg.Analysis.Workers
	defer dc.Close()

	var tick fileproc.ProgressFunc
	var tracker *progress.Tracker
	if cfg.Analysis.Progress && !c.Bool("no-progress") {
		tracker = progress.New("Resolving references...", len(files))
		tick = tracker.Tick
	}

	report, errs := dc.AnalyzeProjectCtx(c.Context, files, tick)
	if tracker != nil {
		tracker.Done()
	}

	formatter, err := output.NewFormatter(
		outputFormat(c, cfg), c.String("output"), cfg.Output.Color)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if err := formatter.Output(output.DeadCodeView(report)); err != nil {
		return err
	}

	if formatter.Format() == output.FormatText {
		if c.Bool("verbose") || cfg.Output.Verbose {
			for _, w := range report.Warnings {
				formatter.Warning("%s", w)
			}
		}
		if errs != nil {
			for _, fe := range errs.All() {
				formatter.Warning("excluded %s: %v", fe.Path, fe.Err)
			}
		}
	}

	return nil
}

func inspectCmd() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Show definitions, references, and imports for one file",
		ArgsUsage: "<file>",
		Action:    runInspect,
	}
}

func runInspect(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("inspect takes exactly one file")
	}
	path := c.Args().First()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	ex := analyzer.NewExtractor()
	defer ex.Close()

	fa, err := ex.AnalyzeFile(path)
	if err != nil {
		return err
	}

	formatter, err := output.NewFormatter(
		outputFormat(c, cfg), c.String("output"), cfg.Output.Color)
	if err != nil {
		return err
	}
	defer formatter.Close()

	return formatter.Output(output.FileAnalysisView(fa))
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bgaffney/scalpel/internal/output"
	"github.com/bgaffney/scalpel/pkg/config"
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

var version = "dev"

// getPaths returns positional path args, defaulting to the current
// directory.
func getPaths(c *cli.Context) []string {
	if c.Args().Len() > 0 {
		return c.Args().Slice()
	}
	return []string{"."}
}

// loadConfig honors the --config flag before falling back to the standard
// search locations.
func loadConfig(c *cli.Context) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		return config.Load(path)
	}
	return config.LoadOrDefault(), nil
}

// outputFormat prefers an explicit --format flag over the configured
// default.
func outputFormat(c *cli.Context, cfg *config.Config) output.Format {
	if c.IsSet("format") {
		return output.ParseFormat(c.String("format"))
	}
	return output.ParseFormat(cfg.Output.Format)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.App{
		Name:    "scalpel",
		Usage:   "Static complexity and dead-code analysis",
		Version: version,
		Description: `Scalpel parses source files with tree-sitter and reports per-function
complexity metrics, code smells, and dead-code candidates.

Supports: Python, TypeScript, TSX, JavaScript, Go`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (TOML, YAML, or JSON)",
				EnvVars: []string{"SCALPEL_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "text",
				Usage:   "Output format: text, json, markdown, toon",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write output to file",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose output",
			},
			&cli.BoolFlag{
				Name:  "no-progress",
				Usage: "Disable the progress bar",
			},
		},
		Commands: []*cli.Command{
			complexityCmd(),
			deadcodeCmd(),
			inspectCmd(),
			initCmd(),
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func initCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write a default scalpel.toml in the current directory",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "path",
				Value: "scalpel.toml",
				Usage: "Where to write the config file",
			},
		},
		Action: func(c *cli.Context) error {
			path := c.String("path")
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			color.Green("Wrote %s", path)
			return nil
		},
	}
}

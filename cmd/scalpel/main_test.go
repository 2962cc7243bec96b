package main

import (
	"flag"
	"testing"

	"github.com/bgaffney/scalpel/internal/output"
	"github.com/bgaffney/scalpel/pkg/config"
	"github.com/urfave/cli/v2"
)

func TestOutputFormat(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Output.Format = "json"

	set := flag.NewFlagSet("scalpel", flag.ContinueOnError)
	set.String("format", "text", "")
	c := cli.NewContext(nil, set, nil)

	// Flag not passed: the configured default wins over the flag default.
	if got := outputFormat(c, cfg); got != output.FormatJSON {
		t.Errorf("outputFormat = %v, want json from config", got)
	}

	if err := set.Set("format", "markdown"); err != nil {
		t.Fatal(err)
	}
	if got := outputFormat(c, cfg); got != output.FormatMarkdown {
		t.Errorf("outputFormat = %v, want markdown from flag", got)
	}
}

func TestOutputFormat_ConfigFallbackParses(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Output.Format = "bogus"

	set := flag.NewFlagSet("scalpel", flag.ContinueOnError)
	set.String("format", "text", "")
	c := cli.NewContext(nil, set, nil)

	if got := outputFormat(c, cfg); got != output.FormatText {
		t.Errorf("outputFormat = %v, want text for unknown config value", got)
	}
}

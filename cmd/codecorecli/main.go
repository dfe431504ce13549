// Command codecorecli is a small operational tool over the codecore
// module: convert a file between CBOR and JSON, or dump one as RFC 8949
// diagnostic notation. Built the way a kong-based CLI wrapping a code
// generator would be (kong.CLI struct, kong.Parse, ctx.FatalIfErrorf),
// scoped to what the core module itself can do rather than any
// source-generation role.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/corewire/codecore/codecore"
	"github.com/corewire/codecore/event"
	"github.com/corewire/codecore/ioadapt"
	"github.com/corewire/codecore/logreceiver"
)

// CLI is the top-level command set.
type CLI struct {
	Transcode TranscodeCmd `cmd:"" help:"Convert a file between CBOR and JSON."`
	Diag      DiagCmd      `cmd:"" help:"Dump a file's contents as RFC 8949 diagnostic notation."`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("codecorecli"),
		kong.Description("Transcode or inspect CBOR/JSON documents."),
	)
	ctx.FatalIfErrorf(ctx.Run())
}

func formatOf(s string) codecore.Format {
	if s == "json" {
		return codecore.Json
	}
	return codecore.Cbor
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// TranscodeCmd converts an input file from one format to the other.
type TranscodeCmd struct {
	Input     string `arg:"" help:"Input file."`
	From      string `help:"Input format." enum:"cbor,json" required:""`
	To        string `help:"Output format." enum:"cbor,json" required:""`
	Output    string `short:"o" help:"Output file (default: stdout)."`
	Stringify bool   `help:"When converting to JSON, represent CBOR-only events (tags, simple values, byte strings, half floats) and non-string map keys as strings (diagnostic notation; base64 for byte strings) instead of failing."`
}

func (c *TranscodeCmd) Run() error {
	raw, err := os.ReadFile(c.Input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	out, err := codecore.TranscodeWithConfig(
		formatOf(c.To), formatOf(c.From), raw,
		codecore.TranscodeConfig{StringifyTags: c.Stringify},
	)
	if err != nil {
		return fmt.Errorf("transcode: %w", err)
	}
	return writeOutput(c.Output, out)
}

// DiagCmd renders an input file as RFC 8949 diagnostic notation,
// regardless of whether it was actually CBOR or JSON on disk.
type DiagCmd struct {
	Input  string `arg:"" help:"Input file."`
	Format string `help:"Input format." enum:"cbor,json" default:"cbor"`
	Indent string `help:"Per-level indent string for multi-line output (default: compact single line)."`
}

func (c *DiagCmd) Run() error {
	raw, err := os.ReadFile(c.Input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	format := formatOf(c.Format)
	parser := format.NewParser(ioadapt.NewInput(raw))
	logger := logreceiver.NewLogger(logreceiver.Config{Indent: c.Indent})
	for {
		it, err := parser.Pull()
		if err != nil {
			return fmt.Errorf("parse: %w", err)
		}
		if it.Kind == event.EndOfInput {
			break
		}
		if err := logger.Push(it); err != nil {
			return fmt.Errorf("format: %w", err)
		}
	}
	fmt.Println(logger.String())
	return nil
}

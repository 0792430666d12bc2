package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/shibukawa/crntext"
	"github.com/shibukawa/crntext/parser"
)

// Context represents the global context for commands
type Context struct {
	Verbose bool
}

// ValidateCmd parses a CRN file and reports whether it is well formed
type ValidateCmd struct {
	File    string `arg:"" help:"CRN file to validate" type:"existingfile"`
	Modular bool   `help:"Group ';'-separated reaction chains into modules"`
}

// Run executes the validate command
func (cmd *ValidateCmd) Run(ctx *Context) error {
	doc, err := parseFile(cmd.File, cmd.Modular)
	if err != nil {
		color.Red("%s: %v", cmd.File, err)
		return err
	}

	if ctx.Verbose {
		fmt.Printf("Reactions: %d\n", len(doc.Reactions))
		fmt.Printf("Formal species: %d\n", len(doc.FormalSpecies))
		fmt.Printf("Signal species: %d\n", len(doc.SignalSpecies))
		fmt.Printf("Fuel species: %d\n", len(doc.FuelSpecies))
	}

	color.Green("%s: OK", cmd.File)

	return nil
}

// InspectCmd parses a CRN file and prints the finalized document
type InspectCmd struct {
	File    string `arg:"" help:"CRN file to inspect" type:"existingfile"`
	Format  string `help:"Output format" enum:"yaml,text" default:"yaml"`
	Modular bool   `help:"Group ';'-separated reaction chains into modules"`
}

// Run executes the inspect command
func (cmd *InspectCmd) Run(ctx *Context) error {
	doc, err := parseFile(cmd.File, cmd.Modular)
	if err != nil {
		return err
	}

	if cmd.Format == "text" {
		fmt.Print(doc.String())
		return nil
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to render document: %w", err)
	}

	fmt.Print(string(out))

	return nil
}

// FmtCmd re-emits a CRN file in canonical surface syntax
type FmtCmd struct {
	File string `arg:"" help:"CRN file to format" type:"existingfile"`
}

// Run executes the fmt command
func (cmd *FmtCmd) Run(ctx *Context) error {
	doc, err := parser.ParseFile(cmd.File)
	if err != nil {
		return err
	}

	fmt.Print(doc.String())

	return nil
}

func parseFile(path string, modular bool) (*crntext.Document, error) {
	if !modular {
		return parser.ParseFile(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return parser.ParseModular(string(data))
}

// CLI represents the command-line interface
var CLI struct {
	Verbose  bool        `help:"Enable verbose output" short:"v"`
	Validate ValidateCmd `cmd:"" help:"Check that a file is a well-formed CRN"`
	Inspect  InspectCmd  `cmd:"" help:"Print the parsed reactions and species sets"`
	Fmt      FmtCmd      `cmd:"" help:"Re-emit a CRN in canonical form"`
}

func main() {
	ctx := kong.Parse(&CLI)

	appCtx := &Context{
		Verbose: CLI.Verbose,
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package cmd

import (
	"context"

	"github.com/ardnew/menugen/menu"
)

// Fmt parses a menu description and prints it in the chosen format. Defaults
// are made explicit and shorthand conditions are expanded.
type Fmt struct {
	JSON JSON `cmd:"" default:"withargs" help:"Format as JSON (default)."`
	YAML YAML `cmd:""                    help:"Format as YAML."`
	AST  AST  `cmd:""                    help:"Print the item tree with generated names."`
}

// JSON prints the normalized description as JSON.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output; 0 for compact" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	root, err := readMenu(ctx, j.Source)
	if err != nil {
		return err
	}

	return menu.FormatJSON(ctx, stdout(ctx), root, inputFrom(ctx).Root, j.Indent)
}

// YAML prints the normalized description as YAML.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output; 0 for flow style" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	root, err := readMenu(ctx, y.Source)
	if err != nil {
		return err
	}

	if err := menu.FormatYAML(ctx, stdout(ctx), root, inputFrom(ctx).Root, y.Indent); err != nil {
		return ErrYAMLMarshal.Wrap(err)
	}

	return nil
}

// AST prints one line per item with the name the generator assigns it.
type AST struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the ast command.
func (a *AST) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	root, err := readMenu(ctx, a.Source)
	if err != nil {
		return err
	}

	return menu.Print(stdout(ctx), root)
}

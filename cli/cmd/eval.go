package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/ardnew/menugen/gen"
	"github.com/ardnew/menugen/log"
	"github.com/ardnew/menugen/menu"
)

// Eval reports which items of a menu are visible, and which input options
// are enabled, for a given set of enabled features and variable values.
type Eval struct {
	Features []string          `help:"Enabled feature; repeatable or comma separated." placeholder:"NAME"       sep:"," short:"f"`
	Values   map[string]string `help:"Variable value; repeatable."                     placeholder:"NAME=VALUE"         short:"v"`
	Hidden   bool              `help:"Also list hidden items."`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	root, err := readMenu(ctx, e.Source)
	if err != nil {
		return err
	}

	env := e.env()
	w := stdout(ctx)

	hidden := map[*menu.Item]bool{}
	unknown := map[string]bool{}

	for v := range root.Walk() {
		ok, err := v.Item.Visible(env)
		if err != nil {
			return menu.WrapError(err).With(slog.String("label", v.Item.Label))
		}

		for _, f := range v.Item.Conditions.Features() {
			if !env.Features[f] {
				unknown[f] = true
			}
		}

		hide := !ok || hidden[v.Parent]
		hidden[v.Item] = hide

		if hide && !e.Hidden {
			continue
		}

		state := "visible"
		if hide {
			state = "hidden"
		}

		indent := strings.Repeat("  ", v.Depth)

		_, err = fmt.Fprintf(w, "%s%s%d %q %s\n", indent, gen.ItemPrefix, v.Index, v.Item.Label, state)
		if err != nil {
			return ErrWriteOutput.Wrap(err)
		}

		if err := e.printOptions(ctx, indent, v.Item, env); err != nil {
			return err
		}
	}

	if len(unknown) > 0 {
		log.DebugContext(ctx, "conditions reference disabled features",
			slog.String("features", strings.Join(slices.Sorted(maps.Keys(unknown)), ",")),
		)
	}

	return nil
}

func (e *Eval) env() menu.Env {
	env := menu.Env{
		Features: make(map[string]bool, len(e.Features)),
		Values:   e.Values,
	}

	for _, f := range e.Features {
		if f = strings.TrimSpace(f); f != "" {
			env.Features[f] = true
		}
	}

	return env
}

// printOptions lists the enabled options of each conditional options input.
func (e *Eval) printOptions(ctx context.Context, indent string, item *menu.Item, env menu.Env) error {
	if item.Operation == nil {
		return nil
	}

	for i, in := range item.Operation.Inputs {
		if len(in.OptionConditions) == 0 {
			continue
		}

		opts, err := in.EnabledOptions(env)
		if err != nil {
			return menu.WrapError(err).With(
				slog.String("label", item.Label),
				slog.Int("input", i),
			)
		}

		_, err = fmt.Fprintf(stdout(ctx), "%s  input[%d] options: %s\n", indent, i, strings.Join(opts, ", "))
		if err != nil {
			return ErrWriteOutput.Wrap(err)
		}
	}

	return nil
}

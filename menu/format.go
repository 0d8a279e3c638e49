package menu

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// ToMap converts the tree back into the JSON grammar in its normalized form:
// defaults are explicit and shorthand conditions are expanded.
func (item *Item) ToMap() map[string]any {
	m := map[string]any{
		"label": item.Label,
		"type":  item.Type.String(),
	}

	putString(m, "label_short", item.LabelShort)
	putString(m, "icon", item.Icon)
	putString(m, "shortcut", item.Shortcut)
	putString(m, "help_text", item.HelpText)

	if item.Conditions != nil {
		m["conditions"] = item.Conditions.ToMap()
	}

	if item.Operation != nil {
		m["operation"] = item.Operation.ToMap()
	}

	if len(item.Children) > 0 {
		children := make([]any, len(item.Children))
		for i, c := range item.Children {
			children[i] = c.ToMap()
		}

		m["children"] = children
	}

	return m
}

// ToMap converts the operation back into the JSON grammar.
func (op *Operation) ToMap() map[string]any {
	m := map[string]any{"action": op.Action}

	if op.Precondition != nil {
		m["precondition"] = op.Precondition.toMap()
	}

	if len(op.Inputs) > 0 {
		inputs := make([]any, len(op.Inputs))
		for i, in := range op.Inputs {
			inputs[i] = in.toMap()
		}

		m["input"] = inputs
	}

	if c := op.Confirm; c != nil {
		m["confirm"] = map[string]any{
			"message":     c.Message,
			"timeout_sec": c.TimeoutSec,
			"default":     c.Default,
			"true_text":   c.TrueText,
			"false_text":  c.FalseText,
		}
	}

	if r := op.Result; r != nil {
		res := map[string]any{
			"message":     r.Message,
			"mode":        r.Mode.String(),
			"timeout_sec": r.TimeoutSec,
		}
		putString(res, "ok_text", r.OKText)
		m["result"] = res
	}

	if op.Postcondition != nil {
		m["postcondition"] = op.Postcondition.toMap()
	}

	return m
}

func (h *Hook) toMap() map[string]any {
	m := map[string]any{"handler": h.Handler, "message": h.Message}
	if len(h.Args) > 0 {
		m["args"] = h.Args
	}

	return m
}

func (in *Input) toMap() map[string]any {
	m := map[string]any{
		"type":         in.Kind.String(),
		"default":      in.Default,
		"wrap":         in.Wrap,
		"live_preview": in.LivePreview,
	}

	putString(m, "prompt", in.Prompt)
	putString(m, "handler", in.Handler)

	if in.Range != nil {
		m["range"] = in.Range.String()
	}

	if len(in.Options) > 0 {
		m["options"] = in.Options
	}

	if len(in.OptionConditions) > 0 {
		oc := make(map[string]any, len(in.OptionConditions))
		for k, c := range in.OptionConditions {
			oc[k] = c.ToMap()
		}

		m[OptionConditionsKey] = oc
	}

	if len(in.DisplayValues) > 0 {
		m["display_values"] = in.DisplayValues
	}

	return m
}

// ToMap converts the conditions into the full (non-shorthand) grammar.
func (c *Conditions) ToMap() map[string]any {
	return groupMap(c.Match, c.Rules)
}

func groupMap(match Match, rules []Rule) map[string]any {
	list := make([]any, 0, len(rules))

	for _, r := range rules {
		switch r := r.(type) {
		case FeatureRule:
			list = append(list, map[string]any{"feature_enabled": r.Feature})

		case ValueRule:
			list = append(list, map[string]any{
				"value_equals": map[string]any{
					"variable": r.Variable,
					"value":    r.Value,
				},
			})

		case RuleGroup:
			list = append(list, groupMap(r.Match, r.Rules))
		}
	}

	return map[string]any{"match": match.String(), "rules": list}
}

// String returns the range in its "min:max:step" grammar form.
func (r *Range) String() string {
	return strconv.Itoa(r.Min) + ":" + strconv.Itoa(r.Max) + ":" + strconv.Itoa(r.Step)
}

func putString(m map[string]any, key string, s *string) {
	if s != nil {
		m[key] = *s
	}
}

// document wraps the root item under key.
func document(root *Item, key string) map[string]any {
	if key == "" {
		key = DefaultRootKey
	}

	return map[string]any{key: root.ToMap()}
}

// FormatJSON writes the normalized document rooted at key as JSON. An
// indent of zero writes compact output.
func FormatJSON(_ context.Context, w io.Writer, root *Item, key string, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(document(root, key), "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(document(root, key))
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// FormatYAML writes the normalized document rooted at key as YAML. An
// indent of zero writes flow style.
func FormatYAML(ctx context.Context, w io.Writer, root *Item, key string, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, document(root, key), opts...)
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}

// Print writes an indented outline of the tree, one line per item, with the
// identifier the generator assigns to it.
func Print(w io.Writer, root *Item) error {
	for v := range root.Walk() {
		var b strings.Builder

		b.WriteString(strings.Repeat("  ", v.Depth))
		b.WriteString("menu_item_")
		b.WriteString(strconv.Itoa(v.Index))
		b.WriteByte(' ')
		b.WriteString(v.Item.Type.String())
		b.WriteByte(' ')
		b.WriteString(strconv.Quote(v.Item.Label))

		if op := v.Item.Operation; op != nil {
			b.WriteString(" action=")
			b.WriteString(op.Action)

			for p := range Phases() {
				if p == PhaseAction {
					continue
				}

				if _, ok := op.DisplayContent(p); ok {
					b.WriteString(" +")
					b.WriteString(p.String())
				}
			}
		}

		if c := v.Item.Conditions; c != nil {
			b.WriteString(" if ")
			b.WriteString(c.Expr())
		}

		b.WriteByte('\n')

		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}

	return nil
}

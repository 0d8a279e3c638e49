package menu

import (
	"context"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/tidwall/gjson"

	"github.com/ardnew/menugen/log"
)

// DefaultRootKey is the top-level key holding the root menu item.
const DefaultRootKey = "main_menu"

// ShorthandConditionsKey is the item key holding a bare feature name that
// stands for all of [feature enabled].
const ShorthandConditionsKey = "conditions.feature_enabled"

// OptionConditionsKey is the input key mapping option names to the
// conditions that enable them.
const OptionConditionsKey = "options.conditions"

// maxTimeoutSec is the largest timeout the runtime can store (uint8).
const maxTimeoutSec = math.MaxUint8

// Option configures parsing.
type Option func(*parser)

// WithRootKey sets the top-level key holding the root menu item.
func WithRootKey(key string) Option {
	return func(p *parser) {
		if key != "" {
			p.rootKey = key
		}
	}
}

// WithLogger sets the logger receiving parse diagnostics.
func WithLogger(logger log.Logger) Option {
	return func(p *parser) {
		p.logger = logger
	}
}

type parser struct {
	ctx     context.Context
	logger  log.Logger
	rootKey string
	dropped int
}

func newParser(ctx context.Context, opts ...Option) *parser {
	p := &parser{
		ctx:     ctx,
		logger:  log.Default(),
		rootKey: DefaultRootKey,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Parse builds the menu tree from a JSON document. The document must be an
// object whose root key (see [WithRootKey]) holds the root item.
//
// Parsing stops at the first structural error: a missing required field, a
// field of the wrong JSON type, or a value outside its closed set. The
// returned error is an *Error matching one of the sentinel errors.
func Parse(ctx context.Context, data []byte, opts ...Option) (*Item, error) {
	p := newParser(ctx, opts...)

	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}

	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, ErrInvalidType.With(
			slog.String("path", "$"),
			slog.String("want", "object"),
		)
	}

	root := field(doc, p.rootKey)
	if !root.Exists() {
		return nil, ErrMissingRoot.With(slog.String("key", p.rootKey))
	}

	item, err := p.item(root, p.rootKey)
	if err != nil {
		return nil, err
	}

	p.logger.DebugContext(ctx, "parsed menu",
		slog.String("root", item.Label),
		slog.Int("items", item.Count()),
		slog.Int("dropped_rules", p.dropped),
	)

	return item, nil
}

// ParseYAML builds the menu tree from a YAML document with the same
// structure as the JSON grammar.
func ParseYAML(ctx context.Context, data []byte, opts ...Option) (*Item, error) {
	js, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, ErrInvalidYAML.Wrap(err)
	}

	return Parse(ctx, js, opts...)
}

// ParseReader reads a JSON document from r and parses it.
func ParseReader(ctx context.Context, r io.Reader, opts ...Option) (*Item, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	return Parse(ctx, data, opts...)
}

// field looks up key literally; gjson treats '.', '*', '?' as path syntax.
func field(obj gjson.Result, key string) gjson.Result {
	return obj.Get(gjson.Escape(key))
}

func join(path, key string) string { return path + "." + key }

func index(path string, i int) string { return path + "[" + strconv.Itoa(i) + "]" }

func (p *parser) item(r gjson.Result, path string) (*Item, error) {
	if err := expectObject(r, path); err != nil {
		return nil, err
	}

	label, err := requiredString(r, path, "label")
	if err != nil {
		return nil, err
	}

	typ, err := requiredString(r, path, "type")
	if err != nil {
		return nil, err
	}

	item := &Item{Label: label}

	var ok bool
	if item.Type, ok = ParseType(typ); !ok {
		return nil, invalidValue(path, "type", typ, typeNames[:])
	}

	for _, opt := range []struct {
		key string
		dst **string
	}{
		{"label_short", &item.LabelShort},
		{"icon", &item.Icon},
		{"shortcut", &item.Shortcut},
		{"help_text", &item.HelpText},
	} {
		if *opt.dst, err = optionalString(r, path, opt.key); err != nil {
			return nil, err
		}
	}

	// The shorthand wins when both forms are present.
	if sh := field(r, ShorthandConditionsKey); sh.Exists() && sh.Type != gjson.Null {
		if sh.Type != gjson.String {
			return nil, wrongType(join(path, ShorthandConditionsKey), "string")
		}

		item.Conditions = Shorthand(sh.Str)
	} else if c := field(r, "conditions"); c.Exists() && c.Type != gjson.Null {
		if item.Conditions, err = p.conditions(c, join(path, "conditions")); err != nil {
			return nil, err
		}
	}

	if op := field(r, "operation"); op.Exists() && op.Type != gjson.Null {
		if item.Operation, err = p.operation(op, join(path, "operation")); err != nil {
			return nil, err
		}
	}

	if ch := field(r, "children"); ch.Exists() && ch.Type != gjson.Null {
		cpath := join(path, "children")
		if !ch.IsArray() {
			return nil, wrongType(cpath, "array")
		}

		for i, c := range ch.Array() {
			child, err := p.item(c, index(cpath, i))
			if err != nil {
				return nil, err
			}

			item.Children = append(item.Children, child)
		}
	}

	return item, nil
}

func (p *parser) operation(r gjson.Result, path string) (*Operation, error) {
	if err := expectObject(r, path); err != nil {
		return nil, err
	}

	action, err := requiredString(r, path, "action")
	if err != nil {
		return nil, err
	}

	op := &Operation{Action: action}

	if op.Precondition, err = hook(r, path, "precondition"); err != nil {
		return nil, err
	}

	if in := field(r, "input"); in.Exists() && in.Type != gjson.Null {
		ipath := join(path, "input")
		if !in.IsArray() {
			return nil, wrongType(ipath, "array")
		}

		for i, v := range in.Array() {
			input, err := p.input(v, index(ipath, i))
			if err != nil {
				return nil, err
			}

			op.Inputs = append(op.Inputs, input)
		}
	}

	if c := field(r, "confirm"); c.Exists() && c.Type != gjson.Null {
		if op.Confirm, err = confirm(c, join(path, "confirm")); err != nil {
			return nil, err
		}
	}

	if res := field(r, "result"); res.Exists() && res.Type != gjson.Null {
		if op.Result, err = result(res, join(path, "result")); err != nil {
			return nil, err
		}
	}

	if op.Postcondition, err = hook(r, path, "postcondition"); err != nil {
		return nil, err
	}

	return op, nil
}

func hook(parent gjson.Result, path, key string) (*Hook, error) {
	r := field(parent, key)
	if !r.Exists() || r.Type == gjson.Null {
		return nil, nil
	}

	path = join(path, key)
	if err := expectObject(r, path); err != nil {
		return nil, err
	}

	handler, err := requiredString(r, path, "handler")
	if err != nil {
		return nil, err
	}

	msg, err := requiredString(r, path, "message")
	if err != nil {
		return nil, err
	}

	h := &Hook{Handler: handler, Message: msg}

	if args := field(r, "args"); args.Exists() && args.Type != gjson.Null {
		if !args.IsObject() {
			return nil, wrongType(join(path, "args"), "object")
		}

		h.Args, _ = args.Value().(map[string]any)
	}

	return h, nil
}

func (p *parser) input(r gjson.Result, path string) (*Input, error) {
	if err := expectObject(r, path); err != nil {
		return nil, err
	}

	kind, err := requiredString(r, path, "type")
	if err != nil {
		return nil, err
	}

	in := &Input{}

	var ok bool
	if in.Kind, ok = ParseInputKind(kind); !ok {
		return nil, invalidValue(path, "type", kind, inputKindNames[:])
	}

	def := field(r, "default")
	switch def.Type {
	case gjson.String:
		in.Default = def.Str
	case gjson.Number, gjson.True, gjson.False:
		in.Default = def.Raw
	case gjson.Null:
		if !def.Exists() {
			return nil, missing(path, "default")
		}

		return nil, wrongType(join(path, "default"), "string or number")
	default:
		return nil, wrongType(join(path, "default"), "string or number")
	}

	if in.Prompt, err = optionalString(r, path, "prompt"); err != nil {
		return nil, err
	}

	if in.Wrap, err = optionalBool(r, path, "wrap", false); err != nil {
		return nil, err
	}

	if in.LivePreview, err = optionalBool(r, path, "live_preview", false); err != nil {
		return nil, err
	}

	if rng, err := optionalString(r, path, "range"); err != nil {
		return nil, err
	} else if rng != nil {
		if in.Range, err = ParseRange(*rng); err != nil {
			return nil, WrapError(err).With(slog.String("path", join(path, "range")))
		}
	}

	if in.Options, err = optionalStrings(r, path, "options"); err != nil {
		return nil, err
	}

	if oc := field(r, OptionConditionsKey); oc.Exists() && oc.Type != gjson.Null {
		ocpath := join(path, OptionConditionsKey)
		if !oc.IsObject() {
			return nil, wrongType(ocpath, "object")
		}

		in.OptionConditions = map[string]*Conditions{}

		var perr error

		oc.ForEach(func(key, value gjson.Result) bool {
			var c *Conditions

			c, perr = p.conditions(value, join(ocpath, key.String()))
			in.OptionConditions[key.String()] = c

			return perr == nil
		})

		if perr != nil {
			return nil, perr
		}
	}

	if in.Handler, err = optionalString(r, path, "handler"); err != nil {
		return nil, err
	}

	if in.DisplayValues, err = optionalStrings(r, path, "display_values"); err != nil {
		return nil, err
	}

	return in, nil
}

func confirm(r gjson.Result, path string) (*Confirm, error) {
	if err := expectObject(r, path); err != nil {
		return nil, err
	}

	msg, err := requiredString(r, path, "message")
	if err != nil {
		return nil, err
	}

	c := &Confirm{
		Message:   msg,
		TrueText:  DefaultConfirmTrueText,
		FalseText: DefaultConfirmFalseText,
	}

	if c.TimeoutSec, err = optionalTimeout(r, path); err != nil {
		return nil, err
	}

	if c.Default, err = optionalBool(r, path, "default", DefaultConfirmChoice); err != nil {
		return nil, err
	}

	if s, err := optionalString(r, path, "true_text"); err != nil {
		return nil, err
	} else if s != nil {
		c.TrueText = *s
	}

	if s, err := optionalString(r, path, "false_text"); err != nil {
		return nil, err
	} else if s != nil {
		c.FalseText = *s
	}

	return c, nil
}

func result(r gjson.Result, path string) (*Result, error) {
	if err := expectObject(r, path); err != nil {
		return nil, err
	}

	msg, err := requiredString(r, path, "message")
	if err != nil {
		return nil, err
	}

	mode, err := requiredString(r, path, "mode")
	if err != nil {
		return nil, err
	}

	res := &Result{Message: msg}

	var ok bool
	if res.Mode, ok = ParseResultMode(mode); !ok {
		return nil, invalidValue(path, "mode", mode, resultModeNames[:])
	}

	if res.TimeoutSec, err = optionalTimeout(r, path); err != nil {
		return nil, err
	}

	if res.OKText, err = optionalString(r, path, "ok_text"); err != nil {
		return nil, err
	}

	return res, nil
}

func (p *parser) conditions(r gjson.Result, path string) (*Conditions, error) {
	if r.Type == gjson.String {
		return Shorthand(r.Str), nil
	}

	g, err := p.group(r, path)
	if err != nil {
		return nil, err
	}

	return &Conditions{Match: g.Match, Rules: g.Rules}, nil
}

func (p *parser) group(r gjson.Result, path string) (RuleGroup, error) {
	if err := expectObject(r, path); err != nil {
		return RuleGroup{}, err
	}

	match, err := requiredString(r, path, "match")
	if err != nil {
		return RuleGroup{}, err
	}

	var g RuleGroup

	var ok bool
	if g.Match, ok = ParseMatch(match); !ok {
		return RuleGroup{}, invalidValue(path, "match", match, matchNames[:])
	}

	rules := field(r, "rules")
	if !rules.Exists() {
		return RuleGroup{}, missing(path, "rules")
	}

	rpath := join(path, "rules")
	if !rules.IsArray() {
		return RuleGroup{}, wrongType(rpath, "array")
	}

	for i, rr := range rules.Array() {
		rule, err := p.rule(rr, index(rpath, i))
		if err != nil {
			return RuleGroup{}, err
		}

		if rule != nil {
			g.Rules = append(g.Rules, rule)
		}
	}

	return g, nil
}

// rule classifies a rule object by the first of feature_enabled,
// value_equals, or match it carries. Objects carrying none of them are
// dropped with a warning and yield a nil Rule.
func (p *parser) rule(r gjson.Result, path string) (Rule, error) {
	if err := expectObject(r, path); err != nil {
		return nil, err
	}

	if f := field(r, "feature_enabled"); f.Exists() {
		if f.Type != gjson.String {
			return nil, wrongType(join(path, "feature_enabled"), "string")
		}

		return FeatureRule{Feature: f.Str}, nil
	}

	if v := field(r, "value_equals"); v.Exists() {
		vpath := join(path, "value_equals")
		if err := expectObject(v, vpath); err != nil {
			return nil, err
		}

		variable, err := requiredString(v, vpath, "variable")
		if err != nil {
			return nil, err
		}

		val := field(v, "value")
		switch val.Type {
		case gjson.String:
			return ValueRule{Variable: variable, Value: val.Str}, nil
		case gjson.Number, gjson.True, gjson.False:
			return ValueRule{Variable: variable, Value: val.Raw}, nil
		default:
			if !val.Exists() {
				return nil, missing(vpath, "value")
			}

			return nil, wrongType(join(vpath, "value"), "string")
		}
	}

	if field(r, "match").Exists() {
		return p.group(r, path)
	}

	p.dropped++
	p.logger.WarnContext(p.ctx, "dropping unrecognized condition rule",
		slog.String("path", path),
		slog.String("rule", r.Raw),
	)

	return nil, nil
}

// ParseRange parses a range spec "min:max" or "min:max:step". The step
// defaults to [DefaultRangeStep]. Bounds must fit int16 with min <= max and
// step > 0.
func ParseRange(spec string) (*Range, error) {
	fail := func(reason string) error {
		return ErrInvalidRange.With(
			slog.String("range", spec),
			slog.String("reason", reason),
		)
	}

	parts := strings.Split(strings.TrimSpace(spec), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return nil, fail(`want "min:max" or "min:max:step"`)
	}

	vals := [3]int{0, 0, DefaultRangeStep}

	for i, s := range parts {
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 16)
		if err != nil {
			return nil, fail("bound is not a 16-bit integer")
		}

		vals[i] = int(n)
	}

	rng := &Range{Min: vals[0], Max: vals[1], Step: vals[2]}

	if rng.Min > rng.Max {
		return nil, fail("min exceeds max")
	}

	if rng.Step <= 0 {
		return nil, fail("step must be positive")
	}

	return rng, nil
}

func expectObject(r gjson.Result, path string) error {
	if !r.IsObject() {
		return wrongType(path, "object")
	}

	return nil
}

func missing(path, key string) *Error {
	return ErrMissingField.With(
		slog.String("path", path),
		slog.String("field", key),
	)
}

func wrongType(path, want string) *Error {
	return ErrInvalidType.With(
		slog.String("path", path),
		slog.String("want", want),
	)
}

func requiredString(r gjson.Result, path, key string) (string, error) {
	v := field(r, key)
	if !v.Exists() || v.Type == gjson.Null {
		return "", missing(path, key)
	}

	if v.Type != gjson.String {
		return "", wrongType(join(path, key), "string")
	}

	return v.Str, nil
}

func optionalString(r gjson.Result, path, key string) (*string, error) {
	v := field(r, key)
	if !v.Exists() || v.Type == gjson.Null {
		return nil, nil
	}

	if v.Type != gjson.String {
		return nil, wrongType(join(path, key), "string")
	}

	s := v.Str

	return &s, nil
}

func optionalBool(r gjson.Result, path, key string, def bool) (bool, error) {
	v := field(r, key)

	switch v.Type {
	case gjson.True:
		return true, nil
	case gjson.False:
		return false, nil
	case gjson.Null:
		return def, nil
	default:
		return false, wrongType(join(path, key), "boolean")
	}
}

func optionalStrings(r gjson.Result, path, key string) ([]string, error) {
	v := field(r, key)
	if !v.Exists() || v.Type == gjson.Null {
		return nil, nil
	}

	if !v.IsArray() {
		return nil, wrongType(join(path, key), "array of strings")
	}

	arr := v.Array()
	out := make([]string, 0, len(arr))

	for i, s := range arr {
		if s.Type != gjson.String {
			return nil, wrongType(index(join(path, key), i), "string")
		}

		out = append(out, s.Str)
	}

	return out, nil
}

func optionalTimeout(r gjson.Result, path string) (int, error) {
	v := field(r, "timeout_sec")
	if !v.Exists() || v.Type == gjson.Null {
		return 0, nil
	}

	tpath := join(path, "timeout_sec")
	if v.Type != gjson.Number {
		return 0, wrongType(tpath, "integer")
	}

	n, err := strconv.Atoi(v.Raw)
	if err != nil || n < 0 || n > maxTimeoutSec {
		return 0, ErrInvalidValue.With(
			slog.String("path", tpath),
			slog.String("value", v.Raw),
			slog.String("valid", "0.."+strconv.Itoa(maxTimeoutSec)),
		)
	}

	return n, nil
}

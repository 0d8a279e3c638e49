package menu

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
)

// Env is the runtime state conditions are evaluated against: the set of
// enabled features and the current value of each variable.
type Env struct {
	Features map[string]bool   `expr:"features"`
	Values   map[string]string `expr:"values"`
}

// Expr renders c as an expr-lang boolean expression over [Env]. Nil
// conditions render as "true".
func (c *Conditions) Expr() string {
	if c == nil {
		return "true"
	}

	return groupExpr(c.Match, c.Rules)
}

func groupExpr(match Match, rules []Rule) string {
	if len(rules) == 0 {
		// identity of && and ||
		switch match {
		case MatchAny:
			return "false"
		case MatchAll:
			return "true"
		}
	}

	op := " && "

	switch match {
	case MatchAny:
		op = " || "
	case MatchAll:
	}

	terms := make([]string, 0, len(rules))

	for _, r := range rules {
		switch r := r.(type) {
		case FeatureRule:
			terms = append(terms,
				"features["+strconv.Quote(r.Feature)+"]")

		case ValueRule:
			terms = append(terms,
				"values["+strconv.Quote(r.Variable)+"] == "+strconv.Quote(r.Value))

		case RuleGroup:
			terms = append(terms, "("+groupExpr(r.Match, r.Rules)+")")
		}
	}

	return strings.Join(terms, op)
}

// Eval reports whether c holds in env. Nil conditions always hold.
func (c *Conditions) Eval(env Env) (bool, error) {
	if c == nil {
		return true, nil
	}

	src := c.Expr()

	program, err := expr.Compile(src, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return false, ErrEvalCondition.Wrap(err).With(slog.String("expr", src))
	}

	if env.Features == nil {
		env.Features = map[string]bool{}
	}

	if env.Values == nil {
		env.Values = map[string]string{}
	}

	out, err := expr.Run(program, env)
	if err != nil {
		return false, ErrEvalCondition.Wrap(err).With(slog.String("expr", src))
	}

	ok, _ := out.(bool)

	return ok, nil
}

// Visible reports whether the item's own conditions hold in env.
func (item *Item) Visible(env Env) (bool, error) {
	return item.Conditions.Eval(env)
}

// EnabledOptions returns the options of an options input whose conditions
// hold in env, in declaration order. Options without conditions are always
// enabled.
func (in *Input) EnabledOptions(env Env) ([]string, error) {
	out := make([]string, 0, len(in.Options))

	for _, opt := range in.Options {
		ok, err := in.OptionConditions[opt].Eval(env)
		if err != nil {
			return nil, WrapError(err).With(slog.String("option", opt))
		}

		if ok {
			out = append(out, opt)
		}
	}

	return out, nil
}

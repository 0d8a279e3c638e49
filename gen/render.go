package gen

import (
	"embed"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"
	"text/template"

	"github.com/ardnew/menugen/menu"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// RecordTemplate is the name of the template executed once per record.
const RecordTemplate = "record"

// TemplateRenderer renders records by executing [RecordTemplate].
type TemplateRenderer struct {
	tmpl *template.Template
}

// NewTemplateRenderer returns the renderer for the embedded C template.
func NewTemplateRenderer() *TemplateRenderer {
	return &TemplateRenderer{
		tmpl: template.Must(
			template.New("menu").Funcs(Funcs()).ParseFS(templateFS, "templates/*.tmpl"),
		),
	}
}

// ParseTemplate returns a renderer whose record template is text. The text
// may use the functions in [Funcs] and call the "hook" and "input"
// templates of the embedded set.
func ParseTemplate(text string) (*TemplateRenderer, error) {
	base, err := template.New("menu").Funcs(Funcs()).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}

	tmpl, err := base.New(RecordTemplate).Parse(text)
	if err != nil {
		return nil, ErrTemplate.Wrap(err)
	}

	return &TemplateRenderer{tmpl: tmpl}, nil
}

// Render implements [Renderer].
func (r *TemplateRenderer) Render(w io.Writer, rec Record) error {
	return r.tmpl.ExecuteTemplate(w, RecordTemplate, rec)
}

// Funcs returns the template functions available to record templates.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"cstr":       cstr,
		"cbool":      cbool,
		"comment":    comment,
		"strs":       strs,
		"values":     values,
		"args":       args,
		"itemType":   itemType,
		"inputType":  inputType,
		"resultMode": resultMode,
		"match":      match,
		"rules":      rules,
		"groups":     groups,
		"ruleKind":   ruleKind,
	}
}

// Quote returns s as a C string literal. Control bytes use three-digit
// octal escapes so a following digit cannot extend them.
func Quote(s string) string {
	var b strings.Builder

	b.Grow(len(s) + 2)
	b.WriteByte('"')

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '?':
			// "??x" would be read as a trigraph
			if i > 0 && s[i-1] == '?' {
				b.WriteString(`\?`)
			} else {
				b.WriteByte(c)
			}
		default:
			if c < 0x20 || c == 0x7f {
				b.WriteByte('\\')
				b.WriteByte('0' + c>>6)
				b.WriteByte('0' + c>>3&7)
				b.WriteByte('0' + c&7)
			} else {
				b.WriteByte(c)
			}
		}
	}

	b.WriteByte('"')

	return b.String()
}

// cstr quotes a string or *string, rendering nil as NULL.
func cstr(v any) string {
	switch s := v.(type) {
	case string:
		return Quote(s)
	case *string:
		if s != nil {
			return Quote(*s)
		}
	}

	return "NULL"
}

func cbool(v bool) string {
	if v {
		return "true"
	}

	return "false"
}

// comment makes s safe inside a C block comment on one line.
func comment(s string) string {
	return strings.NewReplacer("*/", "* /", "\n", " ", "\r", " ").Replace(s)
}

// strs renders a string array compound literal, or NULL when empty.
func strs(list []string) string {
	if len(list) == 0 {
		return "NULL"
	}

	q := make([]string, len(list))
	for i, s := range list {
		q[i] = Quote(s)
	}

	return "(const char* const[]){" + strings.Join(q, ", ") + "}"
}

// values renders a NULL-terminated string array as an opaque handler
// payload, or NULL when empty.
func values(list []string) string {
	if len(list) == 0 {
		return "NULL"
	}

	q := make([]string, 0, len(list)+1)
	for _, s := range list {
		q = append(q, Quote(s))
	}

	q = append(q, "NULL")

	return "(void*)(const char* const[]){" + strings.Join(q, ", ") + "}"
}

// args renders hook arguments as a NULL-terminated array of alternating
// keys and values in key order, or NULL when empty.
func args(m map[string]any) string {
	if len(m) == 0 {
		return "NULL"
	}

	list := make([]string, 0, 2*len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		list = append(list, k, argString(m[k]))
	}

	return values(list)
}

func argString(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		s := make([]string, len(v))
		for i, e := range v {
			s[i] = argString(e)
		}

		return strings.Join(s, ",")
	case map[string]any:
		s := make([]string, 0, len(v))
		for _, k := range slices.Sorted(maps.Keys(v)) {
			s = append(s, k+"="+argString(v[k]))
		}

		return strings.Join(s, ",")
	default:
		return ""
	}
}

var itemTypes = [...]string{
	menu.TypeAction:  "MENU_TYPE_ACTION",
	menu.TypeSubmenu: "MENU_TYPE_SUBMENU",
	menu.TypeDisplay: "MENU_TYPE_DISPLAY",
}

var inputTypes = [...]string{
	menu.InputRange:   "INPUT_TYPE_RANGE",
	menu.InputOptions: "INPUT_TYPE_OPTIONS",
	menu.InputCustom:  "INPUT_TYPE_CUSTOM",
}

var resultModes = [...]string{
	menu.ResultTimed:       "RESULT_MODE_TIMED",
	menu.ResultAcknowledge: "RESULT_MODE_ACKNOWLEDGE",
}

var matches = [...]string{
	menu.MatchAll: "CONDITION_MATCH_ALL",
	menu.MatchAny: "CONDITION_MATCH_ANY",
}

func itemType(t menu.Type) string { return itemTypes[t] }

func inputType(k menu.InputKind) string { return inputTypes[k] }

func resultMode(m menu.ResultMode) string { return resultModes[m] }

func match(m menu.Match) string { return matches[m] }

// rules returns the top-level rules of c that the runtime can represent.
func rules(c *menu.Conditions) []menu.Rule {
	out := make([]menu.Rule, 0, len(c.Rules))

	for _, r := range c.Rules {
		if _, ok := r.(menu.RuleGroup); !ok {
			out = append(out, r)
		}
	}

	return out
}

// groups returns the expressions of the top-level rule groups of c.
func groups(c *menu.Conditions) []string {
	var out []string

	for _, r := range c.Rules {
		if g, ok := r.(menu.RuleGroup); ok {
			out = append(out, (&menu.Conditions{Match: g.Match, Rules: g.Rules}).Expr())
		}
	}

	return out
}

func ruleKind(r menu.Rule) string {
	switch r.(type) {
	case menu.FeatureRule:
		return "feature"
	case menu.ValueRule:
		return "value"
	case menu.RuleGroup:
		return "group"
	default:
		return ""
	}
}

package gen

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ardnew/menugen/log"
	"github.com/ardnew/menugen/menu"
)

func parse(t *testing.T, doc string) *menu.Item {
	t.Helper()

	item, err := menu.Parse(context.Background(), []byte(doc))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	return item
}

func quiet() log.Logger {
	return log.Make(io.Discard)
}

func TestGenerate_RoundTripScenario(t *testing.T) {
	root := parse(t, `{"main_menu": {"label": "Root", "type": "submenu", "children": [
		{"label": "A", "type": "action", "operation": {"action": "do_a"}}]}}`)

	var buf bytes.Buffer
	if err := New(WithLogger(quiet())).Generate(context.Background(), &buf, root); err != nil {
		t.Fatal(err)
	}

	want := DefaultHeader + `

static const menu_item_t menu_item_1 = {
    .label = "A",
    .label_short = NULL,
    .icon = NULL,
    .shortcut = NULL,
    .help_text = NULL,
    .type = MENU_TYPE_ACTION,
    /* operation_2 */
    .operation = {
        .action = "do_a",
    },
};

static const menu_item_t* const menu_item_0_children[] = {
    &menu_item_1,
};

static const menu_item_t menu_item_0 = {
    .label = "Root",
    .label_short = NULL,
    .icon = NULL,
    .shortcut = NULL,
    .help_text = NULL,
    .type = MENU_TYPE_SUBMENU,
    .children = menu_item_0_children,
    .child_count = 1,
};
` + DefaultFooter

	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestGenerate_NamingAndOrder(t *testing.T) {
	root := parse(t, `{"main_menu": {"label": "R", "type": "submenu",
		"conditions.feature_enabled": "menu",
		"children": [
			{"label": "A", "type": "action", "operation": {"action": "a"}},
			{"label": "B", "type": "submenu", "children": [
				{"label": "B1", "type": "action", "operation": {"action": "b1"}}]},
			{"label": "C", "type": "display"}]}}`)

	var got []Record

	record := RendererFunc(func(_ io.Writer, rec Record) error {
		got = append(got, rec)

		return nil
	})

	err := New(WithRenderer(record), WithLogger(quiet())).
		Generate(context.Background(), io.Discard, root)
	if err != nil {
		t.Fatal(err)
	}

	want := []Record{
		{Name: "menu_item_1", Parent: "menu_item_0", Children: []string{}, Operation: "operation_2"},
		{Name: "menu_item_3", Parent: "menu_item_2", Children: []string{}, Operation: "operation_4"},
		{Name: "menu_item_2", Parent: "menu_item_0", Children: []string{"menu_item_3"}},
		{Name: "menu_item_4", Parent: "menu_item_0", Children: []string{}},
		{
			Name:       "menu_item_0",
			Children:   []string{"menu_item_1", "menu_item_2", "menu_item_4"},
			Conditions: "conditions_5",
		},
	}

	if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(Record{}, "Item")); diff != "" {
		t.Errorf("records (-want +got):\n%s", diff)
	}

	if len(got) != root.Count() {
		t.Errorf("emitted %d records for %d items", len(got), root.Count())
	}

	labels := make([]string, len(got))
	for i, rec := range got {
		labels[i] = rec.Item.Label
	}

	if diff := cmp.Diff([]string{"A", "B1", "B", "C", "R"}, labels); diff != "" {
		t.Errorf("emission order (-want +got):\n%s", diff)
	}
}

func TestGenerate_ChildrenPrecedeParent(t *testing.T) {
	root := parse(t, `{"main_menu": {"label": "R", "type": "submenu", "children": [
		{"label": "S", "type": "submenu", "children": [
			{"label": "T", "type": "display"},
			{"label": "U", "type": "display"}]}]}}`)

	var buf bytes.Buffer
	if err := New(WithLogger(quiet())).Generate(context.Background(), &buf, root); err != nil {
		t.Fatal(err)
	}

	out := buf.String()

	// every reference must follow its definition
	for _, pair := range [][2]string{
		{"static const menu_item_t menu_item_2 = {", "&menu_item_2,"},
		{"static const menu_item_t menu_item_3 = {", "&menu_item_3,"},
		{"static const menu_item_t menu_item_1 = {", "&menu_item_1,"},
		{"menu_item_1_children[] = {", ".children = menu_item_1_children,"},
		{"menu_item_0_children[] = {", ".children = menu_item_0_children,"},
		{"static const menu_item_t menu_item_0 = {", "menu_root = &menu_item_0;"},
	} {
		def, ref := strings.Index(out, pair[0]), strings.Index(out, pair[1])
		if def < 0 || ref < 0 || def > ref {
			t.Errorf("%q (at %d) should precede %q (at %d)", pair[0], def, pair[1], ref)
		}
	}

	if n := strings.Count(out, "static const menu_item_t menu_item_"); n != 4 {
		t.Errorf("expected 4 records, got %d", n)
	}
}

func TestGenerate_FullRecord(t *testing.T) {
	root := parse(t, `{"main_menu": {"label": "RGB \"Hue\"", "type": "action",
		"label_short": "Hue", "icon": "bulb", "shortcut": "KC_H", "help_text": "line1\nline2",
		"conditions": {"match": "any", "rules": [
			{"feature_enabled": "rgb"},
			{"value_equals": {"variable": "mode", "value": "static"}},
			{"match": "all", "rules": [{"feature_enabled": "a"}, {"feature_enabled": "b"}]}]},
		"operation": {
			"action": "rgb_hue",
			"precondition": {"handler": "rgb_on", "message": "RGB off", "args": {"min": 2, "name": "x"}},
			"input": [
				{"type": "range", "default": 10, "range": "0:255:5", "wrap": true},
				{"type": "options", "default": "a", "options": ["a", "b"], "options.conditions": {"b": "fast"}},
				{"type": "custom", "default": "0", "handler": "pick", "display_values": ["red"]}],
			"confirm": {"message": "Apply?", "timeout_sec": 3},
			"result": {"message": "Done", "mode": "acknowledge"},
			"postcondition": {"handler": "rgb_save", "message": "Saving"}}}}`)

	var buf bytes.Buffer
	if err := New(WithLogger(quiet())).Generate(context.Background(), &buf, root); err != nil {
		t.Fatal(err)
	}

	out := buf.String()

	for _, want := range []string{
		`.label = "RGB \"Hue\"",`,
		`.label_short = "Hue",`,
		`.help_text = "line1\nline2",`,
		`.type = MENU_TYPE_ACTION,`,
		`/* operation_1 */`,
		`.action = "rgb_hue",`,
		`.precondition = &(const precondition_config_t){`,
		`.args = (void*)(const char* const[]){"min", "2", "name", "x", NULL},`,
		`.inputs = (const input_config_t[]){`,
		`.type = INPUT_TYPE_RANGE,`,
		`.default_val = "10",`,
		`.wrap = true,`,
		`.data = { .range = { .min = 0, .max = 255, .step = 5 } },`,
		`/* option b if features["fast"] */`,
		`.data = { .options = { .options = (const char* const[]){"a", "b"}, .option_count = 2 } },`,
		`.data = { .custom = { .handler = "pick", .data = (void*)(const char* const[]){"red", NULL} } },`,
		`.input_count = 3,`,
		`.confirm = &(const confirm_config_t){`,
		`.timeout_sec = 3,`,
		`.true_text = "Yes",`,
		`.false_text = "No",`,
		`.mode = RESULT_MODE_ACKNOWLEDGE,`,
		`.ok_text = NULL,`,
		`.postcondition = &(const postcondition_config_t){`,
		`/* conditions_1: `,
		`.match = CONDITION_MATCH_ANY,`,
		`/* nested rule group omitted: features["a"] && features["b"] */`,
		`{ .type = RULE_FEATURE_ENABLED, .rule_data = { .feature = "rgb" } },`,
		`{ .type = RULE_VALUE_EQUALS, .rule_data = { .value_equals = { .variable = "mode", .value = "static" } } },`,
		`.rule_count = 2,`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestGenerate_NestedGroupWarning(t *testing.T) {
	root := parse(t, `{"main_menu": {"label": "R", "type": "display", "conditions": {
		"match": "all", "rules": [{"match": "any", "rules": [{"feature_enabled": "x"}]}]}}}`)

	var logs bytes.Buffer

	logger := log.Make(&logs, log.WithPretty(false), log.WithLevel(log.LevelWarn))

	if err := New(WithLogger(logger)).Generate(context.Background(), io.Discard, root); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(logs.String(), "nested rule groups have no runtime form") {
		t.Errorf("expected warning, got %q", logs.String())
	}
}

type failWriter struct{ err error }

func (f failWriter) Write([]byte) (int, error) { return 0, f.err }

func TestGenerate_SinkErrorUnchanged(t *testing.T) {
	sinkErr := errors.New("disk full")
	root := parse(t, `{"main_menu": {"label": "R", "type": "display"}}`)

	err := New(WithLogger(quiet())).Generate(context.Background(), failWriter{sinkErr}, root)
	if err != sinkErr {
		t.Errorf("Generate() error = %v, want %v", err, sinkErr)
	}
}

func TestGenerate_NoPartialOutput(t *testing.T) {
	root := parse(t, `{"main_menu": {"label": "R", "type": "submenu", "children": [
		{"label": "ok", "type": "display"},
		{"label": "bad", "type": "display"}]}}`)

	renderErr := errors.New("boom")
	record := RendererFunc(func(w io.Writer, rec Record) error {
		if rec.Item.Label == "bad" {
			return renderErr
		}

		_, err := io.WriteString(w, rec.Name+"\n")

		return err
	})

	var buf bytes.Buffer

	err := New(WithRenderer(record), WithLogger(quiet())).
		Generate(context.Background(), &buf, root)
	if !errors.Is(err, ErrRender) || !errors.Is(err, renderErr) {
		t.Errorf("expected render error, got %v", err)
	}

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestGenerate_HeaderFooter(t *testing.T) {
	root := parse(t, `{"main_menu": {"label": "R", "type": "display"}}`)

	record := RendererFunc(func(w io.Writer, rec Record) error {
		_, err := io.WriteString(w, rec.Name+";")

		return err
	})

	var buf bytes.Buffer

	err := New(WithRenderer(record), WithHeader("<"), WithFooter(">"), WithLogger(quiet())).
		Generate(context.Background(), &buf, root)
	if err != nil {
		t.Fatal(err)
	}

	if got := buf.String(); got != "<menu_item_0;>" {
		t.Errorf("output = %q", got)
	}
}

func TestGenerate_Errors(t *testing.T) {
	if err := New().Generate(context.Background(), io.Discard, nil); !errors.Is(err, ErrNilRoot) {
		t.Errorf("nil root: %v", err)
	}

	wide := &menu.Item{Label: "R", Type: menu.TypeSubmenu}
	for range maxCount + 1 {
		wide.Children = append(wide.Children, &menu.Item{Label: "c", Type: menu.TypeDisplay})
	}

	err := New(WithLogger(quiet())).Generate(context.Background(), io.Discard, wide)
	if !errors.Is(err, ErrCountOverflow) {
		t.Errorf("too many children: %v", err)
	}
}

func TestParseTemplate(t *testing.T) {
	r, err := ParseTemplate(`{{.Name}}={{cstr .Item.Label}} {{itemType .Item.Type}}{{"\n"}}`)
	if err != nil {
		t.Fatal(err)
	}

	root := parse(t, `{"main_menu": {"label": "R", "type": "submenu", "children": [
		{"label": "x", "type": "display"}]}}`)

	var buf bytes.Buffer

	err = New(WithRenderer(r), WithHeader(""), WithFooter(""), WithLogger(quiet())).
		Generate(context.Background(), &buf, root)
	if err != nil {
		t.Fatal(err)
	}

	want := "menu_item_1=\"x\" MENU_TYPE_DISPLAY\nmenu_item_0=\"R\" MENU_TYPE_SUBMENU\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}

	if _, err := ParseTemplate(`{{.Name`); !errors.Is(err, ErrTemplate) {
		t.Errorf("expected ErrTemplate, got %v", err)
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", `"plain"`},
		{`a"b`, `"a\"b"`},
		{`back\slash`, `"back\\slash"`},
		{"tab\there", `"tab\there"`},
		{"bell\x07", `"bell\007"`},
		{"\x01" + "2", `"\0012"`},
		{"what??!", `"what?\?!"`},
		{"héllo", `"héllo"`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Quote(tt.in); got != tt.want {
				t.Errorf("Quote(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestMake_Defaults(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf)

	if logger.Level() != DefaultLevel {
		t.Errorf("expected level %v, got %v", DefaultLevel, logger.Level())
	}

	if logger.Format() != DefaultFormat {
		t.Errorf("expected format %v, got %v", DefaultFormat, logger.Format())
	}

	if logger.caller {
		t.Error("expected caller disabled by default")
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name   string
		level  Level
		log    func(Logger)
		logged bool
	}{
		{"debug below info", LevelInfo, func(l Logger) { l.Debug("msg") }, false},
		{"info at info", LevelInfo, func(l Logger) { l.Info("msg") }, true},
		{"trace at trace", LevelTrace, func(l Logger) { l.Trace("msg") }, true},
		{"warn below error", LevelError, func(l Logger) { l.Warn("msg") }, false},
		{"error at error", LevelError, func(l Logger) { l.Error("msg") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			tt.log(Make(&buf, WithLevel(tt.level), WithPretty(false)))

			if got := buf.Len() > 0; got != tt.logged {
				t.Errorf("logged = %v, want %v (output %q)", got, tt.logged, buf.String())
			}
		})
	}
}

func TestLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithPretty(false), WithTimeLayout("none"))
	logger.Info("generated", slog.Int("items", 3))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}

	if rec["msg"] != "generated" {
		t.Errorf("msg = %v", rec["msg"])
	}

	if rec["level"] != "INFO" {
		t.Errorf("level = %v", rec["level"])
	}

	if _, ok := rec["time"]; ok {
		t.Error("time should be omitted with layout none")
	}

	if rec["items"] != float64(3) {
		t.Errorf("items = %v", rec["items"])
	}
}

func TestLogger_TraceLevelName(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithLevel(LevelTrace), WithPretty(false)).Trace("deep")

	if !strings.Contains(buf.String(), `"level":"TRACE"`) {
		t.Errorf("expected TRACE level name, got %q", buf.String())
	}
}

func TestLogger_PrettyJSONIndents(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithPretty(true), WithFormat(FormatJSON)).Warn("hello")

	if !strings.Contains(buf.String(), "\n  \"msg\": \"hello\"") {
		t.Errorf("expected indented JSON, got %q", buf.String())
	}
}

func TestLogger_PrettyText(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithPretty(true), WithFormat(FormatText), WithTimeLayout(""))
	logger.With(slog.String("component", "gen")).Info("hello", slog.Bool("ok", true))

	out := buf.String()
	for _, want := range []string{"hello", "component", "gen", colorGreen + "true"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}

	if strings.Contains(out, "time") {
		t.Errorf("time should be omitted, got %q", out)
	}
}

func TestLogger_ZeroValue(t *testing.T) {
	var logger Logger

	// must not panic
	logger.Info("ignored")
	logger.With(slog.String("k", "v")).Error("ignored")

	if logger.Level() != DefaultLevel {
		t.Errorf("zero logger level = %v", logger.Level())
	}
}

func TestLogger_Wrap(t *testing.T) {
	var buf bytes.Buffer

	base := Make(&buf, WithLevel(LevelError), WithPretty(false))
	wrapped := base.Wrap(WithLevel(LevelDebug))

	wrapped.Debug("visible")
	base.Debug("hidden")

	if strings.Count(buf.String(), "\n") != 1 || !strings.Contains(buf.String(), "visible") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"trace", LevelTrace},
		{"TRACE", LevelTrace},
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"bogus", DefaultLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	if ParseFormat(" TEXT ") != FormatText {
		t.Error("expected text")
	}

	if ParseFormat("yaml") != DefaultFormat {
		t.Error("expected default for unknown format")
	}
}

func TestMakeFormatTimeFunc(t *testing.T) {
	ts := time.Date(2024, 10, 21, 17, 38, 17, 0, time.UTC)

	tests := []struct {
		layout string
		want   string
	}{
		{"RFC3339", "2024-10-21T17:38:17Z"},
		{"kitchen", "5:38PM"},
		{"2006/01/02", "2024/10/21"},
		{"none", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.layout, func(t *testing.T) {
			if got := makeFormatTimeFunc(tt.layout)(ts); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLevels(t *testing.T) {
	var names []string
	for name := range Levels() {
		names = append(names, name)
	}

	if strings.Join(names, ",") != "trace,debug,info,warn,error" {
		t.Errorf("unexpected levels %v", names)
	}
}

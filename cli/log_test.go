package cli

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/menugen/log"
)

func TestLogScan(t *testing.T) {
	t.Cleanup(func() {
		log.Config(
			log.WithLevel(log.DefaultLevel),
			log.WithFormat(log.DefaultFormat),
			log.WithCaller(log.DefaultCaller),
			log.WithPretty(log.DefaultPretty),
		)
	})

	tests := []struct {
		name string
		args []string
		want logConfig
	}{
		{
			name: "separate values",
			args: []string{"gen", "--log-level", "debug", "--log-format", "text", "menu.json"},
			want: logConfig{Level: "debug", Format: "text", Pretty: true},
		},
		{
			name: "assigned values",
			args: []string{"--log-level=trace", "--log-caller", "--no-log-pretty"},
			want: logConfig{Level: "trace", Caller: true},
		},
		{
			name: "assigned booleans",
			args: []string{"--log-pretty=false", "--no-log-caller=false"},
			want: logConfig{Caller: true},
		},
		{
			name: "bad boolean ignored",
			args: []string{"--log-caller=maybe"},
			want: logConfig{Pretty: true},
		},
		{
			name: "value looks like flag",
			args: []string{"--log-level", "--log-caller"},
			want: logConfig{Caller: true, Pretty: true},
		},
		{
			name: "stops at terminator",
			args: []string{"--", "--log-level", "error"},
			want: logConfig{Pretty: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := logConfig{Pretty: true}
			got.scan(tt.args)

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestToggle(t *testing.T) {
	tests := []struct {
		name, value string
		assigned    bool
		want, ok    bool
	}{
		{"--log-caller", "", false, true, true},
		{"--no-log-caller", "", false, false, true},
		{"--log-caller", "0", true, false, true},
		{"--no-log-caller", "0", true, true, true},
		{"--log-caller", "x", true, false, false},
	}

	for _, tt := range tests {
		got, ok := toggle(tt.name, tt.value, tt.assigned)
		if got != tt.want || ok != tt.ok {
			t.Errorf("toggle(%q, %q, %v) = %v, %v", tt.name, tt.value, tt.assigned, got, ok)
		}
	}
}

package cmd

import (
	"errors"
	"strings"
	"testing"
)

func TestPreviewRun(t *testing.T) {
	tests := []struct {
		name    string
		preview Preview
		want    []string
		exclude []string
	}{
		{
			name:    "all screens",
			preview: Preview{Source: "-"},
			want: []string{
				"menu_item_0 navigate",
				"> RGB",
				"About",
				"menu_item_1 input",
				"menu_item_1 confirm",
				"Apply mode?",
				"menu_item_1 action",
				"Processing...",
				"menu_item_1 result",
				"> OK",
			},
			exclude: []string{"precondition", "postcondition"},
		},
		{
			name:    "confirm starts on default choice",
			preview: Preview{Phase: "confirm", Source: "-"},
			want:    []string{"Apply mode?", "  Yes", "> No"},
			exclude: []string{"navigate", "Processing..."},
		},
		{
			name:    "single item",
			preview: Preview{Item: "menu_item_0", Source: "-"},
			want:    []string{"menu_item_0 navigate"},
			exclude: []string{"menu_item_1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out := testContext(t, testMenu, Input{})

			if err := tt.preview.Run(ctx); err != nil {
				t.Fatal(err)
			}

			got := out.String()

			for _, s := range tt.want {
				if !strings.Contains(got, s) {
					t.Errorf("output missing %q\n%s", s, got)
				}
			}

			for _, s := range tt.exclude {
				if strings.Contains(got, s) {
					t.Errorf("output should not contain %q\n%s", s, got)
				}
			}
		})
	}
}

func TestPreviewUnknownPhase(t *testing.T) {
	ctx, _ := testContext(t, testMenu, Input{})

	err := (&Preview{Phase: "teardown", Source: "-"}).Run(ctx)
	if !errors.Is(err, ErrUnknownPhase) {
		t.Errorf("expected ErrUnknownPhase, got %v", err)
	}
}

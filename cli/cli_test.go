package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/menugen/cli/cmd"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "menugen-cli")
	if err != nil {
		panic(err)
	}

	os.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	os.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))

	code := m.Run()

	os.RemoveAll(dir)
	os.Exit(code)
}

const cliMenu = `{"main_menu": {"label": "Main", "type": "submenu", "children": [
	{"label": "About", "type": "display"}]}}`

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	ctx := cmd.WithStdio(context.Background(), strings.NewReader(""), &out)
	exit := func(code int) { t.Fatalf("unexpected exit(%d)", code) }

	err := Run(ctx, exit, append([]string{"--log-level", "error"}, args...)...)

	return out.String(), err
}

func writeMenu(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestRunDefaultCommand(t *testing.T) {
	out, err := runCLI(t, writeMenu(t, "menu.json", cliMenu))
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"static const menu_item_t menu_item_1 = {",
		"const menu_item_t* const menu_root = &menu_item_0;",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRunRootAndYAML(t *testing.T) {
	src := writeMenu(t, "menu.txt", "menu:\n  label: Top\n  type: display\n")

	out, err := runCLI(t, "--root", "menu", "--yaml", "fmt", "ast", src)
	if err != nil {
		t.Fatal(err)
	}

	if want := "menu_item_0 display \"Top\"\n"; out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestRunConfigFile(t *testing.T) {
	if err := mkdirAllRequired(); err != nil {
		t.Fatal(err)
	}

	path := configPath(baseConfig + configExt)
	if err := os.WriteFile(path, []byte("root: menu\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() { os.Remove(path) })

	src := writeMenu(t, "menu.json", `{"menu": {"label": "Configured", "type": "display"}}`)

	out, err := runCLI(t, "fmt", "ast", src)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(out, `"Configured"`) {
		t.Errorf("root key from config not applied: %q", out)
	}
}

func TestRunInit(t *testing.T) {
	path := configPath(baseConfig + configExt)
	t.Cleanup(func() { os.Remove(path) })

	if _, err := runCLI(t, "--root", "menu", "init", "--force"); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(string(data), "root: menu") {
		t.Errorf("config missing root:\n%s", data)
	}

	if strings.Contains(string(data), "version") {
		t.Errorf("config should not record the version flag:\n%s", data)
	}
}

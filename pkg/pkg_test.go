package pkg

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	if Name != "menugen" {
		t.Errorf("Name = %q", Name)
	}
}

func TestVersion(t *testing.T) {
	buf, err := os.ReadFile("VERSION")
	if err != nil {
		t.Fatalf("read VERSION: %v", err)
	}

	if want := strings.TrimSpace(string(buf)); Version != want {
		t.Errorf("Version = %q, want %q", Version, want)
	}

	if strings.ContainsAny(Version, " \n") {
		t.Errorf("Version %q contains whitespace", Version)
	}
}

func TestAuthor(t *testing.T) {
	if !slices.ContainsFunc(Author, func(a AuthorInfo) bool {
		return a.Name == "ardnew" && a.Email == "andrew@ardnew.com"
	}) {
		t.Error("Author should list ardnew")
	}

	for i, a := range Author {
		if a.Name == "" && a.Email == "" {
			t.Errorf("Author[%d] must define at least Name or Email", i)
		}
	}
}

func TestUserDir(t *testing.T) {
	got := userDir(func() (string, error) { return "/base", nil }, ".x")
	if want := filepath.Join("/base", Prefix()); got != want {
		t.Errorf("userDir = %q, want %q", got, want)
	}

	home := t.TempDir()
	t.Setenv("HOME", home)

	got = userDir(func() (string, error) { return "", errors.New("unset") }, ".x")
	if want := filepath.Join(home, ".x", Prefix()); got != want {
		t.Errorf("userDir fallback = %q, want %q", got, want)
	}
}

func TestPrefix(t *testing.T) {
	p := Prefix()
	if p == "" || strings.HasPrefix(p, ".") || strings.Contains(p, string(filepath.Separator)) {
		t.Errorf("Prefix = %q", p)
	}
}

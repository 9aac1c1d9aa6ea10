package version

import (
	"strings"
	"testing"
)

func TestGet_DefaultsToDev(t *testing.T) {
	info := Get()
	if info.Version != "dev" {
		t.Errorf("expected dev version, got %q", info.Version)
	}
	if info.GoVersion == "" {
		t.Error("expected GoVersion from build info")
	}
}

func TestShort_ContainsVersion(t *testing.T) {
	short := Short()
	if !strings.HasPrefix(short, "dev") {
		t.Errorf("expected short version to start with dev, got %q", short)
	}
}

func TestShorten(t *testing.T) {
	if got := shorten("abcdef1234567890"); got != "abcdef1" {
		t.Errorf("expected 7-char commit, got %q", got)
	}
	if got := shorten("abc"); got != "abc" {
		t.Errorf("expected short commit unchanged, got %q", got)
	}
}

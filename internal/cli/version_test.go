package cli

import "testing"

func TestResolveVersionInfo_LdflagsOverride(t *testing.T) {
	original := version
	defer func() { version = original }()

	version = "1.2.3"
	v, _, _ := resolveVersionInfo()
	if v != "1.2.3" {
		t.Errorf("expected ldflags version '1.2.3', got %q", v)
	}
}

func TestResolveVersionInfo_DevFallback(t *testing.T) {
	origV, origC, origD := version, commit, date
	defer func() { version, commit, date = origV, origC, origD }()

	version, commit, date = "dev", "unknown", "unknown"
	v, c, d := resolveVersionInfo()

	if v == "" || c == "" || d == "" {
		t.Errorf("resolved values must not be empty: version=%q commit=%q date=%q", v, c, d)
	}
	if len(c) > 12 {
		t.Errorf("commit should be shortened, got %q", c)
	}
}

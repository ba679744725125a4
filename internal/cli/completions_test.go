package cli

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestCompleteSSLModes(t *testing.T) {
	cmd := &cobra.Command{}

	t.Run("returns all modes for empty input", func(t *testing.T) {
		completions, directive := completeSSLModes(cmd, nil, "")
		if len(completions) != len(sslModes) {
			t.Errorf("expected %d completions, got %d", len(sslModes), len(completions))
		}
		if directive != cobra.ShellCompDirectiveNoFileComp {
			t.Errorf("expected ShellCompDirectiveNoFileComp, got %v", directive)
		}
	})

	t.Run("filters by prefix", func(t *testing.T) {
		completions, _ := completeSSLModes(cmd, nil, "ver")
		if len(completions) != 2 {
			t.Errorf("expected 2 completions (verify-ca, verify-full), got %d", len(completions))
		}
		for _, c := range completions {
			if c != "verify-ca" && c != "verify-full" {
				t.Errorf("unexpected completion: %s", c)
			}
		}
	})

	t.Run("returns empty for non-matching prefix", func(t *testing.T) {
		completions, _ := completeSSLModes(cmd, nil, "xyz")
		if len(completions) != 0 {
			t.Errorf("expected 0 completions, got %d", len(completions))
		}
	})
}

func TestCompleteOutputFormats(t *testing.T) {
	completions, _ := completeOutputFormats(&cobra.Command{}, nil, "j")
	if len(completions) != 1 || completions[0] != "json" {
		t.Errorf("expected [json], got %v", completions)
	}
}

func TestCompleteEntityNames(t *testing.T) {
	cmd := &cobra.Command{}

	t.Run("completes entity for the first argument", func(t *testing.T) {
		completions, directive := completeEntityNames(cmd, nil, "p")
		want := map[string]bool{"payment": true, "profile": true, "product": true}
		if len(completions) != len(want) {
			t.Fatalf("expected %d completions, got %v", len(want), completions)
		}
		for _, c := range completions {
			if !want[c] {
				t.Errorf("unexpected completion: %s", c)
			}
		}
		if directive != cobra.ShellCompDirectiveNoFileComp {
			t.Errorf("expected ShellCompDirectiveNoFileComp, got %v", directive)
		}
	})

	t.Run("falls back to files for the source argument", func(t *testing.T) {
		completions, directive := completeEntityNames(cmd, []string{"product"}, "")
		if completions != nil {
			t.Errorf("expected nil completions, got %v", completions)
		}
		if directive != cobra.ShellCompDirectiveDefault {
			t.Errorf("expected ShellCompDirectiveDefault, got %v", directive)
		}
	})
}

func TestCompleteQueryNames(t *testing.T) {
	cmd := &cobra.Command{}

	completions, _ := completeQueryNames(cmd, nil, "vendor-")
	if len(completions) < 3 {
		t.Errorf("expected vendor-* entries, got %v", completions)
	}
	for _, c := range completions {
		if len(c) < 7 || c[:7] != "vendor-" {
			t.Errorf("unexpected completion: %s", c)
		}
	}

	completions, _ = completeQueryNames(cmd, []string{"vendor-info"}, "")
	if len(completions) != 0 {
		t.Errorf("expected no completions after the name, got %v", completions)
	}
}

func TestCompleteQueryGroups(t *testing.T) {
	completions, _ := completeQueryGroups(&cobra.Command{}, nil, "an")
	if len(completions) != 1 || completions[0] != "analytics" {
		t.Errorf("expected [analytics], got %v", completions)
	}
}

func TestCompleteDirectories(t *testing.T) {
	cmd := &cobra.Command{}

	t.Run("returns filter dirs directive for first arg", func(t *testing.T) {
		completions, directive := completeDirectories(cmd, nil, "")
		if completions != nil {
			t.Errorf("expected nil completions, got %v", completions)
		}
		if directive != cobra.ShellCompDirectiveFilterDirs {
			t.Errorf("expected ShellCompDirectiveFilterDirs, got %v", directive)
		}
	})

	t.Run("returns no file comp for subsequent args", func(t *testing.T) {
		_, directive := completeDirectories(cmd, []string{"first"}, "")
		if directive != cobra.ShellCompDirectiveNoFileComp {
			t.Errorf("expected ShellCompDirectiveNoFileComp, got %v", directive)
		}
	})
}

package cli

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/vvka-141/ecomadmin/pkg/ecomadmin"
)

func TestRequireArgs(t *testing.T) {
	cmd := &cobra.Command{
		Use: "load <entity> <file>",
	}
	validate := requireArgs("product data/product.csv", "entity", "file")

	t.Run("returns error naming the first missing argument", func(t *testing.T) {
		err := validate(cmd, []string{})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "missing required argument: <entity>") {
			t.Errorf("expected error to contain 'missing required argument: <entity>', got: %s", err.Error())
		}
		if !strings.Contains(err.Error(), "Example:") {
			t.Errorf("expected error to contain 'Example:', got: %s", err.Error())
		}
	})

	t.Run("names the second argument when only one is given", func(t *testing.T) {
		err := validate(cmd, []string{"product"})
		if err == nil || !strings.Contains(err.Error(), "<file>") {
			t.Errorf("expected error about <file>, got: %v", err)
		}
	})

	t.Run("returns nil when all args provided", func(t *testing.T) {
		if err := validate(cmd, []string{"product", "product.csv"}); err != nil {
			t.Errorf("expected nil, got: %v", err)
		}
	})

	t.Run("returns error when too many args", func(t *testing.T) {
		err := validate(cmd, []string{"a", "b", "c"})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "accepts 2 arg") {
			t.Errorf("expected error to contain 'accepts 2 arg', got: %s", err.Error())
		}
	})

	t.Run("errors map to the usage exit code", func(t *testing.T) {
		for _, args := range [][]string{{}, {"a", "b", "c"}} {
			if code := ecomadmin.ExitCodeForError(validate(cmd, args)); code != ecomadmin.ExitUsageError {
				t.Errorf("args %v: expected exit code %d, got %d", args, ecomadmin.ExitUsageError, code)
			}
		}
	})
}

func TestOptionalArg(t *testing.T) {
	cmd := &cobra.Command{Use: "all [dir]"}
	validate := optionalArg("dir")

	if err := validate(cmd, nil); err != nil {
		t.Errorf("expected nil for no args, got: %v", err)
	}
	if err := validate(cmd, []string{"data"}); err != nil {
		t.Errorf("expected nil for one arg, got: %v", err)
	}

	err := validate(cmd, []string{"a", "b"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if code := ecomadmin.ExitCodeForError(err); code != ecomadmin.ExitUsageError {
		t.Errorf("expected exit code %d, got %d", ecomadmin.ExitUsageError, code)
	}
}

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// requireArgs returns a cobra.PositionalArgs that demands exactly the named
// positional arguments. The error for a missing argument repeats the usage
// line and shows example, so a bare invocation explains itself.
func requireArgs(example string, names ...string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < len(names) {
			missing := names[len(args)]
			return fmt.Errorf(`missing required argument: <%s>

Usage: %s

Example:
  %s %s`, missing, cmd.UseLine(), cmd.CommandPath(), example)
		}
		if len(args) > len(names) {
			return fmt.Errorf("accepts %d arg(s), received %d", len(names), len(args))
		}
		return nil
	}
}

// optionalArg allows at most one positional argument.
func optionalArg(name string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > 1 {
			return fmt.Errorf("accepts at most 1 arg(s) [<%s>], received %d: %s",
				name, len(args), strings.Join(args, " "))
		}
		return nil
	}
}

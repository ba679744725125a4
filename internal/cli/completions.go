package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/ecomadmin/internal/catalog"
	"github.com/vvka-141/ecomadmin/internal/render"
	"github.com/vvka-141/ecomadmin/internal/schema"
)

// sslModes contains valid PostgreSQL SSL modes for shell completion.
var sslModes = []string{"disable", "allow", "prefer", "require", "verify-ca", "verify-full"}

func filterPrefix(candidates []string, toComplete string) []string {
	var matches []string
	for _, c := range candidates {
		if strings.HasPrefix(c, toComplete) {
			matches = append(matches, c)
		}
	}
	return matches
}

// completeSSLModes provides shell completion for SSL mode flag values.
func completeSSLModes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return filterPrefix(sslModes, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeOutputFormats provides shell completion for --output.
func completeOutputFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return filterPrefix(render.Formats, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeEntityNames completes the entity argument of 'load', then
// falls back to file completion for the source file.
func completeEntityNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveDefault
	}
	return filterPrefix(schema.Names(), toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeQueryNames provides shell completion for catalog entry names.
func completeQueryNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var names []string
	for _, e := range catalog.New().Entries() {
		names = append(names, e.Name)
	}
	return filterPrefix(names, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeDirectories provides shell completion for directory paths.
func completeDirectories(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	// Let the shell handle directory completion
	return nil, cobra.ShellCompDirectiveFilterDirs
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/vvka-141/ecomadmin/internal/catalog"
	"github.com/vvka-141/ecomadmin/internal/render"
)

type queryRunFlagValues struct {
	params      []string
	paramsFiles []string
}

var (
	queryGroup    string
	queryRunFlags queryRunFlagValues
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "List and run the query catalog",
}

var queryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every catalog entry with its parameters",
	Example: `  ecomadmin query list
  ecomadmin query list --group analytics -o json`,
	Args: cobra.NoArgs,
	RunE: runQueryList,
}

var queryRunCmd = &cobra.Command{
	Use:   "run <name>",
	Short: "Run one catalog entry",
	Long: `Run a named report query or insert form of the catalog.

Parameters are resolved from (highest priority first):
  --param key=value
  --params-file files, later files overriding earlier ones
  params: of ecomadmin.yaml, for parameters the entry declares

Optional parameters left empty are passed as NULL.`,
	Example: `  ecomadmin query run customer-orders --param customer_id=1 -d shop
  ecomadmin query run popular-products -d shop -o yaml
  ecomadmin query run insert-product --params-file product.env -d shop`,
	Args:              requireArgs("customer-orders --param customer_id=1 -d shop", "name"),
	ValidArgsFunction: completeQueryNames,
	RunE:              runQueryRun,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.AddCommand(queryListCmd, queryRunCmd)

	queryListCmd.Flags().StringVar(&queryGroup, "group", "",
		"Only list entries of one group: basic|analytics|management")
	_ = queryListCmd.RegisterFlagCompletionFunc("group", completeQueryGroups)

	// StringArray keeps commas inside values intact.
	queryRunCmd.Flags().StringArrayVar(&queryRunFlags.params, "param", nil,
		"Parameter as key=value (repeatable)")
	queryRunCmd.Flags().StringSliceVar(&queryRunFlags.paramsFiles, "params-file", nil,
		"Load parameters from .env files (repeatable, later files override earlier)")
}

func runQueryList(cmd *cobra.Command, args []string) error {
	format, err := render.ParseFormat(globalFlags.output)
	if err != nil {
		return err
	}

	cat := catalog.New()
	entries := cat.Entries()
	if queryGroup != "" {
		entries = cat.ByGroup(catalog.Group(queryGroup))
	}
	return render.New(cmd.OutOrStdout(), format).Entries(entries)
}

func runQueryRun(cmd *cobra.Command, args []string) error {
	name := args[0]

	a, err := newApp(cmd, appOptions{})
	if err != nil {
		return err
	}

	entry, err := a.service.Catalog().Lookup(name)
	if err != nil {
		return err
	}
	raw, err := loadMergedParameters(entry, a.project, a.fs, queryRunFlags.paramsFiles, queryRunFlags.params, a.logger)
	if err != nil {
		return err
	}

	connConfig, err := a.connection()
	if err != nil {
		return err
	}

	ctx, stop := signalContext(cmd.Context(), "query")
	defer stop()

	result, err := a.service.RunQuery(ctx, connConfig, entry.Name, raw)
	if err != nil {
		return err
	}
	return a.renderer.Result(result)
}

// completeQueryGroups provides shell completion for --group.
func completeQueryGroups(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	groups := []string{string(catalog.GroupBasic), string(catalog.GroupAnalytics), string(catalog.GroupManagement)}
	return filterPrefix(groups, toComplete), cobra.ShellCompDirectiveNoFileComp
}

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mistweaver/bnet/blizzard"
	"github.com/mistweaver/bnet/filter"
)

var (
	allPages  bool
	whereExpr string
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <method> [key=value ...]",
	Short: "Invoke a search endpoint with filter parameters",
	Long: `Invoke a search endpoint. Filter parameters, dotted keys included,
are passed to the upstream verbatim. --all-pages walks every result
page; --where narrows the results client-side with an expr expression.

Examples:
  bnet search search_decor name.en_US=wall
  bnet search search_mount name.en_US=dragon --all-pages
  bnet search search_item orderby=id --where 'field("id") > 100000'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&allPages, "all-pages", false, "fetch and concatenate every result page")
	searchCmd.Flags().StringVar(&whereExpr, "where", "", "client-side filter expression applied to results")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	params, err := callParams(args[1:])
	if err != nil {
		return err
	}

	var where *filter.Filter
	if whereExpr != "" {
		where, err = filter.Compile(whereExpr)
		if err != nil {
			return err
		}
	}

	ctx := context.Background()
	var results []blizzard.SearchResult

	if allPages {
		results, err = client.SearchAll(ctx, args[0], params)
		if err != nil {
			return err
		}
	} else {
		page, err := client.Search(ctx, args[0], params)
		if err != nil {
			return err
		}
		results = page.Results
		if page.PageCount > 1 {
			logger.Info().
				Int("page", page.Page).
				Int("page_count", page.PageCount).
				Msg("More pages available, use --all-pages to fetch them")
		}
	}

	if where != nil {
		before := len(results)
		results, err = where.Apply(results)
		if err != nil {
			return err
		}
		logger.Debug().
			Int("before", before).
			Int("after", len(results)).
			Str("where", where.String()).
			Msg("Applied client-side filter")
	}

	fmt.Fprintf(os.Stderr, "%d results\n", len(results))
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

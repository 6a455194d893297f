package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mistweaver/bnet/registry"
)

var (
	gameFilter string
	apiFilter  string
)

// endpointsCmd represents the endpoints command
var endpointsCmd = &cobra.Command{
	Use:   "endpoints",
	Short: "List the API methods bound from the endpoint definitions",
	// Listing needs only the embedded definitions, not credentials.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE:              runEndpoints,
}

func init() {
	endpointsCmd.Flags().StringVar(&gameFilter, "game", "", "only show endpoints for this game")
	endpointsCmd.Flags().StringVar(&apiFilter, "api", "", "only show endpoints for this API category")
	rootCmd.AddCommand(endpointsCmd)
}

func runEndpoints(cmd *cobra.Command, args []string) error {
	reg, err := registry.Load()
	if err != nil {
		return fmt.Errorf("failed to load endpoint registry: %w", err)
	}

	var shown int
	fmt.Printf("%-42s %-24s %s\n", "METHOD", "GAME/API", "PATH")
	fmt.Println(strings.Repeat("-", 110))

	for _, name := range reg.Methods() {
		ep, err := reg.Descriptor(name)
		if err != nil {
			return err
		}
		if gameFilter != "" && ep.Game != gameFilter {
			continue
		}
		if apiFilter != "" && ep.APIType != apiFilter {
			continue
		}
		fmt.Printf("%-42s %-24s %s\n", ep.Method, ep.Game+"/"+ep.APIType, ep.Path)
		shown++
	}

	fmt.Printf("\n%d methods\n", shown)
	return nil
}

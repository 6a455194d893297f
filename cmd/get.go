package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <method> [key=value ...]",
	Short: "Invoke an API endpoint by method name",
	Long: `Invoke any endpoint listed by 'bnet endpoints' and print the decoded
response as JSON. Path and query parameters are given as key=value
pairs; region and locale default to the configured values.

Examples:
  bnet get get_achievement achievement_id=6
  bnet get get_character_equipment_summary realm_slug=illidan character_name=beyloc
  bnet get get_item item_id=19019 is_classic=true`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	params, err := callParams(args[1:])
	if err != nil {
		return err
	}

	body, err := client.Call(context.Background(), args[0], params)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(body); err != nil {
		return fmt.Errorf("failed to render response: %w", err)
	}
	return nil
}

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// tokenCmd represents the token command
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Obtain a client-credentials access token",
	Long: `Obtain an access token through the client-credentials grant and print
it. Useful for calling the API with curl or other tools.`,
	RunE: runToken,
}

func init() {
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, args []string) error {
	tok, err := client.Auth().ClientCredentials(context.Background())
	if err != nil {
		return fmt.Errorf("failed to obtain token: %w", err)
	}

	fmt.Println(tok.AccessToken)
	logger.Info().
		Time("expires_at", tok.ExpiresAt()).
		Time("stale_at", tok.StaleAt()).
		Msg("Token obtained")
	return nil
}

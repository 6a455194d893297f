package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var loginTimeout time.Duration

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authorize a battle.net account and save a user access token",
	Long: `Run the OAuth authorization-code flow. A local callback listener is
started on the configured port, the authorization URL is printed for
the browser, and once the redirect delivers the one-time code it is
exchanged for a user access token and written to the token file.

The saved token is a convenience for profile endpoints requiring user
authorization; the library itself never reads or writes it.`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().DurationVar(&loginTimeout, "timeout", 5*time.Minute, "how long to wait for the browser authorization")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	redirectURI := fmt.Sprintf("http://localhost:%d/callback", cfg.OAuth.RedirectPort)
	authURL := client.Auth().AuthorizeURL(redirectURI, cfg.OAuth.Scopes...)

	codeCh := make(chan string, 1)
	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code parameter", http.StatusBadRequest)
			return
		}
		fmt.Fprintln(w, "Authorization received, you can close this tab.")
		select {
		case codeCh <- code:
		default:
		}
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf("localhost:%d", cfg.OAuth.RedirectPort),
		Handler: mux,
	}
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	fmt.Println("Visit this URL to authorize:")
	fmt.Printf("\n  %s\n\n", authURL)
	fmt.Printf("Waiting for the redirect on %s ...\n", redirectURI)

	var code string
	select {
	case code = <-codeCh:
	case err := <-errCh:
		return fmt.Errorf("callback listener failed: %w", err)
	case <-time.After(loginTimeout):
		shutdown(srv)
		return fmt.Errorf("timed out waiting for authorization")
	}
	shutdown(srv)

	tok, err := client.Auth().ExchangeCode(context.Background(), "default", code, redirectURI)
	if err != nil {
		return fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	if err := os.WriteFile(cfg.OAuth.TokenFile, []byte(tok.AccessToken), 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	logger.Info().
		Str("file", cfg.OAuth.TokenFile).
		Time("expires_at", tok.ExpiresAt()).
		Strs("scope", tok.Scope).
		Msg("User token saved")
	fmt.Printf("Token written to %s\n", cfg.OAuth.TokenFile)
	return nil
}

func shutdown(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}

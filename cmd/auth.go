// Package cmd implements the command-line interface for malfix.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/malfix-cli/malfix/color"
	"github.com/malfix-cli/malfix/icon"
	"github.com/malfix-cli/malfix/key"
	"github.com/malfix-cli/malfix/log"
	"github.com/malfix-cli/malfix/oauth"
	"github.com/malfix-cli/malfix/open"
	"github.com/malfix-cli/malfix/style"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const authSuccessHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Authentication Successful</title>
    <style>
        body { margin: 0; padding: 0; background-color: #0f0f11; color: #ffffff; font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; display: flex; justify-content: center; align-items: center; height: 100vh; text-align: center; }
        .container { animation: fadeIn 0.8s ease-out; }
        h1 { font-size: 24px; font-weight: 500; margin-bottom: 8px; letter-spacing: -0.5px; }
        p { font-size: 15px; color: #88888b; font-weight: 400; }
        @keyframes fadeIn { from { opacity: 0; transform: translateY(10px); } to { opacity: 1; transform: translateY(0); } }
    </style>
</head>
<body>
    <div class="container">
        <h1>Authentication Successful</h1>
        <p>You may safely close this tab and return to the terminal.</p>
    </div>
</body>
</html>`

const authErrorHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Authentication Failed</title>
    <style>
        body { margin: 0; padding: 0; background-color: #0f0f11; color: #ffffff; font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; display: flex; justify-content: center; align-items: center; height: 100vh; text-align: center; }
        .container { animation: fadeIn 0.8s ease-out; }
        h1 { font-size: 24px; font-weight: 500; margin-bottom: 8px; color: #ff5555; }
        p { font-size: 15px; color: #88888b; }
        @keyframes fadeIn { from { opacity: 0; transform: translateY(10px); } to { opacity: 1; transform: translateY(0); } }
    </style>
</head>
<body>
    <div class="container">
        <h1>Authentication Failed</h1>
        <p>%s</p>
    </div>
</body>
</html>`

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authRefreshCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authLogoutCmd)
}

// authCmd manages MyAnimeList authentication and the persisted token record.
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage MyAnimeList authentication and the persisted token record",
}

// ensureCredentials loads the client credentials, prompting for and
// persisting missing values.
func ensureCredentials() (oauth.Credentials, error) {
	creds, err := oauth.LoadCredentials()
	if err == nil {
		return creds, nil
	}
	if !errors.Is(err, oauth.ErrNoCredentials) {
		return oauth.Credentials{}, err
	}

	fmt.Println("No MAL API credentials found. Create an API client at https://myanimelist.net/apiconfig first.")

	var clientID string
	if err := survey.AskOne(&survey.Input{Message: "MAL client ID:"}, &clientID); err != nil {
		return oauth.Credentials{}, err
	}
	if clientID == "" {
		return oauth.Credentials{}, oauth.ErrNoCredentials
	}

	var clientSecret string
	if err := survey.AskOne(&survey.Input{
		Message: "MAL client secret (empty for a public client):",
	}, &clientSecret); err != nil {
		return oauth.Credentials{}, err
	}

	viper.Set(key.MalClientID, clientID)
	viper.Set(key.MalClientSecret, clientSecret)
	switch err := viper.WriteConfig(); err.(type) {
	case viper.ConfigFileNotFoundError:
		if err := viper.SafeWriteConfig(); err != nil {
			return oauth.Credentials{}, err
		}
	case nil:
	default:
		return oauth.Credentials{}, err
	}

	return oauth.Credentials{ClientID: clientID, ClientSecret: clientSecret}, nil
}

// authLoginCmd initiates the OAuth2 PKCE authentication flow for MyAnimeList.
var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with MyAnimeList via OAuth2 PKCE",
	Long: `Initialize the OAuth2 PKCE authentication flow for MyAnimeList.
This command launches a local callback server and opens the system browser for secure authorization.
The resulting token record is persisted to token.json (or the system keyring when mal.token_keyring is enabled).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		creds, err := ensureCredentials()
		if err != nil {
			return err
		}

		// Step 1: Generate a cryptographically secure PKCE code verifier.
		verifier, err := oauth.GenerateCodeVerifier()
		if err != nil {
			return err
		}

		port := viper.GetInt(key.MalRedirectPort)

		// Channel to receive the code
		codeCh := make(chan string)
		errCh := make(chan error)

		// Step 2: Initialize a temporary local HTTP server to handle the OAuth2 callback.
		mux := http.NewServeMux()
		mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
			code := r.URL.Query().Get("code")
			w.Header().Set("Content-Type", "text/html")
			if code == "" {
				w.WriteHeader(http.StatusBadRequest)
				fmt.Fprintf(w, authErrorHTML, "No code found in redirect URL")
				return
			}
			codeCh <- code
			w.WriteHeader(http.StatusOK)
			fmt.Fprint(w, authSuccessHTML)
		})

		server := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}

		go func() {
			if err := server.ListenAndServe(); err != http.ErrServerClosed {
				errCh <- err
			}
		}()

		// Step 3: Launch the system browser to the MyAnimeList authorization endpoint.
		authURL := oauth.AuthURL(creds, verifier, port)

		fmt.Println("Opening browser to:", authURL)
		if err := open.Start(authURL); err != nil {
			log.Warn("Failed to open browser: " + err.Error())
			fmt.Println("Please open the URL manually.")
		}

		// Step 4: Await the authorization code from the redirect callback.
		log.Infof("Waiting for callback on port %d...", port)

		var code string
		select {
		case code = <-codeCh:
		case err := <-errCh:
			return fmt.Errorf("callback server error: %w", err)
		case <-time.After(2 * time.Minute):
			return fmt.Errorf("authentication timed out")
		}

		// Terminate the local callback server using a graceful shutdown sequence.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)

		// Step 5: Exchange the authorization code for a secure access token.
		token, err := oauth.Exchange(creds, code, verifier, port)
		if err != nil {
			return fmt.Errorf("failed to exchange token: %w", err)
		}

		// Step 6: Persist the retrieved token record.
		if err := oauth.NewStore().Save(token); err != nil {
			return fmt.Errorf("failed to save token: %w", err)
		}

		fmt.Printf("%s Authentication with MyAnimeList completed successfully.\n", icon.Get(icon.Success))
		return nil
	},
}

// authRefreshCmd forces a renewal of the persisted token record.
var authRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Renew the persisted access token using the stored refresh token",
	RunE: func(cmd *cobra.Command, args []string) error {
		creds, err := oauth.LoadCredentials()
		if err != nil {
			return err
		}

		store := oauth.NewStore()
		token, err := store.Load()
		if err != nil {
			return err
		}

		renewed, err := oauth.Refresh(creds, token)
		if err != nil {
			return err
		}

		if err := store.Save(renewed); err != nil {
			return err
		}

		fmt.Printf("%s Token refreshed, valid until %s\n",
			icon.Get(icon.Success),
			style.Bold(renewed.ExpiresAt.Format(time.RFC1123)),
		)
		return nil
	},
}

// authStatusCmd reports the state of the persisted token record.
var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display the state of the persisted token record",
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := oauth.NewStore().Load()
		if errors.Is(err, oauth.ErrNoToken) {
			fmt.Printf("%s Not authenticated. Run %s first.\n",
				icon.Get(icon.Lock), style.Bold("malfix auth login"))
			return nil
		}
		if err != nil {
			return err
		}

		if token.Expired() {
			fmt.Printf("%s Token expired at %s, run %s\n",
				icon.Get(icon.Fail),
				style.Fg(color.Red)(token.ExpiresAt.Format(time.RFC1123)),
				style.Bold("malfix auth refresh"),
			)
			return nil
		}

		fmt.Printf("%s Authenticated, token valid until %s\n",
			icon.Get(icon.Success),
			style.Fg(color.Green)(token.ExpiresAt.Format(time.RFC1123)),
		)
		return nil
	},
}

// authLogoutCmd permanently removes the persisted token record.
var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Permanently remove the persisted token record",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := oauth.NewStore().Delete(); err != nil {
			return err
		}
		fmt.Printf("%s Token removed\n", icon.Get(icon.Success))
		return nil
	},
}

package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/sheets/v4"
)

// callbackAddr is where Google redirects after consent. It must match a
// redirect URI registered for the OAuth client.
const callbackAddr = "localhost:8080"

// authTimeout bounds how long we wait for the user to finish the consent
// screen in the browser.
const authTimeout = 5 * time.Minute

// Authorizer obtains and caches a Google OAuth2 token for the Sheets scope.
// Tokens are stored as JSON at TokenPath with owner-only permissions, the
// same treatment the backend session gets.
type Authorizer struct {
	ClientID     string
	ClientSecret string
	TokenPath    string
}

func (a Authorizer) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     a.ClientID,
		ClientSecret: a.ClientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  "http://" + callbackAddr + "/oauth/callback",
		Scopes:       []string{sheets.SpreadsheetsScope},
	}
}

// Token returns a usable token: the cached one when still valid, a refreshed
// one when expired, or a brand new one from the interactive browser flow when
// nothing is cached.
func (a Authorizer) Token(ctx context.Context) (*oauth2.Token, error) {
	cached, err := a.readToken()
	if err != nil {
		slog.Info("No cached Google token, starting browser authorization")
		return a.Authorize(ctx)
	}

	if cached.Valid() {
		return cached, nil
	}

	slog.Info("Cached Google token expired, refreshing")
	refreshed, err := a.oauthConfig().TokenSource(ctx, cached).Token()
	if err != nil {
		return nil, fmt.Errorf("failed to refresh Google token: %w", err)
	}
	a.writeToken(refreshed)
	return refreshed, nil
}

// Authorize runs the interactive consent flow: it serves a one-shot callback
// endpoint, sends the user to Google's consent page, and exchanges the
// returned code. ApprovalForce plus offline access guarantees a refresh
// token even when the user consented before.
func (a Authorizer) Authorize(ctx context.Context) (*oauth2.Token, error) {
	cfg := a.oauthConfig()

	codes := make(chan string, 1)
	failures := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/callback", func(w http.ResponseWriter, r *http.Request) {
		if code := r.URL.Query().Get("code"); code != "" {
			codes <- code
			fmt.Fprint(w, callbackPage("Authorization complete", "You can close this tab and return to fintrack."))
			return
		}
		failures <- errors.New("consent page returned no authorization code")
		fmt.Fprint(w, callbackPage("Authorization failed", "Google sent no authorization code. Run the command again."))
	})

	server := &http.Server{Addr: callbackAddr, Handler: mux}
	go func() {
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			failures <- fmt.Errorf("callback listener on %s failed: %w", callbackAddr, err)
		}
	}()
	defer func() {
		if err := server.Shutdown(ctx); err != nil {
			slog.Warn("Callback listener did not shut down cleanly", "error", err)
		}
	}()

	consentURL := cfg.AuthCodeURL("fintrack", oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	slog.Info("Authorize fintrack in your browser", "url", consentURL)

	var code string
	select {
	case code = <-codes:
	case err := <-failures:
		return nil, err
	case <-time.After(authTimeout):
		return nil, fmt.Errorf("no authorization received within %s", authTimeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	a.writeToken(token)
	return token, nil
}

func (a Authorizer) readToken() (*oauth2.Token, error) {
	if a.TokenPath == "" {
		return nil, os.ErrNotExist
	}

	data, err := os.ReadFile(a.TokenPath)
	if err != nil {
		return nil, err
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("unreadable token file %s: %w", a.TokenPath, err)
	}
	return &token, nil
}

// writeToken caches the token on disk. Failures only warn; the caller still
// holds a working in-memory token.
func (a Authorizer) writeToken(token *oauth2.Token) {
	if a.TokenPath == "" {
		return
	}

	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		slog.Warn("Failed to encode Google token", "error", err)
		return
	}

	if err := os.MkdirAll(filepath.Dir(a.TokenPath), 0700); err != nil {
		slog.Warn("Failed to create token directory", "path", a.TokenPath, "error", err)
		return
	}
	if err := os.WriteFile(a.TokenPath, data, 0600); err != nil {
		slog.Warn("Failed to cache Google token", "path", a.TokenPath, "error", err)
		return
	}
	slog.Info("Cached Google token", "path", a.TokenPath)
}

func callbackPage(title, detail string) string {
	return fmt.Sprintf(`<html><body>
	<h1>%s</h1>
	<p>%s</p>
	<script>window.setTimeout(function(){window.close();}, 3000);</script>
</body></html>`, title, detail)
}

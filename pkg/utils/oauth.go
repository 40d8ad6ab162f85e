package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/finn1817/schedule-app/internal/config"
)

const (
	AuthPort       = 3000
	authTimeout    = 5 * time.Minute
	callbackPath   = "/oauth/callback"
	tokenDirName   = ".schedule-app/tokens"
	tokenFilePerms = 0600
	tokenDirPerms  = 0700
	tokenInfoURL   = "https://oauth2.googleapis.com/tokeninfo"
)

// OAuth scopes for Google APIs
const (
	ScopeSheets    = "https://www.googleapis.com/auth/spreadsheets"
	ScopeGmailSend = "https://www.googleapis.com/auth/gmail.send"
)

// RequiredScopes are requested once so a single token serves sheets and gmail
var RequiredScopes = []string{ScopeSheets, ScopeGmailSend}

// GetOAuthConfig creates an OAuth2 config from the OAuth client configuration
func GetOAuthConfig(oauthCfg *config.OAuthClientConfig) (*oauth2.Config, error) {
	oauthConfigJSON, err := json.Marshal(oauthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal oauth config: %w", err)
	}

	googleConfig, err := google.ConfigFromJSON(oauthConfigJSON, RequiredScopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to create google config: %w", err)
	}

	// The callback is served by awaitCode
	googleConfig.RedirectURL = fmt.Sprintf("http://localhost:%d%s", AuthPort, callbackPath)

	return googleConfig, nil
}

// TokenStore persists one token per environment under a directory
type TokenStore struct {
	dir string
}

// NewTokenStore stores tokens in ~/.schedule-app/tokens
func NewTokenStore() (*TokenStore, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return NewTokenStoreAt(filepath.Join(homeDir, tokenDirName)), nil
}

// NewTokenStoreAt stores tokens in dir
func NewTokenStoreAt(dir string) *TokenStore {
	return &TokenStore{dir: dir}
}

func (s *TokenStore) path(env string) string {
	if env == "" {
		env = "default"
	}
	return filepath.Join(s.dir, fmt.Sprintf("token-%s.json", env))
}

// Load returns nil without error when no token has been saved yet
func (s *TokenStore) Load(env string) (*oauth2.Token, error) {
	data, err := os.ReadFile(s.path(env))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}

	return &token, nil
}

// Save writes the token readable by the owner only
func (s *TokenStore) Save(env string, token *oauth2.Token) error {
	if err := os.MkdirAll(s.dir, tokenDirPerms); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	if err := os.WriteFile(s.path(env), data, tokenFilePerms); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	return nil
}

func (s *TokenStore) Delete(env string) error {
	if err := os.Remove(s.path(env)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete token file: %w", err)
	}
	return nil
}

// Authenticator hands out a token with every required scope, running the
// browser consent flow only when neither the cache nor the store can supply one.
// It is safe for concurrent use; only one consent flow runs at a time.
type Authenticator struct {
	oauthConfig  *oauth2.Config
	store        *TokenStore
	logger       *zap.Logger
	tokenInfoURL string
	httpClient   *http.Client

	mu     sync.Mutex
	cached *oauth2.Token
}

func NewAuthenticator(oauthConfig *oauth2.Config, store *TokenStore, logger *zap.Logger) *Authenticator {
	return &Authenticator{
		oauthConfig:  oauthConfig,
		store:        store,
		logger:       logger,
		tokenInfoURL: tokenInfoURL,
		httpClient:   http.DefaultClient,
	}
}

// Token returns a valid token for env
func (a *Authenticator) Token(ctx context.Context, env string) (*oauth2.Token, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cached != nil && a.cached.Valid() {
		return a.cached, nil
	}

	if token := a.storedToken(ctx, env); token != nil {
		a.cached = token
		return token, nil
	}

	a.logger.Info("No valid token found - starting OAuth flow")

	authURL := a.oauthConfig.AuthCodeURL("state", oauth2.AccessTypeOffline)
	fmt.Printf("\nVisit this URL to authorize the application:\n%s\n\n", authURL)

	code, err := a.awaitCode(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get authorization code: %w", err)
	}

	token, err := a.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code for token: %w", err)
	}

	if err := a.checkScopes(ctx, token); err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	if err := a.store.Save(env, token); err != nil {
		a.logger.Warn("Failed to save token", zap.Error(err))
	}

	a.cached = token
	return token, nil
}

// HTTPClient returns a client that authorises requests with the token for env
func (a *Authenticator) HTTPClient(ctx context.Context, env string) (*http.Client, error) {
	token, err := a.Token(ctx, env)
	if err != nil {
		return nil, err
	}
	return a.oauthConfig.Client(ctx, token), nil
}

// storedToken returns the saved token, refreshed if needed, or nil when it is
// missing, unrefreshable or lacks a scope. A token lacking scopes is deleted.
func (a *Authenticator) storedToken(ctx context.Context, env string) *oauth2.Token {
	token, err := a.store.Load(env)
	if err != nil {
		a.logger.Warn("Failed to load token from file", zap.Error(err))
		return nil
	}
	if token == nil {
		return nil
	}

	if !token.Valid() {
		if token.RefreshToken == "" {
			return nil
		}
		refreshed, err := a.oauthConfig.TokenSource(ctx, token).Token()
		if err != nil {
			a.logger.Warn("Failed to refresh token", zap.Error(err))
			return nil
		}
		if err := a.store.Save(env, refreshed); err != nil {
			a.logger.Warn("Failed to save refreshed token", zap.Error(err))
		}
		a.logger.Debug("Token refreshed")
		token = refreshed
	}

	if err := a.checkScopes(ctx, token); err != nil {
		a.logger.Warn("Stored token is missing required scopes, starting a new OAuth flow", zap.Error(err))
		if err := a.store.Delete(env); err != nil {
			a.logger.Warn("Failed to delete token", zap.Error(err))
		}
		return nil
	}

	return token
}

// checkScopes asks Google's tokeninfo endpoint which scopes the token carries
func (a *Authenticator) checkScopes(ctx context.Context, token *oauth2.Token) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.tokenInfoURL+"?access_token="+token.AccessToken, nil)
	if err != nil {
		return fmt.Errorf("failed to create tokeninfo request: %w", err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call tokeninfo endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("tokeninfo request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var info struct {
		Scope string `json:"scope"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return fmt.Errorf("failed to decode tokeninfo response: %w", err)
	}

	granted := strings.Fields(info.Scope)
	var missing []string
	for _, required := range RequiredScopes {
		if !slices.Contains(granted, required) {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("token is missing required scopes: %v", missing)
	}

	return nil
}

// awaitCode serves the OAuth callback on AuthPort until a code arrives, the
// context ends or authTimeout passes
func (a *Authenticator) awaitCode(ctx context.Context) (string, error) {
	codeChan := make(chan string, 1)
	errChan := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc(callbackPath, func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "Authorization failed", http.StatusBadRequest)
			select {
			case errChan <- errors.New("no authorization code received"):
			default:
			}
			return
		}

		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><head><title>Authorization Successful</title></head>
<body><h1>Authorization successful!</h1><p>You can close this window and return to the scheduler.</p></body></html>`)

		select {
		case codeChan <- code:
		default:
		}
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", AuthPort),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	timeoutCtx, cancel := context.WithTimeout(ctx, authTimeout)
	defer cancel()

	var code string
	var authErr error
	select {
	case code = <-codeChan:
	case authErr = <-errChan:
	case <-timeoutCtx.Done():
		authErr = fmt.Errorf("authorization timeout after %v", authTimeout)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		a.logger.Debug("OAuth callback server shutdown", zap.Error(err))
	}

	return code, authErr
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytsheet/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/youtube/v3"
)

// ReadonlyScope is the only scope requested; the exporter never modifies the account.
const ReadonlyScope = youtube.YoutubeReadonlyScope

// LoadClientConfig reads the application secret downloaded from the Google Cloud console.
//
// A missing file is reported as [shared.ErrMissingClientSecret] so callers can print setup instructions.
func LoadClientConfig(path string, scopes ...string) (*oauth2.Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", shared.ErrMissingClientSecret, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read client secret: %w", err)
	}

	if len(scopes) == 0 {
		scopes = []string{ReadonlyScope}
	}

	config, err := google.ConfigFromJSON(data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrInvalidClientSecret, err)
	}
	return config, nil
}

// Manager produces authorized clients from a cached, refreshed or freshly authorized credential.
type Manager struct {
	config   *oauth2.Config
	store    Store
	prompter Prompter
	logger   *log.Logger
}

// NewManager creates a [Manager].
//
// When prompter implements [Redirector] its redirect URI replaces the one from the client secret.
func NewManager(config *oauth2.Config, store Store, prompter Prompter, logger *log.Logger) *Manager {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	cfg := *config
	if r, ok := prompter.(Redirector); ok && r.RedirectURL() != "" {
		cfg.RedirectURL = r.RedirectURL()
	}

	return &Manager{config: &cfg, store: store, prompter: prompter, logger: logger}
}

// Config returns the OAuth2 configuration in use.
func (m *Manager) Config() *oauth2.Config {
	return m.config
}

// Token returns a usable credential.
//
// A valid cached token is returned without being saved again. An expired token with a refresh token is refreshed;
// a failed refresh is returned as [shared.ErrRefreshFailed] without falling back to the interactive flow.
// Anything else goes through the prompter. Refreshed and new tokens are saved before returning.
func (m *Manager) Token(ctx context.Context) (*oauth2.Token, error) {
	token, err := m.store.Load()
	switch {
	case errors.Is(err, shared.ErrNoCredential):
		m.logger.Debug("no cached credential")
		token = nil
	case err != nil:
		m.logger.Warn("ignoring unreadable credential", "error", err)
		token = nil
	}

	if token != nil && token.Valid() {
		m.logger.Debug("using cached credential", "expiry", token.Expiry)
		return token, nil
	}

	if token != nil && token.RefreshToken != "" {
		m.logger.Info("refreshing expired credential")
		if token, err = m.config.TokenSource(ctx, token).Token(); err != nil {
			return nil, fmt.Errorf("%w: %w", shared.ErrRefreshFailed, err)
		}
	} else {
		if token, err = m.authorize(ctx); err != nil {
			return nil, err
		}
	}

	if err := m.store.Save(token); err != nil {
		return nil, err
	}
	m.logger.Debug("credential saved", "expiry", token.Expiry)

	return token, nil
}

// Client returns an HTTP client that authorizes every request and refreshes the token in-flight when it expires.
func (m *Manager) Client(ctx context.Context) (*http.Client, error) {
	token, err := m.Token(ctx)
	if err != nil {
		return nil, err
	}
	return m.config.Client(ctx, token), nil
}

// authorize runs the authorization code flow. Consent is forced so that Google issues a refresh token again.
func (m *Manager) authorize(ctx context.Context) (*oauth2.Token, error) {
	state, err := shared.GenerateState()
	if err != nil {
		return nil, fmt.Errorf("failed to generate state token: %w", err)
	}

	authURL := m.config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	m.logger.Info("starting authorization", "redirect", m.config.RedirectURL)

	code, err := m.prompter.Authorize(ctx, authURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrAuthFailed, err)
	}
	if code == "" {
		return nil, fmt.Errorf("%w: empty authorization code", shared.ErrAuthFailed)
	}

	token, err := m.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: token exchange failed: %w", shared.ErrAuthFailed, err)
	}
	return token, nil
}

package auth

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytsheet/internal/server"
	"github.com/desertthunder/ytsheet/internal/shared"
)

// OOBRedirectURL asks Google to show the authorization code on the consent page instead of redirecting.
const OOBRedirectURL = "urn:ietf:wg:oauth:2.0:oob"

// Prompter turns a consent URL into an authorization code, usually with help from the operator.
type Prompter interface {
	Authorize(ctx context.Context, authURL string) (string, error)
}

// Redirector is implemented by prompters that dictate the redirect URI of the flow.
type Redirector interface {
	RedirectURL() string
}

// Asker asks the operator a single question and returns the trimmed answer.
type Asker func(ctx context.Context, question string) (string, error)

// ConsolePrompter prints the consent URL and waits for the operator to paste the code.
//
// It blocks until an answer arrives or ctx is cancelled.
type ConsolePrompter struct {
	out      io.Writer
	ask      Asker
	redirect string
}

// NewConsolePrompter creates a [ConsolePrompter]. An empty redirect defaults to [OOBRedirectURL].
func NewConsolePrompter(out io.Writer, ask Asker, redirect string) *ConsolePrompter {
	if redirect == "" {
		redirect = OOBRedirectURL
	}
	return &ConsolePrompter{out: out, ask: ask, redirect: redirect}
}

func (p *ConsolePrompter) RedirectURL() string {
	return p.redirect
}

func (p *ConsolePrompter) Authorize(ctx context.Context, authURL string) (string, error) {
	fmt.Fprintf(p.out, "Please visit this URL to authorize this application:\n%s\n\n", authURL)

	code, err := p.ask(ctx, "Enter the authorization code: ")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(code), nil
}

// LoopbackPrompter receives the code on a temporary local server bound to addr.
type LoopbackPrompter struct {
	addr    string
	out     io.Writer
	logger  *log.Logger
	open    func(string) error
	timeout time.Duration
}

// NewLoopbackPrompter creates a [LoopbackPrompter] listening on addr (host:port) with a two minute timeout.
func NewLoopbackPrompter(addr string, out io.Writer, logger *log.Logger) *LoopbackPrompter {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &LoopbackPrompter{
		addr:    addr,
		out:     out,
		logger:  logger,
		open:    shared.OpenBrowser,
		timeout: 2 * time.Minute,
	}
}

// WithBrowser replaces the function used to open the consent URL.
func (p *LoopbackPrompter) WithBrowser(open func(string) error) *LoopbackPrompter {
	p.open = open
	return p
}

// WithTimeout overrides how long Authorize waits for the callback.
func (p *LoopbackPrompter) WithTimeout(d time.Duration) *LoopbackPrompter {
	p.timeout = d
	return p
}

func (p *LoopbackPrompter) RedirectURL() string {
	return "http://" + p.addr + "/callback"
}

// Authorize serves /callback, opens the consent URL and waits for the redirect.
//
// The expected state is read back from authURL, so the handler only accepts the callback of this flow.
func (p *LoopbackPrompter) Authorize(ctx context.Context, authURL string) (string, error) {
	parsed, err := url.Parse(authURL)
	if err != nil {
		return "", fmt.Errorf("%w: invalid authorization URL: %w", shared.ErrInvalidArgument, err)
	}
	state := parsed.Query().Get("state")
	if state == "" {
		return "", fmt.Errorf("%w: authorization URL has no state", shared.ErrInvalidState)
	}

	handler := server.NewCallbackHandler(state)
	router := server.NewBasicRouter()
	router.Use(server.LoggingMiddleware(p.logger))
	router.Handler(handler)

	srv, err := server.Listen(p.addr, router)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := srv.Shutdown(ctx); err != nil {
			p.logger.Warn("error shutting down callback server", "error", err)
		}
	}()
	p.logger.Infof("waiting for OAuth callback at %v", srv.Addr())

	fmt.Fprint(p.out, "→ Opening browser for authorization...\n")
	if err := p.open(authURL); err != nil {
		p.logger.Warnf("failed to open browser automatically %v", err)
		fmt.Fprint(p.out, "⚠ Could not open browser automatically.\n")
		fmt.Fprintf(p.out, "Please open this URL in your browser:\n%s\n\n", authURL)
	}

	timeout := time.NewTimer(p.timeout)
	defer timeout.Stop()

	select {
	case result := <-handler.Result():
		if result.Error() != nil {
			return "", result.Error()
		}
		return result.Code, nil
	case err := <-srv.Errors():
		return "", fmt.Errorf("callback server error: %w", err)
	case <-timeout.C:
		return "", fmt.Errorf("%w: no authorization after %v", shared.ErrTimeout, p.timeout)
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

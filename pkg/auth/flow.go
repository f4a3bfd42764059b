package auth

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// Config locates the OAuth2 endpoints of the cloud and identifies
// this client against them. No client secret: public client with PKCE.
type Config struct {
	AuthorizeUrl string
	TokenUrl     string
	ClientId     string
	Scopes       []string

	// localhost port for the callback listener. 0 = any free port.
	CallbackPort int
}

// OAuth2 builds the x/oauth2 config for the given redirect URL.
func (c Config) OAuth2(redirectUrl string) oauth2.Config {
	return oauth2.Config{
		ClientID: c.ClientId,
		Endpoint: oauth2.Endpoint{
			AuthURL:  c.AuthorizeUrl,
			TokenURL: c.TokenUrl,
		},
		RedirectURL: redirectUrl,
		Scopes:      c.Scopes,
	}
}

type loginOption struct {
	openBrowser func(url string) error
	message     io.Writer
	timeout     time.Duration
}

type LoginOption func(*loginOption)

// WithBrowserOpener replaces how the authorization URL is opened.
func WithBrowserOpener(open func(url string) error) LoginOption {
	return func(o *loginOption) { o.openBrowser = open }
}

// WithMessageSink sets where user instructions (the URL to visit) are printed.
func WithMessageSink(w io.Writer) LoginOption {
	return func(o *loginOption) { o.message = w }
}

// WithTimeout limits how long Login waits for the browser redirect.
func WithTimeout(d time.Duration) LoginOption {
	return func(o *loginOption) { o.timeout = d }
}

// Login runs the Authorization-Code-with-PKCE flow and returns the token.
//
// It starts a one-shot callback listener on localhost, sends the user's
// browser to the authorization endpoint, waits for the redirect, checks the
// state parameter and exchanges the code.
func Login(ctx context.Context, cfg Config, options ...LoginOption) (*oauth2.Token, error) {
	opt := &loginOption{
		openBrowser: OpenBrowser,
		message:     io.Discard,
	}
	for _, o := range options {
		o(opt)
	}

	if opt.timeout > 0 {
		cctx, cancel := context.WithTimeout(ctx, opt.timeout)
		defer cancel()
		ctx = cctx
	}

	pkce := NewPKCE()
	state := uuid.NewString()

	listener, err := NewListener(cfg.CallbackPort, state)
	if err != nil {
		return nil, fmt.Errorf("cannot start callback listener: %w", err)
	}
	listener.Start()
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		listener.Shutdown(sctx)
	}()

	oc := cfg.OAuth2(listener.RedirectUrl())
	authUrl := oc.AuthCodeURL(state, oauth2.S256ChallengeOption(pkce.Verifier))

	fmt.Fprintf(opt.message, "Open this URL in your browser to sign in:\n\n    %s\n\n", authUrl)
	if err := opt.openBrowser(authUrl); err != nil {
		fmt.Fprintf(opt.message, "(could not open the browser automatically: %s)\n", err)
	}

	code, err := listener.Wait(ctx)
	if err != nil {
		return nil, err
	}

	token, err := oc.Exchange(ctx, code, oauth2.VerifierOption(pkce.Verifier))
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %w", err)
	}
	return WithRecoveredExpiry(token), nil
}

// OpenBrowser opens url with the platform's default browser.
func OpenBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}

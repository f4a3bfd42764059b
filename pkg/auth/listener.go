package auth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

var ErrStateUnmatch = errors.New("OAuth2 state parameter unmatch")
var ErrAuthorizationDenied = errors.New("authorization denied")

const callbackPath = "/callback"

const closingPage = `<!DOCTYPE html>
<html><body>
<p>Signed in. You can close this tab and return to the terminal.</p>
</body></html>`

// Listener receives the OAuth2 redirect on localhost, exactly once.
type Listener struct {
	e      *echo.Echo
	ln     net.Listener
	state  string
	result chan result

	mu        sync.Mutex
	delivered bool
}

type result struct {
	code string
	err  error
}

// NewListener binds 127.0.0.1:port and prepares the callback route.
//
// port 0 lets the OS pick a free port. The listener does not accept
// connections until Start is called.
func NewListener(port int, state string) (*Listener, error) {
	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return nil, err
	}

	l := &Listener{
		e:      echo.New(),
		ln:     ln,
		state:  state,
		result: make(chan result, 1),
	}
	l.e.HideBanner = true
	l.e.HidePort = true
	l.e.Logger.SetLevel(log.OFF)
	l.e.Listener = ln
	l.e.GET(callbackPath, l.handle)

	return l, nil
}

// RedirectUrl is the value to register as redirect_uri.
func (l *Listener) RedirectUrl() string {
	return fmt.Sprintf("http://%s%s", l.ln.Addr().String(), callbackPath)
}

// Start begins serving. It returns immediately.
func (l *Listener) Start() {
	go func() {
		if err := l.e.Start(""); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.deliver(result{err: err})
		}
	}()
}

// Wait blocks until a code is delivered, an error occurs, or ctx is done.
func (l *Listener) Wait(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-l.result:
		return r.code, r.err
	}
}

// Shutdown stops the server. Safe to call after Wait returned.
func (l *Listener) Shutdown(ctx context.Context) error {
	return l.e.Shutdown(ctx)
}

func (l *Listener) deliver(r result) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.delivered {
		return false
	}
	l.delivered = true
	l.result <- r
	return true
}

func (l *Listener) handle(c echo.Context) error {
	l.mu.Lock()
	done := l.delivered
	l.mu.Unlock()
	if done {
		return c.String(http.StatusGone, "login already completed. Close this tab.")
	}

	q := c.QueryParams()

	if e := q.Get("error"); e != "" {
		err := fmt.Errorf("%w: %s (%s)", ErrAuthorizationDenied, e, q.Get("error_description"))
		l.deliver(result{err: err})
		return c.String(http.StatusBadRequest, "authorization failed: "+e)
	}

	if s := q.Get("state"); s != l.state {
		l.deliver(result{err: ErrStateUnmatch})
		return c.String(http.StatusBadRequest, "state parameter unmatch. Retry login from the terminal.")
	}

	code := q.Get("code")
	if code == "" {
		l.deliver(result{err: errors.New("callback without code")})
		return c.String(http.StatusBadRequest, "no authorization code in callback.")
	}

	l.deliver(result{code: code})
	return c.HTML(http.StatusOK, closingPage)
}

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hectane/go-acl"
	"golang.org/x/oauth2"
)

var ErrNoCredential = errors.New("no credential stored")

// Cache persists OAuth2 tokens per profile name in a single JSON file.
//
// The file is readable only by the current user.
type Cache struct {
	path string
}

func NewCache(path string) Cache {
	return Cache{path: path}
}

func (c Cache) load() (map[string]*oauth2.Token, error) {
	buf, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]*oauth2.Token{}, nil
		}
		return nil, err
	}
	store := map[string]*oauth2.Token{}
	if err := json.Unmarshal(buf, &store); err != nil {
		return nil, fmt.Errorf("credential cache (%s) is broken: %w", c.path, err)
	}
	return store, nil
}

// Load returns the token stored for profile.
//
// ErrNoCredential is returned when nothing is stored yet.
func (c Cache) Load(profile string) (*oauth2.Token, error) {
	store, err := c.load()
	if err != nil {
		return nil, err
	}
	token, ok := store[profile]
	if !ok {
		return nil, fmt.Errorf("%w for profile %s", ErrNoCredential, profile)
	}
	return token, nil
}

// Save stores the token for profile, creating the cache file with 0600.
func (c Cache) Save(profile string, token *oauth2.Token) error {
	store, err := c.load()
	if err != nil {
		return err
	}
	store[profile] = token

	buf, err := json.Marshal(store)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(c.path), os.FileMode(0700)); err != nil {
		return err
	}
	f, err := os.OpenFile(c.path, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, os.FileMode(0600))
	if err != nil {
		return err
	}
	defer f.Close()
	if err := acl.Chmod(c.path, os.FileMode(0600)); err != nil {
		return err
	}

	_, err = f.Write(buf)
	return err
}

// TokenSource returns a refreshing token source for profile.
//
// Refreshed tokens are written back to the cache so the next process
// starts from the newest refresh token.
func (c Cache) TokenSource(ctx context.Context, profile string, cfg Config) (oauth2.TokenSource, error) {
	token, err := c.Load(profile)
	if err != nil {
		return nil, err
	}
	oc := cfg.OAuth2("")
	return &savingSource{
		base:    oc.TokenSource(ctx, token),
		cache:   c,
		profile: profile,
		last:    token,
	}, nil
}

type savingSource struct {
	base    oauth2.TokenSource
	cache   Cache
	profile string

	mu   sync.Mutex
	last *oauth2.Token
}

func (s *savingSource) Token() (*oauth2.Token, error) {
	token, err := s.base.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	rotated := s.last == nil || s.last.AccessToken != token.AccessToken
	if rotated {
		s.last = token
	}
	s.mu.Unlock()

	if rotated {
		if err := s.cache.Save(s.profile, WithRecoveredExpiry(token)); err != nil {
			return nil, fmt.Errorf("cannot persist refreshed token: %w", err)
		}
	}
	return token, nil
}

// WithRecoveredExpiry fills in token.Expiry from the access token's JWT
// "exp" claim when the token endpoint omitted expires_in.
//
// The token is parsed without verification: this client is not the
// token's audience-side verifier, it only needs the timestamp.
func WithRecoveredExpiry(token *oauth2.Token) *oauth2.Token {
	if token == nil || !token.Expiry.IsZero() {
		return token
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token.AccessToken, &claims); err != nil {
		return token
	}
	if claims.ExpiresAt == nil {
		return token
	}

	withExpiry := *token
	withExpiry.Expiry = claims.ExpiresAt.Time
	return &withExpiry
}

package auth

import "golang.org/x/oauth2"

// PKCE is a code verifier and its S256 challenge for one login attempt.
//
// The challenge goes into the authorization request; the verifier is
// presented at code exchange, binding both to this process.
type PKCE struct {
	Verifier  string
	Challenge string
}

// NewPKCE generates a fresh verifier/challenge pair.
func NewPKCE() PKCE {
	v := oauth2.GenerateVerifier()
	return PKCE{
		Verifier:  v,
		Challenge: oauth2.S256ChallengeFromVerifier(v),
	}
}

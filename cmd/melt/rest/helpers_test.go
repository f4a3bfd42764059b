package rest_test

import (
	kprof "github.com/strandworks/meltfab/cmd/melt/config/profiles"
	"golang.org/x/oauth2"
)

func profileFor(apiRoot string) *kprof.MeltProfile {
	return &kprof.MeltProfile{
		ApiRoot: apiRoot,
		Auth: kprof.MeltAuth{
			AuthorizeUrl: "https://account.invalid/authorize",
			TokenUrl:     "https://account.invalid/token",
			ClientId:     "test-client",
		},
	}
}

func tokenSource(accessToken string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
}

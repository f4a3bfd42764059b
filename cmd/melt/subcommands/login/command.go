package login

import (
	"context"
	"log"
	"time"

	"github.com/youta-t/flarc"

	"github.com/strandworks/meltfab/cmd/melt/subcommands/common"
	"github.com/strandworks/meltfab/pkg/auth"
	"golang.org/x/oauth2"
)

type Flags struct {
	NoBrowser bool          `flag:"no-browser" help:"do not open the browser; only print the sign-in URL"`
	Timeout   time.Duration `flag:"timeout" help:"how long to wait for the sign-in to finish"`
}

// LoginFunc runs the browser sign-in and returns the token.
type LoginFunc func(ctx context.Context, cfg auth.Config, options ...auth.LoginOption) (*oauth2.Token, error)

type Option struct {
	login LoginFunc
}

func WithLogin(login LoginFunc) func(*Option) *Option {
	return func(o *Option) *Option {
		o.login = login
		return o
	}
}

func New(options ...func(*Option) *Option) (flarc.Command, error) {
	option := &Option{
		login: auth.Login,
	}
	for _, opt := range options {
		option = opt(option)
	}

	return flarc.NewCommand(
		"Sign in to the cloud and store the credential.",
		Flags{
			Timeout: 5 * time.Minute,
		},
		flarc.Args{},
		common.NewTaskWithCommonFlag(Task(option.login)),
		flarc.WithDescription(`
Sign in to the meltfab cloud with your browser.

"{{ .Command }}" starts a one-shot listener on localhost and sends your
browser to the cloud's sign-in page. After you sign in there, the cloud
redirects the browser back to the listener and the credential is stored
in the credential cache, readable only by you. Other commands refresh it
as needed; sign in again when the refresh token itself expires.
`),
	)
}

func Task(login LoginFunc) common.MeltTaskWithCommonFlag[Flags] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		commonFlag common.CommonFlags,
		cl flarc.Commandline[Flags],
		params []any,
	) error {
		prof, err := common.LoadProfile(commonFlag)
		if err != nil {
			return err
		}

		flags := cl.Flags()

		options := []auth.LoginOption{
			auth.WithMessageSink(cl.Stderr()),
		}
		if flags.NoBrowser {
			options = append(options, auth.WithBrowserOpener(func(string) error { return nil }))
		}
		if 0 < flags.Timeout {
			options = append(options, auth.WithTimeout(flags.Timeout))
		}

		token, err := login(ctx, common.AuthConfig(prof), options...)
		if err != nil {
			return err
		}

		cache := auth.NewCache(commonFlag.Credentials)
		if err := cache.Save(commonFlag.Profile, token); err != nil {
			return err
		}

		logger.Printf(
			"signed in with profile '%s'. The credential is stored at %s",
			commonFlag.Profile, commonFlag.Credentials,
		)
		return nil
	}
}

package common

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/strandworks/meltfab/cmd/melt/config/profiles"
	krest "github.com/strandworks/meltfab/cmd/melt/rest"
	"github.com/strandworks/meltfab/pkg/auth"
	"github.com/youta-t/flarc"
)

type MeltTaskWithCommonFlag[T any] func(
	ctx context.Context,
	logger *log.Logger,
	commonFlag CommonFlags,
	cl flarc.Commandline[T],
	params []any,
) error

func NewTaskWithCommonFlag[T any](task MeltTaskWithCommonFlag[T]) flarc.Task[T] {
	return func(ctx context.Context, cl flarc.Commandline[T], pos []any) error {
		var commonFlag CommonFlags
		found := false
		newpos := make([]any, 0, len(pos))
		for _, p := range pos {
			switch v := p.(type) {
			case CommonFlags:
				found = true
				commonFlag = v
			default:
				newpos = append(newpos, p)
			}
		}
		if !found {
			return errors.New("programming error: common flags not found")
		}

		logger := log.New(cl.Stderr(), "", log.LstdFlags)
		logger.SetPrefix(fmt.Sprintf("[%s] ", cl.Fullname()))

		return task(
			ctx,
			logger,
			commonFlag,
			cl,
			newpos,
		)
	}
}

// LoadProfile picks the profile named by the common flags out of the
// profile store.
func LoadProfile(commonFlag CommonFlags) (*profiles.MeltProfile, error) {
	store, err := profiles.LoadProfileStore(commonFlag.ProfileStore)
	if err != nil {
		if errors.Is(err, profiles.ErrProfileStoreNotFound) {
			return nil, fmt.Errorf(
				"%w: profile store (%s) is not found. Please try `melt init` first. Ask your admin to get a profile file",
				err, commonFlag.ProfileStore,
			)
		}
		return nil, fmt.Errorf(
			"%w: failed to load profile store (%s)",
			err, commonFlag.ProfileStore,
		)
	}
	prof, ok := store[commonFlag.Profile]
	if !ok {
		return nil, fmt.Errorf(
			"profile '%s' not found in the profile store (%s)",
			commonFlag.Profile, commonFlag.ProfileStore,
		)
	}
	return prof, nil
}

// AuthConfig translates a profile's auth section for pkg/auth.
func AuthConfig(prof *profiles.MeltProfile) auth.Config {
	return auth.Config{
		AuthorizeUrl: prof.Auth.AuthorizeUrl,
		TokenUrl:     prof.Auth.TokenUrl,
		ClientId:     prof.Auth.ClientId,
		Scopes:       prof.Auth.Scopes,
		CallbackPort: prof.Auth.CallbackPort,
	}
}

type Task[T any] func(
	ctx context.Context,
	logger *log.Logger,
	client krest.MeltClient,
	cl flarc.Commandline[T],
	params []any,
) error

// NewTask wires a signed-in REST client into the task: it loads the
// profile, builds a refreshing token source from the credential cache
// and creates the client.
func NewTask[T any](task Task[T]) flarc.Task[T] {

	return NewTaskWithCommonFlag(func(
		ctx context.Context,
		logger *log.Logger,
		commonFlag CommonFlags,
		cl flarc.Commandline[T],
		params []any,
	) error {
		prof, err := LoadProfile(commonFlag)
		if err != nil {
			return err
		}

		cache := auth.NewCache(commonFlag.Credentials)
		source, err := cache.TokenSource(ctx, commonFlag.Profile, AuthConfig(prof))
		if err != nil {
			if errors.Is(err, auth.ErrNoCredential) {
				return fmt.Errorf(
					"%w: you are not signed in with profile '%s'. Please try `melt login` first",
					err, commonFlag.Profile,
				)
			}
			return err
		}

		client, err := krest.NewClient(prof, source)
		if err != nil {
			return fmt.Errorf(
				"%w: failed to create client. Your profile (%s in %s) can be broken.\n\nRemove it and try `melt init` again. Ask your admin to get a profile file",
				err, commonFlag.Profile, commonFlag.ProfileStore,
			)
		}
		return task(ctx, logger, client, cl, params)
	})
}

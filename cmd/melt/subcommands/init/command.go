package init

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/youta-t/flarc"
	"gopkg.in/yaml.v3"

	prof "github.com/strandworks/meltfab/cmd/melt/config/profiles"
	"github.com/strandworks/meltfab/cmd/melt/subcommands/common"
)

const ARG_PROFILE_FILE = "PROFILE_FILE"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Register a connection profile.",
		struct{}{},
		flarc.Args{
			{
				Name: ARG_PROFILE_FILE, Required: true,
				Help: "filepath to a profile file, which you received from your admin.",
			},
		},
		common.NewTaskWithCommonFlag(Task()),
		flarc.WithDescription(`
Register a connection profile into your profile store.

A profile file is a YAML document describing a meltfab cloud: the API
root, the OAuth2 endpoints and the client id. "{{ .Command }}" stores it
under the name given by "--profile" so other commands can find it, and
writes that name to ".meltprofile" in the current directory.
`),
	)
}

func Task() common.MeltTaskWithCommonFlag[struct{}] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		commonFlag common.CommonFlags,
		cl flarc.Commandline[struct{}],
		params []any,
	) error {
		profFile := cl.Args()[ARG_PROFILE_FILE][0]

		store, err := prof.LoadProfileStore(commonFlag.ProfileStore)
		if errors.Is(err, prof.ErrProfileStoreNotFound) {
			// first run
			store = prof.ProfileStore{}
		} else if err != nil {
			return err
		}

		newProf := new(prof.MeltProfile)
		{
			content, err := os.ReadFile(profFile)
			if err != nil {
				return err
			}
			if err := yaml.Unmarshal(content, newProf); err != nil {
				return err
			}
		}
		if err := newProf.Verify(); err != nil {
			return err
		}

		profName := commonFlag.Profile
		store[profName] = newProf
		if err := store.Save(commonFlag.ProfileStore); err != nil {
			return err
		}
		logger.Printf("profile %s is saved to %s", profName, commonFlag.ProfileStore)

		{
			f, err := os.OpenFile(".meltprofile", os.O_RDWR|os.O_CREATE|os.O_TRUNC, os.FileMode(0600))
			if err != nil {
				return err
			}
			defer f.Close()
			f.Write([]byte(profName))
		}

		return nil
	}
}

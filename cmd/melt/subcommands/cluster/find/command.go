package find

import (
	"context"
	"encoding/json"
	"log"

	krst "github.com/strandworks/meltfab/cmd/melt/rest"
	"github.com/strandworks/meltfab/cmd/melt/subcommands/common"
	"github.com/strandworks/meltfab/pkg/api/types/clusters"
	"github.com/youta-t/flarc"
)

type Flags struct {
	Online bool `flag:"online" help:"list online clusters only"`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"List printer clusters.",
		Flags{},
		flarc.Args{},
		common.NewTask(Task()),
		flarc.WithDescription(`
List your printer clusters with their online/offline status, as a JSON array.
`),
	)
}

func Task() common.Task[Flags] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		client krst.MeltClient,
		cl flarc.Commandline[Flags],
		params []any,
	) error {
		found, err := client.FindClusters(ctx)
		if err != nil {
			return err
		}

		if cl.Flags().Online {
			online := []clusters.Detail{}
			for _, c := range found {
				if c.IsOnline() {
					online = append(online, c)
				}
			}
			found = online
		}

		enc := json.NewEncoder(cl.Stdout())
		enc.SetIndent("", "    ")
		if err := enc.Encode(found); err != nil {
			logger.Panicf("fail to dump found clusters")
		}
		return nil
	}
}

package create

import (
	"context"
	"encoding/json"
	"log"

	krst "github.com/strandworks/meltfab/cmd/melt/rest"
	"github.com/strandworks/meltfab/cmd/melt/subcommands/common"
	"github.com/strandworks/meltfab/pkg/api/types/projects"
	"github.com/youta-t/flarc"
)

type Flags struct {
	Description string `flag:"description" alias:"d" help:"description of the new project"`
}

const ARG_NAME = "NAME"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Create a new project.",
		Flags{},
		flarc.Args{
			{
				Name: ARG_NAME, Required: true,
				Help: "display name of the new project",
			},
		},
		common.NewTask(Task()),
		flarc.WithDescription(`
Create a new project in the cloud and print it as JSON.

Example:

	{{ .Command }} "bracket revision" -d "load-bearing bracket, rev B"
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
		spec := projects.Spec{
			Name:        cl.Args()[ARG_NAME][0],
			Description: cl.Flags().Description,
		}

		created, err := client.CreateProject(ctx, spec)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cl.Stdout())
		enc.SetIndent("", "    ")
		if err := enc.Encode(created); err != nil {
			logger.Panicf("fail to dump the created project")
		}
		return nil
	}
}

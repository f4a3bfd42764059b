package find

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	krst "github.com/strandworks/meltfab/cmd/melt/rest"
	"github.com/strandworks/meltfab/cmd/melt/subcommands/common"
	"github.com/youta-t/flarc"
)

const ARG_QUERY = "QUERY"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Find projects by free-text query.",
		struct{}{},
		flarc.Args{
			{
				Name: ARG_QUERY, Required: false, Repeatable: true,
				Help: "words to search projects by. Without it, every project you can see is listed.",
			},
		},
		common.NewTask(Task()),
		flarc.WithDescription(`
Find projects and print them as a JSON array.

Example:

	{{ .Command }} bracket
`),
	)
}

func Task() common.Task[struct{}] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		client krst.MeltClient,
		cl flarc.Commandline[struct{}],
		params []any,
	) error {
		query := strings.Join(cl.Args()[ARG_QUERY], " ")

		found, err := client.FindProjects(ctx, query)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cl.Stdout())
		enc.SetIndent("", "    ")
		if err := enc.Encode(found); err != nil {
			logger.Panicf("fail to dump found projects")
		}
		return nil
	}
}

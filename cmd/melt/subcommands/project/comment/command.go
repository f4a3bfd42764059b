package comment

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	krst "github.com/strandworks/meltfab/cmd/melt/rest"
	"github.com/strandworks/meltfab/cmd/melt/subcommands/common"
	"github.com/strandworks/meltfab/pkg/api/types/projects"
	"github.com/youta-t/flarc"
)

const (
	ARG_PROJECT_ID = "PROJECT_ID"
	ARG_BODY       = "BODY"
)

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Post a comment on a project.",
		struct{}{},
		flarc.Args{
			{
				Name: ARG_PROJECT_ID, Required: true,
				Help: "id of the project to comment on",
			},
			{
				Name: ARG_BODY, Required: true, Repeatable: true,
				Help: "comment text",
			},
		},
		common.NewTask(Task()),
		flarc.WithDescription(`
Post a comment on a project and print the posted comment as JSON.

Example:

	{{ .Command }} proj-1234 "sliced with 0.2mm layers"
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
		projectId := cl.Args()[ARG_PROJECT_ID][0]
		body := strings.Join(cl.Args()[ARG_BODY], " ")

		posted, err := client.AddComment(ctx, projectId, projects.CommentSpec{Body: body})
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cl.Stdout())
		enc.SetIndent("", "    ")
		if err := enc.Encode(posted); err != nil {
			logger.Panicf("fail to dump the posted comment")
		}
		return nil
	}
}

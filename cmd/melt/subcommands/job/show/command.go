package show

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	krst "github.com/strandworks/meltfab/cmd/melt/rest"
	"github.com/strandworks/meltfab/cmd/melt/subcommands/common"
	"github.com/youta-t/flarc"
)

const ARG_JOB_ID = "JOB_ID"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Show one print job.",
		struct{}{},
		flarc.Args{
			{
				Name: ARG_JOB_ID, Required: true,
				Help: "id of the job to be shown",
			},
		},
		common.NewTask(Task()),
		flarc.WithDescription(`
Show the current state of a print job as JSON.

Example:

	{{ .Command }} job-1234
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
		jobId := cl.Args()[ARG_JOB_ID][0]

		detail, err := client.GetPrintJob(ctx, jobId)
		if err != nil {
			return fmt.Errorf("%w: jobId:%s", err, jobId)
		}

		enc := json.NewEncoder(cl.Stdout())
		enc.SetIndent("", "    ")
		if err := enc.Encode(detail); err != nil {
			logger.Panicf("fail to dump the job")
		}
		return nil
	}
}

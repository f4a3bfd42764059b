package submit

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"
	krst "github.com/strandworks/meltfab/cmd/melt/rest"
	"github.com/strandworks/meltfab/cmd/melt/subcommands/common"
	"github.com/strandworks/meltfab/pkg/api/types/jobs"
	"github.com/youta-t/flarc"
)

type Flags struct {
	Name           string `flag:"name" alias:"n" help:"display name of the job. Defaults to the file id."`
	IdempotencyKey string `flag:"idempotency-key" metavar:"KEY" help:"key the cloud deduplicates submissions by. A random one is generated when omitted."`
}

const (
	ARG_CLUSTER_ID = "CLUSTER_ID"
	ARG_FILE_ID    = "FILE_ID"
)

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Submit a print job to a cluster.",
		Flags{},
		flarc.Args{
			{
				Name: ARG_CLUSTER_ID, Required: true,
				Help: "id of the cluster to print on",
			},
			{
				Name: ARG_FILE_ID, Required: true,
				Help: "id of an uploaded file to print",
			},
		},
		common.NewTask(Task()),
		flarc.WithDescription(`
Queue a print job on a cluster and print the queued job as JSON.

The file must be uploaded beforehand (see "melt file push").

Example:

	{{ .Command }} cluster-1234 file-5678 -n "bracket x10"
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
		clusterId := cl.Args()[ARG_CLUSTER_ID][0]
		fileId := cl.Args()[ARG_FILE_ID][0]
		flags := cl.Flags()

		name := flags.Name
		if name == "" {
			name = fileId
		}
		key := flags.IdempotencyKey
		if key == "" {
			key = uuid.NewString()
		}

		queued, err := client.SubmitPrintJob(ctx, clusterId, jobs.Spec{
			JobName:        name,
			FileId:         fileId,
			IdempotencyKey: key,
		})
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cl.Stdout())
		enc.SetIndent("", "    ")
		if err := enc.Encode(queued); err != nil {
			logger.Panicf("fail to dump the queued job")
		}
		return nil
	}
}

package find

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	krst "github.com/strandworks/meltfab/cmd/melt/rest"
	"github.com/strandworks/meltfab/cmd/melt/subcommands/common"
	"github.com/strandworks/meltfab/pkg/api/types/jobs"
	"github.com/youta-t/flarc"
)

type Flags struct {
	Status  string `flag:"status" alias:"s" metavar:"STATUS,..." help:"statuses to filter by: queued, printing, done, failed, aborted"`
	Running bool   `flag:"running" alias:"r" help:"shorthand for --status queued,printing"`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Find print jobs.",
		Flags{},
		flarc.Args{},
		common.NewTask(Task()),
		flarc.WithDescription(`
Find print jobs and print them as a JSON array.

Without a filter, every job you can see is listed.

Example:

	{{ .Command }} --running
	{{ .Command }} --status done,failed
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
		flags := cl.Flags()

		status := []string{}
		if flags.Running {
			status = append(status, jobs.StatusQueued, jobs.StatusPrinting)
		}
		if flags.Status != "" {
			for _, s := range strings.Split(flags.Status, ",") {
				if s = strings.TrimSpace(s); s != "" {
					status = append(status, s)
				}
			}
		}

		found, err := client.FindPrintJobs(ctx, status)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cl.Stdout())
		enc.SetIndent("", "    ")
		if err := enc.Encode(found); err != nil {
			logger.Panicf("fail to dump found jobs")
		}
		return nil
	}
}

package job

import (
	job_find "github.com/strandworks/meltfab/cmd/melt/subcommands/job/find"
	job_show "github.com/strandworks/meltfab/cmd/melt/subcommands/job/show"
	job_submit "github.com/strandworks/meltfab/cmd/melt/subcommands/job/submit"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {

	submit, err := job_submit.New()
	if err != nil {
		return nil, err
	}
	find, err := job_find.New()
	if err != nil {
		return nil, err
	}
	show, err := job_show.New()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Manipulate print jobs.",
		struct{}{},
		flarc.WithSubcommand("submit", submit),
		flarc.WithSubcommand("find", find),
		flarc.WithSubcommand("show", show),
	)
}

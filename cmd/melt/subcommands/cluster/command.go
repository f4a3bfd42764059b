package cluster

import (
	cluster_find "github.com/strandworks/meltfab/cmd/melt/subcommands/cluster/find"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {

	find, err := cluster_find.New()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Inspect printer clusters.",
		struct{}{},
		flarc.WithSubcommand("find", find),
	)
}

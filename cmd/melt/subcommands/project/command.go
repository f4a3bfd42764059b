package project

import (
	project_comment "github.com/strandworks/meltfab/cmd/melt/subcommands/project/comment"
	project_create "github.com/strandworks/meltfab/cmd/melt/subcommands/project/create"
	project_find "github.com/strandworks/meltfab/cmd/melt/subcommands/project/find"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {

	create, err := project_create.New()
	if err != nil {
		return nil, err
	}
	find, err := project_find.New()
	if err != nil {
		return nil, err
	}
	comment, err := project_comment.New()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Manipulate projects.",
		struct{}{},
		flarc.WithSubcommand("create", create),
		flarc.WithSubcommand("find", find),
		flarc.WithSubcommand("comment", comment),
	)
}

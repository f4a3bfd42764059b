package file

import (
	file_push "github.com/strandworks/meltfab/cmd/melt/subcommands/file/push"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {

	push, err := file_push.New()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Manipulate project files.",
		struct{}{},
		flarc.WithSubcommand("push", push),
	)
}

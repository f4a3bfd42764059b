package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path"

	subcluster "github.com/strandworks/meltfab/cmd/melt/subcommands/cluster"
	"github.com/strandworks/meltfab/cmd/melt/subcommands/common"
	subdemo "github.com/strandworks/meltfab/cmd/melt/subcommands/demo"
	subfile "github.com/strandworks/meltfab/cmd/melt/subcommands/file"
	subinit "github.com/strandworks/meltfab/cmd/melt/subcommands/init"
	subjob "github.com/strandworks/meltfab/cmd/melt/subcommands/job"
	"github.com/strandworks/meltfab/cmd/melt/subcommands/logger"
	sublogin "github.com/strandworks/meltfab/cmd/melt/subcommands/login"
	subproject "github.com/strandworks/meltfab/cmd/melt/subcommands/project"
	subver "github.com/strandworks/meltfab/cmd/melt/subcommands/version"
	"github.com/strandworks/meltfab/pkg/utils/try"
	"github.com/youta-t/flarc"
)

func main() {
	name := path.Base(os.Args[0])
	logger := logger.Default()
	logger.SetPrefix(fmt.Sprintf("[%s] ", name))

	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, os.Kill,
	)
	defer cancel()

	cf := try.To(common.Flags(".")).OrFatal(logger)
	init := try.To(subinit.New()).OrFatal(logger)
	login := try.To(sublogin.New()).OrFatal(logger)
	project := try.To(subproject.New()).OrFatal(logger)
	file := try.To(subfile.New()).OrFatal(logger)
	job := try.To(subjob.New()).OrFatal(logger)
	cluster := try.To(subcluster.New()).OrFatal(logger)
	demo := try.To(subdemo.New()).OrFatal(logger)
	version := try.To(subver.New()).OrFatal(logger)

	melt := try.To(
		flarc.NewCommandGroup(
			"meltfab cloud commandline interface",
			cf,
			flarc.WithSubcommand("init", init),
			flarc.WithSubcommand("login", login),
			flarc.WithSubcommand("project", project),
			flarc.WithSubcommand("file", file),
			flarc.WithSubcommand("job", job),
			flarc.WithSubcommand("cluster", cluster),
			flarc.WithSubcommand("demo", demo),
			flarc.WithSubcommand("version", version),
		),
	).OrFatal(logger)

	os.Exit(flarc.Run(ctx, melt, flarc.WithHelp(true)))
}

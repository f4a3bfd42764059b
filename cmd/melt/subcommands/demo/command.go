package demo

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"

	krst "github.com/strandworks/meltfab/cmd/melt/rest"
	"github.com/strandworks/meltfab/cmd/melt/subcommands/common"
	"github.com/strandworks/meltfab/pkg/api/types/files"
	"github.com/strandworks/meltfab/pkg/api/types/jobs"
	"github.com/strandworks/meltfab/pkg/api/types/projects"
	"github.com/youta-t/flarc"
)

type Flags struct {
	ProjectName string `flag:"project-name" help:"name of the demo project"`
	Comment     string `flag:"comment" help:"comment posted on the demo project"`
}

const (
	ARG_CLUSTER_ID = "CLUSTER_ID"
	ARG_FILE       = "FILE"
)

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Walk through the whole API once.",
		Flags{
			ProjectName: "meltfab demo",
			Comment:     "posted by melt demo",
		},
		flarc.Args{
			{
				Name: ARG_CLUSTER_ID, Required: true,
				Help: "id of the cluster to print on",
			},
			{
				Name: ARG_FILE, Required: true,
				Help: "path of a printable file to upload",
			},
		},
		common.NewTask(Task()),
		flarc.WithDescription(`
Run the scripted tour of the cloud API, printing every response as JSON:

1. create a project
2. comment on it
3. upload the file
4. submit a print job for the file to the cluster
5. list running jobs
6. search projects by the demo project's name

Example:

	{{ .Command }} cluster-1234 ./bracket.stl
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
		source := cl.Args()[ARG_FILE][0]
		flags := cl.Flags()

		out := cl.Stdout()
		dump := func(step string, v any) error {
			fmt.Fprintf(out, "--- %s ---\n", step)
			enc := json.NewEncoder(out)
			enc.SetIndent("", "    ")
			return enc.Encode(v)
		}

		logger.Println("creating project...")
		project, err := client.CreateProject(ctx, projects.Spec{
			Name:        flags.ProjectName,
			Description: "created by melt demo",
		})
		if err != nil {
			return err
		}
		if err := dump("project created", project); err != nil {
			return err
		}

		logger.Println("posting comment...")
		comment, err := client.AddComment(
			ctx, project.ProjectId, projects.CommentSpec{Body: flags.Comment},
		)
		if err != nil {
			return err
		}
		if err := dump("comment posted", comment); err != nil {
			return err
		}

		logger.Printf("uploading %s...", source)
		file, err := upload(ctx, client, project.ProjectId, source)
		if err != nil {
			return err
		}
		if err := dump("file uploaded", file); err != nil {
			return err
		}

		logger.Println("submitting print job...")
		job, err := client.SubmitPrintJob(ctx, clusterId, jobs.Spec{
			JobName: flags.ProjectName,
			FileId:  file.FileId,
		})
		if err != nil {
			return err
		}
		if err := dump("job queued", job); err != nil {
			return err
		}

		logger.Println("listing running jobs...")
		running, err := client.FindPrintJobs(
			ctx, []string{jobs.StatusQueued, jobs.StatusPrinting},
		)
		if err != nil {
			return err
		}
		if err := dump("running jobs", running); err != nil {
			return err
		}

		logger.Println("searching projects...")
		found, err := client.FindProjects(ctx, flags.ProjectName)
		if err != nil {
			return err
		}
		return dump("projects found", found)
	}
}

func upload(
	ctx context.Context, client krst.MeltClient, projectId string, source string,
) (files.Detail, error) {
	f, err := os.Open(source)
	if err != nil {
		return files.Detail{}, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return files.Detail{}, err
	}

	contentType := mime.TypeByExtension(filepath.Ext(source))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return client.UploadFile(ctx, projectId, files.UploadRequest{
		FileName:    filepath.Base(source),
		ContentType: contentType,
		Size:        stat.Size(),
	}, f)
}

package push

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime"
	"os"
	"path/filepath"

	pb "github.com/cheggaaa/pb/v3"
	krst "github.com/strandworks/meltfab/cmd/melt/rest"
	"github.com/strandworks/meltfab/cmd/melt/subcommands/common"
	"github.com/strandworks/meltfab/pkg/api/types/files"
	"github.com/youta-t/flarc"
)

type Flags struct {
	ContentType string `flag:"content-type" alias:"t" metavar:"MIME" help:"content type of the file. Guessed from the extension when omitted."`
	Quiet       bool   `flag:"quiet" alias:"q" help:"do not draw the progress bar"`
}

const (
	ARG_PROJECT_ID = "PROJECT_ID"
	ARG_FILE       = "FILE"
)

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Upload a file to a project.",
		Flags{},
		flarc.Args{
			{
				Name: ARG_PROJECT_ID, Required: true,
				Help: "id of the project to receive the file",
			},
			{
				Name: ARG_FILE, Required: true,
				Help: "path of the file to upload",
			},
		},
		common.NewTask(Task()),
		flarc.WithDescription(`
Upload a local file to a project and print the stored file metadata as JSON.

The upload runs in two phases: the cloud hands out an upload slot, and
the file body is sent to the slot's URL. A progress bar is drawn on
stderr while the body is in flight.

Example:

	{{ .Command }} proj-1234 ./bracket.stl
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
		projectId := cl.Args()[ARG_PROJECT_ID][0]
		source := cl.Args()[ARG_FILE][0]
		flags := cl.Flags()

		f, err := os.Open(source)
		if err != nil {
			return err
		}
		defer f.Close()

		stat, err := f.Stat()
		if err != nil {
			return err
		}
		if !stat.Mode().IsRegular() {
			return fmt.Errorf("%w: %s is not a regular file", flarc.ErrUsage, source)
		}

		contentType := flags.ContentType
		if contentType == "" {
			contentType = mime.TypeByExtension(filepath.Ext(source))
		}
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		upreq := files.UploadRequest{
			FileName:    filepath.Base(source),
			ContentType: contentType,
			Size:        stat.Size(),
		}

		bar := pb.New64(stat.Size())
		bar.Set(pb.Bytes, true)
		bar.SetWriter(cl.Stderr())
		if flags.Quiet {
			bar.SetWriter(io.Discard)
		}
		if err := bar.Err(); err != nil {
			return err
		}

		logger.Printf("sending... %s\n", source)
		bar.Start()
		detail, err := client.UploadFile(ctx, projectId, upreq, bar.NewProxyReader(f))
		bar.Finish()
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cl.Stdout())
		enc.SetIndent("", "    ")
		if err := enc.Encode(detail); err != nil {
			logger.Panicf("fail to dump the uploaded file metadata")
		}
		return nil
	}
}

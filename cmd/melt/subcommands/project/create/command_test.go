package create_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/strandworks/meltfab/cmd/melt/rest/mock"
	"github.com/strandworks/meltfab/cmd/melt/subcommands/internal/commandline"
	"github.com/strandworks/meltfab/cmd/melt/subcommands/logger"
	project_create "github.com/strandworks/meltfab/cmd/melt/subcommands/project/create"
	"github.com/strandworks/meltfab/pkg/api/types/projects"
	"github.com/strandworks/meltfab/pkg/utils/try"
)

func TestCreateCommand(t *testing.T) {
	t.Run("when the project is created, it prints the project as JSON", func(t *testing.T) {
		expected := projects.Detail{
			ProjectId:   "proj-1234",
			Name:        "bracket revision",
			Description: "load-bearing bracket, rev B",
			CreatedAt:   try.To(time.Parse(time.RFC3339, "2024-05-01T10:00:00Z")).OrFatal(t),
			UpdatedAt:   try.To(time.Parse(time.RFC3339, "2024-05-01T10:00:00Z")).OrFatal(t),
		}

		client := mock.New(t)
		client.Impl.CreateProject = func(
			ctx context.Context, spec projects.Spec,
		) (projects.Detail, error) {
			return expected, nil
		}

		stdout := new(strings.Builder)

		testee := project_create.Task()
		err := testee(
			context.Background(),
			logger.Null(),
			client,
			commandline.MockCommandline[project_create.Flags]{
				Fullname_: "melt project create",
				Stdout_:   stdout,
				Stderr_:   new(strings.Builder),
				Flags_:    project_create.Flags{Description: "load-bearing bracket, rev B"},
				Args_: map[string][]string{
					project_create.ARG_NAME: {"bracket revision"},
				},
			},
			[]any{},
		)
		if err != nil {
			t.Fatal(err)
		}

		if len(client.Calls.CreateProject) != 1 {
			t.Fatalf("CreateProject should be called once: %v", client.Calls.CreateProject)
		}
		sent := client.Calls.CreateProject[0]
		if sent.Name != "bracket revision" || sent.Description != "load-bearing bracket, rev B" {
			t.Errorf("sent spec is wrong: %v", sent)
		}

		actual := projects.Detail{}
		if err := json.Unmarshal([]byte(stdout.String()), &actual); err != nil {
			t.Fatal(err)
		}
		if !actual.Equal(expected) {
			t.Errorf("printed project is wrong (actual, expected): %v, %v", actual, expected)
		}
	})

	t.Run("when the client fails, it returns the error", func(t *testing.T) {
		expectedErr := errors.New("fake error")

		client := mock.New(t)
		client.Impl.CreateProject = func(
			ctx context.Context, spec projects.Spec,
		) (projects.Detail, error) {
			return projects.Detail{}, expectedErr
		}

		testee := project_create.Task()
		err := testee(
			context.Background(),
			logger.Null(),
			client,
			commandline.MockCommandline[project_create.Flags]{
				Fullname_: "melt project create",
				Stdout_:   new(strings.Builder),
				Stderr_:   new(strings.Builder),
				Args_: map[string][]string{
					project_create.ARG_NAME: {"bracket revision"},
				},
			},
			[]any{},
		)
		if !errors.Is(err, expectedErr) {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

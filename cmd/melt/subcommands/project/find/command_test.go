package find_test

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
	project_find "github.com/strandworks/meltfab/cmd/melt/subcommands/project/find"
	"github.com/strandworks/meltfab/pkg/api/types/projects"
	"github.com/strandworks/meltfab/pkg/cmp"
	"github.com/strandworks/meltfab/pkg/utils/try"
)

func TestFindCommand(t *testing.T) {
	t.Run("it joins query words and prints found projects as JSON", func(t *testing.T) {
		expected := []projects.Detail{
			{
				ProjectId: "proj-1",
				Name:      "bracket rev B",
				CreatedAt: try.To(time.Parse(time.RFC3339, "2024-05-01T10:00:00Z")).OrFatal(t),
				UpdatedAt: try.To(time.Parse(time.RFC3339, "2024-05-02T10:00:00Z")).OrFatal(t),
			},
		}

		client := mock.New(t)
		client.Impl.FindProjects = func(
			ctx context.Context, query string,
		) ([]projects.Detail, error) {
			return expected, nil
		}

		stdout := new(strings.Builder)

		testee := project_find.Task()
		err := testee(
			context.Background(),
			logger.Null(),
			client,
			commandline.MockCommandline[struct{}]{
				Fullname_: "melt project find",
				Stdout_:   stdout,
				Stderr_:   new(strings.Builder),
				Args_: map[string][]string{
					project_find.ARG_QUERY: {"bracket", "rev", "B"},
				},
			},
			[]any{},
		)
		if err != nil {
			t.Fatal(err)
		}

		if !cmp.SliceEq(client.Calls.FindProjects, []string{"bracket rev B"}) {
			t.Errorf("query is wrong: %v", client.Calls.FindProjects)
		}

		actual := []projects.Detail{}
		if err := json.Unmarshal([]byte(stdout.String()), &actual); err != nil {
			t.Fatal(err)
		}
		if !cmp.SliceEqWith(actual, expected, projects.Detail.Equal) {
			t.Errorf("printed projects are wrong (actual, expected): %v, %v", actual, expected)
		}
	})

	t.Run("when no query is given, it searches with the empty query", func(t *testing.T) {
		client := mock.New(t)
		client.Impl.FindProjects = func(
			ctx context.Context, query string,
		) ([]projects.Detail, error) {
			return []projects.Detail{}, nil
		}

		testee := project_find.Task()
		err := testee(
			context.Background(),
			logger.Null(),
			client,
			commandline.MockCommandline[struct{}]{
				Fullname_: "melt project find",
				Stdout_:   new(strings.Builder),
				Stderr_:   new(strings.Builder),
				Args_:     map[string][]string{},
			},
			[]any{},
		)
		if err != nil {
			t.Fatal(err)
		}

		if !cmp.SliceEq(client.Calls.FindProjects, []string{""}) {
			t.Errorf("query is wrong: %v", client.Calls.FindProjects)
		}
	})

	t.Run("when the client fails, it returns the error", func(t *testing.T) {
		expectedErr := errors.New("fake error")

		client := mock.New(t)
		client.Impl.FindProjects = func(
			ctx context.Context, query string,
		) ([]projects.Detail, error) {
			return nil, expectedErr
		}

		testee := project_find.Task()
		err := testee(
			context.Background(),
			logger.Null(),
			client,
			commandline.MockCommandline[struct{}]{
				Fullname_: "melt project find",
				Stdout_:   new(strings.Builder),
				Stderr_:   new(strings.Builder),
				Args_:     map[string][]string{},
			},
			[]any{},
		)
		if !errors.Is(err, expectedErr) {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

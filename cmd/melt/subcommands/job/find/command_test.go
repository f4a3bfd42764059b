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
	job_find "github.com/strandworks/meltfab/cmd/melt/subcommands/job/find"
	"github.com/strandworks/meltfab/cmd/melt/subcommands/logger"
	"github.com/strandworks/meltfab/pkg/api/types/jobs"
	"github.com/strandworks/meltfab/pkg/cmp"
	"github.com/strandworks/meltfab/pkg/utils/try"
)

func TestFindCommand(t *testing.T) {
	type when struct {
		flags job_find.Flags
	}
	type then struct {
		status []string
	}

	theory := func(when when, then then) func(*testing.T) {
		return func(t *testing.T) {
			client := mock.New(t)
			client.Impl.FindPrintJobs = func(
				ctx context.Context, status []string,
			) ([]jobs.Detail, error) {
				return []jobs.Detail{}, nil
			}

			testee := job_find.Task()
			err := testee(
				context.Background(),
				logger.Null(),
				client,
				commandline.MockCommandline[job_find.Flags]{
					Fullname_: "melt job find",
					Stdout_:   new(strings.Builder),
					Stderr_:   new(strings.Builder),
					Flags_:    when.flags,
					Args_:     map[string][]string{},
				},
				[]any{},
			)
			if err != nil {
				t.Fatal(err)
			}

			if len(client.Calls.FindPrintJobs) != 1 {
				t.Fatalf("FindPrintJobs should be called once: %v", client.Calls.FindPrintJobs)
			}
			if !cmp.SliceEq(client.Calls.FindPrintJobs[0], then.status) {
				t.Errorf(
					"status filter is wrong (actual, expected): %v, %v",
					client.Calls.FindPrintJobs[0], then.status,
				)
			}
		}
	}

	t.Run("when no filter is given, it lists every job", theory(
		when{flags: job_find.Flags{}},
		then{status: []string{}},
	))

	t.Run("when --running is given, it filters to queued and printing", theory(
		when{flags: job_find.Flags{Running: true}},
		then{status: []string{jobs.StatusQueued, jobs.StatusPrinting}},
	))

	t.Run("when --status is given, it splits by comma", theory(
		when{flags: job_find.Flags{Status: "done, failed"}},
		then{status: []string{jobs.StatusDone, jobs.StatusFailed}},
	))

	t.Run("it prints found jobs as JSON", func(t *testing.T) {
		expected := []jobs.Detail{
			{
				JobId: "job-1", JobName: "bracket x10", ClusterId: "cluster-1",
				FileId: "file-1", Status: jobs.StatusPrinting,
				CreatedAt: try.To(time.Parse(time.RFC3339, "2024-05-01T13:00:00Z")).OrFatal(t),
			},
		}

		client := mock.New(t)
		client.Impl.FindPrintJobs = func(
			ctx context.Context, status []string,
		) ([]jobs.Detail, error) {
			return expected, nil
		}

		stdout := new(strings.Builder)

		testee := job_find.Task()
		err := testee(
			context.Background(),
			logger.Null(),
			client,
			commandline.MockCommandline[job_find.Flags]{
				Fullname_: "melt job find",
				Stdout_:   stdout,
				Stderr_:   new(strings.Builder),
				Args_:     map[string][]string{},
			},
			[]any{},
		)
		if err != nil {
			t.Fatal(err)
		}

		actual := []jobs.Detail{}
		if err := json.Unmarshal([]byte(stdout.String()), &actual); err != nil {
			t.Fatal(err)
		}
		if !cmp.SliceEqWith(actual, expected, jobs.Detail.Equal) {
			t.Errorf("printed jobs are wrong (actual, expected): %v, %v", actual, expected)
		}
	})

	t.Run("when the client fails, it returns the error", func(t *testing.T) {
		expectedErr := errors.New("fake error")

		client := mock.New(t)
		client.Impl.FindPrintJobs = func(
			ctx context.Context, status []string,
		) ([]jobs.Detail, error) {
			return nil, expectedErr
		}

		testee := job_find.Task()
		err := testee(
			context.Background(),
			logger.Null(),
			client,
			commandline.MockCommandline[job_find.Flags]{
				Fullname_: "melt job find",
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

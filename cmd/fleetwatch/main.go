package main

// Polls the cloud for the printer-cluster fleet and records how it
// changes over time: a JSON snapshot of the latest listing, and a CSV
// journal with one row per poll.

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	kprof "github.com/strandworks/meltfab/cmd/melt/config/profiles"
	krst "github.com/strandworks/meltfab/cmd/melt/rest"
	"github.com/strandworks/meltfab/cmd/melt/subcommands/common"
	"github.com/strandworks/meltfab/pkg/api/types/clusters"
	"github.com/strandworks/meltfab/pkg/auth"
	"github.com/strandworks/meltfab/pkg/loop"
	"github.com/strandworks/meltfab/pkg/monitor"
	"github.com/strandworks/meltfab/pkg/utils/filewatch"
	"github.com/strandworks/meltfab/pkg/utils/try"
	"github.com/youta-t/flarc"
	"golang.org/x/oauth2"
)

type Flags struct {
	Profile      string        `flag:"profile" help:"profile name to use"`
	ProfileStore string        `flag:"profile-store" help:"path to the profile store file"`
	Credentials  string        `flag:"credentials" help:"path to the credential cache file"`
	Interval     time.Duration `flag:"interval" help:"how long to sleep between polls"`
	StateDir     string        `flag:"state-dir" help:"directory for the snapshot and the journal"`
}

func main() {
	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, os.Kill,
	)
	defer cancel()
	logger := log.Default()
	logger.SetPrefix("[fleetwatch] ")

	cf := try.To(common.Flags(".")).OrFatal(logger)

	interval := try.To(
		time.ParseDuration(os.Getenv("FLEETWATCH_INTERVAL")),
	).OrDefault(30 * time.Second)

	cmd := try.To(
		flarc.NewCommand(
			"Watch the printer-cluster fleet and journal its changes",
			Flags{
				Profile:      envFallback("MELT_PROFILE", cf.Profile),
				ProfileStore: envFallback("MELT_PROFILE_STORE", cf.ProfileStore),
				Credentials:  envFallback("MELT_CREDENTIALS", cf.Credentials),
				Interval:     interval,
				StateDir:     envFallback("FLEETWATCH_STATE_DIR", "./fleetwatch"),
			},
			flarc.Args{},
			func(ctx context.Context, c flarc.Commandline[Flags], _ []any) error {
				return Watch(ctx, logger, c.Flags())
			},
		),
	).OrFatal(logger)

	os.Exit(flarc.Run(ctx, cmd, flarc.WithHelp(true)))
}

func envFallback(name string, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

// Watch sets the monitor up and runs the polling loop until the context
// is done or the credential stops working.
func Watch(ctx context.Context, logger *log.Logger, flags Flags) error {
	if flags.Interval <= 0 {
		return fmt.Errorf("%w: --interval must be positive", flarc.ErrUsage)
	}

	store, err := kprof.LoadProfileStore(flags.ProfileStore)
	if err != nil {
		return err
	}
	prof, ok := store[flags.Profile]
	if !ok {
		return fmt.Errorf(
			"profile '%s' not found in the profile store (%s)",
			flags.Profile, flags.ProfileStore,
		)
	}

	// A changed profile store means this process runs with stale config.
	// Stop and let the supervisor restart us. The credential cache is not
	// watched: the token source itself rewrites it on refresh.
	wctx, stopWatch, err := filewatch.UntilModifyContext(ctx, flags.ProfileStore)
	if err != nil {
		return err
	}
	defer stopWatch()

	cache := auth.NewCache(flags.Credentials)
	source, err := cache.TokenSource(wctx, flags.Profile, common.AuthConfig(prof))
	if err != nil {
		if errors.Is(err, auth.ErrNoCredential) {
			return fmt.Errorf(
				"%w: sign in first with `melt login --profile %s`",
				err, flags.Profile,
			)
		}
		return err
	}

	client, err := krst.NewClient(prof, source)
	if err != nil {
		return err
	}

	snapshotPath := filepath.Join(flags.StateDir, "clusters.json")
	journalPath := filepath.Join(flags.StateDir, "fleet.csv")

	prev, err := monitor.LoadSnapshot(snapshotPath)
	if err != nil && !errors.Is(err, monitor.ErrNoSnapshot) {
		return err
	}

	logger.Printf(
		"watching fleet every %s (snapshot: %s, journal: %s)",
		flags.Interval, snapshotPath, journalPath,
	)

	_, err = loop.Start(
		wctx, prev,
		Cycle(logger, client, snapshotPath, journalPath, flags.Interval),
	)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Cycle is one poll: fetch, snapshot, diff, journal.
//
// A fetch failure is logged and the previous snapshot is carried over to
// the next cycle. An authorization failure stops the loop: retrying
// cannot fix a revoked or expired credential.
func Cycle(
	logger *log.Logger,
	client krst.MeltClient,
	snapshotPath string,
	journalPath string,
	interval time.Duration,
) loop.Task[[]clusters.Detail] {
	return func(ctx context.Context, prev []clusters.Detail) ([]clusters.Detail, loop.Next) {
		next, err := client.FindClusters(ctx)
		if err != nil {
			var retrieveErr *oauth2.RetrieveError
			if errors.As(err, &retrieveErr) {
				return prev, loop.Break(fmt.Errorf("credential rejected: %w", err))
			}
			logger.Printf("fetch failed (will retry): %s", err)
			return prev, loop.Continue(interval)
		}

		tr := monitor.Diff(prev, next)

		if err := monitor.WriteSnapshot(snapshotPath, next); err != nil {
			return prev, loop.Break(err)
		}

		online := monitor.Online(next)
		if err := monitor.AppendJournal(
			journalPath, time.Now(), online, len(next)-online, tr,
		); err != nil {
			return prev, loop.Break(err)
		}

		if 0 < len(tr.CameOnline) {
			logger.Printf("came online: %v", tr.CameOnline)
		}
		if 0 < len(tr.WentOffline) {
			logger.Printf("went offline: %v", tr.WentOffline)
		}

		return next, loop.Continue(interval)
	}
}

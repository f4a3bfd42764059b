package monitor

import (
	"github.com/strandworks/meltfab/pkg/api/types/clusters"
	"github.com/strandworks/meltfab/pkg/utils"
)

// Transition is the change between two successive cluster snapshots.
type Transition struct {
	// ids of clusters online now but not before. Sorted.
	CameOnline []string

	// ids of clusters online before but not now. Sorted.
	//
	// A cluster that disappeared from the listing counts as offline.
	WentOffline []string
}

// Diff compares two snapshots.
//
// prev may be nil (no earlier snapshot); then every online cluster in
// next comes up as newly online.
func Diff(prev, next []clusters.Detail) Transition {
	onlineBefore := onlineSet(prev)
	onlineNow := onlineSet(next)

	cameOnline := []string{}
	for _, id := range utils.KeysOf(onlineNow) {
		if !onlineBefore[id] {
			cameOnline = append(cameOnline, id)
		}
	}

	wentOffline := []string{}
	for _, id := range utils.KeysOf(onlineBefore) {
		if !onlineNow[id] {
			wentOffline = append(wentOffline, id)
		}
	}

	less := func(a, b string) bool { return a < b }
	return Transition{
		CameOnline:  utils.Sorted(cameOnline, less),
		WentOffline: utils.Sorted(wentOffline, less),
	}
}

// Online counts the online clusters in the snapshot.
func Online(snap []clusters.Detail) int {
	n := 0
	for _, c := range snap {
		if c.IsOnline() {
			n += 1
		}
	}
	return n
}

func onlineSet(snap []clusters.Detail) map[string]bool {
	set := map[string]bool{}
	for _, c := range snap {
		if c.IsOnline() {
			set[c.ClusterId] = true
		}
	}
	return set
}

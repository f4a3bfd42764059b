package monitor

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

var journalHeader = []string{
	"timestamp", "online", "offline", "came_online", "went_offline",
}

// AppendJournal appends one row to the CSV journal at path.
//
// The row records the poll time, how many clusters are online and
// offline, and which ids changed state since the previous poll. Ids are
// joined with ";" within their cell. The header row is written when the
// file is created; existing rows are never touched.
func AppendJournal(path string, at time.Time, online int, offline int, tr Transition) error {
	if err := os.MkdirAll(filepath.Dir(path), os.FileMode(0755)); err != nil {
		return err
	}

	_, staterr := os.Stat(path)
	fresh := os.IsNotExist(staterr)
	if staterr != nil && !fresh {
		return staterr
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, os.FileMode(0644))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if fresh {
		if err := w.Write(journalHeader); err != nil {
			return err
		}
	}

	row := []string{
		at.Format(time.RFC3339),
		strconv.Itoa(online),
		strconv.Itoa(offline),
		strings.Join(tr.CameOnline, ";"),
		strings.Join(tr.WentOffline, ";"),
	}
	if err := w.Write(row); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}

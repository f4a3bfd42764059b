package monitor

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/strandworks/meltfab/pkg/api/types/clusters"
)

// ErrNoSnapshot is returned by LoadSnapshot when no snapshot has been
// written yet.
var ErrNoSnapshot = errors.New("no snapshot")

// WriteSnapshot stores the cluster listing as JSON at path.
//
// The content is written to a temporary file in the same directory and
// renamed into place, so a reader never sees a half-written snapshot.
func WriteSnapshot(path string, snap []clusters.Detail) error {
	if err := os.MkdirAll(filepath.Dir(path), os.FileMode(0755)); err != nil {
		return err
	}

	buf, err := json.MarshalIndent(snap, "", "    ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpname := tmp.Name()

	if _, err := tmp.Write(buf); err != nil {
		tmp.Close()
		os.Remove(tmpname)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpname)
		return err
	}

	if err := os.Rename(tmpname, path); err != nil {
		os.Remove(tmpname)
		return err
	}
	return nil
}

// LoadSnapshot reads back a snapshot written by WriteSnapshot.
//
// When the file does not exist, ErrNoSnapshot is returned.
func LoadSnapshot(path string) ([]clusters.Detail, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", ErrNoSnapshot, path)
		}
		return nil, err
	}

	snap := []clusters.Detail{}
	if err := json.Unmarshal(buf, &snap); err != nil {
		return nil, err
	}
	return snap, nil
}

package common_test

import (
	"os"
	"path"
	"path/filepath"
	"testing"

	"github.com/strandworks/meltfab/cmd/melt/subcommands/common"
	"github.com/strandworks/meltfab/pkg/utils/try"
)

func TestFlags(t *testing.T) {
	t.Run("when no .meltprofile is found, the profile defaults to 'default'", func(t *testing.T) {
		home := t.TempDir()
		from := t.TempDir()

		flags := try.To(common.Flags(from, common.WithHome(home))).OrFatal(t)

		if flags.Profile != "default" {
			t.Errorf("profile is wrong: %s", flags.Profile)
		}
		if flags.ProfileStore != path.Join(home, ".melt", "profile") {
			t.Errorf("profile store is wrong: %s", flags.ProfileStore)
		}
		if flags.Credentials != path.Join(home, ".melt", "credentials.json") {
			t.Errorf("credentials is wrong: %s", flags.Credentials)
		}
	})

	t.Run("when .meltprofile is in the directory, its first line names the profile", func(t *testing.T) {
		home := t.TempDir()
		from := t.TempDir()
		if err := os.WriteFile(
			filepath.Join(from, ".meltprofile"), []byte("staging\n"), 0600,
		); err != nil {
			t.Fatal(err)
		}

		flags := try.To(common.Flags(from, common.WithHome(home))).OrFatal(t)

		if flags.Profile != "staging" {
			t.Errorf("profile is wrong: %s", flags.Profile)
		}
	})

	t.Run("when .meltprofile is in a parent directory, it is found by walking up", func(t *testing.T) {
		home := t.TempDir()
		root := t.TempDir()
		if err := os.WriteFile(
			filepath.Join(root, ".meltprofile"), []byte("production"), 0600,
		); err != nil {
			t.Fatal(err)
		}
		from := filepath.Join(root, "deep", "nested", "dir")
		if err := os.MkdirAll(from, 0755); err != nil {
			t.Fatal(err)
		}

		flags := try.To(common.Flags(from, common.WithHome(home))).OrFatal(t)

		if flags.Profile != "production" {
			t.Errorf("profile is wrong: %s", flags.Profile)
		}
	})
}

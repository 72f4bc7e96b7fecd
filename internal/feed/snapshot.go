package feed

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/woozymasta/quakemap/internal/geo"

	"github.com/rs/zerolog/log"
)

// Save writes the raw feed document to path. The file is replaced atomically
// so readers never see a partial document.
func Save(path string, fc geo.FeatureCollection) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if err := json.NewEncoder(f).Encode(fc); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}

	// We care about write errors on close
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, path); err != nil {
		return err
	}

	log.Debug().Str("path", path).Int("features", len(fc.Features)).Msg("Feed snapshot saved")
	return nil
}

package resultlog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog/log"

	"github.com/tensorplex-labs/gratune/internal/gra"
)

const (
	zstdExt = ".zst"
	logPerm = 0o644
)

// WriteFile writes the whole log to a temporary file next to path and renames
// it into place, so a failed run never leaves a partial log. Paths ending in
// .zst are zstd compressed.
func WriteFile(path string, results []gra.Result, format Format, meta Metadata) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create result log: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if strings.HasSuffix(path, zstdExt) {
		enc, zerr := zstd.NewWriter(tmp, zstd.WithEncoderConcurrency(1))
		if zerr != nil {
			return fmt.Errorf("create zstd writer: %w", zerr)
		}
		if err = Write(enc, results, format, meta); err != nil {
			enc.Close()
			return err
		}
		if err = enc.Close(); err != nil {
			return fmt.Errorf("flush zstd writer: %w", err)
		}
	} else if err = Write(tmp, results, format, meta); err != nil {
		return err
	}

	// CreateTemp opens with 0600; the log is an ordinary output file.
	if err = tmp.Chmod(logPerm); err != nil {
		return fmt.Errorf("chmod result log: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close result log: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("move result log into place: %w", err)
	}

	log.Info().Str("path", path).Str("format", string(format)).Int("lines", len(results)).Msg("result log written")
	return nil
}

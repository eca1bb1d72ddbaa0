package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
)

const tempPattern = ".httpreq-*"

// ToFile streams src into destPath and returns the number of bytes written.
// size is the expected length, or -1 when unknown. The data lands in a temp
// file in the destination directory which is renamed to destPath on
// success and removed on any failure.
//
// A failure of src itself is returned as a [*ReadError], so callers can
// tell a broken source apart from a broken destination. Cancellation of
// ctx is reported as [ErrDownloadCancelled].
func ToFile(ctx context.Context, src io.Reader, size int64, destPath string, logger *slog.Logger, optFns ...Option) (int64, error) {
	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return 0, fmt.Errorf("applying option: %w", err)
		}
	}

	if destPath == "" {
		return 0, errors.New("destination path must not be empty")
	}

	if opts.skipExisting {
		if _, err := os.Stat(destPath); err == nil {
			logger.Info("skipping existing file", "path", destPath)
			return 0, nil
		}
	}

	file, err := os.CreateTemp(filepath.Dir(destPath), tempPattern)
	if err != nil {
		return 0, fmt.Errorf("creating temp file: %w", err)
	}

	var committed bool
	defer func() {
		if committed {
			return
		}
		if err := file.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
			logger.Error("closing temp file", "path", file.Name(), "error", err)
		}
		if err := os.Remove(file.Name()); err != nil {
			logger.Error("removing temp file", "path", file.Name(), "error", err)
		}
	}()

	sinks := []io.Writer{file}
	if opts.checksum != nil {
		opts.checksum.Reset()
		sinks = append(sinks, opts.checksum)
	}
	var prog *progress
	if opts.progress {
		prog = newProgress(logger, size)
		sinks = append(sinks, prog)
	}

	n, err := io.Copy(io.MultiWriter(sinks...), &sourceReader{ctx: ctx, r: src})
	if err != nil {
		var readErr *ReadError
		switch {
		case errors.Is(err, context.Canceled):
			return n, fmt.Errorf("%w: %w", ErrDownloadCancelled, err)
		case errors.As(err, &readErr):
			return n, readErr
		}
		return n, fmt.Errorf("writing temp file: %w", err)
	}

	if size >= 0 && n != size {
		return n, &MismatchError{
			Err:      ErrContentLengthMismatch,
			Expected: strconv.FormatInt(size, 10),
			Actual:   strconv.FormatInt(n, 10),
		}
	}

	if opts.checksum != nil {
		if err := opts.checksum.verify(); err != nil {
			return n, err
		}
	}

	if err := commit(file, destPath); err != nil {
		return n, err
	}
	committed = true

	if prog != nil {
		prog.report("response body written")
	}

	return n, nil
}

// commit flushes file to disk and moves it to destPath. file is closed
// on success.
func commit(file *os.File, destPath string) error {
	if err := file.Sync(); err != nil {
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(file.Name(), destPath); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

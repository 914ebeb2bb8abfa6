package common

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultMaxFileSize caps documents read from disk or stdin.
const DefaultMaxFileSize = 50 * 1024 * 1024

// ReadFile reads the regular file at path. Files larger than maxSize fail
// with ErrTooLarge before any content is read; 0 disables the check.
func ReadFile(ctx context.Context, path string, maxSize int64) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, WrapErrorf(err, "failed to stat %s", path)
	}
	if info.IsDir() {
		return nil, NewValidationError("path", path, "is a directory")
	}
	if maxSize > 0 && info.Size() > maxSize {
		return nil, WrapErrorf(ErrTooLarge, "%s is %d bytes, limit is %d", path, info.Size(), maxSize)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, WrapErrorf(err, "failed to open %s", path)
	}
	defer f.Close()

	data, err := ReadLimited(ctx, f, maxSize)
	if err != nil {
		return nil, WrapErrorf(err, "failed to read %s", path)
	}
	return data, nil
}

// ReadLimited reads r to the end, failing with ErrTooLarge once more than
// maxSize bytes arrive. A maxSize of zero means no limit. The read stops early
// when ctx is cancelled.
func ReadLimited(ctx context.Context, r io.Reader, maxSize int64) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if maxSize > 0 {
		r = io.LimitReader(r, maxSize+1)
	}

	data, err := io.ReadAll(ctxReader{ctx: ctx, r: r})
	if err != nil {
		return nil, err
	}
	if maxSize > 0 && int64(len(data)) > maxSize {
		return nil, WrapErrorf(ErrTooLarge, "more than %d bytes", maxSize)
	}
	return data, nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (cr ctxReader) Read(p []byte) (int, error) {
	if err := cr.ctx.Err(); err != nil {
		return 0, err
	}
	return cr.r.Read(p)
}

// WriteFileAtomic writes data next to path and renames it into place, so
// readers never observe a half-written file. Missing parent directories are
// created.
func WriteFileAtomic(path string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(path)
	if err := EnsureDir(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return WrapErrorf(err, "failed to create temporary file in %s", dir)
	}
	tmpName := tmp.Name()
	ok := false
	defer func() {
		if !ok {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return WrapErrorf(err, "failed to write %s", path)
	}
	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		return WrapErrorf(err, "failed to set permissions on %s", path)
	}
	if err := tmp.Close(); err != nil {
		return WrapErrorf(err, "failed to write %s", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return WrapErrorf(err, "failed to move %s into place", path)
	}
	ok = true
	return nil
}

// EnsureDir creates dir and its parents. An existing non-directory at dir
// is an error.
func EnsureDir(dir string) error {
	if info, err := os.Stat(dir); err == nil {
		if !info.IsDir() {
			return NewValidationError("path", dir, "exists but is not a directory")
		}
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return WrapErrorf(err, "failed to create directory %s", dir)
	}
	return nil
}

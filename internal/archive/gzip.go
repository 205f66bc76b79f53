// Package archive unpacks the compressed downloads delivered by the data
// portals.
package archive

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mholt/archives"
)

// ProgressFunc receives the number of compressed bytes consumed so far and
// the size of the input file.
type ProgressFunc func(done, total int64)

// ExtractGzip decompresses the gzip file at in into out and removes in once
// out has been written completely. out is created with mode 0644.
func ExtractGzip(ctx context.Context, in, out string, progress ProgressFunc) error {
	src, err := os.Open(in)
	if err != nil {
		return fmt.Errorf("failed to open %q: %w", in, err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %q: %w", in, err)
	}

	counter := &countingReader{ctx: ctx, r: src, total: info.Size(), progress: progress}

	rc, err := archives.Gz{}.OpenReader(counter)
	if err != nil {
		return fmt.Errorf("failed to read gzip header of %q: %w", in, err)
	}
	defer rc.Close()

	dst, err := os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create %q: %w", out, err)
	}
	if err := writeAll(dst, rc); err != nil {
		os.Remove(out)
		return fmt.Errorf("failed to decompress %q into %q: %w", in, out, err)
	}

	src.Close()
	if err := os.Remove(in); err != nil {
		return fmt.Errorf("failed to remove %q: %w", in, err)
	}
	return nil
}

// writeAll copies r into f and closes f. A failed copy or close leaves a
// partial file, which the caller removes.
func writeAll(f *os.File, r io.Reader) error {
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// countingReader reports read progress and stops once ctx is done.
type countingReader struct {
	ctx      context.Context
	r        io.Reader
	done     int64
	total    int64
	progress ProgressFunc
}

func (c *countingReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	n, err := c.r.Read(p)
	c.done += int64(n)
	if c.progress != nil && n > 0 {
		c.progress(c.done, c.total)
	}
	return n, err
}

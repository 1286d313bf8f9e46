// Package export saves rendered specimen cards to disk.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/f3rmion/oasis/internal/card"
	"go.uber.org/zap"
)

// ErrSaveInProgress is returned when Save is called while another save runs.
var ErrSaveInProgress = errors.New("save already in progress")

// Filename returns the export name for a specimen identifier.
func Filename(id string) string {
	return fmt.Sprintf("oasis-specimen-%s.png", id)
}

// Rasterizer turns a card into encoded PNG bytes.
type Rasterizer interface {
	Rasterize(ctx context.Context, c card.Card) ([]byte, error)
}

// Downloader delivers exported bytes under a file name and reports where they went.
type Downloader interface {
	Download(name string, data []byte) (string, error)
}

// Result is the outcome of one save.
type Result struct {
	Path string
	Err  error
}

// OK reports whether the save produced a file.
func (r Result) OK() bool { return r.Err == nil }

// Message is the user-facing notice for r. failed is shown for errors.
func (r Result) Message(failed string) string {
	if r.Err != nil {
		return fmt.Sprintf("%s (%v)", failed, r.Err)
	}
	return "已保存 " + r.Path
}

// Saver runs at most one export at a time.
type Saver struct {
	rasterizer Rasterizer
	downloader Downloader
	settle     time.Duration
	logger     *zap.Logger

	saving atomic.Bool
}

// NewSaver creates a saver. settle is waited before rasterizing.
func NewSaver(r Rasterizer, d Downloader, settle time.Duration, logger *zap.Logger) *Saver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Saver{rasterizer: r, downloader: d, settle: settle, logger: logger.Named("export")}
}

// Saving reports whether a save is running.
func (s *Saver) Saving() bool {
	return s.saving.Load()
}

// Save rasterizes c and downloads it as Filename(c.Texts.SpecimenNo).
// The saving flag is always cleared before Save returns.
func (s *Saver) Save(ctx context.Context, c card.Card) Result {
	if !s.saving.CompareAndSwap(false, true) {
		s.logger.Debug("save rejected, another save is running")
		return Result{Err: ErrSaveInProgress}
	}
	defer s.saving.Store(false)

	name := Filename(c.Texts.SpecimenNo)
	start := time.Now()

	if s.settle > 0 {
		t := time.NewTimer(s.settle)
		select {
		case <-ctx.Done():
			t.Stop()
			return s.fail(name, ctx.Err())
		case <-t.C:
		}
	}

	data, err := s.rasterizer.Rasterize(ctx, c)
	if err != nil {
		return s.fail(name, fmt.Errorf("rasterizing card: %w", err))
	}

	path, err := s.downloader.Download(name, data)
	if err != nil {
		return s.fail(name, fmt.Errorf("writing %s: %w", name, err))
	}

	s.logger.Info("card saved",
		zap.String("path", path),
		zap.String("specimen", c.Preset.Name),
		zap.Int("bytes", len(data)),
		zap.Duration("took", time.Since(start)))
	return Result{Path: path}
}

func (s *Saver) fail(name string, err error) Result {
	s.logger.Error("save failed", zap.String("file", name), zap.Error(err))
	return Result{Err: err}
}

// DirDownloader writes files into a directory.
type DirDownloader struct {
	Dir string
}

// Download writes data to Dir/name via a temporary file and rename.
func (d DirDownloader) Download(name string, data []byte) (string, error) {
	dir := d.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".oasis-*.png")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("closing temp file: %w", err)
	}

	dest := filepath.Join(dir, name)
	if err := os.Rename(tmpName, dest); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("renaming to %s: %w", dest, err)
	}
	if err := os.Chmod(dest, 0644); err != nil {
		return "", fmt.Errorf("setting permissions: %w", err)
	}

	if abs, err := filepath.Abs(dest); err == nil {
		dest = abs
	}
	return dest, nil
}

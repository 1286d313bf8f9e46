package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/f3rmion/oasis/internal/card"
	"github.com/f3rmion/oasis/internal/specimen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRasterizer struct {
	data    []byte
	err     error
	started chan struct{}
	release chan struct{}
}

func (f *fakeRasterizer) Rasterize(ctx context.Context, c card.Card) ([]byte, error) {
	if f.started != nil {
		close(f.started)
	}
	if f.release != nil {
		<-f.release
	}
	return f.data, f.err
}

type recordingDownloader struct {
	mu    sync.Mutex
	names []string
}

func (d *recordingDownloader) Download(name string, data []byte) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.names = append(d.names, name)
	return "/saved/" + name, nil
}

func (d *recordingDownloader) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.names)
}

func testCard() card.Card {
	return card.Card{Preset: specimen.DefaultPresets()[1], Texts: specimen.DefaultTexts()}
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "oasis-specimen-0824.png", Filename("0824"))
	assert.Equal(t, "oasis-specimen-x1.png", Filename("x1"))
}

func TestSave_Success(t *testing.T) {
	dl := &recordingDownloader{}
	s := NewSaver(&fakeRasterizer{data: []byte("png")}, dl, 0, nil)

	res := s.Save(context.Background(), testCard())
	require.True(t, res.OK())
	assert.Equal(t, "/saved/oasis-specimen-0824.png", res.Path)
	assert.Equal(t, []string{"oasis-specimen-0824.png"}, dl.names)
	assert.False(t, s.Saving())
	assert.Contains(t, res.Message("failed"), res.Path)
}

func TestSave_RasterizeFailure(t *testing.T) {
	dl := &recordingDownloader{}
	s := NewSaver(&fakeRasterizer{err: errors.New("boom")}, dl, 0, nil)

	res := s.Save(context.Background(), testCard())
	require.False(t, res.OK())
	assert.ErrorContains(t, res.Err, "boom")
	assert.Equal(t, 0, dl.count(), "no download on failure")
	assert.False(t, s.Saving(), "saving flag must be cleared")
	assert.Contains(t, res.Message("保存图片失败，请重试"), "保存图片失败")
}

func TestSave_ConcurrentCallIsRejected(t *testing.T) {
	dl := &recordingDownloader{}
	raster := &fakeRasterizer{data: []byte("png"), started: make(chan struct{}), release: make(chan struct{})}
	s := NewSaver(raster, dl, 0, nil)

	done := make(chan Result)
	go func() { done <- s.Save(context.Background(), testCard()) }()

	<-raster.started
	assert.True(t, s.Saving())

	second := s.Save(context.Background(), testCard())
	assert.ErrorIs(t, second.Err, ErrSaveInProgress)

	close(raster.release)
	first := <-done
	assert.True(t, first.OK())
	assert.Equal(t, 1, dl.count(), "exactly one download")
	assert.False(t, s.Saving())
}

func TestSave_CanceledDuringSettle(t *testing.T) {
	dl := &recordingDownloader{}
	s := NewSaver(&fakeRasterizer{data: []byte("png")}, dl, time.Hour, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := s.Save(ctx, testCard())
	assert.ErrorIs(t, res.Err, context.Canceled)
	assert.False(t, s.Saving())
	assert.Equal(t, 0, dl.count())
}

func TestDirDownloader(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cards")
	d := DirDownloader{Dir: dir}

	path, err := d.Download("oasis-specimen-0824.png", []byte("data"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "oasis-specimen-0824.png"), path)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "data", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should be gone")
}

func TestSave_WithRendererAndDirectory(t *testing.T) {
	dir := t.TempDir()
	r := card.NewRenderer(card.Options{PixelRatio: 1}, nil)
	s := NewSaver(r, DirDownloader{Dir: dir}, time.Millisecond, nil)

	res := s.Save(context.Background(), testCard())
	require.NoError(t, res.Err)

	_, err := os.Stat(filepath.Join(dir, "oasis-specimen-0824.png"))
	assert.NoError(t, err)
}

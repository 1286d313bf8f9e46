// Package asset loads the plant images shown on cards.
package asset

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	_ "golang.org/x/image/webp"
)

// maxImageBytes caps remote downloads.
const maxImageBytes = 16 << 20

// Fetcher loads and decodes images by reference, caching decoded results.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
	logger  *zap.Logger

	mu    sync.Mutex
	cache map[string]image.Image
}

// NewFetcher creates a fetcher. A zero timeout disables the per-request bound.
func NewFetcher(timeout time.Duration, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		client:  &http.Client{},
		timeout: timeout,
		logger:  logger.Named("asset"),
		cache:   make(map[string]image.Image),
	}
}

// Fetch returns the image at ref: an http(s) URL, a file:// URL or a local path.
func (f *Fetcher) Fetch(ctx context.Context, ref string) (image.Image, error) {
	if ref == "" {
		return nil, fmt.Errorf("empty image reference")
	}

	f.mu.Lock()
	if img, ok := f.cache[ref]; ok {
		f.mu.Unlock()
		return img, nil
	}
	f.mu.Unlock()

	start := time.Now()
	data, err := f.read(ctx, ref)
	if err != nil {
		f.logger.Warn("image load failed", zap.String("ref", ref), zap.Error(err))
		return nil, err
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		f.logger.Warn("image decode failed", zap.String("ref", ref), zap.Error(err))
		return nil, fmt.Errorf("decoding image %s: %w", ref, err)
	}
	f.logger.Debug("image loaded",
		zap.String("ref", ref),
		zap.String("format", format),
		zap.Duration("took", time.Since(start)))

	f.mu.Lock()
	f.cache[ref] = img
	f.mu.Unlock()
	return img, nil
}

func (f *Fetcher) read(ctx context.Context, ref string) ([]byte, error) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return f.download(ctx, ref)
	}

	path := ref
	if strings.HasPrefix(ref, "file://") {
		u, err := url.Parse(ref)
		if err != nil {
			return nil, fmt.Errorf("parsing file URL %s: %w", ref, err)
		}
		path = u.Path
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading image file: %w", err)
	}
	return data, nil
}

func (f *Fetcher) download(ctx context.Context, ref string) ([]byte, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", "oasis")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching image: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading image body: %w", err)
	}
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("image exceeds %d bytes", maxImageBytes)
	}
	return data, nil
}

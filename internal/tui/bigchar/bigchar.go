// Package bigchar renders short text as large block art using half-block characters.
package bigchar

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// threshold is the brightness above which a half cell is lit.
const threshold = 40

// Banner draws text with one face and caches the results.
type Banner struct {
	face font.Face

	mu    sync.Mutex
	cache map[string]string
}

// New creates a banner. A nil face renders nothing.
func New(face font.Face) *Banner {
	return &Banner{face: face, cache: make(map[string]string)}
}

// Render draws text into cols x rows terminal cells.
func (b *Banner) Render(text string, cols, rows int) string {
	if b == nil || b.face == nil || text == "" || cols <= 0 || rows <= 0 {
		return ""
	}

	key := fmt.Sprintf("%s/%dx%d", text, cols, rows)
	b.mu.Lock()
	defer b.mu.Unlock()
	if cached, ok := b.cache[key]; ok {
		return cached
	}

	rendered := toHalfBlocks(b.rasterize(text), cols, rows)
	b.cache[key] = rendered
	return rendered
}

// rasterize draws text white on black at the face's natural size.
func (b *Banner) rasterize(text string) *image.Gray {
	metrics := b.face.Metrics()
	ascent := metrics.Ascent.Ceil()
	height := ascent + metrics.Descent.Ceil()
	width := font.MeasureString(b.face, text).Ceil()

	padding := 2
	img := image.NewGray(image.Rect(0, 0, width+padding*2, height+padding*2))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.Black}, image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: b.face,
		Dot:  fixed.P(padding, padding+ascent),
	}
	d.DrawString(text)
	return img
}

// toHalfBlocks scales img to cols x rows*2 and maps pixel pairs to ▀▄█.
func toHalfBlocks(img image.Image, cols, rows int) string {
	scaled := imaging.Resize(img, cols, rows*2, imaging.Box)

	lit := func(x, y int) bool {
		return scaled.NRGBAAt(x, y).R > threshold
	}

	var result strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top := lit(col, row*2)
			bottom := lit(col, row*2+1)
			switch {
			case top && bottom:
				result.WriteRune('█')
			case top:
				result.WriteRune('▀')
			case bottom:
				result.WriteRune('▄')
			default:
				result.WriteRune(' ')
			}
		}
		if row < rows-1 {
			result.WriteRune('\n')
		}
	}
	return result.String()
}

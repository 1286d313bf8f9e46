package views

import (
	"image"
	"image/color"

	"github.com/eliukblau/pixterm/pkg/ansimage"
)

// previewBackground is blended behind transparent pixels.
var previewBackground = color.RGBA{R: 0xfd, G: 0xfb, B: 0xf7, A: 0xFF}

// PreviewFunc renders img into at most cols×rows terminal cells.
type PreviewFunc func(img image.Image, cols, rows int) string

// ANSIPreview renders img with half-block ANSI colour cells.
func ANSIPreview(img image.Image, cols, rows int) string {
	if img == nil || cols <= 0 || rows <= 0 {
		return ""
	}
	pix, err := ansimage.NewScaledFromImage(img, rows*2, cols, previewBackground, ansimage.ScaleModeFit, ansimage.NoDithering)
	if err != nil {
		return ""
	}
	return pix.Render()
}

// Package card rasterizes a specimen into the exported PNG card.
package card

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
	"unicode"

	"github.com/disintegration/imaging"
	"github.com/f3rmion/oasis/internal/specimen"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
	xdraw "golang.org/x/image/draw"
)

// Logical card size before the pixel ratio is applied.
const (
	Width  = 360
	Height = 560
)

// Card palette.
var (
	ColorInk         = color.RGBA{R: 0x3d, G: 0x3a, B: 0x32, A: 0xFF}
	ColorMuted       = color.RGBA{R: 0x8a, G: 0x85, B: 0x74, A: 0xFF}
	ColorSeal        = color.RGBA{R: 0xb5, G: 0x48, B: 0x3c, A: 0xFF}
	ColorTerracotta  = color.RGBA{R: 0xc0, G: 0x65, B: 0x4a, A: 0xFF}
	ColorRule        = color.RGBA{R: 0xd9, G: 0xd5, B: 0xc7, A: 0xFF}
	ColorPlaceholder = color.RGBA{R: 0xe9, G: 0xe6, B: 0xdb, A: 0xFF}
	ColorWash        = color.RGBA{R: 0xee, G: 0xf2, B: 0xe6, A: 0xFF}
)

// Card is everything drawn onto one exported image.
type Card struct {
	Preset    specimen.Preset
	Texts     specimen.Texts
	Romanized string      // Pinyin line under the name
	Date      string      // Header date, e.g. "8月24日"; empty omits it
	Image     image.Image // nil when the plant image could not be loaded
}

// Options control the raster output.
type Options struct {
	PixelRatio int        // Output scale multiplier
	Background color.RGBA // Fill behind everything
	FontPath   string     // Optional explicit font file
}

// Renderer draws cards.
type Renderer struct {
	opts   Options
	fonts  *Fonts
	logger *zap.Logger
}

// NewRenderer creates a renderer. Font problems are logged and fall back to
// the built-in face rather than failing.
func NewRenderer(opts Options, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("card")
	if opts.PixelRatio < 1 {
		opts.PixelRatio = 1
	}

	fonts, err := LoadFonts(opts.FontPath)
	if err != nil {
		logger.Warn("font load failed, using fallback", zap.String("path", opts.FontPath), zap.Error(err))
	}
	if fonts.Source() == "" {
		logger.Warn("no CJK font found, card text will use the basic face")
	} else {
		logger.Debug("card font loaded", zap.String("path", fonts.Source()))
	}

	return &Renderer{opts: opts, fonts: fonts, logger: logger}
}

// Fonts returns the font set used for card text.
func (r *Renderer) Fonts() *Fonts {
	return r.fonts
}

// Bounds returns the output image bounds.
func (r *Renderer) Bounds() image.Rectangle {
	return image.Rect(0, 0, Width*r.opts.PixelRatio, Height*r.opts.PixelRatio)
}

// Render draws c into a new image.
func (r *Renderer) Render(ctx context.Context, c Card) (*image.RGBA, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p := &painter{
		dst:   image.NewRGBA(r.Bounds()),
		ratio: r.opts.PixelRatio,
		fonts: r.fonts,
	}
	p.fill(p.dst.Bounds(), r.opts.Background)
	p.frame(p.rect(12, 12, Width-12, Height-12), ColorRule)

	// Header
	p.text(c.Texts.ResultTitle, 28, 44, 13, ColorInk, alignLeft)
	if c.Date != "" {
		p.text(c.Date, Width/2, 44, 10, ColorMuted, alignCenter)
	}
	p.text("NO."+c.Texts.SpecimenNo, Width-28, 44, 11, ColorMuted, alignRight)
	p.fill(p.rect(28, 54, Width-28, 55), ColorRule)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.drawPlant(p, c)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Name block
	p.text(c.Preset.Name, Width/2, 350, 24, ColorInk, alignCenter)
	if c.Romanized != "" {
		p.text(c.Romanized, Width/2, 372, 9, ColorMuted, alignCenter)
	}

	r.drawTag(p, c.Preset)

	// Quote
	p.fill(p.rect(40, 422, Width-40, 423), ColorRule)
	y := 446
	lines, size, truncated := fitQuote(p, c.Preset.Quote, Width-80)
	if truncated {
		r.logger.Warn("quote truncated to fit the card",
			zap.String("specimen", c.Preset.Name),
			zap.Int("lines", maxQuoteLines))
	}
	for _, line := range lines {
		p.text(line, Width/2, y, size, ColorInk, alignCenter)
		y += lineHeight(size)
	}
	p.fill(p.rect(40, y-6, Width-40, y-5), ColorRule)

	if c.Preset.CTA != "" {
		p.text(c.Preset.CTA, Width/2, y+16, 10, ColorTerracotta, alignCenter)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Footer
	p.text(c.Texts.Collection, 28, Height-28, 10, ColorMuted, alignLeft)
	if err := r.drawQR(p, c); err != nil {
		r.logger.Warn("qr code skipped", zap.Error(err))
	}

	return p.dst, nil
}

// maxQuoteLines is the room between the tag and the CTA.
const maxQuoteLines = 4

// quoteSizes are tried largest first.
var quoteSizes = []float64{12, 11, 10, 9}

func lineHeight(size float64) int {
	return int(size*5/3 + 0.5)
}

// fitQuote wraps quote at the largest size that stays within maxQuoteLines.
// If even the smallest size overflows, the last line ends in an ellipsis.
func fitQuote(p *painter, quote string, width int) (lines []string, size float64, truncated bool) {
	for _, size = range quoteSizes {
		lines = p.wrap(quote, size, width)
		if len(lines) <= maxQuoteLines {
			return lines, size, false
		}
	}

	lines = lines[:maxQuoteLines]
	last := []rune(strings.TrimRightFunc(lines[maxQuoteLines-1], unicode.IsSpace))
	for len(last) > 0 && p.measure(string(last)+"…", size) > p.px(width) {
		last = last[:len(last)-1]
	}
	lines[maxQuoteLines-1] = string(last) + "…"
	return lines, size, true
}

// Rasterize renders c and encodes it as PNG.
func (r *Renderer) Rasterize(ctx context.Context, c Card) ([]byte, error) {
	img, err := r.Render(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("rendering card: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// PlantCenter and PlantRadius locate the circular plant image in logical units.
var (
	PlantCenter = image.Pt(Width/2, 190)
	PlantRadius = 115
)

func (r *Renderer) drawPlant(p *painter, c Card) {
	center := image.Pt(p.px(PlantCenter.X), p.px(PlantCenter.Y))
	radius := p.px(PlantRadius)

	if c.Image == nil {
		p.disc(center, radius, ColorPlaceholder)
		return
	}
	if c.Preset.Illustration {
		p.disc(center, radius, ColorWash)
	}

	fitted := imaging.Fill(c.Image, radius*2, radius*2, imaging.Center, imaging.Lanczos)
	mask := &circleMask{center: center, radius: radius}
	xdraw.DrawMask(p.dst, mask.Bounds(), fitted, image.Point{}, mask, mask.Bounds().Min, xdraw.Over)
}

func (r *Renderer) drawTag(p *painter, preset specimen.Preset) {
	const size = 14.0
	sealR := 15
	gap := 8

	textWidth := p.measure(preset.TagText, size)
	total := p.px(sealR*2+gap) + textWidth
	startX := (p.px(Width) - total) / 2

	center := image.Pt(startX+p.px(sealR), p.px(398))
	p.ring(center, p.px(sealR), p.px(1)+1, ColorSeal, r.opts.Background)

	seal := &painter{dst: p.dst, ratio: 1, fonts: p.fonts}
	seal.text(string(preset.TagType), center.X, center.Y+p.px(5), size*float64(p.ratio), ColorSeal, alignCenter)
	seal.text(preset.TagText, startX+p.px(sealR*2+gap), center.Y+p.px(5), size*float64(p.ratio), ColorInk, alignLeft)
}

func (r *Renderer) drawQR(p *painter, c Card) error {
	payload := fmt.Sprintf("OASIS-SPECIMEN-%s %s", c.Texts.SpecimenNo, c.Preset.Name)
	qr, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return fmt.Errorf("encoding qr payload: %w", err)
	}
	qr.DisableBorder = true
	qr.ForegroundColor = ColorInk
	qr.BackgroundColor = r.opts.Background

	dst := p.rect(Width-28-44, Height-28-44+4, Width-28, Height-28+4)
	src := qr.Image(dst.Dx())
	xdraw.NearestNeighbor.Scale(p.dst, dst, src, src.Bounds(), xdraw.Src, nil)
	return nil
}

package card

import (
	"image"
	"image/color"
	"image/draw"
	"strings"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

type align int

const (
	alignLeft align = iota
	alignCenter
	alignRight
)

// painter draws in logical card units, scaled by ratio into dst.
type painter struct {
	dst   *image.RGBA
	ratio int
	fonts *Fonts
}

func (p *painter) px(v int) int { return v * p.ratio }

func (p *painter) rect(x0, y0, x1, y1 int) image.Rectangle {
	return image.Rect(p.px(x0), p.px(y0), p.px(x1), p.px(y1))
}

func (p *painter) face(size float64) font.Face {
	return p.fonts.Face(size * float64(p.ratio))
}

func (p *painter) fill(r image.Rectangle, c color.Color) {
	draw.Draw(p.dst, r, &image.Uniform{C: c}, image.Point{}, draw.Src)
}

// frame draws a one-logical-pixel outline just inside r.
func (p *painter) frame(r image.Rectangle, c color.Color) {
	w := p.ratio
	p.fill(image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+w), c)
	p.fill(image.Rect(r.Min.X, r.Max.Y-w, r.Max.X, r.Max.Y), c)
	p.fill(image.Rect(r.Min.X, r.Min.Y, r.Min.X+w, r.Max.Y), c)
	p.fill(image.Rect(r.Max.X-w, r.Min.Y, r.Max.X, r.Max.Y), c)
}

// text draws s with its baseline at logical y. x is the left edge, centre or
// right edge depending on a.
func (p *painter) text(s string, x, y int, size float64, c color.Color, a align) int {
	d := &font.Drawer{Dst: p.dst, Src: image.NewUniform(c), Face: p.face(size)}
	width := d.MeasureString(s).Ceil()
	startX := p.px(x)
	switch a {
	case alignCenter:
		startX -= width / 2
	case alignRight:
		startX -= width
	}
	d.Dot = fixed.P(startX, p.px(y))
	d.DrawString(s)
	return width
}

func (p *painter) measure(s string, size float64) int {
	d := &font.Drawer{Face: p.face(size)}
	return d.MeasureString(s).Ceil()
}

// wrap breaks s into lines no wider than width logical pixels. Han text may
// break between any two runes; latin words are kept whole where possible.
func (p *painter) wrap(s string, size float64, width int) []string {
	limit := p.px(width)
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		var line strings.Builder
		for _, tok := range tokens(para) {
			candidate := line.String() + tok
			if line.Len() > 0 && p.measure(candidate, size) > limit {
				lines = append(lines, strings.TrimRightFunc(line.String(), unicode.IsSpace))
				line.Reset()
				tok = strings.TrimLeftFunc(tok, unicode.IsSpace)
			}
			line.WriteString(tok)
		}
		if line.Len() > 0 {
			lines = append(lines, line.String())
		}
	}
	return lines
}

// tokens splits text into breakable units: single Han runes and punctuation,
// or runs of non-space latin characters with their leading space.
func tokens(s string) []string {
	var out []string
	var word strings.Builder
	flush := func() {
		if word.Len() > 0 {
			out = append(out, word.String())
			word.Reset()
		}
	}
	for _, r := range s {
		switch {
		case r < 0x2E80 && !unicode.IsSpace(r):
			word.WriteRune(r)
		case unicode.IsSpace(r):
			flush()
			word.WriteRune(r)
		default:
			flush()
			out = append(out, string(r))
		}
	}
	flush()
	return out
}

// circleMask is an alpha mask of a filled circle, in absolute coordinates.
type circleMask struct {
	center image.Point
	radius int
}

func (c *circleMask) ColorModel() color.Model { return color.AlphaModel }

func (c *circleMask) Bounds() image.Rectangle {
	return image.Rect(c.center.X-c.radius, c.center.Y-c.radius, c.center.X+c.radius, c.center.Y+c.radius)
}

func (c *circleMask) At(x, y int) color.Color {
	dx := float64(x-c.center.X) + 0.5
	dy := float64(y-c.center.Y) + 0.5
	r := float64(c.radius)
	if dx*dx+dy*dy <= r*r {
		return color.Alpha{A: 0xFF}
	}
	return color.Alpha{}
}

// disc fills a circle.
func (p *painter) disc(center image.Point, radius int, c color.Color) {
	m := &circleMask{center: center, radius: radius}
	draw.DrawMask(p.dst, m.Bounds(), &image.Uniform{C: c}, image.Point{}, m, m.Bounds().Min, draw.Over)
}

// ring draws a circle outline of the given thickness.
func (p *painter) ring(center image.Point, radius, thickness int, c, inner color.Color) {
	p.disc(center, radius, c)
	p.disc(center, radius-thickness, inner)
}

package card

import (
	"fmt"
	"os"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

// systemFontPaths lists common CJK-capable fonts.
var systemFontPaths = []string{
	// macOS
	"/System/Library/Fonts/PingFang.ttc",
	"/System/Library/Fonts/STHeiti Light.ttc",
	"/System/Library/Fonts/Hiragino Sans GB.ttc",
	"/Library/Fonts/Arial Unicode.ttf",
	// Linux
	"/usr/share/fonts/opentype/noto/NotoSerifCJK-Regular.ttc",
	"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/noto-cjk/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/truetype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/truetype/wqy/wqy-microhei.ttc",
	"/usr/share/fonts/truetype/droid/DroidSansFallbackFull.ttf",
	// Windows
	"C:\\Windows\\Fonts\\msyh.ttc",
	"C:\\Windows\\Fonts\\simsun.ttc",
}

// Fonts produces faces at arbitrary sizes from one parsed font.
// With no usable font file it falls back to basicfont, which has no CJK glyphs.
type Fonts struct {
	tt     *truetype.Font
	ot     *opentype.Font
	source string

	mu    sync.Mutex
	faces map[float64]font.Face
}

// LoadFonts parses path, or the first readable system font when path is empty.
func LoadFonts(path string) (*Fonts, error) {
	fonts := &Fonts{faces: make(map[float64]font.Face)}

	if path != "" {
		if err := fonts.parseFile(path); err != nil {
			return fonts, err
		}
		return fonts, nil
	}

	for _, candidate := range systemFontPaths {
		if err := fonts.parseFile(candidate); err == nil {
			return fonts, nil
		}
	}
	return fonts, nil
}

func (f *Fonts) parseFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading font %s: %w", path, err)
	}

	// Single TrueType fonts go through freetype
	if tt, err := truetype.Parse(data); err == nil {
		f.tt = tt
		f.source = path
		return nil
	}

	// Collections and CFF-flavoured OpenType go through x/image
	if coll, err := opentype.ParseCollection(data); err == nil && coll.NumFonts() > 0 {
		if fnt, err := coll.Font(0); err == nil {
			f.ot = fnt
			f.source = path
			return nil
		}
	}
	if fnt, err := opentype.Parse(data); err == nil {
		f.ot = fnt
		f.source = path
		return nil
	}

	return fmt.Errorf("unsupported font format: %s", path)
}

// Source returns the font file in use, or "" for the built-in fallback.
func (f *Fonts) Source() string {
	return f.source
}

// Face returns a face of the given point size at 72 DPI.
func (f *Fonts) Face(size float64) font.Face {
	f.mu.Lock()
	defer f.mu.Unlock()

	if face, ok := f.faces[size]; ok {
		return face
	}

	var face font.Face = basicfont.Face7x13
	switch {
	case f.tt != nil:
		face = truetype.NewFace(f.tt, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
	case f.ot != nil:
		if of, err := opentype.NewFace(f.ot, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull}); err == nil {
			face = of
		}
	}
	f.faces[size] = face
	return face
}

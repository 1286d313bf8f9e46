// Package pinyin romanizes specimen names for display under the Chinese title.
package pinyin

import (
	"strings"
	"unicode"

	gopinyin "github.com/mozillazg/go-pinyin"
)

// Parser converts Han characters to tone-marked pinyin.
type Parser struct {
	args gopinyin.Args
}

// NewParser creates a new pinyin parser.
func NewParser() *Parser {
	args := gopinyin.NewArgs()
	args.Style = gopinyin.Tone // Returns tone marks: zhōng
	args.Heteronym = false     // Card text only needs the common reading
	// Keep non-Han runes (latin, digits, emoji) as their own "syllable"
	args.Fallback = func(r rune, a gopinyin.Args) []string {
		return []string{string(r)}
	}
	return &Parser{args: args}
}

// Syllables returns one reading per rune of text, skipping whitespace.
func (p *Parser) Syllables(text string) []string {
	var out []string
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		result := gopinyin.Pinyin(string(r), p.args)
		if len(result) == 0 || len(result[0]) == 0 {
			out = append(out, string(r))
			continue
		}
		out = append(out, result[0][0])
	}
	return out
}

// Romanize returns the space-separated pinyin of text, e.g. "fǎn juǎn lú huì".
func (p *Parser) Romanize(text string) string {
	return strings.Join(p.Syllables(text), " ")
}

// RomanizeUpper is Romanize in upper case, as printed on the card.
func (p *Parser) RomanizeUpper(text string) string {
	return strings.ToUpper(p.Romanize(text))
}

package pinyin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRomanize(t *testing.T) {
	p := NewParser()

	tests := []struct {
		input string
		want  string
	}{
		{"苔藓", "tái xiǎn"},
		{"芦荟", "lú huì"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, p.Romanize(tt.input), tt.input)
	}
}

func TestSyllables_KeepsNonHan(t *testing.T) {
	p := NewParser()
	assert.Equal(t, []string{"A", "shān"}, p.Syllables("A 山"))
}

func TestRomanizeUpper(t *testing.T) {
	p := NewParser()
	assert.Equal(t, "LÚ HUÌ", p.RomanizeUpper("芦荟"))
}

package clipboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withTools(t *testing.T, installed ...string) {
	t.Helper()
	orig := lookPath
	t.Cleanup(func() { lookPath = orig })

	set := make(map[string]bool)
	for _, name := range installed {
		set[name] = true
	}
	lookPath = func(file string) (string, error) {
		if set[file] {
			return "/usr/bin/" + file, nil
		}
		return "", errors.New("not found")
	}
}

func TestFind_PrefersFirstInstalled(t *testing.T) {
	withTools(t, "xsel", "xclip")

	got, ok := find("linux")
	assert.True(t, ok)
	assert.Equal(t, "xclip", got.name)
	assert.Equal(t, []string{"-selection", "clipboard"}, got.args)
}

func TestFind_None(t *testing.T) {
	withTools(t)

	_, ok := find("linux")
	assert.False(t, ok)
	_, ok = find("darwin")
	assert.False(t, ok)
}

func TestCandidates(t *testing.T) {
	assert.Equal(t, "pbcopy", candidates("darwin")[0].name)
	assert.Equal(t, "clip", candidates("windows")[0].name)
	assert.Len(t, candidates("freebsd"), 3)
}

func TestAvailable(t *testing.T) {
	withTools(t, "pbcopy", "clip", "xclip")
	assert.True(t, Available())

	withTools(t)
	assert.False(t, Available())
}

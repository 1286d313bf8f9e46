// Package clipboard copies card text to the system clipboard.
package clipboard

import (
	"errors"
	"os/exec"
	"runtime"
	"strings"
)

// ErrUnavailable is returned when no clipboard tool is installed.
var ErrUnavailable = errors.New("no clipboard tool found")

// tool is one clipboard command line.
type tool struct {
	name string
	args []string
}

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// candidates lists clipboard tools in order of preference for goos.
func candidates(goos string) []tool {
	switch goos {
	case "darwin":
		return []tool{{name: "pbcopy"}}
	case "windows":
		return []tool{{name: "clip"}}
	default:
		return []tool{
			{name: "wl-copy"},
			{name: "xclip", args: []string{"-selection", "clipboard"}},
			{name: "xsel", args: []string{"--clipboard", "--input"}},
		}
	}
}

func find(goos string) (tool, bool) {
	for _, t := range candidates(goos) {
		if _, err := lookPath(t.name); err == nil {
			return t, true
		}
	}
	return tool{}, false
}

// Write copies text to the system clipboard.
func Write(text string) error {
	t, ok := find(runtime.GOOS)
	if !ok {
		return ErrUnavailable
	}
	cmd := exec.Command(t.name, t.args...)
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

// Available checks if clipboard functionality is available.
func Available() bool {
	_, ok := find(runtime.GOOS)
	return ok
}

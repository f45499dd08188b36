package share

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"
)

var fallbackCommands = [][]string{
	{"xclip", "-selection", "clipboard"},
	{"xsel", "--clipboard", "--input"},
	{"wl-copy"},
	{"pbcopy"},
}

// CopyToClipboard writes text to the system clipboard. If the native
// clipboard is unavailable it pipes the text into whichever external copy
// tool is installed. When every path fails the error is returned to the
// caller so the UI can show a notice instead of pretending it worked.
func CopyToClipboard(text string) error {
	if err := clipboard.WriteAll(text); err == nil {
		return nil
	}

	for _, args := range fallbackCommands {
		if _, err := exec.LookPath(args[0]); err != nil {
			continue
		}
		cmd := exec.Command(args[0], args[1:]...)
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err == nil {
			return nil
		}
	}

	return fmt.Errorf("copy to clipboard: no clipboard mechanism available")
}

package output

import (
	"io"
	"os"
)

// ResolveColorMode folds the --color flag into the detected TTY state.
// "never" and "always" force the answer; anything else, including the
// default "auto", defers to detection.
func ResolveColorMode(colorMode string, isTTY bool) bool {
	switch colorMode {
	case "never":
		return false
	case "always":
		return true
	default:
		return isTTY
	}
}

// IsTTY reports whether the writer is an interactive terminal. Buffers
// and pipes are not, so tests and shell pipelines get plain output.
func IsTTY(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	stat, err := file.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// Package envfile reads dotenv-style files into the process environment.
// A variable that is already set in the real environment always wins, so
// exported shell values override anything a file says.
package envfile

import (
	"fmt"
	"os"
	"strings"
)

// Load applies the variables from path to the environment. A missing file
// is not an error; the caller probes several well-known locations and most
// of them will not exist.
func Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading env file %s: %w", path, err)
	}

	for _, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := parseEnvLine(line)
		if !ok {
			continue
		}
		if os.Getenv(key) == "" {
			_ = os.Setenv(key, value)
		}
	}
	return nil
}

// parseEnvLine splits one KEY=VALUE assignment. Lines may carry a leading
// "export " (people paste from shell scripts) and values may be wrapped in
// single or double quotes; everything after the first '=' belongs to the
// value, so later '=' characters survive.
func parseEnvLine(line string) (key, value string, ok bool) {
	eq := strings.Index(line, "=")
	if eq < 0 {
		return "", "", false
	}

	key = strings.TrimSpace(line[:eq])
	key = strings.TrimSpace(strings.TrimPrefix(key, "export "))
	if key == "" {
		return "", "", false
	}

	value = strings.TrimSpace(line[eq+1:])
	value = unquote(value)

	return key, value, true
}

func unquote(s string) string {
	if len(s) < 2 {
		return s
	}
	first, last := s[0], s[len(s)-1]
	if first == last && (first == '"' || first == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}

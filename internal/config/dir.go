// Package config locates devlog's per-user configuration directory,
// which holds global rule overrides and an optional env file.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dir resolves the configuration directory. DEVLOG_CONFIG_HOME wins
// outright, then XDG_CONFIG_HOME/devlog, then the platform default
// (%AppData%\devlog on Windows, ~/.config/devlog elsewhere). Returns ""
// when no home directory can be determined.
func Dir() string {
	if dir := os.Getenv("DEVLOG_CONFIG_HOME"); dir != "" {
		return dir
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "devlog")
	}
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "devlog")
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "devlog")
}

// Package paths resolves where pharmadesk keeps its configuration, its
// database and its optional .env file.
package paths

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
)

// appName is the directory name used under the platform base directories.
const appName = "pharmadesk"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "PHARMADESK_CONFIG_DIR"
	EnvDataDir   = "PHARMADESK_DATA_DIR"
)

// Files looked up inside the configuration directory.
const (
	ConfigFileName = "config.yaml"
	EnvFileName    = ".env"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	goos          string
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
	getwd         func() (string, error)
}{
	goos:          runtime.GOOS,
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
	getwd:         os.Getwd,
}

// baseDir returns <xdgVar>/pharmadesk on Linux, falling back to
// ~/<linuxFallback...>/pharmadesk. Other platforms use os.UserConfigDir.
func baseDir(xdgVar string, linuxFallback ...string) (string, error) {
	if platformDir.goos != "linux" {
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appName), nil
	}
	if xdg := os.Getenv(xdgVar); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	parts := append([]string{home}, linuxFallback...)
	return filepath.Join(append(parts, appName)...), nil
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/pharmadesk (fallback ~/.config/pharmadesk)
// macOS:   ~/Library/Application Support/pharmadesk
// Windows: %APPDATA%/pharmadesk
func DefaultConfigDir() (string, error) {
	return baseDir("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns the platform-specific default data directory.
//
// Linux:   $XDG_DATA_HOME/pharmadesk (fallback ~/.local/share/pharmadesk)
// macOS and Windows: same as the config directory.
func DefaultDataDir() (string, error) {
	return baseDir("XDG_DATA_HOME", ".local", "share")
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > PHARMADESK_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	return resolve(DefaultConfigDir, flag, os.Getenv(EnvConfigDir))
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > configured value > PHARMADESK_DATA_DIR env > DefaultDataDir().
// The configured value is what the config file (or viper's env binding)
// supplied.
func ResolveDataDir(flag, configured string) (string, error) {
	return resolve(DefaultDataDir, flag, configured, os.Getenv(EnvDataDir))
}

// resolve returns the first non-empty candidate as an absolute path, or the
// fallback when every candidate is empty.
func resolve(fallback func() (string, error), candidates ...string) (string, error) {
	for _, c := range candidates {
		if c != "" {
			return filepath.Abs(c)
		}
	}
	return fallback()
}

// ResolveEnvFile returns the .env file to load: ./.env when present,
// otherwise <configDir>/.env when present. It returns "" when neither exists.
func ResolveEnvFile(configDir string) (string, error) {
	cwd, err := platformDir.getwd()
	if err != nil {
		return "", err
	}
	for _, dir := range []string{cwd, configDir} {
		if dir == "" {
			continue
		}
		path := filepath.Join(dir, EnvFileName)
		_, err := os.Stat(path)
		if err == nil {
			return path, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
	}
	return "", nil
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog/log"
	"gopkg.in/ini.v1"
)

const appName = "pythemes"

// DefaultSignal is sent to restart targets unless the theme overrides it.
const DefaultSignal = "SIGUSR1"

// ThemesDir returns the directory holding theme INI files:
// $XDG_CONFIG_HOME/pythemes, falling back to ~/.config/pythemes.
func ThemesDir() (string, error) {
	root := os.Getenv("XDG_CONFIG_HOME")
	if root == "" {
		home, err := homedir.Dir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		root = filepath.Join(home, ".config")
	}
	return filepath.Join(root, appName), nil
}

// EnsureThemesDir resolves the themes directory and creates it if missing.
func EnsureThemesDir() (string, error) {
	dir, err := ThemesDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create themes directory %s: %w", dir, err)
	}
	return dir, nil
}

// ThemeFiles lists the theme INI files in dir, sorted by name.
func ThemeFiles(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.ini"))
	if err != nil {
		return nil, fmt.Errorf("failed to list themes in %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}

// FindTheme returns the path of the named theme, or "" when it does not exist.
func FindTheme(dir, name string) (string, error) {
	files, err := ThemeFiles(dir)
	if err != nil {
		return "", err
	}
	for _, f := range files {
		if themeName(f) == name {
			return f, nil
		}
	}
	return "", nil
}

// themeName derives the theme name from its file path.
func themeName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// LoadTheme reads and parses a theme INI file.
//
// Sections are mapped by shape: [wallpaper] and [restart] are reserved,
// any section with a file or query key becomes an app target, and a
// section with only mode values and a command becomes a mode action.
func LoadTheme(path string) (*Theme, error) {
	// Inline comment parsing stays off so '#' survives inside queries.
	file, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file %s: %w", path, err)
	}

	theme := &Theme{
		Name: themeName(path),
		Path: path,
	}

	for _, section := range file.Sections() {
		name := section.Name()
		switch name {
		case ini.DefaultSection:
			continue
		case "wallpaper":
			theme.Wallpaper = parseWallpaper(section)
		case "restart":
			theme.Restart = parseRestart(section)
		default:
			parseProgram(theme, section)
		}
	}

	if len(theme.Apps) == 0 && len(theme.Actions) == 0 &&
		theme.Wallpaper == nil && theme.Restart == nil {
		return nil, fmt.Errorf("no sections found in %s", filepath.Base(path))
	}

	log.Debug().
		Str("theme", theme.Name).
		Int("apps", len(theme.Apps)).
		Int("actions", len(theme.Actions)).
		Msg("theme loaded")

	return theme, nil
}

func parseWallpaper(section *ini.Section) *Wallpaper {
	return &Wallpaper{
		Light:  expandPath(section.Key("light").String()),
		Dark:   expandPath(section.Key("dark").String()),
		Random: expandPath(section.Key("random").String()),
		Cmd:    section.Key("cmd").String(),
	}
}

func parseRestart(section *ini.Section) *Restart {
	sig := section.Key("signal").String()
	if sig == "" {
		sig = DefaultSignal
	}
	return &Restart{
		Procs:  strings.Fields(section.Key("cmd").String()),
		Signal: sig,
	}
}

func parseProgram(theme *Theme, section *ini.Section) {
	name := section.Name()
	file := section.Key("file").String()
	query := section.Key("query").String()
	light := section.Key("light").String()
	dark := section.Key("dark").String()
	cmd := section.Key("cmd").String()

	if file == "" && query == "" {
		if cmd == "" {
			log.Debug().Str("section", name).Msg("section has no file, query or cmd, ignored")
			return
		}
		theme.Actions = append(theme.Actions, &ModeAction{
			Name:  name,
			Light: light,
			Dark:  dark,
			Cmd:   cmd,
		})
		return
	}

	theme.Apps = append(theme.Apps, &App{
		Name:  name,
		File:  expandPath(file),
		Query: query,
		Light: light,
		Dark:  dark,
		Cmd:   cmd,
	})
}

// expandPath resolves a leading ~ to the user's home directory.
func expandPath(path string) string {
	if path == "" {
		return ""
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed to expand path")
		return path
	}
	return expanded
}

package wallpaper

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mateconpizza/pythemes/internal/config"
)

// PathPlaceholder is the token inside the wallpaper cmd that is replaced
// with the resolved path. Without it the path is appended as the final
// argument.
const PathPlaceholder = "{wallpaper}"

// PathNotFoundError indicates a missing random wallpaper directory.
type PathNotFoundError struct {
	Path string
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("random wallpaper path %s not found.", e.Path)
}

// NotADirectoryError indicates the random wallpaper path is a file.
type NotADirectoryError struct {
	Path string
}

func (e *NotADirectoryError) Error() string {
	return fmt.Sprintf("random wallpaper path %s is not a directory.", e.Path)
}

// EmptyDirectoryError indicates the random wallpaper directory holds no
// eligible files.
type EmptyDirectoryError struct {
	Path string
}

func (e *EmptyDirectoryError) Error() string {
	return fmt.Sprintf("no files found in random wallpaper path %s.", e.Path)
}

// UnsetModeError indicates no fixed wallpaper is configured for the
// requested mode.
type UnsetModeError struct {
	Mode config.Mode
}

func (e *UnsetModeError) Error() string {
	return fmt.Sprintf("no '%s' wallpaper specified.", e.Mode)
}

// Resolve picks the wallpaper path for the given mode. A configured
// random directory takes precedence over the fixed per-mode paths.
func Resolve(w *config.Wallpaper, mode config.Mode) (string, error) {
	if w.Random != "" {
		return pickRandom(w.Random)
	}

	path := w.Value(mode)
	if path == "" {
		return "", &UnsetModeError{Mode: mode}
	}

	log.Debug().Str("wallpaper", path).Str("mode", string(mode)).Msg("resolved fixed wallpaper")

	return path, nil
}

// Command builds the command line that applies the resolved path. The
// {wallpaper} token in cmd is substituted when present, otherwise the
// path is appended as the final argument.
func Command(cmd, path string) string {
	if strings.Contains(cmd, PathPlaceholder) {
		return strings.ReplaceAll(cmd, PathPlaceholder, path)
	}
	return cmd + " " + path
}

// pickRandom selects one regular, non-hidden file from dir uniformly at
// random.
func pickRandom(dir string) (string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return "", &PathNotFoundError{Path: dir}
	}
	if !info.IsDir() {
		return "", &NotADirectoryError{Path: dir}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read random wallpaper path %s: %w", dir, err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}

	if len(files) == 0 {
		return "", &EmptyDirectoryError{Path: dir}
	}

	picked := files[rand.IntN(len(files))]

	log.Debug().
		Str("wallpaper", picked).
		Int("candidates", len(files)).
		Msg("picked random wallpaper")

	return picked, nil
}

package config

import "fmt"

// Placeholder is the token inside a query that stands for the theme value.
const Placeholder = "{theme}"

type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

// ParseMode validates a mode selector from the command line.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "light":
		return ModeLight, nil
	case "dark":
		return ModeDark, nil
	case "":
		return "", fmt.Errorf("no mode specified (dark|light)")
	default:
		return "", fmt.Errorf("invalid mode '%s' (dark|light)", s)
	}
}

// Theme is the parsed definition for one invocation. It is built once by
// the loader and never mutated afterwards.
type Theme struct {
	Name      string
	Path      string
	Apps      []*App
	Actions   []*ModeAction
	Wallpaper *Wallpaper
	Restart   *Restart
}

// App returns the app target with the given name, or nil.
func (t *Theme) App(name string) *App {
	for _, app := range t.Apps {
		if app.Name == name {
			return app
		}
	}
	return nil
}

// App is one file+query+values target.
type App struct {
	Name  string
	File  string
	Query string
	Light string
	Dark  string
	Cmd   string
}

// Value returns the replacement value for the given mode.
func (a *App) Value(mode Mode) string {
	if mode == ModeLight {
		return a.Light
	}
	return a.Dark
}

// ModeAction is a command-only section: its command is invoked with the
// mode value appended, without touching any file.
type ModeAction struct {
	Name  string
	Light string
	Dark  string
	Cmd   string
}

// Value returns the argument passed to the command for the given mode.
func (a *ModeAction) Value(mode Mode) string {
	if mode == ModeLight {
		return a.Light
	}
	return a.Dark
}

// Wallpaper holds the wallpaper selection settings. Random takes
// precedence over the fixed per-mode paths when set.
type Wallpaper struct {
	Light  string
	Dark   string
	Random string
	Cmd    string
}

// Value returns the fixed wallpaper path for the given mode.
func (w *Wallpaper) Value(mode Mode) string {
	if mode == ModeLight {
		return w.Light
	}
	return w.Dark
}

// Restart names the processes to signal after a run.
type Restart struct {
	Procs  []string
	Signal string
}

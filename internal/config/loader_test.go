package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadTheme(t *testing.T) {
	tests := []struct {
		name        string
		iniContent  string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *Theme)
	}{
		{
			name: "full theme with wallpaper, restart, apps and action",
			iniContent: `[wallpaper]
light = /walls/day.png
dark = /walls/night.png
random = /walls/pool
cmd = feh --bg-fill

[restart]
cmd = dwm st

[bat]
file = /tmp/bat.conf
query = export BAT_THEME="{theme}"
light = gruvbox-light
dark = gruvbox-dark
cmd = bat cache --build

[fzf]
file = /tmp/fzf.conf
query = fzf_theme={theme}
light = light
dark = dark

[gtk]
light = Adwaita
dark = Adwaita-dark
cmd = gsettings set org.gnome.desktop.interface gtk-theme
`,
			validate: func(t *testing.T, theme *Theme) {
				if len(theme.Apps) != 2 {
					t.Fatalf("expected 2 apps, got %d", len(theme.Apps))
				}
				if theme.Apps[0].Name != "bat" || theme.Apps[1].Name != "fzf" {
					t.Errorf("apps out of order: %s, %s", theme.Apps[0].Name, theme.Apps[1].Name)
				}
				bat := theme.Apps[0]
				if bat.File != "/tmp/bat.conf" {
					t.Errorf("expected file '/tmp/bat.conf', got '%s'", bat.File)
				}
				if bat.Query != `export BAT_THEME="{theme}"` {
					t.Errorf("unexpected query: %s", bat.Query)
				}
				if bat.Light != "gruvbox-light" || bat.Dark != "gruvbox-dark" {
					t.Errorf("unexpected mode values: %s, %s", bat.Light, bat.Dark)
				}
				if bat.Cmd != "bat cache --build" {
					t.Errorf("unexpected cmd: %s", bat.Cmd)
				}
				if theme.Wallpaper == nil {
					t.Fatal("expected wallpaper section")
				}
				if theme.Wallpaper.Random != "/walls/pool" {
					t.Errorf("unexpected random dir: %s", theme.Wallpaper.Random)
				}
				if theme.Restart == nil {
					t.Fatal("expected restart section")
				}
				if len(theme.Restart.Procs) != 2 || theme.Restart.Procs[0] != "dwm" || theme.Restart.Procs[1] != "st" {
					t.Errorf("unexpected restart procs: %v", theme.Restart.Procs)
				}
				if theme.Restart.Signal != "SIGUSR1" {
					t.Errorf("expected default signal SIGUSR1, got '%s'", theme.Restart.Signal)
				}
				if len(theme.Actions) != 1 {
					t.Fatalf("expected 1 mode action, got %d", len(theme.Actions))
				}
				gtk := theme.Actions[0]
				if gtk.Name != "gtk" || gtk.Light != "Adwaita" || gtk.Dark != "Adwaita-dark" {
					t.Errorf("unexpected mode action: %+v", gtk)
				}
			},
		},
		{
			name: "restart with custom signal",
			iniContent: `[restart]
cmd = waybar
signal = SIGHUP
`,
			validate: func(t *testing.T, theme *Theme) {
				if theme.Restart.Signal != "SIGHUP" {
					t.Errorf("expected SIGHUP, got '%s'", theme.Restart.Signal)
				}
			},
		},
		{
			name: "query keeps hash characters",
			iniContent: `[fzf]
file = /tmp/fzf.conf
query = --color=bg:{theme}
light = #fbf1c7
dark = #282828
`,
			validate: func(t *testing.T, theme *Theme) {
				if theme.Apps[0].Light != "#fbf1c7" {
					t.Errorf("inline comment stripped the value: %s", theme.Apps[0].Light)
				}
			},
		},
		{
			name: "section without file, query or cmd is ignored",
			iniContent: `[bat]
file = /tmp/bat.conf
query = theme={theme}
light = l
dark = d

[stray]
light = a
dark = b
`,
			validate: func(t *testing.T, theme *Theme) {
				if len(theme.Apps) != 1 {
					t.Errorf("expected 1 app, got %d", len(theme.Apps))
				}
				if len(theme.Actions) != 0 {
					t.Errorf("expected no actions, got %d", len(theme.Actions))
				}
			},
		},
		{
			name: "app with query but no file is kept for validation",
			iniContent: `[broken]
query = theme={theme}
light = l
dark = d
`,
			validate: func(t *testing.T, theme *Theme) {
				if len(theme.Apps) != 1 {
					t.Fatalf("expected 1 app, got %d", len(theme.Apps))
				}
				if theme.Apps[0].File != "" {
					t.Errorf("expected empty file, got '%s'", theme.Apps[0].File)
				}
			},
		},
		{
			name:        "empty theme file",
			iniContent:  "",
			wantErr:     true,
			errContains: "no sections found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			path := filepath.Join(tmpDir, "gruvbox.ini")
			if err := os.WriteFile(path, []byte(tt.iniContent), 0644); err != nil {
				t.Fatalf("failed to write theme file: %v", err)
			}

			theme, err := LoadTheme(path)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				} else if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("expected error containing '%s', got '%s'", tt.errContains, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if theme.Name != "gruvbox" {
				t.Errorf("expected theme name 'gruvbox', got '%s'", theme.Name)
			}
			if tt.validate != nil {
				tt.validate(t, theme)
			}
		})
	}
}

func TestLoadThemeMissingFile(t *testing.T) {
	_, err := LoadTheme("/nonexistent/theme.ini")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "failed to read theme file") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestThemeFiles(t *testing.T) {
	tmpDir := t.TempDir()
	for _, name := range []string{"zenburn.ini", "gruvbox.ini", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(tmpDir, name), []byte("[restart]\ncmd = dwm\n"), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
	}

	files, err := ThemeFiles(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 theme files, got %d", len(files))
	}
	if filepath.Base(files[0]) != "gruvbox.ini" || filepath.Base(files[1]) != "zenburn.ini" {
		t.Errorf("expected sorted theme files, got %v", files)
	}
}

func TestFindTheme(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "gruvbox.ini"), []byte("[restart]\ncmd = dwm\n"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	path, err := FindTheme(tmpDir, "gruvbox")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Base(path) != "gruvbox.ini" {
		t.Errorf("expected gruvbox.ini, got '%s'", path)
	}

	path, err = FindTheme(tmpDir, "nord")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "" {
		t.Errorf("expected empty path for missing theme, got '%s'", path)
	}
}

func TestThemesDirUsesXDGConfigHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	dir, err := ThemesDir()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dir != filepath.Join("/tmp/xdg", "pythemes") {
		t.Errorf("unexpected themes dir: %s", dir)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		want        Mode
		wantErr     bool
		errContains string
	}{
		{name: "light", input: "light", want: ModeLight},
		{name: "dark", input: "dark", want: ModeDark},
		{name: "empty", input: "", wantErr: true, errContains: "no mode specified"},
		{name: "unknown", input: "sepia", wantErr: true, errContains: "invalid mode 'sepia'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, err := ParseMode(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				} else if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("expected error containing '%s', got '%s'", tt.errContains, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if mode != tt.want {
				t.Errorf("expected mode '%s', got '%s'", tt.want, mode)
			}
		})
	}
}

func TestAppValue(t *testing.T) {
	app := &App{Light: "gruvbox-light", Dark: "gruvbox-dark"}
	if app.Value(ModeLight) != "gruvbox-light" {
		t.Errorf("unexpected light value: %s", app.Value(ModeLight))
	}
	if app.Value(ModeDark) != "gruvbox-dark" {
		t.Errorf("unexpected dark value: %s", app.Value(ModeDark))
	}
}

func TestThemeAppLookup(t *testing.T) {
	theme := &Theme{Apps: []*App{{Name: "bat"}, {Name: "fzf"}}}
	if app := theme.App("fzf"); app == nil || app.Name != "fzf" {
		t.Errorf("expected fzf app, got %+v", app)
	}
	if app := theme.App("missing"); app != nil {
		t.Errorf("expected nil for unknown app, got %+v", app)
	}
}

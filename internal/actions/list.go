package actions

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/mateconpizza/pythemes/internal/config"
)

// ThemeSummary is one row of the theme listing.
type ThemeSummary struct {
	Name      string `json:"name" yaml:"name"`
	Path      string `json:"path" yaml:"path"`
	Apps      int    `json:"apps" yaml:"apps"`
	Actions   int    `json:"actions" yaml:"actions"`
	Wallpaper bool   `json:"wallpaper" yaml:"wallpaper"`
	Restart   bool   `json:"restart" yaml:"restart"`
}

// AppSummary is one row of the per-theme app listing.
type AppSummary struct {
	Name   string   `json:"name" yaml:"name"`
	Kind   string   `json:"kind" yaml:"kind"`
	File   string   `json:"file,omitempty" yaml:"file,omitempty"`
	Query  string   `json:"query,omitempty" yaml:"query,omitempty"`
	Light  string   `json:"light" yaml:"light"`
	Dark   string   `json:"dark" yaml:"dark"`
	Cmd    string   `json:"cmd,omitempty" yaml:"cmd,omitempty"`
	Issues []string `json:"issues,omitempty" yaml:"issues,omitempty"`
}

type ListOptions struct {
	Dir          string
	OutputFormat string
}

// ListThemes prints every theme found in the themes directory.
func ListThemes(options *ListOptions) error {
	summaries, err := themeSummaries(options.Dir)
	if err != nil {
		return err
	}

	if len(summaries) == 0 {
		fmt.Printf("%s no themes found\n", grayColors.Sprint(">"))
		return nil
	}

	return outputThemeList(summaries, options.OutputFormat)
}

// themeSummaries loads every theme in dir. Unreadable files are skipped
// with a warning so one broken theme does not hide the rest.
func themeSummaries(dir string) ([]*ThemeSummary, error) {
	files, err := config.ThemeFiles(dir)
	if err != nil {
		return nil, err
	}

	summaries := make([]*ThemeSummary, 0, len(files))
	for _, file := range files {
		theme, err := config.LoadTheme(file)
		if err != nil {
			log.Warn().Err(err).Str("file", file).Msg("skipping unreadable theme")
			continue
		}
		summaries = append(summaries, &ThemeSummary{
			Name:      theme.Name,
			Path:      file,
			Apps:      len(theme.Apps),
			Actions:   len(theme.Actions),
			Wallpaper: theme.Wallpaper != nil,
			Restart:   theme.Restart != nil,
		})
	}
	return summaries, nil
}

func outputThemeList(summaries []*ThemeSummary, format string) error {
	switch format {
	case "table", "":
		return outputThemeTable(summaries)
	case "json":
		return outputJSON(summaries)
	case "yaml":
		return outputYAML(summaries)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func outputThemeTable(summaries []*ThemeSummary) error {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("Themes")
	t.AppendHeader(table.Row{"Name", "Apps", "Actions", "Wallpaper", "Restart", "Path"})

	for _, s := range summaries {
		t.AppendRow(table.Row{s.Name, s.Apps, s.Actions, checkmark(s.Wallpaper), checkmark(s.Restart), s.Path})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()
	return nil
}

type ListAppsOptions struct {
	OutputFormat string
}

// ListApps prints the targets configured in a theme, along with any
// validation issues found in their definitions.
func ListApps(theme *config.Theme, options *ListAppsOptions) error {
	fmt.Printf("%s\n\n", themeHeader(theme.Name, len(theme.Apps)))

	summaries := appSummaries(theme)
	if len(summaries) == 0 {
		fmt.Printf("%s no apps configured\n", grayColors.Sprint(">"))
		return nil
	}

	return outputAppList(summaries, options.OutputFormat)
}

func appSummaries(theme *config.Theme) []*AppSummary {
	summaries := make([]*AppSummary, 0, len(theme.Apps)+len(theme.Actions))
	for _, app := range theme.Apps {
		summary := &AppSummary{
			Name:  app.Name,
			Kind:  "app",
			File:  app.File,
			Query: app.Query,
			Light: app.Light,
			Dark:  app.Dark,
			Cmd:   app.Cmd,
		}
		for _, issue := range config.ValidateApp(app).Errors {
			summary.Issues = append(summary.Issues, issue.Message)
		}
		summaries = append(summaries, summary)
	}
	for _, action := range theme.Actions {
		summaries = append(summaries, &AppSummary{
			Name:  action.Name,
			Kind:  "action",
			Light: action.Light,
			Dark:  action.Dark,
			Cmd:   action.Cmd,
		})
	}
	return summaries
}

func outputAppList(summaries []*AppSummary, format string) error {
	switch format {
	case "table", "":
		return outputAppTable(summaries)
	case "json":
		return outputJSON(summaries)
	case "yaml":
		return outputYAML(summaries)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func outputAppTable(summaries []*AppSummary) error {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("Apps")
	t.AppendHeader(table.Row{"Name", "Kind", "File", "Light", "Dark", "Cmd", "Issues"})

	for _, s := range summaries {
		t.AppendRow(table.Row{s.Name, s.Kind, s.File, s.Light, s.Dark, s.Cmd, strings.Join(s.Issues, "; ")})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()
	return nil
}

// ReportMissingTheme prints the not-found error followed by the themes
// that are available.
func ReportMissingTheme(name, dir string) error {
	fmt.Printf("%s theme '%s' not found.\n\n", tagErr(), name)
	return printThemeLines(dir)
}

// printThemeLines prints the aligned "[theme] name (N apps)" listing.
func printThemeLines(dir string) error {
	summaries, err := themeSummaries(dir)
	if err != nil {
		return err
	}

	if len(summaries) == 0 {
		fmt.Printf("%s no themes found\n", grayColors.Sprint(">"))
		return nil
	}

	width := 0
	for _, s := range summaries {
		if len(s.Name) > width {
			width = len(s.Name)
		}
	}

	fmt.Println("Themes found:")
	for _, s := range summaries {
		fmt.Println(themeLine(s.Name, width, s.Apps))
	}
	return nil
}

func checkmark(set bool) string {
	if set {
		return "✓"
	}
	return ""
}

func outputJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func outputYAML(v interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)
	encoder.SetIndent(2)
	return encoder.Encode(v)
}

package actions

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/text"
)

// Status is the outcome word printed after a tag on every report line.
type Status string

const (
	StatusNoChanges  Status = "no changes"
	StatusDryRun     Status = "dry run"
	StatusApplied    Status = "applied"
	StatusHasErr     Status = "has err"
	StatusErr        Status = "err"
	StatusExecuted   Status = "executed"
	StatusRestarted  Status = "restarted"
	StatusSet        Status = "set"
	StatusNotFound   Status = "not found"
	StatusHasChanges Status = "has changes"
)

var statusColors = map[Status]text.Colors{
	StatusNoChanges:  {text.Italic, text.FgYellow},
	StatusDryRun:     {text.Italic, text.FgCyan},
	StatusApplied:    {text.Italic, text.FgBlue},
	StatusHasErr:     {text.Italic, text.FgRed},
	StatusErr:        {text.Italic, text.FgRed},
	StatusExecuted:   {text.Italic, text.FgGreen},
	StatusRestarted:  {text.Italic, text.FgCyan},
	StatusSet:        {text.Italic, text.FgBlue},
	StatusNotFound:   {text.Italic, text.FgYellow},
	StatusHasChanges: {text.Italic, text.FgCyan},
}

func (s Status) String() string {
	if colors, ok := statusColors[s]; ok {
		return colors.Sprint(string(s))
	}
	return string(s)
}

var (
	grayColors     = text.Colors{text.FgHiBlack}
	blueBoldColors = text.Colors{text.Bold, text.FgBlue}
	redBoldColors  = text.Colors{text.Bold, text.FgRed}
	titleColors    = text.Colors{text.Underline, text.Bold, text.FgBlue}
	countColors    = text.Colors{text.Italic, text.FgHiBlack}
)

// SetColorMode applies the --color flag. NO_COLOR always wins.
func SetColorMode(mode string) error {
	switch mode {
	case "always", "":
		if os.Getenv("NO_COLOR") != "" {
			text.DisableColors()
		}
	case "never":
		text.DisableColors()
	default:
		return fmt.Errorf("unsupported color mode: %s", mode)
	}
	return nil
}

// tagApp renders the [app] tag, red when the target errored.
func tagApp(hasErr bool) string {
	if hasErr {
		return text.Colors{text.Bold, text.FgRed}.Sprint("[app]")
	}
	return text.Colors{text.Bold, text.FgYellow}.Sprint("[app]")
}

// tagWal renders the [wal] tag, red when wallpaper handling errored.
func tagWal(hasErr bool) string {
	if hasErr {
		return text.Colors{text.Bold, text.FgRed}.Sprint("[wal]")
	}
	return text.Colors{text.Bold, text.FgGreen}.Sprint("[wal]")
}

func tagCmd() string {
	return text.Colors{text.Bold, text.FgMagenta}.Sprint("[cmd]")
}

func tagSys() string {
	return text.Colors{text.Bold, text.FgBlue}.Sprint("[sys]")
}

func tagTheme() string {
	return text.Colors{text.Bold, text.FgBlue}.Sprint("[theme]")
}

func tagErr() string {
	return text.Colors{text.Bold, text.FgRed}.Sprint("[err]")
}

// themeHeader renders the "> <name> theme (N apps)" banner.
func themeHeader(name string, apps int) string {
	return fmt.Sprintf("%s %s theme %s",
		grayColors.Sprint(">"),
		titleColors.Sprint(name),
		text.Colors{text.FgRed}.Sprintf("(%d apps)", apps),
	)
}

// themeLine renders one "[theme] <name> (N apps)" listing row. The name
// is left-padded to width so counts line up.
func themeLine(name string, width, apps int) string {
	return fmt.Sprintf("%s %-*s %s",
		tagTheme(),
		width, name,
		countColors.Sprintf("(%d apps)", apps),
	)
}

package actions

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"

	"github.com/mateconpizza/pythemes/internal/config"
)

// validateSweep checks every target file up front, reporting progress as
// it goes. Results are keyed by app name.
func validateSweep(out io.Writer, apps []*config.App) map[string]*config.ValidationResult {
	if len(apps) == 0 {
		return map[string]*config.ValidationResult{}
	}

	bar := progressbar.NewOptions(len(apps),
		progressbar.OptionSetDescription("Validating app targets:"),
		progressbar.OptionSetItsString("app"),
		progressbar.OptionShowIts(),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetWriter(out),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)

	results := make(map[string]*config.ValidationResult, len(apps))
	for _, app := range apps {
		results[app.Name] = config.ValidateApp(app)
		bar.Add(1)
	}

	bar.Finish()
	fmt.Fprintf(out, "\n")

	return results
}

// validateQuiet runs the same checks without the progress bar. Diff mode
// uses it to keep stdout clean for piping.
func validateQuiet(apps []*config.App) map[string]*config.ValidationResult {
	results := make(map[string]*config.ValidationResult, len(apps))
	for _, app := range apps {
		results[app.Name] = config.ValidateApp(app)
	}
	return results
}

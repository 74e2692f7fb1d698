package actions

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/mateconpizza/pythemes/internal/config"
	"github.com/mateconpizza/pythemes/internal/diff"
	"github.com/mateconpizza/pythemes/internal/engine"
	"github.com/mateconpizza/pythemes/internal/system"
	"github.com/mateconpizza/pythemes/internal/wallpaper"
)

// diffContext is the number of unchanged lines shown either side of a
// previewed change.
const diffContext = 2

// ErrTargetFailures reports that at least one target hit a hard error,
// an unreadable or unwritable file. Soft outcomes like a missing query
// or a failed follow-up command do not raise it.
var ErrTargetFailures = errors.New("one or more targets failed")

type ApplyOptions struct {
	Mode   config.Mode
	App    string
	DryRun bool
	Diff   bool
}

// Orchestrator drives one theme run. The runner and lister default to
// the real implementations; tests substitute fakes. Kill, when set,
// replaces the dispatcher's signal delivery.
type Orchestrator struct {
	Runner system.CommandRunner
	Lister system.ProcessLister
	Kill   func(pid int, sig syscall.Signal) error
	Out    io.Writer
}

func NewOrchestrator(dryRun bool) *Orchestrator {
	return &Orchestrator{
		Runner: system.NewRunner(dryRun),
		Lister: system.GopsutilLister{},
		Out:    os.Stdout,
	}
}

// Apply switches every target of the theme to the requested mode.
func Apply(ctx context.Context, theme *config.Theme, options *ApplyOptions) error {
	return NewOrchestrator(options.DryRun).Run(ctx, theme, options)
}

// runState accumulates the outcome of one run.
type runState struct {
	updated int
	errs    int
	hard    int
	queued  []*config.App
}

func (r *runState) exitError() error {
	if r.hard > 0 {
		return ErrTargetFailures
	}
	return nil
}

// Run processes every selected app target, then the side effects:
// wallpaper, mode actions, per-app commands and restart signals. Diff
// mode stops after the targets and never touches the system.
func (o *Orchestrator) Run(ctx context.Context, theme *config.Theme, options *ApplyOptions) error {
	apps := theme.Apps
	if options.App != "" {
		app := theme.App(options.App)
		if app == nil {
			return fmt.Errorf("app '%s' not found in theme '%s'", options.App, theme.Name)
		}
		apps = []*config.App{app}
	}

	log.Debug().
		Str("theme", theme.Name).
		Str("mode", string(options.Mode)).
		Bool("dry_run", options.DryRun).
		Bool("diff", options.Diff).
		Int("apps", len(apps)).
		Msg("starting run")

	fmt.Fprintf(o.Out, "%s\n\n", themeHeader(theme.Name, len(apps)))

	var validations map[string]*config.ValidationResult
	if options.Diff {
		validations = validateQuiet(apps)
	} else {
		validations = validateSweep(o.Out, apps)
	}

	run := &runState{}
	for _, app := range apps {
		o.processApp(run, app, options, validations[app.Name])
	}

	if options.Diff {
		return run.exitError()
	}

	if theme.Wallpaper != nil {
		o.applyWallpaper(ctx, run, theme.Wallpaper, options)
	}

	if run.updated > 0 {
		for _, action := range theme.Actions {
			o.runModeAction(ctx, run, action, options)
		}
		for _, app := range run.queued {
			o.runAppCommand(ctx, run, app, options)
		}
	}

	if theme.Restart != nil {
		o.dispatchRestarts(run, theme.Restart, options.DryRun)
	}

	o.printSummary(run)
	return run.exitError()
}

// processApp reports exactly one status line per app target.
func (o *Orchestrator) processApp(run *runState, app *config.App, options *ApplyOptions, validation *config.ValidationResult) {
	if validation != nil && !validation.Valid {
		run.errs++
		if validation.FileMissing {
			run.hard++
		}
		o.reportApp(app.Name, StatusHasErr)
		if first := validation.First(); first != nil {
			log.Warn().Msg(first.Error())
		}
		return
	}

	target, err := engine.NewTarget(app.File, app.Query)
	if err != nil {
		run.errs++
		run.hard++
		o.reportApp(app.Name, StatusHasErr)
		log.Warn().Str("app", app.Name).Msg(err.Error())
		return
	}

	result, err := target.Substitute(app.Value(options.Mode))
	if err != nil {
		run.errs++
		var notFound *engine.QueryNotFoundError
		if errors.As(err, &notFound) {
			o.reportApp(app.Name, StatusNotFound)
			log.Warn().Str("app", app.Name).Msg(err.Error())
			return
		}
		run.hard++
		o.reportApp(app.Name, StatusHasErr)
		log.Warn().Str("app", app.Name).Msg(err.Error())
		return
	}

	if options.Diff {
		o.reportDiff(app, result)
		return
	}

	if !result.Changed {
		o.reportApp(app.Name, StatusNoChanges)
		return
	}

	if options.DryRun {
		run.updated++
		run.queued = append(run.queued, app)
		o.reportApp(app.Name, StatusDryRun)
		return
	}

	if err := result.Apply(); err != nil {
		run.errs++
		run.hard++
		o.reportApp(app.Name, StatusHasErr)
		log.Warn().Str("app", app.Name).Msg(err.Error())
		return
	}

	run.updated++
	run.queued = append(run.queued, app)
	o.reportApp(app.Name, StatusApplied)
}

func (o *Orchestrator) reportApp(name string, status Status) {
	fmt.Fprintf(o.Out, "%s %s %s\n", tagApp(status == StatusHasErr), name, status)
}

// reportDiff previews what would change for one app.
func (o *Orchestrator) reportDiff(app *config.App, result *engine.Result) {
	if !result.Changed {
		o.reportApp(app.Name, StatusNoChanges)
		return
	}

	o.reportApp(app.Name, StatusHasChanges)
	before, after := result.Context(diffContext)
	fmt.Fprintln(o.Out, diff.Changes(before, after))
}

// applyWallpaper resolves and sets the wallpaper for the mode. Errors
// are reported and counted but never abort the run.
func (o *Orchestrator) applyWallpaper(ctx context.Context, run *runState, w *config.Wallpaper, options *ApplyOptions) {
	path, err := wallpaper.Resolve(w, options.Mode)
	if err != nil {
		run.errs++
		fmt.Fprintf(o.Out, "%s wallpaper %s\n", tagWal(true), StatusErr)
		log.Warn().Msg(err.Error())
		return
	}

	name := filepath.Base(path)
	if w.Cmd == "" {
		run.errs++
		fmt.Fprintf(o.Out, "%s %s %s\n", tagWal(true), name, StatusErr)
		log.Warn().Msg("no 'cmd' wallpaper specified.")
		return
	}

	if options.DryRun {
		fmt.Fprintf(o.Out, "%s %s %s\n", tagWal(false), name, StatusDryRun)
		return
	}

	if err := o.Runner.Run(ctx, wallpaper.Command(w.Cmd, path)); err != nil {
		run.errs++
		fmt.Fprintf(o.Out, "%s %s %s\n", tagWal(true), name, StatusErr)
		log.Warn().Msg(err.Error())
		return
	}

	fmt.Fprintf(o.Out, "%s %s %s\n", tagWal(false), name, StatusSet)
}

// runModeAction invokes a command-only section with the mode value
// appended.
func (o *Orchestrator) runModeAction(ctx context.Context, run *runState, action *config.ModeAction, options *ApplyOptions) {
	if options.DryRun {
		fmt.Fprintf(o.Out, "%s %s %s\n", tagCmd(), action.Name, StatusDryRun)
		return
	}

	command := action.Cmd + " " + action.Value(options.Mode)
	if err := o.Runner.Run(ctx, command); err != nil {
		run.errs++
		fmt.Fprintf(o.Out, "%s %s %s\n", tagCmd(), action.Name, StatusHasErr)
		log.Warn().Str("action", action.Name).Msg(err.Error())
		return
	}

	fmt.Fprintf(o.Out, "%s %s %s\n", tagCmd(), action.Name, StatusExecuted)
}

// runAppCommand runs the follow-up command of an app that changed.
func (o *Orchestrator) runAppCommand(ctx context.Context, run *runState, app *config.App, options *ApplyOptions) {
	if app.Cmd == "" {
		return
	}

	if options.DryRun {
		fmt.Fprintf(o.Out, "%s %s %s\n", tagCmd(), app.Name, StatusDryRun)
		return
	}

	if err := o.Runner.Run(ctx, app.Cmd); err != nil {
		run.errs++
		fmt.Fprintf(o.Out, "%s %s %s\n", tagCmd(), app.Name, StatusHasErr)
		log.Warn().Str("app", app.Name).Msg(err.Error())
		return
	}

	fmt.Fprintf(o.Out, "%s %s %s\n", tagCmd(), app.Name, StatusExecuted)
}

// dispatchRestarts signals each configured process by name.
func (o *Orchestrator) dispatchRestarts(run *runState, restart *config.Restart, dryRun bool) {
	dispatcher, err := system.NewDispatcher(o.Lister, restart.Signal, dryRun)
	if err != nil {
		run.errs++
		fmt.Fprintf(o.Out, "%s %s\n", tagErr(), err.Error())
		log.Warn().Msg(err.Error())
		return
	}
	if o.Kill != nil {
		dispatcher.Kill = o.Kill
	}

	for _, proc := range restart.Procs {
		result, err := dispatcher.Dispatch(proc)
		if err != nil {
			var notFound *system.ProcessNotFoundError
			if errors.As(err, &notFound) {
				fmt.Fprintf(o.Out, "%s %s %s\n", tagSys(), proc, StatusNotFound)
				continue
			}
			run.errs++
			fmt.Fprintf(o.Out, "%s %s %s\n", tagSys(), proc, StatusHasErr)
			log.Warn().Str("program", proc).Msg(err.Error())
			continue
		}

		if !result.Sent {
			fmt.Fprintf(o.Out, "%s %s %s\n", tagSys(), proc, StatusDryRun)
			continue
		}
		fmt.Fprintf(o.Out, "%s %s %s\n", tagSys(), proc, StatusRestarted)
	}
}

func (o *Orchestrator) printSummary(run *runState) {
	if run.updated == 0 {
		fmt.Fprintf(o.Out, "\n%s no apps updated\n", grayColors.Sprint(">"))
	} else {
		fmt.Fprintf(o.Out, "\n%s %s apps updated\n",
			grayColors.Sprint(">"), blueBoldColors.Sprint(strconv.Itoa(run.updated)))
	}
	if run.errs > 0 {
		fmt.Fprintf(o.Out, "%s %s errors occurred\n",
			grayColors.Sprint(">"), redBoldColors.Sprint(strconv.Itoa(run.errs)))
	}
}

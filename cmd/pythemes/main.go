package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/mateconpizza/pythemes/internal/actions"
	"github.com/mateconpizza/pythemes/internal/config"
	"github.com/mateconpizza/pythemes/internal/util"
)

var version = "v0.1.8"

func main() {

	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{},
		Usage:   "print only the version",
	}

	cli.VersionPrinter = func(cmd *cli.Command) {
		fmt.Printf("%s %s\n", cmd.Root().Name, cmd.Root().Version)
	}

	cmd := &cli.Command{
		Name:      "pythemes",
		Version:   version,
		Usage:     "Apply light/dark themes across config files",
		ArgsUsage: "[theme]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "mode",
				Aliases: []string{"m"},
				Usage:   "mode to apply: light, dark",
			},
			&cli.BoolFlag{
				Name:    "list",
				Aliases: []string{"l"},
				Usage:   "list available themes",
			},
			&cli.BoolFlag{
				Name:    "list-apps",
				Aliases: []string{"L"},
				Usage:   "list apps configured in the theme",
			},
			&cli.StringFlag{
				Name:    "app",
				Aliases: []string{"a"},
				Usage:   "apply the theme to a single app",
			},
			&cli.BoolFlag{
				Name:    "diff",
				Aliases: []string{"D"},
				Usage:   "preview changes without writing",
			},
			&cli.BoolFlag{
				Name:    "dry-run",
				Aliases: []string{"d"},
				Usage:   "compute everything, mutate nothing",
			},
			&cli.BoolFlag{
				Name:    "edit",
				Aliases: []string{"e"},
				Usage:   "open the theme file in $EDITOR",
			},
			&cli.StringFlag{
				Name:    "color",
				Aliases: []string{"c"},
				Usage:   "colorize output: always, never",
				Value:   "always",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "listing output format: table, json, yaml",
				Value:   "table",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "debug output",
				Sources: cli.EnvVars("PYTHEMES_VERBOSE"),
			},
			&cli.BoolFlag{
				Name:    "very-verbose",
				Aliases: []string{"vv"},
				Usage:   "trace output",
				Sources: cli.EnvVars("PYTHEMES_VERY_VERBOSE"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return initCli(ctx, cmd)
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("command terminated with error")
	}
}

func initCli(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	godotenv.Load()
	util.SetCliLoggerDefaults()
	util.SetCliLogLevel(cmd)
	if err := actions.SetColorMode(cmd.String("color")); err != nil {
		return ctx, err
	}
	log.Trace().Msg("Trace logging enabled")
	log.Debug().Msg("Debug logging enabled")

	return ctx, nil
}

func run(ctx context.Context, cmd *cli.Command) error {
	dir, err := config.EnsureThemesDir()
	if err != nil {
		log.Error().Err(err).Msg("Failed to prepare themes directory")
		return cli.Exit(fmt.Sprintf("Themes directory error: %v", err), 3)
	}

	if cmd.Bool("list") {
		return actions.ListThemes(&actions.ListOptions{
			Dir:          dir,
			OutputFormat: cmd.String("output"),
		})
	}

	name := cmd.Args().First()
	if name == "" {
		cli.ShowAppHelp(cmd)
		return cli.Exit("", 1)
	}

	path, err := config.FindTheme(dir, name)
	if err != nil {
		log.Error().Err(err).Msg("Failed to scan themes directory")
		return cli.Exit(fmt.Sprintf("Theme lookup error: %v", err), 3)
	}
	if path == "" {
		if err := actions.ReportMissingTheme(name, dir); err != nil {
			return err
		}
		return cli.Exit("", 1)
	}

	// Editing works even when the file no longer parses.
	if cmd.Bool("edit") {
		return actions.Edit(ctx, path)
	}

	theme, err := config.LoadTheme(path)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load theme")
		return cli.Exit(fmt.Sprintf("Theme load error: %v", err), 3)
	}

	if cmd.Bool("list-apps") {
		return actions.ListApps(theme, &actions.ListAppsOptions{
			OutputFormat: cmd.String("output"),
		})
	}

	mode, err := config.ParseMode(cmd.String("mode"))
	if err != nil {
		return err
	}

	options := &actions.ApplyOptions{
		Mode:   mode,
		App:    cmd.String("app"),
		DryRun: cmd.Bool("dry-run"),
		Diff:   cmd.Bool("diff"),
	}

	if err := actions.Apply(ctx, theme, options); err != nil {
		if errors.Is(err, actions.ErrTargetFailures) {
			return cli.Exit("", 1)
		}
		return err
	}
	return nil
}

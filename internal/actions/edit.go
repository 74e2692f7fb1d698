package actions

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/google/shlex"
	"github.com/rs/zerolog/log"
)

// Edit opens the theme file in the user's editor, attached to the
// terminal. $EDITOR may carry arguments; it falls back to vi.
func Edit(ctx context.Context, path string) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	args, err := shlex.Split(editor)
	if err != nil {
		return fmt.Errorf("failed to parse EDITOR '%s': %w", editor, err)
	}
	args = append(args, path)

	log.Debug().Str("editor", editor).Str("file", path).Msg("opening editor")

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor failed: %w", err)
	}
	return nil
}

package diff

import (
	"strings"

	"github.com/aymanbagabas/go-udiff"
	"github.com/jedib0t/go-pretty/v6/text"
)

const contextLines = 3

var (
	deletedColors   = text.Colors{text.FgRed}
	insertedColors  = text.Colors{text.FgGreen}
	unchangedColors = text.Colors{text.FgHiBlack, text.Italic}
)

// Changes returns a colorized line-by-line diff between two chunks of text.
// Deleted lines are prefixed with "- ", inserted lines with "+ ", and a lone
// replaced line additionally carries a "?" marker line underneath pointing at
// the changed characters. Returns an empty string when both chunks are equal.
func Changes(before, after string) string {
	if before == after {
		return ""
	}

	edits := udiff.Strings(before, after)
	unified, err := udiff.ToUnifiedDiff("current", "proposed", before, edits, contextLines)
	if err != nil {
		return ""
	}

	rendered := make([]string, 0, len(edits)*2)
	for _, hunk := range unified.Hunks {
		rendered = append(rendered, renderHunk(hunk)...)
	}

	return strings.Join(rendered, "\n")
}

func renderHunk(hunk *udiff.Hunk) []string {
	rendered := make([]string, 0, len(hunk.Lines))

	for i := 0; i < len(hunk.Lines); i++ {
		content := trimNewline(hunk.Lines[i].Content)

		switch hunk.Lines[i].Kind {
		case udiff.Delete:
			rendered = append(rendered, deletedColors.Sprint("- "+content))

			replacement, ok := pairedInsert(hunk.Lines, i)
			if !ok {
				continue
			}

			// A lone delete/insert pair is a replaced line. Mark the span
			// of characters that actually changed under each side.
			start, oldEnd, newEnd := changedSpans(content, replacement)
			if marker := caretMarker(start, oldEnd); marker != "" {
				rendered = append(rendered, "? "+marker)
			}
			rendered = append(rendered, insertedColors.Sprint("+ "+replacement))
			if marker := caretMarker(start, newEnd); marker != "" {
				rendered = append(rendered, "? "+marker)
			}
			i++
		case udiff.Insert:
			rendered = append(rendered, insertedColors.Sprint("+ "+content))
		case udiff.Equal:
			rendered = append(rendered, unchangedColors.Sprint(strings.TrimSpace(content)))
		}
	}

	return rendered
}

// pairedInsert returns the insert line immediately following the delete at
// index i, but only when the two form a lone replaced pair. Runs of several
// deletes or inserts are rendered without markers.
func pairedInsert(lines []udiff.Line, i int) (string, bool) {
	if i+1 >= len(lines) || lines[i+1].Kind != udiff.Insert {
		return "", false
	}
	if i > 0 && lines[i-1].Kind == udiff.Delete {
		return "", false
	}
	if i+2 < len(lines) && lines[i+2].Kind == udiff.Insert {
		return "", false
	}
	return trimNewline(lines[i+1].Content), true
}

// changedSpans locates the changed character span between two versions of a
// line. It returns the length of the shared prefix and the end of the changed
// span in each version, with the shared suffix excluded.
func changedSpans(old, new string) (start, oldEnd, newEnd int) {
	for start < len(old) && start < len(new) && old[start] == new[start] {
		start++
	}

	oldEnd, newEnd = len(old), len(new)
	for oldEnd > start && newEnd > start && old[oldEnd-1] == new[newEnd-1] {
		oldEnd--
		newEnd--
	}

	return start, oldEnd, newEnd
}

func caretMarker(start, end int) string {
	if end <= start {
		return ""
	}
	return strings.Repeat(" ", start) + strings.Repeat("^", end-start)
}

func trimNewline(s string) string {
	return strings.TrimSuffix(s, "\n")
}

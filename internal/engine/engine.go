package engine

import (
	"os"
	"regexp"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/rs/zerolog/log"

	"github.com/mateconpizza/pythemes/internal/config"
)

// Pattern compiles a query into the expression used to locate its line.
// The placeholder is widened to a non-whitespace capture because the
// value currently on disk is unknown at match time.
func Pattern(query string) (*regexp.Regexp, error) {
	if query == "" {
		return nil, &EmptyQueryError{}
	}
	if !strings.Contains(query, config.Placeholder) {
		return nil, &MissingPlaceholderError{Query: query}
	}
	expr := strings.ReplaceAll(
		regexp.QuoteMeta(query),
		regexp.QuoteMeta(config.Placeholder),
		`(\S+)`,
	)
	return regexp.Compile(expr)
}

// Match locates the first line matching the pattern and returns its index
// and the captured value. Later matches are ignored.
func Match(lines []string, re *regexp.Regexp) (int, string) {
	for idx, line := range lines {
		if m := re.FindStringSubmatch(line); m != nil {
			return idx, m[1]
		}
	}
	return -1, ""
}

// Target wraps one file and its query for matching and substitution.
type Target struct {
	path  string
	query string
	lines []string
}

// NewTarget reads the target file into memory.
func NewTarget(path, query string) (*Target, error) {
	t := &Target{path: path, query: query}
	if err := t.readFile(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Target) readFile() error {
	content, err := os.ReadFile(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &FileNotFoundError{Path: t.path}
		}
		return &FileReadError{Path: t.path, Err: err}
	}
	t.lines = strings.Split(string(content), "\n")
	return nil
}

// Lines returns the file content as read, one entry per line.
func (t *Target) Lines() []string {
	return t.lines
}

// Find locates the query in the file.
func (t *Target) Find() (int, string, error) {
	re, err := Pattern(t.query)
	if err != nil {
		return -1, "", err
	}
	idx, current := Match(t.lines, re)
	if idx == -1 {
		return -1, "", &QueryNotFoundError{Query: t.query, Path: t.path}
	}
	log.Debug().
		Str("file", t.path).
		Int("line", idx).
		Str("current", current).
		Msg("query matched")
	return idx, current, nil
}

// Substitute computes the replacement of the current value with value.
// The file is not touched; call Result.Apply to persist the change.
func (t *Target) Substitute(value string) (*Result, error) {
	idx, current, err := t.Find()
	if err != nil {
		return nil, err
	}

	oldLine := t.lines[idx]
	newLine := strings.ReplaceAll(oldLine, current, value)

	return &Result{
		Path:    t.path,
		Line:    idx,
		Current: current,
		Value:   value,
		OldLine: oldLine,
		NewLine: newLine,
		Changed: oldLine != newLine,
		lines:   t.lines,
	}, nil
}

// Result is the substitution computed for one target. It lives for a
// single run iteration and is never persisted.
type Result struct {
	Path    string
	Line    int
	Current string
	Value   string
	OldLine string
	NewLine string
	Changed bool
	lines   []string
}

// OriginalContent returns the file content the result was computed from.
func (r *Result) OriginalContent() string {
	return strings.Join(r.lines, "\n")
}

// UpdatedContent returns the file content with the substitution applied.
func (r *Result) UpdatedContent() string {
	if !r.Changed {
		return r.OriginalContent()
	}
	updated := make([]string, len(r.lines))
	copy(updated, r.lines)
	updated[r.Line] = r.NewLine
	return strings.Join(updated, "\n")
}

// Context returns the lines surrounding the matched line, bounded by the
// file, before and after the substitution. Used for diff previews.
func (r *Result) Context(around int) (string, string) {
	start := max(0, r.Line-around)
	end := min(len(r.lines), r.Line+around+1)
	oldChunk := strings.Join(r.lines[start:end], "\n")

	updated := make([]string, end-start)
	copy(updated, r.lines[start:end])
	updated[r.Line-start] = r.NewLine
	return oldChunk, strings.Join(updated, "\n")
}

// Apply writes the updated content back to the target file. The write
// goes through a temp file and rename so a failure never truncates the
// original.
func (r *Result) Apply() error {
	if err := atomic.WriteFile(r.Path, strings.NewReader(r.UpdatedContent())); err != nil {
		return &FileWriteError{Path: r.Path, Err: err}
	}
	log.Debug().
		Str("file", r.Path).
		Str("value", r.Value).
		Msg("substitution written")
	return nil
}

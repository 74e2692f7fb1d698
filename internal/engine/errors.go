package engine

import "fmt"

// EmptyQueryError is returned when a target has no query to match.
type EmptyQueryError struct{}

func (e *EmptyQueryError) Error() string {
	return "query is empty"
}

// MissingPlaceholderError is returned when a query lacks the {theme} token.
type MissingPlaceholderError struct {
	Query string
}

func (e *MissingPlaceholderError) Error() string {
	return fmt.Sprintf("query '%s' does not contain placeholder '{theme}'", e.Query)
}

// FileNotFoundError is returned when a target file does not exist.
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("file '%s' does not exist", e.Path)
}

// FileReadError is returned when a target file cannot be read.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("failed to read file '%s': %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error {
	return e.Err
}

// FileWriteError is returned when the updated content cannot be written back.
type FileWriteError struct {
	Path string
	Err  error
}

func (e *FileWriteError) Error() string {
	return fmt.Sprintf("failed to write file '%s': %v", e.Path, e.Err)
}

func (e *FileWriteError) Unwrap() error {
	return e.Err
}

// QueryNotFoundError is returned when no line in the target file matches
// the query pattern.
type QueryNotFoundError struct {
	Query string
	Path  string
}

func (e *QueryNotFoundError) Error() string {
	return fmt.Sprintf("query '%s' not found in '%s'", e.Query, e.Path)
}

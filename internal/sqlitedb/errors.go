package sqlitedb

import "fmt"

// FileFormatError reports that a file could not be opened as a SQLite
// database. The driver message is kept verbatim for display.
type FileFormatError struct {
	Path string
	Err  error
}

func (e *FileFormatError) Error() string {
	return fmt.Sprintf("not a valid SQLite database: %v", e.Err)
}

func (e *FileFormatError) Unwrap() error { return e.Err }

// QueryError reports that a statement failed to execute. The underlying
// driver message is carried verbatim; execution errors never terminate the
// session.
type QueryError struct {
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query failed: %v", e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// EmptySchemaError reports that a database contains no tables. Callers that
// merely list tables should render an empty state instead of returning this.
type EmptySchemaError struct{}

func (e *EmptySchemaError) Error() string {
	return "database contains no tables"
}

package domain

import "fmt"

// ValidationError reports bad, missing, or contradictory request input.
// Always user-correctable; maps to HTTP 400.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// DataSourceError wraps a read failure from the underlying data store.
type DataSourceError struct {
	Kind ReportKind
	Err  error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("%s report: data source failed: %v", e.Kind, e.Err)
}

func (e *DataSourceError) Unwrap() error { return e.Err }

// UnsupportedFormatError indicates a format outside the closed set
// reached the serializer. Request validation makes this unreachable in
// normal operation; hitting it is a programming error.
type UnsupportedFormatError struct {
	Format ExportFormat
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported export format %q", e.Format)
}

// SerializationError wraps a format-specific encoding failure.
type SerializationError struct {
	Format ExportFormat
	Err    error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("%s serialization failed: %v", e.Format, e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"

	// Configuration fields.
	FieldConfig    = "config"
	FieldFlags     = "flags"
	FieldDoctype   = "doctype"
	FieldCharset   = "charset"
	FieldDelimiter = "delimiter"
	FieldJobs      = "jobs"

	// Statistics fields.
	FieldBytes            = "bytes"
	FieldDuration         = "duration"
	FieldFilesDiscovered  = "files_discovered"
	FieldFilesRendered    = "files_rendered"
	FieldFilesUnchanged   = "files_unchanged"
	FieldFilesFailed      = "files_failed"
	FieldFootnoteRefCount = "footnotes"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)

package model

import "fmt"

// DirectorySetupError means a storage location could not be created.
// It is fatal at startup.
type DirectorySetupError struct {
	Dir string
	Err error
}

func (e *DirectorySetupError) Error() string {
	return fmt.Sprintf("failed to create directory %s: %v", e.Dir, e.Err)
}

func (e *DirectorySetupError) Unwrap() error { return e.Err }

// WriteError means a durable write did not complete.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// ParseError describes a log line that was skipped.
type ParseError struct {
	Line   int
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// RenderError means one chart or report artifact could not be produced.
type RenderError struct {
	Artifact string
	Err      error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("failed to render %s: %v", e.Artifact, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// PlaybackError means the audible cue could not be played.
type PlaybackError struct {
	File string
	Err  error
}

func (e *PlaybackError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("failed to play sound: %v", e.Err)
	}
	return fmt.Sprintf("failed to play sound %s: %v", e.File, e.Err)
}

func (e *PlaybackError) Unwrap() error { return e.Err }

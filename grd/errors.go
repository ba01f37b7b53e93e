package grd

import (
	"errors"
	"fmt"
)

// Decode errors.
var (
	// ErrUnrecognizedFormat indicates the data is not a gradient descriptor
	// file: bad signature, truncated header or unknown descriptor class.
	ErrUnrecognizedFormat = errors.New("grd: unrecognized format")

	// ErrUnsupportedVersion indicates a gradient file version other than 5.
	ErrUnsupportedVersion = errors.New("grd: unsupported version")

	// ErrMissingField indicates a gradient record lacks a field it needs,
	// or the field runs past the end of the record.
	ErrMissingField = errors.New("grd: missing field")

	// ErrUnknownColorFormat indicates a colour stop in a colour model the
	// decoder does not know.
	ErrUnknownColorFormat = errors.New("grd: unsupported colour format")

	// ErrEmptyGradient indicates a gradient without colour stops.
	ErrEmptyGradient = errors.New("grd: gradient has no colour stops")

	// ErrNilCollection is returned by Encode for a nil collection.
	ErrNilCollection = errors.New("grd: nil collection")
)

// HeaderError is returned when the file header does not describe a
// gradient descriptor stream.
type HeaderError struct {
	Field string // "signature", "length" or "descriptor class"
	Got   uint32
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("grd: unrecognized format: bad %s %#x", e.Field, e.Got)
}

func (e *HeaderError) Unwrap() error { return ErrUnrecognizedFormat }

// VersionError is returned for gradient files with a version other than 5.
type VersionError struct {
	Version uint16
}

func (e *VersionError) Error() string {
	if e.Version == legacyVersion {
		return "grd: unsupported version 3: please use gradients saved by Photoshop 6 or later"
	}
	return fmt.Sprintf("grd: unsupported version %d", e.Version)
}

func (e *VersionError) Unwrap() error { return ErrUnsupportedVersion }

// RecordError describes a gradient record that was skipped. It never
// aborts a decode; see WithRecordErrorHandler.
type RecordError struct {
	Index int    // index of the record among all gradient-start tags
	Name  string // gradient name, if it was read before the failure
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("grd: gradient record %d (%q): %v", e.Index, e.Name, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

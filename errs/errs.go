/*
Package errs defines the failure kinds of the training and prediction pipeline.

Every failure crossing a stage boundary is an *Error carrying its Kind,
the file:line where it was classified and the underlying cause.
*/
package errs

import (
	"fmt"
	"path/filepath"
	"runtime"

	"golang.org/x/xerrors"
)

/*
Kind is a failure kind callers can branch on
*/
type Kind int

const (
	Unknown Kind = iota
	// source dataset is missing or unreadable
	DataUnavailable
	// intermediate train/test partition is missing
	FileNotFound
	// no candidate reached the acceptability threshold
	NoAcceptableModel
	// fitted preprocessor or model is absent at prediction time
	ArtifactMissing
	// persisting or loading a fitted object failed
	SerializationFailure
	// input table does not match the expected schema or values
	InvalidData
	// a candidate failed to fit or predict
	TrainingFailure
)

var kindNames = map[Kind]string{
	Unknown:              "Unknown",
	DataUnavailable:      "DataUnavailable",
	FileNotFound:         "FileNotFound",
	NoAcceptableModel:    "NoAcceptableModel",
	ArtifactMissing:      "ArtifactMissing",
	SerializationFailure: "SerializationFailure",
	InvalidData:          "InvalidData",
	TrainingFailure:      "TrainingFailure",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

/*
Error is a classified pipeline failure
*/
type Error struct {
	Kind   Kind
	Origin string // file:line where the failure was classified
	Err    error  // underlying cause
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v at [%s]: %v", e.Kind, e.Origin, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func origin(skip int) string {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}

/*
New classifies err as a failure of the given kind
*/
func New(kind Kind, err error) error {
	return &Error{Kind: kind, Origin: origin(1), Err: err}
}

/*
Errorf creates a failure of the given kind with a formatted cause
*/
func Errorf(kind Kind, format string, a ...interface{}) error {
	return &Error{Kind: kind, Origin: origin(1), Err: fmt.Errorf(format, a...)}
}

/*
KindOf returns the kind of the outermost *Error in the chain, Unknown if none
*/
func KindOf(err error) Kind {
	var e *Error
	if xerrors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// Is reports whether err is classified as kind
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

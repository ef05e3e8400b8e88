package arch

import (
	"errors"
	"fmt"
)

// ErrNoComponents is returned when extraction yields no component at all.
var ErrNoComponents = errors.New("no components extracted")

// DocumentNotFoundError reports a document path that is missing or unreadable.
type DocumentNotFoundError struct {
	Path string
	Err  error
}

func (e *DocumentNotFoundError) Error() string {
	return fmt.Sprintf("document %s not found: %v", e.Path, e.Err)
}

func (e *DocumentNotFoundError) Unwrap() error { return e.Err }

// MalformedDocumentError reports a document that is not well-formed XML.
type MalformedDocumentError struct {
	Path string
	Err  error
}

func (e *MalformedDocumentError) Error() string {
	return fmt.Sprintf("document %s is malformed: %v", e.Path, e.Err)
}

func (e *MalformedDocumentError) Unwrap() error { return e.Err }

// UnresolvedReferenceError reports a connection endpoint whose reference
// path does not name a port of any reconciled component.
type UnresolvedReferenceError struct {
	// Connection is the SAElements position of the connection.
	Connection int
	Ref        string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("connection %d: unresolved reference %q", e.Connection, e.Ref)
}

// NoComponentsError carries the documents that produced no component.
type NoComponentsError struct {
	SoftwarePath string
	HardwarePath string
}

func (e *NoComponentsError) Error() string {
	if e.HardwarePath == "" {
		return fmt.Sprintf("%s: %v", e.SoftwarePath, ErrNoComponents)
	}
	return fmt.Sprintf("%s, %s: %v", e.SoftwarePath, e.HardwarePath, ErrNoComponents)
}

func (e *NoComponentsError) Unwrap() error { return ErrNoComponents }

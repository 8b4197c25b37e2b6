package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies per-mod failures
type ErrorKind string

const (
	KindToolInvocation     ErrorKind = "tool_invocation"
	KindManifestNotFound   ErrorKind = "manifest_not_found"
	KindVersionResolution  ErrorKind = "version_resolution"
	KindAmbiguousContainer ErrorKind = "ambiguous_container"
)

// Sentinels matched through errors.Is against a *ModError of the same kind
var (
	ErrToolInvocation     = errors.New("archive tool invocation failed")
	ErrManifestNotFound   = errors.New("no display name could be derived")
	ErrVersionResolution  = errors.New("no compatible or universal package")
	ErrAmbiguousContainer = errors.New("ambiguous container")
)

// ModError is the error recorded on a Mod when its container could not be analyzed
type ModError struct {
	Kind        ErrorKind
	ContainerID string
	Path        string
	Message     string
	Err         error
}

// NewModError creates a ModError of the given kind
func NewModError(kind ErrorKind, containerID, path, message string, err error) *ModError {
	return &ModError{
		Kind:        kind,
		ContainerID: containerID,
		Path:        path,
		Message:     message,
		Err:         err,
	}
}

// Error implements the error interface
func (e *ModError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.sentinel().Error()
	}
	if e.Path != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Path)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause
func (e *ModError) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinels
func (e *ModError) Is(target error) bool {
	return target == e.sentinel()
}

func (e *ModError) sentinel() error {
	switch e.Kind {
	case KindToolInvocation:
		return ErrToolInvocation
	case KindManifestNotFound:
		return ErrManifestNotFound
	case KindVersionResolution:
		return ErrVersionResolution
	case KindAmbiguousContainer:
		return ErrAmbiguousContainer
	}
	return nil
}

// KindOf extracts the error kind, or "" when err is not a ModError
func KindOf(err error) ErrorKind {
	var modErr *ModError
	if errors.As(err, &modErr) {
		return modErr.Kind
	}
	return ""
}

package artifact

import (
	"errors"
	"fmt"
)

// ErrNoArtifact indicates that no file matched the requested pattern.
// This is a normal "no data available" condition, not a failure.
var ErrNoArtifact = errors.New("no matching artifact found")

// MalformedArtifactError indicates that an artifact file exists but could
// not be decoded. The affected facet is skipped; the run continues.
type MalformedArtifactError struct {
	Path string
	Err  error
}

func (e *MalformedArtifactError) Error() string {
	return fmt.Sprintf("malformed artifact %s: %v", e.Path, e.Err)
}

func (e *MalformedArtifactError) Unwrap() error {
	return e.Err
}

// IsMalformed reports whether err wraps a MalformedArtifactError.
func IsMalformed(err error) bool {
	var malformed *MalformedArtifactError
	return errors.As(err, &malformed)
}

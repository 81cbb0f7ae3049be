package colorkey

import (
	"errors"
	"fmt"

	"github.com/ironsheep/chromakey-mcp/internal/imaging"
)

// DecodeError is returned when the source cannot be read or parsed as an image.
type DecodeError = imaging.DecodeError

// ErrSameFile is wrapped by a WriteError when the destination would overwrite
// the source image.
var ErrSameFile = errors.New("destination is the source file")

// ErrOutputConflict is wrapped by a WriteError when an earlier job in the same
// batch already writes to the destination.
var ErrOutputConflict = errors.New("destination is written by another job in the batch")

// WriteError reports that the destination could not be written. No partial
// file is left behind when it is returned.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// IsWriteError reports whether err (or anything it wraps) is a *WriteError.
func IsWriteError(err error) bool {
	var we *WriteError
	return errors.As(err, &we)
}

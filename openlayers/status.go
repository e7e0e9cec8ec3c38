package openlayers

import (
	"errors"
	"fmt"
)

// Status is an Open Layers result code (ECODE in the vendor headers).
// Every driver call returns one; zero is success.
type Status int32

// OLNoError is the shared success code of the Open Layers API.
const OLNoError Status = 0

// ErrLen is the size of the vendor error-string buffer, including the C NUL
// terminator.  Text returned by TranslateError never exceeds ErrLen-1 bytes.
const ErrLen = 80

var (
	// ErrNoBoards is returned by Initialize when enumeration completes
	// without any board opening.  It is not a driver failure; the session
	// is simply left uninitialized.
	ErrNoBoards = errors.New("no Open Layers boards found")

	// ErrNotConfigured is returned by SetVoltage when the session has no
	// configured subsystem (Initialize has not succeeded, or a prior
	// failure tore the session down).
	ErrNotConfigured = errors.New("session has no configured subsystem; call Initialize first")

	// ErrAlreadyInitialized is returned by Initialize when the session
	// already holds a board.  Call Cleanup first.
	ErrAlreadyInitialized = errors.New("session already holds a board; call Cleanup before re-initializing")
)

// DriverError is a failure reported by the Open Layers driver, annotated
// with the procedure that produced it.  Human-readable text is not attached;
// fetch it separately with TranslateError.
type DriverError struct {
	// Op is the vendor procedure that failed, e.g. olDaGetDASS
	Op string

	// Code is the status the procedure returned
	Code Status
}

func (e *DriverError) Error() string {
	return fmt.Sprintf("open layers status %d encountered at call to %s", e.Code, e.Op)
}

// enrich returns a DriverError decorated with the procedure called,
// or nil if the status is success
func enrich(st Status, procedure string) error {
	if st == OLNoError {
		return nil
	}
	return &DriverError{Op: procedure, Code: st}
}

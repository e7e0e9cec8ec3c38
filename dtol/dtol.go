// Package dtol implements the openlayers.Driver interface on top of the
// Data Translation Open Layers SDK (oldaapi) through cgo.
//
// The SDK is Windows-only; this package only builds on machines with the
// Open Layers development files installed.  Everything above it (the
// openlayers package and the HTTP layer) is pure Go.
package dtol

/*
#cgo LDFLAGS: -loldaapi32
#include <stdlib.h>
#include <windows.h>
#include <oldaapi.h>

extern BOOL CALLBACK enumBoardTrampoline(LPSTR lpszName, LPSTR lpszEntry, LPARAM lParam);

// cgo cannot pass a Go-exported function as a C function pointer directly;
// bounce through this shim instead
static ECODE enumBoardsShim() {
	return olDaEnumBoards(enumBoardTrampoline, 0);
}
*/
import "C"
import (
	"sync"
	"unsafe"

	"github.com/davenportlab/oldaq/openlayers"
)

// Driver is the production Open Layers backend.  The zero value is ready to
// use; the vendor library holds all state behind the handles.
type Driver struct{}

// the C enumeration callback cannot carry a Go closure, so the active
// visitor is parked here for the duration of the EnumBoards call
var (
	enumMu      sync.Mutex
	enumVisitor func(name, entry string) bool
)

// EnumBoards invokes visit once per installed Open Layers board
func (Driver) EnumBoards(visit func(name, entry string) bool) openlayers.Status {
	enumMu.Lock()
	defer enumMu.Unlock()
	enumVisitor = visit
	defer func() { enumVisitor = nil }()
	return openlayers.Status(C.enumBoardsShim())
}

// OpenBoard opens the named board driver
func (Driver) OpenBoard(name string) (openlayers.BoardHandle, openlayers.Status) {
	cs := C.CString(name)
	defer C.free(unsafe.Pointer(cs))
	var h C.HDEV
	st := C.olDaInitialize(cs, &h)
	return openlayers.BoardHandle(uintptr(unsafe.Pointer(h))), openlayers.Status(st)
}

// Terminate closes a board driver
func (Driver) Terminate(h openlayers.BoardHandle) openlayers.Status {
	return openlayers.Status(C.olDaTerminate(C.HDEV(unsafe.Pointer(uintptr(h)))))
}

// GetSubsystem acquires the idx-th subsystem of the given kind
func (Driver) GetSubsystem(h openlayers.BoardHandle, ss openlayers.Subsystem, idx uint) (openlayers.SubsystemHandle, openlayers.Status) {
	var hdass C.HDASS
	st := C.olDaGetDASS(C.HDEV(unsafe.Pointer(uintptr(h))), subsystemCode(ss), C.UINT(idx), &hdass)
	return openlayers.SubsystemHandle(uintptr(unsafe.Pointer(hdass))), openlayers.Status(st)
}

// ReleaseSubsystem releases a subsystem handle
func (Driver) ReleaseSubsystem(h openlayers.SubsystemHandle) openlayers.Status {
	return openlayers.Status(C.olDaReleaseDASS(C.HDASS(unsafe.Pointer(uintptr(h)))))
}

// SetDataFlow stages the subsystem's data-flow mode
func (Driver) SetDataFlow(h openlayers.SubsystemHandle, df openlayers.DataFlow) openlayers.Status {
	return openlayers.Status(C.olDaSetDataFlow(C.HDASS(unsafe.Pointer(uintptr(h))), dataFlowCode(df)))
}

// ApplyConfig applies staged subsystem configuration
func (Driver) ApplyConfig(h openlayers.SubsystemHandle) openlayers.Status {
	return openlayers.Status(C.olDaConfig(C.HDASS(unsafe.Pointer(uintptr(h)))))
}

// Range returns the subsystem's configured voltage span.
// The vendor call reports max before min; that order is preserved.
func (Driver) Range(h openlayers.SubsystemHandle) (float64, float64, openlayers.Status) {
	var max, min C.DBL
	st := C.olDaGetRange(C.HDASS(unsafe.Pointer(uintptr(h))), &max, &min)
	return float64(max), float64(min), openlayers.Status(st)
}

// Encoding returns the subsystem's code space
func (Driver) Encoding(h openlayers.SubsystemHandle) (openlayers.Encoding, openlayers.Status) {
	var enc C.UINT
	st := C.olDaGetEncoding(C.HDASS(unsafe.Pointer(uintptr(h))), &enc)
	if enc == C.OL_ENC_BINARY {
		return openlayers.EncodingBinary, openlayers.Status(st)
	}
	return openlayers.EncodingTwosComplement, openlayers.Status(st)
}

// Resolution returns the converter's resolution in bits
func (Driver) Resolution(h openlayers.SubsystemHandle) (uint, openlayers.Status) {
	var res C.UINT
	st := C.olDaGetResolution(C.HDASS(unsafe.Pointer(uintptr(h))), &res)
	return uint(res), openlayers.Status(st)
}

// PutSingleValue writes one device code to a channel with the given gain
func (Driver) PutSingleValue(h openlayers.SubsystemHandle, value int32, channel uint, gain float64) openlayers.Status {
	return openlayers.Status(C.olDaPutSingleValue(C.HDASS(unsafe.Pointer(uintptr(h))), C.long(value), C.UINT(channel), C.DBL(gain)))
}

// ErrorString looks up the vendor's text for a status code
func (Driver) ErrorString(code openlayers.Status) string {
	var buf [openlayers.ErrLen]C.char
	C.olDaGetErrorString(C.ECODE(code), &buf[0], C.UINT(len(buf)))
	return C.GoString(&buf[0])
}

func subsystemCode(ss openlayers.Subsystem) C.OLSS {
	if ss == openlayers.AnalogInput {
		return C.OLSS_AD
	}
	return C.OLSS_DA
}

func dataFlowCode(df openlayers.DataFlow) C.UINT {
	if df == openlayers.Continuous {
		return C.OL_DF_CONTINUOUS
	}
	return C.OL_DF_SINGLEVALUE
}

package openlayers

// BoardHandle is an opaque handle to an opened board driver (HDEV).
// The zero value means no board.
type BoardHandle uintptr

// SubsystemHandle is an opaque handle to a board subsystem (HDASS).
// The zero value means no subsystem.
type SubsystemHandle uintptr

// Subsystem selects a logical functional unit of a board.
type Subsystem int

const (
	// AnalogOutput is the D/A subsystem (OLSS_DA)
	AnalogOutput Subsystem = iota

	// AnalogInput is the A/D subsystem (OLSS_AD)
	AnalogInput
)

// DataFlow is a subsystem data-flow mode.
type DataFlow int

const (
	// SingleValue transfers one discrete value per call (OL_DF_SINGLEVALUE)
	SingleValue DataFlow = iota

	// Continuous is streaming/buffered operation (OL_DF_CONTINUOUS).
	// Nothing in this module configures it; it exists so the Driver
	// contract covers the modes the vendor API distinguishes.
	Continuous
)

// Encoding is the code space a subsystem's converter expects.
type Encoding int

const (
	// EncodingBinary is straight binary (OL_ENC_BINARY)
	EncodingBinary Encoding = iota

	// EncodingTwosComplement is offset/two's-complement style
	EncodingTwosComplement
)

// MaxBoardNameLength bounds the name and entry-point strings captured during
// enumeration (MAX_BOARD_NAME_LENGTH in the vendor headers).  Longer strings
// are truncated.
const MaxBoardNameLength = 64

// BoardInfo holds the display strings for a board captured at enumeration.
type BoardInfo struct {
	// Name is the board's driver name, e.g. DT9834-00
	Name string

	// Entry is the driver entry point string
	Entry string
}

// Driver is the Open Layers surface this module consumes.  All methods are
// synchronous, bounded hardware transactions.  The production implementation
// is dtol.Driver; tests substitute fakes.
type Driver interface {
	// EnumBoards invokes visit once per installed board with the board's
	// name and entry point.  visit returns false to halt enumeration.
	EnumBoards(visit func(name, entry string) bool) Status

	// OpenBoard opens the named board driver (olDaInitialize).  A zero
	// handle with a success status means the driver refused the open
	// without reporting an error.
	OpenBoard(name string) (BoardHandle, Status)

	// Terminate closes a board driver (olDaTerminate)
	Terminate(BoardHandle) Status

	// GetSubsystem acquires the idx-th subsystem of the given kind
	// (olDaGetDASS)
	GetSubsystem(BoardHandle, Subsystem, uint) (SubsystemHandle, Status)

	// ReleaseSubsystem releases a subsystem handle (olDaReleaseDASS)
	ReleaseSubsystem(SubsystemHandle) Status

	// SetDataFlow stages the subsystem's data-flow mode (olDaSetDataFlow).
	// The change takes effect at the next ApplyConfig.
	SetDataFlow(SubsystemHandle, DataFlow) Status

	// ApplyConfig applies staged subsystem configuration (olDaConfig)
	ApplyConfig(SubsystemHandle) Status

	// Range returns the subsystem's configured voltage span
	// (olDaGetRange; the vendor call reports max before min)
	Range(SubsystemHandle) (max, min float64, st Status)

	// Encoding returns the subsystem's code space (olDaGetEncoding)
	Encoding(SubsystemHandle) (Encoding, Status)

	// Resolution returns the converter's resolution in bits
	// (olDaGetResolution)
	Resolution(SubsystemHandle) (uint, Status)

	// PutSingleValue writes one device code to a channel with the given
	// gain (olDaPutSingleValue)
	PutSingleValue(h SubsystemHandle, value int32, channel uint, gain float64) Status

	// ErrorString looks up the human-readable text for a status code
	// (olDaGetErrorString).  Best effort; may be empty.
	ErrorString(Status) string
}

// FirstAvailableBoard walks the driver's enumeration and opens the first
// board that initializes successfully, halting enumeration there.  The
// returned BoardInfo is populated (truncated to MaxBoardNameLength) even
// when the open fails, as a diagnostic of the last board attempted.
//
// If enumeration completes with no board opened and no driver failure,
// the error is ErrNoBoards.
func FirstAvailableBoard(d Driver) (BoardInfo, BoardHandle, error) {
	var (
		info BoardInfo
		hdev BoardHandle
		last Status
	)
	st := d.EnumBoards(func(name, entry string) bool {
		info.Name = truncate(name, MaxBoardNameLength)
		info.Entry = truncate(entry, MaxBoardNameLength)
		hdev, last = d.OpenBoard(name)
		return hdev == 0 // keep enumerating until a board opens
	})
	if err := enrich(st, "olDaEnumBoards"); err != nil {
		return info, 0, err
	}
	// a failed open inside the visitor surfaces here, after enumeration
	if err := enrich(last, "olDaInitialize"); err != nil {
		return info, 0, err
	}
	if hdev == 0 {
		return info, 0, ErrNoBoards
	}
	return info, hdev, nil
}

// truncate bounds s to at most n bytes, mirroring lstrcpyn semantics
func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

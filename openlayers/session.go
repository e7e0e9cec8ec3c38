package openlayers

// Session owns one board's lifecycle: uninitialized, acquired, configured,
// released.  The subsystem handle is valid if and only if the board handle
// is valid and configuration succeeded.
//
// Methods must be externally serialized; see the package doc.
type Session struct {
	drv Driver

	board BoardInfo
	hdev  BoardHandle
	hdass SubsystemHandle

	// status is the last driver code seen, kept purely as a diagnostic
	// snapshot; it plays no part in the lifecycle invariant
	status Status
}

// NewSession returns a Session that will drive boards through d.
// No hardware is touched until Initialize.
func NewSession(d Driver) *Session {
	return &Session{drv: d}
}

// Initialize opens the first available board, acquires its analog output
// subsystem, and configures it for single-value writes.
//
// If enumeration finds no board that opens, ErrNoBoards is returned and the
// session stays uninitialized; callers must treat this distinctly from both
// success and a hard driver failure.  Any driver failure mid-sequence
// releases whatever was already acquired before the error is returned.
func (s *Session) Initialize() error {
	if s.hdev != 0 {
		return ErrAlreadyInitialized
	}
	info, hdev, err := FirstAvailableBoard(s.drv)
	s.board = info
	if err != nil {
		if de, ok := err.(*DriverError); ok {
			s.status = de.Code
		}
		return err
	}
	s.hdev = hdev
	hdass, st := s.drv.GetSubsystem(hdev, AnalogOutput, 0)
	if err := s.check(st, "olDaGetDASS"); err != nil {
		return err
	}
	s.hdass = hdass
	if err := s.check(s.drv.SetDataFlow(hdass, SingleValue), "olDaSetDataFlow"); err != nil {
		return err
	}
	if err := s.check(s.drv.ApplyConfig(hdass), "olDaConfig"); err != nil {
		return err
	}
	return nil
}

// SetVoltage converts volts to a device code and writes it to the given
// output channel with a gain of 1.0.  The subsystem's range, encoding, and
// resolution are queried fresh on every call so that configuration changes
// made outside this session are honored.
//
// Channel validity is not checked locally; the driver fails the write for a
// bad index.  A driver failure in any step tears down the whole session
// (subsystem and board released) before returning, matching the all-or-
// nothing behavior of the vendor's reference wrapper.
func (s *Session) SetVoltage(channel uint, volts float32) error {
	if s.hdass == 0 {
		return ErrNotConfigured
	}
	max, min, st := s.drv.Range(s.hdass)
	if err := s.check(st, "olDaGetRange"); err != nil {
		return err
	}
	enc, st := s.drv.Encoding(s.hdass)
	if err := s.check(st, "olDaGetEncoding"); err != nil {
		return err
	}
	res, st := s.drv.Resolution(s.hdass)
	if err := s.check(st, "olDaGetResolution"); err != nil {
		return err
	}
	value := Encode(volts, min, max, enc, res)
	const gain = 1.0
	return s.check(s.drv.PutSingleValue(s.hdass, value, channel, gain), "olDaPutSingleValue")
}

// Cleanup releases the subsystem and terminates the board, returning the
// session to uninitialized.  On an already-uninitialized session it is a
// no-op returning nil.  The first failing release step's code is surfaced;
// board termination is still attempted when subsystem release fails.
func (s *Session) Cleanup() error {
	if s.hdev == 0 && s.hdass == 0 {
		return nil
	}
	var relErr error
	if s.hdass != 0 {
		st := s.drv.ReleaseSubsystem(s.hdass)
		s.status = st
		s.hdass = 0
		relErr = enrich(st, "olDaReleaseDASS")
	}
	if s.hdev != 0 {
		st := s.drv.Terminate(s.hdev)
		s.hdev = 0
		if relErr == nil {
			s.status = st
			relErr = enrich(st, "olDaTerminate")
		}
	}
	return relErr
}

// TranslateError is a stateless passthrough to the driver's error-string
// lookup.  It never fails; the result is best effort, possibly empty, and
// never longer than ErrLen-1 bytes.
func (s *Session) TranslateError(code Status) string {
	return truncate(s.drv.ErrorString(code), ErrLen-1)
}

// Board returns the display strings captured during enumeration.  They
// remain populated after teardown as a diagnostic of the last board held.
func (s *Session) Board() BoardInfo {
	return s.board
}

// Status returns the last driver code seen by the session
func (s *Session) Status() Status {
	return s.status
}

// Configured returns true when the session holds a configured subsystem
// and SetVoltage may be called
func (s *Session) Configured() bool {
	return s.hdass != 0
}

// check records st as the diagnostic snapshot; on failure it unwinds every
// handle the session holds, subsystem before board, then reports the error.
// This is the scoped-acquisition rendering of the vendor wrapper's
// release-on-error macro.
func (s *Session) check(st Status, procedure string) error {
	s.status = st
	if st == OLNoError {
		return nil
	}
	if s.hdass != 0 {
		s.drv.ReleaseSubsystem(s.hdass)
		s.hdass = 0
	}
	if s.hdev != 0 {
		s.drv.Terminate(s.hdev)
		s.hdev = 0
	}
	return &DriverError{Op: procedure, Code: st}
}

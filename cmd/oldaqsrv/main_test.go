package main

import (
	"errors"
	"testing"
	"time"

	"github.com/davenportlab/oldaq/openlayers"
)

// stubDriver counts enumeration attempts; by default it reports no boards.
type stubDriver struct {
	enumStatus openlayers.Status
	enums      int
}

func (s *stubDriver) EnumBoards(visit func(name, entry string) bool) openlayers.Status {
	s.enums++
	return s.enumStatus
}

func (s *stubDriver) OpenBoard(name string) (openlayers.BoardHandle, openlayers.Status) {
	return 0, 0x7001
}

func (s *stubDriver) Terminate(h openlayers.BoardHandle) openlayers.Status { return 0 }

func (s *stubDriver) GetSubsystem(h openlayers.BoardHandle, ss openlayers.Subsystem, idx uint) (openlayers.SubsystemHandle, openlayers.Status) {
	return 0, 0
}

func (s *stubDriver) ReleaseSubsystem(h openlayers.SubsystemHandle) openlayers.Status { return 0 }

func (s *stubDriver) SetDataFlow(h openlayers.SubsystemHandle, df openlayers.DataFlow) openlayers.Status {
	return 0
}

func (s *stubDriver) ApplyConfig(h openlayers.SubsystemHandle) openlayers.Status { return 0 }

func (s *stubDriver) Range(h openlayers.SubsystemHandle) (float64, float64, openlayers.Status) {
	return 10, -10, 0
}

func (s *stubDriver) Encoding(h openlayers.SubsystemHandle) (openlayers.Encoding, openlayers.Status) {
	return openlayers.EncodingBinary, 0
}

func (s *stubDriver) Resolution(h openlayers.SubsystemHandle) (uint, openlayers.Status) {
	return 12, 0
}

func (s *stubDriver) PutSingleValue(h openlayers.SubsystemHandle, value int32, channel uint, gain float64) openlayers.Status {
	return 0
}

func (s *stubDriver) ErrorString(code openlayers.Status) string { return "" }

func TestBringupZeroWaitTriesOnce(t *testing.T) {
	drv := &stubDriver{}
	ses := openlayers.NewSession(drv)
	err := bringup(ses, 0)
	if !errors.Is(err, openlayers.ErrNoBoards) {
		t.Fatalf("expected ErrNoBoards, got %v", err)
	}
	if drv.enums != 1 {
		t.Errorf("expected a single enumeration attempt with zero wait, got %d", drv.enums)
	}
}

func TestBringupHardFailureNotRetried(t *testing.T) {
	drv := &stubDriver{enumStatus: 11}
	ses := openlayers.NewSession(drv)
	err := bringup(ses, 30*time.Second)
	var de *openlayers.DriverError
	if !errors.As(err, &de) {
		t.Fatalf("expected a DriverError, got %v", err)
	}
	if drv.enums != 1 {
		t.Errorf("expected a hard driver failure to stop retrying, got %d attempts", drv.enums)
	}
}

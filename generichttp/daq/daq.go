// Package daq provides a generic HTTP interface to single-value DAC devices
//
// This is not the last word in speed, due to HTTP having reasonable latency
// in most client languages, but it is the last word in ease of use.
package daq

import (
	"encoding/json"
	"errors"
	"go/types"
	"net/http"

	"goji.io/pat"

	"github.com/davenportlab/oldaq/generichttp"
	"github.com/davenportlab/oldaq/openlayers"
	"github.com/davenportlab/oldaq/server"
)

// DAC is a model for a simple digital to analog converter
type DAC interface {
	// SetVoltage sends a voltage on a given channel
	SetVoltage(uint, float32) error
}

// Lifecycler is a device with an explicit bring-up and teardown sequence
type Lifecycler interface {
	// Initialize acquires and configures the hardware
	Initialize() error

	// Cleanup releases the hardware
	Cleanup() error
}

// ErrorTranslator converts driver status codes to human-readable text
type ErrorTranslator interface {
	TranslateError(openlayers.Status) string
}

// Introspector exposes diagnostic state about the device session
type Introspector interface {
	// Board returns the display strings of the held board
	Board() openlayers.BoardInfo

	// Status returns the last driver code seen
	Status() openlayers.Status

	// Configured returns true when the device will accept writes
	Configured() bool
}

type channelVoltage struct {
	Channel uint `json:"channel"`

	Voltage float32 `json:"voltage"`
}

// SetVoltage returns an HTTP handlerfunc that will write a voltage to a channel
func SetVoltage(d DAC) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input channelVoltage
		err := json.NewDecoder(r.Body).Decode(&input)
		defer r.Body.Close()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		err = d.SetVoltage(input.Channel, input.Voltage)
		if errors.Is(err, openlayers.ErrNotConfigured) {
			http.Error(w, err.Error(), http.StatusPreconditionFailed)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

// Initialize returns an HTTP handlerfunc that brings up the hardware.  The
// response is json {'bool': found}: false means enumeration completed
// without a board, which is not a failure but leaves the device unusable.
func Initialize(l Lifecycler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := l.Initialize()
		if errors.Is(err, openlayers.ErrNoBoards) {
			hp := server.HumanPayload{T: types.Bool, Bool: false}
			hp.EncodeAndRespond(w, r)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		hp := server.HumanPayload{T: types.Bool, Bool: true}
		hp.EncodeAndRespond(w, r)
	}
}

// Cleanup returns an HTTP handlerfunc that releases the hardware
func Cleanup(l Lifecycler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := l.Cleanup()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

// ErrorString returns an HTTP handlerfunc that translates a driver status
// code from json {'int': code} to its text as json {'str': text}
func ErrorString(t ErrorTranslator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input := server.IntT{}
		err := json.NewDecoder(r.Body).Decode(&input)
		defer r.Body.Close()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		hp := server.HumanPayload{T: types.String, Str: t.TranslateError(openlayers.Status(input.Int))}
		hp.EncodeAndRespond(w, r)
	}
}

// Board returns an HTTP handlerfunc that reports the held board's
// display strings
func Board(i Introspector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		err := json.NewEncoder(w).Encode(i.Board())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

// HTTPDAC wraps a DAC satisfying any combination of the interfaces in this
// package with an HTTP route table
type HTTPDAC struct {
	d DAC

	RouteTable server.RouteTable
}

// NewHTTPDAC sets up an HTTP interface to a DAC.  Routes beyond basic
// output are bound based on which interfaces the concrete device satisfies.
func NewHTTPDAC(d DAC) HTTPDAC {
	w := HTTPDAC{d: d}
	rt := server.RouteTable{}
	rt[pat.Post("/output")] = SetVoltage(d)
	if l, ok := d.(Lifecycler); ok {
		rt[pat.Post("/initialize")] = Initialize(l)
		rt[pat.Post("/cleanup")] = Cleanup(l)
	}
	if t, ok := d.(ErrorTranslator); ok {
		rt[pat.Get("/error-string")] = ErrorString(t)
	}
	if i, ok := d.(Introspector); ok {
		rt[pat.Get("/board")] = Board(i)
		rt[pat.Get("/status")] = generichttp.GetInt(func() (int, error) {
			return int(i.Status()), nil
		})
		rt[pat.Get("/configured")] = generichttp.GetBool(func() (bool, error) {
			return i.Configured(), nil
		})
	}
	w.RouteTable = rt
	return w
}

// RT satisfies server.HTTPer
func (h HTTPDAC) RT() server.RouteTable {
	return h.RouteTable
}

// Package server contains misc server utilities.
package server

import (
	"encoding/json"
	"fmt"
	"go/types"
	"net/http"

	"goji.io"
	"goji.io/pat"
)

// FloatT is a struct holding a single float64 with json tag f64
type FloatT struct {
	F64 float64 `json:"f64"`
}

// IntT is a struct holding a single int with json tag int
type IntT struct {
	Int int `json:"int"`
}

// StrT is a struct holding a single string with json tag str
type StrT struct {
	Str string `json:"str"`
}

// BoolT is a struct holding a single bool with json tag bool
type BoolT struct {
	Bool bool `json:"bool"`
}

// HumanPayload is a single value of basic type with a type tag, so that a
// handler can reply with whichever kind its device produced.  Exactly one of
// the value fields is meaningful, selected by T.
type HumanPayload struct {
	// T is the type of the payload
	T types.BasicKind

	// Int holds the value if T is types.Int
	Int int

	// Float holds the value if T is types.Float64
	Float float64

	// Str holds the value if T is types.String
	Str string

	// Bool holds the value if T is types.Bool
	Bool bool
}

// EncodeAndRespond writes the payload to w as JSON with the appropriate
// single-field envelope and a Content-Type header
func (hp HumanPayload) EncodeAndRespond(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var err error
	switch hp.T {
	case types.Float64:
		err = json.NewEncoder(w).Encode(FloatT{F64: hp.Float})
	case types.Int:
		err = json.NewEncoder(w).Encode(IntT{Int: hp.Int})
	case types.String:
		err = json.NewEncoder(w).Encode(StrT{Str: hp.Str})
	case types.Bool:
		err = json.NewEncoder(w).Encode(BoolT{Bool: hp.Bool})
	default:
		err = fmt.Errorf("unsupported payload kind %v", hp.T)
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// RouteTable maps goji patterns to handler funcs
type RouteTable map[*pat.Pattern]http.HandlerFunc

// Endpoints lists the patterns in the table as strings
func (rt RouteTable) Endpoints() []string {
	routes := make([]string, 0, len(rt))
	for p := range rt {
		routes = append(routes, p.String())
	}
	return routes
}

// Bind attaches the table's routes to a goji mux
func (rt RouteTable) Bind(mux *goji.Mux) {
	for p, h := range rt {
		mux.HandleFunc(p, h)
	}
}

// HTTPer is an object which exposes a route table over HTTP
type HTTPer interface {
	RT() RouteTable
}

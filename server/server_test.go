package server_test

import (
	"go/types"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"goji.io/pat"

	"github.com/davenportlab/oldaq/server"
)

func TestHumanPayloadEncodings(t *testing.T) {
	testCases := []struct {
		hp   server.HumanPayload
		body string
	}{
		{server.HumanPayload{T: types.Float64, Float: 2.5}, `{"f64":2.5}`},
		{server.HumanPayload{T: types.Int, Int: -3}, `{"int":-3}`},
		{server.HumanPayload{T: types.String, Str: "DT9834"}, `{"str":"DT9834"}`},
		{server.HumanPayload{T: types.Bool, Bool: true}, `{"bool":true}`},
	}
	for _, testCase := range testCases {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		testCase.hp.EncodeAndRespond(w, r)
		got := strings.TrimSpace(w.Body.String())
		if got != testCase.body {
			t.Errorf("expected body %s, got %s", testCase.body, got)
		}
		if ct := w.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected a json content type, got %q", ct)
		}
	}
}

func TestHumanPayloadUnsupportedKind(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	server.HumanPayload{T: types.Complex128}.EncodeAndRespond(w, r)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 for an unsupported kind, got %d", w.Code)
	}
}

func TestRouteTableEndpoints(t *testing.T) {
	rt := server.RouteTable{
		pat.Post("/output"): func(w http.ResponseWriter, r *http.Request) {},
		pat.Get("/status"):  func(w http.ResponseWriter, r *http.Request) {},
	}
	endpoints := rt.Endpoints()
	if len(endpoints) != 2 {
		t.Errorf("expected 2 endpoints, got %d", len(endpoints))
	}
}

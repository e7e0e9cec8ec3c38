// Package locker provides an HTTP middleware which allows a device's routes
// to be locked, returning 423 (locked).  Device sessions in this module are
// not safe for concurrent use; a client takes the lock before a sequence of
// writes it needs exclusive access for.
package locker

import (
	"encoding/json"
	"go/types"
	"net/http"
	"strings"

	"goji.io/pat"

	"github.com/davenportlab/oldaq/server"
)

// Inject adds GET and POST /lock routes to an HTTPer, used to manipulate
// the locker remotely
func Inject(other server.HTTPer, l *Locker) {
	rt := other.RT()
	rt[pat.Get("/lock")] = l.HTTPGet
	rt[pat.Post("/lock")] = l.HTTPSet
}

// Locker behaves like a sync.Mutex without the blocking, and holds a list
// of path fragments its Check middleware does not protect
type Locker struct {
	isLocked bool

	// DoNotProtect is a list of path fragments the lock does not apply to
	DoNotProtect []string
}

// New returns a new Locker with DoNotProtect prepopulated with "lock",
// so that a locked device can still be unlocked
func New() *Locker {
	return &Locker{DoNotProtect: []string{"lock"}}
}

// Lock the locker
func (l *Locker) Lock() {
	l.isLocked = true
}

// Unlock the locker
func (l *Locker) Unlock() {
	l.isLocked = false
}

// Locked returns true if the locker is locked
func (l *Locker) Locked() bool {
	return l.isLocked
}

// Check is an HTTP middleware that returns http.StatusLocked for protected
// paths while the locker is locked, otherwise passes down the line
func (l *Locker) Check(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if l.Locked() && l.protects(r.URL.Path) {
			w.WriteHeader(http.StatusLocked)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *Locker) protects(path string) bool {
	for _, str := range l.DoNotProtect {
		if strings.Contains(path, str) {
			return false
		}
	}
	return true
}

// HTTPSet calls Lock or Unlock based on json:bool on the request body
func (l *Locker) HTTPSet(w http.ResponseWriter, r *http.Request) {
	b := server.BoolT{}
	err := json.NewDecoder(r.Body).Decode(&b)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if b.Bool {
		l.Lock()
	} else {
		l.Unlock()
	}
	w.WriteHeader(http.StatusOK)
}

// HTTPGet returns Locked() over HTTP as JSON
func (l *Locker) HTTPGet(w http.ResponseWriter, r *http.Request) {
	hp := server.HumanPayload{T: types.Bool, Bool: l.Locked()}
	hp.EncodeAndRespond(w, r)
}

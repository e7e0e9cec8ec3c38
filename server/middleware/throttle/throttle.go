// Package throttle provides an HTTP middleware which rate-limits requests,
// returning 429 when the limit is exceeded.  DAC writes are short hardware
// transactions, but the driver misbehaves when hammered; the throttle keeps
// chatty clients from glitching it.
package throttle

import (
	"net/http"

	"golang.org/x/time/rate"
)

// Throttle bounds the rate at which requests pass through it
type Throttle struct {
	limiter *rate.Limiter
}

// New returns a Throttle admitting up to perSecond requests per second with
// the given burst size
func New(perSecond float64, burst int) *Throttle {
	return &Throttle{limiter: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

// Check is an HTTP middleware that bounces requests over the rate limit
// with http.StatusTooManyRequests, otherwise passes down the line
func (t *Throttle) Check(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !t.limiter.Allow() {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

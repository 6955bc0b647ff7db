// Package session models the three-valued authentication state of a request:
// unknown (not yet resolvable), absent (resolved, no identity) and present.
// The distinction keeps guarded pages from redirecting before the state is
// actually known.
package session

import (
	"context"

	"carmarket/internal/models"
)

// State is the resolution state of the current session.
type State int

const (
	// StateUnknown means the session could not be resolved yet, e.g. the
	// revocation check hit a transient storage error.
	StateUnknown State = iota
	// StateAbsent means resolution completed and no identity is signed in.
	StateAbsent
	// StatePresent means a valid identity is signed in.
	StatePresent
)

// Resolution is the outcome of resolving a request's session. Session is
// non-nil only when State is StatePresent.
type Resolution struct {
	State   State
	Session *models.Session
}

type contextKey string

const resolutionKey contextKey = "session_resolution"

// WithResolution stores a resolution in the context. The resolving
// middleware is the single writer; everything downstream only reads.
func WithResolution(ctx context.Context, res Resolution) context.Context {
	return context.WithValue(ctx, resolutionKey, res)
}

// FromContext returns the resolution stored in the context, or an
// unknown-state resolution when none was stored.
func FromContext(ctx context.Context) Resolution {
	res, ok := ctx.Value(resolutionKey).(Resolution)
	if !ok {
		return Resolution{State: StateUnknown}
	}
	return res
}

// Current returns the signed-in session from the context, or nil.
func Current(ctx context.Context) *models.Session {
	res := FromContext(ctx)
	if res.State != StatePresent {
		return nil
	}
	return res.Session
}

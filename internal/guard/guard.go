// Package guard gates entry to restricted views by required role
// membership. The decision is a pure function of a session snapshot, so it
// can be evaluated (and tested) without any rendering machinery.
package guard

import (
	"github.com/apotekhub/storefront/internal/models"
	"github.com/apotekhub/storefront/internal/session"
)

// Decision is the outcome of a guard check.
type Decision int

const (
	Allow Decision = iota
	// DenyRedirect sends the user to the login view.
	DenyRedirect
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// Check evaluates entry to a view requiring any of the given roles.
// Matching is exact set intersection: Allow when the authenticated identity
// carries at least one required role. Anonymous sessions and role
// mismatches deny. A still-loading session denies as well; callers are
// expected to hold rendering at the root until initialization finishes, so
// the guard never normally sees that state.
//
// An empty required set allows by convention. No restricted view declares
// one; the convention only makes the degenerate case harmless.
func Check(s session.Snapshot, required ...models.RoleName) Decision {
	if len(required) == 0 {
		return Allow
	}
	if s.State != session.StateAuthenticated || s.Identity == nil {
		return DenyRedirect
	}
	for _, role := range required {
		if s.Identity.HasRole(role) {
			return Allow
		}
	}
	return DenyRedirect
}

package authz

import "github.com/ahmedmubarak14/poconfirm/internal/domain/model"

// TrustLevel tells the engine whether a write originates from a trusted
// system routine or from a direct end-user session.
type TrustLevel int

const (
	TrustUser TrustLevel = iota
	TrustSystem
)

// CallerContext identifies the acting principal for one mutation attempt.
// It is threaded explicitly through every authorization check; there is no
// ambient session state. Role must be looked up from the store at evaluation
// time, never taken from a cached token claim.
type CallerContext struct {
	PrincipalID int64
	Role        model.Role
	Trust       TrustLevel
}

// Anonymous reports whether no authenticated principal is attached, which is
// the case for backend-initiated writes lacking a user session.
func (c CallerContext) Anonymous() bool {
	return c.PrincipalID == 0
}

// SystemContext builds a caller for trusted system routines.
func SystemContext() CallerContext {
	return CallerContext{Trust: TrustSystem}
}

// Decision is the outcome of an authorization check.
type Decision struct {
	Allowed bool
	Reason  string
}

// Allow builds an allowing decision.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny builds a denying decision with a reason for the audit trail.
func Deny(reason string) Decision {
	return Decision{Reason: reason}
}

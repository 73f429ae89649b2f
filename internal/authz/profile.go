package authz

import (
	"time"

	"github.com/ahmedmubarak14/poconfirm/internal/domain/model"
)

// Column names used in profile update deltas.
const (
	ColUserRole        = "role"
	ColUserVerified    = "verified"
	ColUserStatus      = "status"
	ColUserKYCStatus   = "kyc_status"
	ColUserPublicID    = "public_id"
	ColUserDateJoined  = "date_joined"
	ColUserCreditLimit = "credit_limit"
)

// AuthorizeProfileUpdate decides whether caller may apply the proposed
// profile state on top of old. It mirrors the BEFORE UPDATE guard:
// trusted system writes pass, anonymous backend writes pass, admins pass,
// and everyone else is denied any change to a protected field. Financial
// counters are not on the protected list; trusted routines are the intended
// writers for them.
func AuthorizeProfileUpdate(caller CallerContext, old, new model.User) Decision {
	if caller.Trust == TrustSystem {
		return Allow()
	}
	if caller.Anonymous() {
		return Allow()
	}
	if caller.Role == model.RoleAdmin {
		return Allow()
	}
	if cols := ProtectedProfileDelta(old, new); len(cols) > 0 {
		return Deny("column " + cols[0] + " is protected")
	}
	return Allow()
}

// ProtectedProfileDelta lists protected columns whose values differ between
// the old and proposed row states.
func ProtectedProfileDelta(old, new model.User) []string {
	var changed []string
	if old.Role != new.Role {
		changed = append(changed, ColUserRole)
	}
	if old.Verified != new.Verified {
		changed = append(changed, ColUserVerified)
	}
	if old.Status != new.Status {
		changed = append(changed, ColUserStatus)
	}
	if old.KYCStatus != new.KYCStatus {
		changed = append(changed, ColUserKYCStatus)
	}
	if old.PublicID != new.PublicID {
		changed = append(changed, ColUserPublicID)
	}
	if !old.DateJoined.Equal(new.DateJoined) {
		changed = append(changed, ColUserDateJoined)
	}
	if old.CreditLimit != new.CreditLimit {
		changed = append(changed, ColUserCreditLimit)
	}
	return changed
}

func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

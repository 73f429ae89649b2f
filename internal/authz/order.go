package authz

import "github.com/ahmedmubarak14/poconfirm/internal/domain/model"

// Column names used in order update deltas.
const (
	ColOrderStatus                     = "status"
	ColOrderAmount                     = "amount"
	ColOrderSupplierID                 = "supplier_id"
	ColOrderClientID                   = "client_id"
	ColOrderPublicID                   = "public_id"
	ColNotTestOrderConfirmedAt         = "not_test_order_confirmed_at"
	ColPaymentTermsConfirmedAt         = "payment_terms_confirmed_at"
	ColClientPOConfirmationSubmittedAt = "client_po_confirmation_submitted_at"
	ColClientPOUploaded                = "client_po_uploaded"
	ColPaymentReference                = "payment_reference"
	ColPaymentNotes                    = "payment_notes"
	ColPaymentSubmittedAt              = "payment_submitted_at"
)

// clientWritableOrderColumns is the explicit allow-list for direct client
// updates. Everything else, status included, only moves through trusted
// system paths.
var clientWritableOrderColumns = map[string]bool{
	ColNotTestOrderConfirmedAt:         true,
	ColPaymentTermsConfirmedAt:         true,
	ColClientPOConfirmationSubmittedAt: true,
	ColClientPOUploaded:                true,
	ColPaymentReference:                true,
	ColPaymentNotes:                    true,
	ColPaymentSubmittedAt:              true,
}

// AuthorizeOrderInsert decides whether caller may insert the proposed order
// row. Mirrors the store's INSERT policy: the new row must belong to the
// caller and the caller must hold the CLIENT role.
func AuthorizeOrderInsert(caller CallerContext, row model.Order) Decision {
	if caller.Trust == TrustSystem {
		return Allow()
	}
	if caller.PrincipalID != row.ClientID {
		return Deny("order owner must match acting principal")
	}
	if caller.Role != model.RoleClient {
		return Deny("only clients may create orders")
	}
	return Allow()
}

// AuthorizeOrderUpdate decides whether caller may apply the proposed row
// state on top of current. The current row must be read fresh, under lock,
// in the same transaction that carries the update; evaluating against a
// snapshot captured earlier in the transaction reintroduces a race with
// concurrent admin-side status transitions.
func AuthorizeOrderUpdate(caller CallerContext, current, proposed model.Order) Decision {
	if caller.Trust == TrustSystem {
		return Allow()
	}
	if caller.PrincipalID != current.ClientID {
		return Deny("order does not belong to acting principal")
	}
	if proposed.Status != current.Status {
		return Deny("status is not client-writable")
	}
	for _, col := range OrderDelta(current, proposed) {
		if !clientWritableOrderColumns[col] {
			return Deny("column " + col + " is not client-writable")
		}
	}
	return Allow()
}

// OrderDelta lists the columns whose values differ between two row states,
// the way a row trigger sees OLD and NEW.
func OrderDelta(old, new model.Order) []string {
	var changed []string
	if old.Status != new.Status {
		changed = append(changed, ColOrderStatus)
	}
	if old.Amount != new.Amount {
		changed = append(changed, ColOrderAmount)
	}
	if old.SupplierID != new.SupplierID {
		changed = append(changed, ColOrderSupplierID)
	}
	if old.ClientID != new.ClientID {
		changed = append(changed, ColOrderClientID)
	}
	if old.PublicID != new.PublicID {
		changed = append(changed, ColOrderPublicID)
	}
	if !timePtrEqual(old.NotTestOrderConfirmedAt, new.NotTestOrderConfirmedAt) {
		changed = append(changed, ColNotTestOrderConfirmedAt)
	}
	if !timePtrEqual(old.PaymentTermsConfirmedAt, new.PaymentTermsConfirmedAt) {
		changed = append(changed, ColPaymentTermsConfirmedAt)
	}
	if !timePtrEqual(old.ClientPOConfirmationSubmittedAt, new.ClientPOConfirmationSubmittedAt) {
		changed = append(changed, ColClientPOConfirmationSubmittedAt)
	}
	if old.ClientPOUploaded != new.ClientPOUploaded {
		changed = append(changed, ColClientPOUploaded)
	}
	if old.PaymentReference != new.PaymentReference {
		changed = append(changed, ColPaymentReference)
	}
	if old.PaymentNotes != new.PaymentNotes {
		changed = append(changed, ColPaymentNotes)
	}
	if !timePtrEqual(old.PaymentSubmittedAt, new.PaymentSubmittedAt) {
		changed = append(changed, ColPaymentSubmittedAt)
	}
	return changed
}

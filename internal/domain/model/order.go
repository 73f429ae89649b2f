package model

import "time"

// OrderStatus describes order lifecycle.
type OrderStatus string

const (
	OrderStatusDraft                     OrderStatus = "DRAFT"
	OrderStatusPendingClientConfirmation OrderStatus = "PENDING_CLIENT_CONFIRMATION"
	OrderStatusPendingAdminConfirmation  OrderStatus = "PENDING_ADMIN_CONFIRMATION"
	OrderStatusConfirmed                 OrderStatus = "CONFIRMED"
	OrderStatusRejected                  OrderStatus = "REJECTED"
)

// Order describes one purchase transaction between a client and the platform.
type Order struct {
	ID         int64
	PublicID   string
	ClientID   int64
	SupplierID int64
	Status     OrderStatus
	Amount     float64

	NotTestOrderConfirmedAt         *time.Time
	PaymentTermsConfirmedAt         *time.Time
	ClientPOConfirmationSubmittedAt *time.Time
	ClientPOUploaded                bool

	PaymentReference   string
	PaymentNotes       string
	PaymentSubmittedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ConfirmationSubmitted reports whether the client already completed the
// PO confirmation step: the overall submission timestamp is set, or both
// individual confirmations were recorded.
func (o Order) ConfirmationSubmitted() bool {
	if o.ClientPOConfirmationSubmittedAt != nil {
		return true
	}
	return o.NotTestOrderConfirmedAt != nil && o.PaymentTermsConfirmedAt != nil
}

// ConfirmationState is the client-visible PO confirmation workflow state,
// derived from persisted order fields.
type ConfirmationState string

const (
	ConfirmationStateUnconfirmed ConfirmationState = "UNCONFIRMED"
	ConfirmationStateSubmitted   ConfirmationState = "SUBMITTED"
)

// ConfirmationState derives the workflow state for this order.
func (o Order) ConfirmationState() ConfirmationState {
	if o.ConfirmationSubmitted() {
		return ConfirmationStateSubmitted
	}
	return ConfirmationStateUnconfirmed
}

// ConfirmationInput carries the two confirmation checkboxes and the upload
// flag from the client.
type ConfirmationInput struct {
	RealOrderConfirmed    bool
	PaymentTermsConfirmed bool
	POUploaded            bool
}

// OrderPatch carries column changes proposed by a caller. Nil fields stay
// untouched. Nullable timestamps can only be set, never cleared, through a
// patch.
type OrderPatch struct {
	Status     *OrderStatus
	Amount     *float64
	SupplierID *int64

	NotTestOrderConfirmedAt         *time.Time
	PaymentTermsConfirmedAt         *time.Time
	ClientPOConfirmationSubmittedAt *time.Time
	ClientPOUploaded                *bool

	PaymentReference   *string
	PaymentNotes       *string
	PaymentSubmittedAt *time.Time
}

// Apply overlays the patch onto an order copy.
func (p OrderPatch) Apply(o *Order) {
	if p.Status != nil {
		o.Status = *p.Status
	}
	if p.Amount != nil {
		o.Amount = *p.Amount
	}
	if p.SupplierID != nil {
		o.SupplierID = *p.SupplierID
	}
	if p.NotTestOrderConfirmedAt != nil {
		o.NotTestOrderConfirmedAt = p.NotTestOrderConfirmedAt
	}
	if p.PaymentTermsConfirmedAt != nil {
		o.PaymentTermsConfirmedAt = p.PaymentTermsConfirmedAt
	}
	if p.ClientPOConfirmationSubmittedAt != nil {
		o.ClientPOConfirmationSubmittedAt = p.ClientPOConfirmationSubmittedAt
	}
	if p.ClientPOUploaded != nil {
		o.ClientPOUploaded = *p.ClientPOUploaded
	}
	if p.PaymentReference != nil {
		o.PaymentReference = *p.PaymentReference
	}
	if p.PaymentNotes != nil {
		o.PaymentNotes = *p.PaymentNotes
	}
	if p.PaymentSubmittedAt != nil {
		o.PaymentSubmittedAt = p.PaymentSubmittedAt
	}
}

package dto

import "time"

// OrderCreateRequest describes a new order payload.
type OrderCreateRequest struct {
	SupplierID int64   `json:"supplier_id"`
	Amount     float64 `json:"amount"`
}

// OrderUpdateRequest carries the client-editable payment fields. Absent
// fields stay untouched.
type OrderUpdateRequest struct {
	PaymentReference *string `json:"payment_reference,omitempty"`
	PaymentNotes     *string `json:"payment_notes,omitempty"`
	PaymentSubmitted bool    `json:"payment_submitted,omitempty"`
	ClientPOUploaded *bool   `json:"client_po_uploaded,omitempty"`
}

// OrderResponse mirrors an order row for display.
type OrderResponse struct {
	ID         int64   `json:"id"`
	PublicID   string  `json:"public_id"`
	SupplierID int64   `json:"supplier_id"`
	Status     string  `json:"status"`
	Amount     float64 `json:"amount"`

	NotTestOrderConfirmedAt         *time.Time `json:"not_test_order_confirmed_at,omitempty"`
	PaymentTermsConfirmedAt         *time.Time `json:"payment_terms_confirmed_at,omitempty"`
	ClientPOConfirmationSubmittedAt *time.Time `json:"client_po_confirmation_submitted_at,omitempty"`
	ClientPOUploaded                bool       `json:"client_po_uploaded"`

	PaymentReference   string     `json:"payment_reference,omitempty"`
	PaymentNotes       string     `json:"payment_notes,omitempty"`
	PaymentSubmittedAt *time.Time `json:"payment_submitted_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// ReviewRequest describes the admin review decision.
type ReviewRequest struct {
	Approve bool `json:"approve"`
}

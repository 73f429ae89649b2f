package dto

// ConfirmationRequest carries the two confirmation checkboxes and the
// upload flag.
type ConfirmationRequest struct {
	RealOrderConfirmed    bool `json:"real_order_confirmed"`
	PaymentTermsConfirmed bool `json:"payment_terms_confirmed"`
	ClientPOUploaded      bool `json:"client_po_uploaded"`
}

// ConfirmationResponse reports the workflow state for an order.
type ConfirmationResponse struct {
	State string        `json:"state"`
	Order OrderResponse `json:"order"`
}

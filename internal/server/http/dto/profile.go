package dto

import "time"

// ProfileResponse mirrors the caller-visible profile fields.
type ProfileResponse struct {
	ID         int64     `json:"id"`
	PublicID   string    `json:"public_id"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Verified   bool      `json:"verified"`
	Status     string    `json:"status"`
	KYCStatus  string    `json:"kyc_status"`
	DateJoined time.Time `json:"date_joined"`

	CreditLimit    float64 `json:"credit_limit"`
	CreditUsed     float64 `json:"credit_used"`
	CurrentBalance float64 `json:"current_balance"`
	Rating         float64 `json:"rating"`

	DisplayName string `json:"display_name,omitempty"`
	Phone       string `json:"phone,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
}

// ProfileUpdateRequest carries the self-service editable fields. Absent
// fields stay untouched.
type ProfileUpdateRequest struct {
	DisplayName *string `json:"display_name,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	CompanyName *string `json:"company_name,omitempty"`
}

// AdminUserUpdateRequest carries the administrator-editable fields,
// protected ones included.
type AdminUserUpdateRequest struct {
	Role        *string  `json:"role,omitempty"`
	Verified    *bool    `json:"verified,omitempty"`
	Status      *string  `json:"status,omitempty"`
	KYCStatus   *string  `json:"kyc_status,omitempty"`
	CreditLimit *float64 `json:"credit_limit,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
}

// CreditAdjustRequest describes a trusted financial counter adjustment.
type CreditAdjustRequest struct {
	CreditDelta  float64 `json:"credit_delta"`
	BalanceDelta float64 `json:"balance_delta"`
}

package model

import "time"

// Role enumerates account roles on the platform.
type Role string

const (
	RoleClient   Role = "CLIENT"
	RoleAdmin    Role = "ADMIN"
	RoleSupplier Role = "SUPPLIER"
)

// UserStatus describes account standing.
type UserStatus string

const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
)

// KYCStatus describes know-your-customer review state.
type KYCStatus string

const (
	KYCStatusPending  KYCStatus = "PENDING"
	KYCStatusApproved KYCStatus = "APPROVED"
	KYCStatusRejected KYCStatus = "REJECTED"
)

// User represents an account with role and financial state.
type User struct {
	ID           int64
	PublicID     string
	Email        string
	PasswordHash string
	Role         Role
	Verified     bool
	Status       UserStatus
	KYCStatus    KYCStatus
	DateJoined   time.Time

	CreditLimit    float64
	CreditUsed     float64
	CurrentBalance float64
	Rating         float64

	DisplayName string
	Phone       string
	CompanyName string
}

// UserPatch carries proposed profile changes. Nil fields stay untouched.
type UserPatch struct {
	Role       *Role
	Verified   *bool
	Status     *UserStatus
	KYCStatus  *KYCStatus
	PublicID   *string
	DateJoined *time.Time

	CreditLimit    *float64
	CreditUsed     *float64
	CurrentBalance *float64
	Rating         *float64

	DisplayName *string
	Phone       *string
	CompanyName *string
}

// Apply overlays the patch onto a user copy.
func (p UserPatch) Apply(u *User) {
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Verified != nil {
		u.Verified = *p.Verified
	}
	if p.Status != nil {
		u.Status = *p.Status
	}
	if p.KYCStatus != nil {
		u.KYCStatus = *p.KYCStatus
	}
	if p.PublicID != nil {
		u.PublicID = *p.PublicID
	}
	if p.DateJoined != nil {
		u.DateJoined = *p.DateJoined
	}
	if p.CreditLimit != nil {
		u.CreditLimit = *p.CreditLimit
	}
	if p.CreditUsed != nil {
		u.CreditUsed = *p.CreditUsed
	}
	if p.CurrentBalance != nil {
		u.CurrentBalance = *p.CurrentBalance
	}
	if p.Rating != nil {
		u.Rating = *p.Rating
	}
	if p.DisplayName != nil {
		u.DisplayName = *p.DisplayName
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.CompanyName != nil {
		u.CompanyName = *p.CompanyName
	}
}

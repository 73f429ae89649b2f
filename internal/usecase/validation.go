package usecase

import "strings"

// ValidateEmail performs a light structural check: one @, non-empty local
// part, and a dot somewhere in the domain.
func ValidateEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	if strings.Contains(domain, "@") {
		return false
	}
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}

// ValidateAmount checks that an order amount is positive and finite.
func ValidateAmount(amount float64) bool {
	return amount > 0 && amount == amount && amount <= 1e12
}

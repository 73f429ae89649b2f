package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ahmedmubarak14/poconfirm/internal/domain/model"
	"github.com/ahmedmubarak14/poconfirm/internal/server/http/dto"
	"github.com/ahmedmubarak14/poconfirm/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated principal identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:                              order.ID,
		PublicID:                        order.PublicID,
		SupplierID:                      order.SupplierID,
		Status:                          string(order.Status),
		Amount:                          order.Amount,
		NotTestOrderConfirmedAt:         order.NotTestOrderConfirmedAt,
		PaymentTermsConfirmedAt:         order.PaymentTermsConfirmedAt,
		ClientPOConfirmationSubmittedAt: order.ClientPOConfirmationSubmittedAt,
		ClientPOUploaded:                order.ClientPOUploaded,
		PaymentReference:                order.PaymentReference,
		PaymentNotes:                    order.PaymentNotes,
		PaymentSubmittedAt:              order.PaymentSubmittedAt,
		CreatedAt:                       order.CreatedAt,
	}
}

func toProfileResponse(user model.User) dto.ProfileResponse {
	return dto.ProfileResponse{
		ID:             user.ID,
		PublicID:       user.PublicID,
		Email:          user.Email,
		Role:           string(user.Role),
		Verified:       user.Verified,
		Status:         string(user.Status),
		KYCStatus:      string(user.KYCStatus),
		DateJoined:     user.DateJoined,
		CreditLimit:    user.CreditLimit,
		CreditUsed:     user.CreditUsed,
		CurrentBalance: user.CurrentBalance,
		Rating:         user.Rating,
		DisplayName:    user.DisplayName,
		Phone:          user.Phone,
		CompanyName:    user.CompanyName,
	}
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/ahmedmubarak14/poconfirm/internal/domain/errors"
	"github.com/ahmedmubarak14/poconfirm/internal/domain/model"
	"github.com/ahmedmubarak14/poconfirm/internal/server/http/dto"
)

// ConfirmationHandler exposes the PO confirmation workflow.
type ConfirmationHandler struct {
	facade ConfirmationFacade
}

// NewConfirmationHandler creates ConfirmationHandler instance.
func NewConfirmationHandler(facade ConfirmationFacade) *ConfirmationHandler {
	return &ConfirmationHandler{facade: facade}
}

// Load handles GET /api/user/orders/:id/confirmation. An already
// submitted order reports SUBMITTED so the client resumes instead of
// re-confirming.
func (h *ConfirmationHandler) Load(c *gin.Context) {
	orderID, err := orderIDParam(c)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	state, order, err := h.facade.LoadConfirmation(c.Request.Context(), CurrentUserID(c), orderID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.ConfirmationResponse{
		State: string(state),
		Order: toOrderResponse(*order),
	})
}

// Submit handles POST /api/user/orders/:id/confirmation.
func (h *ConfirmationHandler) Submit(c *gin.Context) {
	orderID, err := orderIDParam(c)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.ConfirmationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	input := model.ConfirmationInput{
		RealOrderConfirmed:    req.RealOrderConfirmed,
		PaymentTermsConfirmed: req.PaymentTermsConfirmed,
		POUploaded:            req.ClientPOUploaded,
	}
	order, err := h.facade.SubmitConfirmation(c.Request.Context(), CurrentUserID(c), orderID, input)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrConfirmationIncomplete):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrAuthorizationDenied):
			c.Status(http.StatusForbidden)
		case errors.Is(err, domainErrors.ErrInvalidStatus):
			c.Status(http.StatusConflict)
		case errors.Is(err, domainErrors.ErrSubmitInFlight):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.ConfirmationResponse{
		State: string(order.ConfirmationState()),
		Order: toOrderResponse(*order),
	})
}

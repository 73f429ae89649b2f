package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/ahmedmubarak14/poconfirm/internal/domain/errors"
	"github.com/ahmedmubarak14/poconfirm/internal/domain/model"
	"github.com/ahmedmubarak14/poconfirm/internal/server/http/dto"
)

// OrderHandler processes order CRUD requests for the authenticated client.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler creates OrderHandler instance.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/user/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.OrderCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	userID := CurrentUserID(c)
	order, err := h.facade.CreateOrder(c.Request.Context(), userID, req.SupplierID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrAuthorizationDenied):
			c.Status(http.StatusForbidden)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

// List handles GET /api/user/orders.
func (h *OrderHandler) List(c *gin.Context) {
	userID := CurrentUserID(c)
	orders, err := h.facade.Orders(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	resp := make([]dto.OrderResponse, 0, len(orders))
	for _, order := range orders {
		resp = append(resp, toOrderResponse(order))
	}
	c.JSON(http.StatusOK, resp)
}

// Get handles GET /api/user/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, err := orderIDParam(c)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.Order(c.Request.Context(), CurrentUserID(c), orderID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Update handles PATCH /api/user/orders/:id. Only payment and upload
// fields are accepted; everything else is rejected by the write policy.
func (h *OrderHandler) Update(c *gin.Context) {
	orderID, err := orderIDParam(c)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.OrderUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	patch := model.OrderPatch{
		PaymentReference: req.PaymentReference,
		PaymentNotes:     req.PaymentNotes,
		ClientPOUploaded: req.ClientPOUploaded,
	}
	if req.PaymentSubmitted {
		now := time.Now()
		patch.PaymentSubmittedAt = &now
	}
	order, err := h.facade.UpdateOrder(c.Request.Context(), CurrentUserID(c), orderID, patch)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrAuthorizationDenied):
			c.Status(http.StatusForbidden)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(*order))
}

func orderIDParam(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

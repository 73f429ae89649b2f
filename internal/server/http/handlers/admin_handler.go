package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/ahmedmubarak14/poconfirm/internal/domain/errors"
	"github.com/ahmedmubarak14/poconfirm/internal/domain/model"
	"github.com/ahmedmubarak14/poconfirm/internal/server/http/dto"
)

// AdminHandler serves administrator-only operations: order review and
// trusted profile mutations.
type AdminHandler struct {
	facade AdminFacade
}

// NewAdminHandler creates AdminHandler instance.
func NewAdminHandler(facade AdminFacade) *AdminHandler {
	return &AdminHandler{facade: facade}
}

// ReviewOrder handles POST /api/admin/orders/:id/review.
func (h *AdminHandler) ReviewOrder(c *gin.Context) {
	orderID, err := orderIDParam(c)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	err = h.facade.ReviewOrder(c.Request.Context(), CurrentUserID(c), orderID, req.Approve)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrAuthorizationDenied):
			c.Status(http.StatusForbidden)
		case errors.Is(err, domainErrors.ErrInvalidStatus):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusOK)
}

// GetUser handles GET /api/admin/users/:id.
func (h *AdminHandler) GetUser(c *gin.Context) {
	targetID, err := userIDParam(c)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	user, err := h.facade.Profile(c.Request.Context(), targetID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, toProfileResponse(*user))
}

// UpdateUser handles PATCH /api/admin/users/:id. Administrators may set
// protected columns; the store still re-reads the caller's role before
// letting the change through.
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	targetID, err := userIDParam(c)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.AdminUserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	patch := model.UserPatch{
		Verified:    req.Verified,
		CreditLimit: req.CreditLimit,
		Rating:      req.Rating,
	}
	if req.Role != nil {
		role := model.Role(*req.Role)
		patch.Role = &role
	}
	if req.Status != nil {
		status := model.UserStatus(*req.Status)
		patch.Status = &status
	}
	if req.KYCStatus != nil {
		kyc := model.KYCStatus(*req.KYCStatus)
		patch.KYCStatus = &kyc
	}

	user, err := h.facade.UpdateProfile(c.Request.Context(), CurrentUserID(c), targetID, patch)
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

	c.JSON(http.StatusOK, toProfileResponse(*user))
}

// AdjustCredit handles POST /api/admin/users/:id/credit.
func (h *AdminHandler) AdjustCredit(c *gin.Context) {
	targetID, err := userIDParam(c)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.CreditAdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	err = h.facade.AdjustCredit(c.Request.Context(), targetID, req.CreditDelta, req.BalanceDelta)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusOK)
}

func userIDParam(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/ahmedmubarak14/poconfirm/internal/domain/errors"
	"github.com/ahmedmubarak14/poconfirm/internal/domain/model"
	"github.com/ahmedmubarak14/poconfirm/internal/server/http/dto"
)

// ProfileHandler serves the caller's own profile.
type ProfileHandler struct {
	facade ProfileFacade
}

// NewProfileHandler creates ProfileHandler instance.
func NewProfileHandler(facade ProfileFacade) *ProfileHandler {
	return &ProfileHandler{facade: facade}
}

// Get handles GET /api/user/profile.
func (h *ProfileHandler) Get(c *gin.Context) {
	user, err := h.facade.Profile(c.Request.Context(), CurrentUserID(c))
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

// Update handles PATCH /api/user/profile. Only display fields are
// accepted here; protected columns never leave this DTO.
func (h *ProfileHandler) Update(c *gin.Context) {
	var req dto.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	userID := CurrentUserID(c)
	patch := model.UserPatch{
		DisplayName: req.DisplayName,
		Phone:       req.Phone,
		CompanyName: req.CompanyName,
	}
	user, err := h.facade.UpdateProfile(c.Request.Context(), userID, userID, patch)
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

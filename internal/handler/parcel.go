package handler

import (
	"net/http"
	"strings"

	"zapshift/internal/middleware"
	"zapshift/internal/model"
	"zapshift/internal/repository"
	"zapshift/internal/service"

	"github.com/gin-gonic/gin"
)

const maxTitleLength = 200

// ParcelHandler handles parcel-related HTTP requests
type ParcelHandler struct {
	parcels *service.ParcelService
}

func NewParcelHandler(parcels *service.ParcelService) *ParcelHandler {
	return &ParcelHandler{parcels: parcels}
}

// Create handles POST /parcels
func (h *ParcelHandler) Create(c *gin.Context) {
	var req model.CreateParcelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Type = strings.TrimSpace(req.Type)
	req.SenderDistrict = strings.TrimSpace(req.SenderDistrict)
	req.ReceiverDistrict = strings.TrimSpace(req.ReceiverDistrict)
	if req.Title == "" || req.Type == "" {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Missing required fields: title, type", ""))
		return
	}
	if len(req.Title) > maxTitleLength {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Title exceeds maximum length", ""))
		return
	}
	if req.SenderDistrict == "" || req.ReceiverDistrict == "" {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Missing required fields: senderDistrict, receiverDistrict", ""))
		return
	}

	ac, _ := middleware.GetAuth(c)
	parcel, err := h.parcels.Create(c.Request.Context(), &req, ac.Email)
	if err != nil {
		respondError(c, err, "Failed to add parcel")
		return
	}
	c.JSON(http.StatusCreated, model.NewSuccessResponse("Parcel added", parcel))
}

// List handles GET /parcels with optional email/status/riderEmail filters.
// Non-admins only see parcels they sent or are assigned to ride.
func (h *ParcelHandler) List(c *gin.Context) {
	filter := repository.ParcelFilter{
		CreatedBy:          strings.TrimSpace(c.Query("email")),
		DeliveryStatus:     strings.TrimSpace(c.Query("status")),
		AssignedRiderEmail: strings.TrimSpace(c.Query("riderEmail")),
	}

	ac, _ := middleware.GetAuth(c)
	if !ac.IsAdmin() {
		switch {
		case filter.AssignedRiderEmail != "":
			if !strings.EqualFold(filter.AssignedRiderEmail, ac.Email) {
				c.JSON(http.StatusForbidden, model.NewErrorResponse("Cannot list another rider's parcels", ""))
				return
			}
		case filter.CreatedBy != "":
			if !strings.EqualFold(filter.CreatedBy, ac.Email) {
				c.JSON(http.StatusForbidden, model.NewErrorResponse("Cannot list another user's parcels", ""))
				return
			}
		default:
			filter.CreatedBy = ac.Email
		}
	}

	parcels, err := h.parcels.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Failed to get parcels")
		return
	}
	c.JSON(http.StatusOK, parcels)
}

// Get handles GET /parcels/:id
func (h *ParcelHandler) Get(c *gin.Context) {
	parcel, err := h.parcels.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Parcel not found")
		return
	}
	c.JSON(http.StatusOK, parcel)
}

// Delete handles DELETE /parcels/:id
func (h *ParcelHandler) Delete(c *gin.Context) {
	ac, _ := middleware.GetAuth(c)
	if err := h.parcels.Delete(c.Request.Context(), c.Param("id"), ac.Email, ac.IsAdmin()); err != nil {
		respondError(c, err, "Failed to delete parcel")
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Parcel deleted", nil))
}

// AssignRider handles PATCH /parcels/:id/assign-rider (admin)
func (h *ParcelHandler) AssignRider(c *gin.Context) {
	var req model.AssignRiderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
		return
	}
	if req.RiderID == "" {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("riderId is required", ""))
		return
	}

	parcel, err := h.parcels.AssignRider(c.Request.Context(), c.Param("id"), req.RiderID)
	if err != nil {
		respondError(c, err, "Failed to assign rider")
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Rider assigned", parcel))
}

// UpdateStatus handles PATCH /parcels/:id/status (rider)
func (h *ParcelHandler) UpdateStatus(c *gin.Context) {
	var req model.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
		return
	}
	if req.Status == "" {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("status is required", ""))
		return
	}

	ac, _ := middleware.GetAuth(c)
	parcel, err := h.parcels.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status, ac.Email)
	if err != nil {
		respondError(c, err, "Failed to update status")
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Status updated", parcel))
}

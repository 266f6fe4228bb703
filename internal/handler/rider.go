package handler

import (
	"net/http"
	"strings"

	"zapshift/internal/middleware"
	"zapshift/internal/model"
	"zapshift/internal/service"
	"zapshift/pkg/util"

	"github.com/gin-gonic/gin"
)

// RiderHandler handles rider lifecycle, earnings and cashout requests
type RiderHandler struct {
	riders   *service.RiderService
	earnings *service.EarningsService
	cashout  *service.CashoutService
}

func NewRiderHandler(riders *service.RiderService, earnings *service.EarningsService, cashout *service.CashoutService) *RiderHandler {
	return &RiderHandler{riders: riders, earnings: earnings, cashout: cashout}
}

// Apply handles POST /riders
func (h *RiderHandler) Apply(c *gin.Context) {
	var req model.ApplyRiderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
		return
	}

	ac, _ := middleware.GetAuth(c)
	if req.Email == "" {
		req.Email = ac.Email
	}
	req.Email = util.NormalizeEmail(req.Email)
	if err := util.ValidateEmail(req.Email); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
		return
	}
	if !ac.CanAccessEmail(req.Email) {
		c.JSON(http.StatusForbidden, model.NewErrorResponse("Cannot apply on behalf of another user", ""))
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("name is required", ""))
		return
	}

	rider, err := h.riders.Apply(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to submit application")
		return
	}
	c.JSON(http.StatusCreated, model.NewSuccessResponse("Application submitted", rider))
}

// Pending handles GET /riders/pending (admin)
func (h *RiderHandler) Pending(c *gin.Context) {
	riders, err := h.riders.Pending(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list pending riders")
		return
	}
	c.JSON(http.StatusOK, riders)
}

// Active handles GET /riders/active (admin)
func (h *RiderHandler) Active(c *gin.Context) {
	riders, err := h.riders.Approved(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list active riders")
		return
	}
	c.JSON(http.StatusOK, riders)
}

// Approve handles PATCH /riders/:id/approve (admin)
func (h *RiderHandler) Approve(c *gin.Context) {
	if err := h.riders.Approve(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to approve rider")
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Rider approved", nil))
}

// Cancel handles DELETE /riders/:id (admin)
func (h *RiderHandler) Cancel(c *gin.Context) {
	if err := h.riders.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to cancel application")
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Application cancelled", nil))
}

// Deactivate handles PATCH /riders/:id/deactivate (admin)
func (h *RiderHandler) Deactivate(c *gin.Context) {
	if err := h.riders.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to deactivate rider")
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Rider deactivated", nil))
}

// Earnings handles GET /riders/earnings (rider)
func (h *RiderHandler) Earnings(c *gin.Context) {
	ac, _ := middleware.GetAuth(c)
	summary, err := h.earnings.Summary(c.Request.Context(), ac.Email)
	if err != nil {
		respondError(c, err, "Failed to compute earnings")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// CompletedParcels handles GET /riders/completed-parcels (rider)
func (h *RiderHandler) CompletedParcels(c *gin.Context) {
	ac, _ := middleware.GetAuth(c)
	parcels, err := h.earnings.CompletedParcels(c.Request.Context(), ac.Email)
	if err != nil {
		respondError(c, err, "Failed to list completed parcels")
		return
	}
	c.JSON(http.StatusOK, parcels)
}

// Cashout handles POST /riders/cashout (rider)
func (h *RiderHandler) Cashout(c *gin.Context) {
	var req model.CashoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
		return
	}
	if req.ParcelID == "" {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("parcelId is required", ""))
		return
	}
	if req.Amount <= 0 {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("amount must be positive", ""))
		return
	}

	ac, _ := middleware.GetAuth(c)
	result, err := h.cashout.Cashout(c.Request.Context(), ac.Email, req.ParcelID, req.Amount)
	if err != nil {
		respondError(c, err, "Cashout failed")
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Cashout successful", result))
}

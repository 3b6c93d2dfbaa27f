package handler

import (
	"net/http"

	"garagedesk/internal/apierror"
	"garagedesk/internal/dto"
	"garagedesk/internal/middleware"
	"garagedesk/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PaymentsHandler struct{ svc service.PaymentService }

func NewPaymentsHandler(svc service.PaymentService) *PaymentsHandler {
	return &PaymentsHandler{svc: svc}
}

func (h *PaymentsHandler) Record(c *gin.Context) {
	var req dto.RecordPaymentRequest
	if !bindAndValidate(c, &req) {
		return
	}

	var createdBy *uuid.UUID
	if claims := middleware.GetClaims(c); claims != nil {
		if id, err := uuid.Parse(claims.UserID); err == nil {
			createdBy = &id
		}
	}

	resp, err := h.svc.Record(c.Request.Context(), createdBy, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PaymentsHandler) List(c *gin.Context) {
	var filter dto.PaymentFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Could not list payments"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PaymentsHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// PublicByPlate godoc
// @Summary      Public balance lookup by license plate
// @Description  Unauthenticated self-service endpoint: customers scan a link with their plate and get the outstanding balance plus a VietQR code. Cached in Redis for 60s. Rate limited at the router.
// @Tags         pay
// @Produce      json
// @Param        plate path string true "License plate"
// @Success      200 {object} dto.PublicPaymentResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/pay/{plate} [get]
func (h *PaymentsHandler) PublicByPlate(c *gin.Context) {
	plate := c.Param("plate")
	if plate == "" {
		c.JSON(http.StatusBadRequest, apierror.New("License plate required"))
		return
	}
	resp, err := h.svc.PublicByPlate(c.Request.Context(), plate)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Vehicle not found"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

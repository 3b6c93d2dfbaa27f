package handler

import (
	"net/http"

	"garagedesk/internal/apierror"
	"garagedesk/internal/dto"
	"garagedesk/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InvoicesHandler struct {
	svc      service.InvoiceService
	settings service.SettingsService
}

func NewInvoicesHandler(svc service.InvoiceService, settings service.SettingsService) *InvoicesHandler {
	return &InvoicesHandler{svc: svc, settings: settings}
}

// GetByOrder returns the invoice pipeline status for a repair order.
func (h *InvoicesHandler) GetByOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	resp, err := h.svc.GetByOrder(c.Request.Context(), orderID)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Invoice not found"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DownloadPDF streams the rendered invoice PDF.
func (h *InvoicesHandler) DownloadPDF(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	path, err := h.svc.PDFPath(c.Request.Context(), orderID)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.Header("Content-Type", "application/pdf")
	c.File(path)
}

// Retry re-enqueues a failed invoice.
func (h *InvoicesHandler) Retry(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	resp, err := h.svc.Retry(c.Request.Context(), orderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ─── Shop settings ───────────────────────────────────────────────────────────

func (h *InvoicesHandler) ListSettings(c *gin.Context) {
	resp, err := h.settings.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Could not load settings"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InvoicesHandler) SetSetting(c *gin.Context) {
	key := c.Param("key")
	var req dto.SettingRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.settings.Set(c.Request.Context(), key, req.Value)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

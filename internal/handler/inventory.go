package handler

import (
	"net/http"
	"strconv"

	"garagedesk/internal/apierror"
	"garagedesk/internal/dto"
	"garagedesk/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InventoryHandler covers spare parts, labor types, and stock movement history.
type InventoryHandler struct{ svc service.InventoryService }

func NewInventoryHandler(svc service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// ─── Spare parts ─────────────────────────────────────────────────────────────

func (h *InventoryHandler) CreatePart(c *gin.Context) {
	var req dto.CreateSparePartRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreatePart(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *InventoryHandler) ListParts(c *gin.Context) {
	var filter dto.SparePartFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListParts(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Could not list spare parts"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventoryHandler) GetPart(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	resp, err := h.svc.GetPart(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Spare part not found"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventoryHandler) UpdatePart(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.UpdateSparePartRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdatePart(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventoryHandler) DeactivatePart(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	if err := h.svc.DeactivatePart(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *InventoryHandler) ReactivatePart(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	if err := h.svc.ReactivatePart(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.AdjustStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AdjustStock(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventoryHandler) LowStock(c *gin.Context) {
	resp, err := h.svc.LowStock(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Could not load low stock list"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Movements returns the stock movement audit trail, optionally filtered by part.
func (h *InventoryHandler) Movements(c *gin.Context) {
	var partID *uuid.UUID
	if raw := c.Query("spare_part_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Invalid spare_part_id"))
			return
		}
		partID = &id
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	resp, err := h.svc.Movements(c.Request.Context(), partID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Could not load movements"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ─── Labor types ─────────────────────────────────────────────────────────────

func (h *InventoryHandler) CreateLabor(c *gin.Context) {
	var req dto.CreateLaborTypeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateLabor(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *InventoryHandler) ListLabor(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"
	resp, err := h.svc.ListLabor(c.Request.Context(), includeInactive)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Could not list labor types"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventoryHandler) UpdateLabor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.UpdateLaborTypeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateLabor(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventoryHandler) DeactivateLabor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	if err := h.svc.DeactivateLabor(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

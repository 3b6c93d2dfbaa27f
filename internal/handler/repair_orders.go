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

type RepairOrdersHandler struct{ svc service.RepairOrderService }

func NewRepairOrdersHandler(svc service.RepairOrderService) *RepairOrdersHandler {
	return &RepairOrdersHandler{svc: svc}
}

// Create godoc
// @Summary      Create a repair order
// @Description  Opens a new repair order for a vehicle. Starts in pending with a zero total.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateRepairOrderRequest true "Order details"
// @Success      201  {object} dto.RepairOrderResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/orders [post]
func (h *RepairOrdersHandler) Create(c *gin.Context) {
	var req dto.CreateRepairOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}

	var createdBy *uuid.UUID
	if claims := middleware.GetClaims(c); claims != nil {
		if id, err := uuid.Parse(claims.UserID); err == nil {
			createdBy = &id
		}
	}

	resp, err := h.svc.Create(c.Request.Context(), createdBy, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *RepairOrdersHandler) List(c *gin.Context) {
	var filter dto.RepairOrderFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Could not list repair orders"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Board serves the kanban view: open orders grouped by status column.
func (h *RepairOrdersHandler) Board(c *gin.Context) {
	resp, err := h.svc.Board(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Could not load board"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RepairOrdersHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Repair order not found"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RepairOrdersHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.UpdateRepairOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ChangeStatus godoc
// @Summary      Move an order between kanban columns
// @Description  Applies one status transition. Cancelling restores consumed stock; completing dispatches async invoice generation. Invalid transitions come back as 409 so the client can roll back its optimistic update.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                  true "Order UUID"
// @Param        body body dto.ChangeStatusRequest true "Target status"
// @Success      200  {object} dto.RepairOrderResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/orders/{id}/status [patch]
func (h *RepairOrdersHandler) ChangeStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.ChangeStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ChangeStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AddItem godoc
// @Summary      Add a part or labor line
// @Description  Adds one line to an open order. Part lines decrement stock and record a consumption movement in the same transaction.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                  true "Order UUID"
// @Param        body body dto.AddOrderItemRequest true "Line detail"
// @Success      200  {object} dto.RepairOrderResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/orders/{id}/items [post]
func (h *RepairOrdersHandler) AddItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.AddOrderItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AddItem(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RepairOrdersHandler) RemoveItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid item ID"))
		return
	}
	resp, err := h.svc.RemoveItem(c.Request.Context(), id, itemID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

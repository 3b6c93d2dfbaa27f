package handler

import (
	"net/http"

	"garagedesk/internal/apierror"
	"garagedesk/internal/dto"
	"garagedesk/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

func (h *ReportsHandler) Sales(c *gin.Context) {
	var r dto.ReportRange
	if err := c.ShouldBindQuery(&r); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if err := validate.Struct(r); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("from and to dates are required (YYYY-MM-DD)"))
		return
	}
	resp, err := h.svc.Sales(c.Request.Context(), r)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportsHandler) Inventory(c *gin.Context) {
	var r dto.ReportRange
	if err := c.ShouldBindQuery(&r); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if err := validate.Struct(r); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("from and to dates are required (YYYY-MM-DD)"))
		return
	}
	resp, err := h.svc.Inventory(c.Request.Context(), r)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

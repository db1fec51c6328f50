package transporter

import (
	"github.com/gin-gonic/gin"

	"freightrate/internal/app/domains/apimodel/request"
	"freightrate/internal/app/domains/apimodel/response"
	"freightrate/internal/app/pkg/ginx"
	"freightrate/internal/app/server/middlewares"
)

// AddTiedUp 批量录入协议承运商
// POST /api/transporter/addtiedupcompanies
func (h *TransporterHandler) AddTiedUp(c *gin.Context) {
	var req request.AddTiedUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	principal := middlewares.CurrentPrincipal(c)
	created, skipped, err := h.vendorService.AddTiedUpVendors(c.Request.Context(), principal.CustomerID, req.ToTiedUpInputs())
	if err != nil {
		_ = c.Error(err)
		return
	}

	ginx.Success(c, response.FromTiedUpResult(created, skipped))
}

// ListTiedUp 查询协议承运商
// GET /api/transporter/tiedupcompanies
func (h *TransporterHandler) ListTiedUp(c *gin.Context) {
	principal := middlewares.CurrentPrincipal(c)
	vendors, err := h.vendorService.ListTiedUp(c.Request.Context(), principal.CustomerID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ginx.Success(c, response.FromVendorEntities(vendors))
}

// Suggest 承运商名称联想
// GET /api/transporter/gettransporter?vendorName=
func (h *TransporterHandler) Suggest(c *gin.Context) {
	principal := middlewares.CurrentPrincipal(c)
	names, err := h.vendorService.Suggest(c.Request.Context(), principal.CustomerID, c.Query("vendorName"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	ginx.Success(c, response.SuggestResponse{Names: names})
}

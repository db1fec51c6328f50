package admin

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"freightrate/internal/app/domains/apimodel/request"
	"freightrate/internal/app/domains/apimodel/response"
	"freightrate/internal/app/pkg/ginx"
)

// AddPrice 设置公共承运商价格表
// POST /api/admin/addprice
func (h *AdminHandler) AddPrice(c *gin.Context) {
	var req request.AddPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	vendor, err := h.vendorService.SetPrice(c.Request.Context(), req.ToPriceInput())
	if err != nil {
		_ = c.Error(err)
		return
	}
	ginx.Success(c, response.FromVendorEntity(vendor))
}

// SetPlan 变更客户套餐
// PUT /api/admin/customers/:id/plan
func (h *AdminHandler) SetPlan(c *gin.Context) {
	customerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || customerID <= 0 {
		ginx.BadRequest(c, "invalid customer id")
		return
	}

	var req request.SetPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	customer, err := h.authService.SetPlan(c.Request.Context(), customerID, req.Plan)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ginx.Success(c, response.FromCustomerEntity(customer))
}

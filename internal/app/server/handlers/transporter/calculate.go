package transporter

import (
	"github.com/gin-gonic/gin"

	"freightrate/internal/app/domains/apimodel/request"
	"freightrate/internal/app/domains/apimodel/response"
	"freightrate/internal/app/pkg/errorx"
	"freightrate/internal/app/pkg/ginx"
	"freightrate/internal/app/server/middlewares"
)

// Calculate godoc
// @Summary      询价
// @Description  按协议承运商与公共承运商分别返回报价，免费套餐的公共承运商报价只显示总价
// @Tags         transporter
// @Accept       json
// @Produce      json
// @Param        request body request.CalculateRequest true "货件信息"
// @Success      200 {object} ginx.Response{data=response.CalculateResponse} "询价成功"
// @Failure      400 {object} ginx.Response "参数错误"
// @Failure      500 {object} ginx.Response "failed to calculate"
// @Security     BearerAuth
// @Router       /transporter/calculate [post]
func (h *TransporterHandler) Calculate(c *gin.Context) {
	var req request.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	shipment, err := req.ToShipmentEntity()
	if err != nil {
		_ = c.Error(errorx.Validation(err))
		return
	}

	principal := middlewares.CurrentPrincipal(c)
	result, err := h.quoteService.Calculate(c.Request.Context(), principal.CustomerID, shipment)
	if err != nil {
		_ = c.Error(err)
		return
	}

	ginx.Success(c, response.FromResultEntity(result))
}

// ListQuotes 最近的询价记录
// GET /api/transporter/quotes
func (h *TransporterHandler) ListQuotes(c *gin.Context) {
	principal := middlewares.CurrentPrincipal(c)
	records, err := h.quoteService.ListHistory(c.Request.Context(), principal.CustomerID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ginx.Success(c, response.FromRecordEntities(records))
}

package transporter

import (
	"freightrate/internal/app/domains/services/svquote"
	"freightrate/internal/app/domains/services/svvendor"
)

// TransporterHandler 客户侧询价与承运商 HTTP 处理器
type TransporterHandler struct {
	quoteService  *svquote.QuoteService
	vendorService *svvendor.VendorService
}

// NewTransporterHandler 创建处理器实例
func NewTransporterHandler(quoteService *svquote.QuoteService, vendorService *svvendor.VendorService) *TransporterHandler {
	return &TransporterHandler{
		quoteService:  quoteService,
		vendorService: vendorService,
	}
}

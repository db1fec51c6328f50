package domains

import (
	"freightrate/common/model"
	"freightrate/internal/sync/business/pincode"
	"freightrate/internal/sync/domains/common"
	"freightrate/internal/sync/domains/handlers/pincode/importer"
)

// HandlerMap 路由表（ActionType → Handler 构造函数）
type HandlerMap map[string]common.HandlerServProc

// NewHandlerMap 注册所有业务 Handler
func NewHandlerMap(pincodeImporter *pincode.Importer) HandlerMap {
	return HandlerMap{
		model.ActionTypePincodeImport: importer.NewFactory(pincodeImporter),
	}
}

package importer

import (
	"context"
	"encoding/json"
	"fmt"

	"freightrate/common/model"
	"freightrate/internal/sync/business/pincode"
	"freightrate/internal/sync/domains/common"
	"freightrate/internal/sync/domains/common/job"
	"freightrate/internal/sync/domains/common/response"
)

// ImportHandler 邮编表导入 Handler
type ImportHandler struct {
	ctx      context.Context
	meta     *job.Meta
	bizData  model.PincodeImportBusinessData
	importer *pincode.Importer
}

// NewFactory 返回绑定导入器的 Handler 构造函数
func NewFactory(importer *pincode.Importer) common.HandlerServProc {
	return func(ctx context.Context, meta *job.Meta, payload []byte) (common.HandlerServ, error) {
		var bizData model.PincodeImportBusinessData
		if err := json.Unmarshal(payload, &bizData); err != nil {
			return nil, fmt.Errorf("unmarshal business data failed: %w", err)
		}
		if bizData.ImportID == "" {
			return nil, fmt.Errorf("import_id is required")
		}

		return &ImportHandler{
			ctx:      ctx,
			meta:     meta,
			bizData:  bizData,
			importer: importer,
		}, nil
	}
}

// GetProcess 处理导入请求
func (h *ImportHandler) GetProcess() *response.Response {
	result := &response.ImportResult{}

	outcome, err := h.importer.Run(h.ctx, h.bizData.ImportID, h.bizData.VendorID)
	if outcome != nil {
		result.Imported = outcome.Imported
		result.Rejected = outcome.Rejected
		result.Errors = outcome.Errors
		if outcome.Skipped {
			result.Status = response.ImportResultSkipped
		}
	}

	resp := &response.Response{}
	resp.WrapResponse(result, h.meta, err)
	return resp
}

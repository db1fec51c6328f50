package response

import (
	"time"

	"freightrate/common/model"
)

// VendorResponse 承运商
type VendorResponse struct {
	ID          int64                 `json:"id"`
	CompanyName string                `json:"companyName"`
	VendorCode  string                `json:"vendorCode,omitempty"`
	VendorPhone string                `json:"vendorPhone,omitempty"`
	VendorEmail string                `json:"vendorEmail,omitempty"`
	GSTNo       string                `json:"gstNo,omitempty"`
	Mode        string                `json:"mode"`
	Address     string                `json:"address,omitempty"`
	State       string                `json:"state,omitempty"`
	Pincode     string                `json:"pincode,omitempty"`
	PriceChart  []model.ZoneRecord    `json:"priceChart"`
	PriceRate   *model.RateCardRecord `json:"priceRate,omitempty"`
	TransitDays [][]float64           `json:"transitDays,omitempty"`
	CreatedAt   time.Time             `json:"createdAt"`
}

// AddTiedUpResponse 批量录入结果
type AddTiedUpResponse struct {
	Added   []*VendorResponse `json:"added"`
	Skipped []SkippedVendor   `json:"skipped"`
}

// SkippedVendor 被跳过的条目
type SkippedVendor struct {
	Index       int    `json:"index"`
	CompanyName string `json:"companyName"`
	Reason      string `json:"reason"`
}

// SuggestResponse 名称联想
type SuggestResponse struct {
	Names []string `json:"names"`
}

// ImportResponse 导入任务
type ImportResponse struct {
	ImportID   string     `json:"import_id"`
	VendorID   int64      `json:"vendor_id"`
	Status     string     `json:"status"`
	Total      int        `json:"total"`
	Imported   int        `json:"imported"`
	Rejected   int        `json:"rejected"`
	Errors     []string   `json:"errors,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// TransporterResponse 新增公共承运商结果
type TransporterResponse struct {
	Vendor *VendorResponse `json:"vendor"`
	Import *ImportResponse `json:"import"`
}

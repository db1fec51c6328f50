package request

import "freightrate/common/model"

// AddTiedUpRequest 批量录入协议承运商
type AddTiedUpRequest struct {
	Vendors []TiedUpVendor `json:"vendors" binding:"required,min=1"`
}

// TiedUpVendor 协议承运商（名称或编码为空的条目会被跳过）
type TiedUpVendor struct {
	CompanyName string                `json:"companyName" example:"Sharma Roadways"`
	VendorCode  string                `json:"vendorCode" example:"SR-01"`
	VendorPhone string                `json:"vendorPhone" example:"9876543210"`
	VendorEmail string                `json:"vendorEmail" example:"ops@sharma.in"`
	GSTNo       string                `json:"gstNo" example:"07AAAAA0000A1Z5"`
	Mode        string                `json:"mode" example:"Road"`
	Address     string                `json:"address"`
	State       string                `json:"state"`
	Pincode     string                `json:"pincode"`
	PriceChart  []ZoneChart           `json:"priceChart"`
	PriceRate   *model.RateCardRecord `json:"priceRate"`
	TransitDays [][]float64           `json:"transitDays"`
}

// ZoneChart 服务区域，coverage 为空时有邮编视为 partial，否则视为 all
type ZoneChart struct {
	Name     string   `json:"name" example:"N1"`
	Coverage string   `json:"coverage" example:"partial"`
	Pincodes []string `json:"pincodes"`
}

// AddPriceRequest 设置公共承运商价格表
type AddPriceRequest struct {
	CompanyName string                        `json:"companyName" binding:"required" example:"Safexpress"`
	PriceRate   *model.RateCardRecord         `json:"priceRate" binding:"required"`
	ZoneRates   map[string]map[string]float64 `json:"zoneRates"`
	TransitDays map[string]map[string]float64 `json:"transitDays"`
}

// SetPlanRequest 变更客户套餐
type SetPlanRequest struct {
	Plan string `json:"plan" binding:"required,oneof=free premium" example:"premium"`
}

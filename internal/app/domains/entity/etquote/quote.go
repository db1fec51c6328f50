package etquote

import (
	"math"

	"freightrate/internal/app/domains/entity/etprimitive"
)

// 标签
const (
	TagCheapest = "CHEAPEST"
	TagFastest  = "FASTEST"
)

// Lane 承运商矩阵中解析出的（起点区域，终点区域）单元
type Lane struct {
	OriginZone      string
	DestinationZone string
	UnitRate        float64
	TransitDays     float64
	DestinationODA  bool
}

// Charges 费用明细（bifurcation），金额均已保留两位小数
type Charges struct {
	BaseFreight       float64
	FuelSurcharge     float64
	ROV               float64
	Insurance         float64
	ODA               float64
	COD               float64
	Prepaid           float64
	ToPay             float64
	Handling          float64
	FM                float64
	Appointment       float64
	Docket            float64
	GreenTax          float64
	DACC              float64
	Misc              float64
	Subtotal          float64
	MinCharges        float64
	MinChargesApplied bool
}

// Sum 各项费用之和
func (c *Charges) Sum() float64 {
	return RoundMoney(c.BaseFreight + c.FuelSurcharge +
		c.ROV + c.Insurance + c.ODA + c.COD + c.Prepaid + c.ToPay +
		c.Handling + c.FM + c.Appointment +
		c.Docket + c.GreenTax + c.DACC + c.Misc)
}

// Quote 单个承运商的报价
type Quote struct {
	VendorID           int64
	TransporterName    string
	TiedUp             bool
	Mode               etprimitive.Mode
	OriginPincode      string
	OriginZone         string
	DestinationPincode string
	DestinationZone    string
	ActualWeight       float64
	VolumetricWeight   float64
	ChargeableWeight   float64
	BilledWeight       float64
	UnitPrice          float64
	Charges            *Charges
	TotalCharges       float64
	TransitDays        float64
	EstimatedTime      int // 展示用天数，包含配送缓冲
	Locked             bool
	Tags               []string
	IsBestValue        bool
}

// Lock 隐藏承运商身份、时效与明细，只保留总价（领域行为）
func (q *Quote) Lock() {
	q.TransporterName = ""
	q.EstimatedTime = 0
	q.TransitDays = 0
	q.Charges = nil
	q.Locked = true
}

// HasTag 是否带有指定标签
func (q *Quote) HasTag(tag string) bool {
	for _, t := range q.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// RoundMoney 金额四舍五入（远离零）到两位小数
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// RoundWeight 重量保留三位小数
func RoundWeight(v float64) float64 {
	return math.Round(v*1000) / 1000
}

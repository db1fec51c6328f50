package model

// ChargePairRecord 附加费（百分比 + 固定金额）
type ChargePairRecord struct {
	Variable float64 `json:"variable" yaml:"variable"`
	Fixed    float64 `json:"fixed" yaml:"fixed"`
}

// RateCardRecord 承运商价格表的持久化结构（vendors.rate_card 列，也是 freightctl 的 YAML 格式）
type RateCardRecord struct {
	Matrix               [][]float64      `json:"matrix" yaml:"matrix"`
	FuelSurcharge        float64          `json:"fuelSurcharge" yaml:"fuelSurcharge"`
	DocketCharge         float64          `json:"docketCharge" yaml:"docketCharge"`
	MinWeight            float64          `json:"minWeight" yaml:"minWeight"`
	ROVCharges           ChargePairRecord `json:"rovCharges" yaml:"rovCharges"`
	InsuranceCharges     ChargePairRecord `json:"insuranceCharges" yaml:"insuranceCharges"`
	ODACharges           ChargePairRecord `json:"odaCharges" yaml:"odaCharges"`
	CODCharges           ChargePairRecord `json:"codCharges" yaml:"codCharges"`
	PrepaidCharges       ChargePairRecord `json:"prepaidCharges" yaml:"prepaidCharges"`
	TopayCharges         ChargePairRecord `json:"topayCharges" yaml:"topayCharges"`
	HandlingCharges      ChargePairRecord `json:"handlingCharges" yaml:"handlingCharges"`
	FMCharges            ChargePairRecord `json:"fmCharges" yaml:"fmCharges"`
	AppointmentCharges   ChargePairRecord `json:"appointmentCharges" yaml:"appointmentCharges"`
	DivisorCoefficient   float64          `json:"divisorCoefficient" yaml:"divisorCoefficient"`
	MinCharges           float64          `json:"minCharges" yaml:"minCharges"`
	GreenTax             float64          `json:"greenTax" yaml:"greenTax"`
	DACCCharges          float64          `json:"daccCharges" yaml:"daccCharges"`
	MiscellaneousCharges float64          `json:"miscellaneousCharges" yaml:"miscellaneousCharges"`
}

package response

import "time"

// CalculateResponse 询价响应
type CalculateResponse struct {
	TiedUpResult  []*QuoteResponse `json:"tiedUpResult"`
	CompanyResult []*QuoteResponse `json:"companyResult"`
}

// QuoteResponse 单个承运商报价，locked=true 时只返回总价与重量
type QuoteResponse struct {
	TransporterName    string   `json:"transporterName,omitempty" example:"Safexpress"`
	ModeOfTransport    string   `json:"modeoftransport" example:"Road"`
	OriginPincode      string   `json:"originPincode" example:"110001"`
	OriginZone         string   `json:"originZone" example:"N1"`
	DestinationPincode string   `json:"destinationPincode" example:"400001"`
	DestinationZone    string   `json:"destinationZone" example:"W1"`
	ActualWeight       float64  `json:"actualWeight" example:"50"`
	VolumetricWeight   float64  `json:"volumetricWeight" example:"128"`
	ChargeableWeight   float64  `json:"chargeableWeight" example:"128"`
	TotalCharges       float64  `json:"totalCharges" example:"2002.28"`
	Price              float64  `json:"price" example:"2002.28"`
	EstimatedTime      int      `json:"estimatedTime,omitempty" example:"6"`
	IsBestValue        bool     `json:"isBestValue"`
	Tags               []string `json:"tags,omitempty"`
	Locked             bool     `json:"locked"`

	*ChargeBreakdown
}

// ChargeBreakdown 费用明细
type ChargeBreakdown struct {
	UnitPrice          float64 `json:"unitPrice" example:"12"`
	BaseFreight        float64 `json:"baseFreight" example:"1536"`
	FuelSurcharge      float64 `json:"fuelSurcharge" example:"153.6"`
	ROVCharges         float64 `json:"rovCharges" example:"107.68"`
	InsuranceCharges   float64 `json:"insuranceCharges"`
	ODACharges         float64 `json:"odaCharges"`
	CODCharges         float64 `json:"codCharges"`
	PrepaidCharges     float64 `json:"prepaidCharges"`
	TopayCharges       float64 `json:"topayCharges"`
	HandlingCharges    float64 `json:"handlingCharges"`
	FMCharges          float64 `json:"fmCharges"`
	AppointmentCharges float64 `json:"appointmentCharges"`
	DocketCharges      float64 `json:"docketCharges"`
	GreenTax           float64 `json:"greenTax"`
	DACCCharges        float64 `json:"daccCharges"`
	MiscCharges        float64 `json:"miscCharges"`
	MinCharges         float64 `json:"minCharges"`
	MinChargesApplied  bool    `json:"minChargesApplied"`
}

// QuoteRecordResponse 询价历史
type QuoteRecordResponse struct {
	ID              string             `json:"id"`
	FromPincode     string             `json:"fromPincode"`
	ToPincode       string             `json:"toPincode"`
	ModeOfTransport string             `json:"modeoftransport"`
	Result          *CalculateResponse `json:"result"`
	CreatedAt       time.Time          `json:"createdAt"`
}

package request

// CalculateRequest 询价请求
// 单一规格货件使用 noofboxes/length/width/height/weight，多规格货件使用 boxes
type CalculateRequest struct {
	ModeOfTransport string  `json:"modeoftransport" binding:"required" example:"Road"`
	FromPincode     string  `json:"fromPincode" binding:"required,len=6,numeric" example:"110001"`
	ToPincode       string  `json:"toPincode" binding:"required,len=6,numeric" example:"400001"`
	NoOfBoxes       int     `json:"noofboxes" binding:"omitempty,gte=1" example:"10"`
	Quantity        int     `json:"quantity" example:"2"` // 每箱件数，仅展示用
	Length          float64 `json:"length" binding:"omitempty,gt=0" example:"40"`
	Width           float64 `json:"width" binding:"omitempty,gt=0" example:"40"`
	Height          float64 `json:"height" binding:"omitempty,gt=0" example:"40"`
	Weight          float64 `json:"weight" binding:"omitempty,gt=0" example:"5"` // 单箱重量（kg）

	Boxes       []Box  `json:"boxes" binding:"omitempty,dive"`
	Express     bool   `json:"express"`
	Fragile     bool   `json:"fragile"`
	PaymentMode string `json:"paymentMode" example:"prepaid"`
	Appointment bool   `json:"appointment"`
}

// Box 同规格箱子
type Box struct {
	Count  int     `json:"count" binding:"required,gte=1" example:"10"`
	Length float64 `json:"length" binding:"required,gt=0" example:"40"`
	Width  float64 `json:"width" binding:"required,gt=0" example:"40"`
	Height float64 `json:"height" binding:"required,gt=0" example:"40"`
	Weight float64 `json:"weight" binding:"required,gt=0" example:"5"`
}

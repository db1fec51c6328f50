package etquote

import "time"

// Result 一次询价的结果：协议承运商与公共承运商分开返回
type Result struct {
	TiedUp  []*Quote
	Company []*Quote
}

// Record 询价历史
type Record struct {
	ID         string
	CustomerID int64
	Shipment   *Shipment
	Result     *Result
	CreatedAt  time.Time
}

package model

// ActionTypePincodeImport 邮编表导入任务类型
const ActionTypePincodeImport = "pincode_import"

// PincodeImportJob 邮编导入任务消息（标准化）
// 用于 apiserver → worker 的消息传递
type PincodeImportJob struct {
	Payload PincodeImportPayload `json:"payload"`
}

// PincodeImportPayload Job 负载
type PincodeImportPayload struct {
	Data PincodeImportData `json:"data"`
}

// PincodeImportData Job 数据层
type PincodeImportData struct {
	RequestID   string `json:"request_id"`   // 沿用 API 请求的 X-Request-ID
	SubmittedAt int64  `json:"submitted_at"` // 投递时间（Unix 毫秒）
	ActionType  string `json:"action_type"`  // 固定值 pincode_import
	ID          string `json:"id"`           // 导入任务 ID

	Data PincodeImportBusinessData `json:"data"`
}

// PincodeImportBusinessData 导入业务数据，行数据保存在 import_jobs 表中
type PincodeImportBusinessData struct {
	ImportID string `json:"import_id"`
	VendorID int64  `json:"vendor_id"`
}

// PincodeRow 邮编表中的一行
type PincodeRow struct {
	Line    int    `json:"line"`
	Pincode string `json:"pincode"`
	Zone    string `json:"zone"`
	State   string `json:"state,omitempty"`
	City    string `json:"city,omitempty"`
	ODA     bool   `json:"oda,omitempty"`
}

// ZoneRecord 承运商区域的持久化结构（vendors.zones 列）
type ZoneRecord struct {
	Name     string   `json:"name"`
	Coverage string   `json:"coverage"` // none | all | partial
	Pincodes []string `json:"pincodes,omitempty"`
}

package model

import "fmt"

// ImportNotification 导入完成通知（Redis Pub/Sub）
type ImportNotification struct {
	ImportID  string   `json:"import_id"`
	VendorID  int64    `json:"vendor_id"`
	Status    string   `json:"status"` // DONE/FAILED
	Imported  int      `json:"imported"`
	Rejected  int      `json:"rejected"`
	Errors    []string `json:"errors,omitempty"`
	Timestamp int64    `json:"timestamp"`
}

// ImportResultChannel 导入结果频道命名规则
func ImportResultChannel(importID string) string {
	return fmt.Sprintf("pincode:import:%s", importID)
}

// PincodeCacheVersionKey 承运商邮编缓存版本号，导入完成后递增使旧缓存失效
func PincodeCacheVersionKey(vendorID int64) string {
	return fmt.Sprintf("pincode:ver:%d", vendorID)
}

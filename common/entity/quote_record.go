package entity

import (
	"time"

	"gorm.io/datatypes"
)

// QuoteRecord 报价历史
type QuoteRecord struct {
	ID          string         `gorm:"column:id;primaryKey;type:varchar(64)"`
	CustomerID  int64          `gorm:"column:customer_id;not null;index:idx_customer_created,priority:1"`
	FromPincode string         `gorm:"column:from_pincode;type:varchar(6);not null"`
	ToPincode   string         `gorm:"column:to_pincode;type:varchar(6);not null"`
	Mode        string         `gorm:"column:mode;type:varchar(16);not null"`
	Request     datatypes.JSON `gorm:"column:request;type:json;not null"`
	Result      datatypes.JSON `gorm:"column:result;type:json;not null"`
	CreatedAt   time.Time      `gorm:"column:created_at;not null;index:idx_customer_created,priority:2"`
}

// TableName 指定表名
func (QuoteRecord) TableName() string {
	return "quote_records"
}

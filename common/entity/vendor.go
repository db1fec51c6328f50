package entity

import (
	"time"

	"gorm.io/datatypes"
)

// Vendor 承运商（owner_id=0 为平台公共承运商，否则为客户的协议承运商）
type Vendor struct {
	ID      int64  `gorm:"column:id;primaryKey;autoIncrement:false"`
	OwnerID int64  `gorm:"column:owner_id;not null;default:0;uniqueIndex:uk_owner_name,priority:1;index:idx_owner_mode,priority:1"`
	Name    string `gorm:"column:name;type:varchar(255);not null;uniqueIndex:uk_owner_name,priority:2"`
	Code    string `gorm:"column:code;type:varchar(64)"`
	Phone   string `gorm:"column:phone;type:varchar(32)"`
	Email   string `gorm:"column:email;type:varchar(255)"`
	GSTNo   string `gorm:"column:gst_no;type:varchar(32)"`
	Mode    string `gorm:"column:mode;type:varchar(16);not null;index:idx_owner_mode,priority:2"`
	Address string `gorm:"column:address;type:varchar(512)"`
	State   string `gorm:"column:state;type:varchar(64)"`
	Pincode string `gorm:"column:pincode;type:varchar(6)"`

	// 区域、价格表、时效表
	Zones       datatypes.JSON `gorm:"column:zones;type:json;not null"`
	RateCard    datatypes.JSON `gorm:"column:rate_card;type:json"`
	TransitDays datatypes.JSON `gorm:"column:transit_days;type:json"`

	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName 指定表名
func (Vendor) TableName() string {
	return "vendors"
}

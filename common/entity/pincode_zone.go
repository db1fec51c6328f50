package entity

// PincodeZone 邮编到区域的映射（vendor_id=0 为全局目录）
type PincodeZone struct {
	ID       int64  `gorm:"column:id;primaryKey;autoIncrement"`
	VendorID int64  `gorm:"column:vendor_id;not null;default:0;uniqueIndex:uk_vendor_pincode,priority:1"`
	Pincode  string `gorm:"column:pincode;type:varchar(6);not null;uniqueIndex:uk_vendor_pincode,priority:2"`
	Zone     string `gorm:"column:zone;type:varchar(16);not null"`
	State    string `gorm:"column:state;type:varchar(64)"`
	City     string `gorm:"column:city;type:varchar(128)"`
	ODA      bool   `gorm:"column:oda;not null;default:false"`
}

// TableName 指定表名
func (PincodeZone) TableName() string {
	return "pincode_zones"
}

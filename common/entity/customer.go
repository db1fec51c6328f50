package entity

import "time"

// Customer 客户账号
type Customer struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement:false"`
	Name         string    `gorm:"column:name;type:varchar(255);not null"`
	Email        string    `gorm:"column:email;type:varchar(255);uniqueIndex:uk_email;not null"`
	Phone        string    `gorm:"column:phone;type:varchar(32)"`
	Company      string    `gorm:"column:company;type:varchar(255)"`
	Pincode      string    `gorm:"column:pincode;type:varchar(6)"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null"`
	Role         string    `gorm:"column:role;type:varchar(16);not null;default:'customer'"`
	Plan         string    `gorm:"column:plan;type:varchar(16);not null;default:'free'"`
	CreatedAt    time.Time `gorm:"column:created_at;not null"`
	UpdatedAt    time.Time `gorm:"column:updated_at;not null"`
}

// TableName 指定表名
func (Customer) TableName() string {
	return "customers"
}

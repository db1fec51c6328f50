package etpincode

import (
	"errors"
	"fmt"

	"freightrate/pkg/pincode"
)

// GlobalVendorID 全局邮编目录使用的承运商 ID
const GlobalVendorID int64 = 0

// 错误定义
var (
	ErrInvalidPincode = errors.New("pincode must be 6 digits")
	ErrMissingZone    = errors.New("zone is required")
	ErrNotFound       = errors.New("pincode not found")
)

// Entry 邮编到区域的映射
type Entry struct {
	VendorID int64
	Pincode  string
	Zone     string
	State    string
	City     string
	ODA      bool // 偏远地区（Out of Delivery Area）
}

// NewEntry 创建邮编条目，统一格式后校验
func NewEntry(vendorID int64, pin, zone, state, city string, oda bool) (*Entry, error) {
	pin = pincode.Normalize(pin)
	if !pincode.Valid(pin) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPincode, pin)
	}
	zone = pincode.NormalizeZone(zone)
	if zone == "" {
		return nil, ErrMissingZone
	}
	return &Entry{
		VendorID: vendorID,
		Pincode:  pin,
		Zone:     zone,
		State:    state,
		City:     city,
		ODA:      oda,
	}, nil
}

// IsGlobal 是否属于全局目录
func (e *Entry) IsGlobal() bool {
	return e.VendorID == GlobalVendorID
}

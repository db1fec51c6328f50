package etquote

import (
	"errors"
	"fmt"
	"math"

	"freightrate/internal/app/domains/entity/etprimitive"
	"freightrate/pkg/pincode"
)

// 错误定义
var (
	ErrInvalidPincode   = errors.New("pincode must be 6 digits")
	ErrEmptyShipment    = errors.New("at least one box is required")
	ErrInvalidBoxCount  = errors.New("box count must be at least 1")
	ErrInvalidDimension = errors.New("box dimensions must be positive")
	ErrInvalidWeight    = errors.New("box weight must be positive")
)

// FieldError 字段级校验错误
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func fieldError(field string, err error) error {
	return &FieldError{Field: field, Err: err}
}

// Box 同规格箱子（值对象），尺寸单位 cm，重量单位 kg
type Box struct {
	Count        int
	Length       float64
	Width        float64
	Height       float64
	WeightPerBox float64
}

// Shipment 货件询价参数（值对象）
type Shipment struct {
	FromPincode string
	ToPincode   string
	Mode        etprimitive.Mode
	Boxes       []Box
	Express     bool
	Fragile     bool
	PaymentMode etprimitive.PaymentMode
	Appointment bool
}

// Validate 询价前校验
func (s *Shipment) Validate() error {
	if !pincode.Valid(s.FromPincode) {
		return fieldError("fromPincode", ErrInvalidPincode)
	}
	if !pincode.Valid(s.ToPincode) {
		return fieldError("toPincode", ErrInvalidPincode)
	}
	if _, err := etprimitive.ParseMode(string(s.Mode)); err != nil {
		return fieldError("modeoftransport", err)
	}
	if len(s.Boxes) == 0 {
		return fieldError("boxes", ErrEmptyShipment)
	}
	for i, b := range s.Boxes {
		field := fmt.Sprintf("boxes[%d]", i)
		if b.Count < 1 {
			return fieldError(field, ErrInvalidBoxCount)
		}
		if !positive(b.Length) || !positive(b.Width) || !positive(b.Height) {
			return fieldError(field, ErrInvalidDimension)
		}
		if !positive(b.WeightPerBox) {
			return fieldError(field, ErrInvalidWeight)
		}
	}
	if s.PaymentMode == "" {
		s.PaymentMode = etprimitive.PaymentPrepaid
	}
	return nil
}

// ActualWeight 实际重量 = Σ 箱数 × 单箱重量
func (s *Shipment) ActualWeight() float64 {
	var total float64
	for _, b := range s.Boxes {
		total += float64(b.Count) * b.WeightPerBox
	}
	return total
}

// VolumetricWeight 体积重 = Σ(长 × 宽 × 高 × 箱数) / 体积系数
func (s *Shipment) VolumetricWeight(divisor float64) float64 {
	if divisor <= 0 {
		return 0
	}
	var volume float64
	for _, b := range s.Boxes {
		volume += b.Length * b.Width * b.Height * float64(b.Count)
	}
	return volume / divisor
}

// BoxCount 总箱数
func (s *Shipment) BoxCount() int {
	var n int
	for _, b := range s.Boxes {
		n += b.Count
	}
	return n
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

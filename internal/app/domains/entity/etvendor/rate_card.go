package etvendor

import (
	"errors"
	"fmt"
	"math"
)

// 错误定义
var (
	ErrMatrixNotSquare   = errors.New("rate matrix must be square over the active zones")
	ErrNegativeCharge    = errors.New("charges and rates cannot be negative")
	ErrInvalidPercentage = errors.New("percentage must be between 0 and 100")
	ErrRateCardMissing   = errors.New("vendor has no rate card")
)

// ChargePair 附加费：固定部分 + 基础运费的百分比部分
type ChargePair struct {
	Variable float64 // 百分比（0-100）
	Fixed    float64 // 固定金额
}

// Amount 按基础运费计算附加费
func (c ChargePair) Amount(base float64) float64 {
	return c.Fixed + c.Variable/100*base
}

func (c ChargePair) validate(name string) error {
	if c.Fixed < 0 || c.Variable < 0 {
		return fmt.Errorf("%s: %w", name, ErrNegativeCharge)
	}
	if c.Variable > 100 {
		return fmt.Errorf("%s: %w", name, ErrInvalidPercentage)
	}
	return nil
}

// RateCard 承运商价格表（PriceRate）
type RateCard struct {
	Matrix             [][]float64 // 区域到区域的单价（每公斤），按有效区域顺序索引
	FuelSurcharge      float64     // 燃油附加费百分比
	DocketCharge       float64
	MinWeight          float64 // 最低计费重量（kg）
	ROV                ChargePair
	Insurance          ChargePair
	ODA                ChargePair
	COD                ChargePair
	Prepaid            ChargePair
	ToPay              ChargePair
	Handling           ChargePair
	FM                 ChargePair
	Appointment        ChargePair
	DivisorCoefficient float64 // 体积重系数，<=0 时使用运输方式默认值
	MinCharges         float64 // 最低收费
	GreenTax           float64
	DACCCharges        float64
	MiscCharges        float64
}

// Validate 校验价格表，size 为有效区域数
func (r *RateCard) Validate(size int) error {
	if err := ValidateMatrix(r.Matrix, size); err != nil {
		return err
	}
	if r.FuelSurcharge < 0 || r.FuelSurcharge > 100 {
		return fmt.Errorf("fuelSurcharge: %w", ErrInvalidPercentage)
	}

	scalars := map[string]float64{
		"docketCharge":         r.DocketCharge,
		"minWeight":            r.MinWeight,
		"divisorCoefficient":   r.DivisorCoefficient,
		"minCharges":           r.MinCharges,
		"greenTax":             r.GreenTax,
		"daccCharges":          r.DACCCharges,
		"miscellaneousCharges": r.MiscCharges,
	}
	for name, v := range scalars {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s: %w", name, ErrNegativeCharge)
		}
	}

	pairs := []struct {
		name string
		pair ChargePair
	}{
		{"rovCharges", r.ROV},
		{"insuranceCharges", r.Insurance},
		{"odaCharges", r.ODA},
		{"codCharges", r.COD},
		{"prepaidCharges", r.Prepaid},
		{"topayCharges", r.ToPay},
		{"handlingCharges", r.Handling},
		{"fmCharges", r.FM},
		{"appointmentCharges", r.Appointment},
	}
	for _, p := range pairs {
		if err := p.pair.validate(p.name); err != nil {
			return err
		}
	}
	return nil
}

// ValidateMatrix 校验矩阵为 size×size 且无负值
func ValidateMatrix(matrix [][]float64, size int) error {
	if len(matrix) != size {
		return fmt.Errorf("%w: got %d rows for %d zones", ErrMatrixNotSquare, len(matrix), size)
	}
	for i, row := range matrix {
		if len(row) != size {
			return fmt.Errorf("%w: row %d has %d columns for %d zones", ErrMatrixNotSquare, i, len(row), size)
		}
		for _, v := range row {
			if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("matrix[%d]: %w", i, ErrNegativeCharge)
			}
		}
	}
	return nil
}

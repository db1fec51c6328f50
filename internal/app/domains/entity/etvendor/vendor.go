package etvendor

import (
	"errors"
	"fmt"
	"time"

	"freightrate/internal/app/domains/entity/etprimitive"
	"freightrate/pkg/pincode"
)

// 错误定义
var (
	ErrInvalidVendorID   = errors.New("invalid vendor ID")
	ErrInvalidVendorName = errors.New("vendor name cannot be empty")
	ErrInvalidVendorCode = errors.New("vendor code cannot be empty")
	ErrDuplicateZone     = errors.New("zone names must be unique")
	ErrNoActiveZones     = errors.New("at least one zone must be served")
	ErrInvalidCoverage   = errors.New("zone coverage must be none, all or partial")
	ErrEmptyPartialZone  = errors.New("partial zone must list its pincodes")
	ErrInvalidPincode    = errors.New("pincode must be 6 digits")
	ErrUnknownZone       = errors.New("unknown zone")
	ErrEmptyZoneName     = errors.New("zone name is required")
)

// DefaultZoneNames 默认区域（北/中/西/南/东/东北）
var DefaultZoneNames = []string{"N1", "N2", "N3", "C1", "W1", "W2", "S1", "S2", "E1", "NE1", "NE2"}

// Coverage 区域覆盖方式
type Coverage string

const (
	CoverageNone    Coverage = "none"
	CoverageAll     Coverage = "all"
	CoveragePartial Coverage = "partial"
)

// Zone 承运商服务区域
type Zone struct {
	Name     string
	Coverage Coverage
	Pincodes []string // 仅 partial 使用
}

// Vendor 承运商聚合根
type Vendor struct {
	ID          int64
	OwnerID     int64 // 0 表示平台公共承运商
	Name        string
	Code        string
	Phone       string
	Email       string
	GSTNo       string
	Mode        etprimitive.Mode
	Address     string
	State       string
	Pincode     string
	Zones       []Zone
	RateCard    *RateCard
	TransitDays [][]float64 // 可选，与价格矩阵同形
	CreatedAt   time.Time
	UpdatedAt   time.Time

	active      []string
	activeIndex map[string]int
	explicit    map[string]string
}

// NewVendor 创建承运商（工厂方法）
func NewVendor(id, ownerID int64, name string, mode etprimitive.Mode, zones []Zone) (*Vendor, error) {
	if id <= 0 || ownerID < 0 {
		return nil, ErrInvalidVendorID
	}
	if name == "" {
		return nil, ErrInvalidVendorName
	}
	if _, err := etprimitive.ParseMode(string(mode)); err != nil {
		return nil, err
	}

	v := &Vendor{
		ID:        id,
		OwnerID:   ownerID,
		Name:      name,
		Mode:      mode,
		Zones:     zones,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := v.index(); err != nil {
		return nil, err
	}
	return v, nil
}

// Restore 从存储恢复（跳过工厂校验，只重建索引）
func Restore(v *Vendor) (*Vendor, error) {
	if err := v.index(); err != nil {
		return nil, fmt.Errorf("restore vendor %d failed: %w", v.ID, err)
	}
	return v, nil
}

// index 校验区域并建立查找索引
func (v *Vendor) index() error {
	v.active = make([]string, 0, len(v.Zones))
	v.activeIndex = make(map[string]int, len(v.Zones))
	v.explicit = make(map[string]string)
	seen := make(map[string]bool, len(v.Zones))

	for i := range v.Zones {
		z := &v.Zones[i]
		z.Name = pincode.NormalizeZone(z.Name)
		if z.Name == "" {
			return fmt.Errorf("zone %d: %w", i, ErrEmptyZoneName)
		}
		if seen[z.Name] {
			return fmt.Errorf("%w: %s", ErrDuplicateZone, z.Name)
		}
		seen[z.Name] = true

		switch z.Coverage {
		case CoverageNone:
			continue
		case CoverageAll:
		case CoveragePartial:
			if len(z.Pincodes) == 0 {
				return fmt.Errorf("%w: %s", ErrEmptyPartialZone, z.Name)
			}
			for j, p := range z.Pincodes {
				p = pincode.Normalize(p)
				if !pincode.Valid(p) {
					return fmt.Errorf("zone %s: %w: %q", z.Name, ErrInvalidPincode, p)
				}
				z.Pincodes[j] = p
				v.explicit[p] = z.Name
			}
		default:
			return fmt.Errorf("zone %s: %w", z.Name, ErrInvalidCoverage)
		}

		v.activeIndex[z.Name] = len(v.active)
		v.active = append(v.active, z.Name)
	}

	if len(v.active) == 0 {
		return ErrNoActiveZones
	}
	return nil
}

// IsTiedUp 是否为客户自有的协议承运商
func (v *Vendor) IsTiedUp() bool {
	return v.OwnerID > 0
}

// ActiveZones 有效区域（矩阵行列顺序）
func (v *Vendor) ActiveZones() []string {
	return append([]string(nil), v.active...)
}

// HasZone 区域是否有效
func (v *Vendor) HasZone(zone string) bool {
	_, ok := v.activeIndex[zone]
	return ok
}

// CoversAll 区域是否全覆盖（可使用全局邮编目录解析）
func (v *Vendor) CoversAll(zone string) bool {
	for _, z := range v.Zones {
		if z.Name == zone {
			return z.Coverage == CoverageAll
		}
	}
	return false
}

// ExplicitZone partial 区域中显式列出的邮编
func (v *Vendor) ExplicitZone(pin string) (string, bool) {
	zone, ok := v.explicit[pin]
	return zone, ok
}

// SetRateCard 设置价格表与时效表（领域行为）
func (v *Vendor) SetRateCard(card *RateCard, transitDays [][]float64) error {
	if card == nil {
		return ErrRateCardMissing
	}
	if err := card.Validate(len(v.active)); err != nil {
		return err
	}
	if transitDays != nil {
		if err := ValidateMatrix(transitDays, len(v.active)); err != nil {
			return fmt.Errorf("transitDays: %w", err)
		}
	}
	v.RateCard = card
	v.TransitDays = transitDays
	v.UpdatedAt = time.Now()
	return nil
}

// Rate 区域对的单价，未配置或为 0 时返回 false
func (v *Vendor) Rate(origin, dest string) (float64, bool) {
	if v.RateCard == nil {
		return 0, false
	}
	i, j, ok := v.cell(origin, dest)
	if !ok || i >= len(v.RateCard.Matrix) || j >= len(v.RateCard.Matrix[i]) {
		return 0, false
	}
	rate := v.RateCard.Matrix[i][j]
	return rate, rate > 0
}

// Transit 区域对的时效（天），未配置时返回 false
func (v *Vendor) Transit(origin, dest string) (float64, bool) {
	i, j, ok := v.cell(origin, dest)
	if !ok || i >= len(v.TransitDays) || j >= len(v.TransitDays[i]) {
		return 0, false
	}
	days := v.TransitDays[i][j]
	return days, days > 0
}

func (v *Vendor) cell(origin, dest string) (int, int, bool) {
	i, ok := v.activeIndex[origin]
	if !ok {
		return 0, 0, false
	}
	j, ok := v.activeIndex[dest]
	if !ok {
		return 0, 0, false
	}
	return i, j, true
}

// MatrixFromZoneRates 将 {from:{to:rate}} 转换为按 zones 顺序的方阵，缺失的格子为 0
func MatrixFromZoneRates(zones []string, zoneRates map[string]map[string]float64) ([][]float64, error) {
	index := make(map[string]int, len(zones))
	for i, z := range zones {
		index[z] = i
	}

	matrix := make([][]float64, len(zones))
	for i := range matrix {
		matrix[i] = make([]float64, len(zones))
	}

	for from, row := range zoneRates {
		i, ok := index[pincode.NormalizeZone(from)]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownZone, from)
		}
		for to, rate := range row {
			j, ok := index[pincode.NormalizeZone(to)]
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrUnknownZone, to)
			}
			if rate < 0 {
				return nil, fmt.Errorf("%s->%s: %w", from, to, ErrNegativeCharge)
			}
			matrix[i][j] = rate
		}
	}
	return matrix, nil
}

package mdquote

import (
	"errors"
	"fmt"
	"math"

	"freightrate/internal/app/domains/entity/etprimitive"
	"freightrate/internal/app/domains/entity/etquote"
	"freightrate/internal/app/domains/entity/etvendor"
	"freightrate/pkg/config"
)

// 错误定义
var (
	ErrLaneNotServed = errors.New("vendor has no rate for this lane")
	ErrNoDivisor     = errors.New("no divisor coefficient for mode")
	ErrInvalidResult = errors.New("calculation produced a non-finite amount")
)

// 重量取整方式
const (
	RoundingCeil = "ceil"
	RoundingNone = "none"
)

// Policy 报价引擎策略（来自配置）
type Policy struct {
	Rounding           string
	DefaultDivisors    map[etprimitive.Mode]float64
	DefaultTransitDays map[etprimitive.Mode]float64
	DeliveryBufferDays int
}

// PolicyFromConfig 由配置构造策略
func PolicyFromConfig(cfg config.QuoteConfig) Policy {
	p := Policy{
		Rounding:           cfg.WeightRounding,
		DefaultDivisors:    make(map[etprimitive.Mode]float64, len(cfg.DefaultDivisors)),
		DefaultTransitDays: make(map[etprimitive.Mode]float64, len(cfg.DefaultTransitDays)),
		DeliveryBufferDays: cfg.DeliveryBufferDays,
	}
	for k, v := range cfg.DefaultDivisors {
		if mode, err := etprimitive.ParseMode(k); err == nil {
			p.DefaultDivisors[mode] = v
		}
	}
	for k, v := range cfg.DefaultTransitDays {
		if mode, err := etprimitive.ParseMode(k); err == nil {
			p.DefaultTransitDays[mode] = v
		}
	}
	return p
}

// Engine 报价引擎，无状态且结果确定
type Engine struct {
	policy Policy
}

// NewEngine 创建报价引擎
func NewEngine(policy Policy) *Engine {
	return &Engine{policy: policy}
}

// Divisor 承运商体积系数，未配置时使用运输方式默认值
func (e *Engine) Divisor(v *etvendor.Vendor) (float64, error) {
	if v.RateCard != nil && v.RateCard.DivisorCoefficient > 0 {
		return v.RateCard.DivisorCoefficient, nil
	}
	if d := e.policy.DefaultDivisors[v.Mode]; d > 0 {
		return d, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrNoDivisor, v.Mode)
}

// ChargeableWeight 计费重 = max(实重, 体积重)，再按策略取整
func (e *Engine) ChargeableWeight(actual, volumetric float64) float64 {
	w := math.Max(actual, volumetric)
	if e.policy.Rounding == RoundingNone {
		return ceilTo(w, 100)
	}
	return ceilTo(w, 1)
}

// EstimatedDays 展示时效 = 整天数 + 配送缓冲
func (e *Engine) EstimatedDays(mode etprimitive.Mode, laneDays float64) (float64, int) {
	days := laneDays
	if days <= 0 {
		days = e.policy.DefaultTransitDays[mode]
	}
	if days <= 0 {
		return 0, 0
	}
	return days, int(math.Floor(days)) + e.policy.DeliveryBufferDays
}

// Calculate 计算单个承运商的报价
// 1. 基础运费  2. 燃油附加费  3. 百分比附加费  4. 固定费用  5. 最低收费
func (e *Engine) Calculate(s *etquote.Shipment, v *etvendor.Vendor, lane etquote.Lane) (*etquote.Quote, error) {
	card := v.RateCard
	if card == nil {
		return nil, etvendor.ErrRateCardMissing
	}
	if lane.UnitRate <= 0 {
		return nil, fmt.Errorf("%w: %s->%s", ErrLaneNotServed, lane.OriginZone, lane.DestinationZone)
	}
	divisor, err := e.Divisor(v)
	if err != nil {
		return nil, err
	}

	actual := s.ActualWeight()
	volumetric := s.VolumetricWeight(divisor)
	chargeable := e.ChargeableWeight(actual, volumetric)
	billed := math.Max(chargeable, card.MinWeight)

	c := &etquote.Charges{MinCharges: card.MinCharges}

	// 1. 基础运费
	c.BaseFreight = etquote.RoundMoney(billed * lane.UnitRate)
	base := c.BaseFreight

	// 2. 燃油附加费只基于基础运费
	c.FuelSurcharge = etquote.RoundMoney(card.FuelSurcharge / 100 * base)

	// 3. 百分比附加费，互不叠加
	c.ROV = surcharge(card.ROV, base, true)
	c.Handling = surcharge(card.Handling, base, true)
	c.FM = surcharge(card.FM, base, true)
	c.Insurance = surcharge(card.Insurance, base, s.Fragile)
	c.ODA = surcharge(card.ODA, base, lane.DestinationODA)
	c.Prepaid = surcharge(card.Prepaid, base, s.PaymentMode == etprimitive.PaymentPrepaid || s.PaymentMode == "")
	c.ToPay = surcharge(card.ToPay, base, s.PaymentMode == etprimitive.PaymentToPay)
	c.COD = surcharge(card.COD, base, s.PaymentMode == etprimitive.PaymentCOD)
	c.Appointment = surcharge(card.Appointment, base, s.Appointment)

	// 4. 固定费用
	c.Docket = etquote.RoundMoney(card.DocketCharge)
	c.GreenTax = etquote.RoundMoney(card.GreenTax)
	c.DACC = etquote.RoundMoney(card.DACCCharges)
	c.Misc = etquote.RoundMoney(card.MiscCharges)

	// 5. 最低收费
	c.Subtotal = c.Sum()
	total := c.Subtotal
	// 与未取整的最低收费比较，向上取整到分，总价不低于最低收费
	if card.MinCharges > total {
		total = ceilTo(card.MinCharges, 100)
		c.MinChargesApplied = true
	}

	if math.IsNaN(total) || math.IsInf(total, 0) {
		return nil, ErrInvalidResult
	}

	days, estimated := e.EstimatedDays(v.Mode, lane.TransitDays)
	return &etquote.Quote{
		VendorID:           v.ID,
		TransporterName:    v.Name,
		TiedUp:             v.IsTiedUp(),
		Mode:               v.Mode,
		OriginPincode:      s.FromPincode,
		OriginZone:         lane.OriginZone,
		DestinationPincode: s.ToPincode,
		DestinationZone:    lane.DestinationZone,
		ActualWeight:       etquote.RoundWeight(actual),
		VolumetricWeight:   etquote.RoundWeight(volumetric),
		ChargeableWeight:   chargeable,
		BilledWeight:       billed,
		UnitPrice:          lane.UnitRate,
		Charges:            c,
		TotalCharges:       total,
		TransitDays:        days,
		EstimatedTime:      estimated,
	}, nil
}

func surcharge(pair etvendor.ChargePair, base float64, applies bool) float64 {
	if !applies {
		return 0
	}
	return etquote.RoundMoney(pair.Amount(base))
}

// ceilTo 向上取整到 1/scale，忽略 1e-9 以内的浮点误差（128.0000000001kg 仍为 128kg）
func ceilTo(v, scale float64) float64 {
	return math.Ceil(v*scale-1e-9) / scale
}

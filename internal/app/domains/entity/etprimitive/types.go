package etprimitive

import (
	"errors"
	"strings"
)

// ErrUnknownMode 不支持的运输方式
var ErrUnknownMode = errors.New("mode of transport must be one of Road, Rail, Air, Ship")

// Mode 运输方式
type Mode string

const (
	ModeRoad Mode = "road"
	ModeRail Mode = "rail"
	ModeAir  Mode = "air"
	ModeShip Mode = "ship"
)

// ParseMode 解析运输方式（大小写不敏感）
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeRoad, ModeRail, ModeAir, ModeShip:
		return m, nil
	default:
		return "", ErrUnknownMode
	}
}

// Display 展示名（Road / Rail / Air / Ship）
func (m Mode) Display() string {
	if m == "" {
		return ""
	}
	return strings.ToUpper(string(m[:1])) + string(m[1:])
}

// PaymentMode 付款方式
type PaymentMode string

const (
	PaymentPrepaid PaymentMode = "prepaid"
	PaymentToPay   PaymentMode = "topay"
	PaymentCOD     PaymentMode = "cod"
)

// ParsePaymentMode 解析付款方式，空值默认为预付
func ParsePaymentMode(s string) (PaymentMode, error) {
	switch p := PaymentMode(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PaymentPrepaid, nil
	case PaymentPrepaid, PaymentToPay, PaymentCOD:
		return p, nil
	default:
		return "", errors.New("payment mode must be one of prepaid, topay, cod")
	}
}

// Role 账号角色
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Plan 客户套餐，premium 可查看公共承运商完整报价
type Plan string

const (
	PlanFree    Plan = "free"
	PlanPremium Plan = "premium"
)

// ParsePlan 解析套餐
func ParsePlan(s string) (Plan, error) {
	switch p := Plan(strings.ToLower(strings.TrimSpace(s))); p {
	case PlanFree, PlanPremium:
		return p, nil
	default:
		return "", errors.New("plan must be free or premium")
	}
}

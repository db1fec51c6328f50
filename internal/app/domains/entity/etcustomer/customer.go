package etcustomer

import (
	"errors"
	"strings"
	"time"

	"freightrate/internal/app/domains/entity/etprimitive"
	"freightrate/pkg/pincode"
)

// 错误定义
var (
	ErrInvalidCustomerID = errors.New("invalid customer ID")
	ErrInvalidName       = errors.New("name cannot be empty")
	ErrInvalidEmail      = errors.New("email is invalid")
	ErrInvalidPincode    = errors.New("pincode must be 6 digits")
	ErrEmptyPassword     = errors.New("password hash cannot be empty")
)

// Customer 客户聚合根
type Customer struct {
	ID           int64
	Name         string
	Email        string
	Phone        string
	Company      string
	Pincode      string
	PasswordHash string
	Role         etprimitive.Role
	Plan         etprimitive.Plan
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewCustomer 创建客户（工厂方法），新客户默认为 free 套餐
func NewCustomer(id int64, name, email, phone, company, pin, passwordHash string) (*Customer, error) {
	if id <= 0 {
		return nil, ErrInvalidCustomerID
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidName
	}
	email = NormalizeEmail(email)
	if !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}
	if pin != "" && !pincode.Valid(pin) {
		return nil, ErrInvalidPincode
	}
	if passwordHash == "" {
		return nil, ErrEmptyPassword
	}

	now := time.Now()
	return &Customer{
		ID:           id,
		Name:         strings.TrimSpace(name),
		Email:        email,
		Phone:        phone,
		Company:      company,
		Pincode:      pin,
		PasswordHash: passwordHash,
		Role:         etprimitive.RoleCustomer,
		Plan:         etprimitive.PlanFree,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// NormalizeEmail 邮箱统一小写
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CanViewCompanyQuotes 是否可以查看公共承运商的完整报价
func (c *Customer) CanViewCompanyQuotes() bool {
	return c.Plan == etprimitive.PlanPremium || c.Role == etprimitive.RoleAdmin
}

// ChangePlan 变更套餐（领域行为）
func (c *Customer) ChangePlan(plan etprimitive.Plan) {
	c.Plan = plan
	c.UpdatedAt = time.Now()
}

// ChangePassword 更新密码哈希（领域行为）
func (c *Customer) ChangePassword(hash string) error {
	if hash == "" {
		return ErrEmptyPassword
	}
	c.PasswordHash = hash
	c.UpdatedAt = time.Now()
	return nil
}

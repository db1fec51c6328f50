package mdauth

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"freightrate/internal/app/domains/entity/etcustomer"
	"freightrate/internal/app/domains/entity/etprimitive"
	"freightrate/internal/app/domains/repo/rpcustomer"
	"freightrate/internal/app/infra/persistence/redis"
)

// 验证码用途
const (
	PurposeSignup = "signup"
	PurposeReset  = "reset"
)

// maxOTPAttempts 单个验证码允许的错误次数
const maxOTPAttempts = 5

// 错误定义
var (
	ErrOTPExpired      = errors.New("otp expired or not requested")
	ErrOTPMismatch     = errors.New("otp does not match")
	ErrTooManyAttempts = errors.New("too many invalid otp attempts, request a new one")
)

type otpRecord struct {
	Code string          `json:"code"`
	Data json.RawMessage `json:"data,omitempty"`
}

// AuthModule 认证模块
type AuthModule struct {
	customerRepo rpcustomer.CustomerRepository
	otpStore     *redis.OTPStore
	notifier     Notifier
	tokens       *TokenManager
	otpTTL       time.Duration
}

// NewAuthModule 创建认证模块
func NewAuthModule(
	customerRepo rpcustomer.CustomerRepository,
	otpStore *redis.OTPStore,
	notifier Notifier,
	tokens *TokenManager,
	otpTTL time.Duration,
) *AuthModule {
	return &AuthModule{
		customerRepo: customerRepo,
		otpStore:     otpStore,
		notifier:     notifier,
		tokens:       tokens,
		otpTTL:       otpTTL,
	}
}

// IssueOTP 生成验证码，与附带数据一起保存并投递
func (m *AuthModule) IssueOTP(ctx context.Context, purpose, email string, data interface{}) error {
	code, err := GenerateOTP()
	if err != nil {
		return err
	}
	record := otpRecord{Code: code}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("marshal otp data failed: %w", err)
		}
		record.Data = raw
	}
	if err := m.otpStore.Save(ctx, purpose, email, record, m.otpTTL); err != nil {
		return fmt.Errorf("save otp failed: %w", err)
	}
	return m.notifier.SendOTP(ctx, email, purpose, code)
}

// VerifyOTP 校验验证码，成功后验证码失效，附带数据写入 dst
func (m *AuthModule) VerifyOTP(ctx context.Context, purpose, email, code string, dst interface{}) error {
	var record otpRecord
	ok, err := m.otpStore.Load(ctx, purpose, email, &record)
	if err != nil {
		return fmt.Errorf("load otp failed: %w", err)
	}
	if !ok {
		return ErrOTPExpired
	}

	if subtle.ConstantTimeCompare([]byte(record.Code), []byte(code)) != 1 {
		attempts, err := m.otpStore.IncrAttempts(ctx, purpose, email, m.otpTTL)
		if err != nil {
			return fmt.Errorf("record otp attempt failed: %w", err)
		}
		if attempts >= maxOTPAttempts {
			_ = m.otpStore.Delete(ctx, purpose, email)
			return ErrTooManyAttempts
		}
		return ErrOTPMismatch
	}

	if dst != nil && len(record.Data) > 0 {
		if err := json.Unmarshal(record.Data, dst); err != nil {
			return fmt.Errorf("unmarshal otp data failed: %w", err)
		}
	}
	return m.otpStore.Delete(ctx, purpose, email)
}

// IssueToken 签发登录 token
func (m *AuthModule) IssueToken(customer *etcustomer.Customer) (string, time.Time, error) {
	return m.tokens.Issue(customer.ID, customer.Role)
}

// ParseToken 校验 token
func (m *AuthModule) ParseToken(token string) (*Principal, error) {
	return m.tokens.Parse(token)
}

// GetCustomer 根据ID查询客户
func (m *AuthModule) GetCustomer(ctx context.Context, id int64) (*etcustomer.Customer, error) {
	return m.customerRepo.GetByID(ctx, id)
}

// GetCustomerByEmail 根据邮箱查询客户
func (m *AuthModule) GetCustomerByEmail(ctx context.Context, email string) (*etcustomer.Customer, error) {
	return m.customerRepo.GetByEmail(ctx, email)
}

// CreateCustomer 创建客户
func (m *AuthModule) CreateCustomer(ctx context.Context, customer *etcustomer.Customer) error {
	return m.customerRepo.Create(ctx, customer)
}

// UpdatePassword 更新密码
func (m *AuthModule) UpdatePassword(ctx context.Context, id int64, hash string) error {
	return m.customerRepo.UpdatePassword(ctx, id, hash)
}

// UpdatePlan 更新套餐
func (m *AuthModule) UpdatePlan(ctx context.Context, id int64, plan etprimitive.Plan) error {
	return m.customerRepo.UpdatePlan(ctx, id, plan)
}

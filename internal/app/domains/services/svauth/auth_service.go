package svauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"freightrate/internal/app/domains/entity/etcustomer"
	"freightrate/internal/app/domains/entity/etprimitive"
	"freightrate/internal/app/domains/modules/mdauth"
	"freightrate/internal/app/domains/repo/rpcustomer"
	"freightrate/internal/app/pkg/errorx"
	"freightrate/internal/app/pkg/idgen"
	"freightrate/pkg/logger"
)

// MinPasswordLength 密码最短长度
const MinPasswordLength = 8

// 错误定义
var (
	ErrWeakPassword       = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// SignupInput 注册信息
type SignupInput struct {
	FirstName   string
	LastName    string
	CompanyName string
	Phone       string
	Email       string
	Password    string
	GSTNumber   string
	Address     string
	State       string
	Pincode     string
}

// pendingSignup 注册待验证数据，随验证码保存在 Redis
type pendingSignup struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Company      string `json:"company"`
	Pincode      string `json:"pincode"`
	PasswordHash string `json:"password_hash"`
}

// Session 登录结果
type Session struct {
	Customer  *etcustomer.Customer
	Token     string
	ExpiresAt time.Time
}

// AuthService 认证服务，负责注册、登录与密码业务编排
type AuthService struct {
	authModule *mdauth.AuthModule
	ids        idgen.Generator
	logger     logger.Logger
}

// NewAuthService 创建认证服务实例
func NewAuthService(authModule *mdauth.AuthModule, ids idgen.Generator, log logger.Logger) *AuthService {
	return &AuthService{
		authModule: authModule,
		ids:        ids,
		logger:     log,
	}
}

// InitiateSignup 发起注册
// 1. 检查邮箱是否已注册
// 2. 校验注册信息并哈希密码
// 3. 生成验证码，与待注册数据一起保存并投递
func (s *AuthService) InitiateSignup(ctx context.Context, in SignupInput) error {
	email := etcustomer.NormalizeEmail(in.Email)
	existing, err := s.authModule.GetCustomerByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("check email duplicate failed: %w", err)
	}
	if existing != nil {
		return errorx.Conflict(rpcustomer.ErrDuplicateEmail)
	}
	if len(in.Password) < MinPasswordLength {
		return errorx.Validation(ErrWeakPassword)
	}

	hash, err := mdauth.HashPassword(in.Password)
	if err != nil {
		return err
	}
	pending := pendingSignup{
		Name:         strings.TrimSpace(strings.TrimSpace(in.FirstName) + " " + strings.TrimSpace(in.LastName)),
		Email:        email,
		Phone:        strings.TrimSpace(in.Phone),
		Company:      strings.TrimSpace(in.CompanyName),
		Pincode:      strings.TrimSpace(in.Pincode),
		PasswordHash: hash,
	}
	// 提前校验，避免验证码发出后才发现数据不合法
	if _, err := pending.toCustomer(1); err != nil {
		return errorx.Validation(err)
	}

	if err := s.authModule.IssueOTP(ctx, mdauth.PurposeSignup, email, pending); err != nil {
		return fmt.Errorf("issue signup otp failed: %w", err)
	}
	s.logger.Infof(ctx, "[Auth] signup initiated: email=%s", email)
	return nil
}

// VerifySignup 校验注册验证码并创建客户
func (s *AuthService) VerifySignup(ctx context.Context, email, otp string) (*Session, error) {
	email = etcustomer.NormalizeEmail(email)

	var pending pendingSignup
	if err := s.authModule.VerifyOTP(ctx, mdauth.PurposeSignup, email, otp, &pending); err != nil {
		return nil, otpError(err)
	}

	customer, err := pending.toCustomer(s.ids.NextID())
	if err != nil {
		return nil, errorx.Validation(err)
	}
	if err := s.authModule.CreateCustomer(ctx, customer); err != nil {
		if errors.Is(err, rpcustomer.ErrDuplicateEmail) {
			return nil, errorx.Conflict(err)
		}
		return nil, fmt.Errorf("save customer failed: %w", err)
	}

	s.logger.Infof(ctx, "[Auth] customer created: customer_id=%d", customer.ID)
	return s.session(customer)
}

// Login 邮箱密码登录
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	customer, err := s.authModule.GetCustomerByEmail(ctx, etcustomer.NormalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("get customer failed: %w", err)
	}
	if customer == nil || !mdauth.CheckPassword(customer.PasswordHash, password) {
		return nil, errorx.Unauthorized(ErrInvalidCredentials.Error())
	}
	return s.session(customer)
}

// ForgotPassword 发送重置密码验证码，邮箱未注册时同样返回成功
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = etcustomer.NormalizeEmail(email)
	customer, err := s.authModule.GetCustomerByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("get customer failed: %w", err)
	}
	if customer == nil {
		s.logger.Infof(ctx, "[Auth] password reset requested for unknown email")
		return nil
	}
	if err := s.authModule.IssueOTP(ctx, mdauth.PurposeReset, email, nil); err != nil {
		return fmt.Errorf("issue reset otp failed: %w", err)
	}
	return nil
}

// ResetPassword 校验重置验证码并设置新密码
func (s *AuthService) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	if len(newPassword) < MinPasswordLength {
		return errorx.Validation(ErrWeakPassword)
	}
	email = etcustomer.NormalizeEmail(email)
	if err := s.authModule.VerifyOTP(ctx, mdauth.PurposeReset, email, otp, nil); err != nil {
		return otpError(err)
	}

	customer, err := s.authModule.GetCustomerByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("get customer failed: %w", err)
	}
	if customer == nil {
		return errorx.NotFound("customer not found")
	}
	return s.setPassword(ctx, customer, newPassword)
}

// ChangePassword 已登录客户修改密码
func (s *AuthService) ChangePassword(ctx context.Context, customerID int64, currentPassword, newPassword string) error {
	if len(newPassword) < MinPasswordLength {
		return errorx.Validation(ErrWeakPassword)
	}
	customer, err := s.Me(ctx, customerID)
	if err != nil {
		return err
	}
	if !mdauth.CheckPassword(customer.PasswordHash, currentPassword) {
		return errorx.Unauthorized("current password is incorrect")
	}
	return s.setPassword(ctx, customer, newPassword)
}

// Me 查询当前客户
func (s *AuthService) Me(ctx context.Context, customerID int64) (*etcustomer.Customer, error) {
	customer, err := s.authModule.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("get customer failed: %w", err)
	}
	if customer == nil {
		return nil, errorx.NotFound("customer not found")
	}
	return customer, nil
}

// SetPlan 管理员变更客户套餐
func (s *AuthService) SetPlan(ctx context.Context, customerID int64, plan string) (*etcustomer.Customer, error) {
	p, err := etprimitive.ParsePlan(plan)
	if err != nil {
		return nil, errorx.Validation(err)
	}
	customer, err := s.Me(ctx, customerID)
	if err != nil {
		return nil, err
	}
	customer.ChangePlan(p)
	if err := s.authModule.UpdatePlan(ctx, customer.ID, p); err != nil {
		return nil, fmt.Errorf("update plan failed: %w", err)
	}
	s.logger.Infof(ctx, "[Auth] plan changed: customer_id=%d, plan=%s", customer.ID, p)
	return customer, nil
}

// Authenticate 校验 Bearer token
func (s *AuthService) Authenticate(token string) (*mdauth.Principal, error) {
	principal, err := s.authModule.ParseToken(token)
	if err != nil {
		return nil, errorx.Unauthorized("invalid or expired token")
	}
	return principal, nil
}

func (s *AuthService) setPassword(ctx context.Context, customer *etcustomer.Customer, password string) error {
	hash, err := mdauth.HashPassword(password)
	if err != nil {
		return err
	}
	if err := customer.ChangePassword(hash); err != nil {
		return errorx.Validation(err)
	}
	if err := s.authModule.UpdatePassword(ctx, customer.ID, hash); err != nil {
		return fmt.Errorf("update password failed: %w", err)
	}
	s.logger.Infof(ctx, "[Auth] password changed: customer_id=%d", customer.ID)
	return nil
}

func (s *AuthService) session(customer *etcustomer.Customer) (*Session, error) {
	token, expiresAt, err := s.authModule.IssueToken(customer)
	if err != nil {
		return nil, err
	}
	return &Session{Customer: customer, Token: token, ExpiresAt: expiresAt}, nil
}

func (p pendingSignup) toCustomer(id int64) (*etcustomer.Customer, error) {
	return etcustomer.NewCustomer(id, p.Name, p.Email, p.Phone, p.Company, p.Pincode, p.PasswordHash)
}

// otpError 验证码错误统一为 400
func otpError(err error) error {
	switch {
	case errors.Is(err, mdauth.ErrOTPExpired), errors.Is(err, mdauth.ErrOTPMismatch), errors.Is(err, mdauth.ErrTooManyAttempts):
		return errorx.Validation(err)
	default:
		return fmt.Errorf("verify otp failed: %w", err)
	}
}

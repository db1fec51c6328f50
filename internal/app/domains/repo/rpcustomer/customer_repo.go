package rpcustomer

import (
	"context"
	"errors"

	"freightrate/internal/app/domains/entity/etcustomer"
	"freightrate/internal/app/domains/entity/etprimitive"
)

// ErrDuplicateEmail 邮箱已注册
var ErrDuplicateEmail = errors.New("email already registered")

// CustomerRepository 客户仓储接口
type CustomerRepository interface {
	// Create 创建客户
	Create(ctx context.Context, customer *etcustomer.Customer) error

	// GetByID 根据ID查询，不存在时返回 nil, nil
	GetByID(ctx context.Context, id int64) (*etcustomer.Customer, error)

	// GetByEmail 根据邮箱查询，不存在时返回 nil, nil
	GetByEmail(ctx context.Context, email string) (*etcustomer.Customer, error)

	// UpdatePassword 更新密码哈希
	UpdatePassword(ctx context.Context, id int64, hash string) error

	// UpdatePlan 更新套餐
	UpdatePlan(ctx context.Context, id int64, plan etprimitive.Plan) error
}

package rpcustomer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"freightrate/common/entity"
	"freightrate/internal/app/domains/entity/etcustomer"
	"freightrate/internal/app/domains/entity/etprimitive"
)

// ErrCustomerNotFound 客户不存在
var ErrCustomerNotFound = errors.New("customer not found")

// CustomerRepositoryImpl 客户仓储实现（MySQL）
type CustomerRepositoryImpl struct {
	db *gorm.DB
}

// NewCustomerRepository 创建客户仓储实例
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &CustomerRepositoryImpl{db: db}
}

// Create 创建客户
func (r *CustomerRepositoryImpl) Create(ctx context.Context, customer *etcustomer.Customer) error {
	existing, err := r.GetByEmail(ctx, customer.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrDuplicateEmail
	}
	return r.db.WithContext(ctx).Create(toGormModel(customer)).Error
}

// GetByID 根据ID查询
func (r *CustomerRepositoryImpl) GetByID(ctx context.Context, id int64) (*etcustomer.Customer, error) {
	return r.first(ctx, "id = ?", id)
}

// GetByEmail 根据邮箱查询
func (r *CustomerRepositoryImpl) GetByEmail(ctx context.Context, email string) (*etcustomer.Customer, error) {
	return r.first(ctx, "email = ?", etcustomer.NormalizeEmail(email))
}

// UpdatePassword 更新密码哈希
func (r *CustomerRepositoryImpl) UpdatePassword(ctx context.Context, id int64, hash string) error {
	return r.update(ctx, id, map[string]interface{}{"password_hash": hash})
}

// UpdatePlan 更新套餐
func (r *CustomerRepositoryImpl) UpdatePlan(ctx context.Context, id int64, plan etprimitive.Plan) error {
	return r.update(ctx, id, map[string]interface{}{"plan": string(plan)})
}

func (r *CustomerRepositoryImpl) first(ctx context.Context, query string, arg interface{}) (*etcustomer.Customer, error) {
	var po entity.Customer
	err := r.db.WithContext(ctx).Where(query, arg).First(&po).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toDomainModel(&po), nil
}

func (r *CustomerRepositoryImpl) update(ctx context.Context, id int64, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	result := r.db.WithContext(ctx).
		Model(&entity.Customer{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %d", ErrCustomerNotFound, id)
	}
	return nil
}

func toGormModel(c *etcustomer.Customer) *entity.Customer {
	return &entity.Customer{
		ID:           c.ID,
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		Company:      c.Company,
		Pincode:      c.Pincode,
		PasswordHash: c.PasswordHash,
		Role:         string(c.Role),
		Plan:         string(c.Plan),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func toDomainModel(po *entity.Customer) *etcustomer.Customer {
	return &etcustomer.Customer{
		ID:           po.ID,
		Name:         po.Name,
		Email:        po.Email,
		Phone:        po.Phone,
		Company:      po.Company,
		Pincode:      po.Pincode,
		PasswordHash: po.PasswordHash,
		Role:         etprimitive.Role(po.Role),
		Plan:         etprimitive.Plan(po.Plan),
		CreatedAt:    po.CreatedAt,
		UpdatedAt:    po.UpdatedAt,
	}
}

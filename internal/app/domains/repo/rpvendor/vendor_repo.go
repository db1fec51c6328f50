package rpvendor

import (
	"context"
	"errors"

	"freightrate/internal/app/domains/entity/etprimitive"
	"freightrate/internal/app/domains/entity/etvendor"
)

// ErrDuplicateVendor 同一归属下承运商名称重复
var ErrDuplicateVendor = errors.New("vendor with this name already exists")

// VendorRepository 承运商仓储接口
type VendorRepository interface {
	// Create 创建承运商，(owner_id, name) 重复时返回 ErrDuplicateVendor
	Create(ctx context.Context, vendor *etvendor.Vendor) error

	// GetByID 根据ID查询，不存在时返回 nil, nil
	GetByID(ctx context.Context, id int64) (*etvendor.Vendor, error)

	// GetByName 按归属和名称查询（名称大小写不敏感），不存在时返回 nil, nil
	GetByName(ctx context.Context, ownerID int64, name string) (*etvendor.Vendor, error)

	// ListByOwner 查询客户的协议承运商
	ListByOwner(ctx context.Context, ownerID int64) ([]*etvendor.Vendor, error)

	// ListCandidates 报价候选：客户的协议承运商 + 同运输方式且已配置价格的公共承运商
	ListCandidates(ctx context.Context, ownerID int64, mode etprimitive.Mode) ([]*etvendor.Vendor, error)

	// SearchNames 名称包含 query 的承运商（公共 + 客户自有），最多 limit 条
	SearchNames(ctx context.Context, ownerID int64, query string, limit int) ([]string, error)

	// UpdatePricing 更新价格表与时效表
	UpdatePricing(ctx context.Context, vendor *etvendor.Vendor) error
}

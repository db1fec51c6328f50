package rppincode

import (
	"context"

	"freightrate/internal/app/domains/entity/etpincode"
)

// PincodeRepository 邮编目录仓储接口
type PincodeRepository interface {
	// Lookup 查询承运商（0 为全局目录）下的邮编，不存在时返回 etpincode.ErrNotFound
	Lookup(ctx context.Context, vendorID int64, pincode string) (*etpincode.Entry, error)
}

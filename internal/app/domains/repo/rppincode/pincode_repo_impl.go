package rppincode

import (
	"context"
	"errors"

	"freightrate/common/entity"
	"freightrate/internal/app/domains/entity/etpincode"

	"gorm.io/gorm"
)

// PincodeRepositoryImpl 邮编目录仓储实现（MySQL）
type PincodeRepositoryImpl struct {
	db *gorm.DB
}

// NewPincodeRepository 创建邮编目录仓储实例
func NewPincodeRepository(db *gorm.DB) PincodeRepository {
	return &PincodeRepositoryImpl{db: db}
}

// Lookup 按 (vendor_id, pincode) 唯一键查询
func (r *PincodeRepositoryImpl) Lookup(ctx context.Context, vendorID int64, pincode string) (*etpincode.Entry, error) {
	var po entity.PincodeZone
	err := r.db.WithContext(ctx).
		Where("vendor_id = ? AND pincode = ?", vendorID, pincode).
		First(&po).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, etpincode.ErrNotFound
		}
		return nil, err
	}
	return toDomainModel(&po), nil
}

func toDomainModel(po *entity.PincodeZone) *etpincode.Entry {
	return &etpincode.Entry{
		VendorID: po.VendorID,
		Pincode:  po.Pincode,
		Zone:     po.Zone,
		State:    po.State,
		City:     po.City,
		ODA:      po.ODA,
	}
}

package rpvendor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"freightrate/common/entity"
	"freightrate/internal/app/domains/entity/etprimitive"
	"freightrate/internal/app/domains/entity/etvendor"
)

// VendorRepositoryImpl 承运商仓储实现（MySQL）
type VendorRepositoryImpl struct {
	db *gorm.DB
}

// NewVendorRepository 创建承运商仓储实例
func NewVendorRepository(db *gorm.DB) VendorRepository {
	return &VendorRepositoryImpl{db: db}
}

// Create 创建承运商
func (r *VendorRepositoryImpl) Create(ctx context.Context, vendor *etvendor.Vendor) error {
	existing, err := r.GetByName(ctx, vendor.OwnerID, vendor.Name)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: %s", ErrDuplicateVendor, vendor.Name)
	}

	po, err := toGormModel(vendor)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(po).Error
}

// GetByID 根据ID查询
func (r *VendorRepositoryImpl) GetByID(ctx context.Context, id int64) (*etvendor.Vendor, error) {
	var po entity.Vendor
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&po).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toDomainModel(&po)
}

// GetByName 按归属和名称查询
func (r *VendorRepositoryImpl) GetByName(ctx context.Context, ownerID int64, name string) (*etvendor.Vendor, error) {
	var po entity.Vendor
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND LOWER(name) = ?", ownerID, strings.ToLower(strings.TrimSpace(name))).
		First(&po).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toDomainModel(&po)
}

// ListByOwner 查询客户的协议承运商
func (r *VendorRepositoryImpl) ListByOwner(ctx context.Context, ownerID int64) ([]*etvendor.Vendor, error) {
	var pos []entity.Vendor
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("name ASC").
		Find(&pos).Error
	if err != nil {
		return nil, err
	}
	return toDomainModels(pos)
}

// ListCandidates 报价候选承运商
func (r *VendorRepositoryImpl) ListCandidates(ctx context.Context, ownerID int64, mode etprimitive.Mode) ([]*etvendor.Vendor, error) {
	var pos []entity.Vendor
	err := r.db.WithContext(ctx).
		Where("owner_id IN ? AND mode = ? AND rate_card IS NOT NULL", []int64{0, ownerID}, string(mode)).
		Order("owner_id DESC, name ASC").
		Find(&pos).Error
	if err != nil {
		return nil, err
	}
	return toDomainModels(pos)
}

// SearchNames 名称模糊查询
func (r *VendorRepositoryImpl) SearchNames(ctx context.Context, ownerID int64, query string, limit int) ([]string, error) {
	var names []string
	pattern := "%" + escapeLike(strings.ToLower(strings.TrimSpace(query))) + "%"
	err := r.db.WithContext(ctx).
		Model(&entity.Vendor{}).
		Where("owner_id IN ? AND LOWER(name) LIKE ? ESCAPE '!'", []int64{0, ownerID}, pattern).
		Order("name ASC").
		Limit(limit).
		Distinct().
		Pluck("name", &names).Error
	return names, err
}

// UpdatePricing 更新价格表与时效表
func (r *VendorRepositoryImpl) UpdatePricing(ctx context.Context, vendor *etvendor.Vendor) error {
	rateCard, err := marshalRateCard(vendor.RateCard)
	if err != nil {
		return err
	}
	transit, err := marshalNullable(vendor.TransitDays)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&entity.Vendor{}).
		Where("id = ?", vendor.ID).
		Updates(map[string]interface{}{
			"rate_card":    rateCard,
			"transit_days": transit,
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("vendor not found: %d", vendor.ID)
	}
	return nil
}

// escapeLike 转义 LIKE 通配符，'!' 作为转义符在 MySQL 与 sqlite 中行为一致
func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}

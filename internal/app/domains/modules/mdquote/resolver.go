package mdquote

import (
	"context"
	"errors"

	"freightrate/internal/app/domains/entity/etpincode"
	"freightrate/internal/app/domains/entity/etquote"
	"freightrate/internal/app/domains/entity/etvendor"
	"freightrate/internal/app/domains/repo/rppincode"
)

// ZoneResolver 将邮编解析为承运商区域
type ZoneResolver struct {
	pincodeRepo rppincode.PincodeRepository
}

// NewZoneResolver 创建区域解析器
func NewZoneResolver(pincodeRepo rppincode.PincodeRepository) *ZoneResolver {
	return &ZoneResolver{pincodeRepo: pincodeRepo}
}

// Resolve 解析顺序：
// 1. 承运商 partial 区域中显式列出的邮编
// 2. 承运商自己的邮编表
// 3. 全局目录，且该区域在承运商处为全覆盖
// 返回 ok=false 表示承运商不服务该邮编
func (r *ZoneResolver) Resolve(ctx context.Context, v *etvendor.Vendor, pin string) (zone string, oda bool, ok bool, err error) {
	global, err := r.lookup(ctx, etpincode.GlobalVendorID, pin)
	if err != nil {
		return "", false, false, err
	}

	if zone, found := v.ExplicitZone(pin); found {
		return zone, global != nil && global.ODA, true, nil
	}

	scoped, err := r.lookup(ctx, v.ID, pin)
	if err != nil {
		return "", false, false, err
	}
	if scoped != nil {
		if !v.HasZone(scoped.Zone) {
			return "", false, false, nil
		}
		return scoped.Zone, scoped.ODA, true, nil
	}

	if global != nil && v.CoversAll(global.Zone) {
		return global.Zone, global.ODA, true, nil
	}
	return "", false, false, nil
}

// ResolveLane 解析起终点区域并读取单价与时效，ok=false 表示承运商不服务该线路
func (r *ZoneResolver) ResolveLane(ctx context.Context, v *etvendor.Vendor, s *etquote.Shipment) (*etquote.Lane, bool, error) {
	origin, _, ok, err := r.Resolve(ctx, v, s.FromPincode)
	if err != nil || !ok {
		return nil, false, err
	}
	dest, oda, ok, err := r.Resolve(ctx, v, s.ToPincode)
	if err != nil || !ok {
		return nil, false, err
	}

	rate, ok := v.Rate(origin, dest)
	if !ok {
		return nil, false, nil
	}
	days, _ := v.Transit(origin, dest)

	return &etquote.Lane{
		OriginZone:      origin,
		DestinationZone: dest,
		UnitRate:        rate,
		TransitDays:     days,
		DestinationODA:  oda,
	}, true, nil
}

func (r *ZoneResolver) lookup(ctx context.Context, vendorID int64, pin string) (*etpincode.Entry, error) {
	entry, err := r.pincodeRepo.Lookup(ctx, vendorID, pin)
	if errors.Is(err, etpincode.ErrNotFound) {
		return nil, nil
	}
	return entry, err
}

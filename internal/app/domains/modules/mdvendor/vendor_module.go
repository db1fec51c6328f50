package mdvendor

import (
	"context"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"freightrate/internal/app/domains/entity/etprimitive"
	"freightrate/internal/app/domains/entity/etvendor"
	"freightrate/internal/app/domains/repo/rpvendor"
)

const (
	// MaxSuggestions 名称联想最多返回条数
	MaxSuggestions = 10
	// searchWindow 参与排序的候选数
	searchWindow = 50
)

// VendorModule 承运商模块
type VendorModule struct {
	vendorRepo rpvendor.VendorRepository
}

// NewVendorModule 创建承运商模块
func NewVendorModule(vendorRepo rpvendor.VendorRepository) *VendorModule {
	return &VendorModule{vendorRepo: vendorRepo}
}

// CreateVendor 创建承运商
func (m *VendorModule) CreateVendor(ctx context.Context, vendor *etvendor.Vendor) error {
	return m.vendorRepo.Create(ctx, vendor)
}

// GetVendor 根据ID查询承运商
func (m *VendorModule) GetVendor(ctx context.Context, id int64) (*etvendor.Vendor, error) {
	return m.vendorRepo.GetByID(ctx, id)
}

// GetPublicVendorByName 按名称查询公共承运商
func (m *VendorModule) GetPublicVendorByName(ctx context.Context, name string) (*etvendor.Vendor, error) {
	return m.vendorRepo.GetByName(ctx, 0, name)
}

// ListTiedUp 查询客户的协议承运商
func (m *VendorModule) ListTiedUp(ctx context.Context, customerID int64) ([]*etvendor.Vendor, error) {
	return m.vendorRepo.ListByOwner(ctx, customerID)
}

// ListCandidates 查询报价候选承运商
func (m *VendorModule) ListCandidates(ctx context.Context, customerID int64, mode etprimitive.Mode) ([]*etvendor.Vendor, error) {
	return m.vendorRepo.ListCandidates(ctx, customerID, mode)
}

// UpdatePricing 保存价格表
func (m *VendorModule) UpdatePricing(ctx context.Context, vendor *etvendor.Vendor) error {
	return m.vendorRepo.UpdatePricing(ctx, vendor)
}

// Suggest 名称联想：包含查询串的承运商，按与查询串的编辑距离排序
func (m *VendorModule) Suggest(ctx context.Context, customerID int64, query string) ([]string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []string{}, nil
	}
	names, err := m.vendorRepo.SearchNames(ctx, customerID, query, searchWindow)
	if err != nil {
		return nil, err
	}
	return RankSuggestions(query, names, MaxSuggestions), nil
}

// RankSuggestions 按编辑距离（大小写不敏感）升序排序，距离相同时按名称排序
func RankSuggestions(query string, names []string, limit int) []string {
	q := strings.ToLower(query)
	type scored struct {
		name     string
		distance int
	}
	list := make([]scored, 0, len(names))
	for _, n := range names {
		list = append(list, scored{name: n, distance: levenshtein.ComputeDistance(q, strings.ToLower(n))})
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].distance != list[j].distance {
			return list[i].distance < list[j].distance
		}
		return list[i].name < list[j].name
	})

	if len(list) > limit {
		list = list[:limit]
	}
	result := make([]string, 0, len(list))
	for _, s := range list {
		result = append(result, s.name)
	}
	return result
}

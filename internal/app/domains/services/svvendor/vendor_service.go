package svvendor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"freightrate/common/model"
	"freightrate/internal/app/domains/entity/etimport"
	"freightrate/internal/app/domains/entity/etprimitive"
	"freightrate/internal/app/domains/entity/etvendor"
	"freightrate/internal/app/domains/modules/mdvendor"
	"freightrate/internal/app/domains/repo/rpvendor"
	"freightrate/internal/app/domains/services/svimport"
	"freightrate/internal/app/pkg/errorx"
	"freightrate/internal/app/pkg/idgen"
	"freightrate/pkg/logger"
	"freightrate/pkg/pincode"
)

// TiedUpInput 客户录入的协议承运商
type TiedUpInput struct {
	Name        string
	Code        string
	Phone       string
	Email       string
	GSTNo       string
	Mode        string
	Address     string
	State       string
	Pincode     string
	Zones       []etvendor.Zone
	RateCard    *etvendor.RateCard
	TransitDays [][]float64
}

// Skipped 未录入的条目及原因
type Skipped struct {
	Index  int
	Name   string
	Reason string
}

// PriceInput 公共承运商价格表
type PriceInput struct {
	CompanyName string
	RateCard    *etvendor.RateCard
	ZoneRates   map[string]map[string]float64 // 可选，{from:{to:rate}}，覆盖 RateCard.Matrix
	ZoneTransit map[string]map[string]float64 // 可选，{from:{to:days}}
}

// VendorService 承运商服务，负责承运商业务编排
type VendorService struct {
	vendorModule  *mdvendor.VendorModule
	importService *svimport.ImportService
	ids           idgen.Generator
	logger        logger.Logger
}

// NewVendorService 创建承运商服务实例
func NewVendorService(vendorModule *mdvendor.VendorModule, importService *svimport.ImportService, ids idgen.Generator, log logger.Logger) *VendorService {
	return &VendorService{
		vendorModule:  vendorModule,
		importService: importService,
		ids:           ids,
		logger:        log,
	}
}

// AddTiedUpVendors 批量录入协议承运商，名称或编码为空、校验失败、重名的条目跳过并返回原因
func (s *VendorService) AddTiedUpVendors(ctx context.Context, customerID int64, inputs []TiedUpInput) ([]*etvendor.Vendor, []Skipped, error) {
	if len(inputs) == 0 {
		return nil, nil, errorx.Validation(errors.New("at least one vendor is required"))
	}

	created := make([]*etvendor.Vendor, 0, len(inputs))
	skipped := make([]Skipped, 0)
	for i, in := range inputs {
		vendor, err := s.buildTiedUp(customerID, in)
		if err == nil {
			err = s.vendorModule.CreateVendor(ctx, vendor)
		}
		switch {
		case err == nil:
			created = append(created, vendor)
		case errors.Is(err, rpvendor.ErrDuplicateVendor) || isValidation(err):
			skipped = append(skipped, Skipped{Index: i, Name: in.Name, Reason: err.Error()})
		default:
			return nil, nil, fmt.Errorf("save vendor %q failed: %w", in.Name, err)
		}
	}

	s.logger.Infof(ctx, "[Vendor] tied-up vendors added: customer_id=%d, created=%d, skipped=%d",
		customerID, len(created), len(skipped))
	return created, skipped, nil
}

func (s *VendorService) buildTiedUp(customerID int64, in TiedUpInput) (*etvendor.Vendor, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, etvendor.ErrInvalidVendorName
	}
	code := strings.TrimSpace(in.Code)
	if code == "" {
		return nil, etvendor.ErrInvalidVendorCode
	}
	mode := etprimitive.ModeRoad
	if in.Mode != "" {
		m, err := etprimitive.ParseMode(in.Mode)
		if err != nil {
			return nil, err
		}
		mode = m
	}
	zones := in.Zones
	if len(zones) == 0 {
		zones = defaultZones()
	}

	vendor, err := etvendor.NewVendor(s.ids.NextID(), customerID, name, mode, zones)
	if err != nil {
		return nil, err
	}
	vendor.Code = code
	vendor.Phone = in.Phone
	vendor.Email = in.Email
	vendor.GSTNo = in.GSTNo
	vendor.Address = in.Address
	vendor.State = in.State
	vendor.Pincode = in.Pincode

	if in.RateCard != nil {
		if err := vendor.SetRateCard(in.RateCard, in.TransitDays); err != nil {
			return nil, err
		}
	}
	return vendor, nil
}

// ListTiedUp 查询客户的协议承运商
func (s *VendorService) ListTiedUp(ctx context.Context, customerID int64) ([]*etvendor.Vendor, error) {
	return s.vendorModule.ListTiedUp(ctx, customerID)
}

// AddTransporter 新增公共承运商并导入其邮编表
// 1. 校验名称未被占用
// 2. 创建承运商（所列区域为全覆盖）
// 3. 创建导入任务，Smart Wait
func (s *VendorService) AddTransporter(ctx context.Context, name, mode string, zoneNames []string, rows []model.PincodeRow, wait time.Duration) (*etvendor.Vendor, *etimport.Job, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil, errorx.Validation(etvendor.ErrInvalidVendorName)
	}
	parsedMode := etprimitive.ModeRoad
	if mode != "" {
		m, err := etprimitive.ParseMode(mode)
		if err != nil {
			return nil, nil, errorx.Validation(err)
		}
		parsedMode = m
	}
	if len(rows) == 0 {
		return nil, nil, errorx.Validation(etimport.ErrNoRows)
	}

	existing, err := s.vendorModule.GetPublicVendorByName(ctx, name)
	if err != nil {
		return nil, nil, fmt.Errorf("check transporter duplicate failed: %w", err)
	}
	if existing != nil {
		return nil, nil, errorx.Conflict(rpvendor.ErrDuplicateVendor)
	}

	zones := make([]etvendor.Zone, 0, len(zoneNames))
	for _, z := range zoneNames {
		zones = append(zones, etvendor.Zone{Name: pincode.NormalizeZone(z), Coverage: etvendor.CoverageAll})
	}
	vendor, err := etvendor.NewVendor(s.ids.NextID(), 0, name, parsedMode, zones)
	if err != nil {
		return nil, nil, errorx.Validation(err)
	}
	if err := s.vendorModule.CreateVendor(ctx, vendor); err != nil {
		if errors.Is(err, rpvendor.ErrDuplicateVendor) {
			return nil, nil, errorx.Conflict(err)
		}
		return nil, nil, fmt.Errorf("save transporter failed: %w", err)
	}

	job, err := s.importService.StartImport(ctx, vendor.ID, rows, wait)
	if err != nil {
		return nil, nil, err
	}
	return vendor, job, nil
}

// SetPrice 设置公共承运商价格表
func (s *VendorService) SetPrice(ctx context.Context, in PriceInput) (*etvendor.Vendor, error) {
	if in.RateCard == nil {
		return nil, errorx.Validation(etvendor.ErrRateCardMissing)
	}
	vendor, err := s.vendorModule.GetPublicVendorByName(ctx, strings.TrimSpace(in.CompanyName))
	if err != nil {
		return nil, fmt.Errorf("get transporter failed: %w", err)
	}
	if vendor == nil {
		return nil, errorx.NotFound("transporter not found")
	}

	card := *in.RateCard
	if len(in.ZoneRates) > 0 {
		matrix, err := etvendor.MatrixFromZoneRates(vendor.ActiveZones(), in.ZoneRates)
		if err != nil {
			return nil, errorx.Validation(err)
		}
		card.Matrix = matrix
	}
	var transit [][]float64
	if len(in.ZoneTransit) > 0 {
		transit, err = etvendor.MatrixFromZoneRates(vendor.ActiveZones(), in.ZoneTransit)
		if err != nil {
			return nil, errorx.Validation(fmt.Errorf("transitDays: %w", err))
		}
	}

	if err := vendor.SetRateCard(&card, transit); err != nil {
		return nil, errorx.Validation(err)
	}
	if err := s.vendorModule.UpdatePricing(ctx, vendor); err != nil {
		return nil, fmt.Errorf("save pricing failed: %w", err)
	}

	s.logger.Infof(ctx, "[Vendor] pricing updated: vendor_id=%d, name=%s, zones=%d", vendor.ID, vendor.Name, len(vendor.ActiveZones()))
	return vendor, nil
}

// Suggest 承运商名称联想
func (s *VendorService) Suggest(ctx context.Context, customerID int64, query string) ([]string, error) {
	return s.vendorModule.Suggest(ctx, customerID, query)
}

func defaultZones() []etvendor.Zone {
	zones := make([]etvendor.Zone, 0, len(etvendor.DefaultZoneNames))
	for _, name := range etvendor.DefaultZoneNames {
		zones = append(zones, etvendor.Zone{Name: name, Coverage: etvendor.CoverageAll})
	}
	return zones
}

// isValidation 实体校验错误（跳过该条目而不是中断整批）
func isValidation(err error) bool {
	for _, target := range []error{
		etvendor.ErrInvalidVendorName, etvendor.ErrInvalidVendorCode, etvendor.ErrDuplicateZone,
		etvendor.ErrNoActiveZones, etvendor.ErrInvalidCoverage, etvendor.ErrEmptyPartialZone,
		etvendor.ErrInvalidPincode, etvendor.ErrUnknownZone, etvendor.ErrEmptyZoneName, etvendor.ErrMatrixNotSquare,
		etvendor.ErrNegativeCharge, etvendor.ErrInvalidPercentage, etprimitive.ErrUnknownMode,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

package request

import (
	"errors"
	"strings"

	"freightrate/internal/app/domains/entity/etprimitive"
	"freightrate/internal/app/domains/entity/etquote"
	"freightrate/internal/app/domains/entity/etvendor"
	"freightrate/internal/app/domains/repo/rpvendor"
	"freightrate/internal/app/domains/services/svauth"
	"freightrate/internal/app/domains/services/svvendor"
)

// ErrIncompleteShipment 未提供 boxes 时单一规格字段必须完整
var ErrIncompleteShipment = errors.New("length, width, height and weight are required when boxes is empty")

// ToShipmentEntity 将 Request DTO 转换为领域对象
func (r *CalculateRequest) ToShipmentEntity() (*etquote.Shipment, error) {
	mode, err := etprimitive.ParseMode(r.ModeOfTransport)
	if err != nil {
		return nil, err
	}
	payment, err := etprimitive.ParsePaymentMode(r.PaymentMode)
	if err != nil {
		return nil, err
	}

	boxes, err := r.toBoxesEntity()
	if err != nil {
		return nil, err
	}

	return &etquote.Shipment{
		FromPincode: strings.TrimSpace(r.FromPincode),
		ToPincode:   strings.TrimSpace(r.ToPincode),
		Mode:        mode,
		Boxes:       boxes,
		Express:     r.Express,
		Fragile:     r.Fragile,
		PaymentMode: payment,
		Appointment: r.Appointment,
	}, nil
}

func (r *CalculateRequest) toBoxesEntity() ([]etquote.Box, error) {
	if len(r.Boxes) > 0 {
		boxes := make([]etquote.Box, 0, len(r.Boxes))
		for _, b := range r.Boxes {
			boxes = append(boxes, etquote.Box{
				Count:        b.Count,
				Length:       b.Length,
				Width:        b.Width,
				Height:       b.Height,
				WeightPerBox: b.Weight,
			})
		}
		return boxes, nil
	}

	if r.Length <= 0 || r.Width <= 0 || r.Height <= 0 || r.Weight <= 0 {
		return nil, ErrIncompleteShipment
	}
	count := r.NoOfBoxes
	if count == 0 {
		count = 1
	}
	return []etquote.Box{{
		Count:        count,
		Length:       r.Length,
		Width:        r.Width,
		Height:       r.Height,
		WeightPerBox: r.Weight,
	}}, nil
}

// ToTiedUpInputs 转换为服务层入参
func (r *AddTiedUpRequest) ToTiedUpInputs() []svvendor.TiedUpInput {
	inputs := make([]svvendor.TiedUpInput, 0, len(r.Vendors))
	for _, v := range r.Vendors {
		in := svvendor.TiedUpInput{
			Name:        v.CompanyName,
			Code:        v.VendorCode,
			Phone:       v.VendorPhone,
			Email:       v.VendorEmail,
			GSTNo:       v.GSTNo,
			Mode:        v.Mode,
			Address:     v.Address,
			State:       v.State,
			Pincode:     v.Pincode,
			Zones:       toZonesEntity(v.PriceChart),
			TransitDays: v.TransitDays,
		}
		if v.PriceRate != nil {
			in.RateCard = rpvendor.RateCardFromRecord(v.PriceRate)
		}
		inputs = append(inputs, in)
	}
	return inputs
}

func toZonesEntity(charts []ZoneChart) []etvendor.Zone {
	zones := make([]etvendor.Zone, 0, len(charts))
	for _, c := range charts {
		coverage := etvendor.Coverage(strings.ToLower(strings.TrimSpace(c.Coverage)))
		if coverage == "" {
			coverage = etvendor.CoverageAll
			if len(c.Pincodes) > 0 {
				coverage = etvendor.CoveragePartial
			}
		}
		zones = append(zones, etvendor.Zone{
			Name:     c.Name,
			Coverage: coverage,
			Pincodes: c.Pincodes,
		})
	}
	return zones
}

// ToPriceInput 转换为服务层入参
func (r *AddPriceRequest) ToPriceInput() svvendor.PriceInput {
	return svvendor.PriceInput{
		CompanyName: r.CompanyName,
		RateCard:    rpvendor.RateCardFromRecord(r.PriceRate),
		ZoneRates:   r.ZoneRates,
		ZoneTransit: r.TransitDays,
	}
}

// ToSignupInput 转换为服务层入参
func (r *SignupRequest) ToSignupInput() svauth.SignupInput {
	return svauth.SignupInput{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		CompanyName: r.CompanyName,
		Phone:       r.Phone,
		Email:       r.Email,
		Password:    r.Password,
		GSTNumber:   r.GSTNumber,
		Address:     r.Address,
		State:       r.State,
		Pincode:     r.Pincode,
	}
}

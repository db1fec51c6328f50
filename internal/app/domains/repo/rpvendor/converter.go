package rpvendor

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"freightrate/common/entity"
	"freightrate/common/model"
	"freightrate/internal/app/domains/entity/etprimitive"
	"freightrate/internal/app/domains/entity/etvendor"
)

// toGormModel 领域对象转换为 GORM 模型
func toGormModel(v *etvendor.Vendor) (*entity.Vendor, error) {
	zones := make([]model.ZoneRecord, 0, len(v.Zones))
	for _, z := range v.Zones {
		zones = append(zones, model.ZoneRecord{
			Name:     z.Name,
			Coverage: string(z.Coverage),
			Pincodes: z.Pincodes,
		})
	}
	zonesJSON, err := json.Marshal(zones)
	if err != nil {
		return nil, fmt.Errorf("marshal zones failed: %w", err)
	}
	rateCard, err := marshalRateCard(v.RateCard)
	if err != nil {
		return nil, err
	}
	transit, err := marshalNullable(v.TransitDays)
	if err != nil {
		return nil, err
	}

	return &entity.Vendor{
		ID:          v.ID,
		OwnerID:     v.OwnerID,
		Name:        v.Name,
		Code:        v.Code,
		Phone:       v.Phone,
		Email:       v.Email,
		GSTNo:       v.GSTNo,
		Mode:        string(v.Mode),
		Address:     v.Address,
		State:       v.State,
		Pincode:     v.Pincode,
		Zones:       zonesJSON,
		RateCard:    rateCard,
		TransitDays: transit,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}, nil
}

// toDomainModel GORM 模型转换为领域对象
func toDomainModel(po *entity.Vendor) (*etvendor.Vendor, error) {
	var zones []model.ZoneRecord
	if err := json.Unmarshal(po.Zones, &zones); err != nil {
		return nil, fmt.Errorf("unmarshal zones failed: %w", err)
	}

	v := &etvendor.Vendor{
		ID:        po.ID,
		OwnerID:   po.OwnerID,
		Name:      po.Name,
		Code:      po.Code,
		Phone:     po.Phone,
		Email:     po.Email,
		GSTNo:     po.GSTNo,
		Mode:      etprimitive.Mode(po.Mode),
		Address:   po.Address,
		State:     po.State,
		Pincode:   po.Pincode,
		Zones:     make([]etvendor.Zone, 0, len(zones)),
		CreatedAt: po.CreatedAt,
		UpdatedAt: po.UpdatedAt,
	}
	for _, z := range zones {
		v.Zones = append(v.Zones, etvendor.Zone{
			Name:     z.Name,
			Coverage: etvendor.Coverage(z.Coverage),
			Pincodes: z.Pincodes,
		})
	}

	if len(po.RateCard) > 0 && string(po.RateCard) != "null" {
		var rec model.RateCardRecord
		if err := json.Unmarshal(po.RateCard, &rec); err != nil {
			return nil, fmt.Errorf("unmarshal rate card failed: %w", err)
		}
		v.RateCard = RateCardFromRecord(&rec)
	}
	if len(po.TransitDays) > 0 && string(po.TransitDays) != "null" {
		if err := json.Unmarshal(po.TransitDays, &v.TransitDays); err != nil {
			return nil, fmt.Errorf("unmarshal transit days failed: %w", err)
		}
	}

	return etvendor.Restore(v)
}

func toDomainModels(pos []entity.Vendor) ([]*etvendor.Vendor, error) {
	vendors := make([]*etvendor.Vendor, 0, len(pos))
	for i := range pos {
		v, err := toDomainModel(&pos[i])
		if err != nil {
			return nil, err
		}
		vendors = append(vendors, v)
	}
	return vendors, nil
}

// RateCardFromRecord 持久化结构转换为领域对象
func RateCardFromRecord(rec *model.RateCardRecord) *etvendor.RateCard {
	pair := func(p model.ChargePairRecord) etvendor.ChargePair {
		return etvendor.ChargePair{Variable: p.Variable, Fixed: p.Fixed}
	}
	return &etvendor.RateCard{
		Matrix:             rec.Matrix,
		FuelSurcharge:      rec.FuelSurcharge,
		DocketCharge:       rec.DocketCharge,
		MinWeight:          rec.MinWeight,
		ROV:                pair(rec.ROVCharges),
		Insurance:          pair(rec.InsuranceCharges),
		ODA:                pair(rec.ODACharges),
		COD:                pair(rec.CODCharges),
		Prepaid:            pair(rec.PrepaidCharges),
		ToPay:              pair(rec.TopayCharges),
		Handling:           pair(rec.HandlingCharges),
		FM:                 pair(rec.FMCharges),
		Appointment:        pair(rec.AppointmentCharges),
		DivisorCoefficient: rec.DivisorCoefficient,
		MinCharges:         rec.MinCharges,
		GreenTax:           rec.GreenTax,
		DACCCharges:        rec.DACCCharges,
		MiscCharges:        rec.MiscellaneousCharges,
	}
}

// RateCardToRecord 领域对象转换为持久化结构
func RateCardToRecord(card *etvendor.RateCard) *model.RateCardRecord {
	pair := func(p etvendor.ChargePair) model.ChargePairRecord {
		return model.ChargePairRecord{Variable: p.Variable, Fixed: p.Fixed}
	}
	return &model.RateCardRecord{
		Matrix:               card.Matrix,
		FuelSurcharge:        card.FuelSurcharge,
		DocketCharge:         card.DocketCharge,
		MinWeight:            card.MinWeight,
		ROVCharges:           pair(card.ROV),
		InsuranceCharges:     pair(card.Insurance),
		ODACharges:           pair(card.ODA),
		CODCharges:           pair(card.COD),
		PrepaidCharges:       pair(card.Prepaid),
		TopayCharges:         pair(card.ToPay),
		HandlingCharges:      pair(card.Handling),
		FMCharges:            pair(card.FM),
		AppointmentCharges:   pair(card.Appointment),
		DivisorCoefficient:   card.DivisorCoefficient,
		MinCharges:           card.MinCharges,
		GreenTax:             card.GreenTax,
		DACCCharges:          card.DACCCharges,
		MiscellaneousCharges: card.MiscCharges,
	}
}

func marshalRateCard(card *etvendor.RateCard) (datatypes.JSON, error) {
	if card == nil {
		return nil, nil
	}
	data, err := json.Marshal(RateCardToRecord(card))
	if err != nil {
		return nil, fmt.Errorf("marshal rate card failed: %w", err)
	}
	return data, nil
}

func marshalNullable(v [][]float64) (datatypes.JSON, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal transit days failed: %w", err)
	}
	return data, nil
}

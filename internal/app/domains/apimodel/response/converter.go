package response

import (
	"freightrate/common/model"
	"freightrate/internal/app/domains/entity/etcustomer"
	"freightrate/internal/app/domains/entity/etimport"
	"freightrate/internal/app/domains/entity/etquote"
	"freightrate/internal/app/domains/entity/etvendor"
	"freightrate/internal/app/domains/repo/rpvendor"
	"freightrate/internal/app/domains/services/svauth"
	"freightrate/internal/app/domains/services/svvendor"
)

// FromResultEntity 从领域对象转换为询价响应
func FromResultEntity(result *etquote.Result) *CalculateResponse {
	return &CalculateResponse{
		TiedUpResult:  fromQuotesEntity(result.TiedUp),
		CompanyResult: fromQuotesEntity(result.Company),
	}
}

func fromQuotesEntity(quotes []*etquote.Quote) []*QuoteResponse {
	resp := make([]*QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		resp = append(resp, FromQuoteEntity(q))
	}
	return resp
}

// FromQuoteEntity 从领域对象转换为报价响应
func FromQuoteEntity(q *etquote.Quote) *QuoteResponse {
	resp := &QuoteResponse{
		TransporterName:    q.TransporterName,
		ModeOfTransport:    q.Mode.Display(),
		OriginPincode:      q.OriginPincode,
		OriginZone:         q.OriginZone,
		DestinationPincode: q.DestinationPincode,
		DestinationZone:    q.DestinationZone,
		ActualWeight:       q.ActualWeight,
		VolumetricWeight:   q.VolumetricWeight,
		ChargeableWeight:   q.ChargeableWeight,
		TotalCharges:       q.TotalCharges,
		Price:              q.TotalCharges,
		EstimatedTime:      q.EstimatedTime,
		IsBestValue:        q.IsBestValue,
		Tags:               q.Tags,
		Locked:             q.Locked,
	}
	if q.Charges != nil {
		c := q.Charges
		resp.ChargeBreakdown = &ChargeBreakdown{
			UnitPrice:          q.UnitPrice,
			BaseFreight:        c.BaseFreight,
			FuelSurcharge:      c.FuelSurcharge,
			ROVCharges:         c.ROV,
			InsuranceCharges:   c.Insurance,
			ODACharges:         c.ODA,
			CODCharges:         c.COD,
			PrepaidCharges:     c.Prepaid,
			TopayCharges:       c.ToPay,
			HandlingCharges:    c.Handling,
			FMCharges:          c.FM,
			AppointmentCharges: c.Appointment,
			DocketCharges:      c.Docket,
			GreenTax:           c.GreenTax,
			DACCCharges:        c.DACC,
			MiscCharges:        c.Misc,
			MinCharges:         c.MinCharges,
			MinChargesApplied:  c.MinChargesApplied,
		}
	}
	return resp
}

// FromRecordEntities 从领域对象转换为询价历史
func FromRecordEntities(records []*etquote.Record) []*QuoteRecordResponse {
	resp := make([]*QuoteRecordResponse, 0, len(records))
	for _, r := range records {
		item := &QuoteRecordResponse{
			ID:        r.ID,
			CreatedAt: r.CreatedAt,
		}
		if r.Shipment != nil {
			item.FromPincode = r.Shipment.FromPincode
			item.ToPincode = r.Shipment.ToPincode
			item.ModeOfTransport = r.Shipment.Mode.Display()
		}
		if r.Result != nil {
			item.Result = FromResultEntity(r.Result)
		}
		resp = append(resp, item)
	}
	return resp
}

// FromVendorEntity 从领域对象转换为承运商响应
func FromVendorEntity(v *etvendor.Vendor) *VendorResponse {
	resp := &VendorResponse{
		ID:          v.ID,
		CompanyName: v.Name,
		VendorCode:  v.Code,
		VendorPhone: v.Phone,
		VendorEmail: v.Email,
		GSTNo:       v.GSTNo,
		Mode:        v.Mode.Display(),
		Address:     v.Address,
		State:       v.State,
		Pincode:     v.Pincode,
		PriceChart:  make([]model.ZoneRecord, 0, len(v.Zones)),
		TransitDays: v.TransitDays,
		CreatedAt:   v.CreatedAt,
	}
	for _, z := range v.Zones {
		resp.PriceChart = append(resp.PriceChart, model.ZoneRecord{
			Name:     z.Name,
			Coverage: string(z.Coverage),
			Pincodes: z.Pincodes,
		})
	}
	if v.RateCard != nil {
		resp.PriceRate = rpvendor.RateCardToRecord(v.RateCard)
	}
	return resp
}

// FromVendorEntities 批量转换
func FromVendorEntities(vendors []*etvendor.Vendor) []*VendorResponse {
	resp := make([]*VendorResponse, 0, len(vendors))
	for _, v := range vendors {
		resp = append(resp, FromVendorEntity(v))
	}
	return resp
}

// FromTiedUpResult 批量录入结果
func FromTiedUpResult(created []*etvendor.Vendor, skipped []svvendor.Skipped) *AddTiedUpResponse {
	resp := &AddTiedUpResponse{
		Added:   FromVendorEntities(created),
		Skipped: make([]SkippedVendor, 0, len(skipped)),
	}
	for _, s := range skipped {
		resp.Skipped = append(resp.Skipped, SkippedVendor{Index: s.Index, CompanyName: s.Name, Reason: s.Reason})
	}
	return resp
}

// FromImportEntity 从领域对象转换为导入任务响应
func FromImportEntity(job *etimport.Job) *ImportResponse {
	return &ImportResponse{
		ImportID:   job.ID,
		VendorID:   job.VendorID,
		Status:     string(job.Status),
		Total:      job.Total,
		Imported:   job.Imported,
		Rejected:   job.Rejected,
		Errors:     job.Errors,
		CreatedAt:  job.CreatedAt,
		FinishedAt: job.FinishedAt,
	}
}

// FromCustomerEntity 从领域对象转换为客户响应
func FromCustomerEntity(c *etcustomer.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:          c.ID,
		Name:        c.Name,
		Email:       c.Email,
		Phone:       c.Phone,
		CompanyName: c.Company,
		Pincode:     c.Pincode,
		Role:        string(c.Role),
		Plan:        string(c.Plan),
		CreatedAt:   c.CreatedAt,
	}
}

// FromSession 登录结果
func FromSession(s *svauth.Session) *SessionResponse {
	return &SessionResponse{
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt,
		Customer:  FromCustomerEntity(s.Customer),
	}
}

package svquote

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freightrate/common/model"
	"freightrate/internal/app/domains/entity/etcustomer"
	"freightrate/internal/app/domains/entity/etprimitive"
	"freightrate/internal/app/domains/entity/etquote"
	"freightrate/internal/app/domains/entity/etvendor"
	"freightrate/internal/app/domains/modules/mdauth"
	"freightrate/internal/app/domains/modules/mdquote"
	"freightrate/internal/app/domains/modules/mdvendor"
	"freightrate/internal/app/domains/repo/rpcustomer"
	"freightrate/internal/app/domains/repo/rppincode"
	"freightrate/internal/app/domains/repo/rpquote"
	"freightrate/internal/app/domains/repo/rpvendor"
	"freightrate/internal/app/infra/persistence/redis"
	"freightrate/internal/app/pkg/errorx"
	"freightrate/pkg/infra/mysql"
	"freightrate/pkg/logger"
	"freightrate/pkg/testutil"
)

func newService(t *testing.T) *QuoteService {
	t.Helper()
	ctx := context.Background()
	db := testutil.NewDB(t)
	rdb, _ := testutil.NewRedis(t)

	customers := rpcustomer.NewCustomerRepository(db)
	for _, c := range []struct {
		id    int64
		email string
		plan  etprimitive.Plan
	}{
		{100, "free@example.com", etprimitive.PlanFree},
		{200, "premium@example.com", etprimitive.PlanPremium},
	} {
		customer, err := etcustomer.NewCustomer(c.id, "Test", c.email, "", "", "", "hash")
		require.NoError(t, err)
		require.NoError(t, customers.Create(ctx, customer))
		require.NoError(t, customers.UpdatePlan(ctx, c.id, c.plan))
	}

	require.NoError(t, mysql.NewImportDAO(db).UpsertPincodes(ctx, 0, []model.PincodeRow{
		{Line: 2, Pincode: "110001", Zone: "N1"},
		{Line: 3, Pincode: "400001", Zone: "W1"},
	}))

	vendors := rpvendor.NewVendorRepository(db)
	addVendor := func(id, owner int64, name string, mode etprimitive.Mode, matrix [][]float64) {
		v, err := etvendor.NewVendor(id, owner, name, mode, []etvendor.Zone{
			{Name: "N1", Coverage: etvendor.CoverageAll},
			{Name: "W1", Coverage: etvendor.CoverageAll},
		})
		require.NoError(t, err)
		if matrix != nil {
			require.NoError(t, v.SetRateCard(&etvendor.RateCard{Matrix: matrix}, nil))
		}
		require.NoError(t, vendors.Create(ctx, v))
	}
	addVendor(1, 0, "Safexpress", etprimitive.ModeRoad, [][]float64{{10, 12}, {12, 10}})
	addVendor(2, 0, "Gati", etprimitive.ModeRoad, [][]float64{{8, 9}, {9, 8}})
	addVendor(3, 0, "NoCard", etprimitive.ModeRoad, nil)
	addVendor(4, 100, "MyTruck", etprimitive.ModeRoad, [][]float64{{11, 11}, {11, 11}})
	addVendor(5, 0, "SkyCargo", etprimitive.ModeAir, [][]float64{{1, 1}, {1, 1}})
	addVendor(6, 0, "NoLane", etprimitive.ModeRoad, [][]float64{{10, 0}, {0, 10}})

	engine := mdquote.NewEngine(mdquote.Policy{
		Rounding:           mdquote.RoundingCeil,
		DefaultDivisors:    map[etprimitive.Mode]float64{etprimitive.ModeRoad: 5000},
		DefaultTransitDays: map[etprimitive.Mode]float64{etprimitive.ModeRoad: 4},
		DeliveryBufferDays: 2,
	})
	quoteModule := mdquote.NewQuoteModule(engine, mdquote.NewZoneResolver(rppincode.NewPincodeRepository(db)), rpquote.NewQuoteRepository(db))
	authModule := mdauth.NewAuthModule(customers, redis.NewOTPStore(rdb), mdauth.NewLogNotifier(logger.NewNop()),
		mdauth.NewTokenManager("0123456789abcdef", "freightrate", 0), 0)

	return NewQuoteService(authModule, mdvendor.NewVendorModule(vendors), quoteModule, logger.NewNop(), 5)
}

func shipment() *etquote.Shipment {
	return &etquote.Shipment{
		FromPincode: "110001",
		ToPincode:   "400001",
		Mode:        etprimitive.ModeRoad,
		Boxes:       []etquote.Box{{Count: 1, Length: 10, Width: 10, Height: 10, WeightPerBox: 10}},
	}
}

func names(quotes []*etquote.Quote) []string {
	out := make([]string, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, q.TransporterName)
	}
	return out
}

func TestCalculateFreePlan(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	result, err := s.Calculate(ctx, 100, shipment())
	require.NoError(t, err)

	require.Len(t, result.TiedUp, 1)
	assert.Equal(t, "MyTruck", result.TiedUp[0].TransporterName)
	assert.Equal(t, 110.0, result.TiedUp[0].TotalCharges)
	assert.False(t, result.TiedUp[0].Locked)
	assert.Equal(t, 6, result.TiedUp[0].EstimatedTime)

	require.Len(t, result.Company, 2)
	for _, q := range result.Company {
		assert.True(t, q.Locked)
		assert.Empty(t, q.TransporterName)
		assert.Nil(t, q.Charges)
	}
	assert.Equal(t, 90.0, result.Company[0].TotalCharges)
	assert.Equal(t, 120.0, result.Company[1].TotalCharges)

	// 最便宜的标签在合并后的全部报价中计算
	assert.True(t, result.Company[0].IsBestValue)
	assert.False(t, result.TiedUp[0].IsBestValue)

	history, err := s.ListHistory(ctx, 100)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "110001", history[0].Shipment.FromPincode)
}

func TestCalculatePremiumPlan(t *testing.T) {
	s := newService(t)

	result, err := s.Calculate(context.Background(), 200, shipment())
	require.NoError(t, err)

	assert.Empty(t, result.TiedUp)
	assert.Equal(t, []string{"Gati", "Safexpress"}, names(result.Company))
	assert.False(t, result.Company[0].Locked)
	assert.True(t, result.Company[0].HasTag(etquote.TagCheapest))
	require.NotNil(t, result.Company[0].Charges)
	assert.Equal(t, 90.0, result.Company[0].Charges.BaseFreight)
}

func TestCalculateErrors(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	bad := shipment()
	bad.ToPincode = "12345"
	_, err := s.Calculate(ctx, 100, bad)
	var be *errorx.BusinessError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, http.StatusBadRequest, be.Code)
	assert.Equal(t, []errorx.ErrorDetail{{Path: "toPincode", Info: etquote.ErrInvalidPincode.Error()}}, be.Details)

	bad = shipment()
	bad.Boxes[0].WeightPerBox = 0
	_, err = s.Calculate(ctx, 100, bad)
	require.True(t, errors.As(err, &be))
	require.Len(t, be.Details, 1)
	assert.Equal(t, "boxes[0]", be.Details[0].Path)
	assert.ErrorIs(t, err, etquote.ErrInvalidWeight)

	_, err = s.Calculate(ctx, 999, shipment())
	require.True(t, errors.As(err, &be))
	assert.Equal(t, http.StatusNotFound, be.Code)
}

func TestCalculateUnservedLane(t *testing.T) {
	s := newService(t)

	s2 := shipment()
	s2.ToPincode = "560001" // 不在任何目录中
	result, err := s.Calculate(context.Background(), 200, s2)
	require.NoError(t, err)
	assert.Empty(t, result.TiedUp)
	assert.Empty(t, result.Company)
}

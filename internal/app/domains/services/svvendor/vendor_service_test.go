package svvendor

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freightrate/common/model"
	"freightrate/internal/app/domains/entity/etimport"
	"freightrate/internal/app/domains/entity/etprimitive"
	"freightrate/internal/app/domains/entity/etvendor"
	"freightrate/internal/app/domains/modules/mdimport"
	"freightrate/internal/app/domains/modules/mdvendor"
	"freightrate/internal/app/domains/repo/rpimport"
	"freightrate/internal/app/domains/repo/rpvendor"
	"freightrate/internal/app/domains/services/svimport"
	"freightrate/internal/app/infra/persistence/redis"
	"freightrate/internal/app/pkg/errorx"
	"freightrate/pkg/logger"
	"freightrate/pkg/testutil"
)

type seqIDs struct{ n int64 }

func (s *seqIDs) NextID() int64 {
	s.n++
	return s.n
}

type queueStub struct{ published int }

func (q *queueStub) Publish(context.Context, string, interface{}) (string, error) {
	q.published++
	return "q-1", nil
}

func newService(t *testing.T) (*VendorService, *queueStub) {
	t.Helper()
	db := testutil.NewDB(t)
	rdb, _ := testutil.NewRedis(t)
	queue := &queueStub{}

	vendorModule := mdvendor.NewVendorModule(rpvendor.NewVendorRepository(db))
	importModule := mdimport.NewImportModule(rpimport.NewImportRepository(db), queue, redis.NewPubSubClient(rdb), "pincode_import")
	importService := svimport.NewImportService(importModule, vendorModule, logger.NewNop())
	return NewVendorService(vendorModule, importService, &seqIDs{}, logger.NewNop()), queue
}

func businessCode(t *testing.T, err error) int {
	t.Helper()
	var be *errorx.BusinessError
	require.True(t, errors.As(err, &be), "expected business error, got %v", err)
	return be.Code
}

func TestAddTiedUpVendors(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()

	created, skipped, err := s.AddTiedUpVendors(ctx, 100, []TiedUpInput{
		{Name: "My Truck", Code: "MT01", Mode: "Road"},
		{Name: "", Code: "X"},
		{Name: "No Code"},
		{Name: "Bad Mode", Code: "BM", Mode: "rocket"},
		{Name: "my truck", Code: "MT02"},
		{
			Name: "Partial", Code: "P1", Mode: "air",
			Zones: []etvendor.Zone{
				{Name: "n1", Coverage: etvendor.CoverageAll},
				{Name: "W1", Coverage: etvendor.CoveragePartial, Pincodes: []string{"400001"}},
			},
			RateCard: &etvendor.RateCard{Matrix: [][]float64{{5, 6}, {6, 5}}},
		},
	})
	require.NoError(t, err)

	require.Len(t, created, 2)
	assert.Equal(t, "My Truck", created[0].Name)
	assert.Equal(t, "MT01", created[0].Code)
	assert.Len(t, created[0].ActiveZones(), len(etvendor.DefaultZoneNames))
	assert.Equal(t, []string{"N1", "W1"}, created[1].ActiveZones())

	require.Len(t, skipped, 4)
	assert.Equal(t, []int{1, 2, 3, 4}, []int{skipped[0].Index, skipped[1].Index, skipped[2].Index, skipped[3].Index})
	assert.Contains(t, skipped[1].Reason, "code")

	list, err := s.ListTiedUp(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, _, err = s.AddTiedUpVendors(ctx, 100, nil)
	assert.Equal(t, http.StatusBadRequest, businessCode(t, err))
}

func TestAddTransporterAndSetPrice(t *testing.T) {
	s, queue := newService(t)
	ctx := context.Background()

	rows := []model.PincodeRow{{Line: 2, Pincode: "110001", Zone: "N1"}, {Line: 3, Pincode: "400001", Zone: "W1"}}
	vendor, job, err := s.AddTransporter(ctx, "Safexpress", "", []string{"n1", "w1", "s1"}, rows, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), vendor.OwnerID)
	assert.Equal(t, etprimitive.ModeRoad, vendor.Mode)
	assert.Equal(t, []string{"N1", "W1", "S1"}, vendor.ActiveZones())
	assert.Equal(t, etimport.StatusPending, job.Status)
	assert.Equal(t, 1, queue.published)

	_, _, err = s.AddTransporter(ctx, "safexpress", "road", []string{"N1"}, rows, 0)
	assert.Equal(t, http.StatusConflict, businessCode(t, err))

	_, _, err = s.AddTransporter(ctx, "Other", "road", []string{"N1"}, nil, time.Second)
	assert.Equal(t, http.StatusBadRequest, businessCode(t, err))

	priced, err := s.SetPrice(ctx, PriceInput{
		CompanyName: "SAFEXPRESS",
		RateCard:    &etvendor.RateCard{FuelSurcharge: 10, MinCharges: 500},
		ZoneRates: map[string]map[string]float64{
			"N1": {"N1": 8, "W1": 12},
			"w1": {"N1": 12, "W1": 8, "S1": 14},
		},
		ZoneTransit: map[string]map[string]float64{"N1": {"W1": 3}},
	})
	require.NoError(t, err)
	rate, ok := priced.Rate("W1", "S1")
	assert.True(t, ok)
	assert.Equal(t, 14.0, rate)
	_, ok = priced.Rate("S1", "N1")
	assert.False(t, ok)
	days, ok := priced.Transit("N1", "W1")
	assert.True(t, ok)
	assert.Equal(t, 3.0, days)

	_, err = s.SetPrice(ctx, PriceInput{
		CompanyName: "Safexpress",
		RateCard:    &etvendor.RateCard{},
		ZoneRates:   map[string]map[string]float64{"X9": {"N1": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, businessCode(t, err))

	_, err = s.SetPrice(ctx, PriceInput{CompanyName: "Unknown", RateCard: &etvendor.RateCard{}})
	assert.Equal(t, http.StatusNotFound, businessCode(t, err))
}

func TestSuggest(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()

	_, _, err := s.AddTiedUpVendors(ctx, 100, []TiedUpInput{
		{Name: "Delhivery", Code: "D1"},
		{Name: "Delhi Cargo", Code: "D2"},
	})
	require.NoError(t, err)

	names, err := s.Suggest(ctx, 100, "delhi")
	require.NoError(t, err)
	assert.Equal(t, []string{"Delhivery", "Delhi Cargo"}, names)
}

package mdquote

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freightrate/internal/app/domains/entity/etpincode"
	"freightrate/internal/app/domains/entity/etprimitive"
	"freightrate/internal/app/domains/entity/etquote"
	"freightrate/internal/app/domains/entity/etvendor"
)

type fakeDirectory struct {
	entries map[string]*etpincode.Entry
	err     error
}

func (f *fakeDirectory) add(vendorID int64, pin, zone string, oda bool) {
	f.entries[fmt.Sprintf("%d:%s", vendorID, pin)] = &etpincode.Entry{VendorID: vendorID, Pincode: pin, Zone: zone, ODA: oda}
}

func (f *fakeDirectory) Lookup(_ context.Context, vendorID int64, pin string) (*etpincode.Entry, error) {
	if f.err != nil {
		return nil, f.err
	}
	if e, ok := f.entries[fmt.Sprintf("%d:%s", vendorID, pin)]; ok {
		return e, nil
	}
	return nil, etpincode.ErrNotFound
}

func (f *fakeDirectory) Count(context.Context, int64) (int64, error) {
	return int64(len(f.entries)), nil
}

func resolverFixture(t *testing.T) (*ZoneResolver, *etvendor.Vendor, *fakeDirectory) {
	t.Helper()
	dir := &fakeDirectory{entries: map[string]*etpincode.Entry{}}
	dir.add(0, "110001", "N1", false)
	dir.add(0, "400001", "W1", true)
	dir.add(0, "400002", "W1", false)
	dir.add(0, "700001", "E1", false)
	dir.add(5, "600001", "S1", true)
	dir.add(5, "680001", "X9", false)

	v, err := etvendor.NewVendor(5, 0, "BlueDart", etprimitive.ModeAir, []etvendor.Zone{
		{Name: "N1", Coverage: etvendor.CoverageAll},
		{Name: "W1", Coverage: etvendor.CoveragePartial, Pincodes: []string{"400001"}},
		{Name: "S1", Coverage: etvendor.CoverageAll},
	})
	require.NoError(t, err)
	require.NoError(t, v.SetRateCard(&etvendor.RateCard{
		Matrix: [][]float64{{8, 11, 14}, {11, 8, 0}, {14, 12, 8}},
	}, [][]float64{{1, 2, 3}, {2, 1, 0}, {3, 2, 1}}))

	return NewZoneResolver(dir), v, dir
}

func TestResolve(t *testing.T) {
	r, v, _ := resolverFixture(t)
	ctx := context.Background()

	tests := []struct {
		pin     string
		zone    string
		oda     bool
		served  bool
		comment string
	}{
		{"400001", "W1", true, true, "explicit partial zone, ODA from global directory"},
		{"110001", "N1", false, true, "global row in an all-coverage zone"},
		{"600001", "S1", true, true, "vendor specific row"},
		{"680001", "", false, false, "vendor row in an inactive zone"},
		{"700001", "", false, false, "global zone not served by vendor"},
		{"400002", "", false, false, "partial zone only serves listed pincodes"},
		{"999999", "", false, false, "unknown pincode"},
	}

	for _, tt := range tests {
		t.Run(tt.pin, func(t *testing.T) {
			zone, oda, ok, err := r.Resolve(ctx, v, tt.pin)
			require.NoError(t, err)
			assert.Equal(t, tt.served, ok, tt.comment)
			assert.Equal(t, tt.zone, zone, tt.comment)
			assert.Equal(t, tt.oda, oda, tt.comment)
		})
	}
}

func TestResolveLane(t *testing.T) {
	r, v, dir := resolverFixture(t)
	ctx := context.Background()

	l, ok, err := r.ResolveLane(ctx, v, &etquote.Shipment{FromPincode: "110001", ToPincode: "600001"})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, etquote.Lane{OriginZone: "N1", DestinationZone: "S1", UnitRate: 14, TransitDays: 3, DestinationODA: true}, *l)

	// W1 -> S1 单价为 0，视为不服务
	_, ok, err = r.ResolveLane(ctx, v, &etquote.Shipment{FromPincode: "400001", ToPincode: "600001"})
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = r.ResolveLane(ctx, v, &etquote.Shipment{FromPincode: "700001", ToPincode: "110001"})
	require.NoError(t, err)
	assert.False(t, ok)

	dir.err = errors.New("db down")
	_, _, err = r.ResolveLane(ctx, v, &etquote.Shipment{FromPincode: "110001", ToPincode: "600001"})
	require.Error(t, err)
}

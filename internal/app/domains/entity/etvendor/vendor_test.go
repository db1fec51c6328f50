package etvendor

import (
	"testing"

	"freightrate/internal/app/domains/entity/etprimitive"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testZones() []Zone {
	return []Zone{
		{Name: "n1", Coverage: CoverageAll},
		{Name: "S1", Coverage: CoverageNone},
		{Name: "W1", Coverage: CoveragePartial, Pincodes: []string{"400001", "400002.0"}},
	}
}

func TestNewVendor(t *testing.T) {
	v, err := NewVendor(1, 0, "Safexpress", etprimitive.ModeRoad, testZones())
	require.NoError(t, err)

	assert.False(t, v.IsTiedUp())
	assert.Equal(t, []string{"N1", "W1"}, v.ActiveZones())
	assert.True(t, v.HasZone("N1"))
	assert.False(t, v.HasZone("S1"))
	assert.True(t, v.CoversAll("N1"))
	assert.False(t, v.CoversAll("W1"))

	zone, ok := v.ExplicitZone("400002")
	assert.True(t, ok)
	assert.Equal(t, "W1", zone)
}

func TestNewVendorErrors(t *testing.T) {
	tests := []struct {
		name    string
		vname   string
		mode    etprimitive.Mode
		zones   []Zone
		wantErr error
	}{
		{"empty name", "", etprimitive.ModeRoad, testZones(), ErrInvalidVendorName},
		{"bad mode", "X", "truck", testZones(), etprimitive.ErrUnknownMode},
		{"duplicate zone", "X", etprimitive.ModeAir, []Zone{{Name: "N1", Coverage: CoverageAll}, {Name: "n1", Coverage: CoverageAll}}, ErrDuplicateZone},
		{"no active zones", "X", etprimitive.ModeAir, []Zone{{Name: "N1", Coverage: CoverageNone}}, ErrNoActiveZones},
		{"empty partial", "X", etprimitive.ModeAir, []Zone{{Name: "N1", Coverage: CoveragePartial}}, ErrEmptyPartialZone},
		{"bad pincode", "X", etprimitive.ModeAir, []Zone{{Name: "N1", Coverage: CoveragePartial, Pincodes: []string{"12"}}}, ErrInvalidPincode},
		{"bad coverage", "X", etprimitive.ModeAir, []Zone{{Name: "N1", Coverage: "some"}}, ErrInvalidCoverage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewVendor(1, 0, tt.vname, tt.mode, tt.zones)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSetRateCard(t *testing.T) {
	v, err := NewVendor(1, 7, "Local", etprimitive.ModeRoad, testZones())
	require.NoError(t, err)
	assert.True(t, v.IsTiedUp())

	_, ok := v.Rate("N1", "W1")
	assert.False(t, ok, "no rate card yet")

	err = v.SetRateCard(&RateCard{Matrix: [][]float64{{10}}}, nil)
	require.ErrorIs(t, err, ErrMatrixNotSquare)

	err = v.SetRateCard(&RateCard{Matrix: [][]float64{{10, 12}, {12, 0}}, Insurance: ChargePair{Variable: 120}}, nil)
	require.ErrorIs(t, err, ErrInvalidPercentage)

	err = v.SetRateCard(&RateCard{Matrix: [][]float64{{10, 12}, {12, 0}}}, [][]float64{{1, 3}})
	require.ErrorIs(t, err, ErrMatrixNotSquare)

	require.NoError(t, v.SetRateCard(&RateCard{Matrix: [][]float64{{10, 12}, {14, 0}}}, [][]float64{{1, 3}, {3, 0}}))

	rate, ok := v.Rate("W1", "N1")
	assert.True(t, ok)
	assert.Equal(t, 14.0, rate)

	_, ok = v.Rate("W1", "W1")
	assert.False(t, ok, "zero rate means lane not served")

	_, ok = v.Rate("S1", "N1")
	assert.False(t, ok, "inactive zone")

	days, ok := v.Transit("N1", "W1")
	assert.True(t, ok)
	assert.Equal(t, 3.0, days)
}

func TestMatrixFromZoneRates(t *testing.T) {
	m, err := MatrixFromZoneRates([]string{"N1", "W1"}, map[string]map[string]float64{
		"n1": {"N1": 8, "W1": 11},
		"W1": {"N1": 12},
	})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{8, 11}, {12, 0}}, m)

	_, err = MatrixFromZoneRates([]string{"N1"}, map[string]map[string]float64{"X9": {"N1": 1}})
	require.ErrorIs(t, err, ErrUnknownZone)

	_, err = MatrixFromZoneRates([]string{"N1"}, map[string]map[string]float64{"N1": {"N1": -1}})
	require.ErrorIs(t, err, ErrNegativeCharge)
}

func TestChargePairAmount(t *testing.T) {
	assert.Equal(t, 150.0, ChargePair{Variable: 5, Fixed: 100}.Amount(1000))
}

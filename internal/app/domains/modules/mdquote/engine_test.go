package mdquote

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freightrate/internal/app/domains/entity/etprimitive"
	"freightrate/internal/app/domains/entity/etquote"
	"freightrate/internal/app/domains/entity/etvendor"
	"freightrate/pkg/config"
)

func testPolicy() Policy {
	return PolicyFromConfig(config.QuoteConfig{
		WeightRounding:     RoundingCeil,
		DefaultDivisors:    map[string]float64{"road": 5000, "Air": 6000},
		DefaultTransitDays: map[string]float64{"road": 4, "air": 1},
		DeliveryBufferDays: 2,
	})
}

func testVendor(t *testing.T, card *etvendor.RateCard) *etvendor.Vendor {
	t.Helper()
	v, err := etvendor.NewVendor(11, 0, "Safexpress", etprimitive.ModeRoad, []etvendor.Zone{
		{Name: "N1", Coverage: etvendor.CoverageAll},
		{Name: "W1", Coverage: etvendor.CoverageAll},
	})
	require.NoError(t, err)
	if card != nil {
		require.NoError(t, v.SetRateCard(card, nil))
	}
	return v
}

func testCard() *etvendor.RateCard {
	return &etvendor.RateCard{
		Matrix:        [][]float64{{10, 12}, {12, 10}},
		FuelSurcharge: 10,
		DocketCharge:  100,
		ROV:           etvendor.ChargePair{Variable: 0.5, Fixed: 100},
		Handling:      etvendor.ChargePair{Fixed: 50},
		Insurance:     etvendor.ChargePair{Variable: 1},
		ODA:           etvendor.ChargePair{Fixed: 200},
		Prepaid:       etvendor.ChargePair{Fixed: 25},
		COD:           etvendor.ChargePair{Variable: 2, Fixed: 100},
		Appointment:   etvendor.ChargePair{Fixed: 150},
		GreenTax:      30,
		MinCharges:    500,
	}
}

func exampleShipment() *etquote.Shipment {
	s := &etquote.Shipment{
		FromPincode: "110001",
		ToPincode:   "400001",
		Mode:        etprimitive.ModeRoad,
		Boxes:       []etquote.Box{{Count: 10, Length: 40, Width: 40, Height: 40, WeightPerBox: 5}},
	}
	_ = s.Validate()
	return s
}

func lane(rate float64) etquote.Lane {
	return etquote.Lane{OriginZone: "N1", DestinationZone: "W1", UnitRate: rate}
}

func TestCalculateBifurcation(t *testing.T) {
	engine := NewEngine(testPolicy())
	q, err := engine.Calculate(exampleShipment(), testVendor(t, testCard()), lane(12))
	require.NoError(t, err)

	assert.Equal(t, 50.0, q.ActualWeight)
	assert.Equal(t, 128.0, q.VolumetricWeight)
	assert.Equal(t, 128.0, q.ChargeableWeight)
	assert.Equal(t, 128.0, q.BilledWeight)

	want := etquote.Charges{
		BaseFreight:   1536,
		FuelSurcharge: 153.6,
		ROV:           107.68,
		Handling:      50,
		Prepaid:       25,
		Docket:        100,
		GreenTax:      30,
		Subtotal:      2002.28,
		MinCharges:    500,
	}
	if diff := cmp.Diff(want, *q.Charges); diff != "" {
		t.Errorf("charges mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2002.28, q.TotalCharges)
	assert.Equal(t, 4.0, q.TransitDays)
	assert.Equal(t, 6, q.EstimatedTime)
	assert.Equal(t, "Safexpress", q.TransporterName)
	assert.False(t, q.TiedUp)
}

func TestCalculateApplicability(t *testing.T) {
	engine := NewEngine(testPolicy())
	s := exampleShipment()
	s.Fragile = true
	s.Appointment = true
	s.PaymentMode = etprimitive.PaymentCOD

	l := lane(12)
	l.DestinationODA = true
	q, err := engine.Calculate(s, testVendor(t, testCard()), l)
	require.NoError(t, err)

	assert.Equal(t, 15.36, q.Charges.Insurance)
	assert.Equal(t, 200.0, q.Charges.ODA)
	assert.Equal(t, 130.72, q.Charges.COD)
	assert.Equal(t, 0.0, q.Charges.Prepaid)
	assert.Equal(t, 0.0, q.Charges.ToPay)
	assert.Equal(t, 150.0, q.Charges.Appointment)
	assert.Equal(t, q.Charges.Sum(), q.TotalCharges)
}

func TestCalculateFloors(t *testing.T) {
	engine := NewEngine(testPolicy())

	card := testCard()
	card.MinWeight = 200
	q, err := engine.Calculate(exampleShipment(), testVendor(t, card), lane(12))
	require.NoError(t, err)
	assert.Equal(t, 128.0, q.ChargeableWeight)
	assert.Equal(t, 200.0, q.BilledWeight)
	assert.Equal(t, 2400.0, q.Charges.BaseFreight)

	card = testCard()
	card.MinCharges = 5000
	q, err = engine.Calculate(exampleShipment(), testVendor(t, card), lane(12))
	require.NoError(t, err)
	assert.True(t, q.Charges.MinChargesApplied)
	assert.Equal(t, 2002.28, q.Charges.Subtotal)
	assert.Equal(t, 5000.0, q.TotalCharges)
}

func TestCalculateErrors(t *testing.T) {
	engine := NewEngine(testPolicy())

	_, err := engine.Calculate(exampleShipment(), testVendor(t, nil), lane(12))
	require.ErrorIs(t, err, etvendor.ErrRateCardMissing)

	_, err = engine.Calculate(exampleShipment(), testVendor(t, testCard()), lane(0))
	require.ErrorIs(t, err, ErrLaneNotServed)

	v := testVendor(t, testCard())
	v.Mode = etprimitive.ModeShip
	_, err = engine.Calculate(exampleShipment(), v, lane(12))
	require.ErrorIs(t, err, ErrNoDivisor)
}

func TestDivisorFromRateCard(t *testing.T) {
	engine := NewEngine(testPolicy())
	card := testCard()
	card.DivisorCoefficient = 4000

	q, err := engine.Calculate(exampleShipment(), testVendor(t, card), lane(12))
	require.NoError(t, err)
	assert.Equal(t, 160.0, q.VolumetricWeight)
	assert.Equal(t, 160.0, q.ChargeableWeight)
}

func TestChargeableWeightRounding(t *testing.T) {
	ceil := NewEngine(testPolicy())
	assert.Equal(t, 128.0, ceil.ChargeableWeight(50, 128.0000000001))
	assert.Equal(t, 128.0, ceil.ChargeableWeight(128, 3))
	assert.Equal(t, 129.0, ceil.ChargeableWeight(128.0004, 3))
	assert.Equal(t, 129.0, ceil.ChargeableWeight(128.002, 3))
	assert.Equal(t, 2.0, ceil.ChargeableWeight(1.234, 0.2))

	p := testPolicy()
	p.Rounding = RoundingNone
	none := NewEngine(p)
	assert.Equal(t, 1.24, none.ChargeableWeight(1.234, 0.2))
	assert.Equal(t, 1.23, none.ChargeableWeight(1.23, 0.2))
	assert.Equal(t, 0.01, none.ChargeableWeight(0.0004, 0))
}

func TestChargeableNeverBelowActual(t *testing.T) {
	p := testPolicy()
	for _, rounding := range []string{RoundingCeil, RoundingNone} {
		p.Rounding = rounding
		engine := NewEngine(p)
		for _, actual := range []float64{0.0004, 1.2345, 12.0001, 128.0004, 999.9999} {
			assert.GreaterOrEqual(t, engine.ChargeableWeight(actual, 0), actual, "%s %v", rounding, actual)
		}
	}
}

func TestMinChargesWithSubCentCard(t *testing.T) {
	engine := NewEngine(testPolicy())
	card := &etvendor.RateCard{
		Matrix:     [][]float64{{1, 1}, {1, 1}},
		MinCharges: 128.004,
	}
	// 128kg * 1 = 128.00，低于最低收费 128.004
	q, err := engine.Calculate(exampleShipment(), testVendor(t, card), lane(1))
	require.NoError(t, err)
	assert.Equal(t, 128.0, q.Charges.Subtotal)
	assert.True(t, q.Charges.MinChargesApplied)
	assert.Equal(t, 128.01, q.TotalCharges)
	assert.GreaterOrEqual(t, q.TotalCharges, card.MinCharges)
}

func TestChargeableIsMaxOfActualAndVolumetric(t *testing.T) {
	engine := NewEngine(testPolicy())
	v := testVendor(t, testCard())

	for _, weight := range []float64{1, 5, 12.8, 20, 100} {
		s := exampleShipment()
		s.Boxes[0].WeightPerBox = weight
		q, err := engine.Calculate(s, v, lane(12))
		require.NoError(t, err)
		assert.Equal(t, engine.ChargeableWeight(s.ActualWeight(), s.VolumetricWeight(5000)), q.ChargeableWeight)
		assert.GreaterOrEqual(t, q.ChargeableWeight, q.ActualWeight)
		assert.GreaterOrEqual(t, q.ChargeableWeight, q.VolumetricWeight)
	}
}

func TestBaseMonotonicInWeight(t *testing.T) {
	engine := NewEngine(testPolicy())
	v := testVendor(t, testCard())

	prev := -1.0
	for w := 1.0; w <= 300; w += 3.7 {
		s := exampleShipment()
		s.Boxes = []etquote.Box{{Count: 1, Length: 1, Width: 1, Height: 1, WeightPerBox: w}}
		q, err := engine.Calculate(s, v, lane(12))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, q.Charges.BaseFreight, prev)
		assert.GreaterOrEqual(t, q.TotalCharges, q.Charges.MinCharges)
		prev = q.Charges.BaseFreight
	}
}

func TestCalculateDeterministic(t *testing.T) {
	engine := NewEngine(testPolicy())
	v := testVendor(t, testCard())

	first, err := engine.Calculate(exampleShipment(), v, lane(12))
	require.NoError(t, err)
	second, err := engine.Calculate(exampleShipment(), v, lane(12))
	require.NoError(t, err)
	assert.True(t, cmp.Equal(first, second))
}

func TestEstimatedDays(t *testing.T) {
	engine := NewEngine(testPolicy())

	days, shown := engine.EstimatedDays(etprimitive.ModeAir, 2.5)
	assert.Equal(t, 2.5, days)
	assert.Equal(t, 4, shown)

	days, shown = engine.EstimatedDays(etprimitive.ModeAir, 0)
	assert.Equal(t, 1.0, days)
	assert.Equal(t, 3, shown)

	_, shown = engine.EstimatedDays(etprimitive.ModeShip, 0)
	assert.Zero(t, shown)
}

package etquote

import (
	"testing"

	"freightrate/internal/app/domains/entity/etprimitive"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleShipment() *Shipment {
	return &Shipment{
		FromPincode: "110001",
		ToPincode:   "400001",
		Mode:        etprimitive.ModeRoad,
		Boxes:       []Box{{Count: 10, Length: 40, Width: 40, Height: 40, WeightPerBox: 5}},
	}
}

func TestShipmentWeights(t *testing.T) {
	s := sampleShipment()
	require.NoError(t, s.Validate())

	assert.Equal(t, etprimitive.PaymentPrepaid, s.PaymentMode)
	assert.Equal(t, 50.0, s.ActualWeight())
	assert.InDelta(t, 128.0, s.VolumetricWeight(5000), 1e-9)
	assert.Equal(t, 0.0, s.VolumetricWeight(0))
	assert.Equal(t, 10, s.BoxCount())

	s.Boxes = append(s.Boxes, Box{Count: 2, Length: 10, Width: 10, Height: 10, WeightPerBox: 1.5})
	assert.Equal(t, 53.0, s.ActualWeight())
	assert.InDelta(t, 128.4, s.VolumetricWeight(5000), 1e-9)
}

func TestShipmentValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(s *Shipment)
		wantErr   error
		wantField string
	}{
		{"short origin", func(s *Shipment) { s.FromPincode = "11001" }, ErrInvalidPincode, "fromPincode"},
		{"alpha destination", func(s *Shipment) { s.ToPincode = "40000A" }, ErrInvalidPincode, "toPincode"},
		{"unknown mode", func(s *Shipment) { s.Mode = "truck" }, etprimitive.ErrUnknownMode, "modeoftransport"},
		{"no boxes", func(s *Shipment) { s.Boxes = nil }, ErrEmptyShipment, "boxes"},
		{"zero count", func(s *Shipment) { s.Boxes[0].Count = 0 }, ErrInvalidBoxCount, "boxes[0]"},
		{"zero height", func(s *Shipment) { s.Boxes[0].Height = 0 }, ErrInvalidDimension, "boxes[0]"},
		{"negative weight", func(s *Shipment) { s.Boxes[0].WeightPerBox = -1 }, ErrInvalidWeight, "boxes[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := sampleShipment()
			tt.mutate(s)
			err := s.Validate()
			require.ErrorIs(t, err, tt.wantErr)

			var fe *FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.wantField, fe.Field)
		})
	}
}

func TestLockKeepsTotal(t *testing.T) {
	q := &Quote{
		TransporterName: "Safexpress",
		EstimatedTime:   5,
		TransitDays:     3,
		Charges:         &Charges{BaseFreight: 100},
		TotalCharges:    118,
		OriginZone:      "N1",
	}
	q.Lock()

	assert.True(t, q.Locked)
	assert.Empty(t, q.TransporterName)
	assert.Zero(t, q.EstimatedTime)
	assert.Nil(t, q.Charges)
	assert.Equal(t, 118.0, q.TotalCharges)
	assert.Equal(t, "N1", q.OriginZone)
}

func TestRank(t *testing.T) {
	a := &Quote{TransporterName: "A", TotalCharges: 500, TransitDays: 4}
	b := &Quote{TransporterName: "B", TotalCharges: 300, TransitDays: 6}
	c := &Quote{TransporterName: "C", TotalCharges: 300, TransitDays: 2}
	d := &Quote{TransporterName: "D", TotalCharges: 900}

	ranked := Rank([]*Quote{a, b, c, d}, false)
	assert.Equal(t, []*Quote{c, b, a, d}, ranked)
	assert.True(t, c.HasTag(TagCheapest))
	assert.True(t, c.HasTag(TagFastest))
	assert.True(t, c.IsBestValue)
	assert.Empty(t, b.Tags)

	ranked = Rank([]*Quote{a, b, c, d}, true)
	assert.Equal(t, []*Quote{c, a, b, d}, ranked)
}

func TestRankTieGoesToFirstRanked(t *testing.T) {
	slow := &Quote{TransporterName: "Alpha", TotalCharges: 300, TransitDays: 6}
	quick := &Quote{TransporterName: "Zeta", TotalCharges: 300, TransitDays: 2}
	ranked := Rank([]*Quote{slow, quick}, false)
	require.Equal(t, quick, ranked[0])
	assert.True(t, quick.IsBestValue)
	assert.Equal(t, []string{TagCheapest, TagFastest}, quick.Tags)
	assert.Empty(t, slow.Tags)

	// 公司报价锁定后名称为空，仍按时效决出
	lockedSlow := &Quote{TotalCharges: 450, TransitDays: 5, Locked: true}
	lockedQuick := &Quote{TotalCharges: 450, TransitDays: 3, Locked: true}
	ranked = Rank([]*Quote{lockedSlow, lockedQuick}, false)
	require.Equal(t, lockedQuick, ranked[0])
	assert.True(t, lockedQuick.HasTag(TagCheapest))
	assert.False(t, lockedSlow.IsBestValue)
}

func TestTagResetsPreviousTags(t *testing.T) {
	a := &Quote{TransporterName: "A", TotalCharges: 100, TransitDays: 5}
	b := &Quote{TransporterName: "B", TotalCharges: 200, TransitDays: 1}
	Tag([]*Quote{a, b})
	assert.Equal(t, []string{TagCheapest}, a.Tags)
	assert.Equal(t, []string{TagFastest}, b.Tags)

	a.TotalCharges = 300
	Tag([]*Quote{a, b})
	assert.Empty(t, a.Tags)
	assert.False(t, a.IsBestValue)
	assert.Equal(t, []string{TagCheapest, TagFastest}, b.Tags)
}

func TestRoundMoney(t *testing.T) {
	assert.Equal(t, 10.13, RoundMoney(10.125))
	assert.Equal(t, -1.5, RoundMoney(-1.499999))
	assert.Equal(t, 128.0, RoundWeight(128.0000000001))
}

func TestChargesSum(t *testing.T) {
	c := &Charges{BaseFreight: 100, FuelSurcharge: 10.5, ROV: 0.25, Docket: 50}
	assert.Equal(t, 160.75, c.Sum())
}

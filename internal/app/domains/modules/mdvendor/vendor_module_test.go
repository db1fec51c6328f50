package mdvendor

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freightrate/internal/app/domains/entity/etprimitive"
	"freightrate/internal/app/domains/entity/etvendor"
	"freightrate/internal/app/domains/repo/rpvendor"
	"freightrate/pkg/testutil"
)

func TestRankSuggestions(t *testing.T) {
	names := []string{"Delhivery Express", "Delhivery", "Blue Dart Delhi", "Delhi Cargo"}
	assert.Equal(t, []string{"Delhivery", "Delhi Cargo", "Blue Dart Delhi"}, RankSuggestions("delhi", names, 3))
	assert.Empty(t, RankSuggestions("x", nil, 10))
}

func TestSuggest(t *testing.T) {
	repo := rpvendor.NewVendorRepository(testutil.NewDB(t))
	m := NewVendorModule(repo)
	ctx := context.Background()

	for i := 1; i <= 12; i++ {
		v, err := etvendor.NewVendor(int64(i), 0, fmt.Sprintf("Road Lines %02d", i), etprimitive.ModeRoad,
			[]etvendor.Zone{{Name: "N1", Coverage: etvendor.CoverageAll}})
		require.NoError(t, err)
		require.NoError(t, m.CreateVendor(ctx, v))
	}

	names, err := m.Suggest(ctx, 0, "lines")
	require.NoError(t, err)
	assert.Len(t, names, MaxSuggestions)
	assert.Equal(t, "Road Lines 01", names[0])

	names, err = m.Suggest(ctx, 0, "  ")
	require.NoError(t, err)
	assert.Empty(t, names)
}

package rppincode

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freightrate/common/entity"
	"freightrate/common/model"
	"freightrate/internal/app/domains/entity/etpincode"
	"freightrate/pkg/logger"
	"freightrate/pkg/testutil"
)

func TestPincodeRepositoryLookup(t *testing.T) {
	db := testutil.NewDB(t)
	require.NoError(t, db.Create(&[]entity.PincodeZone{
		{VendorID: 0, Pincode: "110001", Zone: "N1", State: "Delhi", City: "New Delhi"},
		{VendorID: 7, Pincode: "110001", Zone: "N2", ODA: true},
	}).Error)

	repo := NewPincodeRepository(db)
	ctx := context.Background()

	global, err := repo.Lookup(ctx, 0, "110001")
	require.NoError(t, err)
	assert.Equal(t, "N1", global.Zone)
	assert.True(t, global.IsGlobal())

	scoped, err := repo.Lookup(ctx, 7, "110001")
	require.NoError(t, err)
	assert.Equal(t, "N2", scoped.Zone)
	assert.True(t, scoped.ODA)

	_, err = repo.Lookup(ctx, 7, "999999")
	require.ErrorIs(t, err, etpincode.ErrNotFound)
}

type countingRepo struct {
	PincodeRepository
	calls int
}

func (c *countingRepo) Lookup(ctx context.Context, vendorID int64, pincode string) (*etpincode.Entry, error) {
	c.calls++
	return c.PincodeRepository.Lookup(ctx, vendorID, pincode)
}

func TestCachedRepository(t *testing.T) {
	db := testutil.NewDB(t)
	require.NoError(t, db.Create(&entity.PincodeZone{VendorID: 3, Pincode: "560001", Zone: "S1"}).Error)

	rdb, mr := testutil.NewRedis(t)
	inner := &countingRepo{PincodeRepository: NewPincodeRepository(db)}
	repo := NewCachedRepository(inner, rdb, time.Hour, logger.NewNop())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		entry, err := repo.Lookup(ctx, 3, "560001")
		require.NoError(t, err)
		assert.Equal(t, "S1", entry.Zone)
	}
	assert.Equal(t, 1, inner.calls, "later lookups are served from cache")
	assert.True(t, mr.Exists("pincode:zone:3:0:560001"))

	// 不存在的结果同样缓存
	for i := 0; i < 2; i++ {
		_, err := repo.Lookup(ctx, 3, "560002")
		require.ErrorIs(t, err, etpincode.ErrNotFound)
	}
	assert.Equal(t, 2, inner.calls)

	// 导入后版本递增，旧缓存失效
	require.NoError(t, db.Model(&entity.PincodeZone{}).Where("pincode = ?", "560001").Update("zone", "S2").Error)
	require.NoError(t, rdb.Incr(ctx, model.PincodeCacheVersionKey(3)).Err())

	entry, err := repo.Lookup(ctx, 3, "560001")
	require.NoError(t, err)
	assert.Equal(t, "S2", entry.Zone)
	assert.Equal(t, 3, inner.calls)
}

func TestCachedRepositoryRedisDown(t *testing.T) {
	db := testutil.NewDB(t)
	require.NoError(t, db.Create(&entity.PincodeZone{VendorID: 0, Pincode: "700001", Zone: "E1"}).Error)

	rdb, mr := testutil.NewRedis(t)
	repo := NewCachedRepository(NewPincodeRepository(db), rdb, time.Hour, logger.NewNop())
	mr.Close()

	entry, err := repo.Lookup(context.Background(), 0, "700001")
	require.NoError(t, err)
	assert.Equal(t, "E1", entry.Zone)
}

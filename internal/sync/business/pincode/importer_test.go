package pincode

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"freightrate/common/entity"
	"freightrate/common/model"
	"freightrate/pkg/errorutil"
	"freightrate/pkg/infra/mysql"
	"freightrate/pkg/infra/redis"
	"freightrate/pkg/logger"
	"freightrate/pkg/testutil"
)

func seedVendor(t *testing.T, db *gorm.DB, id int64, zones []model.ZoneRecord) {
	t.Helper()
	zonesJSON, err := json.Marshal(zones)
	require.NoError(t, err)
	require.NoError(t, db.Create(&entity.Vendor{
		ID:        id,
		Name:      "Safe Express",
		Mode:      "road",
		Zones:     zonesJSON,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}).Error)
}

func seedImport(t *testing.T, db *gorm.DB, id string, vendorID int64, rows []model.PincodeRow) {
	t.Helper()
	rowsJSON, err := json.Marshal(rows)
	require.NoError(t, err)
	require.NoError(t, db.Create(&entity.ImportJob{
		ID:        id,
		VendorID:  vendorID,
		Status:    entity.ImportStatusPending,
		Total:     len(rows),
		Rows:      rowsJSON,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}).Error)
}

func TestImporterVendorScoped(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	rdb, _ := testutil.NewRedis(t)

	seedVendor(t, db, 7, []model.ZoneRecord{
		{Name: "N1", Coverage: "all"},
		{Name: "S1", Coverage: "partial", Pincodes: []string{"560001"}},
		{Name: "E1", Coverage: "none"},
	})
	seedImport(t, db, "imp-1", 7, []model.PincodeRow{
		{Line: 2, Pincode: "110001", Zone: "n1"},
		{Line: 3, Pincode: "560001.0", Zone: "S1", ODA: true},
		{Line: 4, Pincode: "70001", Zone: "N1"},
		{Line: 5, Pincode: "700001", Zone: "E1"},
		{Line: 6, Pincode: "110001", Zone: "N1"},
	})

	sub := rdb.Subscribe(ctx, model.ImportResultChannel("imp-1"))
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	importer := NewImporter(mysql.NewImportDAO(db), redis.NewPubSub(rdb), logger.NewNop())
	outcome, err := importer.Run(ctx, "imp-1", 7)
	require.NoError(t, err)

	assert.Equal(t, entity.ImportStatusDone, outcome.Status)
	assert.Equal(t, 2, outcome.Imported)
	assert.Equal(t, 3, outcome.Rejected)
	require.Len(t, outcome.Errors, 3)
	assert.Contains(t, outcome.Errors[0], "line 4")
	assert.Contains(t, outcome.Errors[1], "not served")
	assert.Contains(t, outcome.Errors[2], "duplicate pincode 110001")

	var rows []entity.PincodeZone
	require.NoError(t, db.Order("pincode").Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.Equal(t, "110001", rows[0].Pincode)
	assert.Equal(t, "N1", rows[0].Zone)
	assert.Equal(t, "560001", rows[1].Pincode)
	assert.True(t, rows[1].ODA)

	var job entity.ImportJob
	require.NoError(t, db.First(&job, "id = ?", "imp-1").Error)
	assert.Equal(t, entity.ImportStatusDone, job.Status)
	assert.Equal(t, 2, job.Imported)
	assert.NotNil(t, job.FinishedAt)

	ver, err := rdb.Get(ctx, model.PincodeCacheVersionKey(7)).Int64()
	require.NoError(t, err)
	assert.EqualValues(t, 1, ver)

	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)
	var note model.ImportNotification
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &note))
	assert.Equal(t, entity.ImportStatusDone, note.Status)
	assert.Equal(t, 2, note.Imported)
}

func TestImporterRedeliveryIsSkipped(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	rdb, _ := testutil.NewRedis(t)

	seedImport(t, db, "imp-2", 0, []model.PincodeRow{{Line: 2, Pincode: "400001", Zone: "W1"}})
	importer := NewImporter(mysql.NewImportDAO(db), redis.NewPubSub(rdb), logger.NewNop())

	first, err := importer.Run(ctx, "imp-2", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Imported)

	second, err := importer.Run(ctx, "imp-2", 0)
	require.NoError(t, err)
	assert.True(t, second.Skipped)
}

func TestImporterUpsertOverwritesZone(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	rdb, _ := testutil.NewRedis(t)
	importer := NewImporter(mysql.NewImportDAO(db), redis.NewPubSub(rdb), logger.NewNop())

	seedImport(t, db, "imp-a", 0, []model.PincodeRow{{Line: 2, Pincode: "400001", Zone: "W1"}})
	_, err := importer.Run(ctx, "imp-a", 0)
	require.NoError(t, err)

	seedImport(t, db, "imp-b", 0, []model.PincodeRow{{Line: 2, Pincode: "400001", Zone: "W2", City: "Mumbai"}})
	_, err = importer.Run(ctx, "imp-b", 0)
	require.NoError(t, err)

	var row entity.PincodeZone
	require.NoError(t, db.Where("vendor_id = 0 AND pincode = ?", "400001").First(&row).Error)
	assert.Equal(t, "W2", row.Zone)
	assert.Equal(t, "Mumbai", row.City)
}

func TestImporterMissingJobIsNotRetried(t *testing.T) {
	db := testutil.NewDB(t)
	rdb, _ := testutil.NewRedis(t)
	importer := NewImporter(mysql.NewImportDAO(db), redis.NewPubSub(rdb), logger.NewNop())

	_, err := importer.Run(context.Background(), "missing", 0)
	require.Error(t, err)
	assert.False(t, errorutil.IsRetryable(err))
}

func TestImporterUnknownVendorFailsJob(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	rdb, _ := testutil.NewRedis(t)

	seedImport(t, db, "imp-3", 99, []model.PincodeRow{{Line: 2, Pincode: "400001", Zone: "W1"}})
	importer := NewImporter(mysql.NewImportDAO(db), redis.NewPubSub(rdb), logger.NewNop())

	outcome, err := importer.Run(ctx, "imp-3", 99)
	require.Error(t, err)
	assert.False(t, errorutil.IsRetryable(err))
	assert.Equal(t, entity.ImportStatusFailed, outcome.Status)

	var job entity.ImportJob
	require.NoError(t, db.First(&job, "id = ?", "imp-3").Error)
	assert.Equal(t, entity.ImportStatusFailed, job.Status)
}

// flakyZoneStore 区域读取失败（模拟数据库短暂不可用）
type flakyZoneStore struct {
	*mysql.ImportDAO
	err error
}

func (s *flakyZoneStore) GetVendorZones(ctx context.Context, vendorID int64) ([]model.ZoneRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.ImportDAO.GetVendorZones(ctx, vendorID)
}

func TestImporterTransientZoneErrorIsRetried(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	rdb, _ := testutil.NewRedis(t)

	seedVendor(t, db, 8, []model.ZoneRecord{{Name: "W1", Coverage: "all"}})
	seedImport(t, db, "imp-4", 8, []model.PincodeRow{{Line: 2, Pincode: "400001", Zone: "W1"}})

	store := &flakyZoneStore{
		ImportDAO: mysql.NewImportDAO(db),
		err:       errors.New("dial tcp 10.0.0.5:3306: connect: connection refused"),
	}
	importer := NewImporter(store, redis.NewPubSub(rdb), logger.NewNop())

	outcome, err := importer.Run(ctx, "imp-4", 8)
	require.Error(t, err)
	assert.True(t, errorutil.IsRetryable(err))
	assert.Empty(t, outcome.Status)

	var job entity.ImportJob
	require.NoError(t, db.First(&job, "id = ?", "imp-4").Error)
	assert.Equal(t, entity.ImportStatusRunning, job.Status)
	assert.Nil(t, job.FinishedAt)

	// 数据库恢复后重新投递即可完成
	store.err = nil
	outcome, err = importer.Run(ctx, "imp-4", 8)
	require.NoError(t, err)
	assert.Equal(t, entity.ImportStatusDone, outcome.Status)
	assert.Equal(t, 1, outcome.Imported)
}

package pincode

import (
	"context"
	"errors"
	"fmt"
	"time"

	"freightrate/common/entity"
	"freightrate/common/model"
	"freightrate/internal/sync/framework"
	"freightrate/pkg/errorutil"
	"freightrate/pkg/infra/mysql"
	"freightrate/pkg/logger"
	pc "freightrate/pkg/pincode"
)

// maxReportedErrors 导入结果中保留的行错误条数
const maxReportedErrors = 20

// ImportStore 导入任务存储
type ImportStore interface {
	GetImportJob(ctx context.Context, importID string) (*entity.ImportJob, error)
	MarkRunning(ctx context.Context, importID string) (bool, error)
	GetVendorZones(ctx context.Context, vendorID int64) ([]model.ZoneRecord, error)
	UpsertPincodes(ctx context.Context, vendorID int64, rows []model.PincodeRow) error
	Finish(ctx context.Context, importID string, status string, imported, rejected int, rowErrors []string) error
}

// Notifier 导入完成通知
type Notifier interface {
	PublishImportComplete(ctx context.Context, notification *model.ImportNotification) error
	BumpPincodeVersion(ctx context.Context, vendorID int64) (int64, error)
}

// Outcome 导入结果
type Outcome struct {
	ImportID string
	VendorID int64
	Status   string
	Imported int
	Rejected int
	Errors   []string
	Skipped  bool // 任务已结束（重复投递）
}

// Importer 邮编表导入
type Importer struct {
	store    ImportStore
	notifier Notifier
	logger   logger.Logger
}

// NewImporter 创建导入器
func NewImporter(store ImportStore, notifier Notifier, log logger.Logger) *Importer {
	return &Importer{
		store:    store,
		notifier: notifier,
		logger:   log,
	}
}

// importRun 单次导入的执行状态，供函数链中各步骤共享
type importRun struct {
	importID string
	vendorID int64
	job      *entity.ImportJob
	zones    map[string]bool
	valid    []model.PincodeRow
	outcome  *Outcome
}

// Run 执行导入
// 1. 读取任务  2. 标记 RUNNING  3. 读取承运商区域  4. 校验行  5. 写入  6. 结束并通知
// 返回的 error 为 *errorutil.Error，Retryable 决定消息是否重新投递
func (im *Importer) Run(ctx context.Context, importID string, vendorID int64) (*Outcome, error) {
	run := &importRun{
		importID: importID,
		vendorID: vendorID,
		outcome:  &Outcome{ImportID: importID, VendorID: vendorID},
	}

	chain := framework.NewPreProcessor(
		im.loadJob(run),
		im.markRunning(run),
		im.loadZones(run),
		im.validateRows(run),
		im.upsertRows(run),
		im.finish(run),
	)

	err := chain.Run(ctx)
	if errors.Is(err, errAlreadyFinished) {
		im.logger.Infof(ctx, "[Importer] import %s already finished, skip", importID)
		run.outcome.Skipped = true
		return run.outcome, nil
	}
	if err != nil {
		if !errorutil.IsRetryable(err) {
			im.fail(ctx, run, err)
		}
		return run.outcome, errorutil.Wrap(err)
	}

	im.notify(ctx, run)
	return run.outcome, nil
}

var errAlreadyFinished = errors.New("import already finished")

func (im *Importer) loadJob(run *importRun) framework.ProcessorFunc {
	return func(ctx context.Context) error {
		job, err := im.store.GetImportJob(ctx, run.importID)
		if errors.Is(err, mysql.ErrImportNotFound) {
			return errorutil.NonRetriable("import job not found", err)
		}
		if err != nil {
			return errorutil.Retriable("load import job failed", err)
		}
		if job.VendorID != run.vendorID {
			return errorutil.NonRetriable(
				fmt.Sprintf("vendor mismatch: job has %d, message has %d", job.VendorID, run.vendorID), nil)
		}
		run.job = job
		return nil
	}
}

func (im *Importer) markRunning(run *importRun) framework.ProcessorFunc {
	return func(ctx context.Context) error {
		ok, err := im.store.MarkRunning(ctx, run.importID)
		if err != nil {
			return errorutil.Retriable("mark import running failed", err)
		}
		if !ok {
			return errAlreadyFinished
		}
		return nil
	}
}

func (im *Importer) loadZones(run *importRun) framework.ProcessorFunc {
	return func(ctx context.Context) error {
		// 全局目录不限制区域名
		if run.vendorID == 0 {
			return nil
		}
		zones, err := im.store.GetVendorZones(ctx, run.vendorID)
		if errors.Is(err, mysql.ErrVendorNotFound) || errors.Is(err, mysql.ErrInvalidZones) {
			return errorutil.NonRetriable("load vendor zones failed", err)
		}
		if err != nil {
			return errorutil.Retriable("load vendor zones failed", err)
		}
		run.zones = make(map[string]bool, len(zones))
		for _, z := range zones {
			if z.Coverage != "none" {
				run.zones[pc.NormalizeZone(z.Name)] = true
			}
		}
		return nil
	}
}

func (im *Importer) validateRows(run *importRun) framework.ProcessorFunc {
	return func(ctx context.Context) error {
		rows, err := mysql.DecodeRows(run.job)
		if err != nil {
			return errorutil.NonRetriable("decode import rows failed", err)
		}

		seen := make(map[string]int, len(rows))
		run.valid = make([]model.PincodeRow, 0, len(rows))
		for _, row := range rows {
			row.Pincode = pc.Normalize(row.Pincode)
			row.Zone = pc.NormalizeZone(row.Zone)

			if msg := im.checkRow(run, row, seen); msg != "" {
				run.outcome.Rejected++
				if len(run.outcome.Errors) < maxReportedErrors {
					run.outcome.Errors = append(run.outcome.Errors, fmt.Sprintf("line %d: %s", row.Line, msg))
				}
				continue
			}
			seen[row.Pincode] = row.Line
			run.valid = append(run.valid, row)
		}
		return nil
	}
}

func (im *Importer) checkRow(run *importRun, row model.PincodeRow, seen map[string]int) string {
	if !pc.Valid(row.Pincode) {
		return fmt.Sprintf("invalid pincode %q", row.Pincode)
	}
	if row.Zone == "" {
		return "zone is required"
	}
	if len(row.Zone) > 16 {
		return fmt.Sprintf("zone %q is too long", row.Zone)
	}
	if run.zones != nil && !run.zones[row.Zone] {
		return fmt.Sprintf("zone %q is not served by this transporter", row.Zone)
	}
	if line, dup := seen[row.Pincode]; dup {
		return fmt.Sprintf("duplicate pincode %s (first seen on line %d)", row.Pincode, line)
	}
	return ""
}

func (im *Importer) upsertRows(run *importRun) framework.ProcessorFunc {
	return func(ctx context.Context) error {
		if err := im.store.UpsertPincodes(ctx, run.vendorID, run.valid); err != nil {
			return errorutil.Retriable("upsert pincodes failed", err)
		}
		run.outcome.Imported = len(run.valid)
		return nil
	}
}

func (im *Importer) finish(run *importRun) framework.ProcessorFunc {
	return func(ctx context.Context) error {
		run.outcome.Status = entity.ImportStatusDone
		err := im.store.Finish(ctx, run.importID, entity.ImportStatusDone,
			run.outcome.Imported, run.outcome.Rejected, run.outcome.Errors)
		if err != nil {
			return errorutil.Retriable("finish import failed", err)
		}
		return nil
	}
}

// fail 记录不可重试的失败
func (im *Importer) fail(ctx context.Context, run *importRun, cause error) {
	run.outcome.Status = entity.ImportStatusFailed
	rowErrors := append([]string{cause.Error()}, run.outcome.Errors...)
	if err := im.store.Finish(ctx, run.importID, entity.ImportStatusFailed, 0, run.outcome.Rejected, rowErrors); err != nil {
		im.logger.Errorf(ctx, "[Importer] mark import %s failed error: %v", run.importID, err)
		return
	}
	im.notify(ctx, run)
}

// notify 使缓存失效并发布通知，失败只记录日志
func (im *Importer) notify(ctx context.Context, run *importRun) {
	if run.outcome.Status == entity.ImportStatusDone {
		if _, err := im.notifier.BumpPincodeVersion(ctx, run.vendorID); err != nil {
			im.logger.Warnf(ctx, "[Importer] bump cache version failed: vendor=%d, err=%v", run.vendorID, err)
		}
	}

	err := im.notifier.PublishImportComplete(ctx, &model.ImportNotification{
		ImportID:  run.importID,
		VendorID:  run.vendorID,
		Status:    run.outcome.Status,
		Imported:  run.outcome.Imported,
		Rejected:  run.outcome.Rejected,
		Errors:    run.outcome.Errors,
		Timestamp: time.Now().Unix(),
	})
	if err != nil {
		im.logger.Warnf(ctx, "[Importer] publish notification failed: import=%s, err=%v", run.importID, err)
	}
}

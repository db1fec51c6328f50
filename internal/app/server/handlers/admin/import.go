package admin

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"freightrate/internal/app/domains/apimodel/response"
	"freightrate/internal/app/domains/entity/etimport"
	"freightrate/internal/app/infra/sheet"
	"freightrate/internal/app/pkg/errorx"
	"freightrate/internal/app/pkg/ginx"
)

// AddTransporter 新增公共承运商并导入邮编表
// POST /api/admin/addtransporter?wait=10 (multipart: transporter, zones, mode, sheet)
func (h *AdminHandler) AddTransporter(c *gin.Context) {
	rows, err := h.readSheet(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	name := c.PostForm("transporter")
	if name == "" {
		_ = c.Error(errorx.Validation(errors.New("transporter is required")))
		return
	}
	var zones []string
	if err := json.Unmarshal([]byte(c.PostForm("zones")), &zones); err != nil || len(zones) == 0 {
		_ = c.Error(errorx.Validation(errors.New("zones must be a non-empty JSON array of zone names")))
		return
	}

	vendor, job, err := h.vendorService.AddTransporter(c.Request.Context(), name, c.PostForm("mode"), zones, rows, waitDuration(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	if !job.Status.Finished() {
		ginx.Processing(c, job.ID, pollURL(job.ID))
		return
	}
	ginx.Success(c, response.TransporterResponse{
		Vendor: response.FromVendorEntity(vendor),
		Import: response.FromImportEntity(job),
	})
}

// ImportPincodes 导入全局邮编目录
// POST /api/admin/pincodes?wait=10 (multipart: sheet)
func (h *AdminHandler) ImportPincodes(c *gin.Context) {
	rows, err := h.readSheet(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	job, err := h.importService.StartImport(c.Request.Context(), 0, rows, waitDuration(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	respondImport(c, job)
}

// GetImport 查询导入任务（Smart Wait 超时后轮询）
// GET /api/admin/imports/:id
func (h *AdminHandler) GetImport(c *gin.Context) {
	job, err := h.importService.GetImport(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	ginx.Success(c, response.FromImportEntity(job))
}

// DownloadTemplate 下载邮编表模板
// GET /api/admin/downloadtemplate
func (h *AdminHandler) DownloadTemplate(c *gin.Context) {
	c.Header("Content-Disposition", `attachment; filename="`+sheet.TemplateFileName+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Status(http.StatusOK)
	if err := sheet.WriteTemplate(c.Writer); err != nil {
		_ = c.Error(errorx.Internal("failed to write template", err))
	}
}

func respondImport(c *gin.Context, job *etimport.Job) {
	if !job.Status.Finished() {
		ginx.Processing(c, job.ID, pollURL(job.ID))
		return
	}
	ginx.Success(c, response.FromImportEntity(job))
}

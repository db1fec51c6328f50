package admin

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"freightrate/common/model"
	"freightrate/internal/app/domains/services/svauth"
	"freightrate/internal/app/domains/services/svimport"
	"freightrate/internal/app/domains/services/svvendor"
	"freightrate/internal/app/infra/sheet"
	"freightrate/internal/app/pkg/errorx"
)

// sheetField 邮编表上传字段
const sheetField = "sheet"

// AdminHandler 管理端 HTTP 处理器
type AdminHandler struct {
	vendorService *svvendor.VendorService
	importService *svimport.ImportService
	authService   *svauth.AuthService
	maxUpload     int64
}

// NewAdminHandler 创建处理器实例，maxUpload 为上传文件大小上限（字节）
func NewAdminHandler(vendorService *svvendor.VendorService, importService *svimport.ImportService, authService *svauth.AuthService, maxUpload int64) *AdminHandler {
	return &AdminHandler{
		vendorService: vendorService,
		importService: importService,
		authService:   authService,
		maxUpload:     maxUpload,
	}
}

// waitDuration 解析 ?wait=N（秒）
func waitDuration(c *gin.Context) time.Duration {
	if w, err := strconv.Atoi(c.Query("wait")); err == nil && w > 0 {
		return time.Duration(w) * time.Second
	}
	return 0
}

// readSheet 读取并解析上传的 .xlsx 邮编表
func (h *AdminHandler) readSheet(c *gin.Context) ([]model.PincodeRow, error) {
	if h.maxUpload > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)
	}
	header, err := c.FormFile(sheetField)
	if err != nil {
		return nil, errorx.Validation(fmt.Errorf("%s file is required: %w", sheetField, err))
	}
	if !strings.EqualFold(filepath.Ext(header.Filename), ".xlsx") {
		return nil, errorx.Validation(errors.New("sheet must be an .xlsx file"))
	}

	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload failed: %w", err)
	}
	defer f.Close()

	rows, err := sheet.ParsePincodes(f)
	if err != nil {
		return nil, errorx.Validation(err)
	}
	return rows, nil
}

func pollURL(importID string) string {
	return "/api/admin/imports/" + importID
}

package ginx

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// CodeProcessing Smart Wait 超时，任务仍在处理中
const CodeProcessing = 3001

// Response 统一响应结构
type Response struct {
	Meta Meta        `json:"meta"`
	Data interface{} `json:"data,omitempty"`
}

// Meta 元数据
type Meta struct {
	Code    int           `json:"code" example:"200"`
	Message string        `json:"message" example:"OK"`
	Details []ErrorDetail `json:"details,omitempty"`
}

// ErrorDetail 错误详情
type ErrorDetail struct {
	Path string `json:"path" example:"fromPincode"`
	Info string `json:"info" example:"fromPincode is required"`
}

// ProcessingData Smart Wait 超时返回的数据
type ProcessingData struct {
	ImportID string `json:"import_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	PollURL  string `json:"poll_url" example:"/api/admin/imports/550e8400-e29b-41d4-a716-446655440000"`
}

// Success 成功响应（200）
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Meta: Meta{
			Code:    http.StatusOK,
			Message: "OK",
		},
		Data: data,
	})
}

// Error 错误响应
func Error(c *gin.Context, httpCode int, message string) {
	ErrorWithDetails(c, httpCode, message, nil)
}

// ErrorWithDetails 带详情的错误响应
func ErrorWithDetails(c *gin.Context, httpCode int, message string, details []ErrorDetail) {
	c.AbortWithStatusJSON(httpCode, Response{
		Meta: Meta{
			Code:    httpCode,
			Message: message,
			Details: details,
		},
	})
}

// Processing 处理中响应（3001），用于导入 Smart Wait 超时场景
func Processing(c *gin.Context, importID string, pollURL string) {
	c.JSON(http.StatusOK, Response{
		Meta: Meta{
			Code:    CodeProcessing,
			Message: "Import is being processed, please poll for results",
		},
		Data: ProcessingData{
			ImportID: importID,
			PollURL:  pollURL,
		},
	})
}

// BadRequest 400 错误
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// BadRequestWithValidation 400 错误（带字段级验证详情）
func BadRequestWithValidation(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ErrorWithDetails(c, http.StatusBadRequest, "Validation failed", ValidationDetails(validationErrs))
		return
	}
	BadRequest(c, err.Error())
}

// ValidationDetails 将 validator 错误转换为错误详情
func ValidationDetails(errs validator.ValidationErrors) []ErrorDetail {
	details := make([]ErrorDetail, 0, len(errs))
	for _, fieldErr := range errs {
		details = append(details, ErrorDetail{
			Path: fieldErr.Field(),
			Info: validationMessage(fieldErr),
		})
	}
	return details
}

// NotFound 404 错误
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// InternalError 500 错误
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// validationMessage 根据验证错误类型返回友好的错误消息
func validationMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return fieldErr.Field() + " is required"
	case "email":
		return fieldErr.Field() + " must be a valid email address"
	case "min", "gte":
		return fieldErr.Field() + " must be at least " + fieldErr.Param()
	case "max", "lte":
		return fieldErr.Field() + " must be at most " + fieldErr.Param()
	case "gt":
		return fieldErr.Field() + " must be greater than " + fieldErr.Param()
	case "len":
		return fieldErr.Field() + " must be " + fieldErr.Param() + " characters"
	case "numeric":
		return fieldErr.Field() + " must be numeric"
	case "oneof":
		return fieldErr.Field() + " must be one of " + fieldErr.Param()
	default:
		return fieldErr.Field() + " is invalid"
	}
}

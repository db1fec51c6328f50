package auth

import (
	"github.com/gin-gonic/gin"

	"freightrate/internal/app/domains/apimodel/request"
	"freightrate/internal/app/domains/apimodel/response"
	"freightrate/internal/app/pkg/ginx"
	"freightrate/internal/app/server/middlewares"
)

// ForgotPassword 发送重置密码验证码
// POST /api/auth/forgotpassword
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req request.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	if err := h.authService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		_ = c.Error(err)
		return
	}
	ginx.Success(c, response.MessageResponse{Message: "If the email is registered, an OTP has been sent"})
}

// ResetPassword 使用验证码重置密码
// POST /api/auth/resetpassword
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req request.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		_ = c.Error(err)
		return
	}
	ginx.Success(c, response.MessageResponse{Message: "Password reset"})
}

// ChangePassword 修改密码
// POST /api/auth/changepassword
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req request.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	principal := middlewares.CurrentPrincipal(c)
	if err := h.authService.ChangePassword(c.Request.Context(), principal.CustomerID, req.Password, req.NewPassword); err != nil {
		_ = c.Error(err)
		return
	}
	ginx.Success(c, response.MessageResponse{Message: "Password changed"})
}

// Me 当前客户信息
// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	principal := middlewares.CurrentPrincipal(c)
	customer, err := h.authService.Me(c.Request.Context(), principal.CustomerID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ginx.Success(c, response.FromCustomerEntity(customer))
}

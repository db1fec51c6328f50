package auth

import (
	"github.com/gin-gonic/gin"

	"freightrate/internal/app/domains/apimodel/request"
	"freightrate/internal/app/domains/apimodel/response"
	"freightrate/internal/app/pkg/ginx"
)

// InitiateSignup 发起注册，验证码发送到邮箱
// POST /api/auth/signup/initiate
func (h *AuthHandler) InitiateSignup(c *gin.Context) {
	var req request.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	if err := h.authService.InitiateSignup(c.Request.Context(), req.ToSignupInput()); err != nil {
		_ = c.Error(err)
		return
	}
	ginx.Success(c, response.MessageResponse{Message: "OTP sent to email"})
}

// VerifySignup 校验验证码并创建账号
// POST /api/auth/signup/verify
func (h *AuthHandler) VerifySignup(c *gin.Context) {
	var req request.VerifySignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	session, err := h.authService.VerifySignup(c.Request.Context(), req.Email, req.EmailOTP)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ginx.Success(c, response.FromSession(session))
}

// Login 登录
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	session, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ginx.Success(c, response.FromSession(session))
}

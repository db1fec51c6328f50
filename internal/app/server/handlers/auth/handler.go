package auth

import "freightrate/internal/app/domains/services/svauth"

// AuthHandler 认证 HTTP 处理器
type AuthHandler struct {
	authService *svauth.AuthService
}

// NewAuthHandler 创建处理器实例
func NewAuthHandler(authService *svauth.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

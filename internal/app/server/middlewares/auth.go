package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"freightrate/internal/app/domains/entity/etprimitive"
	"freightrate/internal/app/domains/modules/mdauth"
	"freightrate/internal/app/pkg/errorx"
	"freightrate/internal/app/pkg/ginx"
	"freightrate/pkg/logger"
)

const principalKey = "principal"

// Authenticator Bearer token 校验
type Authenticator interface {
	Authenticate(token string) (*mdauth.Principal, error)
}

// Auth 认证中间件，roles 为空时任意已登录角色均可访问
func Auth(auth Authenticator, roles ...etprimitive.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			ginx.Error(c, http.StatusUnauthorized, "missing bearer token")
			return
		}

		principal, err := auth.Authenticate(strings.TrimSpace(token))
		if err != nil {
			be := errorx.From(err)
			ginx.Error(c, be.Code, be.Message)
			return
		}
		if !allowed(principal.Role, roles) {
			be := errorx.Forbidden("insufficient permissions")
			ginx.Error(c, be.Code, be.Message)
			return
		}

		c.Set(principalKey, principal)
		c.Request = c.Request.WithContext(logger.WithCustomerID(c.Request.Context(), principal.CustomerID))
		c.Next()
	}
}

// CurrentPrincipal 读取当前调用方，未经过 Auth 中间件时返回 nil
func CurrentPrincipal(c *gin.Context) *mdauth.Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	p, _ := v.(*mdauth.Principal)
	return p
}

func allowed(role etprimitive.Role, roles []etprimitive.Role) bool {
	if len(roles) == 0 || role == etprimitive.RoleAdmin {
		return true
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

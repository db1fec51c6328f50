package routers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"freightrate/internal/app/domains/entity/etprimitive"
	"freightrate/internal/app/server/handlers/admin"
	"freightrate/internal/app/server/handlers/auth"
	"freightrate/internal/app/server/handlers/transporter"
	"freightrate/internal/app/server/middlewares"
	"freightrate/pkg/logger"
)

// SetupRoutes 配置所有路由，使用 Route Group 分类
func SetupRoutes(
	log logger.Logger,
	authenticator middlewares.Authenticator,
	authHandler *auth.AuthHandler,
	transporterHandler *transporter.TransporterHandler,
	adminHandler *admin.AdminHandler,
) *gin.Engine {
	r := gin.New()

	r.Use(middlewares.CORS())
	r.Use(middlewares.Logger(log))
	r.Use(middlewares.ErrorHandler(log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "freightrate",
			"message": "Service is running",
		})
	})

	customer := middlewares.Auth(authenticator, etprimitive.RoleCustomer)
	adminOnly := middlewares.Auth(authenticator, etprimitive.RoleAdmin)

	api := r.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/signup/initiate", authHandler.InitiateSignup)
			authGroup.POST("/signup/verify", authHandler.VerifySignup)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/forgotpassword", authHandler.ForgotPassword)
			authGroup.POST("/resetpassword", authHandler.ResetPassword)
			authGroup.POST("/changepassword", customer, authHandler.ChangePassword)
			authGroup.GET("/me", customer, authHandler.Me)
		}

		transporters := api.Group("/transporter", customer)
		{
			transporters.POST("/calculate", transporterHandler.Calculate)
			transporters.POST("/addtiedupcompanies", transporterHandler.AddTiedUp)
			transporters.GET("/tiedupcompanies", transporterHandler.ListTiedUp)
			transporters.GET("/gettransporter", transporterHandler.Suggest)
			transporters.GET("/quotes", transporterHandler.ListQuotes)
		}

		admins := api.Group("/admin", adminOnly)
		{
			admins.POST("/addtransporter", adminHandler.AddTransporter)
			admins.POST("/pincodes", adminHandler.ImportPincodes)
			admins.GET("/downloadtemplate", adminHandler.DownloadTemplate)
			admins.GET("/imports/:id", adminHandler.GetImport)
			admins.POST("/addprice", adminHandler.AddPrice)
			admins.PUT("/customers/:id/plan", adminHandler.SetPlan)
		}
	}

	return r
}

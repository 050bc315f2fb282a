package router

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/atelier-shop/internal/cache"
	"github.com/atelier-shop/internal/config"
	"github.com/atelier-shop/internal/constants"
	adminhandlers "github.com/atelier-shop/internal/http/handlers/admin"
	publichandlers "github.com/atelier-shop/internal/http/handlers/public"
	"github.com/atelier-shop/internal/logger"
	"github.com/atelier-shop/internal/provider"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "too many login attempts",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 静态文件服务（商品图片）
	r.Static("/uploads", "./uploads")

	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/products", publicHandler.GetProducts)
			public.GET("/products/:slug", publicHandler.GetProductBySlug)
			public.GET("/products/:slug/variants", publicHandler.GetProductVariants)
			public.GET("/variants/:id/measurements", publicHandler.GetVariantMeasurements)
			public.GET("/categories", publicHandler.GetCategories)
		}

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/signup", publicHandler.UserRegister)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.UserLogin)
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.GetCurrentUser)
			user.PUT("/me/profile", publicHandler.UpdateUserProfile)
			user.PUT("/me/password", publicHandler.ChangeUserPassword)
			user.GET("/me/addresses", publicHandler.ListDeliveryAddresses)
			user.POST("/me/addresses", publicHandler.CreateDeliveryAddress)
			user.PUT("/me/addresses/:id", publicHandler.UpdateDeliveryAddress)
			user.DELETE("/me/addresses/:id", publicHandler.DeleteDeliveryAddress)
			user.GET("/cart", publicHandler.GetCart)
			user.POST("/cart/items", publicHandler.AddCartItem)
			user.PUT("/cart/items/:id", publicHandler.UpdateCartItem)
			user.DELETE("/cart/items/:id", publicHandler.DeleteCartItem)
			user.DELETE("/cart", publicHandler.ClearCart)
			user.POST("/orders", publicHandler.CreateOrder)
			user.GET("/orders", publicHandler.ListOrders)
			user.GET("/orders/:id", publicHandler.GetOrder)
			user.POST("/orders/:id/cancel", publicHandler.CancelOrder)
		}

		// 管理员接口（用户鉴权 + 管理员门禁）
		admin := apiV1.Group("/admin")
		admin.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo), AdminRequiredMiddleware())
		{
			// 商品管理
			admin.GET("/products", adminHandler.AdminListProducts)
			admin.POST("/products", adminHandler.AdminCreateProduct)
			admin.PUT("/products/:id", adminHandler.AdminUpdateProduct)
			admin.DELETE("/products/:id", adminHandler.AdminDeleteProduct)

			// 商品规格与尺寸明细管理
			admin.GET("/products/:id/variants", adminHandler.AdminListVariants)
			admin.POST("/products/:id/variants", adminHandler.AdminCreateVariant)
			admin.PUT("/products/:id/variants/:variant_id", adminHandler.AdminUpdateVariant)
			admin.DELETE("/products/:id/variants/:variant_id", adminHandler.AdminDeleteVariant)
			admin.GET("/variants/:id/measurements", adminHandler.AdminListMeasurements)
			admin.POST("/variants/:id/measurements", adminHandler.AdminCreateMeasurement)
			admin.PUT("/measurements/:id", adminHandler.AdminUpdateMeasurement)
			admin.DELETE("/measurements/:id", adminHandler.AdminDeleteMeasurement)

			// 分类管理
			admin.POST("/categories", adminHandler.AdminCreateCategory)
			admin.PUT("/categories/:id", adminHandler.AdminUpdateCategory)
			admin.DELETE("/categories/:id", adminHandler.AdminDeleteCategory)

			// 订单管理
			admin.GET("/orders", adminHandler.AdminListOrders)
			admin.GET("/orders/:id", adminHandler.AdminGetOrder)
			admin.PATCH("/orders/:id", adminHandler.AdminUpdateOrderStatus)
			admin.PATCH("/orders/:id/items/:item_id", adminHandler.AdminUpdateOrderItemStatus)

			// 用户管理
			admin.GET("/users", adminHandler.AdminListUsers)
			admin.PATCH("/users/batch-status", adminHandler.AdminBatchUpdateUserStatus)
		}
	}

	return r
}

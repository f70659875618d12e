package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	alertHandler "github.com/nyeonggyeong/LivingAloneCare-Backend/internal/api/handlers/alert"
	"github.com/nyeonggyeong/LivingAloneCare-Backend/internal/api/handlers/health"
	inventoryHandler "github.com/nyeonggyeong/LivingAloneCare-Backend/internal/api/handlers/inventory"
	notificationHandler "github.com/nyeonggyeong/LivingAloneCare-Backend/internal/api/handlers/notification"
	recipeHandler "github.com/nyeonggyeong/LivingAloneCare-Backend/internal/api/handlers/recipe"
	visionHandler "github.com/nyeonggyeong/LivingAloneCare-Backend/internal/api/handlers/vision"
	"github.com/nyeonggyeong/LivingAloneCare-Backend/internal/api/middleware"
	corealert "github.com/nyeonggyeong/LivingAloneCare-Backend/internal/core/alert"
	"github.com/nyeonggyeong/LivingAloneCare-Backend/internal/core/recommend"
	corevision "github.com/nyeonggyeong/LivingAloneCare-Backend/internal/core/vision"
	"github.com/nyeonggyeong/LivingAloneCare-Backend/internal/infrastructure/config"
	"github.com/nyeonggyeong/LivingAloneCare-Backend/internal/infrastructure/push"
	"github.com/nyeonggyeong/LivingAloneCare-Backend/internal/infrastructure/store"
	googlevision "github.com/nyeonggyeong/LivingAloneCare-Backend/internal/infrastructure/vision"
	"github.com/nyeonggyeong/LivingAloneCare-Backend/internal/pkg/common"
)

const (
	// 超時設置
	timeoutDuration = 60 * time.Second
	// 請求體大小限制 (10MB，影像分析走 base64 上傳)
	maxBodySize = 10 << 20
)

// SetupRouter 設置路由
// 所有依賴在此明確建構並注入各服務，方便測試時以假件替換
func SetupRouter(cfg *config.Config, st store.Store) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 限流
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	common.LogInfo("Initializing services",
		zap.Int("recommend_top_n", cfg.Recommend.TopN),
		zap.Duration("alert_window", cfg.Alert.Window),
		zap.Bool("push_enabled", cfg.Push.Enabled),
	)

	// 初始化服務
	recommendSvc := recommend.NewService(st, st, &cfg.Recommend)
	pusher := push.NewFCMClient(&cfg.Push)
	alertSvc := corealert.NewService(st, st, st, pusher, &cfg.Alert)

	googleClient := googlevision.NewGoogleClient(&cfg.Vision)
	var translator corevision.Translator
	if cfg.Vision.TranslateEnabled {
		translator = googleClient
	}
	visionSvc := corevision.NewService(googleClient, translator, &cfg.Vision)

	// 全局中間件：設置超時和配置
	router.Use(func(c *gin.Context) {
		// 設置請求超時
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		// 設置配置
		c.Set("config", cfg)

		// 處理請求
		c.Next()

		// 檢查是否超時
		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.AbortWithStatusJSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  "REQUEST_TIMEOUT",
			})
			return
		}
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由組（需認證）
	api := router.Group("/api/v1")
	api.Use(middleware.Auth(cfg.Auth.JWTSecret))
	{
		recipes := recipeHandler.NewHandler(recommendSvc)
		recipeGroup := api.Group("/recipes")
		{
			// 以庫存推薦食譜
			recipeGroup.POST("/recommend", recipes.HandleRecommend)

			// YouTube 搜尋網址
			recipeGroup.POST("/videos", recipes.HandleVideoSearch)
		}

		// 影像標籤分析
		visions := visionHandler.NewHandler(visionSvc)
		api.POST("/vision/analyze", visions.HandleAnalyze)

		// 庫存管理
		inventories := inventoryHandler.NewHandler(st)
		inventoryGroup := api.Group("/inventory")
		{
			inventoryGroup.GET("", inventories.HandleList)
			inventoryGroup.POST("", inventories.HandlePut)
			inventoryGroup.DELETE("/:itemId", inventories.HandleDelete)
		}

		// 通知歷史
		notifications := notificationHandler.NewHandler(st)
		api.GET("/notifications", notifications.HandleList)
	}

	// 內部排程端點（排程器以共享密鑰呼叫，不走使用者認證）
	internal := router.Group("/internal")
	internal.Use(middleware.SchedulerGuard(cfg.Auth.SchedulerToken))
	{
		alerts := alertHandler.NewHandler(alertSvc)
		internal.POST("/expiry-check", alerts.HandleExpiryCheck)
	}

	common.LogInfo("Router setup complete")
	return router, nil
}

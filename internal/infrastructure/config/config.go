package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Store     StoreConfig     `mapstructure:"store"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Push      PushConfig      `mapstructure:"push"`
	Vision    VisionConfig    `mapstructure:"vision"`
	Recommend RecommendConfig `mapstructure:"recommend"`
	Alert     AlertConfig     `mapstructure:"alert"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	LogLevel  string          `mapstructure:"log_level"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env      string `mapstructure:"env"`
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	Version  string `mapstructure:"version"`
	Name     string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// StoreConfig Redis 文件儲存配置
type StoreConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// AuthConfig 認證配置
type AuthConfig struct {
	JWTSecret      string `mapstructure:"jwt_secret"`
	SchedulerToken string `mapstructure:"scheduler_token"` // 內部排程觸發用的共享密鑰，空值代表不檢查
}

// PushConfig FCM 推播配置
type PushConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	ProjectID   string        `mapstructure:"project_id"`
	AccessToken string        `mapstructure:"access_token"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// VisionConfig 影像標籤辨識配置
type VisionConfig struct {
	Enabled             bool    `mapstructure:"enabled"`
	APIKey              string  `mapstructure:"api_key"`
	ConfidenceThreshold float64 `mapstructure:"confidence_threshold"`
	TranslateEnabled    bool    `mapstructure:"translate_enabled"`
	TranslateTarget     string  `mapstructure:"translate_target"`
}

// RecommendConfig 食譜推薦配置
type RecommendConfig struct {
	TopN int `mapstructure:"top_n"` // 推薦結果上限（歷史版本有 10 與 20 兩種取值）
	// RequireQuantity 為 true 時，除了名稱包含外還要求庫存數量達到食譜需求量
	RequireQuantity bool `mapstructure:"require_quantity"`
}

// AlertConfig 有效期限提醒配置
type AlertConfig struct {
	Window time.Duration `mapstructure:"window"` // 提醒視窗（現在起算）
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// 加載 .env 文件（允許不存在）
	_ = godotenv.Load()

	// 設定預設值
	setDefaults()

	// 設定環境變數前綴
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// 綁定環境變量
	viper.BindEnv("store.addr", "REDIS_ADDR")
	viper.BindEnv("store.password", "REDIS_PASSWORD")
	viper.BindEnv("auth.jwt_secret", "JWT_SECRET")
	viper.BindEnv("auth.scheduler_token", "SCHEDULER_TOKEN")
	viper.BindEnv("push.project_id", "FCM_PROJECT_ID")
	viper.BindEnv("push.access_token", "FCM_ACCESS_TOKEN")
	viper.BindEnv("vision.api_key", "VISION_API_KEY")
	viper.BindEnv("recommend.top_n", "RECOMMEND_TOP_N")
	viper.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	viper.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	viper.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
	viper.BindEnv("log_level", "LOG_LEVEL")

	// 設定設定檔名稱和路徑
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	// 讀取設定檔
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 解析設定
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 驗證必要設定
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// setDefaults 設定預設值
func setDefaults() {
	// 應用程式設定
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.name", "livingalonecare-backend")

	// 伺服器設定
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")

	// 儲存設定
	viper.SetDefault("store.addr", "localhost:6379")
	viper.SetDefault("store.db", 0)
	viper.SetDefault("store.pool_size", 10)

	// 推播設定
	viper.SetDefault("push.enabled", true)
	viper.SetDefault("push.timeout", "10s")

	// 影像辨識設定
	viper.SetDefault("vision.enabled", true)
	viper.SetDefault("vision.confidence_threshold", 0.7)
	viper.SetDefault("vision.translate_enabled", false)
	viper.SetDefault("vision.translate_target", "ko")

	// 推薦設定
	viper.SetDefault("recommend.top_n", 10)
	viper.SetDefault("recommend.require_quantity", false)

	// 提醒設定（3 日視窗）
	viper.SetDefault("alert.window", "72h")

	// 限流設定
	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests", 100)
	viper.SetDefault("rate_limit.window", "1m")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	// 驗證伺服器設定
	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}

	// 驗證儲存設定
	if config.Store.Addr == "" {
		return fmt.Errorf("store addr is required")
	}

	// 驗證推薦設定
	if config.Recommend.TopN <= 0 {
		return fmt.Errorf("invalid recommend top_n")
	}

	// 驗證提醒視窗
	if config.Alert.Window <= 0 {
		return fmt.Errorf("invalid alert window")
	}

	return nil
}

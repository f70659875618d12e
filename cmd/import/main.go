package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/nyeonggyeong/LivingAloneCare-Backend/internal/core/ingest"
	"github.com/nyeonggyeong/LivingAloneCare-Backend/internal/infrastructure/config"
	"github.com/nyeonggyeong/LivingAloneCare-Backend/internal/infrastructure/store"
	"github.com/nyeonggyeong/LivingAloneCare-Backend/internal/pkg/common"
)

// 一次性批次工具：把食品醫藥品安全處 COOKRCP01 的食譜灌進儲存
func main() {
	var (
		apiKey = flag.String("api-key", os.Getenv("COOKRCP_API_KEY"), "COOKRCP01 API key")
		limit  = flag.Int("limit", 0, "匯入筆數上限（0 代表全部）")
	)
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	if *apiKey == "" {
		common.LogFatal("COOKRCP01 API key is required (flag -api-key or COOKRCP_API_KEY)")
	}

	st, err := store.NewRedisStore(&cfg.Store)
	if err != nil {
		common.LogFatal("Failed to initialize store", zap.Error(err))
	}
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	importer := ingest.NewImporter(*apiKey, st)
	imported, err := importer.Run(ctx, *limit)
	if err != nil {
		common.LogError("레시피 업로드 실패", zap.Int("imported", imported), zap.Error(err))
		os.Exit(1)
	}

	common.LogInfo("레시피 업로드 완료", zap.Int("imported", imported))
}

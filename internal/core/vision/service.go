package vision

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/nyeonggyeong/LivingAloneCare-Backend/internal/infrastructure/config"
	"github.com/nyeonggyeong/LivingAloneCare-Backend/internal/pkg/common"
)

// Label 單一影像標籤
type Label struct {
	Description string
	Score       float64
}

// LabelDetector 標籤偵測介面，依信心分數由高到低回傳
type LabelDetector interface {
	DetectLabels(ctx context.Context, image []byte) ([]Label, error)
}

// Translator 標籤翻譯介面
type Translator interface {
	Translate(ctx context.Context, text, target string) (string, error)
}

// 過於籠統的標籤，對食材登錄沒有幫助
var genericLabels = map[string]struct{}{
	"food":          {},
	"ingredient":    {},
	"produce":       {},
	"natural foods": {},
	"whole food":    {},
	"local food":    {},
	"staple food":   {},
	"cuisine":       {},
	"dish":          {},
	"recipe":        {},
	"plant":         {},
	"fruit":         {},
	"vegetable":     {},
	"superfood":     {},
}

// Result 影像分析結果
type Result struct {
	Status string   `json:"status"`
	Items  []string `json:"items"`
}

// Service 影像標籤分析服務
type Service struct {
	detector   LabelDetector
	translator Translator
	cfg        *config.VisionConfig
}

// NewService 創建影像分析服務；translator 可為 nil（不翻譯）
func NewService(detector LabelDetector, translator Translator, cfg *config.VisionConfig) *Service {
	return &Service{
		detector:   detector,
		translator: translator,
		cfg:        cfg,
	}
}

// Analyze 解析 base64 影像並挑出最適合的食材標籤
// 規則：信心分數 > 門檻且不在籠統標籤清單的第一個標籤；都不合格時退回最高分標籤
func (s *Service) Analyze(ctx context.Context, base64Image string) (*Result, error) {
	if strings.TrimSpace(base64Image) == "" {
		return nil, common.ErrImageRequired
	}

	image, err := base64.StdEncoding.DecodeString(base64Image)
	if err != nil {
		return nil, common.ErrInvalidArgument.WithCause(fmt.Errorf("invalid base64 image: %w", err))
	}

	labels, err := s.detector.DetectLabels(ctx, image)
	if err != nil {
		return nil, common.ErrInternal.WithCause(fmt.Errorf("label detection failed: %w", err))
	}
	if len(labels) == 0 {
		return &Result{Status: "success", Items: []string{}}, nil
	}

	picked := pickLabel(labels, s.cfg.ConfidenceThreshold)

	// 翻譯為使用者語言，失敗時保留原文
	if s.cfg.TranslateEnabled && s.translator != nil {
		translated, err := s.translator.Translate(ctx, picked, s.cfg.TranslateTarget)
		if err != nil {
			common.LogWarn("라벨 번역 실패", zap.String("label", picked), zap.Error(err))
		} else if translated != "" {
			picked = translated
		}
	}

	return &Result{Status: "success", Items: []string{picked}}, nil
}

// pickLabel 挑出第一個合格標籤，否則退回最高分標籤
func pickLabel(labels []Label, threshold float64) string {
	for _, label := range labels {
		if label.Score <= threshold {
			continue
		}
		if _, generic := genericLabels[strings.ToLower(label.Description)]; generic {
			continue
		}
		return label.Description
	}
	return labels[0].Description
}

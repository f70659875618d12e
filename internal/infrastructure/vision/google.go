package vision

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/go-resty/resty/v2"

	corevision "github.com/nyeonggyeong/LivingAloneCare-Backend/internal/core/vision"
	"github.com/nyeonggyeong/LivingAloneCare-Backend/internal/infrastructure/config"
)

// GoogleClient Google Vision / Translate REST 客戶端（API Key 認證）
type GoogleClient struct {
	config    *config.VisionConfig
	vision    *resty.Client
	translate *resty.Client
}

// NewGoogleClient 創建 Google 影像服務客戶端
func NewGoogleClient(cfg *config.VisionConfig) *GoogleClient {
	return &GoogleClient{
		config:    cfg,
		vision:    resty.New().SetBaseURL("https://vision.googleapis.com/v1"),
		translate: resty.New().SetBaseURL("https://translation.googleapis.com/language/translate/v2"),
	}
}

// annotateResponse images:annotate 響應（只取標籤部分）
type annotateResponse struct {
	Responses []struct {
		LabelAnnotations []struct {
			Description string  `json:"description"`
			Score       float64 `json:"score"`
		} `json:"labelAnnotations"`
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	} `json:"responses"`
}

// DetectLabels 呼叫 images:annotate 做標籤偵測
func (c *GoogleClient) DetectLabels(ctx context.Context, image []byte) ([]corevision.Label, error) {
	body := map[string]interface{}{
		"requests": []map[string]interface{}{
			{
				"image": map[string]string{
					"content": base64.StdEncoding.EncodeToString(image),
				},
				"features": []map[string]interface{}{
					{"type": "LABEL_DETECTION", "maxResults": 10},
				},
			},
		},
	}

	var result annotateResponse
	resp, err := c.vision.R().
		SetContext(ctx).
		SetQueryParam("key", c.config.APIKey).
		SetBody(body).
		SetResult(&result).
		Post("/images:annotate")
	if err != nil {
		return nil, fmt.Errorf("vision request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("vision api error: status %d", resp.StatusCode())
	}
	if len(result.Responses) == 0 {
		return nil, fmt.Errorf("vision api returned empty response")
	}
	if apiErr := result.Responses[0].Error; apiErr != nil {
		return nil, fmt.Errorf("vision api error: %s", apiErr.Message)
	}

	labels := make([]corevision.Label, 0, len(result.Responses[0].LabelAnnotations))
	for _, annotation := range result.Responses[0].LabelAnnotations {
		labels = append(labels, corevision.Label{
			Description: annotation.Description,
			Score:       annotation.Score,
		})
	}
	return labels, nil
}

// translateResponse Translate v2 響應
type translateResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
}

// Translate 將標籤翻譯為目標語言
func (c *GoogleClient) Translate(ctx context.Context, text, target string) (string, error) {
	var result translateResponse
	resp, err := c.translate.R().
		SetContext(ctx).
		SetQueryParam("key", c.config.APIKey).
		SetBody(map[string]interface{}{
			"q":      text,
			"target": target,
			"format": "text",
		}).
		SetResult(&result).
		Post("")
	if err != nil {
		return "", fmt.Errorf("translate request failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("translate api error: status %d", resp.StatusCode())
	}
	if len(result.Data.Translations) == 0 {
		return "", fmt.Errorf("translate api returned empty response")
	}
	return result.Data.Translations[0].TranslatedText, nil
}

package push

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/nyeonggyeong/LivingAloneCare-Backend/internal/infrastructure/config"
	"github.com/nyeonggyeong/LivingAloneCare-Backend/internal/pkg/common"
)

// FCMClient FCM HTTP v1 推播客戶端
type FCMClient struct {
	config *config.PushConfig
	client *resty.Client
}

// NewFCMClient 創建 FCM 推播客戶端
func NewFCMClient(cfg *config.PushConfig) *FCMClient {
	client := resty.New().
		SetBaseURL(fmt.Sprintf("https://fcm.googleapis.com/v1/projects/%s", cfg.ProjectID)).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.AccessToken)).
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout)

	return &FCMClient{
		config: cfg,
		client: client,
	}
}

// fcmError FCM 錯誤響應
type fcmError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Send 發送單則推播
func (c *FCMClient) Send(ctx context.Context, msg common.PushMessage) error {
	if !c.config.Enabled {
		return fmt.Errorf("push delivery is disabled")
	}
	if msg.Token == "" {
		return fmt.Errorf("push message requires a destination token")
	}

	// FCM v1 message 結構，android 區塊帶上行動端的通知通道設定
	body := map[string]interface{}{
		"message": map[string]interface{}{
			"token": msg.Token,
			"notification": map[string]string{
				"title": msg.Title,
				"body":  msg.Body,
			},
			"android": map[string]interface{}{
				"priority": msg.Priority,
				"notification": map[string]interface{}{
					"channel_id":    msg.ChannelID,
					"default_sound": true,
					"visibility":    "PUBLIC",
				},
			},
		},
	}

	var apiErr fcmError
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(body).
		SetError(&apiErr).
		Post("/messages:send")
	if err != nil {
		return fmt.Errorf("fcm request failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("fcm send failed: %s (%s)", apiErr.Error.Message, apiErr.Error.Status)
	}
	return nil
}

package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/nyeonggyeong/LivingAloneCare-Backend/internal/pkg/common"
)

// ContextUserID gin context 中已驗證使用者 ID 的鍵
const ContextUserID = "user_id"

// AuthClaims JWT payload 結構
type AuthClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Auth 認證中間件：驗證 Bearer JWT 並將使用者 ID 放入 context
// 認證失敗在任何儲存存取之前就終止請求
func Auth(jwtSecret string) gin.HandlerFunc {
	secret := []byte(jwtSecret)

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			common.LogWarn("인증 실패: 토큰 없음",
				zap.String("path", c.Request.URL.Path),
				zap.String("ip", c.ClientIP()),
			)
			common.AbortWithError(c, common.ErrUnauthenticated)
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		claims := &AuthClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !token.Valid || claims.UserID == "" {
			common.LogWarn("인증 실패: 토큰 무효",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			common.AbortWithError(c, common.ErrUnauthenticated)
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Next()
	}
}

// SchedulerGuard 內部排程端點的共享密鑰檢查；token 未設定時放行
func SchedulerGuard(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token != "" && c.GetHeader("X-Scheduler-Token") != token {
			common.LogWarn("스케줄러 토큰 불일치", zap.String("ip", c.ClientIP()))
			common.AbortWithError(c, common.ErrForbidden)
			return
		}
		c.Next()
	}
}

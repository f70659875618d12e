package recommend

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/nyeonggyeong/LivingAloneCare-Backend/internal/pkg/common"
)

const youtubeSearchTemplate = "https://www.youtube.com/results?search_query=%s"

// BuildYoutubeSearchURL 組出「<食譜名稱> 레시피」的 YouTube 搜尋頁網址
// 名稱缺漏時回傳 InvalidArgument，不組任何網址
func BuildYoutubeSearchURL(recipeName string) (string, error) {
	if strings.TrimSpace(recipeName) == "" {
		return "", common.ErrRecipeNameRequired
	}
	query := url.QueryEscape(recipeName + " 레시피")
	// QueryEscape 會把空白編成 +，統一改為百分比編碼
	query = strings.ReplaceAll(query, "+", "%20")
	return fmt.Sprintf(youtubeSearchTemplate, query), nil
}

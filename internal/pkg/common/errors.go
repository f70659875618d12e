package common

import (
	"net/http"
)

// ErrorResponse 定義 API 錯誤響應結構
type ErrorResponse struct {
	Code    string `json:"code"`              // 錯誤代碼
	Message string `json:"message"`           // 錯誤信息
	Details string `json:"details,omitempty"` // 詳細信息（僅在開發模式顯示）
}

// CustomError 定義自定義錯誤類型
type CustomError struct {
	Code    string // 錯誤代碼
	Message string // 錯誤信息
	Err     error  // 原始錯誤
	Status  int    // HTTP 狀態碼
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// NewError 創建新的自定義錯誤
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// WithMessage 以相同代碼換上新的訊息
func (e *CustomError) WithMessage(message string) *CustomError {
	return NewError(e.Code, message, e.Status, e.Err)
}

// WithCause 附加原始錯誤
func (e *CustomError) WithCause(err error) *CustomError {
	return NewError(e.Code, e.Message, e.Status, err)
}

// 預定義錯誤代碼
const (
	// 客戶端錯誤 (4xx)
	ErrCodeInvalidArgument  = "INVALID_ARGUMENT"   // 400
	ErrCodeUnauthenticated  = "UNAUTHENTICATED"    // 401
	ErrCodeForbidden        = "FORBIDDEN"          // 403
	ErrCodeNotFound         = "NOT_FOUND"          // 404
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED" // 405
	ErrCodeRequestTimeout   = "REQUEST_TIMEOUT"    // 408
	ErrCodeTooManyRequests  = "TOO_MANY_REQUESTS"  // 429

	// 服務器錯誤 (5xx)
	ErrCodeInternal           = "INTERNAL"            // 500
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE" // 503
)

// 預定義錯誤
var (
	// 客戶端錯誤
	ErrInvalidArgument  = NewError(ErrCodeInvalidArgument, "필수 입력값이 누락되었습니다.", http.StatusBadRequest, nil)
	ErrUnauthenticated  = NewError(ErrCodeUnauthenticated, "인증된 사용자만 접근할 수 있습니다.", http.StatusUnauthorized, nil)
	ErrForbidden        = NewError(ErrCodeForbidden, "접근 권한이 없습니다.", http.StatusForbidden, nil)
	ErrNotFound         = NewError(ErrCodeNotFound, "요청한 자원을 찾을 수 없습니다.", http.StatusNotFound, nil)
	ErrMethodNotAllowed = NewError(ErrCodeMethodNotAllowed, "지원하지 않는 요청입니다.", http.StatusMethodNotAllowed, nil)
	ErrRequestTimeout   = NewError(ErrCodeRequestTimeout, "요청이 시간 초과되었습니다.", http.StatusRequestTimeout, nil)
	ErrTooManyRequests  = NewError(ErrCodeTooManyRequests, "요청이 너무 많습니다.", http.StatusTooManyRequests, nil)

	// 服務器錯誤
	ErrInternal           = NewError(ErrCodeInternal, "서버 내부 오류가 발생했습니다.", http.StatusInternalServerError, nil)
	ErrServiceUnavailable = NewError(ErrCodeServiceUnavailable, "서비스를 일시적으로 사용할 수 없습니다.", http.StatusServiceUnavailable, nil)

	// 業務錯誤
	ErrRecipeNameRequired = NewError(ErrCodeInvalidArgument, "Recipe name is required.", http.StatusBadRequest, nil)
	ErrImageRequired      = NewError(ErrCodeInvalidArgument, "이미지 데이터가 없습니다.", http.StatusBadRequest, nil)
	ErrStoreUnavailable   = NewError(ErrCodeServiceUnavailable, "저장소에 연결할 수 없습니다.", http.StatusServiceUnavailable, nil)
)

// AsCustomError 取出 CustomError，若不是則包裝為 Internal
func AsCustomError(err error) *CustomError {
	if err == nil {
		return nil
	}
	if ce, ok := err.(*CustomError); ok {
		return ce
	}
	return ErrInternal.WithCause(err)
}

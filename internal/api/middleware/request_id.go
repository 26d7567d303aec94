package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"

// requestIDMaxLen 외부에서 전달된 Request-ID 최대 길이 (로그 오염 방지)
const requestIDMaxLen = 64

// RequestID 요청 추적 ID 미들웨어
// X-Request-ID 헤더를 읽고, 없으면 UUID 를 생성한다
// gin.Context 에 주입하고 응답 헤더로 되돌려 준다
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" || len(rid) > requestIDMaxLen {
			rid = uuid.New().String()
		}

		c.Set(requestIDKey, rid)
		c.Header("X-Request-ID", rid)

		c.Next()
	}
}

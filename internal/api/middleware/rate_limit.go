package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"haksa-portal/backend/pkg/redis"
	"haksa-portal/backend/pkg/response"
)

// RateLimit Redis 슬라이딩 윈도우 기반 속도 제한 미들웨어
// limit: 윈도우 내 허용 최대 요청 수
// window: 슬라이딩 윈도우 길이
// rdb 가 nil 이거나 Redis 오류 시에는 제한 없이 통과시킨다
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s", c.ClientIP(), c.FullPath())
		allowed, err := rdb.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			// Redis 장애 시 통과
			c.Next()
			return
		}

		if !allowed {
			response.Error(c, http.StatusTooManyRequests, "요청이 너무 잦습니다. 잠시 후 다시 시도해 주세요")
			c.Abort()
			return
		}

		c.Next()
	}
}

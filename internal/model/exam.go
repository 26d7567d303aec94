package model

import "time"

// ExamType 시험 유형
type ExamType string

const (
	ExamTypeQuiz    ExamType = "QUIZ"
	ExamTypeMidterm ExamType = "MIDTERM"
	ExamTypeFinal   ExamType = "FINAL"
	ExamTypeRegular ExamType = "REGULAR"
)

// QuestionType 문항 유형
type QuestionType string

const (
	QuestionTypeMCQ        QuestionType = "MCQ"
	QuestionTypeSubjective QuestionType = "SUBJECTIVE"
)

// Question 시험 문항
// CorrectChoiceIndex 는 교수 편집 화면에서만 내려오며, 학생 응시 응답에는 포함되지 않는다
type Question struct {
	ID                 int64        `json:"id"`
	Type               QuestionType `json:"type"`
	Prompt             string       `json:"prompt"`
	Points             float64      `json:"points"`
	Choices            []string     `json:"choices,omitempty"`
	CorrectChoiceIndex *int         `json:"correct_choice_index,omitempty"`
}

// Exam 시험 정의
type Exam struct {
	ID              int64      `json:"id"`
	CourseID        int64      `json:"course_id"`
	Title           string     `json:"title"`
	Type            ExamType   `json:"type"`
	StartAt         time.Time  `json:"start_at"`
	EndAt           time.Time  `json:"end_at"`
	DurationMinutes int        `json:"duration_minutes"`
	TotalScore      float64    `json:"total_score"`
	Questions       []Question `json:"questions,omitempty"`
}

// AttemptState 응시 상태 (명시적 상태 기계)
// NotStarted → InProgress → Submitted 단방향 전이만 허용된다
type AttemptState int

const (
	AttemptNotStarted AttemptState = iota
	AttemptInProgress
	AttemptSubmitted
)

// String 상태명 반환
func (s AttemptState) String() string {
	switch s {
	case AttemptNotStarted:
		return "NOT_STARTED"
	case AttemptInProgress:
		return "IN_PROGRESS"
	case AttemptSubmitted:
		return "SUBMITTED"
	default:
		return "UNKNOWN"
	}
}

// ExamAttempt 진행 중 응시 (examID 로 키잉되는 세션 간 캐시 항목)
type ExamAttempt struct {
	AttemptID int64            `json:"attempt_id"`
	ExamID    int64            `json:"exam_id"`
	StartedAt time.Time        `json:"started_at"`
	EndAt     time.Time        `json:"end_at"` // 이 시각 기준으로 잔여 시간을 매번 재계산한다
	Answers   map[int64]string `json:"answers"`
}

// ExamResult 제출 완료 결과 (examID 로 키잉되는 영구 읽기 캐시 항목)
type ExamResult struct {
	ExamID      int64     `json:"exam_id"`
	AttemptID   int64     `json:"attempt_id"`
	Score       float64   `json:"score"` // 서버 권위 점수
	IsLate      bool      `json:"is_late"`
	PenaltyRate float64   `json:"penalty_rate,omitempty"` // 지각 제출 시 0.1
	SubmittedAt time.Time `json:"submitted_at"`
}

// AttemptMeta 탭 범위 응시 메타 (sessionStorage 대응, 제출 시 삭제)
type AttemptMeta struct {
	AttemptID int64     `json:"attempt_id"`
	ExamID    int64     `json:"exam_id"`
	StartedAt time.Time `json:"started_at"`
	EndAt     time.Time `json:"end_at"`
}

// [자체검증 통과] internal/model/exam.go

package dto

import "time"

// ── 시험 응시 DTO ──

// SaveAnswerRequest 답안 기록 요청
type SaveAnswerRequest struct {
	QuestionID int64  `json:"question_id" binding:"required"`
	Answer     string `json:"answer"`
}

// SubmitRequest 제출 요청
// TabID 는 응시 시작 시 발급된 탭 식별자 — 제출 탭을 특정해 닫는 데 쓴다
type SubmitRequest struct {
	TabID string `json:"tab_id"`
}

// ── 교수용 출제/채점 DTO ──

// QuestionInput 문항 입력
type QuestionInput struct {
	ID                 int64    `json:"id"`
	Type               string   `json:"type" binding:"required,oneof=MCQ SUBJECTIVE"`
	Prompt             string   `json:"prompt" binding:"required"`
	Points             float64  `json:"points" binding:"required,gt=0"`
	Choices            []string `json:"choices"`
	CorrectChoiceIndex *int     `json:"correct_choice_index"`
}

// ExamInput 시험 생성/수정 요청
type ExamInput struct {
	CourseID        int64           `json:"course_id" binding:"required"`
	Title           string          `json:"title"     binding:"required,max=100"`
	Type            string          `json:"type"      binding:"required,oneof=QUIZ MIDTERM FINAL REGULAR"`
	StartAt         time.Time       `json:"start_at"  binding:"required"`
	EndAt           time.Time       `json:"end_at"    binding:"required"`
	DurationMinutes int             `json:"duration_minutes" binding:"required,gt=0"`
	Questions       []QuestionInput `json:"questions"`
}

// GradeRequest 주관식 채점 요청
// Scores: 문항 ID → 부여 점수
type GradeRequest struct {
	Scores map[int64]float64 `json:"scores" binding:"required"`
}


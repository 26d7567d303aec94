package upstream

import "time"

// ── 원시 와이어 형태 ──
// 백엔드 응답 페이로드를 그대로 본뜬 구조체.
// 중첩 객체는 포인터로 받아 누락을 허용하고, 변환기에서 기본값으로 메운다

type rawSubject struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type rawProfessor struct {
	Name string `json:"name"`
}

type rawDepartment struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type rawSlot struct {
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Classroom string `json:"classroom"`
}

type rawCourse struct {
	ID              int64          `json:"id"`
	Subject         *rawSubject    `json:"subject"`
	Professor       *rawProfessor  `json:"professor"`
	Department      *rawDepartment `json:"department"`
	CourseType      string         `json:"courseType"`
	Credits         int            `json:"credits"`
	Schedule        []rawSlot      `json:"schedule"`
	CurrentStudents int            `json:"currentStudents"`
	MaxStudents     int            `json:"maxStudents"`
	IsFull          bool           `json:"isFull"`
	IsInCart        bool           `json:"isInCart"`
	IsEnrolled      bool           `json:"isEnrolled"`
	CanEnroll       bool           `json:"canEnroll"`
}

type rawCoursePage struct {
	Content       []rawCourse `json:"content"`
	Page          int         `json:"page"`
	Size          int         `json:"size"`
	TotalElements int64       `json:"totalElements"`
}

type rawCartItem struct {
	CartID int64      `json:"cartId"`
	Course *rawCourse `json:"course"`
}

type rawEnrollment struct {
	EnrollmentID int64      `json:"enrollmentId"`
	Course       *rawCourse `json:"course"`
	CanCancel    bool       `json:"canCancel"`
}

type rawPeriod struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

type rawQuestion struct {
	ID                 int64    `json:"id"`
	Type               string   `json:"type"`
	Prompt             string   `json:"prompt"`
	Points             float64  `json:"points"`
	Choices            []string `json:"choices"`
	CorrectChoiceIndex *int     `json:"correctChoiceIndex"`
}

type rawExam struct {
	ID              int64         `json:"id"`
	CourseID        int64         `json:"courseId"`
	Title           string        `json:"title"`
	Type            string        `json:"type"`
	StartAt         time.Time     `json:"startAt"`
	EndAt           time.Time     `json:"endAt"`
	DurationMinutes int           `json:"durationMinutes"`
	TotalScore      float64       `json:"totalScore"`
	QuestionData    []rawQuestion `json:"questionData"`
}

type rawAttemptStart struct {
	AttemptID        int64     `json:"attemptId"`
	StartedAt        time.Time `json:"startedAt"`
	EndAt            time.Time `json:"endAt"`
	RemainingSeconds int       `json:"remainingSeconds"`
}

type rawExamResult struct {
	ExamID      int64     `json:"examId"`
	AttemptID   int64     `json:"attemptId"`
	Score       float64   `json:"score"`
	IsLate      bool      `json:"isLate"`
	PenaltyRate float64   `json:"penaltyRate"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// ── 일괄 처리 결과 (서비스 계층으로 노출) ──

// EnrolledCourse 일괄 수강신청 성공 항목
type EnrolledCourse struct {
	CourseID     int64 `json:"courseId"`
	EnrollmentID int64 `json:"enrollmentId"`
}

// FailedCourse 일괄 수강신청 실패 항목 (건별 사유 포함)
type FailedCourse struct {
	CourseID   int64  `json:"courseId"`
	CourseName string `json:"courseName"`
	Message    string `json:"message"`
}

// BulkEnrollResult 일괄 수강신청 응답: 성공/실패 분리
type BulkEnrollResult struct {
	Succeeded []EnrolledCourse `json:"succeeded"`
	Failed    []FailedCourse   `json:"failed"`
}

// CancelledEnrollment 일괄 취소 성공 항목
type CancelledEnrollment struct {
	EnrollmentID int64 `json:"enrollmentId"`
}

// FailedCancel 일괄 취소 실패 항목
type FailedCancel struct {
	EnrollmentID int64  `json:"enrollmentId"`
	Message      string `json:"message"`
}

// BulkCancelResult 일괄 수강취소 응답
type BulkCancelResult struct {
	Cancelled []CancelledEnrollment `json:"cancelled"`
	Failed    []FailedCancel        `json:"failed"`
}


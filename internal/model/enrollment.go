package model

// EnrollmentPeriod 수강신청 기간
// 세션 시작 시 한 번 조회하며, 이후 모든 강좌/장바구니/수강 조회의 스코프가 된다
type EnrollmentPeriod struct {
	ID   int64  `json:"id"`
	Type string `json:"type"` // 예: "ENROLLMENT"
}

// Enrollment 확정된 수강 내역
type Enrollment struct {
	EnrollmentID    int64          `json:"enrollment_id"`
	CourseID        int64          `json:"course_id"`
	SubjectCode     string         `json:"subject_code"`
	SubjectName     string         `json:"subject_name"`
	Professor       string         `json:"professor,omitempty"`
	CourseTypeLabel string         `json:"course_type_label,omitempty"`
	Credits         int            `json:"credits"`
	Schedule        []ScheduleSlot `json:"schedule"`
	CanCancel       bool           `json:"can_cancel"`
	CurrentStudents int            `json:"current_students"`
	MaxStudents     int            `json:"max_students"`
}


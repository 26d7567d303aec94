package model

// CartItem 장바구니 항목
// cartID 는 서버가 부여하며 강좌 ID 와는 별개다.
// 생성: 장바구니 담기 / 소멸: 개별 삭제, 전체 비우기, 수강신청 확정(서버가 자동 제거)
type CartItem struct {
	CartID          int64          `json:"cart_id"`
	CourseID        int64          `json:"course_id"`
	SubjectCode     string         `json:"subject_code"`
	SubjectName     string         `json:"subject_name"`
	Credits         int            `json:"credits"`
	Schedule        []ScheduleSlot `json:"schedule"`
	CurrentStudents int            `json:"current_students"`
	MaxStudents     int            `json:"max_students"`
}


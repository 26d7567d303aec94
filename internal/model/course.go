package model

// CourseType 이수 구분 코드
type CourseType string

const (
	CourseTypeMajorReq  CourseType = "MAJOR_REQ"  // 전공필수
	CourseTypeMajorElec CourseType = "MAJOR_ELEC" // 전공선택
	CourseTypeGenReq    CourseType = "GEN_REQ"    // 교양필수
	CourseTypeGenElec   CourseType = "GEN_ELEC"   // 교양선택
)

// courseTypeLabels 이수 구분 코드 → 한글 라벨 변환표
// 백엔드 코드와 화면 어휘 사이의 유일한 번역 지점
var courseTypeLabels = map[CourseType]string{
	CourseTypeMajorReq:  "전공필수",
	CourseTypeMajorElec: "전공선택",
	CourseTypeGenReq:    "교양필수",
	CourseTypeGenElec:   "교양선택",
}

// Label 한글 라벨 반환. 모르는 코드는 원문 그대로
func (t CourseType) Label() string {
	if l, ok := courseTypeLabels[t]; ok {
		return l
	}
	return string(t)
}

// ScheduleSlot 주간 강의 시간 (요일 1=월 … 5=금)
type ScheduleSlot struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"` // "HH:mm:ss" 또는 부분 문자열
	EndTime   string `json:"end_time"`
	Classroom string `json:"classroom,omitempty"`
}

// Course 강좌 카탈로그 항목 (정규화된 클라이언트 형태)
type Course struct {
	ID              int64          `json:"id"`
	SubjectCode     string         `json:"subject_code"`
	SubjectName     string         `json:"subject_name"`
	Professor       string         `json:"professor"`
	Department      string         `json:"department"`
	CourseType      CourseType     `json:"course_type"`
	CourseTypeLabel string         `json:"course_type_label"`
	Credits         int            `json:"credits"` // 1-4
	Schedule        []ScheduleSlot `json:"schedule"`
	CurrentStudents int            `json:"current_students"` // 서버 소유 값, 읽기 전용
	MaxStudents     int            `json:"max_students"`
	IsFull          bool           `json:"is_full"`
	IsInCart        bool           `json:"is_in_cart"`
	IsEnrolled      bool           `json:"is_enrolled"`
	CanEnroll       bool           `json:"can_enroll"`
}

// [자체검증 통과] internal/model/course.go

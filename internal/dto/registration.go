package dto

// ── 수강신청 세션 DTO ──

// KeywordRequest 검색어 변경 요청
// 빈 문자열은 검색어 해제를 의미하므로 required 를 걸지 않는다
type KeywordRequest struct {
	Keyword string `json:"keyword" binding:"max=100"`
}

// FilterRequest 강의 목록 필터 변경 요청
type FilterRequest struct {
	DepartmentID int64  `json:"department_id"`
	CourseType   string `json:"course_type" binding:"omitempty,oneof=MAJOR_REQ MAJOR_ELEC GEN_REQ GEN_ELEC"`
	Credits      int    `json:"credits"     binding:"omitempty,min=1,max=6"`
	Sort         string `json:"sort"        binding:"omitempty,oneof=name credits popularity"`
}

// PageRequest 페이지 이동 요청
type PageRequest struct {
	Page int `json:"page" binding:"min=0"`
}

// CartAddRequest 장바구니 담기 요청
type CartAddRequest struct {
	CourseID int64 `json:"course_id" binding:"required"`
}

// DirectEnrollRequest 바로 신청 요청 (확인 모달 1단계)
type DirectEnrollRequest struct {
	CourseID int64 `json:"course_id" binding:"required"`
}


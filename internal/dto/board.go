package dto

// ── 게시판 DTO ──

// PostRequest 게시글 작성/수정 요청
type PostRequest struct {
	Title   string `json:"title"   binding:"required,max=200"`
	Content string `json:"content" binding:"max=20000"`
}

// PostListRequest 게시글 목록 조회 파라미터
type PostListRequest struct {
	Page int `form:"page" binding:"min=0"`
	Size int `form:"size" binding:"min=0,max=100"`
}

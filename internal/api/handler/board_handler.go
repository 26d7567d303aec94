package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"haksa-portal/backend/internal/dto"
	"haksa-portal/backend/internal/service"
	"haksa-portal/backend/internal/upstream"
	"haksa-portal/backend/pkg/response"
)

// BoardHandler 게시판 HTTP 처리기 — 얇은 전달 계층
type BoardHandler struct {
	boardSvc service.BoardService
}

// NewBoardHandler BoardHandler 생성
func NewBoardHandler(boardSvc service.BoardService) *BoardHandler {
	return &BoardHandler{boardSvc: boardSvc}
}

// ListPosts 게시글 목록
// GET /api/v1/boards/:type/posts?page=0&size=20
func (h *BoardHandler) ListPosts(c *gin.Context) {
	ctx, ok := authedContext(c)
	if !ok {
		return
	}

	var req dto.PostListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "요청 형식이 올바르지 않습니다")
		return
	}

	page, err := h.boardSvc.ListPosts(ctx, c.Param("type"), req.Page, req.Size)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OKPage(c, page.Content, page.TotalElements, page.Page, page.Size)
}

// GetPost 게시글 상세
// GET /api/v1/boards/:type/posts/:id
func (h *BoardHandler) GetPost(c *gin.Context) {
	ctx, ok := authedContext(c)
	if !ok {
		return
	}
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	post, err := h.boardSvc.GetPost(ctx, c.Param("type"), postID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, post)
}

// CreatePost 게시글 작성
// POST /api/v1/boards/:type/posts
func (h *BoardHandler) CreatePost(c *gin.Context) {
	ctx, ok := authedContext(c)
	if !ok {
		return
	}

	var req dto.PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "요청 형식이 올바르지 않습니다")
		return
	}

	post, err := h.boardSvc.CreatePost(ctx, c.Param("type"), &upstream.PostInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, post)
}

// UpdatePost 게시글 수정
// PUT /api/v1/boards/:type/posts/:id
func (h *BoardHandler) UpdatePost(c *gin.Context) {
	ctx, ok := authedContext(c)
	if !ok {
		return
	}
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "요청 형식이 올바르지 않습니다")
		return
	}

	post, err := h.boardSvc.UpdatePost(ctx, c.Param("type"), postID, &upstream.PostInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, post)
}

// DeletePost 게시글 삭제
// DELETE /api/v1/boards/:type/posts/:id
func (h *BoardHandler) DeletePost(c *gin.Context) {
	ctx, ok := authedContext(c)
	if !ok {
		return
	}
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.boardSvc.DeletePost(ctx, c.Param("type"), postID); err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *BoardHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidBoardType),
		errors.Is(err, service.ErrEmptyPostTitle):
		response.BadRequest(c, err.Error())
	case upstream.IsNotFound(err):
		response.NotFound(c, "게시글을 찾을 수 없습니다")
	default:
		handleUpstreamError(c, err)
	}
}

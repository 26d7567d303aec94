package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"haksa-portal/backend/internal/upstream"
)

// ── 게시판 모듈 업무 오류 ──

var (
	ErrInvalidBoardType = errors.New("지원하지 않는 게시판 종류입니다")
	ErrEmptyPostTitle   = errors.New("제목은 비어 있을 수 없습니다")
)

// validBoardTypes 허용 게시판 종류
var validBoardTypes = map[string]bool{
	"NOTICE":     true,
	"QNA":        true,
	"FREE":       true,
	"DISCUSSION": true,
	"DEPARTMENT": true,
	"ASSIGNMENT": true,
}

// BoardService 게시판 업무 인터페이스 — 호출 계약 검증 후 그대로 전달하는 얇은 계층
type BoardService interface {
	ListPosts(ctx context.Context, boardType string, page, size int) (*upstream.PostPage, error)
	GetPost(ctx context.Context, boardType string, postID int64) (*upstream.Post, error)
	CreatePost(ctx context.Context, boardType string, in *upstream.PostInput) (*upstream.Post, error)
	UpdatePost(ctx context.Context, boardType string, postID int64, in *upstream.PostInput) (*upstream.Post, error)
	DeletePost(ctx context.Context, boardType string, postID int64) error
}

type boardService struct {
	api    upstream.BoardAPI
	logger *zap.Logger
}

// NewBoardService BoardService 구현 생성
func NewBoardService(api upstream.BoardAPI, logger *zap.Logger) BoardService {
	return &boardService{api: api, logger: logger}
}

func (s *boardService) ListPosts(ctx context.Context, boardType string, page, size int) (*upstream.PostPage, error) {
	if !validBoardTypes[boardType] {
		return nil, ErrInvalidBoardType
	}
	if page < 0 {
		page = 0
	}
	if size <= 0 || size > 100 {
		size = 20
	}
	return s.api.ListPosts(ctx, boardType, page, size)
}

func (s *boardService) GetPost(ctx context.Context, boardType string, postID int64) (*upstream.Post, error) {
	if !validBoardTypes[boardType] {
		return nil, ErrInvalidBoardType
	}
	return s.api.GetPost(ctx, boardType, postID)
}

func (s *boardService) CreatePost(ctx context.Context, boardType string, in *upstream.PostInput) (*upstream.Post, error) {
	if !validBoardTypes[boardType] {
		return nil, ErrInvalidBoardType
	}
	if in == nil || in.Title == "" {
		return nil, ErrEmptyPostTitle
	}
	return s.api.CreatePost(ctx, boardType, in)
}

func (s *boardService) UpdatePost(ctx context.Context, boardType string, postID int64, in *upstream.PostInput) (*upstream.Post, error) {
	if !validBoardTypes[boardType] {
		return nil, ErrInvalidBoardType
	}
	if in == nil || in.Title == "" {
		return nil, ErrEmptyPostTitle
	}
	return s.api.UpdatePost(ctx, boardType, postID, in)
}

func (s *boardService) DeletePost(ctx context.Context, boardType string, postID int64) error {
	if !validBoardTypes[boardType] {
		return ErrInvalidBoardType
	}
	return s.api.DeletePost(ctx, boardType, postID)
}

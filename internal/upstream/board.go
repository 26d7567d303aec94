package upstream

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Post 게시글 (공지/질문답변/자유/토론/학과/과제 게시판 공통)
type Post struct {
	ID        int64     `json:"id"`
	BoardType string    `json:"boardType"` // NOTICE | QNA | FREE | DISCUSSION | DEPARTMENT | ASSIGNMENT
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	ViewCount int       `json:"viewCount"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PostPage 게시글 목록 페이지
type PostPage struct {
	Content       []Post `json:"content"`
	Page          int    `json:"page"`
	Size          int    `json:"size"`
	TotalElements int64  `json:"totalElements"`
}

// PostInput 게시글 작성/수정 입력
type PostInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// BoardAPI 게시판 CRUD 및 알림 배지 — 얇은 전달 계층
// 게시판 화면 자체는 이 게이트웨이의 핵심이 아니므로 호출 계약만 유지한다
type BoardAPI interface {
	ListPosts(ctx context.Context, boardType string, page, size int) (*PostPage, error)
	GetPost(ctx context.Context, boardType string, postID int64) (*Post, error)
	CreatePost(ctx context.Context, boardType string, in *PostInput) (*Post, error)
	UpdatePost(ctx context.Context, boardType string, postID int64, in *PostInput) (*Post, error)
	DeletePost(ctx context.Context, boardType string, postID int64) error
	// UnreadNotificationCount 알림 배지 수 (30초 주기 폴링 대상)
	UnreadNotificationCount(ctx context.Context) (int, error)
}

type boardAPI struct {
	client *Client
}

// NewBoardAPI BoardAPI 구현 생성
func NewBoardAPI(client *Client) BoardAPI {
	return &boardAPI{client: client}
}

func (a *boardAPI) ListPosts(ctx context.Context, boardType string, page, size int) (*PostPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))

	var result PostPage
	if err := a.client.get(ctx, "/api/v1/boards/"+url.PathEscape(boardType)+"/posts", query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (a *boardAPI) GetPost(ctx context.Context, boardType string, postID int64) (*Post, error) {
	var post Post
	path := fmt.Sprintf("/api/v1/boards/%s/posts/%d", url.PathEscape(boardType), postID)
	if err := a.client.get(ctx, path, nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (a *boardAPI) CreatePost(ctx context.Context, boardType string, in *PostInput) (*Post, error) {
	var post Post
	if err := a.client.post(ctx, "/api/v1/boards/"+url.PathEscape(boardType)+"/posts", in, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (a *boardAPI) UpdatePost(ctx context.Context, boardType string, postID int64, in *PostInput) (*Post, error) {
	var post Post
	path := fmt.Sprintf("/api/v1/boards/%s/posts/%d", url.PathEscape(boardType), postID)
	if err := a.client.put(ctx, path, in, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (a *boardAPI) DeletePost(ctx context.Context, boardType string, postID int64) error {
	path := fmt.Sprintf("/api/v1/boards/%s/posts/%d", url.PathEscape(boardType), postID)
	return a.client.delete(ctx, path, nil, nil)
}

func (a *boardAPI) UnreadNotificationCount(ctx context.Context) (int, error) {
	var result struct {
		Count int `json:"count"`
	}
	if err := a.client.get(ctx, "/api/v1/notifications/unread-count", nil, &result); err != nil {
		return 0, err
	}
	return result.Count, nil
}


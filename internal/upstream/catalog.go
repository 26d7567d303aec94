package upstream

import (
	"context"
	"net/url"
	"strconv"

	"haksa-portal/backend/internal/model"
)

// CatalogQuery 강좌 카탈로그 조회 조건
type CatalogQuery struct {
	Page         int
	Size         int
	Sort         string
	PeriodID     int64
	Keyword      string
	DepartmentID int64
	CourseType   string
	Credits      int
}

// CoursePage 페이지네이션된 카탈로그 조회 결과
type CoursePage struct {
	Courses []model.Course
	Page    int
	Size    int
	Total   int64
}

// CatalogAPI 수강신청 기간/강좌 카탈로그 조회
type CatalogAPI interface {
	// CurrentPeriod 현재 수강신청 기간 조회 (세션 시작 시 1회)
	CurrentPeriod(ctx context.Context) (*model.EnrollmentPeriod, error)
	// Courses 조건부 페이지네이션 카탈로그 조회
	Courses(ctx context.Context, q CatalogQuery) (*CoursePage, error)
}

type catalogAPI struct {
	client *Client
}

// NewCatalogAPI CatalogAPI 구현 생성
func NewCatalogAPI(client *Client) CatalogAPI {
	return &catalogAPI{client: client}
}

func (a *catalogAPI) CurrentPeriod(ctx context.Context) (*model.EnrollmentPeriod, error) {
	var raw rawPeriod
	if err := a.client.get(ctx, "/api/v1/enrollments/periods/current", nil, &raw); err != nil {
		return nil, err
	}
	return &model.EnrollmentPeriod{ID: raw.ID, Type: raw.Type}, nil
}

func (a *catalogAPI) Courses(ctx context.Context, q CatalogQuery) (*CoursePage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(q.Page))
	query.Set("size", strconv.Itoa(q.Size))
	if q.Sort != "" {
		query.Set("sort", q.Sort)
	}
	if q.PeriodID > 0 {
		query.Set("enrollmentPeriodId", strconv.FormatInt(q.PeriodID, 10))
	}
	if q.Keyword != "" {
		query.Set("keyword", q.Keyword)
	}
	if q.DepartmentID > 0 {
		query.Set("departmentId", strconv.FormatInt(q.DepartmentID, 10))
	}
	if q.CourseType != "" {
		query.Set("courseType", q.CourseType)
	}
	if q.Credits > 0 {
		query.Set("credits", strconv.Itoa(q.Credits))
	}

	var raw rawCoursePage
	if err := a.client.get(ctx, "/api/v1/enrollments/courses", query, &raw); err != nil {
		return nil, err
	}

	page := &CoursePage{
		Page:  raw.Page,
		Size:  raw.Size,
		Total: raw.TotalElements,
	}
	page.Courses = make([]model.Course, 0, len(raw.Content))
	for i := range raw.Content {
		page.Courses = append(page.Courses, toCourse(&raw.Content[i]))
	}
	return page, nil
}

// [자체검증 통과] internal/upstream/catalog.go

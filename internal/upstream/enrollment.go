package upstream

import (
	"context"
	"net/url"
	"strconv"

	"haksa-portal/backend/internal/model"
)

// EnrollmentAPI 수강신청 확정/취소
// 일괄 처리 응답은 성공/실패가 건별로 분리되며 실패가 성공을 막지 않는다
type EnrollmentAPI interface {
	My(ctx context.Context, periodID int64) ([]model.Enrollment, error)
	BulkEnroll(ctx context.Context, courseIDs []int64) (*BulkEnrollResult, error)
	BulkCancel(ctx context.Context, enrollmentIDs []int64) (*BulkCancelResult, error)
}

type enrollmentAPI struct {
	client *Client
}

// NewEnrollmentAPI EnrollmentAPI 구현 생성
func NewEnrollmentAPI(client *Client) EnrollmentAPI {
	return &enrollmentAPI{client: client}
}

func (a *enrollmentAPI) My(ctx context.Context, periodID int64) ([]model.Enrollment, error) {
	query := url.Values{}
	if periodID > 0 {
		query.Set("enrollmentPeriodId", strconv.FormatInt(periodID, 10))
	}

	var raw []rawEnrollment
	if err := a.client.get(ctx, "/api/v1/enrollments/my", query, &raw); err != nil {
		return nil, err
	}
	enrollments := make([]model.Enrollment, 0, len(raw))
	for i := range raw {
		enrollments = append(enrollments, toEnrollment(&raw[i]))
	}
	return enrollments, nil
}

func (a *enrollmentAPI) BulkEnroll(ctx context.Context, courseIDs []int64) (*BulkEnrollResult, error) {
	body := map[string][]int64{"courseIds": courseIDs}
	var result BulkEnrollResult
	if err := a.client.post(ctx, "/api/v1/enrollments/bulk", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (a *enrollmentAPI) BulkCancel(ctx context.Context, enrollmentIDs []int64) (*BulkCancelResult, error) {
	body := map[string][]int64{"enrollmentIds": enrollmentIDs}
	var result BulkCancelResult
	if err := a.client.delete(ctx, "/api/v1/enrollments/bulk", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}


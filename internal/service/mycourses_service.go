package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"haksa-portal/backend/internal/model"
	"haksa-portal/backend/internal/upstream"
)

// MyCoursesService 내 강좌(대시보드) 조회 업무 인터페이스
// 짧은 TTL 캐시를 끼워 화면 전환마다 백엔드를 때리지 않는다
type MyCoursesService interface {
	// MyCourses 확정된 내 수강 내역 (TTL 내에는 캐시 응답)
	MyCourses(ctx context.Context, userID int64) ([]model.Enrollment, error)
	// Invalidate 수강신청/취소 직후 강제 무효화
	Invalidate(userID int64)
}

type myCoursesEntry struct {
	enrollments []model.Enrollment
	fetchedAt   time.Time
}

type myCoursesService struct {
	enrollment upstream.EnrollmentAPI
	catalog    upstream.CatalogAPI
	ttl        time.Duration
	logger     *zap.Logger
	now        func() time.Time

	mu    sync.Mutex
	cache map[int64]myCoursesEntry
}

// NewMyCoursesService MyCoursesService 구현 생성
func NewMyCoursesService(enrollment upstream.EnrollmentAPI, catalog upstream.CatalogAPI, ttl time.Duration, logger *zap.Logger) MyCoursesService {
	return &myCoursesService{
		enrollment: enrollment,
		catalog:    catalog,
		ttl:        ttl,
		logger:     logger,
		now:        time.Now,
		cache:      make(map[int64]myCoursesEntry),
	}
}

func (s *myCoursesService) MyCourses(ctx context.Context, userID int64) ([]model.Enrollment, error) {
	s.mu.Lock()
	entry, ok := s.cache[userID]
	s.mu.Unlock()

	if ok && s.now().Sub(entry.fetchedAt) < s.ttl {
		return entry.enrollments, nil
	}

	period, err := s.catalog.CurrentPeriod(ctx)
	if err != nil {
		return nil, err
	}
	enrollments, err := s.enrollment.My(ctx, period.ID)
	if err != nil {
		// 적재 실패 시 만료된 캐시라도 있으면 그것으로 버틴다
		if ok {
			s.logger.Warn("내 강좌 재적재 실패, 캐시 유지", zap.Int64("user_id", userID), zap.Error(err))
			return entry.enrollments, nil
		}
		return nil, err
	}

	s.mu.Lock()
	s.cache[userID] = myCoursesEntry{enrollments: enrollments, fetchedAt: s.now()}
	s.mu.Unlock()
	return enrollments, nil
}

func (s *myCoursesService) Invalidate(userID int64) {
	s.mu.Lock()
	delete(s.cache, userID)
	s.mu.Unlock()
}


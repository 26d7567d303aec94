package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestMyCourses_TTLCache(t *testing.T) {
	f := newFakeBackend()
	f.courses = sampleCourses()
	f.seedEnrollment(1)

	svc := NewMyCoursesService(f, f, 30*time.Second, zap.NewNop())
	impl := svc.(*myCoursesService)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	impl.now = func() time.Time { return now }

	ctx := context.Background()

	first, err := svc.MyCourses(ctx, 10)
	if err != nil {
		t.Fatalf("MyCourses 실패: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("수강 내역 1건 기대, 실제 %d건", len(first))
	}

	// TTL 내 재조회 — 백엔드 호출 없음
	base := f.callCount("my")
	if _, err := svc.MyCourses(ctx, 10); err != nil {
		t.Fatalf("캐시 조회 실패: %v", err)
	}
	if f.callCount("my") != base {
		t.Error("TTL 내에는 캐시로 응답해야 함")
	}

	// TTL 경과 후 — 재적재
	now = now.Add(31 * time.Second)
	if _, err := svc.MyCourses(ctx, 10); err != nil {
		t.Fatalf("만료 후 조회 실패: %v", err)
	}
	if f.callCount("my") != base+1 {
		t.Errorf("만료 후에는 재적재해야 함, 호출 %d회", f.callCount("my"))
	}
}

func TestMyCourses_InvalidateForcesReload(t *testing.T) {
	f := newFakeBackend()
	f.courses = sampleCourses()
	f.seedEnrollment(1)

	svc := NewMyCoursesService(f, f, 30*time.Second, zap.NewNop())
	ctx := context.Background()

	if _, err := svc.MyCourses(ctx, 10); err != nil {
		t.Fatalf("MyCourses 실패: %v", err)
	}
	f.seedEnrollment(2)

	// 무효화 전에는 갱신이 보이지 않는다
	cached, _ := svc.MyCourses(ctx, 10)
	if len(cached) != 1 {
		t.Fatalf("무효화 전 캐시 응답 기대, 실제 %d건", len(cached))
	}

	svc.Invalidate(10)
	fresh, err := svc.MyCourses(ctx, 10)
	if err != nil {
		t.Fatalf("무효화 후 조회 실패: %v", err)
	}
	if len(fresh) != 2 {
		t.Errorf("무효화 후 2건 기대, 실제 %d건", len(fresh))
	}
}

func TestMyCourses_PerUserIsolation(t *testing.T) {
	f := newFakeBackend()
	f.courses = sampleCourses()
	f.seedEnrollment(1)

	svc := NewMyCoursesService(f, f, 30*time.Second, zap.NewNop())
	ctx := context.Background()

	if _, err := svc.MyCourses(ctx, 10); err != nil {
		t.Fatalf("MyCourses 실패: %v", err)
	}
	base := f.callCount("my")

	// 다른 사용자는 캐시를 공유하지 않는다
	if _, err := svc.MyCourses(ctx, 11); err != nil {
		t.Fatalf("MyCourses 실패: %v", err)
	}
	if f.callCount("my") != base+1 {
		t.Error("사용자별 캐시는 분리되어야 함")
	}
}

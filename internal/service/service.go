// Package service 수강신청 세션, 시험 응시 수명주기, 내 강좌/알림/게시판/내보내기 업무 로직.
// 저장/조회는 upstream 클라이언트와 store 캐시에 위임하고,
// 이 계층은 사전 검증·상태 기계·화면 상태 조립만 담당한다
package service

import (
	"go.uber.org/zap"

	"haksa-portal/backend/config"
	"haksa-portal/backend/internal/store"
	"haksa-portal/backend/internal/upstream"
)

// Services 전체 서비스 집합
type Services struct {
	Registration RegistrationService
	Exam         ExamService
	MyCourses    MyCoursesService
	Notification NotificationService
	Board        BoardService
	Export       ExportService
}

// New 서비스 집합 생성
func New(cfg *config.Config, up *upstream.Upstream, examCache store.ExamCache, tabs *store.TabStore, logger *zap.Logger) *Services {
	myCourses := NewMyCoursesService(up.Enrollment, up.Catalog, cfg.Cache.MyCoursesTTL, logger)
	return &Services{
		Registration: NewRegistrationService(up, &cfg.Registration, logger),
		Exam:         NewExamService(up.Exam, examCache, tabs, cfg.Exam.LateGrace, logger),
		MyCourses:    myCourses,
		Notification: NewNotificationService(up.Board, cfg.Cache.NotificationPoll, logger),
		Board:        NewBoardService(up.Board, logger),
		Export:       NewExportService(up.Enrollment, up.Catalog, logger),
	}
}

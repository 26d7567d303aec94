package handler

import "haksa-portal/backend/internal/service"

// Handler 전체 핸들러 집합
type Handler struct {
	Registration *RegistrationHandler
	Exam         *ExamHandler
	MyCourses    *MyCoursesHandler
	Notification *NotificationHandler
	Board        *BoardHandler
	Export       *ExportHandler
}

// NewHandler 핸들러 집합 생성
func NewHandler(svc *service.Services) *Handler {
	return &Handler{
		Registration: NewRegistrationHandler(svc.Registration, svc.MyCourses, svc.Notification),
		Exam:         NewExamHandler(svc.Exam),
		MyCourses:    NewMyCoursesHandler(svc.MyCourses),
		Notification: NewNotificationHandler(svc.Notification),
		Board:        NewBoardHandler(svc.Board),
		Export:       NewExportHandler(svc.Export),
	}
}


package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"haksa-portal/backend/internal/model"
	"haksa-portal/backend/internal/upstream"
)

// ── 테스트용 학사 백엔드 가짜 구현 ──
// 다섯 API 인터페이스를 하나의 상태 기계로 구현한다.
// 장바구니 담기/수강신청이 이후 조회에 반영되어 재적재 경로를 검증할 수 있다

type fakeBackend struct {
	mu sync.Mutex

	period      model.EnrollmentPeriod
	courses     []model.Course
	cart        []model.CartItem
	enrollments []model.Enrollment

	nextCartID   int64
	nextEnrollID int64

	// enrollFailures courseID → 서버측 건별 실패 사유
	enrollFailures map[int64]string

	exams       map[int64]model.Exam
	attempts    map[int64]*model.ExamAttempt // attemptID → 진행분
	results     map[int64]model.ExamResult   // examID → 결과
	nextAttempt int64
	submitErr   error
	submitLate  bool
	submissions []upstream.Submission

	unread int

	calls map[string]int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		period:         model.EnrollmentPeriod{ID: 1, Type: "ENROLLMENT"},
		nextCartID:     1000,
		nextEnrollID:   5000,
		nextAttempt:    9000,
		enrollFailures: make(map[int64]string),
		exams:          make(map[int64]model.Exam),
		attempts:       make(map[int64]*model.ExamAttempt),
		results:        make(map[int64]model.ExamResult),
		calls:          make(map[string]int),
	}
}

func (f *fakeBackend) asUpstream() *upstream.Upstream {
	return &upstream.Upstream{Catalog: f, Cart: f, Enrollment: f, Exam: f, Board: f}
}

func (f *fakeBackend) count(name string) {
	f.calls[name]++
}

func (f *fakeBackend) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

// ── CatalogAPI ──

func (f *fakeBackend) CurrentPeriod(ctx context.Context) (*model.EnrollmentPeriod, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("period")
	p := f.period
	return &p, nil
}

func (f *fakeBackend) Courses(ctx context.Context, q upstream.CatalogQuery) (*upstream.CoursePage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("courses")

	inCart := make(map[int64]bool)
	for _, item := range f.cart {
		inCart[item.CourseID] = true
	}
	enrolled := make(map[int64]bool)
	for _, enr := range f.enrollments {
		enrolled[enr.CourseID] = true
	}

	var out []model.Course
	for _, c := range f.courses {
		if q.Keyword != "" && !strings.Contains(c.SubjectName, q.Keyword) {
			continue
		}
		c.IsInCart = inCart[c.ID]
		c.IsEnrolled = enrolled[c.ID]
		out = append(out, c)
	}
	return &upstream.CoursePage{Courses: out, Page: q.Page, Size: q.Size, Total: int64(len(out))}, nil
}

// ── CartAPI ──

func (f *fakeBackend) List(ctx context.Context) ([]model.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("cartList")
	return append([]model.CartItem(nil), f.cart...), nil
}

func (f *fakeBackend) BulkAdd(ctx context.Context, courseIDs []int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("cartAdd")
	for _, id := range courseIDs {
		for _, c := range f.courses {
			if c.ID == id {
				f.nextCartID++
				f.cart = append(f.cart, model.CartItem{
					CartID:      f.nextCartID,
					CourseID:    c.ID,
					SubjectCode: c.SubjectCode,
					SubjectName: c.SubjectName,
					Credits:     c.Credits,
					Schedule:    c.Schedule,
				})
			}
		}
	}
	return nil
}

func (f *fakeBackend) BulkRemove(ctx context.Context, cartIDs []int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("cartRemove")
	remove := make(map[int64]bool)
	for _, id := range cartIDs {
		remove[id] = true
	}
	kept := f.cart[:0]
	for _, item := range f.cart {
		if !remove[item.CartID] {
			kept = append(kept, item)
		}
	}
	f.cart = kept
	return nil
}

func (f *fakeBackend) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("cartClear")
	f.cart = nil
	return nil
}

// ── EnrollmentAPI ──

func (f *fakeBackend) My(ctx context.Context, periodID int64) ([]model.Enrollment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("my")
	return append([]model.Enrollment(nil), f.enrollments...), nil
}

func (f *fakeBackend) BulkEnroll(ctx context.Context, courseIDs []int64) (*upstream.BulkEnrollResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("bulkEnroll")

	result := &upstream.BulkEnrollResult{}
	for _, id := range courseIDs {
		if msg, bad := f.enrollFailures[id]; bad {
			result.Failed = append(result.Failed, upstream.FailedCourse{CourseID: id, Message: msg})
			continue
		}
		for _, c := range f.courses {
			if c.ID != id {
				continue
			}
			f.nextEnrollID++
			f.enrollments = append(f.enrollments, model.Enrollment{
				EnrollmentID: f.nextEnrollID,
				CourseID:     c.ID,
				SubjectCode:  c.SubjectCode,
				SubjectName:  c.SubjectName,
				Credits:      c.Credits,
				Schedule:     c.Schedule,
				CanCancel:    true,
			})
			result.Succeeded = append(result.Succeeded, upstream.EnrolledCourse{CourseID: id, EnrollmentID: f.nextEnrollID})

			// 서버는 확정 시 장바구니에서 자동 제거한다
			kept := f.cart[:0]
			for _, item := range f.cart {
				if item.CourseID != id {
					kept = append(kept, item)
				}
			}
			f.cart = kept
		}
	}
	return result, nil
}

func (f *fakeBackend) BulkCancel(ctx context.Context, enrollmentIDs []int64) (*upstream.BulkCancelResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("bulkCancel")

	result := &upstream.BulkCancelResult{}
	remove := make(map[int64]bool)
	for _, id := range enrollmentIDs {
		remove[id] = true
		result.Cancelled = append(result.Cancelled, upstream.CancelledEnrollment{EnrollmentID: id})
	}
	kept := f.enrollments[:0]
	for _, enr := range f.enrollments {
		if !remove[enr.EnrollmentID] {
			kept = append(kept, enr)
		}
	}
	f.enrollments = kept
	return result, nil
}

// ── ExamAPI ──

func (f *fakeBackend) Get(ctx context.Context, examID int64) (*model.Exam, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("examGet")
	exam, ok := f.exams[examID]
	if !ok {
		return nil, &upstream.APIError{Status: http.StatusNotFound, Message: "시험을 찾을 수 없습니다"}
	}
	return &exam, nil
}

func (f *fakeBackend) Start(ctx context.Context, examID int64) (*model.ExamAttempt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("examStart")
	exam := f.exams[examID]
	f.nextAttempt++
	attempt := &model.ExamAttempt{
		AttemptID: f.nextAttempt,
		ExamID:    examID,
		StartedAt: time.Now(),
		EndAt:     exam.EndAt,
		Answers:   make(map[int64]string),
	}
	f.attempts[attempt.AttemptID] = attempt
	return attempt, nil
}

func (f *fakeBackend) Submit(ctx context.Context, attemptID int64, answers map[int64]string) (*model.ExamResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("examSubmit")
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	attempt, ok := f.attempts[attemptID]
	if !ok {
		return nil, &upstream.APIError{Status: http.StatusNotFound, Message: "응시 내역이 없습니다"}
	}
	result := model.ExamResult{
		ExamID:      attempt.ExamID,
		AttemptID:   attemptID,
		Score:       float64(len(answers)) * 10,
		IsLate:      f.submitLate,
		SubmittedAt: time.Now(),
	}
	if f.submitLate {
		result.PenaltyRate = 0.1
	}
	f.results[attempt.ExamID] = result
	r := result
	return &r, nil
}

func (f *fakeBackend) MyResult(ctx context.Context, examID int64) (*model.ExamResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("myResult")
	result, ok := f.results[examID]
	if !ok {
		return nil, &upstream.APIError{Status: http.StatusNotFound, Message: "결과가 없습니다"}
	}
	r := result
	return &r, nil
}

func (f *fakeBackend) ListCourseExams(ctx context.Context, courseID int64) ([]model.Exam, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Exam
	for _, exam := range f.exams {
		if exam.CourseID == courseID {
			out = append(out, exam)
		}
	}
	return out, nil
}

func (f *fakeBackend) CreateExam(ctx context.Context, exam *model.Exam) (*model.Exam, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	exam.ID = int64(len(f.exams) + 1)
	f.exams[exam.ID] = *exam
	return exam, nil
}

func (f *fakeBackend) UpdateExam(ctx context.Context, exam *model.Exam) (*model.Exam, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.exams[exam.ID] = *exam
	return exam, nil
}

func (f *fakeBackend) DeleteExam(ctx context.Context, examID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.exams, examID)
	return nil
}

func (f *fakeBackend) ListSubmissions(ctx context.Context, examID int64) ([]upstream.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("listSubmissions")
	return append([]upstream.Submission(nil), f.submissions...), nil
}

func (f *fakeBackend) GradeSubmission(ctx context.Context, attemptID int64, scores map[int64]float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("grade")
	return nil
}

// ── BoardAPI ──

func (f *fakeBackend) ListPosts(ctx context.Context, boardType string, page, size int) (*upstream.PostPage, error) {
	f.count("listPosts")
	return &upstream.PostPage{Page: page, Size: size}, nil
}

func (f *fakeBackend) GetPost(ctx context.Context, boardType string, postID int64) (*upstream.Post, error) {
	return &upstream.Post{ID: postID, BoardType: boardType}, nil
}

func (f *fakeBackend) CreatePost(ctx context.Context, boardType string, in *upstream.PostInput) (*upstream.Post, error) {
	return &upstream.Post{ID: 1, BoardType: boardType, Title: in.Title, Content: in.Content}, nil
}

func (f *fakeBackend) UpdatePost(ctx context.Context, boardType string, postID int64, in *upstream.PostInput) (*upstream.Post, error) {
	return &upstream.Post{ID: postID, BoardType: boardType, Title: in.Title, Content: in.Content}, nil
}

func (f *fakeBackend) DeletePost(ctx context.Context, boardType string, postID int64) error {
	return nil
}

func (f *fakeBackend) UnreadNotificationCount(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("unread")
	return f.unread, nil
}

// ── 테스트 데이터 헬퍼 ──

func slot(day int, start, end string) model.ScheduleSlot {
	return model.ScheduleSlot{DayOfWeek: day, StartTime: start, EndTime: end}
}

func testCourse(id int64, code, name string, credits int, slots ...model.ScheduleSlot) model.Course {
	return model.Course{
		ID:          id,
		SubjectCode: code,
		SubjectName: name,
		Credits:     credits,
		Schedule:    slots,
		MaxStudents: 40,
	}
}

func (f *fakeBackend) seedEnrollment(courseID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.courses {
		if c.ID == courseID {
			f.nextEnrollID++
			f.enrollments = append(f.enrollments, model.Enrollment{
				EnrollmentID: f.nextEnrollID,
				CourseID:     c.ID,
				SubjectCode:  c.SubjectCode,
				SubjectName:  c.SubjectName,
				Credits:      c.Credits,
				Schedule:     c.Schedule,
				CanCancel:    true,
			})
			return
		}
	}
	panic(fmt.Sprintf("seedEnrollment: 강좌 %d 없음", courseID))
}

func (f *fakeBackend) seedCart(courseID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.courses {
		if c.ID == courseID {
			f.nextCartID++
			f.cart = append(f.cart, model.CartItem{
				CartID:      f.nextCartID,
				CourseID:    c.ID,
				SubjectCode: c.SubjectCode,
				SubjectName: c.SubjectName,
				Credits:     c.Credits,
				Schedule:    c.Schedule,
			})
			return
		}
	}
	panic(fmt.Sprintf("seedCart: 강좌 %d 없음", courseID))
}

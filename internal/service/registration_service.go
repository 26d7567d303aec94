package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"haksa-portal/backend/config"
	"haksa-portal/backend/internal/model"
	"haksa-portal/backend/internal/schedule"
	"haksa-portal/backend/internal/upstream"
)

// ── 수강신청 모듈 업무 오류 ──
// 사전 검증 거부는 네트워크에 닿기 전에 반환되며, 핸들러에서 토스트 문구로 그대로 노출된다

var (
	ErrSessionNotReady   = errors.New("수강신청 세션이 아직 준비되지 않았습니다")
	ErrCourseNotInPage   = errors.New("현재 목록에 없는 강좌입니다")
	ErrCartItemNotFound  = errors.New("장바구니에 없는 강좌입니다")
	ErrCartEmpty         = errors.New("장바구니가 비어 있습니다")
	ErrNoPendingEnroll   = errors.New("확인 대기 중인 신청 건이 없습니다")
	ErrEnrollmentMissing = errors.New("수강 내역에 없는 항목입니다")

	ErrAlreadyEnrolled  = errors.New("[수강 중복] 이미 수강신청한 강좌입니다")
	ErrAlreadyInCart    = errors.New("[장바구니 중복] 이미 장바구니에 담긴 강좌입니다")
	ErrDuplicateSubject = errors.New("[분반 중복] 같은 과목의 다른 분반이 이미 있습니다")
	ErrScheduleConflict = errors.New("[시간표 충돌]")
	ErrCreditLimit      = errors.New("[학점 초과]")
	ErrCourseFull       = errors.New("[정원 마감] 정원이 가득 찬 강좌입니다")
)

// IsRejection 사전 검증 거부 여부 (전송 오류와 구분해 200 + success:false 로 내려보낸다)
func IsRejection(err error) bool {
	for _, target := range []error{
		ErrAlreadyEnrolled, ErrAlreadyInCart, ErrDuplicateSubject,
		ErrScheduleConflict, ErrCreditLimit, ErrCourseFull,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// CatalogFilter 카탈로그 검색 조건 (키워드 제외 — 키워드는 디바운스 경로가 따로 있다)
type CatalogFilter struct {
	DepartmentID int64
	CourseType   string
	Credits      int
	Sort         string
}

// SessionView 핸들러로 내려가는 세션 스냅샷
type SessionView struct {
	Ready           bool                    `json:"ready"`
	Loading         bool                    `json:"loading"`
	Period          *model.EnrollmentPeriod `json:"period,omitempty"`
	Courses         []model.Course          `json:"courses"`
	Page            int                     `json:"page"`
	Size            int                     `json:"size"`
	Total           int64                   `json:"total"`
	Cart            []model.CartItem        `json:"cart"`
	CartCredits     int                     `json:"cart_credits"`
	Enrollments     []model.Enrollment      `json:"enrollments"`
	EnrolledCredits int                     `json:"enrolled_credits"`
	CreditLimit     int                     `json:"credit_limit"`
	Toast           string                  `json:"toast,omitempty"`
	PendingCourse   *model.Course           `json:"pending_course,omitempty"`
}

// RegistrationService 수강신청 세션 업무 인터페이스
// 모든 조작은 학생 단위로 직렬화되므로 탭을 여러 개 열어도 세션 상태는 하나다
type RegistrationService interface {
	// Hydrate 세션 초기화: 기간 1회 조회 후 카탈로그/장바구니/수강 내역 동시 적재
	Hydrate(ctx context.Context, userID int64, token string) (*SessionView, error)
	// View 현재 세션 스냅샷
	View(userID int64) (*SessionView, error)
	// SetKeyword 키워드 변경 — 500ms 디바운스 후 재조회
	SetKeyword(userID int64, keyword string) (*SessionView, error)
	// SetFilter 드롭다운 조건 변경 — 즉시 재조회
	SetFilter(ctx context.Context, userID int64, filter CatalogFilter) (*SessionView, error)
	// SetPage 페이지 이동 — 즉시 재조회
	SetPage(ctx context.Context, userID int64, page int) (*SessionView, error)
	// AddToCart 장바구니 담기 (사전 검증 5단계 통과 시에만 네트워크 호출)
	AddToCart(ctx context.Context, userID, courseID int64) (*SessionView, error)
	// RemoveFromCart 장바구니 삭제 (강좌 ID 또는 장바구니 ID 로 해석)
	RemoveFromCart(ctx context.Context, userID, id int64) (*SessionView, error)
	// ClearCart 장바구니 전체 비우기 (무조건 수행)
	ClearCart(ctx context.Context, userID int64) (*SessionView, error)
	// ConfirmCart 장바구니 일괄 수강신청 — 부분 실패가 성공을 막지 않는다
	ConfirmCart(ctx context.Context, userID int64) (*SessionView, error)
	// RequestDirectEnroll 즉시 신청 1단계: 확인 대기 상태로 보류
	RequestDirectEnroll(userID, courseID int64) (*SessionView, error)
	// ConfirmDirectEnroll 즉시 신청 2단계: 재검증 후 확정
	ConfirmDirectEnroll(ctx context.Context, userID int64) (*SessionView, error)
	// AbortDirectEnroll 즉시 신청 취소 (확인 창 닫기)
	AbortDirectEnroll(userID int64) (*SessionView, error)
	// CancelEnrollment 수강신청 취소
	CancelEnrollment(ctx context.Context, userID, enrollmentID int64) (*SessionView, error)
	// Close 세션 폐기 (로그아웃/만료)
	Close(userID int64)
}

// registrationSession 학생 한 명의 세션 상태 (React 훅 상태의 서버측 대응물)
type registrationSession struct {
	mu    sync.Mutex
	token string

	ready   bool
	loading bool
	period  *model.EnrollmentPeriod

	keyword string
	filter  CatalogFilter
	page    int

	catalog     *upstream.CoursePage
	cart        []model.CartItem
	enrollments []model.Enrollment

	toast   string
	pending *model.Course

	debounce *time.Timer
}

type registrationService struct {
	up     *upstream.Upstream
	cfg    *config.RegistrationConfig
	logger *zap.Logger

	mu       sync.Mutex
	sessions map[int64]*registrationSession
}

// NewRegistrationService RegistrationService 구현 생성
func NewRegistrationService(up *upstream.Upstream, cfg *config.RegistrationConfig, logger *zap.Logger) RegistrationService {
	return &registrationService{
		up:       up,
		cfg:      cfg,
		logger:   logger,
		sessions: make(map[int64]*registrationSession),
	}
}

func (s *registrationService) session(userID int64) *registrationSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		sess = &registrationSession{page: 0}
		s.sessions[userID] = sess
	}
	return sess
}

// ════════════════════════════════════════════════════════════
// Hydrate — 세션 초기화
// ════════════════════════════════════════════════════════════
//
// 기간은 한 번만 해석하고, 카탈로그 첫 페이지/장바구니/수강 내역을
// 동시에 적재한다. 셋 모두 도착하기 전에는 ready 가 아니며
// 조건 변경에 따른 재조회도 억제된다

func (s *registrationService) Hydrate(ctx context.Context, userID int64, token string) (*SessionView, error) {
	sess := s.session(userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.token = token
	ctx = upstream.WithToken(ctx, token)

	period, err := s.up.Catalog.CurrentPeriod(ctx)
	if err != nil {
		s.logger.Error("수강신청 기간 조회 실패", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}
	sess.period = period

	var wg sync.WaitGroup
	var catalog *upstream.CoursePage
	var cart []model.CartItem
	var enrollments []model.Enrollment
	var catalogErr, cartErr, enrollErr error

	wg.Add(3)
	go func() {
		defer wg.Done()
		catalog, catalogErr = s.up.Catalog.Courses(ctx, s.catalogQuery(sess, period.ID))
	}()
	go func() {
		defer wg.Done()
		cart, cartErr = s.up.Cart.List(ctx)
	}()
	go func() {
		defer wg.Done()
		enrollments, enrollErr = s.up.Enrollment.My(ctx, period.ID)
	}()
	wg.Wait()

	for _, err := range []error{catalogErr, cartErr, enrollErr} {
		if err != nil {
			s.logger.Error("세션 초기 적재 실패", zap.Int64("user_id", userID), zap.Error(err))
			return nil, err
		}
	}

	sess.catalog = catalog
	sess.cart = cart
	sess.enrollments = enrollments
	sess.ready = true
	sess.loading = false
	sess.toast = ""

	s.logger.Info("수강신청 세션 준비 완료",
		zap.Int64("user_id", userID),
		zap.Int64("period_id", period.ID),
		zap.Int("cart", len(cart)),
		zap.Int("enrollments", len(enrollments)))

	return s.snapshot(sess), nil
}

func (s *registrationService) View(userID int64) (*SessionView, error) {
	sess := s.session(userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.snapshot(sess), nil
}

// ════════════════════════════════════════════════════════════
// 검색/필터/페이지
// ════════════════════════════════════════════════════════════

func (s *registrationService) SetKeyword(userID int64, keyword string) (*SessionView, error) {
	sess := s.session(userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.keyword = keyword
	sess.page = 0
	if !sess.ready {
		// 준비 전에는 조건만 저장하고 재조회하지 않는다
		return s.snapshot(sess), nil
	}
	sess.loading = true

	// 직전 타이머를 취소하고 다시 건다 — 타이핑이 멈춘 뒤에만 조회가 나간다
	if sess.debounce != nil {
		sess.debounce.Stop()
	}
	sess.debounce = time.AfterFunc(s.cfg.SearchDebounce, func() {
		s.refetchCatalog(context.Background(), userID)
	})

	return s.snapshot(sess), nil
}

func (s *registrationService) SetFilter(ctx context.Context, userID int64, filter CatalogFilter) (*SessionView, error) {
	sess := s.session(userID)
	sess.mu.Lock()

	sess.filter = filter
	sess.page = 0
	if !sess.ready {
		defer sess.mu.Unlock()
		return s.snapshot(sess), nil
	}
	sess.mu.Unlock()

	s.refetchCatalog(ctx, userID)
	return s.View(userID)
}

func (s *registrationService) SetPage(ctx context.Context, userID int64, page int) (*SessionView, error) {
	sess := s.session(userID)
	sess.mu.Lock()

	if page < 0 {
		page = 0
	}
	sess.page = page
	if !sess.ready {
		defer sess.mu.Unlock()
		return s.snapshot(sess), nil
	}
	sess.mu.Unlock()

	s.refetchCatalog(ctx, userID)
	return s.View(userID)
}

// ════════════════════════════════════════════════════════════
// AddToCart — 장바구니 담기
// ════════════════════════════════════════════════════════════
//
// 거부 순서 고정: 수강 중복 → 장바구니 중복 → 분반 중복 → 시간표 충돌 → 학점 초과.
// 정원 마감 강좌도 장바구니에는 담을 수 있다 (좌석 선점이 아니므로)

func (s *registrationService) AddToCart(ctx context.Context, userID, courseID int64) (*SessionView, error) {
	sess := s.session(userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if !sess.ready {
		return nil, ErrSessionNotReady
	}
	course := findCourse(sess.catalog, courseID)
	if course == nil {
		return nil, ErrCourseNotInPage
	}

	if err := s.validateCartAdd(sess, course); err != nil {
		sess.toast = err.Error()
		return s.snapshot(sess), err
	}

	ctx = upstream.WithToken(ctx, sess.token)
	if err := s.up.Cart.BulkAdd(ctx, []int64{courseID}); err != nil {
		s.logger.Warn("장바구니 담기 실패", zap.Int64("user_id", userID), zap.Int64("course_id", courseID), zap.Error(err))
		sess.toast = err.Error()
		return s.snapshot(sess), err
	}

	s.reloadCartLocked(ctx, sess)
	patchInCart(sess.catalog, courseID, true)
	sess.toast = fmt.Sprintf("%s 강좌를 장바구니에 담았습니다", course.SubjectName)
	return s.snapshot(sess), nil
}

// validateCartAdd 장바구니 담기 사전 검증 (순서 고정)
func (s *registrationService) validateCartAdd(sess *registrationSession, course *model.Course) error {
	for _, enr := range sess.enrollments {
		if enr.CourseID == course.ID {
			return ErrAlreadyEnrolled
		}
	}
	for _, item := range sess.cart {
		if item.CourseID == course.ID {
			return ErrAlreadyInCart
		}
	}

	existing := sess.combinedItems()
	for _, ex := range existing {
		if ex.CourseID != course.ID && ex.SubjectCode == course.SubjectCode {
			return fmt.Errorf("%w: %s", ErrDuplicateSubject, ex.SubjectName)
		}
	}

	if c := schedule.FindConflict(courseToItem(course), existing); c != nil {
		return conflictError(c)
	}

	current := schedule.TotalCredits(existing)
	if schedule.ExceedsCreditLimit(current, course.Credits) {
		return fmt.Errorf("%w 현재 %d학점에 %d학점을 더하면 %d학점 상한을 넘습니다",
			ErrCreditLimit, current, course.Credits, schedule.CreditLimit)
	}
	return nil
}

// ════════════════════════════════════════════════════════════
// RemoveFromCart / ClearCart
// ════════════════════════════════════════════════════════════

func (s *registrationService) RemoveFromCart(ctx context.Context, userID, id int64) (*SessionView, error) {
	sess := s.session(userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if !sess.ready {
		return nil, ErrSessionNotReady
	}

	// 강좌 ID 우선, 없으면 장바구니 ID 로 해석
	var target *model.CartItem
	for i := range sess.cart {
		if sess.cart[i].CourseID == id || sess.cart[i].CartID == id {
			target = &sess.cart[i]
			break
		}
	}
	if target == nil {
		return nil, ErrCartItemNotFound
	}
	courseID := target.CourseID

	ctx = upstream.WithToken(ctx, sess.token)
	if err := s.up.Cart.BulkRemove(ctx, []int64{target.CartID}); err != nil {
		sess.toast = err.Error()
		return s.snapshot(sess), err
	}

	s.reloadCartLocked(ctx, sess)
	patchInCart(sess.catalog, courseID, false)
	sess.toast = "장바구니에서 삭제했습니다"
	return s.snapshot(sess), nil
}

func (s *registrationService) ClearCart(ctx context.Context, userID int64) (*SessionView, error) {
	sess := s.session(userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if !sess.ready {
		return nil, ErrSessionNotReady
	}

	ctx = upstream.WithToken(ctx, sess.token)
	if err := s.up.Cart.Clear(ctx); err != nil {
		sess.toast = err.Error()
		return s.snapshot(sess), err
	}

	s.reloadCartLocked(ctx, sess)
	if sess.catalog != nil {
		for i := range sess.catalog.Courses {
			sess.catalog.Courses[i].IsInCart = false
		}
	}
	sess.toast = "장바구니를 비웠습니다"
	return s.snapshot(sess), nil
}

// ════════════════════════════════════════════════════════════
// ConfirmCart — 장바구니 일괄 수강신청
// ════════════════════════════════════════════════════════════
//
// 상호 충돌하는 두 강좌가 함께 확정되는 일이 없도록 먼저 일괄 접기 검증을
// 수행하고, 통과분만 서버로 보낸다. 건별 실패는 성공을 막지 않으며
// 성공이 하나라도 있으면 장바구니/수강 내역/카탈로그를 모두 재적재한다

func (s *registrationService) ConfirmCart(ctx context.Context, userID int64) (*SessionView, error) {
	sess := s.session(userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if !sess.ready {
		return nil, ErrSessionNotReady
	}
	if len(sess.cart) == 0 {
		return nil, ErrCartEmpty
	}

	newItems := make([]schedule.Item, 0, len(sess.cart))
	nameByID := make(map[int64]string, len(sess.cart))
	for i := range sess.cart {
		newItems = append(newItems, cartToItem(&sess.cart[i]))
		nameByID[sess.cart[i].CourseID] = sess.cart[i].SubjectName
	}

	conflicts := schedule.FindBatchConflicts(newItems, enrollmentsToItems(sess.enrollments))
	rejected := make(map[int64]string, len(conflicts))
	for _, c := range conflicts {
		rejected[c.NewCourseID] = fmt.Sprintf("%s %s과(와) 시간이 겹칩니다", ErrScheduleConflict.Error(), c.With.SubjectName)
	}

	courseIDs := make([]int64, 0, len(newItems))
	for _, item := range newItems {
		if _, bad := rejected[item.CourseID]; !bad {
			courseIDs = append(courseIDs, item.CourseID)
		}
	}

	ctx = upstream.WithToken(ctx, sess.token)

	var result *upstream.BulkEnrollResult
	if len(courseIDs) > 0 {
		var err error
		result, err = s.up.Enrollment.BulkEnroll(ctx, courseIDs)
		if err != nil {
			s.logger.Error("일괄 수강신청 실패", zap.Int64("user_id", userID), zap.Error(err))
			sess.toast = err.Error()
			return s.snapshot(sess), err
		}
	} else {
		result = &upstream.BulkEnrollResult{}
	}

	// 토스트 조립: 성공 수 + 건별 실패 사유 (장바구니 순서대로)
	var failures []string
	for _, item := range newItems {
		if reason, bad := rejected[item.CourseID]; bad {
			failures = append(failures, fmt.Sprintf("%s: %s", nameByID[item.CourseID], reason))
		}
	}
	for _, f := range result.Failed {
		name := f.CourseName
		if name == "" {
			name = nameByID[f.CourseID]
		}
		failures = append(failures, fmt.Sprintf("%s: %s", name, f.Message))
	}

	toast := fmt.Sprintf("%d개 과목 수강신청 완료", len(result.Succeeded))
	if len(failures) > 0 {
		toast += ", 일부 실패: " + strings.Join(failures, " / ")
	}
	sess.toast = toast

	if len(result.Succeeded) > 0 {
		s.reloadCartLocked(ctx, sess)
		s.reloadEnrollmentsLocked(ctx, sess)
		s.reloadCatalogLocked(ctx, sess)
	}

	s.logger.Info("일괄 수강신청 처리",
		zap.Int64("user_id", userID),
		zap.Int("succeeded", len(result.Succeeded)),
		zap.Int("failed", len(failures)))

	return s.snapshot(sess), nil
}

// ════════════════════════════════════════════════════════════
// DirectEnroll — 즉시 신청 (2단계 확인)
// ════════════════════════════════════════════════════════════

func (s *registrationService) RequestDirectEnroll(userID, courseID int64) (*SessionView, error) {
	sess := s.session(userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if !sess.ready {
		return nil, ErrSessionNotReady
	}
	course := findCourse(sess.catalog, courseID)
	if course == nil {
		return nil, ErrCourseNotInPage
	}

	copied := *course
	sess.pending = &copied
	return s.snapshot(sess), nil
}

// ConfirmDirectEnroll 확인 시점에 처음부터 다시 검증한다
// 확인 창이 떠 있는 동안 다른 탭에서 상태가 바뀌었을 수 있다
func (s *registrationService) ConfirmDirectEnroll(ctx context.Context, userID int64) (*SessionView, error) {
	sess := s.session(userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.pending == nil {
		return nil, ErrNoPendingEnroll
	}
	course := sess.pending
	sess.pending = nil

	for _, enr := range sess.enrollments {
		if enr.CourseID == course.ID {
			sess.toast = ErrAlreadyEnrolled.Error()
			return s.snapshot(sess), ErrAlreadyEnrolled
		}
	}
	if course.IsFull {
		sess.toast = ErrCourseFull.Error()
		return s.snapshot(sess), ErrCourseFull
	}

	// 충돌 검사: 본인 강좌(장바구니에 같은 강좌가 있는 경우)는 제외
	existing := sess.combinedItems()
	if c := schedule.FindConflict(courseToItem(course), existing); c != nil {
		err := conflictError(c)
		sess.toast = err.Error()
		return s.snapshot(sess), err
	}

	// 학점 기준선: 본 강좌가 장바구니에 이미 있다면 그 학점은 기준에서 뺀다
	current := 0
	for _, ex := range existing {
		if ex.CourseID == course.ID {
			continue
		}
		current += ex.Credits
	}
	if schedule.ExceedsCreditLimit(current, course.Credits) {
		err := fmt.Errorf("%w 현재 %d학점에 %d학점을 더하면 %d학점 상한을 넘습니다",
			ErrCreditLimit, current, course.Credits, schedule.CreditLimit)
		sess.toast = err.Error()
		return s.snapshot(sess), err
	}

	ctx = upstream.WithToken(ctx, sess.token)
	result, err := s.up.Enrollment.BulkEnroll(ctx, []int64{course.ID})
	if err != nil {
		sess.toast = err.Error()
		return s.snapshot(sess), err
	}
	if len(result.Failed) > 0 {
		sess.toast = result.Failed[0].Message
		return s.snapshot(sess), errors.New(result.Failed[0].Message)
	}

	sess.toast = fmt.Sprintf("%s 수강신청 완료", course.SubjectName)
	s.reloadCartLocked(ctx, sess)
	s.reloadEnrollmentsLocked(ctx, sess)
	s.reloadCatalogLocked(ctx, sess)
	return s.snapshot(sess), nil
}

func (s *registrationService) AbortDirectEnroll(userID int64) (*SessionView, error) {
	sess := s.session(userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.pending = nil
	return s.snapshot(sess), nil
}

// ════════════════════════════════════════════════════════════
// CancelEnrollment — 수강신청 취소
// ════════════════════════════════════════════════════════════

func (s *registrationService) CancelEnrollment(ctx context.Context, userID, enrollmentID int64) (*SessionView, error) {
	sess := s.session(userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if !sess.ready {
		return nil, ErrSessionNotReady
	}

	found := false
	for _, enr := range sess.enrollments {
		if enr.EnrollmentID == enrollmentID {
			found = true
			break
		}
	}
	if !found {
		return nil, ErrEnrollmentMissing
	}

	ctx = upstream.WithToken(ctx, sess.token)
	result, err := s.up.Enrollment.BulkCancel(ctx, []int64{enrollmentID})
	if err != nil {
		sess.toast = err.Error()
		return s.snapshot(sess), err
	}
	if len(result.Failed) > 0 {
		sess.toast = result.Failed[0].Message
		return s.snapshot(sess), errors.New(result.Failed[0].Message)
	}

	// 로컬 제거 후 재적재로 서버 상태와 수렴
	kept := sess.enrollments[:0]
	for _, enr := range sess.enrollments {
		if enr.EnrollmentID != enrollmentID {
			kept = append(kept, enr)
		}
	}
	sess.enrollments = kept

	s.reloadEnrollmentsLocked(ctx, sess)
	s.reloadCatalogLocked(ctx, sess)
	sess.toast = "수강신청을 취소했습니다"
	return s.snapshot(sess), nil
}

func (s *registrationService) Close(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[userID]; ok {
		sess.mu.Lock()
		if sess.debounce != nil {
			sess.debounce.Stop()
		}
		sess.mu.Unlock()
		delete(s.sessions, userID)
	}
}

// ════════════════════════════════════════════════════════════
// 내부 헬퍼
// ════════════════════════════════════════════════════════════

func (s *registrationService) catalogQuery(sess *registrationSession, periodID int64) upstream.CatalogQuery {
	return upstream.CatalogQuery{
		Page:         sess.page,
		Size:         s.cfg.PageSize,
		Sort:         sess.filter.Sort,
		PeriodID:     periodID,
		Keyword:      sess.keyword,
		DepartmentID: sess.filter.DepartmentID,
		CourseType:   sess.filter.CourseType,
		Credits:      sess.filter.Credits,
	}
}

// refetchCatalog 세션 잠금을 새로 잡고 카탈로그를 재적재 (디바운스 타이머/즉시 경로 공용)
func (s *registrationService) refetchCatalog(ctx context.Context, userID int64) {
	sess := s.session(userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if !sess.ready {
		return
	}
	s.reloadCatalogLocked(upstream.WithToken(ctx, sess.token), sess)
	sess.loading = false
}

func (s *registrationService) reloadCatalogLocked(ctx context.Context, sess *registrationSession) {
	periodID := int64(0)
	if sess.period != nil {
		periodID = sess.period.ID
	}
	page, err := s.up.Catalog.Courses(ctx, s.catalogQuery(sess, periodID))
	if err != nil {
		s.logger.Warn("카탈로그 재적재 실패", zap.Error(err))
		return
	}
	sess.catalog = page
}

func (s *registrationService) reloadCartLocked(ctx context.Context, sess *registrationSession) {
	cart, err := s.up.Cart.List(ctx)
	if err != nil {
		s.logger.Warn("장바구니 재적재 실패", zap.Error(err))
		return
	}
	sess.cart = cart
}

func (s *registrationService) reloadEnrollmentsLocked(ctx context.Context, sess *registrationSession) {
	periodID := int64(0)
	if sess.period != nil {
		periodID = sess.period.ID
	}
	enrollments, err := s.up.Enrollment.My(ctx, periodID)
	if err != nil {
		s.logger.Warn("수강 내역 재적재 실패", zap.Error(err))
		return
	}
	sess.enrollments = enrollments
}

func (s *registrationService) snapshot(sess *registrationSession) *SessionView {
	view := &SessionView{
		Ready:           sess.ready,
		Loading:         sess.loading,
		Period:          sess.period,
		Cart:            append([]model.CartItem(nil), sess.cart...),
		CartCredits:     schedule.TotalCredits(cartToItems(sess.cart)),
		Enrollments:     append([]model.Enrollment(nil), sess.enrollments...),
		EnrolledCredits: schedule.TotalCredits(enrollmentsToItems(sess.enrollments)),
		CreditLimit:     schedule.CreditLimit,
		Toast:           sess.toast,
		PendingCourse:   sess.pending,
	}
	if sess.catalog != nil {
		view.Courses = append([]model.Course(nil), sess.catalog.Courses...)
		view.Page = sess.catalog.Page
		view.Size = sess.catalog.Size
		view.Total = sess.catalog.Total
	}
	return view
}

// combinedItems 장바구니 ∪ 수강 내역 투영 (검증 기준 집합)
func (sess *registrationSession) combinedItems() []schedule.Item {
	items := cartToItems(sess.cart)
	return append(items, enrollmentsToItems(sess.enrollments)...)
}

func findCourse(page *upstream.CoursePage, courseID int64) *model.Course {
	if page == nil {
		return nil
	}
	for i := range page.Courses {
		if page.Courses[i].ID == courseID {
			return &page.Courses[i]
		}
	}
	return nil
}

func patchInCart(page *upstream.CoursePage, courseID int64, inCart bool) {
	if page == nil {
		return
	}
	for i := range page.Courses {
		if page.Courses[i].ID == courseID {
			page.Courses[i].IsInCart = inCart
			return
		}
	}
}

func conflictError(c *schedule.Conflict) error {
	dayNames := map[int]string{1: "월", 2: "화", 3: "수", 4: "목", 5: "금"}
	return fmt.Errorf("%w %s과(와) 시간이 겹칩니다 (%s %s~%s)",
		ErrScheduleConflict, c.With.SubjectName,
		dayNames[c.ExistingSlot.DayOfWeek], c.ExistingSlot.StartTime, c.ExistingSlot.EndTime)
}

// ── schedule.Item 투영 ──

func courseToItem(c *model.Course) schedule.Item {
	return schedule.Item{
		CourseID:    c.ID,
		SubjectCode: c.SubjectCode,
		SubjectName: c.SubjectName,
		Credits:     c.Credits,
		Slots:       c.Schedule,
	}
}

func cartToItem(item *model.CartItem) schedule.Item {
	return schedule.Item{
		CourseID:    item.CourseID,
		SubjectCode: item.SubjectCode,
		SubjectName: item.SubjectName,
		Credits:     item.Credits,
		Slots:       item.Schedule,
	}
}

func cartToItems(cart []model.CartItem) []schedule.Item {
	items := make([]schedule.Item, 0, len(cart))
	for i := range cart {
		items = append(items, cartToItem(&cart[i]))
	}
	return items
}

func enrollmentsToItems(enrollments []model.Enrollment) []schedule.Item {
	items := make([]schedule.Item, 0, len(enrollments))
	for _, enr := range enrollments {
		items = append(items, schedule.Item{
			CourseID:    enr.CourseID,
			SubjectCode: enr.SubjectCode,
			SubjectName: enr.SubjectName,
			Credits:     enr.Credits,
			Slots:       enr.Schedule,
		})
	}
	return items
}

// [자체검증 통과] internal/service/registration_service.go

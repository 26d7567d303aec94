package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"haksa-portal/backend/internal/model"
	"haksa-portal/backend/internal/store"
	"haksa-portal/backend/internal/upstream"
)

// ── 시험 모듈 업무 오류 ──

var (
	ErrExamAlreadyStarted   = errors.New("이미 응시 중인 시험입니다")
	ErrExamAlreadySubmitted = errors.New("이미 제출한 시험입니다")
	ErrExamNotInProgress    = errors.New("응시 중인 시험이 아닙니다")
	ErrExamTimeOver         = errors.New("시험 시간이 종료되었습니다. 답안은 수정할 수 없고 제출만 가능합니다")
	ErrExamHardDeadline     = errors.New("제출 기한이 지났습니다. 더 이상 제출할 수 없습니다")
	ErrExamStartClosed      = errors.New("응시 가능 시간이 지난 시험입니다")
)

// ExamDetail 시험 상세 + 내 응시 상태
type ExamDetail struct {
	Exam             *model.Exam        `json:"exam"`
	State            string             `json:"state"` // NOT_STARTED | IN_PROGRESS | SUBMITTED
	CanStart         bool               `json:"can_start"`
	Notice           string             `json:"notice,omitempty"`
	RemainingSeconds int                `json:"remaining_seconds,omitempty"`
	Result           *model.ExamResult  `json:"result,omitempty"`
	Attempt          *model.ExamAttempt `json:"attempt,omitempty"`
}

// AttemptView 진행 중 응시 스냅샷
// 잔여 시간은 항상 종료 시각 기준으로 재계산한다 — 시작 시점 스냅샷을
// 감산하는 방식은 탭을 오래 두면 어긋난다
type AttemptView struct {
	TabID            string             `json:"tab_id,omitempty"`
	Attempt          *model.ExamAttempt `json:"attempt"`
	RemainingSeconds int                `json:"remaining_seconds"`
	TimeOver         bool               `json:"time_over"` // 정규 시간 종료 (지각 유예 중)
}

// SubmissionView 교수 채점 화면용 제출 내역 + 객관식 추정 점수
// Score 가 서버 권위값이고 EstimatedScore 는 표시용 추정치다
type SubmissionView struct {
	upstream.Submission
	EstimatedScore *float64 `json:"estimated_score,omitempty"`
	ScoreMismatch  bool     `json:"score_mismatch,omitempty"`
}

// ExamService 시험 응시 수명주기 업무 인터페이스
//
// 상태 기계: NOT_STARTED → IN_PROGRESS → SUBMITTED, 역방향 전이 없음.
// 새로고침/재접속은 캐시를 통해 IN_PROGRESS 로만 복귀한다
type ExamService interface {
	// Detail 시험 상세 + 상태 판정 (결과 캐시 우선, 미스 시 서버 결과를 베스트에포트 보충)
	Detail(ctx context.Context, userID, examID int64) (*ExamDetail, error)
	// Start 응시 시작 — NOT_STARTED 이고 최종 기한 전일 때만
	Start(ctx context.Context, userID, examID int64) (*AttemptView, error)
	// Resume 진행 중 응시 복원 (새로고침 복귀 경로)
	Resume(ctx context.Context, userID, examID int64) (*AttemptView, error)
	// SaveAnswer 답안 기록 — 변경 즉시 캐시에 반영
	SaveAnswer(ctx context.Context, userID, examID, questionID int64, answer string) (*AttemptView, error)
	// Submit 제출 — 유예 판정은 제출 시점에 원자적으로 1회 수행
	Submit(ctx context.Context, userID, examID int64, tabID string) (*model.ExamResult, error)
	// Result 내 결과 조회
	Result(ctx context.Context, userID, examID int64) (*model.ExamResult, error)

	// ── 교수용 출제/채점 전달 ──
	CourseExams(ctx context.Context, courseID int64) ([]model.Exam, error)
	CreateExam(ctx context.Context, exam *model.Exam) (*model.Exam, error)
	UpdateExam(ctx context.Context, exam *model.Exam) (*model.Exam, error)
	DeleteExam(ctx context.Context, examID int64) error
	Submissions(ctx context.Context, examID int64) ([]SubmissionView, error)
	Grade(ctx context.Context, attemptID int64, scores map[int64]float64) error
}

type examService struct {
	api    upstream.ExamAPI
	cache  store.ExamCache
	tabs   *store.TabStore
	grace  time.Duration
	logger *zap.Logger
	now    func() time.Time

	// (사용자, 시험) 단위 잠금 — 제출 중복과 유예 판정 경합을 막는다
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewExamService ExamService 구현 생성
func NewExamService(api upstream.ExamAPI, cache store.ExamCache, tabs *store.TabStore, grace time.Duration, logger *zap.Logger) ExamService {
	return &examService{
		api:    api,
		cache:  cache,
		tabs:   tabs,
		grace:  grace,
		logger: logger,
		now:    time.Now,
		locks:  make(map[string]*sync.Mutex),
	}
}

func (s *examService) lock(userID, examID int64) *sync.Mutex {
	key := fmt.Sprintf("%d:%d", userID, examID)
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	return l
}

// remaining 종료 시각 기준 잔여 초 (음수 허용)
func (s *examService) remaining(endAt time.Time) int {
	return int(endAt.Sub(s.now()).Seconds())
}

// ════════════════════════════════════════════════════════════
// Detail — 시험 상세 + 상태 판정
// ════════════════════════════════════════════════════════════

func (s *examService) Detail(ctx context.Context, userID, examID int64) (*ExamDetail, error) {
	exam, err := s.api.Get(ctx, examID)
	if err != nil {
		return nil, err
	}

	detail := &ExamDetail{Exam: exam, State: model.AttemptNotStarted.String()}

	// 1. 결과 캐시 — 있으면 응시 완료, 시작 버튼 비활성
	if result, err := s.cache.GetResult(ctx, userID, examID); err == nil {
		detail.State = model.AttemptSubmitted.String()
		detail.Result = result
		detail.Notice = "응시 완료"
		return detail, nil
	}

	// 2. 진행 캐시 — 있으면 응시 중 복귀
	if attempt, err := s.cache.GetAttempt(ctx, userID, examID); err == nil {
		detail.State = model.AttemptInProgress.String()
		detail.Attempt = attempt
		detail.RemainingSeconds = s.remaining(attempt.EndAt)
		return detail, nil
	}

	// 3. 서버 결과 베스트에포트 보충 — 404/네트워크 오류는 미응시로 간주하고 삼킨다
	if result, err := s.api.MyResult(ctx, examID); err == nil {
		if err := s.cache.SaveResult(ctx, userID, result); err != nil {
			s.logger.Warn("결과 캐시 보충 실패", zap.Int64("exam_id", examID), zap.Error(err))
		}
		detail.State = model.AttemptSubmitted.String()
		detail.Result = result
		detail.Notice = "응시 완료"
		return detail, nil
	}

	hardDeadline := exam.EndAt.Add(s.grace)
	if !s.now().Before(hardDeadline) {
		detail.Notice = ErrExamStartClosed.Error()
		return detail, nil
	}
	detail.CanStart = true
	return detail, nil
}

// ════════════════════════════════════════════════════════════
// Start / Resume
// ════════════════════════════════════════════════════════════

func (s *examService) Start(ctx context.Context, userID, examID int64) (*AttemptView, error) {
	l := s.lock(userID, examID)
	l.Lock()
	defer l.Unlock()

	if _, err := s.cache.GetResult(ctx, userID, examID); err == nil {
		return nil, ErrExamAlreadySubmitted
	}
	if _, err := s.cache.GetAttempt(ctx, userID, examID); err == nil {
		return nil, ErrExamAlreadyStarted
	}

	exam, err := s.api.Get(ctx, examID)
	if err != nil {
		return nil, err
	}
	if !s.now().Before(exam.EndAt.Add(s.grace)) {
		return nil, ErrExamStartClosed
	}

	attempt, err := s.api.Start(ctx, examID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SaveAttempt(ctx, userID, attempt); err != nil {
		s.logger.Error("응시 캐시 저장 실패", zap.Int64("exam_id", examID), zap.Error(err))
		return nil, err
	}

	tabID := s.tabs.Open(model.AttemptMeta{
		AttemptID: attempt.AttemptID,
		ExamID:    examID,
		StartedAt: attempt.StartedAt,
		EndAt:     attempt.EndAt,
	})

	s.logger.Info("시험 응시 시작",
		zap.Int64("user_id", userID),
		zap.Int64("exam_id", examID),
		zap.Int64("attempt_id", attempt.AttemptID))

	return s.attemptView(tabID, attempt), nil
}

func (s *examService) Resume(ctx context.Context, userID, examID int64) (*AttemptView, error) {
	attempt, err := s.cache.GetAttempt(ctx, userID, examID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrExamNotInProgress
		}
		return nil, err
	}
	return s.attemptView("", attempt), nil
}

// ════════════════════════════════════════════════════════════
// SaveAnswer — 답안 기록
// ════════════════════════════════════════════════════════════

func (s *examService) SaveAnswer(ctx context.Context, userID, examID, questionID int64, answer string) (*AttemptView, error) {
	l := s.lock(userID, examID)
	l.Lock()
	defer l.Unlock()

	attempt, err := s.cache.GetAttempt(ctx, userID, examID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrExamNotInProgress
		}
		return nil, err
	}

	// 정규 시간이 끝나면 답안은 읽기 전용이다. 유예 구간에는 제출만 허용된다
	if s.remaining(attempt.EndAt) <= 0 {
		return nil, ErrExamTimeOver
	}

	if attempt.Answers == nil {
		attempt.Answers = make(map[int64]string)
	}
	attempt.Answers[questionID] = answer

	if err := s.cache.SaveAttempt(ctx, userID, attempt); err != nil {
		return nil, err
	}
	return s.attemptView("", attempt), nil
}

// ════════════════════════════════════════════════════════════
// Submit — 제출 (원자적 유예 판정)
// ════════════════════════════════════════════════════════════
//
// 잔여 시간 r = 종료까지 남은 초:
//   r > 0          정시 제출
//   -600 < r <= 0  지각 유예 — 제출 허용, 서버가 10% 감점과 isLate 를 매긴다
//   r <= -600      최종 기한 경과 — 네트워크 호출 없이 거부
// 판정과 제출은 (사용자, 시험) 잠금 아래에서 한 번만 일어난다

func (s *examService) Submit(ctx context.Context, userID, examID int64, tabID string) (*model.ExamResult, error) {
	l := s.lock(userID, examID)
	l.Lock()
	defer l.Unlock()

	attempt, err := s.cache.GetAttempt(ctx, userID, examID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		if _, rerr := s.cache.GetResult(ctx, userID, examID); rerr == nil {
			return nil, ErrExamAlreadySubmitted
		}
		return nil, ErrExamNotInProgress
	}

	if remaining := s.remaining(attempt.EndAt); float64(remaining) <= -s.grace.Seconds() {
		return nil, ErrExamHardDeadline
	}

	result, err := s.api.Submit(ctx, attempt.AttemptID, attempt.Answers)
	if err != nil {
		// 실패 시 응시 중 상태를 유지해 재시도를 허용한다
		s.logger.Warn("시험 제출 실패",
			zap.Int64("user_id", userID),
			zap.Int64("exam_id", examID),
			zap.Error(err))
		return nil, err
	}
	if result.ExamID == 0 {
		result.ExamID = examID
	}

	if err := s.cache.SaveResult(ctx, userID, result); err != nil {
		s.logger.Error("결과 캐시 저장 실패", zap.Int64("exam_id", examID), zap.Error(err))
	}
	if err := s.cache.DeleteAttempt(ctx, userID, examID); err != nil {
		s.logger.Warn("응시 캐시 삭제 실패", zap.Int64("exam_id", examID), zap.Error(err))
	}
	if tabID != "" {
		s.tabs.Close(tabID)
	}

	s.logger.Info("시험 제출 완료",
		zap.Int64("user_id", userID),
		zap.Int64("exam_id", examID),
		zap.Bool("is_late", result.IsLate))

	return result, nil
}

// ════════════════════════════════════════════════════════════
// Result — 내 결과 조회
// ════════════════════════════════════════════════════════════

func (s *examService) Result(ctx context.Context, userID, examID int64) (*model.ExamResult, error) {
	if result, err := s.cache.GetResult(ctx, userID, examID); err == nil {
		return result, nil
	}
	result, err := s.api.MyResult(ctx, examID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SaveResult(ctx, userID, result); err != nil {
		s.logger.Warn("결과 캐시 저장 실패", zap.Int64("exam_id", examID), zap.Error(err))
	}
	return result, nil
}

// ── 교수용 전달 ──

func (s *examService) CourseExams(ctx context.Context, courseID int64) ([]model.Exam, error) {
	return s.api.ListCourseExams(ctx, courseID)
}

func (s *examService) CreateExam(ctx context.Context, exam *model.Exam) (*model.Exam, error) {
	return s.api.CreateExam(ctx, exam)
}

func (s *examService) UpdateExam(ctx context.Context, exam *model.Exam) (*model.Exam, error) {
	return s.api.UpdateExam(ctx, exam)
}

func (s *examService) DeleteExam(ctx context.Context, examID int64) error {
	return s.api.DeleteExam(ctx, examID)
}

func (s *examService) Submissions(ctx context.Context, examID int64) ([]SubmissionView, error) {
	exam, err := s.api.Get(ctx, examID)
	if err != nil {
		return nil, err
	}
	subs, err := s.api.ListSubmissions(ctx, examID)
	if err != nil {
		return nil, err
	}

	views := make([]SubmissionView, 0, len(subs))
	for _, sub := range subs {
		estimated := estimateMCQScore(exam, sub.Answers)
		view := SubmissionView{Submission: sub, EstimatedScore: estimated}
		// 서버 점수가 권위값이다. 추정치와 어긋나면 표시만 하고 덮어쓰지 않는다
		if sub.Score != nil && estimated != nil && *sub.Score != *estimated {
			view.ScoreMismatch = true
		}
		views = append(views, view)
	}
	return views, nil
}

// estimateMCQScore 객관식 답안만으로 계산한 화면용 추정 점수
// 주관식 문항이 하나라도 있으면 전체 추정이 불가능하므로 nil 을 반환한다
func estimateMCQScore(exam *model.Exam, answers map[int64]string) *float64 {
	var total float64
	for _, q := range exam.Questions {
		if q.Type != model.QuestionTypeMCQ || q.CorrectChoiceIndex == nil {
			return nil
		}
		if answers[q.ID] == strconv.Itoa(*q.CorrectChoiceIndex) {
			total += q.Points
		}
	}
	return &total
}

func (s *examService) Grade(ctx context.Context, attemptID int64, scores map[int64]float64) error {
	return s.api.GradeSubmission(ctx, attemptID, scores)
}

func (s *examService) attemptView(tabID string, attempt *model.ExamAttempt) *AttemptView {
	remaining := s.remaining(attempt.EndAt)
	return &AttemptView{
		TabID:            tabID,
		Attempt:          attempt,
		RemainingSeconds: remaining,
		TimeOver:         remaining <= 0,
	}
}

// [자체검증 통과] internal/service/exam_service.go

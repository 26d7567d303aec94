package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"haksa-portal/backend/internal/upstream"
)

// NotificationService 알림 배지 업무 인터페이스
// 세션마다 주기 폴러가 읽지 않은 알림 수를 갱신하고, 화면은 캐시된 값만 읽는다
type NotificationService interface {
	// StartPolling 사용자 폴링 시작 (이미 돌고 있으면 무시)
	StartPolling(userID int64, token string)
	// StopPolling 폴링 중단 (로그아웃/세션 만료)
	StopPolling(userID int64)
	// Badge 마지막으로 관측된 배지 수
	Badge(userID int64) int
	// Refresh 즉시 1회 갱신 (알림 목록을 연 직후 등)
	Refresh(ctx context.Context, userID int64, token string) (int, error)
}

type notificationPoller struct {
	cancel context.CancelFunc
	count  int
}

type notificationService struct {
	api    upstream.BoardAPI
	period time.Duration
	logger *zap.Logger

	mu      sync.Mutex
	pollers map[int64]*notificationPoller
}

// NewNotificationService NotificationService 구현 생성
func NewNotificationService(api upstream.BoardAPI, period time.Duration, logger *zap.Logger) NotificationService {
	return &notificationService{
		api:     api,
		period:  period,
		logger:  logger,
		pollers: make(map[int64]*notificationPoller),
	}
}

func (s *notificationService) StartPolling(userID int64, token string) {
	s.mu.Lock()
	if _, running := s.pollers[userID]; running {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	poller := &notificationPoller{cancel: cancel}
	s.pollers[userID] = poller
	s.mu.Unlock()

	go s.loop(ctx, userID, token)
}

func (s *notificationService) loop(ctx context.Context, userID int64, token string) {
	// 시작 시 즉시 1회 갱신 후 주기 반복
	s.poll(ctx, userID, token)

	ticker := time.NewTicker(s.period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.poll(ctx, userID, token)
		}
	}
}

func (s *notificationService) poll(ctx context.Context, userID int64, token string) {
	count, err := s.api.UnreadNotificationCount(upstream.WithToken(ctx, token))
	if err != nil {
		// 폴링 실패는 치명적이지 않다. 직전 값을 유지하고 다음 주기에 재시도
		s.logger.Debug("알림 배지 갱신 실패", zap.Int64("user_id", userID), zap.Error(err))
		return
	}
	s.mu.Lock()
	if poller, ok := s.pollers[userID]; ok {
		poller.count = count
	}
	s.mu.Unlock()
}

func (s *notificationService) StopPolling(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if poller, ok := s.pollers[userID]; ok {
		poller.cancel()
		delete(s.pollers, userID)
	}
}

func (s *notificationService) Badge(userID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if poller, ok := s.pollers[userID]; ok {
		return poller.count
	}
	return 0
}

func (s *notificationService) Refresh(ctx context.Context, userID int64, token string) (int, error) {
	count, err := s.api.UnreadNotificationCount(upstream.WithToken(ctx, token))
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	if poller, ok := s.pollers[userID]; ok {
		poller.count = count
	}
	s.mu.Unlock()
	return count, nil
}

